package world

// Event payloads published on the bus around area transitions. The
// pre-commit pair fires as the move is applied; the Final pair fires
// after every post-transition side effect has run.

type AreaClientLeft struct {
	Client  *Client
	OldArea *Area
	NewArea *Area
}

type AreaClientEntered struct {
	Client  *Client
	OldArea *Area
	NewArea *Area
}

type AreaClientLeftFinal struct {
	Client  *Client
	OldArea *Area
	NewArea *Area
}

type AreaClientEnteredFinal struct {
	Client  *Client
	OldArea *Area
	NewArea *Area
}

type ClientChangeCharacter struct {
	Client    *Client
	OldCharID int
	NewCharID int
}
