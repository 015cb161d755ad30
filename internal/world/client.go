package world

import (
	"golang.org/x/text/unicode/norm"
)

// Rank is a client's staff rank.
type Rank int

const (
	RankNone Rank = iota
	RankGM
	RankCM
	RankMod
)

func (r Rank) String() string {
	switch r {
	case RankGM:
		return "GM"
	case RankCM:
		return "community manager"
	case RankMod:
		return "moderator"
	default:
		return "none"
	}
}

// Conn is the outbound half of a client's connection. net.Session
// implements it; tests substitute a recorder.
type Conn interface {
	Send(cmd string, args ...string)
}

// Client is one connected player. Accessed only from the game loop
// goroutine — no locks needed.
type Client struct {
	ID   int
	IPID string
	HDID string
	Conn Conn

	Hub     *Hub
	Area    *Area
	NewArea *Area // destination while a transition is in flight

	CharID       int // index into the hub roster, -1 = spectator
	Showname     string
	CharShowname string
	OOCName      string

	rank Rank

	IsBlind    bool
	IsDeaf     bool
	IsVisible  bool
	IsBleeding bool
	Status     string

	IsTransient       bool
	CanBypassICLock   bool
	Autopass          bool
	NonAutopassNotify bool // staff: see autopass lines even for non-autopass movers
	Autoglance        bool

	ZoneWatched *Zone

	// Last status string perceived per subject client ID. Drives the
	// "found something" attention ping only when a status changed.
	RememberedStatuses map[int]string

	// Per-area snapshot of passage locks, keyed by area ID.
	RememberedLockedPassages map[int]map[string]bool

	Following  *Client
	FollowedBy []*Client
	Party      *Party
}

func NewClient(id int, ipid, hdid string, conn Conn) *Client {
	return &Client{
		ID:                       id,
		IPID:                     ipid,
		HDID:                     hdid,
		Conn:                     conn,
		CharID:                   -1,
		IsVisible:                true,
		RememberedStatuses:       make(map[int]string),
		RememberedLockedPassages: make(map[int]map[string]bool),
	}
}

func (c *Client) Rank() Rank      { return c.rank }
func (c *Client) SetRank(r Rank)  { c.rank = r }
func (c *Client) IsStaff() bool   { return c.rank != RankNone }
func (c *Client) IsOfficer() bool { return c.rank == RankCM || c.rank == RankMod }
func (c *Client) IsMod() bool     { return c.rank == RankMod }

// HasParticipantCharacter reports whether the client holds a character
// from its hub's roster, as opposed to spectating.
func (c *Client) HasParticipantCharacter() bool {
	return c.Hub != nil && c.Hub.IsParticipant(c.CharID)
}

// CharName returns the roster name of the held character, or the
// spectator name.
func (c *Client) CharName() string {
	if c.Hub == nil || !c.Hub.IsParticipant(c.CharID) {
		return "SPECTATOR"
	}
	return c.Hub.Characters[c.CharID]
}

// Displayname is what other players see: showname if set, else the
// character showname, else the character name.
func (c *Client) Displayname() string {
	if c.Showname != "" {
		return c.Showname
	}
	if c.CharShowname != "" {
		return c.CharShowname
	}
	return c.CharName()
}

// SendOOC delivers a server OOC line to this client. Empty messages
// are suppressed.
func (c *Client) SendOOC(msg string) {
	if msg == "" {
		return
	}
	c.Conn.Send("CT", "", msg)
}

// SameShowname compares two shownames for conflict purposes, after
// NFC normalization so visually identical names collide.
func SameShowname(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return norm.NFC.String(a) == norm.NFC.String(b)
}
