package world

// Party is a group of clients that move together. The leader's
// transitions pull the other members along.
type Party struct {
	ID      int
	Leader  *Client
	members map[*Client]struct{}
}

func NewParty(id int, leader *Client) *Party {
	p := &Party{
		ID:      id,
		Leader:  leader,
		members: make(map[*Client]struct{}),
	}
	p.AddMember(leader)
	return p
}

func (p *Party) AddMember(c *Client) {
	p.members[c] = struct{}{}
	c.Party = p
}

// RemoveMember drops c; if the leader leaves, leadership passes to an
// arbitrary remaining member.
func (p *Party) RemoveMember(c *Client) {
	delete(p.members, c)
	if c.Party == p {
		c.Party = nil
	}
	if p.Leader == c {
		p.Leader = nil
		for m := range p.members {
			p.Leader = m
			break
		}
	}
}

func (p *Party) HasMember(c *Client) bool {
	_, ok := p.members[c]
	return ok
}

func (p *Party) Members() []*Client {
	out := make([]*Client, 0, len(p.members))
	for m := range p.members {
		out = append(out, m)
	}
	return out
}
