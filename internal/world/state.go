package world

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/tsugo/server/internal/core/event"
)

// State owns every live domain object. Accessed only from the game
// loop goroutine — no locks needed.
type State struct {
	log *zap.Logger
	bus *event.Bus

	clients map[int]*Client
	hubs    map[int]*Hub
	zones   map[string]*Zone

	nextClientID int
}

func NewState(log *zap.Logger, bus *event.Bus) *State {
	return &State{
		log:     log,
		bus:     bus,
		clients: make(map[int]*Client),
		hubs:    make(map[int]*Hub),
		zones:   make(map[string]*Zone),
	}
}

func (s *State) Bus() *event.Bus { return s.bus }

func (s *State) AddHub(h *Hub)   { s.hubs[h.ID] = h }
func (s *State) AddZone(z *Zone) { s.zones[z.ID] = z }

func (s *State) Hub(id int) (*Hub, bool) {
	h, ok := s.hubs[id]
	return h, ok
}

func (s *State) Zone(id string) (*Zone, bool) {
	z, ok := s.zones[id]
	return z, ok
}

func (s *State) Hubs() []*Hub {
	out := make([]*Hub, 0, len(s.hubs))
	for _, h := range s.hubs {
		out = append(out, h)
	}
	return out
}

// NewClient registers a fresh client with the next free ID.
func (s *State) NewClient(ipid, hdid string, conn Conn) *Client {
	id := s.nextClientID
	s.nextClientID++
	c := NewClient(id, ipid, hdid, conn)
	s.clients[id] = c
	return c
}

func (s *State) Client(id int) (*Client, bool) {
	c, ok := s.clients[id]
	return c, ok
}

func (s *State) Clients() []*Client {
	out := make([]*Client, 0, len(s.clients))
	for _, c := range s.clients {
		out = append(out, c)
	}
	return out
}

// RemoveClient drops a disconnected client from the world.
func (s *State) RemoveClient(c *Client) {
	if c.Area != nil {
		c.Area.RemoveClient(c)
	}
	if c.ZoneWatched != nil {
		c.ZoneWatched.RemoveWatcher(c)
	}
	if c.Following != nil {
		c.Unfollow()
	}
	for _, f := range append([]*Client(nil), c.FollowedBy...) {
		f.Unfollow()
	}
	if c.Party != nil {
		c.Party.RemoveMember(c)
	}
	delete(s.clients, c.ID)
}

// MulticlientsOf returns every other client sharing an IPID or HDID
// with c.
func (s *State) MulticlientsOf(c *Client) []*Client {
	var out []*Client
	for _, other := range s.clients {
		if other == c {
			continue
		}
		if other.IPID == c.IPID || other.HDID == c.HDID {
			out = append(out, other)
		}
	}
	return out
}

// SendOOCOthers delivers msg to every client other than sender that
// matches the filter. Unless the filter says otherwise, delivery stays
// within the sender's hub. Empty messages are suppressed.
func (s *State) SendOOCOthers(sender *Client, msg string, f Filter) {
	if msg == "" {
		return
	}
	if f.InHubMode == HubUnset && f.InAreaMode == AreaUnset {
		f.InHubMode = HubSame
	}
	cond, err := BuildCond(sender, f)
	if err != nil {
		// Filters are server-built; an invalid one is a bug.
		s.log.Error("invalid broadcast filter", zap.Error(err))
		return
	}
	for _, c := range s.clients {
		if c == sender {
			continue
		}
		if cond(c) {
			c.SendOOC(msg)
		}
	}
}

// ChangeCharacter switches c to charID, which must be available in
// c's area unless force is set. Announces the switch on the bus.
func (s *State) ChangeCharacter(c *Client, charID int, force bool) error {
	if charID != -1 && !force {
		if c.Area == nil || !c.Area.IsCharAvailable(charID, c.IsStaff(), nil) {
			return fmt.Errorf("character %d is not available", charID)
		}
	}
	old := c.CharID
	c.CharID = charID
	c.CharShowname = ""
	c.Conn.Send("PV", fmt.Sprintf("%d", c.ID), "CID", fmt.Sprintf("%d", charID))
	event.Publish(s.bus, ClientChangeCharacter{Client: c, OldCharID: old, NewCharID: charID})
	return nil
}
