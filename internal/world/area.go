package world

import (
	"math/rand"
	"time"
)

// Area is one room of a hub. Accessed only from the game loop
// goroutine — no locks needed.
type Area struct {
	ID   int
	Name string
	Hub  *Hub

	Lights       bool
	BloodSmeared bool
	// Names of areas a blood trail in this area leads to, including
	// this area's own name when blood pooled here. Set semantics:
	// re-adding is a no-op.
	BleedsTo map[string]struct{}

	InZone *Zone

	LobbyArea   bool
	PrivateArea bool
	IsLocked    bool
	IsModLocked bool
	// IPIDs exempt from lock checks.
	InviteList map[string]struct{}

	ReachableAreas  map[string]struct{}
	RestrictedChars map[string]struct{}

	Noteworthy  bool
	Description string

	LurkLength time.Duration
	AfkDelay   time.Duration
	AfkSendTo  int // area ID an AFK client is moved to

	Background string
	Ambient    string
	// ClockPeriod is the named time of day shown in this area, empty
	// when the area keeps whatever period the client already shows.
	ClockPeriod string
	// CurrentTrack is the music last played here, replayed to
	// newcomers. Runtime state, not configuration.
	CurrentTrack string
	HPDef        int
	HPPro        int

	clients map[*Client]struct{}
}

func NewArea(id int, name string, hub *Hub) *Area {
	return &Area{
		ID:              id,
		Name:            name,
		Hub:             hub,
		Lights:          true,
		BleedsTo:        make(map[string]struct{}),
		InviteList:      make(map[string]struct{}),
		ReachableAreas:  make(map[string]struct{}),
		RestrictedChars: make(map[string]struct{}),
		clients:         make(map[*Client]struct{}),
	}
}

// AddClient registers c as present in the area. Adding a client twice
// is a programmer error upstream but harmless here.
func (a *Area) AddClient(c *Client) {
	a.clients[c] = struct{}{}
}

// RemoveClient unregisters c. Removing an absent client is a no-op.
func (a *Area) RemoveClient(c *Client) {
	delete(a.clients, c)
}

func (a *Area) HasClient(c *Client) bool {
	_, ok := a.clients[c]
	return ok
}

func (a *Area) ClientCount() int { return len(a.clients) }

// Clients returns the present clients in no particular order.
func (a *Area) Clients() []*Client {
	out := make([]*Client, 0, len(a.clients))
	for c := range a.clients {
		out = append(out, c)
	}
	return out
}

// VisibleClientsFor returns the clients of the area that viewer can
// see: everyone if the viewer is staff, otherwise the visible ones
// plus the viewer itself.
func (a *Area) VisibleClientsFor(viewer *Client) []*Client {
	out := make([]*Client, 0, len(a.clients))
	for c := range a.clients {
		if c.IsVisible || c == viewer || viewer.IsStaff() {
			out = append(out, c)
		}
	}
	return out
}

// IsReachableFrom reports whether a passage connects from src to this
// area.
func (a *Area) IsReachableFrom(src *Area) bool {
	_, ok := src.ReachableAreas[a.Name]
	return ok
}

// IsCharAvailable reports whether charID can be taken in this area:
// it must be a roster character, not held by anyone present, not in
// moreUnavail, and not restricted (unless allowRestricted).
func (a *Area) IsCharAvailable(charID int, allowRestricted bool, moreUnavail map[int]struct{}) bool {
	if a.Hub == nil || !a.Hub.IsParticipant(charID) {
		return false
	}
	if _, bad := moreUnavail[charID]; bad {
		return false
	}
	name := a.Hub.Characters[charID]
	if _, restricted := a.RestrictedChars[name]; restricted && !allowRestricted {
		return false
	}
	for c := range a.clients {
		if c.CharID == charID {
			return false
		}
	}
	return true
}

// RandAvailCharID picks a random available character, or -1 if none.
func (a *Area) RandAvailCharID(allowRestricted bool, moreUnavail map[int]struct{}) int {
	avail := make([]int, 0, len(a.Hub.Characters))
	for id := range a.Hub.Characters {
		if a.IsCharAvailable(id, allowRestricted, moreUnavail) {
			avail = append(avail, id)
		}
	}
	if len(avail) == 0 {
		return -1
	}
	return avail[rand.Intn(len(avail))]
}

// BroadcastICAttention pings every client matching cond with an
// attention cue, optionally audible.
func (a *Area) BroadcastICAttention(cond func(*Client) bool, ding bool) {
	arg := "attention"
	if ding {
		arg = "attention_ding"
	}
	for c := range a.clients {
		if cond == nil || cond(c) {
			c.Conn.Send("RT", arg)
		}
	}
}
