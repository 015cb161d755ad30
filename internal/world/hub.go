package world

// Hub groups areas and carries the character roster its participants
// pick from. Accessed only from the game loop goroutine.
type Hub struct {
	ID          int
	Name        string
	Characters  []string // roster, index = character ID
	DefaultArea int

	areas   map[int]*Area
	leaders map[*Client]struct{}
}

func NewHub(id int, name string, roster []string) *Hub {
	return &Hub{
		ID:         id,
		Name:       name,
		Characters: roster,
		areas:      make(map[int]*Area),
		leaders:    make(map[*Client]struct{}),
	}
}

func (h *Hub) AddArea(a *Area) {
	a.Hub = h
	h.areas[a.ID] = a
}

func (h *Hub) Area(id int) (*Area, bool) {
	a, ok := h.areas[id]
	return a, ok
}

// AreaByName finds an area by exact name.
func (h *Hub) AreaByName(name string) (*Area, bool) {
	for _, a := range h.areas {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}

func (h *Hub) Areas() []*Area {
	out := make([]*Area, 0, len(h.areas))
	for _, a := range h.areas {
		out = append(out, a)
	}
	return out
}

// IsParticipant reports whether charID is a roster character.
func (h *Hub) IsParticipant(charID int) bool {
	return charID >= 0 && charID < len(h.Characters)
}

// CharacterID resolves a roster name to its ID, or -1.
func (h *Hub) CharacterID(name string) int {
	for id, n := range h.Characters {
		if n == name {
			return id
		}
	}
	return -1
}

// SameRoster reports whether the other hub carries an identical
// character roster, in which case character IDs translate one-to-one.
func (h *Hub) SameRoster(other *Hub) bool {
	if len(h.Characters) != len(other.Characters) {
		return false
	}
	for i, n := range h.Characters {
		if other.Characters[i] != n {
			return false
		}
	}
	return true
}

// AddLeader grants hub leadership, an officer courtesy on hub entry.
func (h *Hub) AddLeader(c *Client) {
	h.leaders[c] = struct{}{}
}

func (h *Hub) RemoveLeader(c *Client) {
	delete(h.leaders, c)
}

func (h *Hub) IsLeader(c *Client) bool {
	_, ok := h.leaders[c]
	return ok
}
