package world

// Zone is a named group of areas watched by staff. Accessed only from
// the game loop goroutine.
type Zone struct {
	ID string

	areas    map[*Area]struct{}
	watchers map[*Client]struct{}
}

func NewZone(id string) *Zone {
	return &Zone{
		ID:       id,
		areas:    make(map[*Area]struct{}),
		watchers: make(map[*Client]struct{}),
	}
}

// AddArea places a in the zone. An area belongs to at most one zone;
// the previous assignment, if any, is overwritten.
func (z *Zone) AddArea(a *Area) {
	if a.InZone != nil && a.InZone != z {
		delete(a.InZone.areas, a)
	}
	a.InZone = z
	z.areas[a] = struct{}{}
}

func (z *Zone) Contains(a *Area) bool {
	_, ok := z.areas[a]
	return ok
}

// AddWatcher subscribes a staff client to the zone's notifications.
func (z *Zone) AddWatcher(c *Client) {
	z.watchers[c] = struct{}{}
	c.ZoneWatched = z
}

func (z *Zone) RemoveWatcher(c *Client) {
	delete(z.watchers, c)
	if c.ZoneWatched == z {
		c.ZoneWatched = nil
	}
}

func (z *Zone) IsWatcher(c *Client) bool {
	_, ok := z.watchers[c]
	return ok
}
