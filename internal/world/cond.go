package world

import "errors"

// ErrInvalidFilter reports an out-of-range filter enum value. Filters
// are built by server code, never from client input, so callers treat
// this as a programmer error.
var ErrInvalidFilter = errors.New("world: invalid filter value")

// Tri is a three-valued requirement: unset (don't care), required
// true, or required false.
type Tri int

const (
	TriUnset Tri = iota
	TriTrue
	TriFalse
)

func (t Tri) valid() bool { return t >= TriUnset && t <= TriFalse }

// HubMode selects how a filter constrains the recipient's hub.
type HubMode int

const (
	HubUnset HubMode = iota
	HubSame          // same hub as the sender
	HubOther         // different hub than the sender
	HubIs            // the given hub
	HubIn            // any of the given hubs
)

// AreaMode selects how a filter constrains the recipient's area.
type AreaMode int

const (
	AreaUnset AreaMode = iota
	AreaSame           // same area as the sender
	AreaOther          // different area than the sender
	AreaIs             // the given area
	AreaIn             // any of the given areas
)

// ZoneMode selects the zone-staff constraint. Strict and flex filters
// interpret these differently; see BuildCond.
type ZoneMode int

const (
	ZoneUnset   ZoneMode = iota
	ZoneSender           // zone staff of the sender's zone context
	ZoneExclude          // complement of ZoneSender
	ZoneOfArea           // zone staff of the given area's zone
)

// Filter describes the recipients of a targeted broadcast. Every set
// field must hold for a client to receive the message.
type Filter struct {
	IsStaff   Tri
	IsOfficer Tri
	IsMod     Tri
	ToBlind   Tri
	ToDeaf    Tri

	InHubMode HubMode
	InHub     *Hub              // HubIs target
	InHubs    map[*Hub]struct{} // HubIn targets

	InAreaMode AreaMode
	InArea     *Area              // AreaIs target
	InAreas    map[*Area]struct{} // AreaIn targets

	// ZStaff is the strict zone-staff filter: with no zone context it
	// matches nobody. ZStaffFlex degrades to rank checks instead.
	ZStaffMode ZoneMode
	ZStaffArea *Area // ZoneOfArea target

	ZStaffFlexMode ZoneMode
	ZStaffFlexArea *Area // ZoneOfArea target

	PartOf map[*Client]struct{} // if non-nil, recipient must be a member
	NotTo  map[*Client]struct{} // recipients to exclude

	Pred func(*Client) bool // extra predicate, ANDed in
}

// Cond is a compiled recipient predicate.
type Cond func(*Client) bool

// BuildCond compiles a Filter into a predicate relative to sender. The
// returned condition is the conjunction of one clause per set field.
func BuildCond(sender *Client, f Filter) (Cond, error) {
	var clauses []Cond

	add := func(c Cond) { clauses = append(clauses, c) }

	tri := func(t Tri, get func(*Client) bool) error {
		if !t.valid() {
			return ErrInvalidFilter
		}
		switch t {
		case TriTrue:
			add(func(c *Client) bool { return get(c) })
		case TriFalse:
			add(func(c *Client) bool { return !get(c) })
		}
		return nil
	}

	if err := tri(f.IsStaff, (*Client).IsStaff); err != nil {
		return nil, err
	}
	if err := tri(f.IsOfficer, (*Client).IsOfficer); err != nil {
		return nil, err
	}
	if err := tri(f.IsMod, (*Client).IsMod); err != nil {
		return nil, err
	}
	if err := tri(f.ToBlind, func(c *Client) bool { return c.IsBlind }); err != nil {
		return nil, err
	}
	if err := tri(f.ToDeaf, func(c *Client) bool { return c.IsDeaf }); err != nil {
		return nil, err
	}

	switch f.InHubMode {
	case HubUnset:
	case HubSame:
		hub := sender.Hub
		add(func(c *Client) bool { return c.Hub == hub })
	case HubOther:
		hub := sender.Hub
		add(func(c *Client) bool { return c.Hub != hub })
	case HubIs:
		hub := f.InHub
		add(func(c *Client) bool { return c.Hub == hub })
	case HubIn:
		set := f.InHubs
		add(func(c *Client) bool { _, ok := set[c.Hub]; return ok })
	default:
		return nil, ErrInvalidFilter
	}

	switch f.InAreaMode {
	case AreaUnset:
	case AreaSame:
		area := sender.Area
		add(func(c *Client) bool { return c.Area == area })
	case AreaOther:
		area := sender.Area
		add(func(c *Client) bool { return c.Area != area })
	case AreaIs:
		area := f.InArea
		add(func(c *Client) bool { return c.Area == area })
	case AreaIn:
		set := f.InAreas
		add(func(c *Client) bool { _, ok := set[c.Area]; return ok })
	default:
		return nil, ErrInvalidFilter
	}

	strict, err := zstaffStrict(sender, f.ZStaffMode, f.ZStaffArea)
	if err != nil {
		return nil, err
	}
	if strict != nil {
		add(strict)
	}

	flex, err := zstaffFlex(sender, f.ZStaffFlexMode, f.ZStaffFlexArea)
	if err != nil {
		return nil, err
	}
	if flex != nil {
		add(flex)
	}

	if f.PartOf != nil {
		set := f.PartOf
		add(func(c *Client) bool { _, ok := set[c]; return ok })
	}
	if f.NotTo != nil {
		set := f.NotTo
		add(func(c *Client) bool { _, ok := set[c]; return !ok })
	}
	if f.Pred != nil {
		add(f.Pred)
	}

	return func(c *Client) bool {
		for _, clause := range clauses {
			if !clause(c) {
				return false
			}
		}
		return true
	}, nil
}

// senderZone resolves the sender's zone context: the zone it watches,
// else the zone of its area, else nil.
func senderZone(sender *Client) *Zone {
	if sender.ZoneWatched != nil {
		return sender.ZoneWatched
	}
	if sender.Area != nil && sender.Area.InZone != nil {
		return sender.Area.InZone
	}
	return nil
}

// zstaffStrict compiles the strict zone-staff clause. With no zone
// context it matches nobody: strict filters carry audit lines that
// must not leak outside a zone.
func zstaffStrict(sender *Client, mode ZoneMode, target *Area) (Cond, error) {
	switch mode {
	case ZoneUnset:
		return nil, nil
	case ZoneSender:
		zone := senderZone(sender)
		if zone == nil {
			return func(*Client) bool { return false }, nil
		}
		return func(c *Client) bool {
			return c.IsStaff() && c.ZoneWatched == zone
		}, nil
	case ZoneExclude:
		zone := senderZone(sender)
		if zone == nil {
			return func(*Client) bool { return false }, nil
		}
		return func(c *Client) bool { return c.ZoneWatched != zone }, nil
	case ZoneOfArea:
		if target == nil || target.InZone == nil {
			return func(*Client) bool { return false }, nil
		}
		zone := target.InZone
		return func(c *Client) bool {
			return c.IsStaff() && c.ZoneWatched == zone
		}, nil
	default:
		return nil, ErrInvalidFilter
	}
}

// zstaffFlex compiles the permissive zone-staff clause. With no zone
// context it degrades to a plain staff check, so server-wide staff
// still hear about things happening outside any zone.
func zstaffFlex(sender *Client, mode ZoneMode, target *Area) (Cond, error) {
	switch mode {
	case ZoneUnset:
		return nil, nil
	case ZoneSender:
		zone := senderZone(sender)
		if zone == nil {
			return func(c *Client) bool { return c.IsStaff() }, nil
		}
		return func(c *Client) bool {
			return c.IsStaff() && c.ZoneWatched == zone
		}, nil
	case ZoneExclude:
		zone := senderZone(sender)
		return func(c *Client) bool {
			if !c.IsStaff() {
				return true
			}
			return zone != nil && c.ZoneWatched != zone
		}, nil
	case ZoneOfArea:
		var zone *Zone
		if target != nil {
			zone = target.InZone
		}
		// zone may be nil: matches staff watching no zone.
		return func(c *Client) bool {
			return c.IsStaff() && c.ZoneWatched == zone
		}, nil
	default:
		return nil, ErrInvalidFilter
	}
}
