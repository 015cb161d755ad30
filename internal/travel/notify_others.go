package travel

import (
	"fmt"
	"strings"

	"github.com/tsugo/server/internal/world"
)

// MoveStatus describes the mover's relation to the area a broadcast
// concerns.
type MoveStatus string

const (
	StatusStay    MoveStatus = "stay"
	StatusLeft    MoveStatus = "left"
	StatusArrived MoveStatus = "arrived"
)

// NotifyOthers sends everyone but the mover the notifications its area
// change produces: zone boundary lines for watchers, multiclient
// warnings, movement lines in both areas, blood updates and status
// reminders, then one silent attention cue for affected players.
func (s *Service) NotifyOthers(c *world.Client, area *world.Area, oldDname string, opts Options) {
	oldArea := c.Area
	newDname := c.Displayname()

	if oldArea.InZone != nil && area.InZone != oldArea.InZone {
		s.State.SendOOCOthers(c, fmt.Sprintf("(X) %s [%d] has left your zone (%d->%d).",
			oldDname, c.ID, oldArea.ID, area.ID),
			world.Filter{ZStaffMode: world.ZoneOfArea, ZStaffArea: oldArea,
				InHubMode: world.HubIs, InHub: oldArea.Hub})
	}

	if area.InZone != nil && area.InZone != oldArea.InZone {
		s.State.SendOOCOthers(c, fmt.Sprintf("(X) %s [%d] has entered your zone (%d->%d).",
			newDname, c.ID, oldArea.ID, area.ID),
			world.Filter{ZStaffMode: world.ZoneOfArea, ZStaffArea: area,
				InHubMode: world.HubIs, InHub: area.Hub})

		// The mover is technically not inside the zone yet, so one
		// multiclient already there is enough to warrant the warning.
		for _, mc := range s.State.MulticlientsOf(c) {
			if mc.Area != nil && mc.Area.InZone == area.InZone {
				s.State.SendOOCOthers(c, fmt.Sprintf("(X) Warning: Client %d is "+
					"multiclienting in your zone. Do /multiclients %d to take a look.",
					c.ID, c.ID),
					world.Filter{ZStaffMode: world.ZoneOfArea, ZStaffArea: area,
						InHubMode: world.HubIs, InHub: area.Hub})
				break
			}
		}
	}

	if !opts.IgnoreAutopass && c.HasParticipantCharacter() {
		s.NotifyOthersMoving(c, oldArea,
			fmt.Sprintf("%s has left to the %s.", oldDname, area.Name),
			"You hear footsteps going out of the room.")
		s.NotifyOthersMoving(c, area,
			fmt.Sprintf("%s has entered from the %s.", newDname, oldArea.Name),
			"You hear footsteps coming into the room.")
	}

	icAttentionOthers := false

	if c.IsBleeding {
		oldArea.BleedsTo[oldArea.Name] = struct{}{}
		area.BleedsTo[area.Name] = struct{}{}
	}

	if !opts.IgnoreBleeding && c.IsBleeding {
		s.NotifyOthersBlood(c, oldArea, oldDname, StatusLeft, true)
		s.NotifyOthersBlood(c, area, newDname, StatusArrived, true)
		icAttentionOthers = true
	}

	var statusRefreshed map[*world.Client]struct{}
	if c.Status != "" {
		s.NotifyOthersStatus(c, area, newDname, StatusArrived)
		statusRefreshed = s.refreshRememberedStatus(c, area)
	}

	area.BroadcastICAttention(func(other *world.Client) bool {
		if other == c {
			return false
		}
		if icAttentionOthers {
			return true
		}
		_, ok := statusRefreshed[other]
		return ok
	}, false)
}

// NotifyOthersMoving broadcasts a movement line in area. Staff get an
// annotated line; everyone else gets the autopass line or footsteps
// depending on the mover's settings, the lights, and their own senses.
// A sneaking mover leaves nothing but the staff line.
func (s *Service) NotifyOthersMoving(c *world.Client, area *world.Area, autopassMes, blindMes string) {
	var staff, nbnd, ybnd, nbyd string // nb/yb = not/yes blind, nd/yd = not/yes deaf

	autopassMes = strings.TrimSuffix(autopassMes, ".")

	if c.Autopass {
		staff = autopassMes + "."
		nbnd = autopassMes + "."
		ybnd = blindMes
		nbyd = autopassMes + "."
	} else {
		staff = fmt.Sprintf("(X) %s (no autopass).", autopassMes)
	}

	if !area.Lights {
		staff = fmt.Sprintf("(X) %s while the lights were out.", autopassMes)
		nbnd = blindMes
		ybnd = blindMes
		nbyd = ""
	}
	if !c.IsVisible { // must stay the last adjustment
		staff = fmt.Sprintf("(X) %s while sneaking.", autopassMes)
		nbnd = ""
		ybnd = ""
		nbyd = ""
	}

	base := world.Filter{InAreaMode: world.AreaIs, InArea: area,
		InHubMode: world.HubIs, InHub: area.Hub}

	if c.Autopass {
		f := base
		f.ZStaffFlexMode = world.ZoneSender
		s.State.SendOOCOthers(c, staff, f)
	} else {
		// Staff who opted in see the no-autopass line; the rest get
		// whatever a regular player would.
		f := base
		f.ZStaffFlexMode = world.ZoneSender
		f.Pred = func(other *world.Client) bool { return other.NonAutopassNotify }
		s.State.SendOOCOthers(c, staff, f)

		f = base
		f.ZStaffFlexMode = world.ZoneSender
		f.Pred = func(other *world.Client) bool { return !other.NonAutopassNotify }
		s.State.SendOOCOthers(c, nbnd, f)
	}

	f := base
	f.ZStaffFlexMode = world.ZoneExclude
	f.ToBlind, f.ToDeaf = world.TriFalse, world.TriFalse
	s.State.SendOOCOthers(c, nbnd, f)

	f = base
	f.ZStaffFlexMode = world.ZoneExclude
	f.ToBlind, f.ToDeaf = world.TriTrue, world.TriFalse
	s.State.SendOOCOthers(c, ybnd, f)

	f = base
	f.ZStaffFlexMode = world.ZoneExclude
	f.ToBlind, f.ToDeaf = world.TriFalse, world.TriTrue
	s.State.SendOOCOthers(c, nbyd, f)
	// Blind and deaf players get nothing.
}

// NotifyOthersBlood broadcasts the mover's bleeding state to area.
// Wording scales with how many others already bleed there; each
// audience variant degrades along sight, hearing, then smell.
func (s *Service) NotifyOthersBlood(c *world.Client, area *world.Area, char string, status MoveStatus, sendToStaff bool) {
	othersBleeding := 0
	for _, other := range area.Clients() {
		if other != c && other.IsBleeding {
			othersBleeding++
		}
	}

	var hMes, sMes, hsMes, visStatus string
	switch {
	case c.IsBleeding && (status == StatusStay || status == StatusArrived):
		more := othersBleeding > 0
		hMes = pick(more, "You start hearing more drops of blood.",
			"You faintly start hearing drops of blood.")
		hsMes = pick(more, "You start hearing and smelling more drops of blood.",
			"You faintly start hearing and smelling drops of blood.")
		sMes = pick(more, "You start smelling more blood.",
			"You faintly start smelling blood.")
		visStatus = "now"
	case (c.IsBleeding && status == StatusLeft) || (!c.IsBleeding && status == StatusStay):
		last := othersBleeding == 0
		hMes = pick(last, "You stop hearing drops of blood.",
			"You start hearing less drops of blood.")
		hsMes = pick(last, "You stop hearing and smelling drops of blood.",
			"You start hearing and smelling less drops of blood.")
		sMes = pick(last, "You stop smelling blood.",
			"You start smelling less blood.")
		visStatus = "no longer"
	default:
		panic(fmt.Sprintf("travel: blood broadcast for client %d with bleeding=%t status=%s",
			c.ID, c.IsBleeding, status))
	}

	ybyd := hsMes
	darkened := ""
	if !area.Lights {
		darkened = "darkened "
	}

	var connector, pconnector string
	switch status {
	case StatusStay:
		connector = "is " + visStatus
		pconnector = "was " + visStatus
	case StatusLeft:
		connector = fmt.Sprintf("leave the %sarea while still", darkened)
		pconnector = fmt.Sprintf("left the %sarea while still", darkened)
	case StatusArrived:
		connector = fmt.Sprintf("arrive to the %sarea while", darkened)
		pconnector = fmt.Sprintf("arrived to the %sarea while", darkened)
	}

	var norm, ybnd, nbyd, staff string
	switch {
	case c.IsVisible && area.Lights:
		norm = fmt.Sprintf("You see %s %s bleeding.", char, connector)
		ybnd = hMes
		nbyd = norm
		staff = norm
	case !c.IsVisible && area.Lights:
		norm = hMes
		ybnd = hsMes
		nbyd = sMes
		staff = fmt.Sprintf("(X) %s %s bleeding and sneaking.", char, pconnector)
	case c.IsVisible && !area.Lights:
		norm = hsMes
		ybnd = hsMes
		nbyd = sMes
		staff = fmt.Sprintf("(X) %s %s bleeding.", char, pconnector)
	default:
		norm = hsMes
		ybnd = hsMes
		nbyd = sMes
		staff = fmt.Sprintf("(X) %s %s bleeding and sneaking.", char, pconnector)
	}

	staff = strings.Replace(staff, "no longer bleeding and sneaking.",
		"no longer bleeding, but is still sneaking.", 1)

	base := world.Filter{InAreaMode: world.AreaIs, InArea: area,
		InHubMode: world.HubIs, InHub: area.Hub}

	f := base
	f.ZStaffFlexMode = world.ZoneExclude
	f.ToBlind, f.ToDeaf = world.TriFalse, world.TriFalse
	s.State.SendOOCOthers(c, norm, f)

	f = base
	f.ZStaffFlexMode = world.ZoneExclude
	f.ToBlind, f.ToDeaf = world.TriTrue, world.TriFalse
	s.State.SendOOCOthers(c, ybnd, f)

	f = base
	f.ZStaffFlexMode = world.ZoneExclude
	f.ToBlind, f.ToDeaf = world.TriFalse, world.TriTrue
	s.State.SendOOCOthers(c, nbyd, f)

	f = base
	f.ZStaffFlexMode = world.ZoneExclude
	f.ToBlind, f.ToDeaf = world.TriTrue, world.TriTrue
	s.State.SendOOCOthers(c, ybyd, f)

	if sendToStaff {
		f = base
		f.ZStaffFlexMode = world.ZoneSender
		s.State.SendOOCOthers(c, staff, f)
	}
}

// NotifyOthersStatus reminds area about the mover's custom status.
// Staff get the status text; players who could not identify the mover
// get a vague line; blind and deaf players get nothing.
func (s *Service) NotifyOthersStatus(c *world.Client, area *world.Area, name string, status MoveStatus) {
	var normMes, vagueMes, staffVerb string
	switch status {
	case StatusStay:
		normMes = "You note something about " + name + " who was already here"
		vagueMes = "You think there is something odd about someone who was already here."
		staffVerb = "was already here"
	case StatusArrived:
		normMes = "You note something about " + name + " who has just arrived"
		vagueMes = "You think there is something odd about someone who has just arrived."
		staffVerb = "has just arrived"
	default:
		panic(fmt.Sprintf("travel: status broadcast for client %d with status=%s", c.ID, status))
	}
	staffMes := func(qual string) string {
		return fmt.Sprintf("(X) %s [%d] %s%s and has a custom status: %s",
			name, c.ID, staffVerb, qual, c.Status)
	}

	var norm, ybnd, nbyd, staff string
	switch {
	case c.IsVisible && area.Lights:
		norm = normMes
		ybnd = vagueMes
		nbyd = normMes
		staff = staffMes("")
	case !c.IsVisible && area.Lights:
		norm, ybnd, nbyd = vagueMes, vagueMes, vagueMes
		staff = staffMes(" while sneaking")
	case c.IsVisible && !area.Lights:
		norm, ybnd, nbyd = vagueMes, vagueMes, vagueMes
		staff = staffMes("")
	default:
		norm, ybnd, nbyd = vagueMes, vagueMes, vagueMes
		staff = staffMes(" while sneaking")
	}

	base := world.Filter{InAreaMode: world.AreaIs, InArea: area,
		InHubMode: world.HubIs, InHub: area.Hub}

	f := base
	f.ZStaffFlexMode = world.ZoneExclude
	f.ToBlind, f.ToDeaf = world.TriFalse, world.TriFalse
	s.State.SendOOCOthers(c, norm, f)

	f = base
	f.ZStaffFlexMode = world.ZoneExclude
	f.ToBlind, f.ToDeaf = world.TriTrue, world.TriFalse
	s.State.SendOOCOthers(c, ybnd, f)

	f = base
	f.ZStaffFlexMode = world.ZoneExclude
	f.ToBlind, f.ToDeaf = world.TriFalse, world.TriTrue
	s.State.SendOOCOthers(c, nbyd, f)

	f = base
	f.ZStaffFlexMode = world.ZoneSender
	s.State.SendOOCOthers(c, staff, f)
}

// refreshRememberedStatus re-records what each player in area
// currently perceives about the mover's status, and returns those
// whose record changed. Staff always perceive; others need the mover
// visible, the lights on, and their own sight.
func (s *Service) refreshRememberedStatus(c *world.Client, area *world.Area) map[*world.Client]struct{} {
	changed := make(map[*world.Client]struct{})
	for _, other := range area.Clients() {
		if other == c {
			continue
		}
		perceives := other.IsStaff() ||
			(c.IsVisible && area.Lights && !other.IsBlind)
		if !perceives {
			continue
		}
		if other.RememberedStatuses[c.ID] != c.Status {
			changed[other] = struct{}{}
		}
		other.RememberedStatuses[c.ID] = c.Status
	}
	return changed
}

func pick(cond bool, whenTrue, whenFalse string) string {
	if cond {
		return whenTrue
	}
	return whenFalse
}
