package travel

import (
	"fmt"
	"strings"

	"github.com/tsugo/server/internal/world"
)

// NotifyChangeArea sends every notification an area change produces:
// to the mover via NotifyMe, and to everyone else via NotifyOthers
// unless justMe is set. It returns whether the mover perceived
// anything worth an attention cue, and whether that cue is audible.
func (s *Service) NotifyChangeArea(c *world.Client, area *world.Area, oldDname string, opts Options, justMe bool) (found, ding bool) {
	found, ding = s.NotifyMe(c, area, opts)
	if !justMe {
		s.NotifyOthers(c, area, oldDname, opts)
	}
	return found, ding
}

// NotifyMe sends the mover every notification about its new
// surroundings: zone boundary crossings, showname conflicts, darkness,
// own bleeding, then the roleplay perception set.
func (s *Service) NotifyMe(c *world.Client, area *world.Area, opts Options) (found, ding bool) {
	oldArea := c.Area

	if oldArea.InZone != nil && area.InZone != oldArea.InZone {
		id := oldArea.InZone.ID
		if c.IsStaff() && c.ZoneWatched == oldArea.InZone {
			c.SendOOC(fmt.Sprintf("(X) You have left zone `%s`. To stop receiving its "+
				"notifications, stop watching it with /zone_unwatch", id))
		} else {
			c.SendOOC(fmt.Sprintf("You have left zone `%s`.", id))
		}
	}

	if area.InZone != nil && area.InZone != oldArea.InZone {
		id := area.InZone.ID
		if c.IsStaff() && c.ZoneWatched != area.InZone {
			c.SendOOC(fmt.Sprintf("(X) You have entered zone `%s`. To be able to receive "+
				"its notifications, start watching it with /zone_watch %s", id, id))
		} else {
			c.SendOOC(fmt.Sprintf("You have entered zone `%s`.", id))
		}
	}

	if c.Showname != "" && shownameTaken(area, c, c.Showname) {
		c.SendOOC(fmt.Sprintf("Your showname `%s` was already used in this area, so it "+
			"has been removed.", c.Showname))
		s.State.SendOOCOthers(c, fmt.Sprintf("(X) Client %d had their showname `%s` removed "+
			"in your zone due to it conflicting with the showname of another player in "+
			"the same area (%d).", c.ID, c.Showname, area.ID),
			world.Filter{ZStaffMode: world.ZoneOfArea, ZStaffArea: area,
				InHubMode: world.HubIs, InHub: area.Hub})
		c.Showname = ""
	}

	if c.CharShowname != "" && shownameTaken(area, c, c.CharShowname) {
		c.SendOOC(fmt.Sprintf("Your character showname `%s` was already used in this area, "+
			"so it has been removed.", c.CharShowname))
		s.State.SendOOCOthers(c, fmt.Sprintf("(X) Client %d had their character showname `%s` "+
			"removed in your zone due to it conflicting with the showname of another "+
			"player in the same area (%d).", c.ID, c.CharShowname, area.ID),
			world.Filter{ZStaffMode: world.ZoneOfArea, ZStaffArea: area,
				InHubMode: world.HubIs, InHub: area.Hub})
		c.CharShowname = ""
	}

	if !area.Lights && !c.IsBlind {
		c.SendOOC("You enter a pitch dark room.")
	}

	if !opts.IgnoreBleeding && c.IsBleeding {
		// Sets: repeat crossings leave the trail unchanged.
		oldArea.BleedsTo[area.Name] = struct{}{}
		area.BleedsTo[oldArea.Name] = struct{}{}
		c.SendOOC("You are bleeding.")
	}

	return s.notifyMeRP(c, area, true, true)
}

// notifyMeRP runs the perception checks: other players' blood, their
// statuses, and the area being noteworthy. Only the last rings the
// audible cue.
func (s *Service) notifyMeRP(c *world.Client, area *world.Area, changedVisibility, changedHearing bool) (found, ding bool) {
	blood := s.NotifyMeBlood(c, area, changedVisibility, changedHearing)
	statuses := s.NotifyMeStatus(c, area, changedVisibility, changedHearing)
	noteworthy := s.NotifyMeNoteworthy(c, area)
	return blood || statuses || noteworthy, noteworthy
}

// NotifyMeBlood tells the mover about bleeding players and blood
// trails at the destination, degraded by what it can perceive: sight
// for staff or sighted-in-light, hearing next, smell last.
func (s *Service) NotifyMeBlood(c *world.Client, area *world.Area, changedVisibility, changedHearing bool) bool {
	changedArea := c.Area != area
	found := false

	var bleedingVisible, bleedingSneaking []string
	for _, other := range area.Clients() {
		if other == c || !other.IsBleeding {
			continue
		}
		if other.IsVisible {
			bleedingVisible = append(bleedingVisible, other.Displayname())
		} else {
			bleedingSneaking = append(bleedingSneaking, other.Displayname())
		}
	}

	normalVisibility := changedVisibility && area.Lights && !c.IsBlind
	visInfo := ""
	sneInfo := ""

	if len(bleedingVisible) > 0 {
		switch {
		case c.IsStaff() || normalVisibility:
			mark := ""
			if !normalVisibility {
				mark = "(X) "
			}
			visInfo = fmt.Sprintf("%sYou see %s %s bleeding",
				mark, world.CJoin(bleedingVisible, false), isAre(len(bleedingVisible)))
		case !c.IsDeaf && changedHearing:
			visInfo = "You hear faint drops of blood"
		case c.IsBlind && c.IsDeaf && changedArea:
			visInfo = "You smell blood"
		}
	}

	if len(bleedingSneaking) > 0 {
		switch {
		case c.IsStaff():
			// The verb agrees with the visible group, matching
			// long-standing upstream behavior.
			sneInfo = fmt.Sprintf("(X) You see %s %s bleeding while sneaking",
				world.CJoin(bleedingSneaking, false), isAre(len(bleedingVisible)))
		case !c.IsDeaf && changedHearing:
			sneInfo = "You hear faint drops of blood"
		case !area.Lights || (c.IsBlind && changedArea):
			sneInfo = "You smell blood"
		}
	}

	// Merge the two halves unless the sneak half adds nothing new.
	bleedingInfo := ""
	if visInfo != "" {
		if sneInfo != "" && sneInfo != "You smell blood" && visInfo != sneInfo {
			if c.IsStaff() {
				if !strings.HasPrefix(visInfo, "(X)") {
					visInfo = "(X) " + visInfo
				}
				sneInfo = strings.Replace(sneInfo, "(X) ", "", 1)
			}
			sneInfo = strings.ToLower(sneInfo[:1]) + sneInfo[1:]
			bleedingInfo = visInfo + ", and " + sneInfo
		} else {
			bleedingInfo = visInfo
		}
	} else {
		bleedingInfo = sneInfo
	}

	if bleedingInfo != "" {
		c.SendOOC(bleedingInfo + ".")
		found = true
	}

	// Blood trails on the floor.
	trailInfo := ""
	if c.IsStaff() || normalVisibility {
		start := ""
		if !normalVisibility {
			start = "(X) "
		}
		smeared := ""
		if c.IsStaff() && area.BloodSmeared {
			smeared = "smeared "
		}

		switch {
		case !c.IsStaff() && area.BloodSmeared:
			trailInfo = start + "You spot some smeared blood in the area."
		case bleedsToOnlySelf(area):
			trailInfo = fmt.Sprintf("%sYou spot some %sblood in the area.", start, smeared)
		case len(area.BleedsTo) > 1:
			if c.IsStaff() && area.BloodSmeared {
				start = "(X) "
			}
			var dests []string
			for name := range area.BleedsTo {
				if name != area.Name {
					dests = append(dests, name)
				}
			}
			trailInfo = fmt.Sprintf("%sYou spot a %sblood trail leading to %s.",
				start, smeared, world.CJoin(dests, true))
		}
	} else if !c.IsStaff() && (len(area.BleedsTo) > 0 || area.BloodSmeared) && changedArea {
		if bleedingInfo == "" {
			trailInfo = "You smell blood."
		}
	}

	if trailInfo != "" {
		c.SendOOC(trailInfo)
		found = true
	}

	return found
}

// NotifyMeStatus tells the mover about other players' custom statuses.
// The attention cue only fires for statuses the mover has not seen
// before, so players with statuses moving together do not spam pings.
func (s *Service) NotifyMeStatus(c *world.Client, area *world.Area, changedVisibility, changedHearing bool) bool {
	normalVisibility := changedVisibility && area.Lights && !c.IsBlind
	found := false
	visInfo := ""
	sneInfo := ""

	var statusVisible, statusSneaking []*world.Client
	for _, other := range area.Clients() {
		if other == c || other.Status == "" {
			continue
		}
		if other.IsVisible {
			statusVisible = append(statusVisible, other)
		} else {
			statusSneaking = append(statusSneaking, other)
		}
	}

	if len(statusVisible) > 0 {
		if c.IsStaff() || normalVisibility {
			mark := ""
			if !normalVisibility {
				mark = "(X) "
			}
			visInfo = fmt.Sprintf("%sYou note something about %s who %s in the area already",
				mark, world.CJoin(displaynames(statusVisible), false), wasWere(len(statusVisible)))

			for _, player := range statusVisible {
				if player.Status != c.RememberedStatuses[player.ID] {
					found = true
				}
				c.RememberedStatuses[player.ID] = player.Status
			}
		} else if changedVisibility && !c.IsDeaf {
			visInfo = "You think something is unusual about someone in the area"
		}
	}

	if len(statusSneaking) > 0 && c.IsStaff() {
		sneInfo = fmt.Sprintf("(X) You note something about %s, who %s in the area already "+
			"and also sneaking",
			world.CJoin(displaynames(statusSneaking), false), wasWere(len(statusSneaking)))
	}

	info := ""
	switch {
	case visInfo != "" && sneInfo != "":
		visInfo = strings.TrimPrefix(visInfo, "(X) ")
		sneInfo = strings.Replace(sneInfo, "(X) You", "you", 1)
		info = fmt.Sprintf("(X) %s, and %s", visInfo, sneInfo)
	case visInfo != "":
		info = visInfo
	case sneInfo != "":
		info = sneInfo
	}

	if info != "" {
		c.SendOOC(info + ".")
	}

	return found
}

// NotifyMeNoteworthy pings the mover when the area itself deserves a
// look. Always sent regardless of senses.
func (s *Service) NotifyMeNoteworthy(c *world.Client, area *world.Area) bool {
	if !area.Noteworthy {
		return false
	}
	c.SendOOC("Something in the area catches your attention.")
	return true
}

func shownameTaken(area *world.Area, c *world.Client, name string) bool {
	for _, other := range area.Clients() {
		if other == c {
			continue
		}
		if world.SameShowname(other.Showname, name) ||
			world.SameShowname(other.CharShowname, name) {
			return true
		}
	}
	return false
}

func bleedsToOnlySelf(a *world.Area) bool {
	if len(a.BleedsTo) != 1 {
		return false
	}
	_, ok := a.BleedsTo[a.Name]
	return ok
}

func displaynames(clients []*world.Client) []string {
	out := make([]string, len(clients))
	for i, c := range clients {
		out[i] = c.Displayname()
	}
	return out
}

func isAre(n int) string {
	if n == 1 {
		return "is"
	}
	return "are"
}

func wasWere(n int) string {
	if n == 1 {
		return "was"
	}
	return "were"
}
