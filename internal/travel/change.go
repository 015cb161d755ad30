package travel

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/tsugo/server/internal/core/event"
	"github.com/tsugo/server/internal/task"
	"github.com/tsugo/server/internal/world"
)

// ChangeArea moves c into area. Validation happens before any state
// changes; a returned RejectError means the world is untouched. On
// success the membership swap is atomic within the call and every
// notification and side effect has run.
func (s *Service) ChangeArea(c *world.Client, area *world.Area, opts Options) error {
	oldArea := c.Area
	oldDname := c.Displayname()
	oldCharName := c.CharName()

	proceed, found, ding, err := s.doChangeArea(c, area, opts)
	if err != nil {
		return err
	}
	if !proceed {
		return nil
	}

	oldArea.RemoveClient(c)
	s.sendPlayerList(c, oldArea)
	c.Area = area
	c.NewArea = area
	area.AddClient(c)

	s.PostAreaChanged(c, oldArea, area, found, ding, oldDname, oldCharName, opts)
	return nil
}

// doChangeArea runs everything that may still refuse the transition,
// plus the notifications that assume success but precede the
// membership swap.
func (s *Service) doChangeArea(c *world.Client, area *world.Area, opts Options) (proceed, found, ding bool, err error) {
	oldArea := c.Area

	// A party member delegates to the party so the group moves as one.
	if opts.FromParty {
		return false, false, false, s.moveParty(c.Party, c, area)
	}

	var newCharID int
	if opts.IgnoreChecks {
		newCharID = c.CharID
		if opts.hasChangeTo {
			newCharID = opts.ChangeTo
		}
	} else {
		newCharID, err = s.CheckChangeArea(c, area, opts)
		if err != nil {
			return false, false, false, err
		}
	}

	// From here on the transition will succeed.
	c.NewArea = area

	oldChar := c.CharName()
	if newCharID != c.CharID {
		if cerr := s.State.ChangeCharacter(c, newCharID, true); cerr != nil {
			s.Log.Warn("character switch during area change failed", zap.Error(cerr))
		}
		newChar := area.Hub.Characters[newCharID]
		reason := "unavailable"
		if _, restricted := area.RestrictedChars[oldChar]; restricted {
			reason = "restricted"
		}
		c.SendOOC(fmt.Sprintf("Your character was %s in your new area, switched to `%s`.",
			reason, newChar))
		s.State.SendOOCOthers(c, fmt.Sprintf("(X) Client %d had their character changed "+
			"from `%s` to `%s` in your zone as their old character was %s in their "+
			"new area (%d).", c.ID, oldChar, newChar, reason, area.ID),
			world.Filter{ZStaffMode: world.ZoneOfArea, ZStaffArea: area,
				InHubMode: world.HubIs, InHub: area.Hub})
	}

	// IC lock bypasses only last the old area.
	if c.CanBypassICLock {
		c.SendOOC("You have lost your IC lock bypass as you moved to a different area.")
		s.State.SendOOCOthers(c, fmt.Sprintf("(X) %s [%d] has lost their IC lock bypass "+
			"as they moved to a different area. (%d)", c.Displayname(), c.ID, area.ID),
			world.Filter{ZStaffFlexMode: world.ZoneOfArea, ZStaffFlexArea: oldArea,
				InHubMode: world.HubIs, InHub: oldArea.Hub})
		c.CanBypassICLock = false
	}

	if opts.IgnoreNotifications {
		return true, false, false, nil
	}

	populated := ""
	if c.IsStaff() || (!c.IsBlind && area.Lights) {
		others := 0
		for _, v := range area.VisibleClientsFor(c) {
			if v != c {
				others++
			}
		}
		var verb string
		if others > 0 {
			verb = pick(c.IsStaff(), "is", "seems")
		} else {
			verb = pick(c.IsStaff(), "isn't", "doesn't seem")
		}
		populated = fmt.Sprintf("\nThe area %s populated.", verb)
	}

	oldDname := c.Displayname()
	c.SendOOC(fmt.Sprintf("Changed area to %s.%s", area.Name, populated))
	s.Log.Info("area change",
		zap.Int("client", c.ID),
		zap.String("from", oldArea.Name),
		zap.String("to", area.Name))

	found, ding = s.NotifyChangeArea(c, area, oldDname, opts, false)

	event.Publish(s.Bus, world.AreaClientLeft{Client: c, OldArea: oldArea, NewArea: area})
	event.Publish(s.Bus, world.AreaClientEntered{Client: c, OldArea: oldArea, NewArea: area})
	return true, found, ding, nil
}

// PostAreaChanged runs every side effect of a committed transition:
// client resyncs, timers, zone bookkeeping, hub switching, script
// hooks, and follower re-homing. Nothing here can undo the move.
func (s *Service) PostAreaChanged(c *world.Client, oldArea, area *world.Area, found, ding bool, oldDname, oldCharName string, opts Options) {
	c.Conn.Send("HP", "1", fmt.Sprintf("%d", area.HPDef))
	c.Conn.Send("HP", "2", fmt.Sprintf("%d", area.HPPro))

	if c.IsBlind || !area.Lights {
		c.Conn.Send("BN", s.BlackoutBackground)
	} else {
		c.Conn.Send("BN", area.Background)
	}
	c.Conn.Send("LE")
	s.sendPlayerList(c, area)

	if area.ClockPeriod != "" && area.ClockPeriod != oldArea.ClockPeriod {
		c.Conn.Send("CL", area.ClockPeriod)
	}
	if area.CurrentTrack != "" {
		c.Conn.Send("MC", area.CurrentTrack)
	}

	if found {
		arg := "attention"
		if ding {
			arg = "attention_ding"
		}
		c.Conn.Send("RT", arg)
	}

	s.sendAreaList(c)
	s.CheckLurk(c)

	s.Tasks.NewTask(c.ID, TaskAFKKick, area.AfkDelay, task.Params{
		AFKDelay:  area.AfkDelay,
		AFKSendTo: area.AfkSendTo,
	}, s.afkKickExpire(c))

	// Restart an active movement handicap with its original settings.
	if t, err := s.Tasks.GetTask(c.ID, TaskHandicap); err == nil {
		s.Tasks.NewTask(c.ID, TaskHandicap, t.Params.Length, t.Params, s.handicapExpire(c))
	} else if !errors.Is(err, task.ErrNotFound) {
		s.Log.Error("handicap lookup failed", zap.Error(err))
	}

	if oldArea.ClientCount() == 0 && oldArea.LurkLength > 0 {
		oldArea.LurkLength = 0
		mes := fmt.Sprintf("(X) The lurk callout timer in area %s has been ended as "+
			"there is no one left there.", oldArea.Name)
		s.sendOOCSelfFlex(c, oldArea, mes)
		s.State.SendOOCOthers(c, mes,
			world.Filter{ZStaffFlexMode: world.ZoneOfArea, ZStaffFlexArea: oldArea,
				InHubMode: world.HubIs, InHub: oldArea.Hub})
	}

	if _, ok := c.RememberedLockedPassages[area.ID]; !ok {
		c.RememberedLockedPassages[area.ID] = make(map[string]bool)
	}

	if area.Ambient != "" {
		c.Conn.Send("MA", area.Ambient)
	}

	event.Publish(s.Bus, world.AreaClientLeftFinal{Client: c, OldArea: oldArea, NewArea: area})
	event.Publish(s.Bus, world.AreaClientEnteredFinal{Client: c, OldArea: oldArea, NewArea: area})

	if oldArea.Hub != area.Hub {
		s.changeHub(c, oldArea, area, oldCharName)
	}

	if c.Autoglance && (c.IsStaff() || (area.Lights && !c.IsBlind)) {
		s.autoglance(c, area)
	}

	if s.Hooks != nil {
		if err := s.Hooks.AreaLeave(oldArea.Name, oldCharName); err != nil {
			s.Log.Warn("area leave hook failed", zap.Error(err))
		}
		if err := s.Hooks.AreaEnter(area.Name, c.CharName()); err != nil {
			s.Log.Warn("area enter hook failed", zap.Error(err))
		}
	}

	if len(c.FollowedBy) > 0 && !opts.IgnoreFollowers {
		for _, follower := range append([]*world.Client(nil), c.FollowedBy...) {
			s.FollowArea(follower, area, true)
		}
	}
}

// changeHub moves c's hub pointer and reconciles its character with
// the destination roster.
func (s *Service) changeHub(c *world.Client, oldArea, area *world.Area, oldCharName string) {
	c.Hub = area.Hub
	c.SendOOC(fmt.Sprintf("Changed hub to hub %d.", c.Hub.ID))

	if !oldArea.Hub.SameRoster(area.Hub) {
		s.sendCharList(c)
		if c.Hub.IsParticipant(c.CharID) || c.CharID == -1 {
			// resolveCharacter already translated by name where it
			// could; force the client to resync to the held ID.
			newID := c.CharID
			if newID != -1 && oldCharName != "" {
				if translated := c.Hub.CharacterID(oldCharName); translated != -1 {
					newID = translated
				}
			}
			if err := s.State.ChangeCharacter(c, newID, true); err != nil {
				s.Log.Warn("roster resync failed", zap.Error(err))
			}
		}
	}

	switch {
	case c.IsOfficer():
		c.Hub.AddLeader(c)
		s.sendAreaList(c)
	case c.IsStaff():
		c.SendOOC("Logging out of GM as you changed hub.")
		c.SetRank(world.RankNone)
		s.sendAreaList(c)
	default:
		s.sendAreaList(c)
	}
}

// autoglance shows the mover the area description, marked when only
// staff senses made it readable.
func (s *Service) autoglance(c *world.Client, area *world.Area) {
	if area.Description == "" {
		return
	}
	elevated := !(area.Lights && !c.IsBlind)
	msg := ""
	if elevated {
		msg = "(X) "
	}
	msg += fmt.Sprintf("You note this about the area: `%s`.", area.Description)
	c.SendOOC(msg)
}

// sendOOCSelfFlex delivers msg to c itself only if c matches the
// permissive zone-staff filter for area.
func (s *Service) sendOOCSelfFlex(c *world.Client, area *world.Area, msg string) {
	cond, err := world.BuildCond(c, world.Filter{
		ZStaffFlexMode: world.ZoneOfArea, ZStaffFlexArea: area})
	if err != nil {
		s.Log.Error("invalid self filter", zap.Error(err))
		return
	}
	if cond(c) {
		c.SendOOC(msg)
	}
}

// sendPlayerList refreshes the visible player roster of area for c.
func (s *Service) sendPlayerList(c *world.Client, area *world.Area) {
	args := []string{fmt.Sprintf("%d", area.ID)}
	for _, other := range area.VisibleClientsFor(c) {
		args = append(args, fmt.Sprintf("%d", other.ID), other.Displayname())
	}
	c.Conn.Send("PL", args...)
}

// sendAreaList refreshes the area listing, which doubles as the
// reachable-passage view for the client's current area.
func (s *Service) sendAreaList(c *world.Client) {
	if c.Hub == nil {
		return
	}
	var names []string
	for _, a := range c.Hub.Areas() {
		names = append(names, a.Name)
	}
	c.Conn.Send("FA", names...)
}

func (s *Service) sendCharList(c *world.Client) {
	c.Conn.Send("SC", c.Hub.Characters...)
}
