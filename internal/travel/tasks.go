package travel

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/tsugo/server/internal/task"
	"github.com/tsugo/server/internal/world"
)

// CheckLurk arms or disarms the lurk callout timer for c based on its
// current area. Staff and spectators never lurk.
func (s *Service) CheckLurk(c *world.Client) {
	area := c.Area
	if area != nil && area.LurkLength > 0 && !c.IsStaff() && c.HasParticipantCharacter() {
		s.Tasks.NewTask(c.ID, TaskLurkCallout, area.LurkLength,
			task.Params{Length: area.LurkLength}, s.lurkExpire(c))
	} else {
		_ = s.Tasks.DeleteTask(c.ID, TaskLurkCallout)
	}
}

// lurkExpire announces that c has stayed silent, then re-arms the
// timer so the callout repeats until the client speaks or leaves.
func (s *Service) lurkExpire(c *world.Client) task.ExpireFunc {
	return func(t *task.Task) {
		area := c.Area
		if area == nil {
			return
		}
		length := int(t.Params.Length.Seconds())
		s.State.SendOOCOthers(c, fmt.Sprintf("(X) %s has not spoken in the past %d seconds.",
			c.Displayname(), length),
			world.Filter{ZStaffFlexMode: world.ZoneSender,
				InAreaMode: world.AreaSame, InHubMode: world.HubSame})
		// Only players both blind and deaf could not tell on their own.
		s.State.SendOOCOthers(c, fmt.Sprintf("%s is being tightlipped.", c.Displayname()),
			world.Filter{ZStaffFlexMode: world.ZoneExclude,
				InAreaMode: world.AreaSame, InHubMode: world.HubSame,
				Pred: func(other *world.Client) bool {
					return !(other.IsBlind && other.IsDeaf)
				}})
		s.Tasks.NewTask(c.ID, TaskLurkCallout, t.Params.Length, t.Params, s.lurkExpire(c))
	}
}

// afkKickExpire moves an idle client to the area's kick destination.
// Staff and spectators are exempt; a failed kick is dropped silently.
func (s *Service) afkKickExpire(c *world.Client) task.ExpireFunc {
	return func(t *task.Task) {
		if t.Params.AFKDelay <= 0 {
			return
		}
		if c.Area == nil || c.Hub == nil {
			return
		}
		if c.Area.ID == t.Params.AFKSendTo {
			return
		}
		if !c.HasParticipantCharacter() || c.IsStaff() {
			return
		}
		dest, ok := c.Hub.Area(t.Params.AFKSendTo)
		if !ok {
			s.Log.Error("afk kick destination missing",
				zap.Int("area", c.Area.ID), zap.Int("sendto", t.Params.AFKSendTo))
			return
		}

		originalArea := c.Area
		originalName := c.Displayname()
		err := s.ChangeArea(c, dest, Options{
			OverridePassages: true,
			OverrideEffects:  true,
			IgnoreBleeding:   true,
		})
		if err != nil {
			return
		}
		c.SendOOC(fmt.Sprintf("You were kicked from area %d to area %d for being inactive "+
			"for %s.", originalArea.ID, dest.ID, world.TimeFormat(t.Params.AFKDelay)))

		if c.Area.IsLocked || c.Area.IsModLocked {
			delete(c.Area.InviteList, c.IPID)
		}

		if p := c.Party; p != nil {
			p.RemoveMember(c)
			c.SendOOC("You were also kicked off from your party.")
			for _, m := range p.Members() {
				m.SendOOC(fmt.Sprintf("%s was AFK kicked from your party.", originalName))
			}
		}
	}
}

// handicapExpire lifts the movement handicap when its timer runs out.
func (s *Service) handicapExpire(c *world.Client) task.ExpireFunc {
	return func(t *task.Task) {
		if t.Params.AnnounceIfOver && !c.IsStaff() {
			c.SendOOC("Your movement handicap has expired. You may move to a new area.")
		}
	}
}
