package travel

import (
	"errors"
	"fmt"

	"github.com/tsugo/server/internal/task"
	"github.com/tsugo/server/internal/world"
)

// CheckChangeArea validates a transition of c into area without
// mutating anything. The checks run in a fixed order so a client
// failing several always sees the same refusal. On success it returns
// the character ID the mover will hold at the destination.
func (s *Service) CheckChangeArea(c *world.Client, area *world.Area, opts Options) (int, error) {
	if c.Area == area {
		return 0, reject(RejectInArea, "User is already in target area.")
	}

	if !c.IsStaff() && !opts.OverrideEffects {
		if t, err := s.Tasks.GetTask(c.ID, TaskHandicap); err == nil {
			remain := world.TimeRemaining(t.CreationTime, t.Params.Length, s.Tasks.Now())
			return 0, reject(RejectHandicap, fmt.Sprintf(
				"You are still under the effects of movement handicap '%s'. "+
					"Please wait %s before changing areas.",
				t.Params.Name, world.TimeFormat(remain)))
		} else if !errors.Is(err, task.ErrNotFound) {
			return 0, err
		}
	}

	if area.LobbyArea && !c.IsVisible && !c.IsOfficer() {
		return 0, reject(RejectSneakLobby,
			"Lobby areas do not let non-authorized users remain sneaking. Please "+
				"change music, speak IC or ask a staff member to reveal you.")
	}
	if area.PrivateArea && !c.IsVisible {
		return 0, reject(RejectSneakPrivate,
			"Private areas do not let sneaked users in. Please change the "+
				"music, speak IC or ask a staff member to reveal you.")
	}

	if _, invited := area.InviteList[c.IPID]; !invited {
		if area.IsLocked && !c.IsStaff() {
			return 0, reject(RejectLocked, "That area is locked.")
		}
		if area.IsModLocked && !c.IsMod() {
			return 0, reject(RejectModLocked, "That area is mod-locked.")
		}
	}

	if !(c.IsStaff() || c.IsTransient || opts.OverridePassages || area.IsReachableFrom(c.Area)) {
		return 0, reject(RejectUnreachable, "The passage to this area is locked.")
	}

	newCharID, ok := s.resolveCharacter(c, area, opts.MoreUnavailChars)
	if !ok {
		return 0, reject(RejectNoCharacters, "No available characters in that area.")
	}
	return newCharID, nil
}

// resolveCharacter decides which character the mover holds after the
// transition. Spectators stay spectators; a cross-hub move translates
// the held character by roster name, falling back to spectator when
// the destination roster lacks it; a taken or restricted character is
// replaced by a random available one.
func (s *Service) resolveCharacter(c *world.Client, area *world.Area, moreUnavail map[int]struct{}) (int, bool) {
	if !c.HasParticipantCharacter() {
		return c.CharID, true
	}

	charName := c.CharName()
	if area.Hub.CharacterID(charName) == -1 {
		return -1, true
	}

	unavail := moreUnavail
	if area.Hub != c.Hub {
		unavail = make(map[int]struct{}, len(moreUnavail))
		for id := range moreUnavail {
			name := ""
			if c.Hub.IsParticipant(id) {
				name = c.Hub.Characters[id]
			}
			if translated := area.Hub.CharacterID(name); translated != -1 {
				unavail[translated] = struct{}{}
			}
		}
	}

	wantID := c.CharID
	if area.Hub != c.Hub {
		wantID = area.Hub.CharacterID(charName)
	}
	if area.IsCharAvailable(wantID, c.IsStaff(), unavail) {
		return wantID, true
	}

	// Prefer a random participant character over demoting to
	// spectator, so multi-area play inside a hub survives the move.
	if randID := area.RandAvailCharID(c.IsStaff(), unavail); randID != -1 {
		return randID, true
	}
	return -1, false
}
