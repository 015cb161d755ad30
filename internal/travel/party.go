package travel

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/tsugo/server/internal/world"
)

// moveParty moves every member of p into area as one batch. All
// members are validated before anyone moves, so a single refusal
// blocks the whole group; characters resolved for earlier members
// count as taken for later ones.
func (s *Service) moveParty(p *world.Party, initiator *world.Client, area *world.Area) error {
	if p == nil {
		return s.ChangeArea(initiator, area, Options{})
	}

	members := p.Members()
	// Initiator first so its character claim wins ties.
	for i, m := range members {
		if m == initiator && i != 0 {
			members[0], members[i] = members[i], members[0]
			break
		}
	}

	claimed := make(map[int]struct{})
	chosen := make(map[*world.Client]int, len(members))
	for _, m := range members {
		charID, err := s.CheckChangeArea(m, area, Options{MoreUnavailChars: claimed})
		if err != nil {
			return fmt.Errorf("cannot move party: %s [%d]: %w", m.Displayname(), m.ID, err)
		}
		chosen[m] = charID
		if area.Hub.IsParticipant(charID) {
			// Claims are keyed in the destination roster; translate
			// back to the source hub for the next member's check.
			if srcID := membersSourceCharID(m, area, charID); srcID != -1 {
				claimed[srcID] = struct{}{}
			}
		}
	}

	for _, m := range members {
		opts := Options{IgnoreChecks: true}.WithChangeTo(chosen[m])
		if err := s.ChangeArea(m, area, opts); err != nil {
			s.Log.Warn("party member move failed after validation",
				zap.Int("client", m.ID), zap.Error(err))
		}
	}
	return nil
}

func membersSourceCharID(m *world.Client, area *world.Area, destCharID int) int {
	if m.Hub == area.Hub {
		return destCharID
	}
	if !area.Hub.IsParticipant(destCharID) {
		return -1
	}
	return m.Hub.CharacterID(area.Hub.Characters[destCharID])
}
