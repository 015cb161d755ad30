package travel

import (
	"fmt"
	"time"

	"github.com/tsugo/server/internal/world"
)

// FollowArea moves a follower after the client it follows. justMoved
// distinguishes a leader moving right now from a follow started on a
// leader already elsewhere. The catch-up move goes wherever the leader
// could: passages, movement effects and arrival footsteps are waived,
// and the follower's own bleeding leaves no trail. A refusal is
// reported to the follower but never breaks the follow.
func (s *Service) FollowArea(c *world.Client, area *world.Area, justMoved bool) {
	if c.Area == area {
		return
	}

	name := area.Name
	if area.Hub != c.Hub {
		name = fmt.Sprintf("%s in hub %d", area.Name, area.Hub.ID)
	}
	switch {
	case !justMoved:
		c.SendOOC(fmt.Sprintf("Followed user was in area %s.", name))
	case c.IsStaff():
		c.SendOOC(fmt.Sprintf("Followed user moved to area %s at %s.",
			name, s.Tasks.Now().Format(time.ANSIC)))
	default:
		c.SendOOC(fmt.Sprintf("Followed user moved to area %s.", name))
	}

	err := s.ChangeArea(c, area, Options{
		OverridePassages: true,
		OverrideEffects:  true,
		IgnoreBleeding:   true,
		IgnoreAutopass:   true,
		IgnoreFollowers:  true,
	})
	if err != nil {
		c.SendOOC(fmt.Sprintf("Unable to follow to area %s: `%s`.", name, err.Error()))
	}
}
