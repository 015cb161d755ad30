package travel

import (
	"go.uber.org/zap"

	"github.com/tsugo/server/internal/core/event"
	"github.com/tsugo/server/internal/task"
	"github.com/tsugo/server/internal/world"
)

// Task names used for (owner, name)-keyed timers.
const (
	TaskAFKKick     = "afk_kick"
	TaskHandicap    = "handicap"
	TaskLurkCallout = "lurk_callout"
)

// Hooks are the script entry points fired after a committed
// transition. Failures are logged, never surfaced to the mover.
type Hooks interface {
	AreaLeave(areaName, charName string) error
	AreaEnter(areaName, charName string) error
}

// Service runs area transitions: validation, the perception-filtered
// notification fan-out, and post-transition side effects. All methods
// run on the game loop goroutine.
type Service struct {
	State *world.State
	Tasks *task.Manager
	Bus   *event.Bus
	Log   *zap.Logger
	Hooks Hooks // optional

	// Background shown instead of the area's own while the viewer
	// cannot see.
	BlackoutBackground string
}

// Options tune a single transition request.
type Options struct {
	OverridePassages    bool
	OverrideEffects     bool
	IgnoreBleeding      bool
	IgnoreFollowers     bool
	IgnoreAutopass      bool
	IgnoreChecks        bool
	IgnoreNotifications bool

	// Characters additionally treated as unavailable at the
	// destination, keyed by character ID in the mover's current hub.
	MoreUnavailChars map[int]struct{}

	// ChangeTo forces this character ID when checks are skipped.
	ChangeTo    int
	hasChangeTo bool

	// FromParty marks a move delegated by the mover's party; set
	// internally to break the party/member recursion.
	FromParty bool
}

// WithChangeTo returns o with a forced destination character.
func (o Options) WithChangeTo(charID int) Options {
	o.ChangeTo = charID
	o.hasChangeTo = true
	return o
}
