package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseInput      Phase = iota // drain session queues
	PhasePreUpdate               // deliver last tick's events
	PhaseUpdate                  // game logic, timers
	PhasePostUpdate              // derived state refresh
	PhaseOutput                  // flush session buffers
	PhaseCleanup                 // reap dead sessions
)

// System is one tick-driven unit of work.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
