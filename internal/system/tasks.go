package system

import (
	"time"

	coresys "github.com/tsugo/server/internal/core/system"
	"github.com/tsugo/server/internal/task"
)

// TaskSystem fires due client timers. Phase 2 (Update).
type TaskSystem struct {
	tasks *task.Manager
}

func NewTaskSystem(tasks *task.Manager) *TaskSystem {
	return &TaskSystem{tasks: tasks}
}

func (s *TaskSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *TaskSystem) Update(_ time.Duration) {
	s.tasks.Tick(time.Now())
}
