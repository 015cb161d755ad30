package system

import (
	"time"

	"github.com/tsugo/server/internal/core/event"
	coresys "github.com/tsugo/server/internal/core/system"
)

// EventSystem delivers the previous tick's published events to their
// subscribers. Phase 1 (PreUpdate).
type EventSystem struct {
	bus *event.Bus
}

func NewEventSystem(bus *event.Bus) *EventSystem {
	return &EventSystem{bus: bus}
}

func (s *EventSystem) Phase() coresys.Phase { return coresys.PhasePreUpdate }

func (s *EventSystem) Update(_ time.Duration) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}
