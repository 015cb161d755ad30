package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type probeSystem struct {
	phase Phase
	tag   string
	trace *[]string
}

func (s *probeSystem) Phase() Phase { return s.phase }

func (s *probeSystem) Update(time.Duration) {
	*s.trace = append(*s.trace, s.tag)
}

func TestRunnerOrdersByPhase(t *testing.T) {
	var trace []string
	r := NewRunner()
	// Registered out of order on purpose.
	r.Register(&probeSystem{phase: PhaseOutput, tag: "output", trace: &trace})
	r.Register(&probeSystem{phase: PhaseInput, tag: "input", trace: &trace})
	r.Register(&probeSystem{phase: PhaseCleanup, tag: "cleanup", trace: &trace})
	r.Register(&probeSystem{phase: PhaseUpdate, tag: "update", trace: &trace})

	r.Tick(time.Millisecond)

	assert.Equal(t, []string{"input", "update", "output", "cleanup"}, trace)
}

func TestRunnerKeepsRegistrationOrderWithinPhase(t *testing.T) {
	var trace []string
	r := NewRunner()
	r.Register(&probeSystem{phase: PhaseUpdate, tag: "first", trace: &trace})
	r.Register(&probeSystem{phase: PhaseUpdate, tag: "second", trace: &trace})
	r.Register(&probeSystem{phase: PhaseInput, tag: "input", trace: &trace})

	r.Tick(time.Millisecond)
	r.Tick(time.Millisecond)

	assert.Equal(t, []string{"input", "first", "second", "input", "first", "second"}, trace)
}
