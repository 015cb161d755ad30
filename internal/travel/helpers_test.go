package travel

import (
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/tsugo/server/internal/core/event"
	"github.com/tsugo/server/internal/task"
	"github.com/tsugo/server/internal/world"
)

// recorder captures frames sent to one client.
type recorder struct {
	frames [][]string
}

func (r *recorder) Send(cmd string, args ...string) {
	r.frames = append(r.frames, append([]string{cmd}, args...))
}

// ooc returns the OOC message bodies received, in order.
func (r *recorder) ooc() []string {
	var out []string
	for _, f := range r.frames {
		if f[0] == "CT" && len(f) == 3 {
			out = append(out, f[2])
		}
	}
	return out
}

// sent reports whether any frame with the given command was received.
func (r *recorder) sent(cmd string) bool {
	for _, f := range r.frames {
		if f[0] == cmd {
			return true
		}
	}
	return false
}

func (r *recorder) lastArgs(cmd string) []string {
	for i := len(r.frames) - 1; i >= 0; i-- {
		if r.frames[i][0] == cmd {
			return r.frames[i][1:]
		}
	}
	return nil
}

func (r *recorder) reset() { r.frames = nil }

// fixture is a two-hub world wired to a full travel service. Hub 0 has
// a basement, an attic and a vault; a passage runs both ways between
// basement and attic only. The zone covers the basement.
type fixture struct {
	state *world.State
	tasks *task.Manager
	bus   *event.Bus
	svc   *Service

	hubA, hubB *world.Hub
	basement   *world.Area
	attic      *world.Area
	vault      *world.Area
	lobby      *world.Area // hub B
	zone       *world.Zone

	now    time.Time
	nextID int
}

var roster = []string{"Phantom", "Edgeworth", "Maya"}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	f.bus = event.NewBus()
	f.state = world.NewState(zap.NewNop(), f.bus)

	f.hubA = world.NewHub(0, "Main", roster)
	f.basement = world.NewArea(0, "Basement", f.hubA)
	f.attic = world.NewArea(1, "Attic", f.hubA)
	f.vault = world.NewArea(2, "Vault", f.hubA)
	f.hubA.AddArea(f.basement)
	f.hubA.AddArea(f.attic)
	f.hubA.AddArea(f.vault)
	f.basement.ReachableAreas["Attic"] = struct{}{}
	f.attic.ReachableAreas["Basement"] = struct{}{}

	f.hubB = world.NewHub(1, "Side", roster)
	f.lobby = world.NewArea(0, "Lobby", f.hubB)
	f.hubB.AddArea(f.lobby)

	f.zone = world.NewZone("z0")
	f.zone.AddArea(f.basement)

	f.state.AddHub(f.hubA)
	f.state.AddHub(f.hubB)
	f.state.AddZone(f.zone)

	f.tasks = task.NewManager(zap.NewNop())
	f.tasks.SetNow(func() time.Time { return f.now })

	f.svc = &Service{
		State:              f.state,
		Tasks:              f.tasks,
		Bus:                f.bus,
		Log:                zap.NewNop(),
		BlackoutBackground: "Blackout_HD",
	}
	return f
}

// client joins a fresh client to area holding charID (-1 spectates).
func (f *fixture) client(area *world.Area, charID int) *world.Client {
	f.nextID++
	c := f.state.NewClient(
		fmt.Sprintf("ipid-%d", f.nextID),
		fmt.Sprintf("hdid-%d", f.nextID),
		&recorder{})
	c.Hub = area.Hub
	c.Area = area
	c.NewArea = area
	c.CharID = charID
	area.AddClient(c)
	return c
}

func rec(c *world.Client) *recorder { return c.Conn.(*recorder) }
