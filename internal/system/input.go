package system

import (
	"time"

	"go.uber.org/zap"

	coresys "github.com/tsugo/server/internal/core/system"
	"github.com/tsugo/server/internal/net"
	"github.com/tsugo/server/internal/net/packet"
)

// InputSystem drains inbound message queues from all sessions and
// dispatches them through the packet registry. Phase 0 (Input).
type InputSystem struct {
	netServer  *net.Server
	registry   *packet.Registry
	store      *net.SessionStore
	maxPerTick int
	log        *zap.Logger
}

func NewInputSystem(netServer *net.Server, registry *packet.Registry,
	store *net.SessionStore, maxPerTick int, log *zap.Logger) *InputSystem {
	return &InputSystem{
		netServer:  netServer,
		registry:   registry,
		store:      store,
		maxPerTick: maxPerTick,
		log:        log,
	}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *InputSystem) Update(_ time.Duration) {
	// Adopt freshly accepted sessions.
	for {
		select {
		case sess := <-s.netServer.NewConns:
			s.store.Add(sess)
			s.log.Debug("session adopted",
				zap.Uint64("session", sess.ID),
				zap.String("remote", sess.RemoteAddr()))
		default:
			goto doneNew
		}
	}
doneNew:

	// Drain up to maxPerTick messages per session. Closed sessions are
	// drained too so a final command sent just before disconnect still
	// runs; CleanupSystem removes them at tick end.
	for _, sess := range s.store.Raw() {
	drain:
		for i := 0; i < s.maxPerTick; i++ {
			select {
			case msg := <-sess.InQueue:
				s.registry.Dispatch(sess, sess.State, msg)
			default:
				break drain
			}
		}
	}
}

// SessionCount returns the number of tracked sessions.
func (s *InputSystem) SessionCount() int {
	return s.store.Count()
}
