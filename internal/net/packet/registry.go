package packet

import (
	"fmt"

	"go.uber.org/zap"
)

// SessionState gates which commands a connection may send.
type SessionState int

const (
	StateHandshake  SessionState = iota // connected, identity not yet recorded
	StateIdentified                     // identity accepted, not yet in an area
	StateJoined                         // participating in an area
)

// HandlerFunc processes one decoded message. sess is *net.Session;
// kept as any to avoid an import cycle with the net package.
type HandlerFunc func(sess any, msg Message)

type entry struct {
	minState SessionState
	fn       HandlerFunc
}

// Registry maps command names to handlers. Registration happens once
// at startup; dispatch runs on the game loop goroutine only.
type Registry struct {
	handlers map[string]entry
	log      *zap.Logger
}

func NewRegistry(log *zap.Logger) *Registry {
	return &Registry{
		handlers: make(map[string]entry),
		log:      log,
	}
}

// Register binds a handler to a command name. Duplicate registration
// is a programmer error.
func (r *Registry) Register(cmd string, minState SessionState, fn HandlerFunc) {
	if _, dup := r.handlers[cmd]; dup {
		panic(fmt.Sprintf("packet: duplicate handler for %q", cmd))
	}
	r.handlers[cmd] = entry{minState: minState, fn: fn}
}

// Dispatch routes a message to its handler. Unknown commands are
// ignored; stock clients send several we have no use for.
func (r *Registry) Dispatch(sess any, state SessionState, msg Message) {
	e, ok := r.handlers[msg.Cmd]
	if !ok {
		return
	}
	if state < e.minState {
		r.log.Debug("command before allowed state",
			zap.String("cmd", msg.Cmd),
			zap.Int("state", int(state)))
		return
	}
	r.safeCall(e.fn, sess, msg)
}

func (r *Registry) safeCall(fn HandlerFunc, sess any, msg Message) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("handler panic",
				zap.String("cmd", msg.Cmd),
				zap.Any("panic", rec))
		}
	}()
	fn(sess, msg)
}
