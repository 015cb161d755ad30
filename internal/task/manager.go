package task

import (
	"errors"
	"time"

	"go.uber.org/zap"
)

// ErrNotFound reports that no task matches an (owner, name) key.
var ErrNotFound = errors.New("task: not found")

// Params carries the per-task configuration that outlives the timer
// itself; a re-armed task restarts with the same Params.
type Params struct {
	Length         time.Duration
	Name           string // handicap display name
	AnnounceIfOver bool
	AFKDelay       time.Duration
	AFKSendTo      int
}

// ExpireFunc runs when a task's deadline passes. It executes on the
// game loop goroutine during Tick.
type ExpireFunc func(t *Task)

// Task is one scheduled timer, keyed by owner and name.
type Task struct {
	OwnerID      int
	Name         string
	CreationTime time.Time
	Deadline     time.Time
	Params       Params
	expire       ExpireFunc
}

type key struct {
	ownerID int
	name    string
}

// Manager owns all scheduled tasks. Accessed only from the game loop
// goroutine — no locks needed.
type Manager struct {
	log   *zap.Logger
	tasks map[key]*Task
	now   func() time.Time // replaceable in tests
}

func NewManager(log *zap.Logger) *Manager {
	return &Manager{
		log:   log,
		tasks: make(map[key]*Task),
		now:   time.Now,
	}
}

// NewTask schedules a task, atomically cancelling any existing task
// with the same owner and name.
func (m *Manager) NewTask(ownerID int, name string, length time.Duration, p Params, fn ExpireFunc) *Task {
	k := key{ownerID, name}
	now := m.now()
	t := &Task{
		OwnerID:      ownerID,
		Name:         name,
		CreationTime: now,
		Deadline:     now.Add(length),
		Params:       p,
		expire:       fn,
	}
	m.tasks[k] = t
	return t
}

// GetTask looks up the active task for (ownerID, name).
func (m *Manager) GetTask(ownerID int, name string) (*Task, error) {
	t, ok := m.tasks[key{ownerID, name}]
	if !ok {
		return nil, ErrNotFound
	}
	return t, nil
}

// DeleteTask cancels the task for (ownerID, name) without running it.
func (m *Manager) DeleteTask(ownerID int, name string) error {
	k := key{ownerID, name}
	if _, ok := m.tasks[k]; !ok {
		return ErrNotFound
	}
	delete(m.tasks, k)
	return nil
}

// DeleteAllFor cancels every task owned by ownerID.
func (m *Manager) DeleteAllFor(ownerID int) {
	for k := range m.tasks {
		if k.ownerID == ownerID {
			delete(m.tasks, k)
		}
	}
}

// Tick fires every task whose deadline has passed. A task is removed
// before its expiry body runs, so the body may re-arm it.
func (m *Manager) Tick(now time.Time) {
	var due []*Task
	for k, t := range m.tasks {
		if !t.Deadline.After(now) {
			due = append(due, t)
			delete(m.tasks, k)
		}
	}
	for _, t := range due {
		if t.expire != nil {
			m.safeExpire(t)
		}
	}
}

func (m *Manager) safeExpire(t *Task) {
	defer func() {
		if rec := recover(); rec != nil {
			m.log.Error("task expiry panic",
				zap.Int("owner", t.OwnerID),
				zap.String("task", t.Name),
				zap.Any("panic", rec))
		}
	}()
	t.expire(t)
}

// Now returns the manager's current time source reading.
func (m *Manager) Now() time.Time { return m.now() }

// SetNow replaces the time source. Tests only.
func (m *Manager) SetNow(fn func() time.Time) { m.now = fn }
