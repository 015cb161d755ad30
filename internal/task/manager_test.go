package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestManager(start time.Time) *Manager {
	m := NewManager(zap.NewNop())
	m.SetNow(func() time.Time { return start })
	return m
}

func TestNewTaskReplacesExisting(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m := newTestManager(start)

	var firstFired, secondFired bool
	m.NewTask(7, "afk_kick", time.Minute, Params{}, func(*Task) { firstFired = true })
	m.NewTask(7, "afk_kick", 2*time.Minute, Params{}, func(*Task) { secondFired = true })

	got, err := m.GetTask(7, "afk_kick")
	require.NoError(t, err)
	assert.Equal(t, start.Add(2*time.Minute), got.Deadline)

	m.Tick(start.Add(3 * time.Minute))
	assert.False(t, firstFired, "replaced task must not fire")
	assert.True(t, secondFired)
}

func TestGetTaskNotFound(t *testing.T) {
	m := newTestManager(time.Now())
	_, err := m.GetTask(1, "handicap")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteTask(t *testing.T) {
	m := newTestManager(time.Now())
	m.NewTask(1, "handicap", time.Minute, Params{}, nil)

	require.NoError(t, m.DeleteTask(1, "handicap"))
	assert.ErrorIs(t, m.DeleteTask(1, "handicap"), ErrNotFound)
}

func TestDeleteAllFor(t *testing.T) {
	m := newTestManager(time.Now())
	m.NewTask(1, "afk_kick", time.Minute, Params{}, nil)
	m.NewTask(1, "handicap", time.Minute, Params{}, nil)
	m.NewTask(2, "afk_kick", time.Minute, Params{}, nil)

	m.DeleteAllFor(1)

	_, err := m.GetTask(1, "afk_kick")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = m.GetTask(1, "handicap")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = m.GetTask(2, "afk_kick")
	assert.NoError(t, err)
}

func TestTickFiresOnlyDue(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m := newTestManager(start)

	var fired []string
	m.NewTask(1, "soon", time.Second, Params{}, func(tk *Task) { fired = append(fired, tk.Name) })
	m.NewTask(1, "later", time.Hour, Params{}, func(tk *Task) { fired = append(fired, tk.Name) })

	m.Tick(start.Add(2 * time.Second))
	assert.Equal(t, []string{"soon"}, fired)

	_, err := m.GetTask(1, "later")
	assert.NoError(t, err)
}

func TestExpiredTaskCanRearm(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m := newTestManager(start)

	fires := 0
	var body ExpireFunc
	body = func(tk *Task) {
		fires++
		m.NewTask(tk.OwnerID, tk.Name, tk.Params.Length, tk.Params, body)
	}
	m.NewTask(3, "lurk_callout", 10*time.Second, Params{Length: 10 * time.Second}, body)

	m.Tick(start.Add(11 * time.Second))
	require.Equal(t, 1, fires)

	// The body re-armed the timer under the same key.
	_, err := m.GetTask(3, "lurk_callout")
	require.NoError(t, err)

	m.Tick(start.Add(22 * time.Second))
	assert.Equal(t, 2, fires)
}

func TestExpiryPanicIsContained(t *testing.T) {
	start := time.Now()
	m := newTestManager(start)
	m.NewTask(1, "bad", time.Second, Params{}, func(*Task) { panic("boom") })

	fired := false
	m.NewTask(2, "good", time.Second, Params{}, func(*Task) { fired = true })

	assert.NotPanics(t, func() { m.Tick(start.Add(2 * time.Second)) })
	assert.True(t, fired)
}

func TestParamsSurviveOnTask(t *testing.T) {
	m := newTestManager(time.Now())
	p := Params{Length: time.Minute, Name: "heavy load", AnnounceIfOver: true}
	tk := m.NewTask(4, "handicap", time.Minute, p, nil)
	assert.Equal(t, p, tk.Params)
}
