package system

import (
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	coresys "github.com/tsugo/server/internal/core/system"
	"github.com/tsugo/server/internal/net"
	"github.com/tsugo/server/internal/net/packet"
	"github.com/tsugo/server/internal/task"
	"github.com/tsugo/server/internal/world"
)

// CleanupSystem tears down sessions that died during the tick: the
// world client is removed, its timers cancelled, and the area told.
// Phase 5 (Cleanup).
type CleanupSystem struct {
	netServer *net.Server
	store     *net.SessionStore
	state     *world.State
	tasks     *task.Manager
	log       *zap.Logger
}

func NewCleanupSystem(netServer *net.Server, store *net.SessionStore,
	state *world.State, tasks *task.Manager, log *zap.Logger) *CleanupSystem {
	return &CleanupSystem{
		netServer: netServer,
		store:     store,
		state:     state,
		tasks:     tasks,
		log:       log,
	}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	for {
		select {
		case id := <-s.netServer.DeadCh:
			s.teardown(id)
		default:
			return
		}
	}
}

func (s *CleanupSystem) teardown(id uint64) {
	sess := s.store.Get(id)
	if sess == nil {
		return
	}
	sess.Close()
	s.store.Remove(id)

	c, _ := sess.Client.(*world.Client)
	if c == nil {
		return
	}
	area := c.Area
	dname := c.Displayname()
	visible := c.IsVisible

	s.tasks.DeleteAllFor(c.ID)
	s.state.RemoveClient(c)

	if area != nil {
		s.notifyDisconnect(c, area, dname, visible)
		sendPlayerList(area)
	}
	s.log.Info("client disconnected",
		zap.Uint64("session", id), zap.Int("client", c.ID))
}

// notifyDisconnect announces the departure to the old area. A sneaked
// client's departure is only shown to staff.
func (s *CleanupSystem) notifyDisconnect(c *world.Client, area *world.Area, dname string, visible bool) {
	mes := fmt.Sprintf("%s has disconnected.", dname)
	if visible {
		s.state.SendOOCOthers(c, mes, world.Filter{
			InAreaMode: world.AreaIs, InArea: area,
			InHubMode: world.HubIs, InHub: area.Hub,
			IsStaff: world.TriFalse,
		})
	}
	s.state.SendOOCOthers(c, "(X) "+mes, world.Filter{
		InAreaMode: world.AreaIs, InArea: area,
		InHubMode: world.HubIs, InHub: area.Hub,
		IsStaff: world.TriTrue,
	})
}

// sendPlayerList refreshes the visible player list for everyone left
// in the area.
func sendPlayerList(area *world.Area) {
	for _, viewer := range area.Clients() {
		args := []string{strconv.Itoa(area.ID)}
		for _, other := range area.VisibleClientsFor(viewer) {
			args = append(args, strconv.Itoa(other.ID), other.Displayname())
		}
		viewer.Conn.Send(packet.S_PLAYER_LIST, args...)
	}
}
