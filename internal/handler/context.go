package handler

import (
	"go.uber.org/zap"

	"github.com/tsugo/server/internal/config"
	"github.com/tsugo/server/internal/core/event"
	"github.com/tsugo/server/internal/net"
	"github.com/tsugo/server/internal/net/packet"
	"github.com/tsugo/server/internal/persist"
	"github.com/tsugo/server/internal/task"
	"github.com/tsugo/server/internal/travel"
	"github.com/tsugo/server/internal/world"
)

// Deps carries everything handlers need. Built once at startup.
type Deps struct {
	Config *config.Config
	Log    *zap.Logger
	State  *world.State
	Travel *travel.Service
	Tasks  *task.Manager
	Bus    *event.Bus
	Bans   *persist.BanRepo // nil when running without a database
}

// RegisterAll binds every command handler to the registry.
func RegisterAll(r *packet.Registry, d *Deps) {
	r.Register(packet.C_HANDSHAKE, packet.StateHandshake, func(sess any, msg packet.Message) {
		d.handleHandshake(sess.(*net.Session), msg)
	})
	r.Register(packet.C_VERSION, packet.StateHandshake, func(sess any, msg packet.Message) {
		d.handleVersion(sess.(*net.Session), msg)
	})
	r.Register(packet.C_JOIN, packet.StateIdentified, func(sess any, msg packet.Message) {
		d.handleJoin(sess.(*net.Session), msg)
	})
	r.Register(packet.C_CHAR_PICK, packet.StateJoined, func(sess any, msg packet.Message) {
		d.handleCharPick(sess.(*net.Session), msg)
	})
	r.Register(packet.C_OOC, packet.StateJoined, func(sess any, msg packet.Message) {
		d.handleOOC(sess.(*net.Session), msg)
	})
	r.Register(packet.C_AREA, packet.StateJoined, func(sess any, msg packet.Message) {
		d.handleAreaChange(sess.(*net.Session), msg)
	})
	r.Register(packet.C_CHAR_LIST, packet.StateIdentified, func(sess any, msg packet.Message) {
		d.handleCharListRequest(sess.(*net.Session), msg)
	})
	r.Register(packet.C_MUSIC_LIST, packet.StateIdentified, func(sess any, msg packet.Message) {
		d.handleAreaListRequest(sess.(*net.Session), msg)
	})
	r.Register(packet.C_KEEPALIVE, packet.StateHandshake, func(sess any, msg packet.Message) {
		d.handleKeepalive(sess.(*net.Session), msg)
	})
}

// clientOf returns the world client bound to a session, or nil before
// identification.
func clientOf(sess *net.Session) *world.Client {
	c, _ := sess.Client.(*world.Client)
	return c
}
