package handler

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net"
	"strconv"
	"time"

	"go.uber.org/zap"

	gonet "github.com/tsugo/server/internal/net"
	"github.com/tsugo/server/internal/net/packet"
)

const serverSoftware = "tsugo"

// handleHandshake processes HI: derive the connection identity, check
// the ban list, journal the connection, and create the world client.
func (d *Deps) handleHandshake(sess *gonet.Session, msg packet.Message) {
	if clientOf(sess) != nil {
		return // repeat HI
	}
	hdid := msg.Arg(0)
	ipid := ipidOf(sess.RemoteAddr())

	if d.Bans != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()

		ban, err := d.Bans.FindActive(ctx, ipid, hdid)
		if err != nil {
			// Fail open: a database outage must not lock everyone out.
			d.Log.Error("ban lookup failed", zap.Error(err))
		} else if ban != nil {
			sess.Send(packet.S_BANNED, ban.Reason)
			sess.FlushOutput()
			sess.Close()
			d.Log.Info("rejected banned connection",
				zap.String("ipid", ipid), zap.String("reason", ban.Reason))
			return
		}
		if err := d.Bans.RecordConnection(ctx, ipid, hdid, ""); err != nil {
			d.Log.Warn("connection journal write failed", zap.Error(err))
		}
	}

	c := d.State.NewClient(ipid, hdid, sess)
	sess.Client = c
	sess.State = packet.StateIdentified

	sess.Send(packet.S_HANDSHAKE, strconv.Itoa(c.ID), serverSoftware, "1")
	d.Log.Info("client identified",
		zap.Int("client", c.ID), zap.String("ipid", ipid))
}

func (d *Deps) handleVersion(sess *gonet.Session, msg packet.Message) {
	// Client name and version, informational only.
	d.Log.Debug("client version",
		zap.String("name", msg.Arg(0)), zap.String("version", msg.Arg(1)))
}

func (d *Deps) handleKeepalive(sess *gonet.Session, msg packet.Message) {
	sess.Send(packet.C_KEEPALIVE)
}

// ipidOf hashes the remote IP into a stable printable identifier, so
// raw addresses never reach logs or other players.
func ipidOf(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		host = remoteAddr
	}
	sum := sha256.Sum256([]byte(host))
	return hex.EncodeToString(sum[:6])
}

// handleJoin places an identified client into the default area of the
// default hub.
func (d *Deps) handleJoin(sess *gonet.Session, msg packet.Message) {
	c := clientOf(sess)
	if c == nil || c.Hub != nil {
		return
	}

	hub, ok := d.State.Hub(0)
	if !ok {
		for _, h := range d.State.Hubs() {
			hub = h
			break
		}
	}
	if hub == nil {
		d.Log.Error("no hubs loaded, cannot join client", zap.Int("client", c.ID))
		return
	}
	area, _ := hub.Area(hub.DefaultArea)

	c.Hub = hub
	c.Area = area
	c.NewArea = area
	area.AddClient(c)
	sess.State = packet.StateJoined

	sess.Send(packet.S_JOINED)
	c.SendOOC(d.Config.Server.MOTD)
	c.SendOOC(fmt.Sprintf("Changed area to %s.", area.Name))
	d.sendCharList(c)
	d.sendAreaList(c)
	d.Travel.CheckLurk(c)
}
