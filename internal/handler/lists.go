package handler

import (
	"github.com/tsugo/server/internal/net"
	"github.com/tsugo/server/internal/net/packet"
	"github.com/tsugo/server/internal/world"
)

func (d *Deps) sendCharList(c *world.Client) {
	if c.Hub == nil {
		return
	}
	c.Conn.Send(packet.S_CHAR_LIST, c.Hub.Characters...)
}

func (d *Deps) sendAreaList(c *world.Client) {
	if c.Hub == nil {
		return
	}
	var names []string
	for _, a := range c.Hub.Areas() {
		names = append(names, a.Name)
	}
	c.Conn.Send(packet.S_AREA_LIST, names...)
}

func (d *Deps) handleCharListRequest(sess *net.Session, msg packet.Message) {
	if c := clientOf(sess); c != nil {
		d.sendCharList(c)
	}
}

func (d *Deps) handleAreaListRequest(sess *net.Session, msg packet.Message) {
	if c := clientOf(sess); c != nil {
		d.sendAreaList(c)
	}
}
