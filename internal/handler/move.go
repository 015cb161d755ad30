package handler

import (
	"path"
	"strconv"
	"strings"

	"github.com/tsugo/server/internal/net"
	"github.com/tsugo/server/internal/net/packet"
	"github.com/tsugo/server/internal/travel"
	"github.com/tsugo/server/internal/world"
)

// handleAreaChange processes MC with an area name or numeric ID. MC
// doubles as the music command, so an argument naming a track plays it
// for the area instead.
func (d *Deps) handleAreaChange(sess *net.Session, msg packet.Message) {
	c := clientOf(sess)
	if c == nil || c.Hub == nil {
		return
	}

	name := msg.Arg(0)
	area, ok := c.Hub.AreaByName(name)
	if !ok {
		if id, err := strconv.Atoi(name); err == nil {
			area, ok = c.Hub.Area(id)
		}
	}
	if !ok {
		if isTrack(name) {
			d.playTrack(c, name)
			return
		}
		c.SendOOC("Could not find area " + name + ".")
		return
	}

	d.moveClient(c, area)
}

// isTrack reports whether name looks like a music asset rather than an
// area reference.
func isTrack(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".opus", ".ogg", ".mp3", ".wav":
		return true
	}
	return false
}

// playTrack starts a track for everyone present and remembers it so
// newcomers hear it on entry.
func (d *Deps) playTrack(c *world.Client, track string) {
	if c.Area == nil {
		return
	}
	c.Area.CurrentTrack = track
	for _, other := range c.Area.Clients() {
		other.Conn.Send("MC", track)
	}
}

// moveClient runs the transition, delegating to the party when the
// mover belongs to one.
func (d *Deps) moveClient(c *world.Client, area *world.Area) {
	opts := travel.Options{}
	if c.Party != nil {
		opts.FromParty = true
	}
	if err := d.Travel.ChangeArea(c, area, opts); err != nil {
		c.SendOOC(err.Error())
	}
}

// handleCharPick processes CC with a character ID, -1 for spectator.
func (d *Deps) handleCharPick(sess *net.Session, msg packet.Message) {
	c := clientOf(sess)
	if c == nil || c.Area == nil {
		return
	}
	charID, err := strconv.Atoi(msg.Arg(0))
	if err != nil {
		return
	}
	if err := d.State.ChangeCharacter(c, charID, false); err != nil {
		c.SendOOC(err.Error())
	}
}
