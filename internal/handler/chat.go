package handler

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/tsugo/server/internal/net"
	"github.com/tsugo/server/internal/net/packet"
	"github.com/tsugo/server/internal/world"
)

// handleOOC processes CT: either a slash command or a plain OOC line
// relayed to the client's area.
func (d *Deps) handleOOC(sess *net.Session, msg packet.Message) {
	c := clientOf(sess)
	if c == nil {
		return
	}
	name, text := msg.Arg(0), msg.Arg(1)
	if text == "" {
		return
	}
	c.OOCName = name

	if strings.HasPrefix(text, "/") {
		d.dispatchCommand(c, text)
		return
	}

	for _, other := range c.Area.Clients() {
		other.Conn.Send(packet.S_OOC, name, text)
	}
}

func (d *Deps) dispatchCommand(c *world.Client, text string) {
	fields := strings.Fields(text)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "/login":
		d.cmdLogin(c, args)
	case "/logout":
		d.cmdLogout(c)
	case "/area":
		d.cmdArea(c, args)
	case "/follow":
		d.cmdFollow(c, args)
	case "/unfollow":
		d.cmdUnfollow(c)
	case "/zone_watch":
		d.cmdZoneWatch(c, args)
	case "/zone_unwatch":
		d.cmdZoneUnwatch(c)
	case "/multiclients":
		d.cmdMulticlients(c, args)
	default:
		c.SendOOC(fmt.Sprintf("Invalid command `%s`.", cmd))
	}
}

// cmdLogin grants a staff rank when the passphrase matches the
// configured bcrypt hash.
func (d *Deps) cmdLogin(c *world.Client, args []string) {
	if len(args) != 2 {
		c.SendOOC("Usage: /login <gm|cm|mod> <passphrase>")
		return
	}

	var hash string
	var rank world.Rank
	switch args[0] {
	case "gm":
		hash, rank = d.Config.Auth.GMPassHash, world.RankGM
	case "cm":
		hash, rank = d.Config.Auth.CMPassHash, world.RankCM
	case "mod":
		hash, rank = d.Config.Auth.ModPassHash, world.RankMod
	default:
		c.SendOOC("Usage: /login <gm|cm|mod> <passphrase>")
		return
	}

	if hash == "" || bcrypt.CompareHashAndPassword([]byte(hash), []byte(args[1])) != nil {
		c.SendOOC("Invalid passphrase.")
		return
	}

	c.SetRank(rank)
	c.SendOOC(fmt.Sprintf("Logged in as a %s.", rank))
	d.Log.Info("staff login", zap.Int("client", c.ID), zap.Stringer("rank", rank))
}

func (d *Deps) cmdLogout(c *world.Client) {
	if !c.IsStaff() {
		c.SendOOC("You are not logged in.")
		return
	}
	c.SetRank(world.RankNone)
	if c.ZoneWatched != nil {
		c.ZoneWatched.RemoveWatcher(c)
	}
	c.SendOOC("You are no longer logged in.")
}

func (d *Deps) cmdArea(c *world.Client, args []string) {
	if len(args) == 0 {
		d.sendAreaList(c)
		return
	}
	name := strings.Join(args, " ")
	area, ok := c.Hub.AreaByName(name)
	if !ok {
		if id, err := strconv.Atoi(name); err == nil {
			area, ok = c.Hub.Area(id)
		}
	}
	if !ok {
		c.SendOOC(fmt.Sprintf("Could not find area %s.", name))
		return
	}
	d.moveClient(c, area)
}

func (d *Deps) cmdFollow(c *world.Client, args []string) {
	if len(args) != 1 {
		c.SendOOC("Usage: /follow <client id>")
		return
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		c.SendOOC("Usage: /follow <client id>")
		return
	}
	target, ok := d.State.Client(id)
	if !ok || target == c {
		c.SendOOC("Could not find client " + args[0] + ".")
		return
	}
	c.Follow(target)
	c.SendOOC(fmt.Sprintf("Began following client %d.", target.ID))
	if target.Area != c.Area {
		d.Travel.FollowArea(c, target.Area, false)
	}
}

func (d *Deps) cmdUnfollow(c *world.Client) {
	if c.Following == nil {
		c.SendOOC("You are not following anyone.")
		return
	}
	id := c.Following.ID
	c.Unfollow()
	c.SendOOC(fmt.Sprintf("Stopped following client %d.", id))
}

func (d *Deps) cmdZoneWatch(c *world.Client, args []string) {
	if !c.IsStaff() {
		c.SendOOC("You must be authorized to do that.")
		return
	}
	if len(args) != 1 {
		c.SendOOC("Usage: /zone_watch <zone id>")
		return
	}
	zone, ok := d.State.Zone(args[0])
	if !ok {
		c.SendOOC(fmt.Sprintf("Could not find zone `%s`.", args[0]))
		return
	}
	if c.ZoneWatched != nil {
		c.ZoneWatched.RemoveWatcher(c)
	}
	zone.AddWatcher(c)
	c.SendOOC(fmt.Sprintf("You are now watching zone `%s`.", zone.ID))
}

func (d *Deps) cmdZoneUnwatch(c *world.Client) {
	if c.ZoneWatched == nil {
		c.SendOOC("You are not watching any zone.")
		return
	}
	id := c.ZoneWatched.ID
	c.ZoneWatched.RemoveWatcher(c)
	c.SendOOC(fmt.Sprintf("You are no longer watching zone `%s`.", id))
}

func (d *Deps) cmdMulticlients(c *world.Client, args []string) {
	if !c.IsStaff() {
		c.SendOOC("You must be authorized to do that.")
		return
	}
	if len(args) != 1 {
		c.SendOOC("Usage: /multiclients <client id>")
		return
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		c.SendOOC("Usage: /multiclients <client id>")
		return
	}
	target, ok := d.State.Client(id)
	if !ok {
		c.SendOOC("Could not find client " + args[0] + ".")
		return
	}
	lines := []string{fmt.Sprintf("== Multiclients of client %d ==", target.ID)}
	for _, mc := range append([]*world.Client{target}, d.State.MulticlientsOf(target)...) {
		areaName := "nowhere"
		if mc.Area != nil {
			areaName = mc.Area.Name
		}
		lines = append(lines, fmt.Sprintf("[%d] %s in %s", mc.ID, mc.Displayname(), areaName))
	}
	c.SendOOC(strings.Join(lines, "\n"))
}
