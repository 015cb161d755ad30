package data

import (
	"fmt"
	"time"

	"github.com/tsugo/server/internal/world"
)

// TimerDefaults fill in per-area timer values the hub table omits. A
// zero default leaves omitted timers disarmed.
type TimerDefaults struct {
	AfkDelay   time.Duration
	LurkLength time.Duration
}

// BuildWorld turns loaded definitions into live hubs, areas and zones
// registered on state.
func BuildWorld(state *world.State, hubs []HubDef, zones []ZoneDef, timers TimerDefaults) error {
	for _, hd := range hubs {
		hub := world.NewHub(hd.ID, hd.Name, hd.Characters)
		hub.DefaultArea = hd.DefaultArea
		for _, ad := range hd.Areas {
			area := world.NewArea(ad.ID, ad.Name, hub)
			area.Background = ad.Background
			area.Ambient = ad.Ambient
			area.ClockPeriod = ad.ClockPeriod
			area.Description = ad.Description
			if ad.Lights != nil {
				area.Lights = *ad.Lights
			}
			area.LobbyArea = ad.LobbyArea
			area.PrivateArea = ad.PrivateArea
			area.Noteworthy = ad.Noteworthy
			for _, name := range ad.ReachableAreas {
				area.ReachableAreas[name] = struct{}{}
			}
			for _, name := range ad.RestrictedChars {
				area.RestrictedChars[name] = struct{}{}
			}
			area.LurkLength = ad.LurkLength
			if area.LurkLength == 0 {
				area.LurkLength = timers.LurkLength
			}
			area.AfkDelay = ad.AfkDelay
			if area.AfkDelay == 0 {
				area.AfkDelay = timers.AfkDelay
			}
			area.AfkSendTo = ad.AfkSendTo
			area.HPDef = ad.HPDef
			area.HPPro = ad.HPPro
			hub.AddArea(area)
		}
		if _, ok := hub.Area(hub.DefaultArea); !ok {
			return fmt.Errorf("hub %d: default area %d not defined", hd.ID, hd.DefaultArea)
		}
		state.AddHub(hub)
	}

	for _, zd := range zones {
		zone := world.NewZone(zd.ID)
		for _, ref := range zd.Areas {
			hub, ok := state.Hub(ref.Hub)
			if !ok {
				return fmt.Errorf("zone %s: hub %d not defined", zd.ID, ref.Hub)
			}
			area, ok := hub.Area(ref.Area)
			if !ok {
				return fmt.Errorf("zone %s: area %d not in hub %d", zd.ID, ref.Area, ref.Hub)
			}
			zone.AddArea(area)
		}
		state.AddZone(zone)
	}
	return nil
}
