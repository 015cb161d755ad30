package travel

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsugo/server/internal/world"
)

func TestMovementLineAutopass(t *testing.T) {
	f := newFixture(t)
	watcher := f.client(f.attic, 1)
	blind := f.client(f.attic, 2)
	blind.IsBlind = true
	c := f.client(f.basement, 0)
	c.Autopass = true

	require.NoError(t, f.svc.ChangeArea(c, f.attic, Options{}))

	assert.Contains(t, rec(watcher).ooc(), "Phantom has entered from the Basement.")
	assert.Contains(t, rec(blind).ooc(), "You hear footsteps coming into the room.")
}

func TestMovementLineDeparture(t *testing.T) {
	f := newFixture(t)
	stay := f.client(f.basement, 1)
	c := f.client(f.basement, 0)
	c.Autopass = true

	require.NoError(t, f.svc.ChangeArea(c, f.attic, Options{}))
	assert.Contains(t, rec(stay).ooc(), "Phantom has left to the Attic.")
}

func TestMovementLineNoAutopass(t *testing.T) {
	f := newFixture(t)
	watcher := f.client(f.basement, 1)
	optIn := f.client(f.basement, 2)
	optIn.SetRank(world.RankGM)
	optIn.NonAutopassNotify = true
	c := f.client(f.attic, 0)

	require.NoError(t, f.svc.ChangeArea(c, f.basement, Options{}))

	// Non-staff without autopass hear nothing at all.
	for _, msg := range rec(watcher).ooc() {
		assert.NotContains(t, msg, "entered")
		assert.NotContains(t, msg, "footsteps")
	}
	assert.Contains(t, rec(optIn).ooc(), "(X) Phantom has entered from the Attic (no autopass).")
}

func TestMovementLineLightsOut(t *testing.T) {
	f := newFixture(t)
	f.basement.Lights = false
	sighted := f.client(f.basement, 1)
	deaf := f.client(f.basement, 2)
	deaf.IsDeaf = true
	staff := f.client(f.basement, -1)
	staff.SetRank(world.RankGM)
	c := f.client(f.attic, 0)
	c.Autopass = true

	require.NoError(t, f.svc.ChangeArea(c, f.basement, Options{}))

	assert.Contains(t, rec(sighted).ooc(), "You hear footsteps coming into the room.")
	// Deaf in the dark perceive nothing.
	for _, msg := range rec(deaf).ooc() {
		assert.NotContains(t, msg, "footsteps")
		assert.NotContains(t, msg, "entered")
	}
	assert.Contains(t, rec(staff).ooc(),
		"(X) Phantom has entered from the Attic while the lights were out.")
}

func TestMovementLineSneaking(t *testing.T) {
	f := newFixture(t)
	watcher := f.client(f.basement, 1)
	staff := f.client(f.basement, -1)
	staff.SetRank(world.RankGM)
	c := f.client(f.attic, 0)
	c.Autopass = true
	c.IsVisible = false

	require.NoError(t, f.svc.ChangeArea(c, f.basement, Options{}))

	assert.Empty(t, rec(watcher).ooc(), "a sneaking mover leaves no trace")
	assert.Contains(t, rec(staff).ooc(),
		"(X) Phantom has entered from the Attic while sneaking.")
}

func TestSpectatorMovesSilently(t *testing.T) {
	f := newFixture(t)
	watcher := f.client(f.attic, 1)
	c := f.client(f.basement, -1)
	c.Autopass = true

	require.NoError(t, f.svc.ChangeArea(c, f.attic, Options{}))

	for _, msg := range rec(watcher).ooc() {
		assert.NotContains(t, msg, "entered")
	}
}

func TestBleedingMoverLeavesTrail(t *testing.T) {
	f := newFixture(t)
	c := f.client(f.basement, 0)
	c.IsBleeding = true

	require.NoError(t, f.svc.ChangeArea(c, f.attic, Options{}))

	assert.Contains(t, rec(c).ooc(), "You are bleeding.")
	_, ok := f.basement.BleedsTo["Attic"]
	assert.True(t, ok)
	_, ok = f.attic.BleedsTo["Basement"]
	assert.True(t, ok)
	_, ok = f.basement.BleedsTo["Basement"]
	assert.True(t, ok, "blood pools where the bleeder stood")
}

func TestBleedingArrivalSeen(t *testing.T) {
	f := newFixture(t)
	watcher := f.client(f.attic, 1)
	c := f.client(f.basement, 0)
	c.IsBleeding = true
	c.Autopass = true

	require.NoError(t, f.svc.ChangeArea(c, f.attic, Options{}))

	assert.Contains(t, rec(watcher).ooc(),
		"You see Phantom arrive to the area while bleeding.")
	// Bleeding pings the room.
	assert.True(t, rec(watcher).sent("RT"))
}

func TestBleedingArrivalHeard(t *testing.T) {
	f := newFixture(t)
	blind := f.client(f.attic, 1)
	blind.IsBlind = true
	c := f.client(f.basement, 0)
	c.IsBleeding = true

	require.NoError(t, f.svc.ChangeArea(c, f.attic, Options{}))
	assert.Contains(t, rec(blind).ooc(), "You faintly start hearing drops of blood.")
}

func TestBleedingArrivalSmelled(t *testing.T) {
	f := newFixture(t)
	sealed := f.client(f.attic, 1)
	sealed.IsBlind = true
	sealed.IsDeaf = true
	c := f.client(f.basement, 0)
	c.IsBleeding = true

	require.NoError(t, f.svc.ChangeArea(c, f.attic, Options{}))
	assert.Contains(t, rec(sealed).ooc(),
		"You faintly start hearing and smelling drops of blood.")
}

func TestBleedingDepartureWording(t *testing.T) {
	f := newFixture(t)
	stay := f.client(f.basement, 1)
	c := f.client(f.basement, 0)
	c.IsBleeding = true

	require.NoError(t, f.svc.ChangeArea(c, f.attic, Options{}))
	assert.Contains(t, rec(stay).ooc(),
		"You see Phantom leave the area while still bleeding.")
}

func TestBloodStaffSneakReplacement(t *testing.T) {
	f := newFixture(t)
	staff := f.client(f.attic, 1)
	staff.SetRank(world.RankGM)
	c := f.client(f.attic, 0)
	c.IsVisible = false
	c.IsBleeding = false

	// A sneaked client whose bleeding just stopped.
	f.svc.NotifyOthersBlood(c, f.attic, c.Displayname(), StatusStay, true)

	assert.Contains(t, rec(staff).ooc(),
		"(X) Phantom was no longer bleeding, but is still sneaking.")
}

func TestBloodBroadcastPanicsOnBadCall(t *testing.T) {
	f := newFixture(t)
	c := f.client(f.attic, 0)
	c.IsBleeding = false

	assert.Panics(t, func() {
		f.svc.NotifyOthersBlood(c, f.attic, c.Displayname(), StatusArrived, true)
	})
}

func TestNotifyMeBloodSighted(t *testing.T) {
	f := newFixture(t)
	bleeder := f.client(f.attic, 1)
	bleeder.IsBleeding = true
	c := f.client(f.basement, 0)

	require.NoError(t, f.svc.ChangeArea(c, f.attic, Options{}))

	assert.Contains(t, rec(c).ooc(), "You see Edgeworth is bleeding.")
	assert.True(t, rec(c).sent("RT"))
}

func TestNotifyMeBloodDegradesToHearing(t *testing.T) {
	f := newFixture(t)
	bleeder := f.client(f.attic, 1)
	bleeder.IsBleeding = true
	c := f.client(f.basement, 0)
	c.IsBlind = true

	require.NoError(t, f.svc.ChangeArea(c, f.attic, Options{}))
	assert.Contains(t, rec(c).ooc(), "You hear faint drops of blood.")
}

func TestNotifyMeBloodDegradesToSmell(t *testing.T) {
	f := newFixture(t)
	bleeder := f.client(f.attic, 1)
	bleeder.IsBleeding = true
	c := f.client(f.basement, 0)
	c.IsBlind = true
	c.IsDeaf = true

	require.NoError(t, f.svc.ChangeArea(c, f.attic, Options{}))
	assert.Contains(t, rec(c).ooc(), "You smell blood.")
}

func TestNotifyMeBloodStaffMerge(t *testing.T) {
	f := newFixture(t)
	visible := f.client(f.attic, 1)
	visible.IsBleeding = true
	sneaked := f.client(f.attic, 2)
	sneaked.IsBleeding = true
	sneaked.IsVisible = false
	c := f.client(f.basement, 0)
	c.SetRank(world.RankGM)

	require.NoError(t, f.svc.ChangeArea(c, f.attic, Options{}))

	assert.Contains(t, rec(c).ooc(),
		"(X) You see Edgeworth is bleeding, and you see Maya is bleeding while sneaking.")
}

func TestNotifyMeBloodTrail(t *testing.T) {
	f := newFixture(t)
	f.attic.BleedsTo["Attic"] = struct{}{}
	f.attic.BleedsTo["Basement"] = struct{}{}
	f.attic.BleedsTo["Vault"] = struct{}{}
	c := f.client(f.basement, 0)

	require.NoError(t, f.svc.ChangeArea(c, f.attic, Options{}))

	assert.Contains(t, rec(c).ooc(),
		"You spot a blood trail leading to the Basement and the Vault.")
}

func TestNotifyMeBloodPool(t *testing.T) {
	f := newFixture(t)
	f.attic.BleedsTo["Attic"] = struct{}{}
	c := f.client(f.basement, 0)

	require.NoError(t, f.svc.ChangeArea(c, f.attic, Options{}))
	assert.Contains(t, rec(c).ooc(), "You spot some blood in the area.")
}

func TestNotifyMeBloodSmearedHidesTrail(t *testing.T) {
	f := newFixture(t)
	f.attic.BleedsTo["Attic"] = struct{}{}
	f.attic.BleedsTo["Basement"] = struct{}{}
	f.attic.BloodSmeared = true
	c := f.client(f.basement, 0)

	require.NoError(t, f.svc.ChangeArea(c, f.attic, Options{}))
	assert.Contains(t, rec(c).ooc(), "You spot some smeared blood in the area.")
}

func TestNotifyMeBloodSmearedStaffSeesTrail(t *testing.T) {
	f := newFixture(t)
	f.attic.BleedsTo["Attic"] = struct{}{}
	f.attic.BleedsTo["Basement"] = struct{}{}
	f.attic.BloodSmeared = true
	c := f.client(f.basement, 0)
	c.SetRank(world.RankGM)

	require.NoError(t, f.svc.ChangeArea(c, f.attic, Options{}))
	assert.Contains(t, rec(c).ooc(),
		"(X) You spot a smeared blood trail leading to the Basement.")
}

func TestNotifyMeBloodDarkSmell(t *testing.T) {
	f := newFixture(t)
	f.attic.Lights = false
	f.attic.BleedsTo["Attic"] = struct{}{}
	c := f.client(f.basement, 0)

	require.NoError(t, f.svc.ChangeArea(c, f.attic, Options{}))
	assert.Contains(t, rec(c).ooc(), "You smell blood.")
}

func TestNotifyMeBloodSneakSmellInDarkWithoutMoving(t *testing.T) {
	f := newFixture(t)
	f.basement.Lights = false
	sneaked := f.client(f.basement, 0)
	sneaked.IsBleeding = true
	sneaked.IsVisible = false
	c := f.client(f.basement, 1)
	c.IsDeaf = true

	// Re-checking the current area: darkness alone is enough to smell
	// a sneaked bleeder, no fresh arrival required.
	found := f.svc.NotifyMeBlood(c, f.basement, true, true)

	assert.True(t, found)
	assert.Contains(t, rec(c).ooc(), "You smell blood.")
}

func TestStatusArrivalNoticed(t *testing.T) {
	f := newFixture(t)
	watcher := f.client(f.attic, 1)
	c := f.client(f.basement, 0)
	c.Status = "wounded"
	c.Autopass = true

	require.NoError(t, f.svc.ChangeArea(c, f.attic, Options{}))

	assert.Contains(t, rec(watcher).ooc(),
		"You note something about Phantom who has just arrived")
	assert.True(t, rec(watcher).sent("RT"))
}

func TestStatusAttentionOnlyOnChange(t *testing.T) {
	f := newFixture(t)
	watcher := f.client(f.attic, 1)
	watcher.RememberedStatuses = map[int]string{}
	c := f.client(f.basement, 0)
	c.Status = "wounded"
	c.Autopass = true
	watcher.RememberedStatuses[c.ID] = "wounded"

	require.NoError(t, f.svc.ChangeArea(c, f.attic, Options{}))

	assert.Contains(t, rec(watcher).ooc(),
		"You note something about Phantom who has just arrived")
	assert.False(t, rec(watcher).sent("RT"), "a known status does not ping")
}

func TestStatusVagueInDark(t *testing.T) {
	f := newFixture(t)
	f.attic.Lights = false
	watcher := f.client(f.attic, 1)
	c := f.client(f.basement, 0)
	c.Status = "wounded"

	require.NoError(t, f.svc.ChangeArea(c, f.attic, Options{}))
	assert.Contains(t, rec(watcher).ooc(),
		"You think there is something odd about someone who has just arrived.")
}

func TestStatusStaffLine(t *testing.T) {
	f := newFixture(t)
	staff := f.client(f.basement, 1)
	staff.SetRank(world.RankGM)
	c := f.client(f.attic, 0)
	c.Status = "wounded"
	c.IsVisible = false

	require.NoError(t, f.svc.ChangeArea(c, f.basement, Options{}))
	assert.Contains(t, rec(staff).ooc(), fmt.Sprintf(
		"(X) Phantom [%d] has just arrived while sneaking and has a custom status: wounded", c.ID))
}

func TestNotifyMeStatusOnEntry(t *testing.T) {
	f := newFixture(t)
	marked := f.client(f.attic, 1)
	marked.Status = "bandaged"
	c := f.client(f.basement, 0)

	require.NoError(t, f.svc.ChangeArea(c, f.attic, Options{}))

	assert.Contains(t, rec(c).ooc(),
		"You note something about Edgeworth who was in the area already.")
	assert.Equal(t, "bandaged", c.RememberedStatuses[marked.ID])
}

func TestNoteworthyAreaDings(t *testing.T) {
	f := newFixture(t)
	f.attic.Noteworthy = true
	c := f.client(f.basement, 0)

	require.NoError(t, f.svc.ChangeArea(c, f.attic, Options{}))

	assert.Contains(t, rec(c).ooc(), "Something in the area catches your attention.")
	assert.Equal(t, []string{"attention_ding"}, rec(c).lastArgs("RT"))
}

func TestZoneCrossingMessages(t *testing.T) {
	f := newFixture(t)
	c := f.client(f.basement, 0)

	require.NoError(t, f.svc.ChangeArea(c, f.attic, Options{}))
	assert.Contains(t, rec(c).ooc(), "You have left zone `z0`.")

	rec(c).reset()
	require.NoError(t, f.svc.ChangeArea(c, f.basement, Options{}))
	assert.Contains(t, rec(c).ooc(), "You have entered zone `z0`.")
}

func TestZoneCrossingStaffHints(t *testing.T) {
	f := newFixture(t)
	c := f.client(f.basement, 0)
	c.SetRank(world.RankGM)
	f.zone.AddWatcher(c)

	require.NoError(t, f.svc.ChangeArea(c, f.attic, Options{}))
	assert.Contains(t, rec(c).ooc(), "(X) You have left zone `z0`. To stop receiving its "+
		"notifications, stop watching it with /zone_unwatch")
}

func TestZoneWatcherSeesBoundaryCrossing(t *testing.T) {
	f := newFixture(t)
	watcher := f.client(f.attic, 1)
	watcher.SetRank(world.RankGM)
	f.zone.AddWatcher(watcher)
	c := f.client(f.basement, 0)

	require.NoError(t, f.svc.ChangeArea(c, f.attic, Options{}))

	assert.Contains(t, rec(watcher).ooc(),
		fmt.Sprintf("(X) Phantom [%d] has left your zone (0->1).", c.ID))
}

func TestShownameConflictRemoved(t *testing.T) {
	f := newFixture(t)
	holder := f.client(f.attic, 1)
	holder.Showname = "The Masked One"
	c := f.client(f.basement, 0)
	c.Showname = "The Masked One"

	require.NoError(t, f.svc.ChangeArea(c, f.attic, Options{}))

	assert.Equal(t, "", c.Showname)
	assert.Contains(t, rec(c).ooc(), "Your showname `The Masked One` was already used in "+
		"this area, so it has been removed.")
}
