package data

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tsugo/server/internal/core/event"
	"github.com/tsugo/server/internal/world"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const sampleHubs = `
hubs:
  - id: 0
    name: Main
    default_area: 0
    characters: [Phantom, Edgeworth, Maya]
    areas:
      - id: 0
        name: Basement
        background: CellarBG
        reachable_areas: [Attic]
        restricted_chars: [Phantom]
        lurk_length: 30000000000
      - id: 1
        name: Attic
        lights: false
        lobby_area: true
        clock_period: night
`

func TestLoadHubTable(t *testing.T) {
	path := writeFile(t, "hubs.yaml", sampleHubs)

	hubs, err := LoadHubTable(path)
	require.NoError(t, err)
	require.Len(t, hubs, 1)

	h := hubs[0]
	assert.Equal(t, "Main", h.Name)
	assert.Equal(t, []string{"Phantom", "Edgeworth", "Maya"}, h.Characters)
	require.Len(t, h.Areas, 2)
	assert.Equal(t, []string{"Attic"}, h.Areas[0].ReachableAreas)
	assert.Equal(t, 30*time.Second, h.Areas[0].LurkLength)
	assert.Nil(t, h.Areas[0].Lights)
	require.NotNil(t, h.Areas[1].Lights)
	assert.False(t, *h.Areas[1].Lights)
}

func TestLoadHubTableRejectsEmpty(t *testing.T) {
	path := writeFile(t, "hubs.yaml", "hubs: []\n")
	_, err := LoadHubTable(path)
	assert.Error(t, err)

	path = writeFile(t, "hubs.yaml", "hubs:\n  - id: 0\n    name: Empty\n    areas: []\n")
	_, err = LoadHubTable(path)
	assert.Error(t, err)
}

func TestLoadHubTableMissingFile(t *testing.T) {
	_, err := LoadHubTable(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadZoneTableMissingFileMeansNoZones(t *testing.T) {
	zones, err := LoadZoneTable(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Nil(t, zones)
}

func TestBuildWorld(t *testing.T) {
	hubsPath := writeFile(t, "hubs.yaml", sampleHubs)
	hubs, err := LoadHubTable(hubsPath)
	require.NoError(t, err)

	zonesPath := writeFile(t, "zones.yaml", `
zones:
  - id: z0
    areas:
      - hub: 0
        area: 0
`)
	zones, err := LoadZoneTable(zonesPath)
	require.NoError(t, err)

	state := world.NewState(zap.NewNop(), event.NewBus())
	require.NoError(t, BuildWorld(state, hubs, zones, TimerDefaults{}))

	hub, ok := state.Hub(0)
	require.True(t, ok)
	basement, ok := hub.Area(0)
	require.True(t, ok)
	attic, ok := hub.Area(1)
	require.True(t, ok)

	assert.True(t, basement.Lights, "lights default on")
	assert.False(t, attic.Lights)
	assert.True(t, attic.LobbyArea)
	assert.Equal(t, "night", attic.ClockPeriod)
	_, reachable := basement.ReachableAreas["Attic"]
	assert.True(t, reachable)
	_, restricted := basement.RestrictedChars["Phantom"]
	assert.True(t, restricted)

	zone, ok := state.Zone("z0")
	require.True(t, ok)
	assert.Same(t, zone, basement.InZone)
	assert.Nil(t, attic.InZone)
}

func TestBuildWorldValidatesReferences(t *testing.T) {
	state := world.NewState(zap.NewNop(), event.NewBus())

	badDefault := []HubDef{{ID: 0, Name: "Main", DefaultArea: 7,
		Areas: []AreaDef{{ID: 0, Name: "Basement"}}}}
	assert.Error(t, BuildWorld(state, badDefault, nil, TimerDefaults{}))

	good := []HubDef{{ID: 0, Name: "Main",
		Areas: []AreaDef{{ID: 0, Name: "Basement"}}}}
	badZone := []ZoneDef{{ID: "z0", Areas: []ZoneAreaRef{{Hub: 3, Area: 0}}}}
	state = world.NewState(zap.NewNop(), event.NewBus())
	assert.Error(t, BuildWorld(state, good, badZone, TimerDefaults{}))
}

func TestBuildWorldTimerDefaults(t *testing.T) {
	hubs := []HubDef{{ID: 0, Name: "Main", Areas: []AreaDef{
		{ID: 0, Name: "Basement"},
		{ID: 1, Name: "Attic", AfkDelay: time.Minute, LurkLength: 10 * time.Second},
	}}}

	state := world.NewState(zap.NewNop(), event.NewBus())
	require.NoError(t, BuildWorld(state, hubs, nil, TimerDefaults{
		AfkDelay:   5 * time.Minute,
		LurkLength: 30 * time.Second,
	}))

	hub, ok := state.Hub(0)
	require.True(t, ok)
	basement, _ := hub.Area(0)
	attic, _ := hub.Area(1)

	assert.Equal(t, 5*time.Minute, basement.AfkDelay, "omitted timers fall back to config")
	assert.Equal(t, 30*time.Second, basement.LurkLength)
	assert.Equal(t, time.Minute, attic.AfkDelay, "explicit timers win")
	assert.Equal(t, 10*time.Second, attic.LurkLength)
}
