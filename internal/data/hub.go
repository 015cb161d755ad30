package data

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// AreaDef is one area entry of the hub file.
type AreaDef struct {
	ID              int           `yaml:"id"`
	Name            string        `yaml:"name"`
	Background      string        `yaml:"background"`
	Ambient         string        `yaml:"ambient"`
	ClockPeriod     string        `yaml:"clock_period"`
	Description     string        `yaml:"description"`
	Lights          *bool         `yaml:"lights"` // default on
	LobbyArea       bool          `yaml:"lobby_area"`
	PrivateArea     bool          `yaml:"private_area"`
	Noteworthy      bool          `yaml:"noteworthy"`
	ReachableAreas  []string      `yaml:"reachable_areas"`
	RestrictedChars []string      `yaml:"restricted_chars"`
	LurkLength      time.Duration `yaml:"lurk_length"`
	AfkDelay        time.Duration `yaml:"afk_delay"`
	AfkSendTo       int           `yaml:"afk_sendto"`
	HPDef           int           `yaml:"hp_def"`
	HPPro           int           `yaml:"hp_pro"`
}

// HubDef is one hub entry of the hub file.
type HubDef struct {
	ID          int       `yaml:"id"`
	Name        string    `yaml:"name"`
	DefaultArea int       `yaml:"default_area"`
	Characters  []string  `yaml:"characters"`
	Areas       []AreaDef `yaml:"areas"`
}

type hubFile struct {
	Hubs []HubDef `yaml:"hubs"`
}

// LoadHubTable reads the hub/area definitions.
func LoadHubTable(path string) ([]HubDef, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read hub table %s: %w", path, err)
	}
	var f hubFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse hub table %s: %w", path, err)
	}
	if len(f.Hubs) == 0 {
		return nil, fmt.Errorf("hub table %s: no hubs defined", path)
	}
	for _, h := range f.Hubs {
		if len(h.Areas) == 0 {
			return nil, fmt.Errorf("hub table %s: hub %d has no areas", path, h.ID)
		}
	}
	return f.Hubs, nil
}
