package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ZoneAreaRef points into a hub's area list.
type ZoneAreaRef struct {
	Hub  int `yaml:"hub"`
	Area int `yaml:"area"`
}

// ZoneDef is one zone entry of the zone file.
type ZoneDef struct {
	ID    string        `yaml:"id"`
	Areas []ZoneAreaRef `yaml:"areas"`
}

type zoneFile struct {
	Zones []ZoneDef `yaml:"zones"`
}

// LoadZoneTable reads the zone definitions. A missing file means no
// zones, which is a valid setup.
func LoadZoneTable(path string) ([]ZoneDef, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read zone table %s: %w", path, err)
	}
	var f zoneFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse zone table %s: %w", path, err)
	}
	return f.Zones, nil
}
