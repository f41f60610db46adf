package device

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sdcc-labs/pollnode/internal/model/entities"
)

// FleetConfig is the YAML fleet file: the zones this control plane manages
// plus per-zone tuning defaults for nodes that do not set their own.
type FleetConfig struct {
	Zones    []entities.Zone        `yaml:"zones"`
	Policies []entities.AlarmPolicy `yaml:"policies"`
}

// LoadFleetConfig reads the fleet file and returns the zone map with policy
// defaults already applied.
func LoadFleetConfig(path string) (map[string]entities.Zone, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fleet config: %w", err)
	}
	return ParseFleetConfig(raw)
}

func ParseFleetConfig(raw []byte) (map[string]entities.Zone, error) {
	var cfg FleetConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal fleet config: %w", err)
	}
	if len(cfg.Zones) == 0 {
		return nil, fmt.Errorf("fleet config has no zones")
	}

	policies := make(map[string]entities.AlarmPolicy, len(cfg.Policies))
	for _, p := range cfg.Policies {
		policies[p.ZoneID] = p
	}

	zones := make(map[string]entities.Zone, len(cfg.Zones))
	for _, z := range cfg.Zones {
		if z.ID == "" {
			return nil, fmt.Errorf("fleet config: zone without id")
		}
		for i := range z.Nodes {
			n := &z.Nodes[i]
			if n.ID == "" {
				return nil, fmt.Errorf("fleet config: zone %s has a node without id", z.ID)
			}
			n.ZoneID = z.ID
			if p, ok := policies[z.ID]; ok {
				p.Apply(n)
			}
			if n.IntervalMs == 0 {
				return nil, fmt.Errorf("fleet config: node %s/%s has no interval and no policy default", z.ID, n.ID)
			}
		}
		zones[z.ID] = z
	}
	return zones, nil
}
