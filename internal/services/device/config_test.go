package device

import (
	"testing"
)

const fleetYAML = `
zones:
  - id: z1
    nodes:
      - id: n1
        threshold: 4000
        interval_ms: 1000
      - id: n2
        description: "policy-tuned node"
  - id: z2
    nodes:
      - id: n1
        threshold: 2500
        interval_ms: 2000
policies:
  - zone_id: z1
    threshold: 3800
    interval_ms: 500
`

func TestParseFleetConfig(t *testing.T) {
	zones, err := ParseFleetConfig([]byte(fleetYAML))
	if err != nil {
		t.Fatal(err)
	}
	if len(zones) != 2 {
		t.Fatalf("zones = %d, want 2", len(zones))
	}

	z1 := zones["z1"]
	n1 := z1.GetNode("n1")
	if n1 == nil || n1.Threshold != 4000 || n1.IntervalMs != 1000 {
		t.Errorf("n1 = %+v, want explicit tuning kept", n1)
	}
	if n1.ZoneID != "z1" {
		t.Errorf("n1.ZoneID = %q, want z1", n1.ZoneID)
	}

	// n2 has no tuning of its own and inherits the zone policy
	n2 := z1.GetNode("n2")
	if n2 == nil || n2.Threshold != 3800 || n2.IntervalMs != 500 {
		t.Errorf("n2 = %+v, want policy defaults 3800/500", n2)
	}
}

func TestParseFleetConfig_Errors(t *testing.T) {
	cases := map[string]string{
		"no zones":            `policies: []`,
		"zone without id":     "zones:\n  - nodes:\n      - id: n1\n        interval_ms: 100",
		"node without id":     "zones:\n  - id: z1\n    nodes:\n      - interval_ms: 100",
		"no interval, no pol": "zones:\n  - id: z1\n    nodes:\n      - id: n1",
		"not yaml":            `{{{`,
	}
	for name, raw := range cases {
		if _, err := ParseFleetConfig([]byte(raw)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}
