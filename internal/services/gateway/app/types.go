package app

import (
	"encoding/json"
	"math"
	"strconv"
)

// ---------- Upstream payloads ----------

// NodeStatus è lo stato di un nodo come esposto dal device-service.
type NodeStatus struct {
	ZoneID      string `json:"zone_id"`
	NodeID      string `json:"node_id"`
	State       string `json:"state"`
	LastReading int    `json:"last_reading"`
	LastPct     int    `json:"last_pct"`
	Online      bool   `json:"online"`
}

// Alert è un overload alert come esposto dal telemetry-service.
type Alert struct {
	ZoneID  string `json:"zone_id,omitempty"`
	NodeID  string `json:"node_id,omitempty"`
	Reading int    `json:"reading"`
	Time    string `json:"time"` // RFC3339
}

func (a *Alert) UnmarshalJSON(b []byte) error {
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	if v, ok := m["zone_id"].(string); ok {
		a.ZoneID = v
	}
	if v, ok := m["node_id"].(string); ok {
		a.NodeID = v
	}
	if t, ok := m["time"].(string); ok && t != "" {
		a.Time = t
	} else if t, ok := m["timestamp"].(string); ok && t != "" {
		a.Time = t
	}
	// reading come numero o stringa
	if mv, ok := m["reading"]; ok {
		switch x := mv.(type) {
		case float64:
			a.Reading = int(math.Round(x))
		case string:
			if f, err := strconv.ParseFloat(x, 64); err == nil {
				a.Reading = int(math.Round(f))
			}
		}
	}
	return nil
}

type DashboardData struct {
	Nodes  []NodeStatus       `json:"nodes"`
	Alerts []Alert            `json:"alerts"`
	Stats  map[string]float64 `json:"stats"`
}
