package messages

import "time"

// NodeReading holds both raw and aggregated samples of a node's analog line.
type NodeReading struct {
	ZoneID     string    `json:"zone_id"`
	NodeID     string    `json:"node_id"`
	Raw        uint16    `json:"raw"` // ADC counts, 0..4095
	Pct        int       `json:"pct"` // raw scaled to 0..100
	Aggregated bool      `json:"aggregated"`
	Timestamp  time.Time `json:"timestamp"`
}
