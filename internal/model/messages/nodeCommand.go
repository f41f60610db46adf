package messages

import "time"

// Command actions accepted by a node runtime.
const (
	ActionReset     = "reset"
	ActionConfigure = "configure"
)

// NodeCommand asks a node to clear its error latch or swap in new tuning.
type NodeCommand struct {
	ZoneID     string    `json:"zone_id"`
	NodeID     string    `json:"node_id"`
	Action     string    `json:"action"`
	Threshold  uint16    `json:"threshold,omitempty"`
	IntervalMs uint32    `json:"interval_ms,omitempty"`
	TicketID   string    `json:"ticket_id"`
	Timestamp  time.Time `json:"timestamp"`
}
