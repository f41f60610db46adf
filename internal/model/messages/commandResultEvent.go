package messages

import (
	"time"

	"github.com/sdcc-labs/pollnode/internal/model/entities"
)

// CommandResultEvent reports the outcome of a NodeCommand back to the
// control plane and the telemetry sink.
type CommandResultEvent struct {
	ZoneID    string             `json:"zone_id"`
	NodeID    string             `json:"node_id"`
	TicketID  string             `json:"ticket_id"`
	Action    string             `json:"action"`
	Status    string             `json:"status"` // OK | FAIL
	Reason    string             `json:"reason,omitempty"`
	State     entities.NodeState `json:"state"`
	Timestamp time.Time          `json:"timestamp"`
}
