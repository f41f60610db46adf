package messages

import (
	"time"

	"github.com/sdcc-labs/pollnode/internal/model/entities"
)

// Notification names emitted by the polling controller.
const (
	SystemInitialized   = "node.initialized"
	WaitingForInput     = "node.waiting"
	EnteredIdle         = "node.state.idle"
	EnteredActive       = "node.state.active"
	SensorOverloadAlert = "node.alert.overload"
)

// EventMessage maps a notification name to its fixed user-visible text.
func EventMessage(eventType string) string {
	switch eventType {
	case SystemInitialized:
		return "Initialized"
	case WaitingForInput:
		return "Waiting for input"
	case EnteredIdle:
		return "State: Idle"
	case EnteredActive:
		return "State: Active"
	case SensorOverloadAlert:
		return "Alert: Sensor Overload!"
	}
	return ""
}

// NodeEvent is emitted on every controller notification.
type NodeEvent struct {
	ZoneID    string             `json:"zone_id"`
	NodeID    string             `json:"node_id"`
	EventType string             `json:"event_type"`
	Message   string             `json:"message"`
	State     entities.NodeState `json:"state"`
	Reading   uint16             `json:"reading,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
}
