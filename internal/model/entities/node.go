package entities

// NodeState is the controller state of a polling node.
type NodeState string

const (
	NodeIdle   NodeState = "idle"
	NodeActive NodeState = "active"
	NodeError  NodeState = "error"
)

// Node represents a single polling alarm node deployed in a zone.
type Node struct {
	ZoneID      string    `yaml:"zone_id" json:"zone_id"`
	ID          string    `yaml:"id" json:"id"` // unique node identifier
	Description string    `yaml:"description,omitempty" json:"description,omitempty"`
	State       NodeState `yaml:"-" json:"state"`

	// Threshold is the raw ADC value above which the node latches into
	// the error state. Range 0..4095.
	Threshold uint16 `yaml:"threshold" json:"threshold"`

	// IntervalMs is the minimum elapsed time between timer-driven state
	// transitions, in milliseconds of the node's monotonic clock.
	IntervalMs uint32 `yaml:"interval_ms" json:"interval_ms"`

	// PublishEveryMs is the cadence at which the node publishes raw
	// readings; zero means publish on every interval.
	PublishEveryMs uint32 `yaml:"publish_every_ms,omitempty" json:"publish_every_ms,omitempty"`
}
