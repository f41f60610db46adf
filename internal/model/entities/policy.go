package entities

// AlarmPolicy carries the per-zone defaults applied to nodes that do not
// set their own threshold or interval in the fleet config.
type AlarmPolicy struct {
	ZoneID     string `yaml:"zone_id" json:"zone_id"`
	Threshold  uint16 `yaml:"threshold" json:"threshold"`
	IntervalMs uint32 `yaml:"interval_ms" json:"interval_ms"`
}

// Apply fills the zero-valued tuning fields of a node from the policy.
func (p AlarmPolicy) Apply(n *Node) {
	if n.Threshold == 0 {
		n.Threshold = p.Threshold
	}
	if n.IntervalMs == 0 {
		n.IntervalMs = p.IntervalMs
	}
}
