package entities

// Zone groups the nodes managed by one control-plane instance.
type Zone struct {
	ID    string `yaml:"id" json:"id"`
	Nodes []Node `yaml:"nodes" json:"nodes"`
}

// GetNode returns the node with the given id, or nil if unknown.
func (z *Zone) GetNode(nodeID string) *Node {
	for i := range z.Nodes {
		if z.Nodes[i].ID == nodeID {
			return &z.Nodes[i]
		}
	}
	return nil
}
