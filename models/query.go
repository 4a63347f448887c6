package models

// Degree counts links where the node is either endpoint. A link whose source
// and target are both the node still counts once per endpoint role it fills,
// matching the tooltip's "connections" figure.
func (g *Graph) Degree(id string) int {
	count := 0
	for _, l := range g.Links {
		if (l.Source != nil && l.Source.ID == id) || (l.Target != nil && l.Target.ID == id) {
			count++
		}
	}
	return count
}

// OutgoingLinks returns resolved links originating at the node.
func (g *Graph) OutgoingLinks(id string) []*Link {
	var result []*Link
	for _, l := range g.Links {
		if l.Resolved() && l.Source.ID == id {
			result = append(result, l)
		}
	}
	return result
}

// IncomingLinks returns resolved links targeting the node.
func (g *Graph) IncomingLinks(id string) []*Link {
	var result []*Link
	for _, l := range g.Links {
		if l.Resolved() && l.Target.ID == id {
			result = append(result, l)
		}
	}
	return result
}

// ConnectedNodes returns all nodes directly linked to the node, in load
// order, each at most once.
func (g *Graph) ConnectedNodes(id string) []*Node {
	seen := make(map[string]bool)
	for _, l := range g.Links {
		if !l.Resolved() {
			continue
		}
		if l.Source.ID == id {
			seen[l.Target.ID] = true
		}
		if l.Target.ID == id {
			seen[l.Source.ID] = true
		}
	}

	var result []*Node
	for _, n := range g.Nodes {
		if seen[n.ID] {
			result = append(result, n)
		}
	}
	return result
}

// ReputationTier maps a score to its human-readable band.
func ReputationTier(rep float64) string {
	switch {
	case rep < 25:
		return "Low"
	case rep < 50:
		return "Fair"
	case rep < 75:
		return "Good"
	case rep < 90:
		return "Excellent"
	default:
		return "Outstanding"
	}
}

// NetworkPosition maps a node's degree to its standing in the graph.
func NetworkPosition(degree int) string {
	switch {
	case degree == 0:
		return "New"
	case degree < 3:
		return "Member"
	case degree < 6:
		return "Active"
	default:
		return "Hub"
	}
}
