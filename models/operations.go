package models

import (
	"encoding/json"

	"github.com/google/uuid"
)

// DefaultReputation is substituted when a node record omits its score.
const DefaultReputation = 50.0

// labelRunes is the truncation length for the ID fallback label.
const labelRunes = 8

// EndpointRef accepts either a bare node ID string or a full node record
// object, mirroring the two shapes callers may pass for a link endpoint.
type EndpointRef struct {
	ID string
}

// UnmarshalJSON decodes either "abc" or {"id": "abc", ...}.
func (r *EndpointRef) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &r.ID)
	}
	var rec NodeRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	r.ID = rec.ID
	return nil
}

// MarshalJSON emits the bare ID form.
func (r EndpointRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ID)
}

// Ref builds an EndpointRef from a node ID.
func Ref(id string) EndpointRef {
	return EndpointRef{ID: id}
}

// NewGraph creates an empty graph with the given canvas bounds.
func NewGraph(width, height float64) *Graph {
	return &Graph{
		ID:     uuid.New().String(),
		Nodes:  []*Node{},
		Links:  []*Link{},
		Width:  width,
		Height: height,
	}
}

// BuildGraph normalizes raw records into simulation entities. Nodes are
// created in record order with their index assigned once; missing reputation
// defaults to DefaultReputation. Link endpoints are resolved by ID lookup;
// an unknown ID leaves the endpoint nil rather than failing the batch.
// Positions are left at the zero value for the layout engine to seed.
func BuildGraph(width, height float64, nodes []NodeRecord, links []LinkRecord) *Graph {
	g := NewGraph(width, height)

	byID := make(map[string]*Node, len(nodes))
	for i, rec := range nodes {
		rep := DefaultReputation
		if rec.Reputation != nil {
			rep = *rec.Reputation
		}
		n := &Node{
			ID:         rec.ID,
			Label:      rec.Label,
			Reputation: rep,
			Index:      i,
		}
		g.Nodes = append(g.Nodes, n)
		byID[n.ID] = n
	}

	for _, rec := range links {
		var weight float64
		if rec.Weight != nil {
			weight = *rec.Weight
		}
		g.Links = append(g.Links, &Link{
			Source: byID[rec.Source.ID],
			Target: byID[rec.Target.ID],
			Weight: weight,
		})
	}

	return g
}

// FindNode returns the node with the given ID, or nil.
func (g *Graph) FindNode(id string) *Node {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// DisplayLabel returns the node's label, falling back to a truncated form of
// its ID when no explicit label was supplied.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	runes := []rune(n.ID)
	if len(runes) <= labelRunes {
		return n.ID
	}
	return string(runes[:labelRunes]) + "..."
}

// SetPosition overwrites the node's position directly, bypassing the
// simulation. Used by the drag-commit path.
func (n *Node) SetPosition(x, y float64) {
	n.X = x
	n.Y = y
}
