// Package models provides the core domain types for the trustgraph widget:
// graph nodes with reputation scores, weighted trust links, and the raw
// record shapes accepted from callers.
package models

// Node represents one graph entity with a simulated 2-D position.
type Node struct {
	ID         string  `json:"id"`
	Label      string  `json:"label,omitempty"`
	Reputation float64 `json:"reputation"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	VX         float64 `json:"-"`
	VY         float64 `json:"-"`
	// Index is the node's stable position in the load sequence. Bookkeeping
	// only, never identity.
	Index int `json:"-"`
}

// Link is a weighted directed relationship between two nodes. Source and
// Target are resolved to node references at load time; either may be nil when
// the referenced ID was absent from the node set, in which case the link is
// excluded from force computation and rendering.
type Link struct {
	Source *Node   `json:"-"`
	Target *Node   `json:"-"`
	Weight float64 `json:"weight"`
}

// Resolved reports whether both endpoints were found at load time.
func (l *Link) Resolved() bool {
	return l.Source != nil && l.Target != nil
}

// Graph holds one widget's simulation entities plus its canvas bounds.
type Graph struct {
	ID     string  `json:"id"`
	Nodes  []*Node `json:"nodes"`
	Links  []*Link `json:"links"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NodeRecord is the raw node shape supplied by callers.
type NodeRecord struct {
	ID         string   `json:"id"`
	Label      string   `json:"label,omitempty"`
	Reputation *float64 `json:"reputation,omitempty"`
}

// LinkRecord is the raw link shape supplied by callers. Endpoints may be
// given as a bare node ID or as a full node record.
type LinkRecord struct {
	Source EndpointRef `json:"source"`
	Target EndpointRef `json:"target"`
	Weight *float64    `json:"weight,omitempty"`
}
