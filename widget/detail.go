package widget

import (
	"fmt"

	"github.com/TFMV/trustgraph/models"
)

// LinkSummary is one row of a node's trust relationships.
type LinkSummary struct {
	Peer   string  `json:"peer"`
	Label  string  `json:"label"`
	Weight float64 `json:"weight"`
}

// NodeDetail is the payload behind a node click: the node's standing plus
// its incoming and outgoing trust lists.
type NodeDetail struct {
	ID         string        `json:"id"`
	Label      string        `json:"label"`
	Reputation float64       `json:"reputation"`
	Tier       string        `json:"tier"`
	Degree     int           `json:"degree"`
	Position   string        `json:"position"`
	Outgoing   []LinkSummary `json:"outgoing"`
	Incoming   []LinkSummary `json:"incoming"`
}

// NodeDetail builds the detail view for a node.
func (w *Widget) NodeDetail(id string) (*NodeDetail, error) {
	var d *NodeDetail
	w.engine.WithGraph(func(g *models.Graph) {
		n := g.FindNode(id)
		if n == nil {
			return
		}

		degree := g.Degree(id)
		d = &NodeDetail{
			ID:         n.ID,
			Label:      n.DisplayLabel(),
			Reputation: n.Reputation,
			Tier:       models.ReputationTier(n.Reputation),
			Degree:     degree,
			Position:   models.NetworkPosition(degree),
		}
		for _, l := range g.OutgoingLinks(id) {
			d.Outgoing = append(d.Outgoing, LinkSummary{
				Peer:   l.Target.ID,
				Label:  l.Target.DisplayLabel(),
				Weight: l.Weight,
			})
		}
		for _, l := range g.IncomingLinks(id) {
			d.Incoming = append(d.Incoming, LinkSummary{
				Peer:   l.Source.ID,
				Label:  l.Source.DisplayLabel(),
				Weight: l.Weight,
			})
		}
	})
	if d == nil {
		return nil, fmt.Errorf("widget: node %q not found", id)
	}
	return d, nil
}
