package render

import (
	"encoding/json"
	"time"

	"github.com/TFMV/trustgraph/models"
)

// RenderJSON emits the positioned graph as structured JSON for machine
// consumption or custom visualizations. Unresolved links are dropped, the
// same as the SVG scene.
func RenderJSON(g *models.Graph) ([]byte, error) {
	type jsonNode struct {
		ID         string  `json:"id"`
		Label      string  `json:"label"`
		Reputation float64 `json:"reputation"`
		X          float64 `json:"x"`
		Y          float64 `json:"y"`
		Color      string  `json:"color"`
	}
	type jsonLink struct {
		Source string  `json:"source"`
		Target string  `json:"target"`
		Weight float64 `json:"weight"`
		Width  float64 `json:"width"`
	}
	type jsonGraph struct {
		Nodes    []jsonNode             `json:"nodes"`
		Links    []jsonLink             `json:"links"`
		Metadata map[string]interface{} `json:"metadata"`
	}

	out := jsonGraph{
		Nodes: make([]jsonNode, 0, len(g.Nodes)),
		Links: make([]jsonLink, 0, len(g.Links)),
		Metadata: map[string]interface{}{
			"width":     g.Width,
			"height":    g.Height,
			"nodeCount": len(g.Nodes),
			"linkCount": len(g.Links),
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}

	for _, n := range g.Nodes {
		out.Nodes = append(out.Nodes, jsonNode{
			ID:         n.ID,
			Label:      n.DisplayLabel(),
			Reputation: n.Reputation,
			X:          n.X,
			Y:          n.Y,
			Color:      ReputationColor(n.Reputation),
		})
	}
	for _, l := range g.Links {
		if !l.Resolved() {
			continue
		}
		out.Links = append(out.Links, jsonLink{
			Source: l.Source.ID,
			Target: l.Target.ID,
			Weight: l.Weight,
			Width:  LineWidth(l.Weight),
		})
	}

	return json.MarshalIndent(out, "", "  ")
}
