// Package render turns the current graph state into a drawable scene. It is
// stateless presentation logic: every call rebuilds the full SVG from
// scratch, links first so nodes visually sit above them.
package render

import (
	"bytes"
	"fmt"
	"html"
	"math"

	"github.com/TFMV/trustgraph/models"
)

// Node and link presentation constants.
const (
	NodeRadius      = 20.0
	HoverNodeRadius = 25.0
	strokeWidth     = 3.0
	hoverStroke     = 4.0
	labelOffset     = 15.0
	labelFontSize   = 12.0
	minLineWidth    = 2.0
)

// View carries the transient interaction state the scene depends on: which
// node or link is hovered and which node is mid-drag. The zero value means
// no interaction.
type View struct {
	HoverNodeID    string
	HoverLinkIndex int // index into Graph.Links, -1 when none
	DragNodeID     string
}

// NoView is the empty interaction state.
func NoView() View {
	return View{HoverLinkIndex: -1}
}

// Tooltip is the overlay payload that accompanies a frame. The shell
// positions it near the pointer; Fading marks the opacity transition before
// the deferred actual hide.
type Tooltip struct {
	Visible bool     `json:"visible"`
	Fading  bool     `json:"fading"`
	X       float64  `json:"x"`
	Y       float64  `json:"y"`
	Title   string   `json:"title"`
	Lines   []string `json:"lines,omitempty"`
}

// Frame is one complete redraw: the scene plus its tooltip overlay.
type Frame struct {
	SVG     string  `json:"svg"`
	Tooltip Tooltip `json:"tooltip"`
}

// SceneRenderer draws a graph into an SVG document. It reads simulation
// state and never mutates it.
type SceneRenderer struct {
	Background string
}

// NewSceneRenderer returns a renderer with the default dark background.
func NewSceneRenderer() *SceneRenderer {
	return &SceneRenderer{Background: "#1a202c"}
}

// Render produces a complete SVG for the graph under the given interaction
// view. Links with an unresolved endpoint are skipped silently.
func (r *SceneRenderer) Render(g *models.Graph, view View) ([]byte, error) {
	if g.Width <= 0 || g.Height <= 0 {
		return nil, fmt.Errorf("render: invalid canvas %gx%g", g.Width, g.Height)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg width="%g" height="%g" viewBox="0 0 %g %g" xmlns="http://www.w3.org/2000/svg">`,
		g.Width, g.Height, g.Width, g.Height)
	buf.WriteByte('\n')
	fmt.Fprintf(&buf, `<rect width="100%%" height="100%%" fill="%s"/>`, r.Background)
	buf.WriteByte('\n')

	for i, l := range g.Links {
		if !l.Resolved() {
			continue
		}
		r.writeLink(&buf, l, i, view)
	}

	for _, n := range g.Nodes {
		r.writeNode(&buf, n, view)
	}

	buf.WriteString(`</svg>`)
	return buf.Bytes(), nil
}

func (r *SceneRenderer) writeLink(buf *bytes.Buffer, l *models.Link, idx int, view View) {
	width := LineWidth(l.Weight)
	stroke := "rgba(255, 255, 255, 0.4)"

	hoverNode := view.HoverNodeID != "" &&
		(l.Source.ID == view.HoverNodeID || l.Target.ID == view.HoverNodeID)
	switch {
	case view.HoverLinkIndex == idx:
		width = math.Max(4, width*1.5)
		stroke = "rgba(255, 255, 255, 1.0)"
	case hoverNode:
		width = math.Max(4, width)
		stroke = "rgba(255, 255, 255, 0.9)"
	}

	fmt.Fprintf(buf, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.2f" stroke-linecap="round" data-link="%d"/>`,
		l.Source.X, l.Source.Y, l.Target.X, l.Target.Y, stroke, width, idx)
	buf.WriteByte('\n')
}

func (r *SceneRenderer) writeNode(buf *bytes.Buffer, n *models.Node, view View) {
	radius := NodeRadius
	stroke := strokeWidth
	if n.ID == view.HoverNodeID {
		radius = HoverNodeRadius
		stroke = hoverStroke
	}

	fmt.Fprintf(buf, `<circle cx="%.2f" cy="%.2f" r="%g" fill="%s" stroke="#ffffff" stroke-width="%g" data-node="%s"/>`,
		n.X, n.Y, radius, ReputationColor(n.Reputation), stroke, html.EscapeString(n.ID))
	buf.WriteByte('\n')
	fmt.Fprintf(buf, `<text x="%.2f" y="%.2f" text-anchor="middle" font-size="%g" font-weight="bold" fill="#ffffff">%s</text>`,
		n.X, n.Y+radius+labelOffset, labelFontSize, html.EscapeString(n.DisplayLabel()))
	buf.WriteByte('\n')
}

// LineWidth derives rendered thickness from a link weight: sqrt(|weight|/10)
// with a visual floor of 2.
func LineWidth(weight float64) float64 {
	w := math.Sqrt(math.Abs(weight) / 10)
	if math.IsNaN(w) || w < minLineWidth {
		return minLineWidth
	}
	return w
}

// RenderedLinkCount reports how many links the renderer will draw, i.e. the
// resolved ones.
func RenderedLinkCount(g *models.Graph) int {
	count := 0
	for _, l := range g.Links {
		if l.Resolved() {
			count++
		}
	}
	return count
}
