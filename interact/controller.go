// Package interact owns the widget's transient interaction state: the drag
// state machine, the hovered node or link, and the tooltip lifecycle. A
// single controller dispatches all pointer events against its current state,
// so no per-node handler state accumulates.
package interact

import (
	"fmt"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/TFMV/trustgraph/models"
	"github.com/TFMV/trustgraph/render"
)

// TooltipHideDelay is the pause between the fade transition starting and the
// tooltip actually hiding.
const TooltipHideDelay = 200 * time.Millisecond

// linkHitSlop is the max distance in pixels from a line segment that still
// counts as hovering it.
const linkHitSlop = 6.0

// State is the drag state machine's position: Idle or Dragging.
type State int

const (
	Idle State = iota
	Dragging
)

// Surface is the controller's access path into the simulation. The layout
// engine implements it; WithGraph holds the engine lock so hit-testing never
// reads positions mid-integration, and MoveNode is the only write path
// besides the simulation step itself.
type Surface interface {
	WithGraph(fn func(*models.Graph))
	MoveNode(id string, x, y float64)
}

// Controller tracks hover and drag state and feeds position overrides back
// into the surface. Move and up events are handled regardless of what the
// pointer is over, so a drag continues outside the node's hit area.
type Controller struct {
	surface       Surface
	requestRender func()
	log           *zap.Logger

	mu        sync.Mutex
	state     State
	dragNode  *models.Node
	offX      float64
	offY      float64
	hoverNode *models.Node
	hoverLink int
	tooltip   render.Tooltip
	hideTimer *time.Timer
}

// NewController binds a controller to its surface. requestRender is called
// whenever interaction changes the scene.
func NewController(surface Surface, requestRender func(), log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		surface:       surface,
		requestRender: requestRender,
		log:           log,
		hoverLink:     -1,
	}
}

// State returns the drag machine's current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// View returns the interaction state the renderer needs.
func (c *Controller) View() render.View {
	c.mu.Lock()
	defer c.mu.Unlock()
	v := render.View{HoverLinkIndex: c.hoverLink}
	if c.hoverNode != nil {
		v.HoverNodeID = c.hoverNode.ID
	}
	if c.dragNode != nil {
		v.DragNodeID = c.dragNode.ID
	}
	return v
}

// Tooltip returns the current overlay payload.
func (c *Controller) Tooltip() render.Tooltip {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tooltip
}

// PointerDown starts a drag when the pointer is over a node, capturing the
// offset between pointer and node position so the node does not jump to the
// pointer.
func (c *Controller) PointerDown(x, y float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var n *models.Node
	c.surface.WithGraph(func(g *models.Graph) {
		if hit := c.nodeAt(g, x, y); hit != nil {
			n = hit
			c.offX = x - hit.X
			c.offY = y - hit.Y
		}
	})
	if n == nil {
		return
	}
	c.state = Dragging
	c.dragNode = n
	c.log.Debug("drag start", zap.String("node", n.ID))
}

// PointerMove updates a drag in progress or, in the idle state, recomputes
// hover. Drag positions are not clamped; the next simulation step, if any,
// clamps them back.
func (c *Controller) PointerMove(x, y float64) {
	c.mu.Lock()
	if c.state == Dragging {
		n := c.dragNode
		nx, ny := x-c.offX, y-c.offY
		c.mu.Unlock()
		c.surface.MoveNode(n.ID, nx, ny)
		c.requestRender()
		return
	}
	changed := c.updateHoverLocked(x, y)
	c.mu.Unlock()
	if changed {
		c.requestRender()
	}
}

// PointerUp ends any drag. No re-settling is triggered.
func (c *Controller) PointerUp() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Dragging {
		return
	}
	c.log.Debug("drag end", zap.String("node", c.dragNode.ID))
	c.state = Idle
	c.dragNode = nil
}

// PointerLeave clears hover state when the pointer exits the canvas.
func (c *Controller) PointerLeave() {
	c.mu.Lock()
	changed := false
	if c.hoverNode != nil || c.hoverLink >= 0 {
		c.hoverNode = nil
		c.hoverLink = -1
		c.beginTooltipHideLocked()
		changed = true
	}
	c.mu.Unlock()
	if changed {
		c.requestRender()
	}
}

// updateHoverLocked recomputes which node or link the pointer is over and
// drives the tooltip accordingly. Returns true when the scene changed. The
// whole pass runs under the surface lock so positions cannot move between
// hit-test and tooltip build.
func (c *Controller) updateHoverLocked(x, y float64) bool {
	changed := false
	c.surface.WithGraph(func(g *models.Graph) {
		n := c.nodeAt(g, x, y)
		if n != nil {
			if c.hoverNode == n {
				// Keep the tooltip tracking the pointer.
				c.tooltip.X, c.tooltip.Y = x+15, y-15
				return
			}
			c.hoverNode = n
			c.hoverLink = -1
			c.showNodeTooltipLocked(g, n, x, y)
			changed = true
			return
		}

		li := c.linkAt(g, x, y)
		if li != c.hoverLink || c.hoverNode != nil {
			c.hoverNode = nil
			c.hoverLink = li
			if li >= 0 {
				c.showLinkTooltipLocked(g, li, x, y)
			} else {
				c.beginTooltipHideLocked()
			}
			changed = true
			return
		}
		if li >= 0 {
			c.tooltip.X, c.tooltip.Y = x+15, y-15
		}
	})
	return changed
}

func (c *Controller) showNodeTooltipLocked(g *models.Graph, n *models.Node, x, y float64) {
	c.cancelHideLocked()
	degree := g.Degree(n.ID)
	c.tooltip = render.Tooltip{
		Visible: true,
		X:       x + 15,
		Y:       y - 15,
		Title:   n.DisplayLabel(),
		Lines: []string{
			fmt.Sprintf("Trust: %.0f (%s)", n.Reputation, models.ReputationTier(n.Reputation)),
			fmt.Sprintf("Connections: %d (%s)", degree, models.NetworkPosition(degree)),
		},
	}
}

func (c *Controller) showLinkTooltipLocked(g *models.Graph, idx int, x, y float64) {
	c.cancelHideLocked()
	l := g.Links[idx]
	c.tooltip = render.Tooltip{
		Visible: true,
		X:       x + 15,
		Y:       y - 15,
		Title:   "Trust",
		Lines:   []string{fmt.Sprintf("Weight: %.0f", l.Weight)},
	}
}

// beginTooltipHideLocked starts the fade, then actually hides after
// TooltipHideDelay so the transition is perceptible. A re-hover before the
// timer fires cancels the hide.
func (c *Controller) beginTooltipHideLocked() {
	if !c.tooltip.Visible {
		return
	}
	c.tooltip.Fading = true
	c.cancelHideLocked()
	c.hideTimer = time.AfterFunc(TooltipHideDelay, func() {
		c.mu.Lock()
		hidden := false
		if c.tooltip.Fading {
			c.tooltip = render.Tooltip{}
			hidden = true
		}
		c.mu.Unlock()
		if hidden {
			c.requestRender()
		}
	})
}

func (c *Controller) cancelHideLocked() {
	if c.hideTimer != nil {
		c.hideTimer.Stop()
		c.hideTimer = nil
	}
	c.tooltip.Fading = false
}

// nodeAt returns the topmost node under the pointer, honoring the enlarged
// hover radius, or nil. The caller holds the surface lock.
func (c *Controller) nodeAt(g *models.Graph, x, y float64) *models.Node {
	for i := len(g.Nodes) - 1; i >= 0; i-- {
		n := g.Nodes[i]
		radius := render.NodeRadius
		if c.hoverNode == n {
			radius = render.HoverNodeRadius
		}
		if math.Hypot(x-n.X, y-n.Y) <= radius {
			return n
		}
	}
	return nil
}

// linkAt returns the index of the resolved link whose segment passes within
// linkHitSlop of the pointer, or -1. The caller holds the surface lock.
func (c *Controller) linkAt(g *models.Graph, x, y float64) int {
	for i, l := range g.Links {
		if !l.Resolved() {
			continue
		}
		if segmentDistance(x, y, l.Source.X, l.Source.Y, l.Target.X, l.Target.Y) <= linkHitSlop {
			return i
		}
	}
	return -1
}

// segmentDistance is the distance from point (px,py) to segment (x1,y1)-(x2,y2).
func segmentDistance(px, py, x1, y1, x2, y2 float64) float64 {
	dx, dy := x2-x1, y2-y1
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(px-x1, py-y1)
	}
	t := ((px-x1)*dx + (py-y1)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(px-(x1+t*dx), py-(y1+t*dy))
}
