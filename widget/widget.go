// Package widget is the external surface of the trust graph: construction
// against a container, full-replace data loading, idempotent rendering, and
// the fixed-budget simulation run.
package widget

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/TFMV/trustgraph/interact"
	"github.com/TFMV/trustgraph/models"
	"github.com/TFMV/trustgraph/physics"
	"github.com/TFMV/trustgraph/render"
)

// Default canvas bounds.
const (
	DefaultWidth  = 800.0
	DefaultHeight = 400.0
)

// FrameFunc receives every produced frame, whether triggered by the
// simulation schedule or by interaction.
type FrameFunc func(render.Frame)

// Option configures a widget at construction.
type Option func(*Widget)

// WithSize overrides the default 800x400 canvas.
func WithSize(width, height float64) Option {
	return func(w *Widget) {
		w.width = width
		w.height = height
	}
}

// WithLogger attaches a logger.
func WithLogger(log *zap.Logger) Option {
	return func(w *Widget) { w.log = log }
}

// WithDrift enables the cosmetic idle wander with the given amplitude.
func WithDrift(amplitude float64) Option {
	return func(w *Widget) { w.drift = physics.NewDrift(amplitude) }
}

// Widget ties one layout engine, scene renderer, and interaction controller
// together. The engine exclusively owns position/velocity state; the
// renderer only reads it; the controller is the only other writer, through
// the engine's explicit move path.
type Widget struct {
	containerID string
	width       float64
	height      float64
	log         *zap.Logger

	engine     *physics.Engine
	sim        *physics.Simulator
	renderer   *render.SceneRenderer
	controller *interact.Controller
	drift      *physics.Drift

	mu      sync.Mutex
	onFrame FrameFunc
}

// New binds a widget to the named container region of the host surface. The
// identifier is checked at render time, not here, so construction never
// fails; an empty identifier surfaces as a clear error from Render.
func New(containerID string, opts ...Option) *Widget {
	w := &Widget{
		containerID: containerID,
		width:       DefaultWidth,
		height:      DefaultHeight,
		log:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.engine = physics.NewEngine(w.width, w.height)
	w.sim = physics.NewSimulator(w.engine, w.log)
	w.renderer = render.NewSceneRenderer()
	w.controller = interact.NewController(w.engine, w.emitFrame, w.log)
	return w
}

// ContainerID returns the host surface region this widget draws into.
func (w *Widget) ContainerID() string {
	return w.containerID
}

// Size returns the canvas bounds.
func (w *Widget) Size() (width, height float64) {
	return w.width, w.height
}

// WithGraph runs fn against the current simulation state under the engine
// lock. The graph must not be retained past the call.
func (w *Widget) WithGraph(fn func(*models.Graph)) {
	w.engine.WithGraph(fn)
}

// Controller exposes the interaction controller for pointer event dispatch.
func (w *Widget) Controller() *interact.Controller {
	return w.controller
}

// OnFrame registers the sink for produced frames.
func (w *Widget) OnFrame(fn FrameFunc) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onFrame = fn
}

// SetData fully replaces the graph. Any in-flight simulation run is stopped
// first so its remaining scheduled renders never fire against the new state.
func (w *Widget) SetData(nodes []models.NodeRecord, links []models.LinkRecord) {
	w.sim.Stop()
	g := w.engine.SetData(nodes, links)
	w.log.Info("graph loaded",
		zap.Int("nodes", len(g.Nodes)),
		zap.Int("links", len(g.Links)))
}

// Render produces one complete frame from current state. Safe to call at any
// time after SetData; rendering into an unbound container is the one hard
// error.
func (w *Widget) Render() (render.Frame, error) {
	if w.containerID == "" {
		return render.Frame{}, fmt.Errorf("widget: no container bound")
	}
	view := w.controller.View()

	var svg []byte
	var err error
	w.engine.WithGraph(func(g *models.Graph) {
		svg, err = w.renderer.Render(g, view)
	})
	if err != nil {
		return render.Frame{}, err
	}
	return render.Frame{SVG: string(svg), Tooltip: w.controller.Tooltip()}, nil
}

// StartSimulation runs the force/integration schedule for the given budget
// (default 100 iterations), emitting paced frames. Returns immediately.
func (w *Widget) StartSimulation(iterations int) {
	w.sim.Start(iterations, w.emitFrame)
}

// Simulating reports whether a simulation run is in flight.
func (w *Widget) Simulating() bool {
	return w.sim.Running()
}

// StopSimulation cancels an in-flight run as a unit.
func (w *Widget) StopSimulation() {
	w.sim.Stop()
}

// DriftStep advances the cosmetic idle wander one tick, if enabled, and
// emits a frame.
func (w *Widget) DriftStep() {
	if w.drift == nil {
		return
	}
	w.drift.Step(w.engine)
	w.emitFrame()
}

func (w *Widget) emitFrame() {
	w.mu.Lock()
	sink := w.onFrame
	w.mu.Unlock()
	if sink == nil {
		return
	}
	frame, err := w.Render()
	if err != nil {
		w.log.Error("render failed", zap.Error(err))
		return
	}
	sink(frame)
}
