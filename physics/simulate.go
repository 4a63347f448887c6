package physics

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Simulation driver defaults. The original schedule renders every 10th
// iteration spaced roughly 100ms apart, plus a mandatory final render.
const (
	DefaultIterations = 100
	RenderEvery       = 10
	FrameInterval     = 100 * time.Millisecond

	// SettleThreshold is the kinetic energy below which an opt-in early
	// settle check considers the layout at rest.
	SettleThreshold = 0.01
)

// RenderFunc is invoked by the driver whenever a paced re-render is due.
type RenderFunc func()

// Simulator runs the force/integration schedule on a background goroutine
// and paces renders through a single cancellable tick loop. Starting a new
// run, or calling Stop, cancels the previous run as a unit so stale deferred
// renders never fire against replaced state.
type Simulator struct {
	engine *Engine
	log    *zap.Logger

	// StopOnSettle enables the early-out when kinetic energy drops below
	// SettleThreshold. Off by default: the reference behavior always runs
	// the full budget.
	StopOnSettle bool

	mu   sync.Mutex
	quit chan struct{}
	done chan struct{}
}

// NewSimulator wraps an engine with a paced driver.
func NewSimulator(engine *Engine, log *zap.Logger) *Simulator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Simulator{engine: engine, log: log}
}

// Start launches the simulation for a fixed iteration budget. It returns
// immediately; stepping and render pacing happen on a driver goroutine. A
// render fires every RenderEvery-th iteration and once more after the last,
// each spaced by FrameInterval. Any in-flight run is cancelled first.
func (s *Simulator) Start(iterations int, onRender RenderFunc) {
	if iterations <= 0 {
		iterations = DefaultIterations
	}

	s.Stop()

	s.mu.Lock()
	quit := make(chan struct{})
	done := make(chan struct{})
	s.quit = quit
	s.done = done
	s.mu.Unlock()

	s.log.Debug("simulation started", zap.Int("iterations", iterations))

	go func() {
		defer close(done)

		ticker := time.NewTicker(FrameInterval)
		defer ticker.Stop()

		for i := 0; i < iterations; i++ {
			select {
			case <-quit:
				return
			default:
			}

			s.engine.Step()

			if s.StopOnSettle && s.engine.KineticEnergy() < SettleThreshold {
				s.log.Debug("simulation settled early", zap.Int("iteration", i))
				break
			}

			if i%RenderEvery == 0 {
				select {
				case <-ticker.C:
					if onRender != nil {
						onRender()
					}
				case <-quit:
					return
				}
			}
		}

		// Mandatory final render after the budget is spent.
		select {
		case <-ticker.C:
		case <-quit:
			return
		}
		if onRender != nil {
			onRender()
		}
		s.log.Debug("simulation finished")
	}()
}

// Stop cancels any in-flight run and waits for its driver goroutine to exit.
// Safe to call when no run is active.
func (s *Simulator) Stop() {
	s.mu.Lock()
	quit, done := s.quit, s.done
	s.quit, s.done = nil, nil
	s.mu.Unlock()

	if quit == nil {
		return
	}
	close(quit)
	<-done
}

// Running reports whether a simulation run is in flight.
func (s *Simulator) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done == nil {
		return false
	}
	select {
	case <-s.done:
		return false
	default:
		return true
	}
}
