package physics

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TFMV/trustgraph/models"
)

func simEngine(t *testing.T) *Engine {
	t.Helper()
	e := NewEngine(800, 400)
	placedGraph(t, e, []models.NodeRecord{{ID: "a"}, {ID: "b"}}, nil,
		map[string][2]float64{"a": {200, 200}, "b": {600, 200}})
	return e
}

func TestSimulatorRenderSchedule(t *testing.T) {
	e := simEngine(t)
	s := NewSimulator(e, nil)

	var renders atomic.Int64
	s.Start(20, func() { renders.Add(1) })

	require.Eventually(t, func() bool { return !s.Running() }, 3*time.Second, 20*time.Millisecond)

	// Iterations 0 and 10 render, plus the mandatory final render.
	assert.Equal(t, int64(3), renders.Load())
}

func TestSimulatorStopCancelsInFlightRun(t *testing.T) {
	e := simEngine(t)
	s := NewSimulator(e, nil)

	var renders atomic.Int64
	s.Start(1000, func() { renders.Add(1) })
	assert.True(t, s.Running())

	time.Sleep(150 * time.Millisecond)
	s.Stop()
	assert.False(t, s.Running())

	// No deferred render fires after cancellation.
	after := renders.Load()
	time.Sleep(250 * time.Millisecond)
	assert.Equal(t, after, renders.Load())
}

func TestSimulatorRestartCancelsPreviousRun(t *testing.T) {
	e := simEngine(t)
	s := NewSimulator(e, nil)

	var first, second atomic.Int64
	s.Start(1000, func() { first.Add(1) })
	s.Start(10, func() { second.Add(1) })

	require.Eventually(t, func() bool { return !s.Running() }, 3*time.Second, 20*time.Millisecond)

	stale := first.Load()
	assert.Equal(t, int64(2), second.Load()) // iteration 0 plus the final render
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, stale, first.Load(), "cancelled run must not keep rendering")
}

func TestSimulatorStopOnSettle(t *testing.T) {
	e := NewEngine(800, 400)
	// A single node at rest at the center has zero kinetic energy.
	placedGraph(t, e, []models.NodeRecord{{ID: "a"}}, nil,
		map[string][2]float64{"a": {400, 200}})

	s := NewSimulator(e, nil)
	s.StopOnSettle = true

	var renders atomic.Int64
	start := time.Now()
	s.Start(1000, func() { renders.Add(1) })

	require.Eventually(t, func() bool { return !s.Running() }, 3*time.Second, 20*time.Millisecond)
	assert.Less(t, time.Since(start), 2*time.Second, "settled run exits long before the full budget")
	assert.Equal(t, int64(1), renders.Load(), "final render still fires")
}

func TestSimulatorStopWithoutRunIsNoop(t *testing.T) {
	s := NewSimulator(simEngine(t), nil)
	s.Stop()
	assert.False(t, s.Running())
}
