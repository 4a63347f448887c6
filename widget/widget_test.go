package widget_test

import (
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TFMV/trustgraph/models"
	"github.com/TFMV/trustgraph/render"
	"github.com/TFMV/trustgraph/widget"
)

func floatPtr(f float64) *float64 { return &f }

func sampleData() ([]models.NodeRecord, []models.LinkRecord) {
	nodes := []models.NodeRecord{
		{ID: "a", Label: "Alice", Reputation: floatPtr(80)},
		{ID: "b", Label: "Bob", Reputation: floatPtr(30)},
		{ID: "c", Label: "Carol"},
	}
	links := []models.LinkRecord{
		{Source: models.Ref("a"), Target: models.Ref("b"), Weight: floatPtr(90)},
		{Source: models.Ref("c"), Target: models.Ref("a"), Weight: floatPtr(40)},
	}
	return nodes, links
}

func TestRenderRequiresContainer(t *testing.T) {
	w := widget.New("")
	_, err := w.Render()
	assert.ErrorContains(t, err, "no container")
}

func TestRenderProducesFrame(t *testing.T) {
	w := widget.New("trust-graph")
	w.SetData(sampleData())

	frame, err := w.Render()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(frame.SVG, "<svg"))
	assert.Equal(t, 3, strings.Count(frame.SVG, "<circle"))
	assert.False(t, frame.Tooltip.Visible)

	// Rendering is idempotent: no state moves between calls.
	again, err := w.Render()
	require.NoError(t, err)
	assert.Equal(t, frame.SVG, again.SVG)
}

func TestSimulationEmitsPacedFrames(t *testing.T) {
	w := widget.New("trust-graph", widget.WithSize(600, 300))
	w.SetData(sampleData())

	var frames atomic.Int64
	w.OnFrame(func(render.Frame) { frames.Add(1) })

	w.StartSimulation(20)
	assert.True(t, w.Simulating())

	require.Eventually(t, func() bool { return !w.Simulating() },
		3*time.Second, 20*time.Millisecond)
	assert.Equal(t, int64(3), frames.Load())
}

func TestSetDataCancelsInFlightRun(t *testing.T) {
	w := widget.New("trust-graph")
	w.SetData(sampleData())

	var frames atomic.Int64
	w.OnFrame(func(render.Frame) { frames.Add(1) })

	w.StartSimulation(1000)
	require.True(t, w.Simulating())

	nodes, links := sampleData()
	w.SetData(nodes, links)
	assert.False(t, w.Simulating(), "replacing the data stops the run")

	after := frames.Load()
	time.Sleep(250 * time.Millisecond)
	assert.Equal(t, after, frames.Load(), "no stale frame fires against the new data")
}

func TestStopSimulation(t *testing.T) {
	w := widget.New("trust-graph")
	w.SetData(sampleData())

	w.StartSimulation(1000)
	w.StopSimulation()
	assert.False(t, w.Simulating())
}

func TestNodeDetail(t *testing.T) {
	w := widget.New("trust-graph")
	w.SetData(sampleData())

	d, err := w.NodeDetail("a")
	require.NoError(t, err)
	assert.Equal(t, "Alice", d.Label)
	assert.Equal(t, 80.0, d.Reputation)
	assert.Equal(t, "Excellent", d.Tier)
	assert.Equal(t, 2, d.Degree)
	assert.Equal(t, "Member", d.Position)
	require.Len(t, d.Outgoing, 1)
	assert.Equal(t, "b", d.Outgoing[0].Peer)
	assert.Equal(t, 90.0, d.Outgoing[0].Weight)
	require.Len(t, d.Incoming, 1)
	assert.Equal(t, "c", d.Incoming[0].Peer)

	_, err = w.NodeDetail("ghost")
	assert.Error(t, err)
}

func TestDragThroughController(t *testing.T) {
	w := widget.New("trust-graph")
	w.SetData(sampleData())

	w.WithGraph(func(g *models.Graph) {
		g.Nodes[0].SetPosition(100, 100)
		g.Nodes[1].SetPosition(400, 300)
		g.Nodes[2].SetPosition(700, 300)
	})

	c := w.Controller()
	c.PointerDown(105, 103)
	c.PointerMove(250, 180)
	c.PointerUp()

	var x, y float64
	w.WithGraph(func(g *models.Graph) {
		x, y = g.Nodes[0].X, g.Nodes[0].Y
	})
	assert.Equal(t, 245.0, x)
	assert.Equal(t, 177.0, y)
}

func TestPointerEventsDuringSimulation(t *testing.T) {
	w := widget.New("trust-graph")
	w.SetData(sampleData())
	w.OnFrame(func(render.Frame) {})

	w.StartSimulation(100)
	require.True(t, w.Simulating())

	// Hammer the controller from this goroutine while the driver goroutine
	// steps the engine; positions must only ever be read under the engine
	// lock for this to be clean under the race detector.
	c := w.Controller()
	for start := time.Now(); time.Since(start) < 500*time.Millisecond; {
		for i := 0; i < 40; i++ {
			x := float64(i*19%800) + 1
			y := float64(i*7%400) + 1
			c.PointerMove(x, y)
			c.PointerDown(x, y)
			c.PointerMove(x+5, y+5)
			c.PointerUp()
		}
	}
	w.StopSimulation()

	_, err := w.Render()
	require.NoError(t, err)
}
