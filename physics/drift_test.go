package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TFMV/trustgraph/models"
)

func TestDriftStaysWithinBounds(t *testing.T) {
	e := NewEngine(800, 400)
	g := placedGraph(t, e, []models.NodeRecord{{ID: "a"}, {ID: "b"}}, nil,
		map[string][2]float64{"a": {35, 35}, "b": {765, 365}})

	d := NewDrift(5)
	moved := false
	for i := 0; i < 50; i++ {
		d.Step(e)
		for _, n := range g.Nodes {
			assert.GreaterOrEqual(t, n.X, EdgeMargin)
			assert.LessOrEqual(t, n.X, 800-EdgeMargin)
			assert.GreaterOrEqual(t, n.Y, EdgeMargin)
			assert.LessOrEqual(t, n.Y, 400-EdgeMargin)
			if n.X != 35 && n.X != 765 {
				moved = true
			}
		}
	}
	assert.True(t, moved, "drift should nudge positions")
}
