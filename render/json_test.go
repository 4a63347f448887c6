package render

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderJSON(t *testing.T) {
	g := sceneGraph()
	out, err := RenderJSON(g)
	require.NoError(t, err)

	var doc struct {
		Nodes []struct {
			ID    string `json:"id"`
			Label string `json:"label"`
			Color string `json:"color"`
		} `json:"nodes"`
		Links []struct {
			Source string  `json:"source"`
			Target string  `json:"target"`
			Width  float64 `json:"width"`
		} `json:"links"`
		Metadata map[string]interface{} `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal(out, &doc))

	require.Len(t, doc.Nodes, 2)
	assert.Equal(t, "rgb(239, 68, 68)", doc.Nodes[0].Color)
	assert.Equal(t, "bob-iden...", doc.Nodes[1].Label)

	// The dangling link is dropped, matching the SVG scene.
	require.Len(t, doc.Links, 1)
	assert.Equal(t, "alice", doc.Links[0].Source)
	assert.Equal(t, 3.0, doc.Links[0].Width)

	assert.Equal(t, 800.0, doc.Metadata["width"])
}
