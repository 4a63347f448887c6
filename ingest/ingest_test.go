package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONProcessorCanonicalShape(t *testing.T) {
	data := []byte(`{
		"nodes": [
			{"id": "a", "label": "Alice", "reputation": 80},
			{"id": "b"}
		],
		"links": [
			{"source": "a", "target": "b", "weight": 50}
		]
	}`)

	nodes, links, err := (&JSONProcessor{}).Process(data)
	require.NoError(t, err)

	require.Len(t, nodes, 2)
	assert.Equal(t, "Alice", nodes[0].Label)
	require.NotNil(t, nodes[0].Reputation)
	assert.Equal(t, 80.0, *nodes[0].Reputation)
	assert.Nil(t, nodes[1].Reputation, "missing score stays nil for the loader to default")

	require.Len(t, links, 1)
	assert.Equal(t, "a", links[0].Source.ID)
	assert.Equal(t, "b", links[0].Target.ID)
}

func TestJSONProcessorObjectEndpointsAndEdgesAlias(t *testing.T) {
	data := []byte(`{
		"nodes": [{"id": "a"}, {"id": "b"}],
		"edges": [{"source": {"id": "a"}, "target": {"id": "b"}}]
	}`)

	_, links, err := (&JSONProcessor{}).Process(data)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, "a", links[0].Source.ID)
	assert.Equal(t, "b", links[0].Target.ID)
}

func TestJSONProcessorDropsNodesWithoutID(t *testing.T) {
	data := []byte(`{"nodes": [{"id": "a"}, {"label": "anonymous"}, {"id": "b"}]}`)

	nodes, _, err := (&JSONProcessor{}).Process(data)
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, "a", nodes[0].ID)
	assert.Equal(t, "b", nodes[1].ID)
}

func TestJSONProcessorRejectsMalformedDocument(t *testing.T) {
	_, _, err := (&JSONProcessor{}).Process([]byte(`{"nodes": [`))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "graph.json")
	require.NoError(t, os.WriteFile(path,
		[]byte(`{"nodes": [{"id": "a"}], "links": []}`), 0o644))

	nodes, links, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, nodes, 1)
	assert.Empty(t, links)
}

func TestLoadFileUnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "graph.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b"), 0o644))

	_, _, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFileMissing(t *testing.T) {
	_, _, err := LoadFile(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
