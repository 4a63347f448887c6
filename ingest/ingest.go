// Package ingest parses caller-supplied data into the raw node and link
// records the widget loads. One malformed record never aborts the rest of a
// batch; only unparseable input as a whole is an error.
package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/TFMV/trustgraph/models"
)

// Processor turns raw bytes into node and link records.
type Processor interface {
	Process(data []byte) ([]models.NodeRecord, []models.LinkRecord, error)
	Name() string
}

// JSONProcessor handles the canonical JSON document shape:
//
//	{"nodes": [{"id": "...", "label": "...", "reputation": 80}],
//	 "links": [{"source": "a", "target": "b", "weight": 50}]}
//
// Link endpoints may also be full node objects; "edges" is accepted as an
// alias for "links".
type JSONProcessor struct{}

// Name returns the processor name.
func (p *JSONProcessor) Name() string {
	return "JSON Processor"
}

// Process parses a JSON document into records. Records missing optional
// fields keep them nil for the loader to default; dangling link references
// are preserved as-is and resolved (or not) at load time.
func (p *JSONProcessor) Process(data []byte) ([]models.NodeRecord, []models.LinkRecord, error) {
	var doc struct {
		Nodes []models.NodeRecord `json:"nodes"`
		Links []models.LinkRecord `json:"links"`
		Edges []models.LinkRecord `json:"edges"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("ingest: parsing JSON: %w", err)
	}

	links := doc.Links
	if len(links) == 0 {
		links = doc.Edges
	}

	// Drop nodes without an identity; everything else is usable.
	nodes := doc.Nodes[:0:0]
	for _, n := range doc.Nodes {
		if n.ID == "" {
			continue
		}
		nodes = append(nodes, n)
	}
	return nodes, links, nil
}

// LoadFile reads and processes a data file chosen by extension.
func LoadFile(path string) ([]models.NodeRecord, []models.LinkRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("ingest: reading %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return (&JSONProcessor{}).Process(data)
	default:
		return nil, nil, fmt.Errorf("ingest: unsupported file type %q", filepath.Ext(path))
	}
}
