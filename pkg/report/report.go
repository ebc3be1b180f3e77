// Package report defines the normalized result documents loadstone hands
// to external formatters. The documents are plain data plus a JSON writer;
// anything visual happens outside this repo.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/loadstone/loadstone/pkg/catalog"
	"github.com/loadstone/loadstone/pkg/depgraph"
)

// TreeReport is the result of a single-mod dependency analysis.
type TreeReport struct {
	RunID       string         `json:"run_id"`
	GeneratedAt time.Time      `json:"generated_at"`
	Game        string         `json:"game"`
	Root        *depgraph.Node `json:"root"`
}

// Placement is one folder in a computed load order.
type Placement struct {
	Folder   string        `json:"folder"`
	ID       catalog.ModID `json:"id"`
	Name     string        `json:"name"`
	Category string        `json:"category"`
	Priority int           `json:"priority"`
}

// SortReport is the result of a full-network analysis: the load order, the
// folders stuck on cycles, every unmet requirement, and each placed
// folder's direct requirements.
type SortReport struct {
	RunID       string                       `json:"run_id"`
	GeneratedAt time.Time                    `json:"generated_at"`
	Game        string                       `json:"game"`
	Order       []Placement                  `json:"order"`
	Cyclic      []string                     `json:"cyclic,omitempty"`
	Missing     []depgraph.MissingReport     `json:"missing,omitempty"`
	Edges       map[string][]depgraph.ModRef `json:"edges,omitempty"`
}

// NewRunID returns a fresh identifier for one analysis run.
func NewRunID() string {
	return uuid.NewString()
}

// WriteJSON renders v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}
