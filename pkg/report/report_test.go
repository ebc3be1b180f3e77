package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/loadstone/loadstone/pkg/depgraph"
)

func TestNewRunID(t *testing.T) {
	a, b := NewRunID(), NewRunID()
	if _, err := uuid.Parse(a); err != nil {
		t.Fatalf("run id %q does not parse: %v", a, err)
	}
	if a == b {
		t.Error("two run ids collide")
	}
}

func TestWriteJSONTreeReport(t *testing.T) {
	rep := &TreeReport{
		RunID:       "run-1",
		GeneratedAt: time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
		Game:        "skyrimspecialedition",
		Root: &depgraph.Node{
			ID:     "266",
			Name:   "Root Mod",
			Status: depgraph.StatusSatisfied,
			Children: []*depgraph.Node{
				{ID: "512", Name: "Dep", Status: depgraph.StatusMissing},
			},
		},
	}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, rep); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	out := buf.String()
	if !strings.HasSuffix(out, "\n") {
		t.Error("output missing trailing newline")
	}
	for _, want := range []string{`"run_id": "run-1"`, `"status": "satisfied"`, `"status": "missing"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, `"replacement"`) {
		t.Error("empty replacement serialized")
	}
}

func TestWriteJSONSortReportOmitsEmptySections(t *testing.T) {
	rep := &SortReport{
		RunID:       "run-2",
		GeneratedAt: time.Now().UTC(),
		Game:        "skyrimspecialedition",
		Order: []Placement{
			{Folder: "SkyUI", ID: "12604", Name: "SkyUI", Category: "User Interface", Priority: 15},
		},
	}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, rep); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	out := buf.String()
	for _, absent := range []string{`"cyclic"`, `"missing"`, `"edges"`} {
		if strings.Contains(out, absent) {
			t.Errorf("empty section %s serialized:\n%s", absent, out)
		}
	}
	if !strings.Contains(out, `"priority": 15`) {
		t.Errorf("placement priority missing:\n%s", out)
	}
}
