package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/loadstone/loadstone/pkg/errors"
)

func TestOpenWorkspaceRequiresModlist(t *testing.T) {
	ctx := context.Background()
	_, err := openWorkspace(ctx, &rootOpts{config: filepath.Join(t.TempDir(), "config.toml")})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}

func TestOpenWorkspaceMissingModlistFile(t *testing.T) {
	ctx := context.Background()
	opts := &rootOpts{
		config:  filepath.Join(t.TempDir(), "config.toml"),
		modlist: filepath.Join(t.TempDir(), "absent.toml"),
	}
	if _, err := openWorkspace(ctx, opts); err == nil {
		t.Error("openWorkspace with an absent modlist should fail")
	}
}

func TestOpenOutputStdout(t *testing.T) {
	out, err := openOutput("")
	if err != nil {
		t.Fatalf("openOutput: %v", err)
	}
	if out != (nopCloser{os.Stdout}) {
		t.Error("empty path should yield stdout")
	}
	if err := out.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestWriteReportToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	if err := writeReport(map[string]string{"run_id": "r1"}, path); err != nil {
		t.Fatalf("writeReport: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.Contains(string(data), `"run_id": "r1"`) {
		t.Errorf("report content = %s", data)
	}
}
