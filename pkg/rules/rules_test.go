package rules

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/loadstone/loadstone/pkg/catalog"
)

func TestEffectiveID(t *testing.T) {
	r := New(nil, map[catalog.ModID]catalog.ModID{
		"100": "200",
		"200": "300", // chain deliberately NOT followed
	})

	tests := []struct {
		name string
		id   catalog.ModID
		want catalog.ModID
	}{
		{"Unmapped", "42", "42"},
		{"SingleHop", "100", "200"},
		{"ChainNotFollowed", "100", "200"}, // not 300
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.EffectiveID(tt.id); got != tt.want {
				t.Errorf("EffectiveID(%q) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}
}

func TestIsSatisfied(t *testing.T) {
	r := New(nil, map[catalog.ModID]catalog.ModID{"100": "200"})
	installed := map[catalog.ModID]bool{"200": true, "42": true}

	if !r.IsSatisfied("42", installed) {
		t.Error("directly installed id should be satisfied")
	}
	if !r.IsSatisfied("100", installed) {
		t.Error("id whose replacement is installed should be satisfied")
	}
	if r.IsSatisfied("999", installed) {
		t.Error("uninstalled, unreplaced id should not be satisfied")
	}
}

func TestIsIgnored(t *testing.T) {
	r := New([]catalog.ModID{"7"}, nil)
	if !r.IsIgnored("7") {
		t.Error("listed id should be ignored")
	}
	if r.IsIgnored("8") {
		t.Error("unlisted id should not be ignored")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.toml")
	doc := `
ignore = ["12345", "67890"]

[replace]
"44444" = "55555"
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	r := Load(path, nil)
	ignored, replaced := r.Counts()
	if ignored != 2 || replaced != 1 {
		t.Errorf("Counts() = (%d, %d), want (2, 1)", ignored, replaced)
	}
	if !r.IsIgnored("12345") {
		t.Error("12345 should be ignored")
	}
	if got := r.EffectiveID("44444"); got != "55555" {
		t.Errorf("EffectiveID(44444) = %q, want 55555", got)
	}
}

func TestLoadAbsentFileWritesTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.toml")

	r := Load(path, nil)
	ignored, replaced := r.Counts()
	if ignored != 0 || replaced != 0 {
		t.Errorf("Counts() = (%d, %d), want empty rules", ignored, replaced)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("template was not written: %v", err)
	}
	if !strings.Contains(string(data), "[replace]") {
		t.Error("template should contain a [replace] section")
	}

	// The template itself must parse as empty rules.
	r2 := Load(path, nil)
	ignored, replaced = r2.Counts()
	if ignored != 0 || replaced != 0 {
		t.Errorf("template parsed as (%d, %d) rules, want none", ignored, replaced)
	}
}

func TestLoadMalformedFallsBackToEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.toml")
	if err := os.WriteFile(path, []byte("ignore = not-a-list"), 0o644); err != nil {
		t.Fatal(err)
	}

	var warned bool
	r := Load(path, func(format string, args ...any) { warned = true })

	ignored, replaced := r.Counts()
	if ignored != 0 || replaced != 0 {
		t.Errorf("Counts() = (%d, %d), want empty rules", ignored, replaced)
	}
	if !warned {
		t.Error("malformed document should log a warning")
	}
}

func TestWriteTemplateRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.toml")
	if err := WriteTemplate(path); err != nil {
		t.Fatalf("WriteTemplate: %v", err)
	}
	if err := WriteTemplate(path); err == nil {
		t.Error("second WriteTemplate should refuse to overwrite")
	}
}
