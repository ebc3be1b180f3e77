package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/loadstone/loadstone/pkg/errors"
)

func TestDefaultPriorities(t *testing.T) {
	cfg := Default()
	tests := []struct {
		category string
		want     int
	}{
		{"VR", 10},
		{"Utilities", 10},
		{"Bug Fixes", 11},
		{"Gameplay", 20},
		{"Patches", 99},
		{"Default", 50},
		{"No Such Category", 50},
	}
	for _, tt := range tests {
		if got := cfg.Priority(tt.category); got != tt.want {
			t.Errorf("Priority(%q) = %d, want %d", tt.category, got, tt.want)
		}
	}
}

func TestLoadAbsentFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Game != DefaultGame {
		t.Errorf("game = %q, want %q", cfg.Game, DefaultGame)
	}
	if cfg.CacheExpiry() != 180*24*time.Hour {
		t.Errorf("cache expiry = %s", cfg.CacheExpiry())
	}
	if cfg.RequestTimeout() != 45*time.Second {
		t.Errorf("request timeout = %s", cfg.RequestTimeout())
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	doc := `
game = "fallout4"
cache_expiry_days = 30

[category_priorities]
"Gameplay" = 5
"House Mods" = 42
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Game != "fallout4" {
		t.Errorf("game = %q", cfg.Game)
	}
	if cfg.CacheExpiryDays != 30 {
		t.Errorf("cache_expiry_days = %d, want 30", cfg.CacheExpiryDays)
	}
	if cfg.RequestTimeoutSeconds != DefaultRequestTimeoutSeconds {
		t.Errorf("request_timeout_seconds = %d, want default", cfg.RequestTimeoutSeconds)
	}
	if got := cfg.Priority("Gameplay"); got != 5 {
		t.Errorf("overridden Gameplay priority = %d, want 5", got)
	}
	if got := cfg.Priority("House Mods"); got != 42 {
		t.Errorf("added House Mods priority = %d, want 42", got)
	}
	if got := cfg.Priority("Patches"); got != 99 {
		t.Errorf("untouched Patches priority = %d, want 99", got)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("game = [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("err = %v, want INVALID_CONFIG", err)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"negative expiry", "cache_expiry_days = -1"},
		{"zero timeout", "request_timeout_seconds = 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.doc), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("err = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestPathsShareConfigDir(t *testing.T) {
	dir, err := Dir()
	if err != nil {
		t.Fatalf("Dir: %v", err)
	}
	if filepath.Base(dir) != "loadstone" {
		t.Errorf("dir = %q, want a loadstone directory", dir)
	}

	tests := []struct {
		name string
		fn   func() (string, error)
		base string
	}{
		{"config", Path, "config.toml"},
		{"cache", CachePath, "catalog_cache.json"},
		{"rules", RulesPath, "rules.toml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := tt.fn()
			if err != nil {
				t.Fatalf("%s path: %v", tt.name, err)
			}
			if filepath.Dir(path) != dir {
				t.Errorf("path %q outside config dir %q", path, dir)
			}
			if filepath.Base(path) != tt.base {
				t.Errorf("path %q, want base %q", path, tt.base)
			}
		})
	}
}

func TestCacheExpiryZeroNeverExpires(t *testing.T) {
	cfg := Default()
	cfg.CacheExpiryDays = 0
	if cfg.CacheExpiry() != 0 {
		t.Errorf("expiry = %s, want 0", cfg.CacheExpiry())
	}
}
