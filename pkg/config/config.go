// Package config loads the loadstone configuration document.
//
// Configuration lives in a single TOML file under the user config
// directory. Every field is optional: an absent file yields the defaults,
// and a partial file overrides only what it names. Category priorities
// given in the file are merged over the default table, not substituted
// for it.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/loadstone/loadstone/pkg/errors"
)

const (
	// DefaultBaseURL is the catalog endpoint queried for mod metadata.
	DefaultBaseURL = "https://www.nexusmods.com"

	// DefaultGame is the game slug used when none is configured.
	DefaultGame = "skyrimspecialedition"

	// DefaultCacheExpiryDays is how long cached metadata stays valid.
	DefaultCacheExpiryDays = 180

	// DefaultRequestTimeoutSeconds bounds a single catalog request.
	DefaultRequestTimeoutSeconds = 45

	// DefaultPriority is the placement weight of unlisted categories.
	DefaultPriority = 50
)

// Config holds all tunables for an analysis run.
type Config struct {
	Game                  string         `toml:"game"`
	BaseURL               string         `toml:"base_url"`
	APIKey                string         `toml:"api_key"`
	CacheExpiryDays       int            `toml:"cache_expiry_days"`
	RequestTimeoutSeconds int            `toml:"request_timeout_seconds"`
	DefaultPriority       int            `toml:"default_priority"`
	CategoryPriorities    map[string]int `toml:"category_priorities"`
}

// Default returns the built-in configuration. The category table orders the
// broad mod categories the way load orders conventionally layer them, from
// utilities and fixes at the top down to patches at the bottom.
func Default() *Config {
	return &Config{
		Game:                  DefaultGame,
		BaseURL:               DefaultBaseURL,
		CacheExpiryDays:       DefaultCacheExpiryDays,
		RequestTimeoutSeconds: DefaultRequestTimeoutSeconds,
		DefaultPriority:       DefaultPriority,
		CategoryPriorities: map[string]int{
			"VR":                             10,
			"Modders Resources":              10,
			"Utilities":                      10,
			"Bug Fixes":                      11,
			"User Interface":                 15,
			"Gameplay":                       20,
			"Immersion":                      21,
			"Combat":                         25,
			"Stealth":                        26,
			"Skills and Leveling":            30,
			"Magic - Gameplay":               35,
			"Races, Classes, and Birthsigns": 36,
			"Guilds/Factions":                40,
			"Quests and Adventures":          50,
			"Locations - New":                51,
			"Dungeons":                       52,
			"Creatures and Mounts":           55,
			"NPC":                            58,
			"Followers & Companions":         59,
			"Weapons":                        60,
			"Armour":                         61,
			"Clothing and Accessories":       62,
			"Items and Objects - Player":     65,
			"Models and Textures":            70,
			"Visuals and Graphics":           71,
			"Environmental":                  72,
			"Animation":                      75,
			"Body, Face, and Hair":           78,
			"Audio":                          80,
			"Presets - ENB and ReShade":      85,
			"Overhauls":                      90,
			"Miscellaneous":                  95,
			"Patches":                        99,
			"Default":                        50,
		},
	}
}

// Load reads the configuration at path, layered over the defaults. A
// missing file is not an error; a malformed one is.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	// Decoding into the pre-filled struct merges: absent keys keep their
	// defaults, and priority-table entries override per category.
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.CacheExpiryDays < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache_expiry_days must not be negative, got %d", c.CacheExpiryDays)
	}
	if c.RequestTimeoutSeconds <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "request_timeout_seconds must be positive, got %d", c.RequestTimeoutSeconds)
	}
	return nil
}

// CacheExpiry returns the expiry window as a duration. Zero days means
// cached entries never expire.
func (c *Config) CacheExpiry() time.Duration {
	return time.Duration(c.CacheExpiryDays) * 24 * time.Hour
}

// RequestTimeout returns the per-request timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// Priority resolves a category name to its placement weight.
func (c *Config) Priority(category string) int {
	if p, ok := c.CategoryPriorities[category]; ok {
		return p
	}
	return c.DefaultPriority
}

// Dir returns the loadstone configuration directory.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "locate user config dir")
	}
	return filepath.Join(base, "loadstone"), nil
}

// Path returns the location of the configuration document.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// CachePath returns the location of the metadata cache document.
func CachePath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "catalog_cache.json"), nil
}

// RulesPath returns the location of the rules document.
func RulesPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "rules.toml"), nil
}
