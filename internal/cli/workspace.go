package cli

import (
	"context"
	"io"
	"os"

	"github.com/loadstone/loadstone/pkg/analyze"
	"github.com/loadstone/loadstone/pkg/catalog"
	"github.com/loadstone/loadstone/pkg/config"
	"github.com/loadstone/loadstone/pkg/errors"
	"github.com/loadstone/loadstone/pkg/inventory"
	"github.com/loadstone/loadstone/pkg/report"
	"github.com/loadstone/loadstone/pkg/rules"
)

// apiKeyEnv overrides the configured catalog API key when set.
const apiKeyEnv = "LOADSTONE_API_KEY"

// rootOpts holds the persistent flags shared by the analysis commands.
type rootOpts struct {
	modlist string // path to the installed-mod list document
	config  string // config file override
}

// workspace bundles everything an analysis command needs: configuration,
// rules, the installed-mod index and a wired runner.
type workspace struct {
	cfg     *config.Config
	rules   *rules.Rules
	entries []inventory.Entry
	inv     *inventory.Inventory
	runner  *analyze.Runner
}

// openWorkspace loads config and rules, reads the modlist, and wires the
// catalog client, store and runner. When an API key is configured the
// catalog credentials are verified up front, so an auth problem surfaces
// before any traversal starts.
func openWorkspace(ctx context.Context, opts *rootOpts) (*workspace, error) {
	logger := loggerFromContext(ctx)

	cfgPath := opts.config
	if cfgPath == "" {
		var err error
		if cfgPath, err = config.Path(); err != nil {
			return nil, err
		}
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if cfg.Game == "" {
		logger.Warnf("no game configured, falling back to %s", config.DefaultGame)
		cfg.Game = config.DefaultGame
	}

	if opts.modlist == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "--modlist is required")
	}
	entries, err := inventory.NewModlist(opts.modlist).ListInstalled()
	if err != nil {
		return nil, err
	}
	inv := inventory.New(entries)
	logger.Debugf("installed mods: %d folders, %d catalog ids", inv.Len(), len(inv.InstalledIDs))

	rulesPath, err := config.RulesPath()
	if err != nil {
		return nil, err
	}
	r := rules.Load(rulesPath, logger.Warnf)
	ignored, replaced := r.Counts()
	logger.Debugf("loaded rules: %d ignored, %d replacements", ignored, replaced)

	apiKey := cfg.APIKey
	if key := os.Getenv(apiKeyEnv); key != "" {
		apiKey = key
	}
	client := catalog.NewClient(catalog.ClientOptions{
		BaseURL: cfg.BaseURL,
		Game:    cfg.Game,
		APIKey:  apiKey,
		Timeout: cfg.RequestTimeout(),
	})
	if apiKey != "" {
		if err := client.Verify(ctx); err != nil {
			return nil, err
		}
	}

	cachePath, err := config.CachePath()
	if err != nil {
		return nil, err
	}
	store := catalog.NewStore(client, cachePath, cfg.CacheExpiry())
	store.Logf = logger.Debugf

	return &workspace{
		cfg:     cfg,
		rules:   r,
		entries: entries,
		inv:     inv,
		runner:  analyze.NewRunner(store, r, inv, cfg, logger),
	}, nil
}

// nopCloser wraps an io.Writer with a no-op Close method.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for path, or stdout when path is empty.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

// writeReport renders v as JSON to path (stdout if empty).
func writeReport(v any, path string) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()
	return report.WriteJSON(out, v)
}
