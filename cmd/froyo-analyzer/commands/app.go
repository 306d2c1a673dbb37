package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/openfroyo/froyo-analyzer/pkg/config"
	"github.com/openfroyo/froyo-analyzer/pkg/policy"
	"github.com/openfroyo/froyo-analyzer/pkg/stores"
	"github.com/openfroyo/froyo-analyzer/pkg/telemetry"
)

// loadConfig reads --config, or returns the defaults when it is unset.
func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.Load()
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	log.Debug().Strs("files", cfg.SourceFiles).Msg("Loaded configuration")
	return cfg, nil
}

// newEngine builds a policy engine from cfg and loads the configured packs
// plus any extra pack directories.
func newEngine(ctx context.Context, cfg *config.Config, version string, logger zerolog.Logger, tel *telemetry.Telemetry, extraPacks []string) (*policy.Engine, error) {
	ec := cfg.EngineConfig(version)
	if tel != nil {
		ec.Metrics = tel.Metrics
		ec.Tracer = tel.Tracer
		ec.Events = tel.Events
	}

	engine, err := policy.NewEngine(logger, ec)
	if err != nil {
		return nil, fmt.Errorf("failed to create policy engine: %w", err)
	}

	for _, dir := range packDirs(cfg, extraPacks) {
		pack, err := engine.LoadPack(ctx, dir)
		if err != nil {
			return nil, fmt.Errorf("failed to load policy pack %s: %w", dir, err)
		}
		logger.Info().
			Str("pack", pack.Name).
			Str("version", pack.Version).
			Int("policies", len(pack.Policies)).
			Msg("Loaded policy pack")
	}

	return engine, nil
}

func packDirs(cfg *config.Config, extra []string) []string {
	dirs := make([]string, 0, len(cfg.Policy.Packs)+len(extra))
	dirs = append(dirs, cfg.Policy.Packs...)
	return append(dirs, extra...)
}

// openStore opens the history store, or returns nil when it is disabled.
func openStore(ctx context.Context, cfg *config.Config) (*stores.SQLStore, error) {
	if cfg.Store.Driver == "" || cfg.Store.Driver == "none" {
		return nil, nil
	}

	store, err := stores.Open(ctx, stores.Config{
		Driver: cfg.Store.Driver,
		DSN:    cfg.Store.DSN,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s history store: %w", cfg.Store.Driver, err)
	}
	return store, nil
}

// useSQLite points the store at a SQLite file, as --db does.
func useSQLite(cfg *config.Config, path string) {
	cfg.Store.Driver = stores.DriverSQLite
	cfg.Store.DSN = path
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
