package commands

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/openfroyo/froyo-analyzer/pkg/analyzer"
	"github.com/openfroyo/froyo-analyzer/pkg/config"
	"github.com/openfroyo/froyo-analyzer/pkg/stores"
	"github.com/openfroyo/froyo-analyzer/pkg/telemetry"
)

func newServeCommand(version string) *cobra.Command {
	var (
		port        int
		host        string
		packs       []string
		dbPath      string
		watch       bool
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the Analyzer gRPC protocol",
		Long: `Serve the Pulumi Analyzer gRPC protocol.

The listening port is printed as the first line of stdout so a plugin host
can connect; all logs go to stderr. The server stops gracefully on SIGINT
or SIGTERM.`,
		Example: `  # Serve the built-in policies on a free port
  froyo-analyzer serve

  # Serve two packs, reload them on change and keep history
  froyo-analyzer serve --packs ./policies/aws --packs ./policies/k8s --watch --db history.db

  # Expose Prometheus metrics
  froyo-analyzer serve --metrics-addr :9464`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("port") {
				cfg.Server.Port = port
			}
			if flags.Changed("host") {
				cfg.Server.Host = host
			}
			if flags.Changed("db") {
				useSQLite(cfg, dbPath)
			}
			if flags.Changed("watch") {
				cfg.Policy.Watch = watch
			}
			if flags.Changed("metrics-addr") {
				cfg.Telemetry.Metrics.Enabled = metricsAddr != ""
				cfg.Telemetry.Metrics.Address = metricsAddr
			}
			applyLogLevel(cfg)

			return serve(cmd.Context(), cfg, version, packs, cmd.OutOrStdout())
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (0 picks a free port)")
	cmd.Flags().StringVar(&host, "host", "127.0.0.1", "address to bind")
	cmd.Flags().StringSliceVar(&packs, "packs", nil, "policy pack directories, in addition to the configured ones")
	cmd.Flags().StringVar(&dbPath, "db", "", "record analysis history in this SQLite database")
	cmd.Flags().BoolVar(&watch, "watch", false, "reload policy packs when their files change")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")

	return cmd
}

// applyLogLevel resolves the service log level: LOG_LEVEL, then --verbose,
// then the configuration.
func applyLogLevel(cfg *config.Config) {
	if verbose {
		cfg.Telemetry.LogLevel = "debug"
	}
	if env := os.Getenv("LOG_LEVEL"); env != "" {
		if _, err := zerolog.ParseLevel(env); err == nil {
			cfg.Telemetry.LogLevel = env
		}
	}
	if level, err := zerolog.ParseLevel(cfg.Telemetry.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}
}

func serve(ctx context.Context, cfg *config.Config, version string, extraPacks []string, stdout io.Writer) error {
	tel, err := telemetry.NewTelemetry(cfg.TelemetryConfig(version))
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	logger := tel.Logger.Zerolog()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("Telemetry shutdown failed")
		}
	}()

	ctx = tel.WithContext(ctx)
	tel.Events.Subscribe(telemetry.LogSubscriber(tel.Logger.NewComponentLogger("events").Zerolog()), nil)

	if addr, err := tel.Metrics.StartMetricsServer(ctx, logger); err != nil {
		return err
	} else if addr != "" {
		logger.Info().Str("address", addr).Msg("Serving metrics")
	}

	engine, err := newEngine(ctx, cfg, version, logger, tel, extraPacks)
	if err != nil {
		return err
	}

	if cfg.Policy.Watch {
		dirs := packDirs(cfg, extraPacks)
		if len(dirs) == 0 {
			logger.Warn().Msg("Watch requested but no policy packs are configured")
		} else if err := engine.Watch(ctx, dirs); err != nil {
			return fmt.Errorf("failed to watch policy packs: %w", err)
		}
	}

	srvCfg := analyzer.ServerConfig{
		Version:         cfg.EngineConfig(version).Version,
		RecordFatal:     cfg.Store.RecordFatal,
		ShutdownTimeout: cfg.Server.ShutdownTimeoutDuration(),
		Metrics:         tel.Metrics,
		Tracer:          tel.Tracer,
		Events:          tel.Events,
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
		srvCfg.Recorder = stores.NewRecorder(store)
		logger.Info().Str("driver", store.Driver()).Msg("Recording analysis history")
	}

	server := analyzer.NewServer(engine, tel.Logger.NewComponentLogger("analyzer").Zerolog(), srvCfg)

	lis, err := net.Listen("tcp", cfg.Server.Address())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.Server.Address(), err)
	}

	// The plugin host reads the port from the first line of stdout.
	if _, err := fmt.Fprintf(stdout, "%d\n", lis.Addr().(*net.TCPAddr).Port); err != nil {
		_ = lis.Close()
		return fmt.Errorf("failed to write port: %w", err)
	}

	return server.Serve(ctx, lis)
}
