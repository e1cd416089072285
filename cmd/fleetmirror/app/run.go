package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fleetmirror/fleetmirror/internal/api"
	"github.com/fleetmirror/fleetmirror/internal/config"
	"github.com/fleetmirror/fleetmirror/internal/errclass"
	"github.com/fleetmirror/fleetmirror/internal/hoststore"
	"github.com/fleetmirror/fleetmirror/internal/httpclient"
	"github.com/fleetmirror/fleetmirror/internal/logger"
	"github.com/fleetmirror/fleetmirror/internal/poller"
	"github.com/fleetmirror/fleetmirror/internal/report"
	"github.com/fleetmirror/fleetmirror/internal/statesync"
	"github.com/fleetmirror/fleetmirror/internal/telemetry"
	"github.com/fleetmirror/fleetmirror/internal/versions"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the adapter poll loop",
	Long: `Run the adapter: poll the telemetry endpoint on a fixed interval and
mirror selected fields into the state store. The configuration file (--config)
specifies the endpoint, access token, vehicle, poll interval, and store backend.`,
	RunE: runAdapter,
}

const (
	defaultGracefulTimeout = 30 * time.Second
	opsReadTimeout         = 10 * time.Second
	opsWriteTimeout        = 15 * time.Second
	opsIdleTimeout         = 60 * time.Second
)

func init() {
	runCmd.Flags().String("config", "", "Path to configuration file (YAML format, required)")

	if err := viper.BindPFlag("config", runCmd.Flags().Lookup("config")); err != nil {
		logger.Fatalf("Failed to bind config flag: %v", err)
	}
	if err := runCmd.MarkFlagRequired("config"); err != nil {
		logger.Fatalf("Failed to mark config flag as required: %v", err)
	}
}

func runAdapter(_ *cobra.Command, _ []string) error {
	ctx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	configPath := viper.GetString("config")
	cfg, err := config.LoadConfig(config.WithConfigPath(configPath))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Infof("Loaded configuration from %s (vehicle: %s, interval: %s, store: %s)",
		configPath, cfg.Vehicle.VIN, cfg.GetPollInterval(), cfg.Store.Driver)

	store, cleanup, err := buildStore(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	log := logger.Get()

	// The 401 path requests adapter stop; the loop drains on this channel.
	stopCh := make(chan struct{})
	var stopOnce sync.Once
	requestStop := func() {
		stopOnce.Do(func() { close(stopCh) })
	}

	classifierOpts := []errclass.Option{
		errclass.WithDedupStore(errclass.NewStoreDedup(store, "")),
	}
	if cfg.Reporting != nil {
		classifierOpts = append(classifierOpts,
			errclass.WithReporter(report.NewWebhookReporter(cfg.Reporting.Webhook, 0)))
	}
	classifier := errclass.NewClassifier(log, requestStop, classifierOpts...)

	provider, err := telemetry.NewProvider("fleetmirror", versions.GetVersionInfo().Version, cfg.Telemetry.Enabled)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			logger.Warnf("Telemetry shutdown failed: %v", err)
		}
	}()

	metrics, err := telemetry.NewPollerMetrics(provider.MeterProvider)
	if err != nil {
		return fmt.Errorf("failed to create poller metrics: %w", err)
	}

	syncer := statesync.NewHelper(store, log)
	p := poller.New(
		httpclient.NewDefaultClient(0),
		syncer,
		classifier,
		metrics,
		log,
		poller.Config{
			Endpoint: cfg.Vehicle.Endpoint,
			Token:    cfg.Vehicle.Token,
			VIN:      cfg.Vehicle.VIN,
		},
	)

	// Resume note: surface the last mirrored connectivity state, if any.
	reader := statesync.NewReader(store, log)
	if last := reader.LocalValue(ctx, "status.state"); last != nil {
		logger.Infof("Resuming, last known vehicle state: %v", last)
	}

	opsServer := startOpsServer(cfg, p, provider)

	runPollLoop(ctx, cfg, p, stopCh)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultGracefulTimeout)
	defer cancel()
	if err := opsServer.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("Ops server shutdown failed: %v", err)
	}
	return nil
}

// buildStore creates the configured host store backend and its cleanup.
func buildStore(cfg *config.Config) (hoststore.Store, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		return hoststore.NewMemoryStore(), func() {}, nil
	default:
		store, err := hoststore.NewSQLiteStore(cfg.Store.Path, cfg.Store.Namespace)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open state store: %w", err)
		}
		cleanup := func() {
			if err := store.Close(); err != nil {
				logger.Warnf("Failed to close state store: %v", err)
			}
		}
		return store, cleanup, nil
	}
}

// startOpsServer serves health, version, status, and metrics.
func startOpsServer(cfg *config.Config, p *poller.Poller, provider *telemetry.Provider) *http.Server {
	var opts []api.ServerOption
	if provider.Registry != nil {
		opts = append(opts, api.WithMetricsRegistry(provider.Registry))
	}

	server := &http.Server{
		Addr:         cfg.Ops.Address,
		Handler:      api.NewServer(p, opts...),
		ReadTimeout:  opsReadTimeout,
		WriteTimeout: opsWriteTimeout,
		IdleTimeout:  opsIdleTimeout,
	}

	go func() {
		logger.Infof("Ops endpoint listening on %s", cfg.Ops.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("Ops server failed: %v", err)
		}
	}()
	return server
}

// runPollLoop polls immediately and then on every tick until a signal
// arrives or the classifier requests stop. Polls are fully sequential: each
// cycle completes before the next tick is considered.
func runPollLoop(ctx context.Context, cfg *config.Config, p *poller.Poller, stopCh <-chan struct{}) {
	interval := cfg.GetPollInterval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	poll := func() {
		if err := p.Poll(ctx); err != nil {
			// Host-store write failure: the cycle is aborted, values stay
			// stale until the store recovers on a later tick.
			logger.Errorf("Poll cycle aborted: %v", err)
		}
	}

	poll()
	for {
		select {
		case <-ctx.Done():
			logger.Infof("Shutdown signal received, stopping poll loop")
			return
		case <-stopCh:
			logger.Infof("Adapter stop requested, stopping poll loop")
			return
		case <-ticker.C:
			poll()
		}
	}
}
