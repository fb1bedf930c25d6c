package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/watersort/internal/config"
	"github.com/vovakirdan/watersort/internal/metrics"
	"github.com/vovakirdan/watersort/internal/platform/tui"
)

var (
	flagSSHHost     string
	flagSSHPort     int
	flagHostKey     string
	flagIdleTimeout int
	flagMaxSessions int
	flagMetricsAddr string
	flagServePreset string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the water sort SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH user has their own campaign progress, keyed by the SSH user name.
Settings come from the environment and can be overridden by flags:

  WATERSORT_SSH_HOST       listen host (default 0.0.0.0)
  WATERSORT_SSH_PORT       listen port (default 2222)
  WATERSORT_HOST_KEY       host key path, generated when missing
  WATERSORT_DB             progress database (default: --db)
  WATERSORT_CONFIG         game config YAML, reloaded when it changes
  WATERSORT_METRICS_ADDR   Prometheus /metrics listen address
  WATERSORT_MAX_SESSIONS   concurrent session cap (default 64)

Examples:
  watersort serve
  watersort serve --port 2323 --metrics :9090
  watersort serve --config ./configs/watersort.yaml

Users can connect with:
  ssh -p 2222 alice@localhost`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHHost, "host", "", "SSH listen host")
	serveCmd.Flags().IntVar(&flagSSHPort, "port", 0, "SSH listen port")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().IntVar(&flagMaxSessions, "max-sessions", 0, "Maximum concurrent sessions")
	serveCmd.Flags().StringVar(&flagMetricsAddr, "metrics", "", "Serve Prometheus metrics on this address")
	serveCmd.Flags().StringVar(&flagServePreset, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runServe(cmd *cobra.Command, _ []string) {
	logger := newLogger("watersort-ssh")

	env, err := config.LoadServerEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Flags win over the environment
	flags := cmd.Flags()
	if flags.Changed("host") {
		env.Host = flagSSHHost
	}
	if flags.Changed("port") {
		env.Port = flagSSHPort
	}
	if flags.Changed("host-key") {
		env.HostKeyPath = flagHostKey
	}
	if flags.Changed("max-sessions") {
		env.MaxSessions = flagMaxSessions
	}
	if flags.Changed("metrics") {
		env.MetricsAddr = flagMetricsAddr
	}
	if env.DBPath == "" || cmd.Flags().Changed("db") {
		env.DBPath = flagDBPath
	}
	if env.ConfigPath == "" || cmd.Flags().Changed("config") {
		env.ConfigPath = flagConfig
	}

	gameCfg, used := loadConfig(logger, env.ConfigPath)
	cfgStore := config.NewStore(gameCfg, used)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if used != "" {
		go func() {
			if err := cfgStore.Watch(ctx, logger); err != nil {
				logger.Warn("Config watcher stopped", "path", used, "err", err)
			}
		}()
	}

	collector := metrics.New()
	setup, err := gameSetup(cfgStore.Current, flagServePreset, logger, collector)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if env.MetricsAddr != "" {
		metricsSrv := &http.Server{
			Addr:              env.MetricsAddr,
			Handler:           metricsMux(collector),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Info("Serving metrics", "address", env.MetricsAddr)
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("Metrics server failed", "err", err)
			}
		}()
		defer metricsSrv.Close()
	}

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Host:        env.Host,
		Port:        env.Port,
		HostKeyPath: env.HostKeyPath,
		DBPath:      env.DBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		MaxSessions: env.MaxSessions,
		TickRate:    flagFPS,
		Setup:       setup,
		Observer:    collector,
		Logger:      logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting water sort SSH server on %s (config: %s)\n", server.Addr(), configSource(used))
	fmt.Printf("Connect with: ssh -p %d <name>@localhost\n", env.Port)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

func metricsMux(c *metrics.Collector) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	return mux
}
