package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/vango-dev/tooltip/internal/config"
	"github.com/vango-dev/tooltip/internal/errors"
	"github.com/vango-dev/tooltip/pkg/server"
	"github.com/vango-dev/tooltip/pkg/tooltip"
)

func serveCmd() *cobra.Command {
	var (
		port       int
		host       string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the demo server",
		Long: `Start the interactive demo server.

The page shows one tooltip per position. Hover or focus a button and
the label appears after the configured delay.

Examples:
  tooltip serve
  tooltip serve --port=8080
  tooltip serve --config=./tooltip.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Server.Port = port
			}
			if host != "" {
				cfg.Server.Host = host
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run on (default from tooltip.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from tooltip.json)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to tooltip.json (default: working directory)")

	return cmd
}

// loadConfig reads path, or tooltip.json in the working directory when
// path is empty.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.LoadFromWorkingDir()
	}
	return config.LoadFile(path)
}

// serverConfig maps tooltip.json onto server settings.
func serverConfig(cfg *config.Config) *server.Config {
	sc := &server.Config{
		Address:           cfg.Address(),
		Title:             cfg.Name,
		ReadTimeout:       cfg.Server.ReadTimeout.Std(),
		WriteTimeout:      cfg.Server.WriteTimeout.Std(),
		HeartbeatInterval: cfg.Server.HeartbeatInterval.Std(),
		ShutdownTimeout:   cfg.Server.ShutdownTimeout.Std(),
		MaxEventQueue:     cfg.Server.MaxEventQueue,
		Position:          cfg.TooltipPosition(),
		Tooltip:           []tooltip.Option{tooltip.WithDelay(cfg.TooltipDelay())},
		Tracing:           cfg.TracingEnabled(),
	}
	if cfg.MetricsEnabled() {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		sc.Registry = reg
	}
	return sc
}

func runServe(ctx context.Context, cfg *config.Config) error {
	srv := server.New(serverConfig(cfg))

	printBanner()
	fmt.Println("  serve")
	fmt.Println()
	success("Listening on %s", cfg.URL())
	info("Delay %s, position %s", cfg.TooltipDelay(), cfg.TooltipPosition())
	if cfg.MetricsEnabled() {
		info("Metrics at %s/metrics", cfg.URL())
	}
	if cfg.TracingEnabled() {
		warn("Tracing uses the global OpenTelemetry provider; spans are dropped unless one is installed")
	}
	fmt.Println()

	if err := srv.ListenAndServe(ctx); err != nil {
		return errors.New("E400").Wrap(err)
	}
	fmt.Println("\n  Shut down.")
	return nil
}
