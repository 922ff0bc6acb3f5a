// Command tooltip serves, renders and publishes hover tooltips.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/tooltip/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┌┬┐┌─┐┌─┐┬ ┌┬┐┬┌─┐
   │ │ ││ ││  │ │├─┘
   ┴ └─┘└─┘┴─┘┴ ┴┴
`

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprint(os.Stderr, errors.Format(err))
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		logLevel string
		noColor  bool
	)

	cmd := &cobra.Command{
		Use:   "tooltip",
		Short: "Server-driven hover and focus tooltips",
		Long: `Tooltip renders accessible hover/focus tooltips on the server.

A label appears after a short delay when the pointer enters or focus
moves into the wrapped element, and disappears immediately when it
leaves. Commands:

  • serve    run the interactive demo over HTTP and WebSocket
  • render   print the HTML for one tooltip
  • css      print the stylesheet
  • publish  upload the stylesheet to S3
  • init     write a default tooltip.json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if noColor {
				errors.DisableColors()
			}
			level, err := parseLevel(logLevel)
			if err != nil {
				return err
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	cmd.AddCommand(
		serveCmd(),
		renderCmd(),
		cssCmd(),
		publishCmd(),
		initCmd(),
		versionCmd(),
	)
	return cmd
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, errors.New("E402").WithDetailf("unknown log level %q", s)
}

// printBanner prints the ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Printf("\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}
