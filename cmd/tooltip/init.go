package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/tooltip/internal/config"
	"github.com/vango-dev/tooltip/internal/errors"
)

func initCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a default tooltip.json",
		Long: `Write tooltip.json with default settings to dir (default: .).

Examples:
  tooltip init
  tooltip init ./site --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			path := filepath.Join(dir, config.ConfigFileName)

			if _, err := os.Stat(path); err == nil && !force {
				return errors.New("E403").
					WithDetailf("%s already exists", path).
					WithSuggestion("Use --force to overwrite it")
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return errors.New("E100").Wrap(err)
			}
			if err := config.New().SaveTo(path); err != nil {
				return err
			}
			success("Wrote %s", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")

	return cmd
}
