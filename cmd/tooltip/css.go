package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/tooltip/pkg/tooltip"
)

func cssCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "css",
		Short: "Print the tooltip stylesheet",
		Long: `Print the stylesheet for the wrapper, label and position classes.

Examples:
  tooltip css > static/tooltip.css`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), tooltip.Stylesheet())
		},
	}
}
