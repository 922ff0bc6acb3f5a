package main

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/tooltip/pkg/tooltip"
)

func versionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version and widget defaults",
		Long: `Print the CLI build, the tooltip defaults compiled into it, and a
digest of the embedded stylesheet. Compare the digest with the sha256
metadata of a published stylesheet to check it is current.`,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			if short {
				fmt.Fprintln(out, version)
				return
			}
			writeVersion(out)
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print only version number")

	return cmd
}

func writeVersion(out io.Writer) {
	css := tooltip.Stylesheet()
	sum := sha256.Sum256([]byte(css))

	positions := make([]string, 0, 4)
	for _, p := range tooltip.Positions() {
		positions = append(positions, p.String())
	}

	fmt.Fprintf(out, "tooltip %s (%s, built %s, %s %s/%s)\n",
		version, commit, date, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(out, "  delay:      %s\n", tooltip.DefaultDelay)
	fmt.Fprintf(out, "  position:   %s (of %s)\n", tooltip.PositionTop, strings.Join(positions, ", "))
	fmt.Fprintf(out, "  stylesheet: %d bytes, sha256 %s\n", len(css), hex.EncodeToString(sum[:])[:12])
}
