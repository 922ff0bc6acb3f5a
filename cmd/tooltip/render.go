package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/tooltip/internal/errors"
	"github.com/vango-dev/tooltip/pkg/clock"
	"github.com/vango-dev/tooltip/pkg/loop"
	"github.com/vango-dev/tooltip/pkg/render"
	"github.com/vango-dev/tooltip/pkg/tooltip"
	"github.com/vango-dev/tooltip/pkg/vdom"
)

type renderOptions struct {
	content  string
	position string
	id       string
	child    string
	visible  bool
	pretty   bool
}

func renderCmd() *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the HTML for one tooltip",
		Long: `Print the server-rendered HTML for a single tooltip.

By default the tooltip is hidden and only the wrapped element is
rendered. Pass --visible to render it after the reveal delay.

Examples:
  tooltip render --content=Save
  tooltip render --content="Delete file" --position=right --visible`,
		RunE: func(cmd *cobra.Command, args []string) error {
			html, err := renderTooltip(opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), html)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.content, "content", "", "Tooltip text")
	cmd.Flags().StringVar(&opts.position, "position", "top", "Position: top, bottom, left or right")
	cmd.Flags().StringVar(&opts.id, "id", "tooltip", "Tooltip id")
	cmd.Flags().StringVar(&opts.child, "child", "Hover me", "Text of the wrapped button")
	cmd.Flags().BoolVar(&opts.visible, "visible", false, "Render the revealed state")
	cmd.Flags().BoolVar(&opts.pretty, "pretty", false, "Indent the output")

	return cmd
}

// renderTooltip drives a tooltip on a fake clock so --visible renders the
// exact state reached after the delay.
func renderTooltip(opts renderOptions) (string, error) {
	pos, err := tooltip.ParsePosition(opts.position)
	if err != nil {
		return "", errors.New("E103").
			WithSuggestion("Use --position=top, bottom, left or right").
			Wrap(err)
	}

	fake := clock.NewFake(time.Unix(0, 0))
	tip := tooltip.New(opts.content,
		tooltip.WithID(opts.id),
		tooltip.WithPosition(pos),
		tooltip.WithClock(fake),
		tooltip.WithDispatcher(loop.Inline),
		tooltip.WithChildren(vdom.Button(vdom.Type("button"), vdom.Text(opts.child))),
	)
	defer tip.Unmount()

	if opts.visible {
		tip.Show()
		fake.Advance(tip.Config().Delay)
	}

	r := render.NewRenderer(render.RendererConfig{Pretty: opts.pretty})
	html, err := r.RenderToString(tip.Render())
	if err != nil {
		return "", errors.New("E401").Wrap(err)
	}
	return html, nil
}
