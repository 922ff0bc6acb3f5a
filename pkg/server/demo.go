package server

import (
	"github.com/vango-dev/tooltip/pkg/tooltip"
	"github.com/vango-dev/tooltip/pkg/vdom"
)

// AppID is the id of the element the client swaps on every update.
const AppID = "app"

var positionLabels = map[tooltip.Position]string{
	tooltip.PositionTop:    "Top",
	tooltip.PositionBottom: "Bottom",
	tooltip.PositionLeft:   "Left",
	tooltip.PositionRight:  "Right",
}

// Demo is the demo page body: a "Save" button using the configured
// position, followed by one tooltip per position.
type Demo struct {
	title string
	save  *tooltip.Tooltip
	tips  []*tooltip.Tooltip
}

// NewDemo mounts the demo tooltips. opts apply to each of them.
// IDs are fixed so that every session renders identical markup.
func NewDemo(title string, position tooltip.Position, opts ...tooltip.Option) *Demo {
	d := &Demo{title: title}
	// Full slice expression: every append below allocates, so the
	// caller's slice is never written to.
	opts = opts[:len(opts):len(opts)]

	d.save = tooltip.New("Save", append(opts,
		tooltip.WithID("tip-save"),
		tooltip.WithPosition(position),
		tooltip.WithChildren(vdom.Button(vdom.Type("button"), vdom.Text("Save"))),
	)...)
	d.tips = append(d.tips, d.save)

	for _, pos := range tooltip.Positions() {
		d.tips = append(d.tips, tooltip.New("Tooltip on "+pos.String(), append(opts,
			tooltip.WithID("tip-"+pos.String()),
			tooltip.WithPosition(pos),
			tooltip.WithChildren(vdom.Button(vdom.Type("button"), vdom.Text(positionLabels[pos]))),
		)...))
	}
	return d
}

// Tooltips returns every mounted tooltip, "Save" first.
func (d *Demo) Tooltips() []*tooltip.Tooltip {
	return d.tips
}

// Unmount unmounts every tooltip.
func (d *Demo) Unmount() {
	for _, t := range d.tips {
		t.Unmount()
	}
}

// Render returns the app root.
func (d *Demo) Render() *vdom.VNode {
	gallery := vdom.Div(vdom.Class("tooltip-gallery"))
	for _, t := range d.tips[1:] {
		gallery.Children = append(gallery.Children, t.Render())
	}

	return vdom.Main(
		vdom.ID(AppID),
		vdom.H1(vdom.Text(d.title)),
		vdom.Section(
			vdom.Class("tooltip-demo"),
			vdom.P(vdom.Text("Hover or focus a button. The label appears after the delay.")),
			d.save.Render(),
		),
		vdom.Section(
			vdom.Class("tooltip-demo"),
			vdom.H2(vdom.Text("Positions")),
			gallery,
		),
	)
}
