package render

import (
	"io"

	"github.com/vango-dev/tooltip/pkg/vdom"
)

// PageData describes a complete HTML document.
type PageData struct {
	Title       string
	Lang        string
	Stylesheets []string
	Scripts     []string

	// Body is rendered inside <body>. Its handlers are registered.
	Body *vdom.VNode
}

// RenderPage writes a full document with DOCTYPE, head and body.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	head := vdom.Head(
		vdom.Meta(vdom.Charset("utf-8")),
		vdom.Meta(vdom.Name("viewport"), vdom.Content("width=device-width, initial-scale=1")),
		vdom.Title(page.Title),
	)
	for _, href := range page.Stylesheets {
		head.Children = append(head.Children, vdom.Link(vdom.Rel("stylesheet"), vdom.Href(href)))
	}
	for _, src := range page.Scripts {
		head.Children = append(head.Children, vdom.Script(vdom.Src(src), vdom.Defer()))
	}

	doc := vdom.Fragment(
		vdom.Raw("<!DOCTYPE html>\n"),
		vdom.Html(vdom.Lang(lang), head, vdom.Body(page.Body)),
	)
	return r.RenderToWriter(w, doc)
}
