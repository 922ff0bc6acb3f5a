package render

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/vango-dev/tooltip/pkg/vdom"
)

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty enables indented output. Development only.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces if not specified.
	Indent string

	// HIDPrefix prefixes generated hydration IDs. Defaults to "h".
	HIDPrefix string
}

// Renderer handles server-side rendering of VNode trees to HTML.
// A Renderer is not safe for concurrent use.
type Renderer struct {
	config     RendererConfig
	hidCounter uint32
	handlers   map[string]any
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	if config.HIDPrefix == "" {
		config.HIDPrefix = "h"
	}
	return &Renderer{
		config:   config,
		handlers: make(map[string]any),
	}
}

// RenderToString renders a VNode tree to an HTML string.
func (r *Renderer) RenderToString(node *vdom.VNode) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter resets the renderer and streams a VNode tree to w.
func (r *Renderer) RenderToWriter(w io.Writer, node *vdom.VNode) error {
	r.Reset()
	bw := bufio.NewWriter(w)
	if err := r.renderNode(bw, node, 0); err != nil {
		return err
	}
	return bw.Flush()
}

// Handlers returns the handler registry collected during the last render.
// Keys have the form "<hid>_<onevent>" (e.g., "h1_onpointerenter").
func (r *Renderer) Handlers() map[string]any {
	return r.handlers
}

// Handler looks up the handler registered for hid and a DOM event type
// such as "focusout" or "pointerenter".
func (r *Renderer) Handler(hid, eventType string) (any, bool) {
	h, ok := r.handlers[hid+"_on"+strings.ToLower(eventType)]
	return h, ok
}

// Reset clears the HID counter and handler registry.
func (r *Renderer) Reset() {
	r.hidCounter = 0
	r.handlers = make(map[string]any)
}

// renderNode dispatches rendering based on node kind.
func (r *Renderer) renderNode(w *bufio.Writer, node *vdom.VNode, depth int) error {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case vdom.KindElement:
		return r.renderElement(w, node, depth)
	case vdom.KindText:
		_, err := w.WriteString(escapeHTML(node.Text))
		return err
	case vdom.KindFragment:
		for _, child := range node.Children {
			if err := r.renderNode(w, child, depth); err != nil {
				return err
			}
		}
		return nil
	case vdom.KindComponent:
		if node.Comp == nil {
			return nil
		}
		return r.renderNode(w, node.Comp.Render(), depth)
	case vdom.KindRaw:
		_, err := w.WriteString(node.Text)
		return err
	default:
		return fmt.Errorf("render: unknown node kind %d", node.Kind)
	}
}

// renderElement renders an HTML element with its attributes and children.
func (r *Renderer) renderElement(w *bufio.Writer, node *vdom.VNode, depth int) error {
	tag := node.Tag
	if tag == "" {
		return fmt.Errorf("render: element without tag")
	}

	if r.config.Pretty && depth > 0 {
		r.writeIndent(w, depth)
	}

	w.WriteByte('<')
	w.WriteString(tag)
	r.renderAttributes(w, node)

	if node.IsInteractive() {
		node.HID = r.nextHID()
		w.WriteString(` data-hid="`)
		w.WriteString(node.HID)
		w.WriteByte('"')
		r.registerHandlers(node)
	}

	w.WriteByte('>')

	if vdom.IsVoidElement(tag) {
		if r.config.Pretty {
			w.WriteByte('\n')
		}
		return nil
	}

	blockChildren := r.config.Pretty && hasElementChild(node) && !isInlineElement(tag)
	if blockChildren {
		w.WriteByte('\n')
	}

	for _, child := range node.Children {
		if err := r.renderNode(w, child, depth+1); err != nil {
			return err
		}
	}

	if blockChildren {
		r.writeIndent(w, depth)
	}

	w.WriteString("</")
	w.WriteString(tag)
	_, err := w.WriteString(">")
	if r.config.Pretty {
		w.WriteByte('\n')
	}
	return err
}

// renderAttributes renders attributes in sorted order for deterministic output.
func (r *Renderer) renderAttributes(w *bufio.Writer, node *vdom.VNode) {
	if len(node.Props) == 0 {
		return
	}

	keys := make([]string, 0, len(node.Props))
	for key := range node.Props {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var events []string
	for _, key := range keys {
		value := node.Props[key]

		// Internal props
		if strings.HasPrefix(key, "_") {
			continue
		}

		if vdom.IsEventKey(key) {
			if value != nil {
				events = append(events, key[2:])
			}
			continue
		}

		if isBooleanAttr(key) {
			if b, ok := value.(bool); ok {
				if b {
					w.WriteByte(' ')
					w.WriteString(key)
				}
				continue
			}
		}

		s := attrToString(value)
		if s == "" && value == nil {
			continue
		}
		w.WriteByte(' ')
		w.WriteString(key)
		w.WriteString(`="`)
		w.WriteString(escapeAttr(s))
		w.WriteByte('"')
	}

	// Event markers tell the client which listeners to attach.
	if len(events) > 0 {
		w.WriteString(` data-on="`)
		w.WriteString(strings.Join(events, " "))
		w.WriteByte('"')
	}
}

// nextHID generates the next sequential hydration ID.
func (r *Renderer) nextHID() string {
	r.hidCounter++
	return r.config.HIDPrefix + strconv.FormatUint(uint64(r.hidCounter), 10)
}

// registerHandlers stores handler references for the node's HID.
func (r *Renderer) registerHandlers(node *vdom.VNode) {
	for _, h := range node.Handlers() {
		r.handlers[node.HID+"_"+h.Event] = h.Handler
	}
}

// attrToString converts an attribute value to a string.
func attrToString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func hasElementChild(node *vdom.VNode) bool {
	for _, c := range node.Children {
		if c != nil && c.Kind != vdom.KindText {
			return true
		}
	}
	return false
}

// writeIndent writes indentation for pretty printing.
func (r *Renderer) writeIndent(w *bufio.Writer, depth int) {
	for i := 0; i < depth; i++ {
		w.WriteString(r.config.Indent)
	}
}

// inlineElements don't get newlines in pretty-printed output.
var inlineElements = map[string]bool{
	"a":      true,
	"b":      true,
	"button": true,
	"code":   true,
	"em":     true,
	"i":      true,
	"label":  true,
	"span":   true,
	"strong": true,
	"title":  true,
}

func isInlineElement(tag string) bool {
	return inlineElements[tag]
}

// booleanAttrs are rendered as a bare name when true and omitted when false.
var booleanAttrs = map[string]bool{
	"async":     true,
	"autofocus": true,
	"checked":   true,
	"defer":     true,
	"disabled":  true,
	"hidden":    true,
	"readonly":  true,
	"required":  true,
	"selected":  true,
}

func isBooleanAttr(name string) bool {
	return booleanAttrs[name]
}
