package vdom

import "strings"

// attr creates an Attr with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// Identity attributes

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Attr {
	parts := classes[:0:0]
	for _, c := range classes {
		if c != "" {
			parts = append(parts, c)
		}
	}
	return attr("class", strings.Join(parts, " "))
}

// Key sets the reconciliation key. It is not rendered.
func Key(k string) Attr { return attr("key", k) }

// Data creates a data-* attribute.
// Example: Data("position", "top") → data-position="top"
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Accessibility attributes

// Role sets the role attribute.
func Role(role string) Attr { return attr("role", role) }

// AriaDescribedBy sets the aria-describedby attribute.
func AriaDescribedBy(id string) Attr { return attr("aria-describedby", id) }

// Links and resources

// Href sets the href attribute.
func Href(url string) Attr { return attr("href", url) }

// Rel sets the rel attribute.
func Rel(rel string) Attr { return attr("rel", rel) }

// Src sets the src attribute.
func Src(url string) Attr { return attr("src", url) }

// Defer sets the boolean defer attribute.
func Defer() Attr { return attr("defer", true) }

// Charset sets the charset attribute.
func Charset(cs string) Attr { return attr("charset", cs) }

// Name sets the name attribute.
func Name(name string) Attr { return attr("name", name) }

// Content sets the content attribute (for meta elements).
func Content(content string) Attr { return attr("content", content) }

// Lang sets the lang attribute.
func Lang(lang string) Attr { return attr("lang", lang) }

// Type sets the type attribute.
func Type(t string) Attr { return attr("type", t) }
