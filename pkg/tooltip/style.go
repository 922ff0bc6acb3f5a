package tooltip

import _ "embed"

//go:embed tooltip.css
var stylesheet string

// Stylesheet returns the CSS for the wrapper, the label and its four
// anchor classes.
func Stylesheet() string {
	return stylesheet
}
