package template

import (
	"net/url"
	"strings"

	"golang.org/x/text/language"
)

// The escape modifiers transform string values only; numbers and booleans
// cannot carry markup and pass through unchanged. Each is registered under
// the name of the content type it protects, which is also how the engine
// finds the default escaper for its declared content type.

var markupReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

var jsonReplacer = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\b", `\b`,
	"\f", `\f`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// urlEscapeModifier percent-encodes a string for use in a query component.
func urlEscapeModifier(value any, _ string, _ language.Tag) (any, error) {
	if s, ok := value.(string); ok {
		return url.QueryEscape(s), nil
	}
	return value, nil
}

// markupEscapeModifier escapes HTML/XML entity characters.
func markupEscapeModifier(value any, _ string, _ language.Tag) (any, error) {
	if s, ok := value.(string); ok {
		return markupReplacer.Replace(s), nil
	}
	return value, nil
}

// jsonEscapeModifier escapes a string for embedding inside a JSON string
// literal. It does not add the surrounding quotes.
func jsonEscapeModifier(value any, _ string, _ language.Tag) (any, error) {
	if s, ok := value.(string); ok {
		return jsonReplacer.Replace(s), nil
	}
	return value, nil
}

// csvEscapeModifier quotes a string as a delimited field, doubling any
// embedded quotes.
func csvEscapeModifier(value any, _ string, _ language.Tag) (any, error) {
	if s, ok := value.(string); ok {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`, nil
	}
	return value, nil
}
