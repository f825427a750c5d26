package template

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// upperModifier upper-cases a string using locale-aware casing rules.
func upperModifier(value any, _ string, locale language.Tag) (any, error) {
	if s, ok := value.(string); ok {
		return cases.Upper(locale).String(s), nil
	}
	return value, nil
}

// lowerModifier lower-cases a string using locale-aware casing rules.
func lowerModifier(value any, _ string, locale language.Tag) (any, error) {
	if s, ok := value.(string); ok {
		return cases.Lower(locale).String(s), nil
	}
	return value, nil
}

// trimModifier removes leading and trailing whitespace from a string.
func trimModifier(value any, _ string, _ language.Tag) (any, error) {
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s), nil
	}
	return value, nil
}

// markdownModifier converts a Markdown string to HTML. Note that a declared
// content type's escaper still runs afterwards, so this is meant for
// templates with an unspecified content type where the variable stands alone
// as a block of markup.
func markdownModifier(value any, _ string, _ language.Tag) (any, error) {
	s, ok := value.(string)
	if !ok {
		return value, nil
	}

	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(s), &buf); err != nil {
		return nil, err
	}
	return buf.String(), nil
}
