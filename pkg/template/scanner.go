package template

import (
	"fmt"
	"io"
	"strings"
)

// markerKind classifies a {{...}} marker by its leading sigil.
type markerKind int

const (
	markerSectionStart markerKind = iota // {{#name}}
	markerSectionEnd                     // {{/name}}
	markerInclude                        // {{>name}}
	markerComment                        // {{!text}}
	markerVariable                       // {{path:modifier=arg}}
)

// marker is one parsed directive. text is the raw marker body with the sigil
// removed; variable markers have no sigil, so their text may itself start
// with one of the soft prefixes (".", "$", "@") handled during resolution.
type marker struct {
	kind markerKind
	text string
}

// scanMarker consumes one marker body from r, which must be positioned
// immediately after a confirmed double open brace. The body runs up to the
// matching double close brace; a close brace cannot appear inside a marker.
func scanMarker(r *pagedReader) (marker, error) {
	c, err := readMarkerRune(r)
	if err != nil {
		return marker{}, err
	}

	var kind markerKind
	switch c {
	case '#':
		kind = markerSectionStart
	case '/':
		kind = markerSectionEnd
	case '>':
		kind = markerInclude
	case '!':
		kind = markerComment
	default:
		kind = markerVariable
	}

	if kind != markerVariable {
		if c, err = readMarkerRune(r); err != nil {
			return marker{}, err
		}
	}

	var body strings.Builder
	for c != '}' {
		body.WriteRune(c)
		if c, err = readMarkerRune(r); err != nil {
			return marker{}, err
		}
	}

	if c, err = readMarkerRune(r); err != nil {
		return marker{}, err
	}
	if c != '}' {
		return marker{}, fmt.Errorf("%w: improperly terminated marker", ErrMalformedMarker)
	}

	if body.Len() == 0 {
		return marker{}, fmt.Errorf("%w: empty marker", ErrMalformedMarker)
	}

	return marker{kind: kind, text: body.String()}, nil
}

func readMarkerRune(r *pagedReader) (rune, error) {
	c, err := r.ReadRune()
	if err == io.EOF {
		return 0, fmt.Errorf("%w: unexpected end of stream", ErrMalformedMarker)
	}
	return c, err
}

// invocation is one modifier reference within a variable marker.
type invocation struct {
	name     string
	argument string
}

// parseVariable splits a variable marker body into its dotted path and the
// colon-separated modifier invocations that follow it.
func parseVariable(text string) (string, []invocation) {
	parts := strings.Split(text, ":")

	invocations := make([]invocation, 0, len(parts)-1)
	for _, part := range parts[1:] {
		name, argument, _ := strings.Cut(part, "=")
		invocations = append(invocations, invocation{name: name, argument: argument})
	}

	return parts[0], invocations
}

// splitSectionName separates an optional trailing separator suffix from a
// section marker body: "name[, ]" iterates over name emitting ", " between
// elements.
func splitSectionName(text string) (name, separator string) {
	if strings.HasSuffix(text, "]") {
		if i := strings.LastIndex(text, "["); i != -1 {
			return text[:i], text[i+1 : len(text)-1]
		}
	}
	return text, ""
}
