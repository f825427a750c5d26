package template

import "errors"

// Rendering errors. All of them are fatal: the engine propagates them to the
// caller immediately and the output sink holds whatever was written before the
// failure point. Missing optional data is not an error and renders as empty
// output; these only cover structural problems with the template or the
// supplied dictionary.
var (
	// ErrMalformedMarker indicates an unterminated or empty {{...}} marker.
	ErrMalformedMarker = errors.New("malformed marker")

	// ErrInvalidSectionValue indicates a section whose path resolved to a
	// value that is not a sequence.
	ErrInvalidSectionValue = errors.New("invalid section value")

	// ErrInvalidPath indicates a dotted path that tried to index into a
	// value that is not a dictionary.
	ErrInvalidPath = errors.New("invalid path")

	// ErrInvalidVariableValue indicates a variable whose path resolved to a
	// value that is not a scalar.
	ErrInvalidVariableValue = errors.New("invalid variable value")

	// ErrIncludeCycle indicates a template that includes itself, directly or
	// through other includes.
	ErrIncludeCycle = errors.New("include cycle")
)
