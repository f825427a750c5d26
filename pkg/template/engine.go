package template

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"path"
	"reflect"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// Resources resolves localized strings referenced through the "@" prefix.
// The pkg/resource package provides a YAML-backed implementation; anything
// able to answer a (locale, key) lookup can stand in.
type Resources interface {
	Lookup(locale language.Tag, key string) (string, bool)
}

// Engine renders templates against caller-supplied data dictionaries. An
// Engine holds only immutable configuration; every call to Render owns its
// own input buffer, scope stack, and include cache, so a single Engine is
// safe for concurrent use.
type Engine struct {
	logger      *slog.Logger
	loader      Loader
	modifiers   *Registry
	contentType ContentType
	resources   Resources
	context     map[string]any
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithContentType declares the document format the engine produces. The
// matching escape modifier is then applied to every variable after any
// explicit modifiers.
func WithContentType(contentType ContentType) Option {
	return func(e *Engine) { e.contentType = contentType }
}

// WithResources attaches a localized string table for "@" references.
func WithResources(resources Resources) Option {
	return func(e *Engine) { e.resources = resources }
}

// WithContext sets the named context values templates reach through the "$"
// prefix. These live beside the data dictionary, not inside it, and are
// typically request-scoped values injected by the caller.
func WithContext(values map[string]any) Option {
	return func(e *Engine) {
		for name, value := range values {
			e.context[name] = value
		}
	}
}

// WithModifier registers an additional named modifier on this engine only.
func WithModifier(name string, modifier Modifier) Option {
	return func(e *Engine) { e.modifiers.Register(name, modifier) }
}

// NewEngine creates an engine that opens templates and includes through
// loader. A nil logger discards all log output.
func NewEngine(logger *slog.Logger, loader Loader, opts ...Option) *Engine {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	e := &Engine{
		logger:    logger,
		loader:    loader,
		modifiers: DefaultModifiers(),
		context:   make(map[string]any),
	}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Render opens the named template through the engine's loader and renders it
// against value, writing the result to w. Includes resolve relative to the
// template's own directory. A nil value renders nothing.
func (e *Engine) Render(w io.Writer, name string, value any, locale language.Tag) error {
	src, err := e.loader.Open(name)
	if err != nil {
		return fmt.Errorf("template %q: %w", name, err)
	}
	defer func() { _ = src.Close() }()

	return e.render(w, newPagedReader(src), path.Dir(rootedPath(name)), name, value, locale)
}

// RenderSource renders a template read directly from r. Includes resolve
// against the loader root.
func (e *Engine) RenderSource(w io.Writer, r io.Reader, value any, locale language.Tag) error {
	return e.render(w, newPagedReader(r), "/", "(source)", value, locale)
}

func (e *Engine) render(w io.Writer, r *pagedReader, dir, name string, value any, locale language.Tag) error {
	if value == nil {
		return nil
	}

	e.logger.Debug("Rendering template", "template", name, "locale", locale)

	st := &renderState{
		engine:   e,
		locale:   locale,
		includes: make(map[string]*pagedReader),
		opening:  make(map[string]struct{}),
		dirs:     []string{dir},
	}

	buffered := bufio.NewWriter(w)
	if err := st.render(value, buffered, r); err != nil {
		// The sink keeps the valid prefix written before the failure.
		_ = buffered.Flush()
		return fmt.Errorf("template %q: %w", name, err)
	}

	return buffered.Flush()
}

// renderState is the mutable working set of one top-level render call. The
// buffer, scope chain, and include cache are shared by reference through the
// whole recursive descent; nothing in here survives the call.
type renderState struct {
	engine *Engine
	locale language.Tag

	scopes scopeChain

	// includes maps resolved include paths to their already-consumed buffers
	// so repeated includes replay instead of re-fetching. opening tracks the
	// includes currently being read for the first time, to catch cycles.
	includes map[string]*pagedReader
	opening  map[string]struct{}

	// dirs is the stack of template directories, innermost last, used to
	// resolve relative include paths.
	dirs []string
}

// render pushes value as the innermost scope and interprets r until the
// stream ends or a section-end marker closes the scope.
func (st *renderState) render(value any, w *bufio.Writer, r *pagedReader) error {
	st.scopes.push(wrapValue(value))
	defer st.scopes.pop()

	return st.run(w, r)
}

// run is the interpreter loop. Everything outside a confirmed double open
// brace is literal text; a lone open brace passes through unchanged.
func (st *renderState) run(w *bufio.Writer, r *pagedReader) error {
	for {
		c, err := r.ReadRune()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		if c != '{' {
			if _, err = w.WriteRune(c); err != nil {
				return err
			}
			continue
		}

		if c, err = r.ReadRune(); err != nil {
			if err == io.EOF {
				_, err = w.WriteRune('{')
			}
			return err
		}

		if c != '{' {
			if _, err = w.WriteRune('{'); err != nil {
				return err
			}
			if _, err = w.WriteRune(c); err != nil {
				return err
			}
			continue
		}

		m, err := scanMarker(r)
		if err != nil {
			return err
		}

		switch m.kind {
		case markerSectionStart:
			err = st.renderSection(m.text, w, r)
		case markerSectionEnd:
			return nil
		case markerInclude:
			err = st.renderInclude(m.text, w)
		case markerComment:
			// No output, no scope effect.
		default:
			err = st.renderVariable(m.text, w)
		}
		if err != nil {
			return err
		}
	}
}

// renderSection renders {{#name}}...{{/name}} once per element of the bound
// sequence. For every element but the last the buffer is marked before and
// reset after the recursive pass, replaying the same body text with a
// different innermost scope. An empty (or absent) sequence still needs the
// body's balanced markers consumed, so a single pass runs with an empty
// scope and a discarding sink.
func (st *renderState) renderSection(text string, w *bufio.Writer, r *pagedReader) error {
	name, separator := splitSectionName(text)

	value, err := st.scopes.resolve(name)
	if err != nil {
		return err
	}

	elements, err := sequenceOf(name, value)
	if err != nil {
		return err
	}

	if len(elements) == 0 {
		return st.render(map[string]any{}, bufio.NewWriter(io.Discard), r)
	}

	for i, element := range elements {
		last := i == len(elements)-1

		if !last {
			r.Mark()
		}
		if i > 0 && separator != "" {
			if _, err = w.WriteString(separator); err != nil {
				return err
			}
		}

		if err = st.render(element, w, r); err != nil {
			return err
		}

		if !last {
			r.Reset()
		}
	}

	return nil
}

// sequenceOf coerces a section's resolved value to a slice of elements.
// Absent and nil values iterate zero times; anything that is not a sequence
// is a structural error.
func sequenceOf(name string, value any) ([]any, error) {
	if value == nil {
		return nil, nil
	}

	if elements, ok := value.([]any); ok {
		return elements, nil
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("%w: %q is not a sequence", ErrInvalidSectionValue, name)
	}

	elements := make([]any, rv.Len())
	for i := range elements {
		elements[i] = rv.Index(i).Interface()
	}
	return elements, nil
}

// renderInclude renders {{>name}} inline against the caller's current scope;
// includes share the including template's dictionary rather than opening a
// scope of their own. The first use within a render call fetches and renders
// the referenced template, then caches its fully-consumed buffer; later uses
// rewind the buffer and replay it without touching the loader.
func (st *renderState) renderInclude(name string, w *bufio.Writer) error {
	resolved := path.Join(st.dirs[len(st.dirs)-1], name)

	if include, ok := st.includes[resolved]; ok {
		include.Reset()
		return st.runInclude(resolved, include, w)
	}

	if _, ok := st.opening[resolved]; ok {
		return fmt.Errorf("%w: %q includes itself", ErrIncludeCycle, resolved)
	}

	src, err := st.engine.loader.Open(resolved)
	if err != nil {
		return fmt.Errorf("include %q: %w", resolved, err)
	}
	defer func() { _ = src.Close() }()

	st.engine.logger.Debug("Opening include", "path", resolved)

	include := newPagedReader(src)

	st.opening[resolved] = struct{}{}
	err = st.runInclude(resolved, include, w)
	delete(st.opening, resolved)

	if err != nil {
		return err
	}

	st.includes[resolved] = include
	return nil
}

func (st *renderState) runInclude(resolved string, include *pagedReader, w *bufio.Writer) error {
	st.dirs = append(st.dirs, path.Dir(resolved))
	err := st.run(w, include)
	st.dirs = st.dirs[:len(st.dirs)-1]
	return err
}

// renderVariable resolves a variable marker, applies its modifier chain left
// to right, applies the engine's content-type escaper last, and writes the
// stringified result. An absent value writes nothing at all.
func (st *renderState) renderVariable(text string, w *bufio.Writer) error {
	variablePath, invocations := parseVariable(text)

	value, err := st.variableValue(variablePath)
	if err != nil {
		return err
	}
	if value == nil {
		return nil
	}

	if !isScalar(value) {
		return fmt.Errorf("%w: %q is not a scalar", ErrInvalidVariableValue, variablePath)
	}

	for _, inv := range invocations {
		modifier, ok := st.engine.modifiers.lookup(inv.name)
		if !ok {
			// Unknown modifiers are skipped so templates stay portable
			// across content types.
			continue
		}
		if value, err = modifier(value, inv.argument, st.locale); err != nil {
			return fmt.Errorf("modifier %q: %w", inv.name, err)
		}
	}

	if escape, ok := st.escaper(); ok {
		if value, err = escape(value, "", st.locale); err != nil {
			return err
		}
	}

	_, err = w.WriteString(stringify(value))
	return err
}

// variableValue resolves a variable path, honoring the reserved prefixes:
// "$" reads the engine's named context values and "@" reads the localized
// resource table. Everything else walks the scope chain.
func (st *renderState) variableValue(variablePath string) (any, error) {
	switch {
	case strings.HasPrefix(variablePath, contextPrefix):
		return st.engine.context[variablePath[len(contextPrefix):]], nil

	case strings.HasPrefix(variablePath, resourcePrefix):
		if st.engine.resources == nil {
			return nil, nil
		}
		value, ok := st.engine.resources.Lookup(st.locale, variablePath[len(resourcePrefix):])
		if !ok {
			return nil, nil
		}
		return value, nil

	default:
		return st.scopes.resolve(variablePath)
	}
}

func (st *renderState) escaper() (Modifier, bool) {
	if st.engine.contentType == ContentTypeUnspecified {
		return nil, false
	}
	return st.engine.modifiers.lookup(string(st.engine.contentType))
}

func isScalar(value any) bool {
	switch value.(type) {
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64,
		time.Time:
		return true
	default:
		return false
	}
}

func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case time.Time:
		return v.Format(time.RFC3339)
	default:
		return fmt.Sprint(v)
	}
}
