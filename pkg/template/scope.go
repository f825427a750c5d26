package template

import (
	"fmt"
	"strings"
)

const (
	selfReference  = "."
	contextPrefix  = "$"
	resourcePrefix = "@"
)

// scopeChain is the stack of dictionaries forming the data context visible to
// markers, innermost last. It is never empty while a render is in progress;
// entering a section body pushes the element's dictionary and leaving pops it,
// so no scope outlives the render call that created it.
type scopeChain struct {
	scopes []map[string]any
}

// wrapValue returns value as a dictionary, wrapping non-dictionary values as a
// single entry under the self key so that {{.}} can reach them.
func wrapValue(value any) map[string]any {
	if dictionary, ok := value.(map[string]any); ok {
		return dictionary
	}
	return map[string]any{selfReference: value}
}

func (sc *scopeChain) push(scope map[string]any) {
	sc.scopes = append(sc.scopes, scope)
}

func (sc *scopeChain) pop() {
	sc.scopes = sc.scopes[:len(sc.scopes)-1]
}

func (sc *scopeChain) top() map[string]any {
	return sc.scopes[len(sc.scopes)-1]
}

// resolve looks up a dotted path. The first component selects the owning
// scope: if it is absent in the innermost scope, each enclosing scope is
// tried outward (inheritance). Once a scope owns the first component the
// rest of the walk stays inside that scope's subtree; a key that is missing
// or nil mid-path yields no value rather than falling back again.
func (sc *scopeChain) resolve(path string) (any, error) {
	if path == selfReference {
		return sc.top()[selfReference], nil
	}

	components := strings.Split(path, ".")

	for i := len(sc.scopes) - 1; i >= 0; i-- {
		if _, ok := sc.scopes[i][components[0]]; !ok {
			continue
		}
		return valueAt(sc.scopes[i], components)
	}

	return nil, nil
}

// valueAt walks a dotted path inside a single dictionary. A nil value
// mid-path short-circuits to no value; a non-dictionary value mid-path is an
// ErrInvalidPath.
func valueAt(scope map[string]any, components []string) (any, error) {
	var value any = scope

	for i, component := range components {
		dictionary, ok := value.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %q is not a dictionary", ErrInvalidPath, strings.Join(components[:i], "."))
		}

		if value = dictionary[component]; value == nil {
			return nil, nil
		}
	}

	return value, nil
}
