package template

import (
	"errors"
	"testing"
)

func TestScopeChainResolve(t *testing.T) {
	sc := &scopeChain{}
	sc.push(map[string]any{
		"a":    "outer-a",
		"b":    "outer-b",
		"deep": map[string]any{"x": map[string]any{"y": "z"}},
	})
	sc.push(map[string]any{
		"b":    "inner-b",
		"null": nil,
	})

	t.Run("InnermostWins", func(t *testing.T) {
		if v, _ := sc.resolve("b"); v != "inner-b" {
			t.Errorf("resolve(b) = %v, want inner-b", v)
		}
	})

	t.Run("FallsBackOutward", func(t *testing.T) {
		if v, _ := sc.resolve("a"); v != "outer-a" {
			t.Errorf("resolve(a) = %v, want outer-a", v)
		}
		if v, _ := sc.resolve("deep.x.y"); v != "z" {
			t.Errorf("resolve(deep.x.y) = %v, want z", v)
		}
	})

	t.Run("PresentNilStopsFallback", func(t *testing.T) {
		// The innermost scope owns the key, so the nil does not fall through
		// to an enclosing scope.
		sc.push(map[string]any{"a": nil})
		defer sc.pop()

		if v, err := sc.resolve("a"); v != nil || err != nil {
			t.Errorf("resolve(a) = %v, %v, want nil, nil", v, err)
		}
	})

	t.Run("AbsentEverywhere", func(t *testing.T) {
		if v, err := sc.resolve("missing"); v != nil || err != nil {
			t.Errorf("resolve(missing) = %v, %v, want nil, nil", v, err)
		}
	})

	t.Run("NilMidPathIsEmpty", func(t *testing.T) {
		if v, err := sc.resolve("null.anything"); v != nil || err != nil {
			t.Errorf("resolve(null.anything) = %v, %v, want nil, nil", v, err)
		}
	})

	t.Run("MissingKeyMidPathIsEmpty", func(t *testing.T) {
		if v, err := sc.resolve("deep.missing.y"); v != nil || err != nil {
			t.Errorf("resolve(deep.missing.y) = %v, %v, want nil, nil", v, err)
		}
	})

	t.Run("ScalarMidPathErrors", func(t *testing.T) {
		if _, err := sc.resolve("a.b"); !errors.Is(err, ErrInvalidPath) {
			t.Errorf("resolve(a.b) = %v, want ErrInvalidPath", err)
		}
	})

	t.Run("NoFallbackMidPath", func(t *testing.T) {
		// deep exists in the outer scope; once owned, a miss below it must
		// not retry other scopes.
		sc.push(map[string]any{"deep": map[string]any{}})
		defer sc.pop()

		if v, err := sc.resolve("deep.x.y"); v != nil || err != nil {
			t.Errorf("resolve(deep.x.y) = %v, %v, want nil, nil", v, err)
		}
	})
}

func TestScopeChainSelf(t *testing.T) {
	sc := &scopeChain{}
	sc.push(wrapValue("scalar"))

	if v, _ := sc.resolve("."); v != "scalar" {
		t.Errorf("resolve(.) = %v, want scalar", v)
	}

	// A dictionary scope has no self entry unless the caller put one there.
	sc.push(map[string]any{"k": "v"})
	if v, _ := sc.resolve("."); v != nil {
		t.Errorf("resolve(.) on dictionary scope = %v, want nil", v)
	}
}

func TestWrapValue(t *testing.T) {
	dict := map[string]any{"k": "v"}
	if got := wrapValue(dict); len(got) != 1 || got["k"] != "v" {
		t.Errorf("wrapValue(dict) = %v, want the dictionary itself", got)
	}

	wrapped := wrapValue(42)
	if wrapped[selfReference] != 42 {
		t.Errorf("wrapValue(42) = %v, want self entry", wrapped)
	}
}
