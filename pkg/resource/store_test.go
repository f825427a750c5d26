package resource

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/language"
)

func writeBundle(tb testing.TB, dir, name, content string) {
	tb.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		tb.Fatalf("failed to write %s: %v", name, err)
	}
}

func setupStore(tb testing.TB) (*Store, string) {
	tb.Helper()

	dir := tb.TempDir()
	writeBundle(tb, dir, "en.yaml", "greeting: Hello\ncheckout:\n  title: Checkout\n  items: Items\ncount: 3\n")
	writeBundle(tb, dir, "de.yaml", "greeting: Hallo\ncheckout:\n  title: Kasse\n")

	store, err := NewStore(nil, dir)
	if err != nil {
		tb.Fatalf("NewStore failed: %v", err)
	}
	return store, dir
}

func TestStoreLookup(t *testing.T) {
	store, _ := setupStore(t)

	t.Run("ExactLocale", func(t *testing.T) {
		if v, ok := store.Lookup(language.German, "greeting"); !ok || v != "Hallo" {
			t.Errorf("got %q, %v", v, ok)
		}
	})

	t.Run("LanguageFallback", func(t *testing.T) {
		// en-AU is not loaded; it matches the en bundle.
		if v, ok := store.Lookup(language.MustParse("en-AU"), "greeting"); !ok || v != "Hello" {
			t.Errorf("got %q, %v", v, ok)
		}
	})

	t.Run("NestedKeysFlatten", func(t *testing.T) {
		if v, ok := store.Lookup(language.English, "checkout.title"); !ok || v != "Checkout" {
			t.Errorf("got %q, %v", v, ok)
		}
	})

	t.Run("NonStringScalarsStringify", func(t *testing.T) {
		if v, ok := store.Lookup(language.English, "count"); !ok || v != "3" {
			t.Errorf("got %q, %v", v, ok)
		}
	})

	t.Run("MissingKey", func(t *testing.T) {
		if _, ok := store.Lookup(language.English, "nope"); ok {
			t.Error("expected a miss")
		}
	})
}

func TestStoreReload(t *testing.T) {
	store, dir := setupStore(t)

	writeBundle(t, dir, "fr.yaml", "greeting: Bonjour\n")
	if err := store.Reload(); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}

	if v, ok := store.Lookup(language.French, "greeting"); !ok || v != "Bonjour" {
		t.Errorf("got %q, %v", v, ok)
	}
	if len(store.Locales()) != 3 {
		t.Errorf("got %d locales, want 3", len(store.Locales()))
	}
}

func TestStoreSkipsUnparseableLocales(t *testing.T) {
	dir := t.TempDir()
	writeBundle(t, dir, "en.yaml", "greeting: Hello\n")
	writeBundle(t, dir, "not a locale!.yaml", "greeting: nope\n")

	store, err := NewStore(nil, dir)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	if len(store.Locales()) != 1 {
		t.Errorf("got %d locales, want 1", len(store.Locales()))
	}
}

func TestStoreEmptyDirectory(t *testing.T) {
	store, err := NewStore(nil, t.TempDir())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	if _, ok := store.Lookup(language.English, "anything"); ok {
		t.Error("expected a miss from an empty store")
	}
}
