package resource

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Store holds per-locale string tables loaded from a directory of YAML
// files. All methods are concurrent-safe; Reload swaps the loaded tables
// atomically under the lock, so lookups during a reload see either the old
// or the new set, never a mix.
type Store struct {
	logger *slog.Logger
	dir    string

	mu      sync.RWMutex
	tags    []language.Tag
	matcher language.Matcher
	tables  map[string]map[string]string
}

// NewStore creates a store backed by dir and performs an initial load.
// A nil logger discards all log output.
func NewStore(logger *slog.Logger, dir string) (*Store, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	s := &Store{logger: logger, dir: dir}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads every locale file from the store's directory. This allows
// translations to be updated without restarting the application.
func (s *Store) Reload() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("failed to read resource directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch filepath.Ext(entry.Name()) {
		case ".yaml", ".yml":
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	var tags []language.Tag
	tables := make(map[string]map[string]string, len(names))

	for _, name := range names {
		stem := strings.TrimSuffix(name, filepath.Ext(name))

		tag, err := language.Parse(stem)
		if err != nil {
			s.logger.Warn("Skipping resource file with unparseable locale", "file", name, "error", err)
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.dir, name))
		if err != nil {
			return fmt.Errorf("failed to read resource file %s: %w", name, err)
		}

		var root map[string]any
		if err = yaml.Unmarshal(data, &root); err != nil {
			return fmt.Errorf("failed to parse resource file %s: %w", name, err)
		}

		table := make(map[string]string)
		flatten("", root, table)

		tags = append(tags, tag)
		tables[tag.String()] = table
	}

	s.mu.Lock()
	s.tags = tags
	s.matcher = language.NewMatcher(tags)
	s.tables = tables
	s.mu.Unlock()

	s.logger.Info("Loaded resource bundles", "dir", s.dir, "locales", len(tables))
	return nil
}

// Lookup returns the string for key in the table best matching locale. The
// second result is false when no locale is loaded or the matched table has
// no such key.
func (s *Store) Lookup(locale language.Tag, key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.tags) == 0 {
		return "", false
	}

	_, i, _ := s.matcher.Match(locale)
	value, ok := s.tables[s.tags[i].String()][key]
	return value, ok
}

// Locales returns the locales currently loaded, in file-name order.
func (s *Store) Locales() []language.Tag {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tags := make([]language.Tag, len(s.tags))
	copy(tags, s.tags)
	return tags
}

// flatten collapses nested mappings into dot-separated keys. Scalar leaves
// are stringified; sequence values are not supported and are skipped.
func flatten(prefix string, node map[string]any, table map[string]string) {
	for key, value := range node {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}

		switch v := value.(type) {
		case map[string]any:
			flatten(full, v, table)
		case nil, []any:
			// Skipped: nothing sensible to render.
		case string:
			table[full] = v
		default:
			table[full] = fmt.Sprint(v)
		}
	}
}
