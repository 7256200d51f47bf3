package fiscal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Registry holds validated tables keyed by fiscal year. It is built once at
// startup and read-only afterwards.
type Registry struct {
	tables map[int]Table
}

func NewRegistry() *Registry {
	return &Registry{tables: make(map[int]Table)}
}

// Register validates and adds a table, replacing any existing table for the
// same year.
func (r *Registry) Register(t Table) error {
	if err := t.Validate(); err != nil {
		return err
	}
	r.tables[t.Year] = t
	return nil
}

func (r *Registry) Table(year int) (Table, bool) {
	t, ok := r.tables[year]
	return t, ok
}

func (r *Registry) Years() []int {
	years := make([]int, 0, len(r.tables))
	for year := range r.tables {
		years = append(years, year)
	}
	sort.Ints(years)
	return years
}

// LoadFile reads a single JSON table file and registers it.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var t Table
	if err := json.Unmarshal(data, &t); err != nil {
		return fmt.Errorf("fiscal table %s: %w", path, err)
	}
	if err := r.Register(t); err != nil {
		return fmt.Errorf("fiscal table %s: %w", path, err)
	}
	return nil
}

// LoadDir registers every *.json file in dir. A missing dir is not an error
// so deployments without overrides run on the built-in defaults.
func (r *Registry) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		if err := r.LoadFile(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// DefaultRegistry returns a registry preloaded with the built-in tables.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	if err := r.Register(Default2024()); err != nil {
		panic(err) // built-in table must validate
	}
	return r
}
