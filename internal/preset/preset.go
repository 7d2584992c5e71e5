// Package preset loads named dice expressions from YAML so frequently used
// rolls can be referenced as "@id".
package preset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/dnd/internal/dice"
)

// Prefix marks an input as a preset reference rather than an expression.
const Prefix = "@"

// Preset is a named dice expression loaded from YAML.
type Preset struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Expression  string `yaml:"expression"`
	Description string `yaml:"description"`

	parsed *dice.Expression
}

// Validate checks that the Preset satisfies its invariants and caches the
// parsed expression.
// Precondition: p is non-nil.
// Postcondition: returns nil iff all fields are valid and Expression parses.
func (p *Preset) Validate() error {
	var errs []error
	if p.ID == "" {
		errs = append(errs, errors.New("ID must not be empty"))
	}
	if strings.ContainsAny(p.ID, " \t"+Prefix) {
		errs = append(errs, fmt.Errorf("ID %q must not contain whitespace or %q", p.ID, Prefix))
	}
	if p.Name == "" {
		errs = append(errs, errors.New("Name must not be empty"))
	}
	if p.Expression == "" {
		errs = append(errs, errors.New("Expression must not be empty"))
	} else {
		e, err := dice.Parse(p.Expression)
		if err != nil {
			errs = append(errs, fmt.Errorf("Expression %q: %w", p.Expression, err))
		}
		p.parsed = e
	}
	if len(errs) > 0 {
		return fmt.Errorf("preset validation failed: %w", errors.Join(errs...))
	}
	return nil
}

// Parsed returns the expression parsed during Validate.
//
// Precondition: Validate returned nil.
func (p *Preset) Parsed() *dice.Expression {
	return p.parsed
}

// LoadPresets reads all *.yaml files from dir, parses each as a Preset,
// validates it, and returns the collected slice in file name order.
// Precondition: dir is a readable directory path.
// Postcondition: returns all valid Presets or the first encountered error.
func LoadPresets(dir string) ([]*Preset, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("LoadPresets: cannot read directory %q: %w", dir, err)
	}

	var presets []*Preset
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("LoadPresets: cannot read file %q: %w", path, err)
		}
		var p Preset
		if err := yaml.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("LoadPresets: cannot parse file %q: %w", path, err)
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("LoadPresets: invalid preset in %q: %w", path, err)
		}
		presets = append(presets, &p)
	}
	return presets, nil
}

// Registry indexes presets by ID.
type Registry struct {
	byID map[string]*Preset
}

// NewRegistry builds a Registry.
//
// Precondition: every preset has passed Validate.
// Postcondition: returns an error if two presets share an ID.
func NewRegistry(presets []*Preset) (*Registry, error) {
	r := &Registry{byID: make(map[string]*Preset, len(presets))}
	for _, p := range presets {
		if _, dup := r.byID[p.ID]; dup {
			return nil, fmt.Errorf("preset: duplicate id %q", p.ID)
		}
		r.byID[p.ID] = p
	}
	return r, nil
}

// Lookup returns the preset with the given ID. A nil Registry holds nothing.
func (r *Registry) Lookup(id string) (*Preset, bool) {
	if r == nil {
		return nil, false
	}
	p, ok := r.byID[id]
	return p, ok
}

// IDs returns every registered ID in sorted order.
func (r *Registry) IDs() []string {
	if r == nil {
		return nil
	}
	ids := make([]string, 0, len(r.byID))
	for id := range r.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Resolve maps an input to the expression to evaluate. Inputs starting with
// Prefix name a preset; anything else is returned unchanged with a nil Preset.
func (r *Registry) Resolve(input string) (*Preset, error) {
	id, ok := strings.CutPrefix(input, Prefix)
	if !ok {
		return nil, nil
	}
	p, found := r.Lookup(id)
	if !found {
		return nil, fmt.Errorf("unknown preset %q", id)
	}
	return p, nil
}
