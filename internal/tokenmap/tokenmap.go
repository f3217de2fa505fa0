// Package tokenmap defines the per-translation field name -> value map
// threaded through the tokenizer, rule evaluator, and emitter.
package tokenmap

import "fmt"

// DuplicateFieldError reports an attempt to bind a field name that is
// already present in the map — either the tokenizer emitted the same
// field twice, or a rule tried to redefine one.
type DuplicateFieldError struct {
	Name string
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("duplicate field: %q", e.Name)
}

// Map is the field-name -> string-value token map for one translation.
type Map map[string]string

// New returns an empty Map.
func New() Map {
	return make(Map)
}

// Bind inserts name=value, failing if name is already bound.
func (m Map) Bind(name, value string) error {
	if _, exists := m[name]; exists {
		return &DuplicateFieldError{Name: name}
	}
	m[name] = value
	return nil
}

// Set overwrites name=value unconditionally, used by the emitter when
// it rewrites a field's value in place (e.g. text -> binary).
func (m Map) Set(name, value string) {
	m[name] = value
}

// Get returns the bound value for name, or "", false.
func (m Map) Get(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}
