package profile

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrDuplicateName is returned when a name is already taken within a category.
var ErrDuplicateName = errors.New("profile name already exists")

// Named is implemented by every profile kept in a Registry.
type Named interface {
	ProfileName() string
}

// Registry is a name-keyed set of profiles of one category.
// Entries are never replaced once added.
type Registry[T Named] struct {
	items map[string]T
}

// NewRegistry returns an empty registry.
func NewRegistry[T Named]() *Registry[T] {
	return &Registry[T]{items: make(map[string]T)}
}

// Add inserts p under its name.
func (r *Registry[T]) Add(p T) error {
	name := p.ProfileName()
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}
	if _, ok := r.items[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	r.items[name] = p
	return nil
}

// Get returns the profile stored under name.
func (r *Registry[T]) Get(name string) (T, bool) {
	p, ok := r.items[name]
	return p, ok
}

// Has reports whether name is taken.
func (r *Registry[T]) Has(name string) bool {
	_, ok := r.items[name]
	return ok
}

// Len returns the number of profiles.
func (r *Registry[T]) Len() int { return len(r.items) }

// Names returns all names in lexical order.
func (r *Registry[T]) Names() []string {
	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns the profiles ordered by name.
func (r *Registry[T]) All() []T {
	out := make([]T, 0, len(r.items))
	for _, name := range r.Names() {
		out = append(out, r.items[name])
	}
	return out
}
