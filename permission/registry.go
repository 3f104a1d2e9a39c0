package permission

import (
	"errors"
	"sync"
)

var (
	// ErrDuplicateRegistration is returned when an action is registered twice.
	ErrDuplicateRegistration = errors.New("action requirement already registered")
	// ErrRegistryFrozen is returned by Register after Freeze.
	ErrRegistryFrozen = errors.New("registry frozen")
	// ErrEmptyAction is returned when an action name is empty.
	ErrEmptyAction = errors.New("action name cannot be empty")
)

// Registry maps action names to their ordered required permission tags.
//
// A missing entry means "unconfigured" and is distinct from an explicitly
// registered empty requirement: Lookup reports the difference through its
// second return value, never by inspecting the slice length.
//
// Registration happens at configuration time; Freeze ends it. A frozen
// registry is safe for unbounded concurrent Lookup calls.
type Registry struct {
	mu      sync.RWMutex
	entries map[string][]Tag
	frozen  bool
}

// NewRegistry creates an empty requirement registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string][]Tag),
	}
}

// Register stores the required tags for an action. The tags slice is copied;
// an empty (or nil) slice registers an explicit empty requirement, which is
// a real entry. Registering the same action twice fails with
// [ErrDuplicateRegistration]. Must be called before [Registry.Freeze].
func (r *Registry) Register(action string, tags []Tag) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return ErrRegistryFrozen
	}

	if action == "" {
		return ErrEmptyAction
	}

	if _, exists := r.entries[action]; exists {
		return ErrDuplicateRegistration
	}

	stored := make([]Tag, len(tags))
	copy(stored, tags)
	r.entries[action] = stored

	return nil
}

// Lookup returns the required tags for an action. The boolean is false only
// when no entry exists for the action. Callers must not mutate the returned
// slice.
func (r *Registry) Lookup(action string) ([]Tag, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tags, ok := r.entries[action]
	return tags, ok
}

// Freeze prevents further registrations. Must be called before the registry
// serves evaluations.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
}

// Count returns the number of registered actions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
