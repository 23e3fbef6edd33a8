package bridge

import "sync"

// Resolver yields the native view handle a call should be addressed to.
// ok is false when the view is not (or no longer) mounted.
type Resolver interface {
	Resolve() (tag Tag, ok bool)
}

// Static is a Resolver for a handle that stays valid for the caller's lifetime.
type Static Tag

// Resolve always succeeds.
func (s Static) Resolve() (Tag, bool) {
	return Tag(s), true
}

// Mount tracks a handle that the host attaches when the native view is
// created and detaches when it is torn down.
// The zero value is an unmounted resolver.
type Mount struct {
	mu      sync.RWMutex
	tag     Tag
	mounted bool
}

// Attach records the handle of a newly created native view.
func (m *Mount) Attach(tag Tag) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tag = tag
	m.mounted = true
}

// Detach marks the view as gone. Subsequent calls fail with ErrNoNativeReference.
func (m *Mount) Detach() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mounted = false
}

// Resolve returns the attached handle, if any.
func (m *Mount) Resolve() (Tag, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tag, m.mounted
}
