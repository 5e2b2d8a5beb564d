package hook

import (
	"fmt"

	"github.com/google/uuid"
)

// Registry routes store-lifecycle events to the plugins registered for them.
// Each lifecycle point holds an ordered bucket of plugins; insertion order is
// dispatch order, and a plugin lives in exactly one bucket.
//
// The registry does no internal locking. Registration is expected to complete
// during host configuration, before the store starts serving operations;
// registering concurrently with dispatch requires external synchronization.
type Registry struct {
	buckets [numTypes][]registration
}

// A registration pairs a descriptor with a unique ID. Plugin names are not
// required to be unique, so diagnostics key off the ID.
type registration struct {
	id     uuid.UUID
	plugin *Plugin
}

// Register appends the plugin to the bucket for its hook. Duplicate names are
// permitted; there is no de-duplication and no removal operation. Registered
// plugins live for the remainder of the process.
func (r *Registry) Register(p *Plugin) error {
	if p == nil {
		return ErrNilPlugin
	}
	if !p.Hook.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidHook, int(p.Hook))
	}
	if p.Handler == nil {
		return fmt.Errorf("%w: %q", ErrNilHandler, p.Name)
	}
	r.buckets[p.Hook] = append(r.buckets[p.Hook], registration{
		id:     uuid.New(),
		plugin: p,
	})
	return nil
}

// Dispatch invokes the handler of every plugin registered under t, in
// registration order, passing the operation's key and value buffers to each
// in turn. Handlers run synchronously on the calling goroutine; each one
// observes any in-place mutations made by the handlers before it. Dispatch
// returns once the last handler has run. With an empty bucket it is a no-op.
func (r *Registry) Dispatch(t Type, key, value []byte) {
	if !t.Valid() {
		return
	}
	for _, reg := range r.buckets[t] {
		reg.plugin.Handler.Invoke(key, value)
	}
}

// Registered returns the plugins bound to t, in dispatch order.
func (r *Registry) Registered(t Type) []*Plugin {
	if !t.Valid() {
		return nil
	}
	plugins := make([]*Plugin, len(r.buckets[t]))
	for i, reg := range r.buckets[t] {
		plugins[i] = reg.plugin
	}
	return plugins
}

// IDs returns the registration IDs for t, in dispatch order. Plugin names
// need not be unique, so log lines and diagnostics reference these IDs.
func (r *Registry) IDs(t Type) []uuid.UUID {
	if !t.Valid() {
		return nil
	}
	ids := make([]uuid.UUID, len(r.buckets[t]))
	for i, reg := range r.buckets[t] {
		ids[i] = reg.id
	}
	return ids
}

// Len returns the total number of registered plugins across all hooks.
func (r *Registry) Len() int {
	n := 0
	for _, b := range r.buckets {
		n += len(b)
	}
	return n
}
