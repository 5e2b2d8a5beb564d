package storage

import "github.com/plumekv/plume/hook"

// Hooked wraps a Store and dispatches the matching lifecycle hooks around
// each operation: Before<Op> with the operation's inputs, then the real
// operation, then After<Op> with the operation's outcome. After-hooks only
// run when the operation succeeds.
//
// Handlers see, and may mutate in place, the same buffers the store
// operates on: a BeforeSave handler that rewrites the value buffer changes
// what gets stored.
type Hooked struct {
	store Store
	hooks *hook.Registry
}

// WithHooks wraps store so that every operation is framed by dispatches on
// r. A nil registry is replaced with an empty one, making the wrapper a
// pass-through.
func WithHooks(store Store, r *hook.Registry) *Hooked {
	if r == nil {
		r = &hook.Registry{}
	}
	return &Hooked{store: store, hooks: r}
}

// Hooks returns the registry this store dispatches to.
func (h *Hooked) Hooks() *hook.Registry {
	return h.hooks
}

// Get dispatches BeforeGet with the key, performs the read, then dispatches
// AfterGet with the key and the retrieved value. Handlers on AfterGet can
// mutate the value in place before it reaches the caller.
func (h *Hooked) Get(key []byte) ([]byte, error) {
	h.hooks.Dispatch(hook.BeforeGet, key, nil)
	value, err := h.store.Get(key)
	if err != nil {
		return nil, err
	}
	h.hooks.Dispatch(hook.AfterGet, key, value)
	return value, nil
}

// Save dispatches BeforeSave with the key and value, performs the write,
// then dispatches AfterSave with the value as stored.
func (h *Hooked) Save(key, value []byte) error {
	h.hooks.Dispatch(hook.BeforeSave, key, value)
	if err := h.store.Save(key, value); err != nil {
		return err
	}
	h.hooks.Dispatch(hook.AfterSave, key, value)
	return nil
}

// Delete dispatches BeforeDelete with the key, performs the delete, then
// dispatches AfterDelete. There is no value at either point.
func (h *Hooked) Delete(key []byte) error {
	h.hooks.Dispatch(hook.BeforeDelete, key, nil)
	if err := h.store.Delete(key); err != nil {
		return err
	}
	h.hooks.Dispatch(hook.AfterDelete, key, nil)
	return nil
}
