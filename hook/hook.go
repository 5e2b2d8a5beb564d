// Package hook implements the extension mechanism for the plume key-value
// store. External plugins bind to one of six points in the store's operation
// lifecycle and are invoked synchronously with the operation's key and value
// buffers, which they may mutate in place.
//
// Plugins are compiled as shared libraries and loaded by name via a Loader,
// or constructed in-process and registered directly:
//
//	r := &hook.Registry{}
//	r.Register(&hook.Plugin{
//		Name: "audit",
//		Hook: hook.BeforeSave,
//		Handler: hook.HandlerFunc(func(key, value []byte) {
//			log.Printf("saving %s", key)
//		}),
//	})
//
//	r.Dispatch(hook.BeforeSave, key, value)
package hook

import "fmt"

// Type identifies a single point in the store's operation lifecycle.
type Type int

// The six lifecycle points, forming before/after pairs over the store's
// get, save, and delete operations. Each value denotes exactly one point,
// never a combination.
const (
	BeforeGet Type = iota
	AfterGet
	BeforeSave
	AfterSave
	BeforeDelete
	AfterDelete

	numTypes
)

var typeNames = map[Type]string{
	BeforeGet:    "before_get",
	AfterGet:     "after_get",
	BeforeSave:   "before_save",
	AfterSave:    "after_save",
	BeforeDelete: "before_delete",
	AfterDelete:  "after_delete",
}

func (t Type) String() string {
	if n, ok := typeNames[t]; ok {
		return n
	}
	return fmt.Sprintf("hook.Type(%d)", int(t))
}

// Valid reports whether t is one of the six defined lifecycle points.
func (t Type) Valid() bool {
	return t >= BeforeGet && t < numTypes
}

// ParseType returns the Type named by s, e.g. "before_save".
func ParseType(s string) (Type, error) {
	for t, n := range typeNames {
		if n == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown hook type %q", s)
}

// Handler is the capability a plugin exposes to the store. Invoke may mutate
// either buffer in place; that is its sole means of affecting the operation.
// There is no return channel, so a handler cannot abort or veto the operation
// it observes. Handlers run inline with the store operation and must be fast.
type Handler interface {
	Invoke(key, value []byte)
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(key, value []byte)

// Invoke calls f.
func (f HandlerFunc) Invoke(key, value []byte) {
	f(key, value)
}

// Plugin describes one loaded extension unit. Fields are fixed at
// construction and must not change afterwards.
type Plugin struct {
	// Name identifies the plugin in logs and diagnostics. Uniqueness is not
	// enforced; two plugins may share a name, and the registry tells them
	// apart by registration ID.
	Name string

	// Hook is the single lifecycle point this plugin answers to. A plugin
	// that wants to react at several points must provide one descriptor per
	// point.
	Hook Type

	// Handler is invoked at dispatch time with the operation's buffers.
	Handler Handler
}
