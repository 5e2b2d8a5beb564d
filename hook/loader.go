package hook

import (
	"fmt"
	"plugin"
	"runtime"

	"github.com/plumekv/plume/logging"
)

// FactorySymbol is the exported symbol every plugin artifact must provide: a
// zero-argument function returning the plugin's descriptor.
//
//	package main
//
//	import "github.com/plumekv/plume/hook"
//
//	func PlumePlugin() *hook.Plugin {
//		return &hook.Plugin{Name: "audit", Hook: hook.BeforeSave, Handler: ...}
//	}
const FactorySymbol = "PlumePlugin"

// Factory is the required signature of the factory entry point.
type Factory = func() *Plugin

// library is the subset of *plugin.Plugin the loader depends on.
type library interface {
	Lookup(symName string) (plugin.Symbol, error)
}

type openFunc func(path string) (library, error)

func openLibrary(path string) (library, error) {
	return plugin.Open(path)
}

// LoadedPlugin couples a descriptor with the library handle that produced
// it. The descriptor is owned by the library and remains valid only while
// the library stays loaded; holding the handle here ties the two lifetimes
// together. There is no unload path, so in practice both live until the
// process exits.
type LoadedPlugin struct {
	*Plugin

	lib library
}

// Loader resolves logical plugin names to shared-library artifacts and
// obtains descriptors from them.
//
// Loading is a blocking, one-shot operation meant for host configuration
// time; the loader holds no state that requires synchronization, but
// concurrent loads of the same name must be serialized by the caller.
type Loader struct {
	open   openFunc
	goos   string
	logger logging.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLogger attaches a logger for load diagnostics.
func WithLogger(l logging.Logger) LoaderOption {
	return func(ld *Loader) {
		ld.logger = l
	}
}

// NewLoader returns a loader that opens artifacts through the platform's
// dynamic library loader.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{open: openLibrary, goos: runtime.GOOS}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load resolves name to its platform artifact, opens it, and invokes the
// factory entry point to obtain the plugin's descriptor.
//
// The opened library stays loaded for the remainder of the process; Load
// never retries, and every failure is returned as a typed error for the
// caller to decide disposition:
//
//   - ErrUnsupportedPlatform: no artifact convention for this platform.
//     Returned before any filesystem or loader call is made.
//   - ErrLoadFailed: the artifact could not be opened. Wraps the underlying
//     loader error.
//   - ErrSymbolNotFound: the library does not export FactorySymbol with the
//     Factory signature.
//   - ErrNilPlugin: the factory returned no descriptor.
//
// Load performs no validation of the returned descriptor's fields; that
// happens when the descriptor is registered.
func (l *Loader) Load(name string) (*LoadedPlugin, error) {
	artifact, err := artifactName(l.goos, name)
	if err != nil {
		return nil, err
	}

	lib, err := l.open(artifact)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %w", ErrLoadFailed, artifact, err)
	}

	sym, err := lib.Lookup(FactorySymbol)
	if err != nil {
		return nil, fmt.Errorf("%w: %s has no %s: %w", ErrSymbolNotFound, artifact, FactorySymbol, err)
	}
	factory, ok := sym.(Factory)
	if !ok {
		return nil, fmt.Errorf("%w: %s in %s is a %T, want %T", ErrSymbolNotFound, FactorySymbol, artifact, sym, Factory(nil))
	}

	p := factory()
	if p == nil {
		return nil, fmt.Errorf("%w: factory in %s returned nil", ErrNilPlugin, artifact)
	}

	if l.logger != nil {
		l.logger.Infow("loaded plugin", "name", p.Name, "artifact", artifact, "hook", p.Hook.String())
	}
	return &LoadedPlugin{Plugin: p, lib: lib}, nil
}

// ArtifactName returns the platform-specific shared-library filename for the
// logical plugin name: lib<name>.so on linux and freebsd, lib<name>.dylib on
// darwin. On any other platform it returns ErrUnsupportedPlatform.
func ArtifactName(name string) (string, error) {
	return artifactName(runtime.GOOS, name)
}

func artifactName(goos, name string) (string, error) {
	switch goos {
	case "linux", "freebsd":
		return "lib" + name + ".so", nil
	case "darwin":
		return "lib" + name + ".dylib", nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedPlatform, goos)
}
