package hook

import "errors"

// Loader and registry errors.
var (
	// ErrUnsupportedPlatform is returned when the current platform has no
	// shared-library naming convention we recognise. The loader fails before
	// touching the filesystem.
	ErrUnsupportedPlatform = errors.New("platform does not support plugin loading")

	// ErrLoadFailed is returned when a plugin artifact exists but could not
	// be opened (missing file, malformed library, architecture mismatch).
	// The underlying loader error is wrapped for diagnostics.
	ErrLoadFailed = errors.New("plugin library could not be opened")

	// ErrSymbolNotFound is returned when an opened library does not export
	// the factory entry point, or exports it with the wrong type. Such an
	// artifact is not a valid plugin.
	ErrSymbolNotFound = errors.New("plugin factory symbol not found")

	// ErrNilPlugin is returned when a plugin factory returns nil, or when a
	// nil descriptor is registered.
	ErrNilPlugin = errors.New("nil plugin descriptor")

	// ErrNilHandler is returned when a descriptor with no handler is
	// registered.
	ErrNilHandler = errors.New("plugin has no handler")

	// ErrInvalidHook is returned when a descriptor's hook is not one of the
	// six defined lifecycle points.
	ErrInvalidHook = errors.New("invalid hook type")
)
