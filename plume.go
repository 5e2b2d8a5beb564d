// Package plume is a key-value store that can be extended by plugins. A
// plugin binds to one of six points in the operation lifecycle (before and
// after get, save, and delete) and is invoked synchronously with the
// operation's key and value buffers, which it may mutate in place.
//
// Plugins are shared libraries loaded by logical name, or descriptors
// compiled into the host and passed via WithPlugin:
//
//	kv, err := plume.New(
//		plume.WithPlugin(&hook.Plugin{
//			Name:    "audit",
//			Hook:    hook.BeforeSave,
//			Handler: auditHandler,
//		}),
//	)
package plume

import (
	"fmt"
	"io"

	"github.com/plumekv/plume/hook"
	"github.com/plumekv/plume/logging"
	"github.com/plumekv/plume/storage"
	"github.com/plumekv/plume/storage/memorystore"
	"github.com/plumekv/plume/storage/postgresstore"
	"github.com/plumekv/plume/storage/sqlitestore"
)

// PluginLoader resolves a logical plugin name to a descriptor. Implemented
// by *hook.Loader.
type PluginLoader interface {
	Load(name string) (*hook.LoadedPlugin, error)
}

// Option customizes the construction of a KV host.
type Option func(*builder)

// WithStore overrides the configured storage engine.
func WithStore(s storage.Store) Option {
	return func(b *builder) {
		b.store = s
	}
}

// WithPlugin registers a compiled-in plugin descriptor. Descriptors given
// this way are registered first, in option order, followed by plugins loaded
// from configuration.
func WithPlugin(p *hook.Plugin) Option {
	return func(b *builder) {
		b.compiled = append(b.compiled, p)
	}
}

// WithPluginNames overrides the configured list of plugins to load.
func WithPluginNames(names ...string) Option {
	return func(b *builder) {
		b.pluginNames = names
	}
}

// WithLogger overrides the default logger.
func WithLogger(l logging.Logger) Option {
	return func(b *builder) {
		b.logger = l
	}
}

// WithPluginLoader overrides the loader used to resolve plugin names.
func WithPluginLoader(l PluginLoader) Option {
	return func(b *builder) {
		b.loader = l
	}
}

type builder struct {
	store       storage.Store
	compiled    []*hook.Plugin
	pluginNames []string
	onLoadError string
	loader      PluginLoader
	logger      logging.Logger
}

// New builds a KV host from configuration and options: it constructs the
// configured storage engine, loads each configured plugin name, registers
// every descriptor, and wraps the engine so all operations dispatch their
// lifecycle hooks.
//
// Plugin loading happens once, here; the host must not serve operations
// before New returns. When a plugin fails to load, plugins.onLoadError
// decides disposition: "fail" (the default) aborts construction, "skip"
// logs and disables that plugin.
func New(opts ...Option) (*KV, error) {
	b := &builder{
		pluginNames: Config.Strings("plugins.load"),
		onLoadError: Config.String("plugins.onLoadError"),
	}
	for _, opt := range opts {
		opt(b)
	}

	if b.logger == nil {
		if Config.Bool("logging.dev") {
			b.logger = logging.NewDevLogger()
		} else {
			b.logger = logging.NewProdLogger()
		}
	}

	if b.store == nil {
		s, err := newConfiguredStore()
		if err != nil {
			return nil, err
		}
		b.store = s
	}

	if b.loader == nil {
		b.loader = hook.NewLoader(hook.WithLogger(b.logger.Named("loader")))
	}

	registry := &hook.Registry{}
	for _, p := range b.compiled {
		if err := registry.Register(p); err != nil {
			return nil, fmt.Errorf("plume: registering plugin %q: %w", p.Name, err)
		}
	}

	var loaded []*hook.LoadedPlugin
	for _, name := range b.pluginNames {
		lp, err := b.loader.Load(name)
		if err != nil {
			if b.onLoadError == "skip" {
				b.logger.Warnw("skipping plugin", "name", name, "error", err)
				continue
			}
			return nil, fmt.Errorf("plume: loading plugin %q: %w", name, err)
		}
		if err := registry.Register(lp.Plugin); err != nil {
			return nil, fmt.Errorf("plume: registering plugin %q: %w", name, err)
		}
		loaded = append(loaded, lp)
	}

	return &KV{
		store:  storage.WithHooks(b.store, registry),
		raw:    b.store,
		loaded: loaded,
		logger: b.logger,
	}, nil
}

func newConfiguredStore() (storage.Store, error) {
	engine := Config.String("storage.engine")
	dsn := Config.String("storage.dsn")
	table := Config.String("storage.tableName")

	switch engine {
	case "memory", "":
		return memorystore.New(), nil
	case "sqlite":
		return sqlitestore.New(dsn, sqlitestore.WithTableName(table)), nil
	case "postgres":
		return postgresstore.SafeNew(dsn, postgresstore.WithTableName(table))
	}
	return nil, fmt.Errorf("plume: unknown storage engine %q", engine)
}

// KV is a hook-extensible key-value store. Construct it with New, register
// everything up front, then serve operations; the hook registry is not
// synchronized against late registration.
type KV struct {
	store  *storage.Hooked
	raw    storage.Store
	logger logging.Logger

	// Loaded plugins are retained so the library handles that own the
	// descriptors stay reachable for the life of the host.
	loaded []*hook.LoadedPlugin
}

// Get returns the value stored under key, after dispatching the get
// lifecycle hooks.
func (kv *KV) Get(key []byte) ([]byte, error) {
	return kv.store.Get(key)
}

// Save stores value under key, framed by the save lifecycle hooks.
func (kv *KV) Save(key, value []byte) error {
	return kv.store.Save(key, value)
}

// Delete removes the value stored under key, framed by the delete lifecycle
// hooks.
func (kv *KV) Delete(key []byte) error {
	return kv.store.Delete(key)
}

// Hooks returns the registry operations dispatch through. Register here only
// before the host starts serving operations.
func (kv *KV) Hooks() *hook.Registry {
	return kv.store.Hooks()
}

// Close releases the underlying storage engine, if it holds resources.
// Plugin libraries are never unloaded.
func (kv *KV) Close() error {
	if c, ok := kv.raw.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
