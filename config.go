package plume

import (
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/plumekv/plume/internal/config"
)

// Filename of the standard configuration file.
const ConfigFile = "plume.yaml"

// Config is a global koanf instance used to access application level
// configuration options.
//
// Config is loaded in the following order (later sources override earlier):
// 1. Built-in defaults (in init())
// 2. Auto-discovered plume.yaml (in init())
// 3. Environment variables with PLUME__ prefix (in init())
// 4. Additional sources loaded via LoadConfigFile() or LoadConfigDefaults()
//
// Environment variable transformation:
//   - PLUME__STORAGE__ENGINE → storage.engine
//   - PLUME__PLUGINS__ON_LOAD_ERROR → plugins.onLoadError
var Config = koanf.New(".")

func init() {
	LoadConfigDefaults(map[string]interface{}{
		"plugins.load":        []string{},
		"plugins.onLoadError": "fail",
		"storage.engine":      "memory",
		"storage.dsn":         "",
		"storage.tableName":   "plume_store",
		"logging.dev":         false,
	})

	// Look for a plume.yaml file in the current directory or any parent.
	if cfg := config.SearchForConfig(ConfigFile, "."); cfg != "" {
		if err := Config.Load(file.Provider(cfg), yaml.Parser()); err != nil {
			panic("error loading config: " + err.Error())
		}
	}

	// Load environment variables with the prefix PLUME__.
	if err := Config.Load(env.Provider("PLUME__", ".", config.TransformEnv), nil); err != nil {
		panic("error loading env config: " + err.Error())
	}
}

// LoadConfigFile loads additional configuration from a YAML file into the
// global Config instance. Call this before creating the store to load
// application-specific configuration.
func LoadConfigFile(path string) {
	if err := Config.Load(file.Provider(path), yaml.Parser()); err != nil {
		panic("error loading config file '" + path + "': " + err.Error())
	}
}

// LoadConfigDefaults loads default configuration values into the global
// Config instance.
func LoadConfigDefaults(defaults map[string]interface{}) {
	if err := Config.Load(confmap.Provider(defaults, "."), nil); err != nil {
		panic("error loading config defaults: " + err.Error())
	}
}

// ConfigString returns the string value for the given key.
func ConfigString(key string) string {
	return Config.String(key)
}

// ConfigStrings returns the string slice value for the given key.
func ConfigStrings(key string) []string {
	return Config.Strings(key)
}

// ConfigBool returns the bool value for the given key.
func ConfigBool(key string) bool {
	return Config.Bool(key)
}

// ConfigExists checks if the given key exists in the configuration.
func ConfigExists(key string) bool {
	return Config.Exists(key)
}
