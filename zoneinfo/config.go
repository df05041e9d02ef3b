package zoneinfo

import (
	"fmt"

	"github.com/pelletier/go-toml"
	"github.com/spf13/afero"
)

// DefaultDir is the zone database directory used when none is configured.
const DefaultDir = "/usr/share/zoneinfo"

// Config is the configuration of a Loader and of the tzinfo command.
// It is passed by value and never changed after construction.
type Config struct {
	// Dir is the zone database directory.
	Dir string
	// LogLevel is an apex/log level name such as "info" or "debug".
	LogLevel string
}

// DefaultConfig returns the configuration used without a config file.
func DefaultConfig() Config {
	return Config{
		Dir:      DefaultDir,
		LogLevel: "info",
	}
}

// LoadConfig reads a TOML configuration file from fs. Missing keys keep
// their DefaultConfig values.
//
//	[zoneinfo]
//	dir = "/usr/share/zoneinfo"
//
//	[log]
//	level = "debug"
func LoadConfig(fs afero.Fs, path string) (Config, error) {
	b, err := afero.ReadFile(fs, path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	tree, err := toml.LoadBytes(b)
	if err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if cfg.Dir, err = getString(tree, "zoneinfo.dir", cfg.Dir); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.LogLevel, err = getString(tree, "log.level", cfg.LogLevel); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// getString returns the string at key or def if the key does not exist.
func getString(tree *toml.Tree, key, def string) (string, error) {
	raw := tree.Get(key)
	if raw == nil {
		return def, nil
	}
	val, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%s: expected string, got %T", key, raw)
	}
	return val, nil
}
