package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/sgdraw/pkg/pipeline"
)

// defaultConfigHint is the config location shown in help text.
const defaultConfigHint = "~/.config/sgdraw/config.toml"

// Config is the optional TOML configuration file. Every field has a
// command-line flag; flags win over the file, the file wins over the
// built-in defaults.
//
// Example:
//
//	[layout]
//	geometry = "hyperbolic2d"
//	strategy = "sparse"
//	iterations = 200
//
//	[server]
//	addr = ":8080"
//	mongo_uri = "mongodb://localhost:27017"
//
//	[cache]
//	disabled = false
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Server ServerConfig `toml:"server"`
	Cache  CacheConfig  `toml:"cache"`
}

// LayoutConfig holds default pipeline options for the layout commands.
type LayoutConfig struct {
	Geometry   string  `toml:"geometry"`
	Dimension  int     `toml:"dimension"`
	Strategy   string  `toml:"strategy"`
	Pivots     int     `toml:"pivots"`
	Iterations int     `toml:"iterations"`
	Epsilon    float64 `toml:"epsilon"`
	Scheduler  string  `toml:"scheduler"`
	Seed       uint64  `toml:"seed"`
}

// ServerConfig holds defaults for the serve command.
type ServerConfig struct {
	Addr          string `toml:"addr"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
	RedisAddr     string `toml:"redis_addr"`
}

// CacheConfig holds defaults for the local result cache.
type CacheConfig struct {
	Dir      string `toml:"dir"`
	Disabled bool   `toml:"disabled"`
}

// loadConfig reads the config file. A missing file is not an error; the
// zero Config stands in for it.
func (c *CLI) loadConfig() (Config, error) {
	path := c.configPath
	explicit := path != ""
	if !explicit {
		var err error
		if path, err = defaultConfigPath(); err != nil {
			return Config{}, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// defaultConfigPath returns the standard config location,
// ~/.config/sgdraw/config.toml on Linux.
func defaultConfigPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, appName, "config.toml"), nil
}

// applyLayoutConfig fills unset pipeline options from the config file.
// Options already set by flags keep their values.
func applyLayoutConfig(cfg LayoutConfig, opts *pipeline.Options) {
	if opts.Geometry == "" {
		opts.Geometry = cfg.Geometry
	}
	if opts.Dimension == 0 {
		opts.Dimension = cfg.Dimension
	}
	if opts.Strategy == "" {
		opts.Strategy = cfg.Strategy
	}
	if opts.Pivots == 0 {
		opts.Pivots = cfg.Pivots
	}
	if opts.Iterations == 0 {
		opts.Iterations = cfg.Iterations
	}
	if opts.Epsilon == 0 {
		opts.Epsilon = cfg.Epsilon
	}
	if opts.Scheduler == "" {
		opts.Scheduler = cfg.Scheduler
	}
	if opts.Seed == 0 {
		opts.Seed = cfg.Seed
	}
}
