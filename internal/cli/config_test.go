package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/sgdraw/pkg/pipeline"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	c := testCLI()
	c.configPath = writeConfig(t, `
[layout]
geometry = "hyperbolic2d"
iterations = 250
seed = 7

[server]
addr = ":9999"
mongo_uri = "mongodb://localhost:27017"

[cache]
disabled = true
`)

	cfg, err := c.loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}

	if cfg.Layout.Geometry != "hyperbolic2d" {
		t.Errorf("Layout.Geometry = %q, want %q", cfg.Layout.Geometry, "hyperbolic2d")
	}
	if cfg.Layout.Iterations != 250 {
		t.Errorf("Layout.Iterations = %d, want 250", cfg.Layout.Iterations)
	}
	if cfg.Layout.Seed != 7 {
		t.Errorf("Layout.Seed = %d, want 7", cfg.Layout.Seed)
	}
	if cfg.Server.Addr != ":9999" {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, ":9999")
	}
	if cfg.Server.MongoURI != "mongodb://localhost:27017" {
		t.Errorf("Server.MongoURI = %q", cfg.Server.MongoURI)
	}
	if !cfg.Cache.Disabled {
		t.Error("Cache.Disabled = false, want true")
	}
}

func TestLoadConfigMissingDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	c := testCLI()
	cfg, err := c.loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg != (Config{}) {
		t.Errorf("loadConfig() = %+v, want zero config", cfg)
	}
}

func TestLoadConfigMissingExplicit(t *testing.T) {
	c := testCLI()
	c.configPath = filepath.Join(t.TempDir(), "nope.toml")

	if _, err := c.loadConfig(); err == nil {
		t.Error("loadConfig() with missing explicit path should error")
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	c := testCLI()
	c.configPath = writeConfig(t, "[layout\ngeometry = ")

	if _, err := c.loadConfig(); err == nil {
		t.Error("loadConfig() with invalid toml should error")
	}
}

func TestApplyLayoutConfig(t *testing.T) {
	cfg := LayoutConfig{
		Geometry:   "torus2d",
		Strategy:   "full",
		Iterations: 200,
		Epsilon:    0.05,
		Seed:       11,
	}

	// Flag-set values keep priority over the config file.
	opts := pipeline.Options{Geometry: "spherical2d", Iterations: 50}
	applyLayoutConfig(cfg, &opts)

	if opts.Geometry != "spherical2d" {
		t.Errorf("Geometry = %q, want flag value %q", opts.Geometry, "spherical2d")
	}
	if opts.Iterations != 50 {
		t.Errorf("Iterations = %d, want flag value 50", opts.Iterations)
	}
	if opts.Strategy != "full" {
		t.Errorf("Strategy = %q, want config value %q", opts.Strategy, "full")
	}
	if opts.Epsilon != 0.05 {
		t.Errorf("Epsilon = %g, want config value 0.05", opts.Epsilon)
	}
	if opts.Seed != 11 {
		t.Errorf("Seed = %d, want config value 11", opts.Seed)
	}
}
