// Package buildconf loads the process-wide, read-only build configuration:
// the workspace build root, external tool paths, per-dependency version
// pins, and the verbose/dry-run flags that the process-execution core
// consults. Modeled on the teacher's internal/config/config.go (TOML load
// into a struct, defaulting, then validation) but with BurntSushi/toml —
// the teacher's direct dependency — instead of go-toml/v2.
package buildconf

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the immutable, process-wide build configuration. Spec.md §9's
// design note on process-wide state applies: this is constructed once and
// passed down explicitly to each task's constructor, never read through a
// package-level mutable global.
type Config struct {
	BuildRoot   string            `toml:"build_root"`
	Tools       ToolPaths         `toml:"tools"`
	Versions    map[string]string `toml:"versions"`
	PrefixPaths []string          `toml:"prefix_paths"`
	Verbose     bool              `toml:"verbose"`
	Dry         bool              `toml:"dry"`
}

// ToolPaths locates the external binaries the tool layer shells out to.
type ToolPaths struct {
	CMake    string `toml:"cmake"`
	MSBuild  string `toml:"msbuild"`
	SevenZip string `toml:"sevenzip"`
	Git      string `toml:"git"`
}

// Load reads and validates a TOML config file.
func Load(path string) (Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("buildconf: load %s: %w", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.BuildRoot) == "" {
		c.BuildRoot = "build"
	}
	if c.Tools.CMake == "" {
		c.Tools.CMake = "cmake"
	}
	if c.Tools.MSBuild == "" {
		c.Tools.MSBuild = "msbuild"
	}
	if c.Tools.SevenZip == "" {
		c.Tools.SevenZip = "7z"
	}
	if c.Tools.Git == "" {
		c.Tools.Git = "git"
	}
	if c.Versions == nil {
		c.Versions = map[string]string{}
	}
}

func (c Config) validate() error {
	if strings.TrimSpace(c.BuildRoot) == "" {
		return fmt.Errorf("buildconf: build_root must not be empty")
	}
	return nil
}

// Version returns the pinned version for a task name, spec.md's
// conf().version().get(name) lookup.
func (c Config) Version(name string) string {
	return c.Versions[name]
}
