package config

import (
	"github.com/arthur-debert/neostow/pkg/types"
	"github.com/pelletier/go-toml/v2"
)

// Config holds the settings of one run
type Config struct {
	// File is the absolute path of the manifest
	File string `koanf:"file" toml:"file"`
	// BaseDir is the manifest's directory; sources are relative to it
	BaseDir string     `koanf:"-" toml:"-"`
	Mode    types.Mode `koanf:"-" toml:"-"`

	Verbose bool `koanf:"verbose" toml:"verbose"`
	Force   bool `koanf:"force" toml:"force"`
	DryRun  bool `koanf:"dry" toml:"dry"`
	Debug   bool `koanf:"debug" toml:"debug"`

	Color  string     `koanf:"color" toml:"color"`
	Editor string     `koanf:"editor" toml:"editor"`
	Diff   DiffConfig `koanf:"diff" toml:"diff"`
}

// DiffConfig selects how conflicting destinations are compared
type DiffConfig struct {
	// Tool is auto, external or builtin
	Tool string `koanf:"tool" toml:"tool"`
	// Command is the external diff executable
	Command string `koanf:"command" toml:"command"`
	// Show prints the differences before asking for confirmation
	Show bool `koanf:"show" toml:"show"`
}

// TOML renders the user-settable part of the configuration
func (c *Config) TOML() ([]byte, error) {
	return toml.Marshal(c)
}
