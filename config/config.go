// Package config loads writedown settings from TOML or YAML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Names are the file names Discover looks for, in order.
var Names = []string{
	"writedown.toml",
	"writedown.yaml",
	"writedown.yml",
	".writedown.toml",
	".writedown.yaml",
	".writedown.yml",
}

// ErrNotFound is returned by Discover when no configuration file exists.
var ErrNotFound = errors.New("no configuration file found")

type Config struct {
	// Format is the default output format of the parse command.
	Format string       `toml:"format" yaml:"format"`
	HTML   HTMLConfig   `toml:"html" yaml:"html"`
	Parser ParserConfig `toml:"parser" yaml:"parser"`
	Log    LogConfig    `toml:"log" yaml:"log"`
	UI     UIConfig     `toml:"ui" yaml:"ui"`

	// Path is the file the configuration was loaded from.
	Path string `toml:"-" yaml:"-"`
}

type HTMLConfig struct {
	Standalone bool   `toml:"standalone" yaml:"standalone"`
	Title      string `toml:"title" yaml:"title"`
}

type ParserConfig struct {
	// MaxDepth bounds section nesting. Zero means unlimited.
	MaxDepth int `toml:"max_depth" yaml:"max_depth"`
}

type LogConfig struct {
	Verbosity int    `toml:"verbosity" yaml:"verbosity"`
	File      string `toml:"file" yaml:"file"`
}

type UIConfig struct {
	Addr string `toml:"addr" yaml:"addr"`
	Root string `toml:"root" yaml:"root"`
}

func Default() *Config {
	return &Config{
		Format: "tree",
		UI: UIConfig{
			Addr: "localhost:8080",
			Root: ".",
		},
	}
}

// Load reads the file at path. The decoder is chosen by extension; fields
// missing from the file keep their default values.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q: %s", ext, path)
	}
	cfg.Path = path

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Discover loads the first file from Names found in dir.
func Discover(dir string) (*Config, error) {
	for _, name := range Names {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return nil, fmt.Errorf("%w in %s", ErrNotFound, dir)
}

// Formats lists the accepted values of Config.Format.
var Formats = []string{"json", "tree", "html"}

func (c *Config) Validate() error {
	valid := false
	for _, f := range Formats {
		if c.Format == f {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("format %q is not one of %s", c.Format, strings.Join(Formats, ", "))
	}
	if c.Parser.MaxDepth < 0 {
		return fmt.Errorf("parser.max_depth must not be negative, got %d", c.Parser.MaxDepth)
	}
	if c.Log.Verbosity < 0 {
		return fmt.Errorf("log.verbosity must not be negative, got %d", c.Log.Verbosity)
	}
	return nil
}
