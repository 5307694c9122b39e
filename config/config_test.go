package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "toml",
			file: "writedown.toml",
			content: `format = "html"

[html]
standalone = true
title = "Notes"

[parser]
max_depth = 4

[log]
verbosity = 2
`,
		},
		{
			name: "yaml",
			file: "writedown.yaml",
			content: `format: html
html:
  standalone: true
  title: Notes
parser:
  max_depth: 4
log:
  verbosity: 2
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), tt.file, tt.content)

			cfg, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if cfg.Format != "html" {
				t.Errorf("Format = %q, want %q", cfg.Format, "html")
			}
			if !cfg.HTML.Standalone || cfg.HTML.Title != "Notes" {
				t.Errorf("HTML = %+v, want standalone with title Notes", cfg.HTML)
			}
			if cfg.Parser.MaxDepth != 4 {
				t.Errorf("Parser.MaxDepth = %d, want 4", cfg.Parser.MaxDepth)
			}
			if cfg.Log.Verbosity != 2 {
				t.Errorf("Log.Verbosity = %d, want 2", cfg.Log.Verbosity)
			}
			// Unset fields keep their defaults.
			if cfg.UI.Addr != Default().UI.Addr {
				t.Errorf("UI.Addr = %q, want default %q", cfg.UI.Addr, Default().UI.Addr)
			}
			if cfg.Path != path {
				t.Errorf("Path = %q, want %q", cfg.Path, path)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "absent.toml")},
		{"unknown extension", writeFile(t, dir, "writedown.ini", "format=json")},
		{"bad toml", writeFile(t, dir, "bad.toml", "format = ")},
		{"bad yaml", writeFile(t, dir, "bad.yaml", "format: [")},
		{"invalid format", writeFile(t, dir, "invalid.toml", `format = "pdf"`)},
		{"negative depth", writeFile(t, dir, "depth.yml", "parser:\n  max_depth: -1\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(tt.path); err == nil {
				t.Errorf("Load(%q) returned no error", tt.path)
			}
		})
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	if _, err := Discover(dir); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Discover() error = %v, want %v", err, ErrNotFound)
	}

	writeFile(t, dir, ".writedown.yml", "format: json\n")
	cfg, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}
	if cfg.Format != "json" {
		t.Errorf("Format = %q, want %q", cfg.Format, "json")
	}

	writeFile(t, dir, "writedown.toml", `format = "html"`)
	cfg, err = Discover(dir)
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}
	if cfg.Format != "html" {
		t.Errorf("Format = %q, want the toml file to win", cfg.Format)
	}
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() error: %v", err)
	}
}
