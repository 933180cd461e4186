// File path: internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWhenNoFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.ContextWindow != 3 || cfg.ContextSnippetLimit != 1200 {
		t.Fatalf("unexpected defaults: %#v", cfg)
	}
	if cfg.DocumentTitle != "Uniform Design Document" {
		t.Fatalf("unexpected title: %q", cfg.DocumentTitle)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "specdraft.yaml")
	contents := "addr: \":9090\"\ncontext_window: 5\ntemplate_path: custom.txt\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Addr != ":9090" || cfg.ContextWindow != 5 || cfg.TemplatePath != "custom.txt" {
		t.Fatalf("file values not applied: %#v", cfg)
	}
	if cfg.MappingPath != Default().MappingPath {
		t.Fatalf("unset values must keep defaults: %#v", cfg)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SPECDRAFT_ADDR", ":7070")
	t.Setenv("SPECDRAFT_CONTEXT_WINDOW", "2")
	t.Setenv("SPECDRAFT_SNIPPET_LIMIT", "not-a-number")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Addr != ":7070" || cfg.ContextWindow != 2 {
		t.Fatalf("env overrides not applied: %#v", cfg)
	}
	if cfg.ContextSnippetLimit != 1200 {
		t.Fatalf("invalid env int must keep default: %#v", cfg)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "specdraft.yaml")
	if err := os.WriteFile(path, []byte(":\n\t- broken"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}
