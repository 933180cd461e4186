// File path: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the service settings. Values are resolved in three layers:
// built-in defaults, an optional YAML file, then SPECDRAFT_* environment
// variables. Command-line flags in cmd apply on top of the result.
type Config struct {
	Addr string `yaml:"addr"`

	// TemplatePath points at the UDD section template resource, MappingPath
	// at the FSD-to-UDD section map. Both are re-read for every job.
	TemplatePath string `yaml:"template_path"`
	MappingPath  string `yaml:"mapping_path"`

	// ArtifactRoot is where finished documents are written, one directory
	// per job.
	ArtifactRoot string `yaml:"artifact_root"`

	// JobsDSN selects the job store backend: empty for in-memory, otherwise
	// a SQLite database path.
	JobsDSN string `yaml:"jobs_dsn"`

	DocumentTitle string `yaml:"document_title"`

	// ContextWindow is how many previously generated sections are replayed
	// into the next prompt; ContextSnippetLimit caps the characters kept per
	// replayed section.
	ContextWindow       int `yaml:"context_window"`
	ContextSnippetLimit int `yaml:"context_snippet_limit"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Addr:                ":8084",
		TemplatePath:        "udd_sections.txt",
		MappingPath:         "fsd_to_udd_mapping.json",
		ArtifactRoot:        "jobs",
		DocumentTitle:       "Uniform Design Document",
		ContextWindow:       3,
		ContextSnippetLimit: 1200,
	}
}

// Load reads the configuration file at path (skipped when path is empty or
// the file does not exist) and applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		data, err := os.ReadFile(trimmed)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", trimmed, err)
			}
		case os.IsNotExist(err):
			// fall through to defaults
		default:
			return Config{}, fmt.Errorf("read config %s: %w", trimmed, err)
		}
	}
	cfg.applyEnv()
	cfg.normalize()
	return cfg, nil
}

func (c *Config) applyEnv() {
	setString(&c.Addr, "SPECDRAFT_ADDR")
	setString(&c.TemplatePath, "SPECDRAFT_TEMPLATE_PATH")
	setString(&c.MappingPath, "SPECDRAFT_MAPPING_PATH")
	setString(&c.ArtifactRoot, "SPECDRAFT_ARTIFACT_ROOT")
	setString(&c.JobsDSN, "SPECDRAFT_JOBS_DSN")
	setString(&c.DocumentTitle, "SPECDRAFT_DOC_TITLE")
	setInt(&c.ContextWindow, "SPECDRAFT_CONTEXT_WINDOW")
	setInt(&c.ContextSnippetLimit, "SPECDRAFT_SNIPPET_LIMIT")
}

func (c *Config) normalize() {
	def := Default()
	if strings.TrimSpace(c.Addr) == "" {
		c.Addr = def.Addr
	}
	if strings.TrimSpace(c.TemplatePath) == "" {
		c.TemplatePath = def.TemplatePath
	}
	if strings.TrimSpace(c.MappingPath) == "" {
		c.MappingPath = def.MappingPath
	}
	if strings.TrimSpace(c.ArtifactRoot) == "" {
		c.ArtifactRoot = def.ArtifactRoot
	}
	if strings.TrimSpace(c.DocumentTitle) == "" {
		c.DocumentTitle = def.DocumentTitle
	}
	if c.ContextWindow <= 0 {
		c.ContextWindow = def.ContextWindow
	}
	if c.ContextSnippetLimit <= 0 {
		c.ContextSnippetLimit = def.ContextSnippetLimit
	}
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return
	}
	if parsed, err := strconv.Atoi(v); err == nil {
		*dst = parsed
	}
}
