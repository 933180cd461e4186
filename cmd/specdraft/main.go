// File path: cmd/specdraft/main.go
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/specdraft/specdraft/internal/api"
	"github.com/specdraft/specdraft/internal/common"
	"github.com/specdraft/specdraft/internal/config"
	"github.com/specdraft/specdraft/internal/docx"
	"github.com/specdraft/specdraft/internal/jobs"
	"github.com/specdraft/specdraft/internal/llm"
	"github.com/specdraft/specdraft/internal/workflow"
)

func main() {
	logger := common.Logger()

	if err := godotenv.Load(); err != nil {
		logger.Warn("specdraft: .env file not loaded", "error", err)
	} else {
		logger.Info("specdraft: environment loaded from .env")
	}

	configPath := flag.String("config", "", "path to a YAML config file")
	addr := flag.String("addr", "", "listen address (overrides config)")
	templatePath := flag.String("templates", "", "path to the UDD section template resource")
	mappingPath := flag.String("mapping", "", "path to the FSD-to-UDD section map")
	artifactRoot := flag.String("artifacts", "", "directory for finished documents")
	jobsDSN := flag.String("jobs-dsn", "", "SQLite path for the job store (empty for in-memory)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("specdraft: config load failed", "error", err)
		fmt.Println("config error:", err)
		os.Exit(1)
	}
	applyFlag(&cfg.Addr, *addr)
	applyFlag(&cfg.TemplatePath, *templatePath)
	applyFlag(&cfg.MappingPath, *mappingPath)
	applyFlag(&cfg.ArtifactRoot, *artifactRoot)
	applyFlag(&cfg.JobsDSN, *jobsDSN)

	logger.Info("specdraft: startup initiated", "addr", cfg.Addr, "templates", cfg.TemplatePath, "mapping", cfg.MappingPath)

	store, err := jobs.NewStore(cfg.JobsDSN)
	if err != nil {
		logger.Error("specdraft: job store init failed", "error", err)
		fmt.Println("job store error:", err)
		os.Exit(1)
	}

	provider := llm.NewProvider()
	manager := workflow.NewManager(cfg, provider, store, docx.NewWriter())
	server := api.NewServer(manager)

	logger.Info("specdraft: listening", "addr", cfg.Addr, "provider", provider.Name())
	if err := http.ListenAndServe(cfg.Addr, server); err != nil {
		logger.Error("specdraft: server stopped", "error", err)
		fmt.Println("server error:", err)
		os.Exit(1)
	}
}

func applyFlag(dst *string, value string) {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		*dst = trimmed
	}
}
