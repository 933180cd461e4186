// File path: internal/workflow/manager.go
package workflow

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/specdraft/specdraft/internal/assembler"
	"github.com/specdraft/specdraft/internal/common"
	"github.com/specdraft/specdraft/internal/config"
	"github.com/specdraft/specdraft/internal/docx"
	"github.com/specdraft/specdraft/internal/generator"
	"github.com/specdraft/specdraft/internal/jobs"
	"github.com/specdraft/specdraft/internal/llm"
	"github.com/specdraft/specdraft/internal/section"
	"github.com/specdraft/specdraft/internal/templates"
)

var ErrFSDRequired = errors.New("fsd_text is required")

const artifactName = "UDD.docx"

// Request describes one document-generation run. Paths default to the
// service configuration; FSDText is the raw functional specification.
type Request struct {
	FSDText       string `json:"fsd_text"`
	TemplatePath  string `json:"template_path,omitempty"`
	MappingPath   string `json:"mapping_path,omitempty"`
	DocumentTitle string `json:"document_title,omitempty"`
}

// Manager runs document builds and tracks them through the job store. Each
// build loads the template and mapping resources fresh, so operator edits
// apply to the next job without a restart. The build itself holds no shared
// mutable state; concurrent jobs only meet inside the store.
type Manager struct {
	cfg      config.Config
	provider llm.Provider
	jobs     jobs.Store
	renderer docx.Renderer
}

func NewManager(cfg config.Config, provider llm.Provider, store jobs.Store, renderer docx.Renderer) *Manager {
	return &Manager{cfg: cfg, provider: provider, jobs: store, renderer: renderer}
}

// Submit registers a job and launches the build in the background.
func (m *Manager) Submit(req Request) (jobs.Job, error) {
	if strings.TrimSpace(req.FSDText) == "" {
		return jobs.Job{}, ErrFSDRequired
	}
	job, err := m.jobs.Create(context.Background())
	if err != nil {
		return jobs.Job{}, fmt.Errorf("register job: %w", err)
	}
	common.Logger().Info("workflow: job queued", "job", job.ID)
	go m.run(job, req)
	return job, nil
}

func (m *Manager) Job(ctx context.Context, id string) (jobs.Job, error) {
	return m.jobs.Get(ctx, id)
}

func (m *Manager) Jobs(ctx context.Context) ([]jobs.Job, error) {
	return m.jobs.List(ctx)
}

func (m *Manager) run(job jobs.Job, req Request) {
	logger := common.Logger()
	ctx := context.Background()

	job.Status = jobs.StatusRunning
	job.Attempts = 1
	if err := m.jobs.Update(ctx, job); err != nil {
		logger.Error("workflow: job update failed", "job", job.ID, "error", err)
	}

	payload, err := m.BuildDocument(ctx, req)
	if err == nil {
		var path string
		path, err = m.writeArtifact(job.ID, payload)
		job.ResultPath = path
	}

	job.Status = jobs.StatusDone
	if err != nil {
		logger.Error("workflow: job failed", "job", job.ID, "error", err)
		job.Error = err.Error()
		job.ResultPath = ""
	} else {
		logger.Info("workflow: job completed", "job", job.ID, "artifact", job.ResultPath)
	}
	if err := m.jobs.Update(ctx, job); err != nil {
		logger.Error("workflow: job update failed", "job", job.ID, "error", err)
	}
}

// BuildDocument executes the full pipeline for one request and returns the
// finished document bytes. A generation failure aborts the build with no
// partial output; later sections draft against earlier ones, so a document
// with a silent gap would be worse than no document.
func (m *Manager) BuildDocument(ctx context.Context, req Request) ([]byte, error) {
	logger := common.Logger()
	traceID := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]

	templatePath := firstNonEmpty(req.TemplatePath, m.cfg.TemplatePath)
	mappingPath := firstNonEmpty(req.MappingPath, m.cfg.MappingPath)
	title := firstNonEmpty(req.DocumentTitle, m.cfg.DocumentTitle)
	logger.Info("workflow: build started", "trace", traceID, "templates", templatePath, "mapping", mappingPath)

	tpls, err := templates.Load(templatePath)
	if err != nil {
		return nil, err
	}
	if len(tpls) == 0 {
		return nil, fmt.Errorf("template resource %s contains no usable sections", templatePath)
	}
	sectionMap, err := section.LoadMap(mappingPath)
	if err != nil {
		return nil, err
	}

	generated, err := generator.Generate(ctx, req.FSDText, tpls, sectionMap, m.provider, generator.Options{
		Window:       m.cfg.ContextWindow,
		SnippetLimit: m.cfg.ContextSnippetLimit,
	})
	if err != nil {
		return nil, err
	}

	rendered := make([]docx.Section, 0, len(generated))
	for _, sec := range generated {
		rendered = append(rendered, docx.Section{Title: sec.Title, Blocks: assembler.Parse(sec.Body)})
	}
	payload, err := m.renderer.Render(title, rendered)
	if err != nil {
		return nil, fmt.Errorf("render document: %w", err)
	}
	logger.Info("workflow: build finished", "trace", traceID, "sections", len(rendered), "bytes", len(payload))
	return payload, nil
}

// writeArtifact stores the document under the artifact root, staging through
// a temp file so a crash never leaves a half-written download behind.
func (m *Manager) writeArtifact(jobID string, payload []byte) (string, error) {
	dir := filepath.Join(m.cfg.ArtifactRoot, safeFileComponent(jobID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create artifact dir: %w", err)
	}
	finalPath := filepath.Join(dir, artifactName)
	tempPath := finalPath + ".tmp"
	if err := os.WriteFile(tempPath, payload, 0o644); err != nil {
		return "", fmt.Errorf("write artifact: %w", err)
	}
	if err := os.Rename(tempPath, finalPath); err != nil {
		_ = os.Remove(tempPath)
		return "", fmt.Errorf("finalize artifact: %w", err)
	}
	return finalPath, nil
}

func safeFileComponent(value string) string {
	var b strings.Builder
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "job"
	}
	return b.String()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
