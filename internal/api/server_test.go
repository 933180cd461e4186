// File path: internal/api/server_test.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/specdraft/specdraft/internal/config"
	"github.com/specdraft/specdraft/internal/docx"
	"github.com/specdraft/specdraft/internal/jobs"
	"github.com/specdraft/specdraft/internal/llm"
	"github.com/specdraft/specdraft/internal/workflow"
)

type echoProvider struct{}

func (echoProvider) Chat(ctx context.Context, messages []llm.Message) (string, error) {
	return "Generated section body.", nil
}

func (echoProvider) Name() string { return "echo" }

func newTestServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()

	templatePath := filepath.Join(dir, "udd_sections.txt")
	require.NoError(t, os.WriteFile(templatePath, []byte("#Scope\ntype: text\nprompt: Summarize the scope."), 0o644))
	mappingPath := filepath.Join(dir, "fsd_to_udd_mapping.json")
	require.NoError(t, os.WriteFile(mappingPath, []byte(`{"Scope": ["1"]}`), 0o644))

	cfg := config.Default()
	cfg.TemplatePath = templatePath
	cfg.MappingPath = mappingPath
	cfg.ArtifactRoot = filepath.Join(dir, "artifacts")

	manager := workflow.NewManager(cfg, echoProvider{}, jobs.NewMemoryStore(), docx.NewWriter())
	return NewServer(manager)
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, true, body["ok"])
	require.NotEmpty(t, body["date"])
}

func TestGenerateDirect(t *testing.T) {
	srv := newTestServer(t)
	payload := `{"fsd_text": "SECTION: 1\nScope text."}`
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/generate/direct", strings.NewReader(payload)))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, docxContentType, rec.Header().Get("Content-Type"))
	require.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")))
}

func TestGenerateDirectRequiresFSD(t *testing.T) {
	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/generate/direct", strings.NewReader(`{}`)))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateJobLifecycle(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/generate", strings.NewReader(`{"fsd_text": "SECTION: 1\nScope text."}`)))
	require.Equal(t, http.StatusAccepted, rec.Code)

	var accepted map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &accepted))
	jobID := accepted["job_id"]
	require.NotEmpty(t, jobID)

	deadline := time.Now().Add(5 * time.Second)
	for {
		rec = httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/generate/"+jobID, nil))
		if rec.Code == http.StatusOK {
			break
		}
		require.Equal(t, http.StatusAccepted, rec.Code)
		require.True(t, time.Now().Before(deadline), "job did not finish in time")
		time.Sleep(10 * time.Millisecond)
	}
	require.Equal(t, docxContentType, rec.Header().Get("Content-Type"))
	require.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")))

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/jobs", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), jobID)
}

func TestJobNotFound(t *testing.T) {
	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/generate/nope", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLogsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/logs", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "entries")
}
