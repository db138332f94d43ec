package server

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partirhq/partir/internal/config"
	"github.com/partirhq/partir/internal/engine"
	"github.com/partirhq/partir/internal/types"
)

func newTestServer(t *testing.T, templateSource, dataSource string) *Server {
	t.Helper()

	dir := t.TempDir()
	templatePath := filepath.Join(dir, "template.html")
	require.NoError(t, os.WriteFile(templatePath, []byte(templateSource), 0600))

	dataPath := ""
	if dataSource != "" {
		dataPath = filepath.Join(dir, "data.yaml")
		require.NoError(t, os.WriteFile(dataPath, []byte(dataSource), 0600))
	}

	eng := engine.New(nil, types.DefaultRenderOptions(), nil)
	cfg := config.PreviewConfig{Host: "localhost", Port: 8130, CacheSize: 4}

	srv, err := New(cfg, eng, templatePath, dataPath, nil)
	require.NoError(t, err)
	return srv
}

func TestIndexPageListsArtifacts(t *testing.T) {
	srv := newTestServer(t, "<main><p>{{.greeting}}</p></main>", "greeting: Olá\n")

	rec := httptest.NewRecorder()
	srv.handleIndex(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "partir preview")
	assert.Contains(t, body, types.BaseTitle)
	assert.Contains(t, body, "/artifacts/0")
	assert.Contains(t, body, "Componentes")
}

func TestIndexRejectsOtherPaths(t *testing.T) {
	srv := newTestServer(t, "<p>oi</p>", "")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	srv.handleIndex(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestArtifactEndpointServesContentWithReloadScript(t *testing.T) {
	srv := newTestServer(t, "<main><p>{{.greeting}}</p></main>", "greeting: Olá\n")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/artifacts/0", nil)
	req.SetPathValue("index", "0")
	srv.handleArtifact(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Olá")
	assert.Contains(t, body, "new WebSocket")
	// The script goes inside the document body.
	assert.Less(t, strings.Index(body, "new WebSocket"), strings.LastIndex(body, "</body>"))
}

func TestArtifactEndpointIndexValidation(t *testing.T) {
	srv := newTestServer(t, "<p>oi</p>", "")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/artifacts/abc", nil)
	req.SetPathValue("index", "abc")
	srv.handleArtifact(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/artifacts/99", nil)
	req.SetPathValue("index", "99")
	srv.handleArtifact(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRenderArtifactsUsesCache(t *testing.T) {
	srv := newTestServer(t, "<main><p>{{.greeting}}</p></main>", "greeting: Olá\n")

	first, err := srv.renderArtifacts(t.Context())
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, srv.cache.Len())

	again, err := srv.renderArtifacts(t.Context())
	require.NoError(t, err)
	assert.Equal(t, first, again)
	assert.Equal(t, 1, srv.cache.Len())
}

func TestRenderArtifactsMissingTemplate(t *testing.T) {
	eng := engine.New(nil, types.DefaultRenderOptions(), nil)
	cfg := config.PreviewConfig{Host: "localhost", Port: 8130, CacheSize: 4}
	srv, err := New(cfg, eng, filepath.Join(t.TempDir(), "missing.html"), "", nil)
	require.NoError(t, err)

	_, err = srv.renderArtifacts(t.Context())
	assert.Error(t, err)
}

func TestInjectReloadScript(t *testing.T) {
	withBody := injectReloadScript("<html><body><p>oi</p></body></html>")
	assert.True(t, strings.Index(withBody, "<script>") < strings.Index(withBody, "</body>"))

	bare := injectReloadScript("<p>oi</p>")
	assert.True(t, strings.HasSuffix(bare, "</script>"))
}
