// Package server provides the preview HTTP server: it renders the watched
// template into artifacts, serves them with an index page, and pushes live
// reloads to connected browsers when the template or data file changes.
package server

import (
	"context"
	"fmt"
	"hash/fnv"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/coder/websocket"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/partirhq/partir/internal/config"
	"github.com/partirhq/partir/internal/datafile"
	"github.com/partirhq/partir/internal/engine"
	rendererrors "github.com/partirhq/partir/internal/errors"
	"github.com/partirhq/partir/internal/logging"
	"github.com/partirhq/partir/internal/types"
	"github.com/partirhq/partir/internal/watcher"
)

// reloadMessage is pushed to every connected client after a re-render.
const reloadMessage = `{"type":"reload"}`

// Server is the preview server for one template + data pair.
type Server struct {
	cfg          config.PreviewConfig
	engine       *engine.Engine
	logger       logging.Logger
	collector    *rendererrors.Collector
	templatePath string
	dataPath     string

	cache *lru.Cache[uint64, []types.Artifact]

	clientsMu sync.Mutex
	clients   map[*websocket.Conn]struct{}

	httpServer *http.Server
	fileWatch  *watcher.FileWatcher
}

// New creates a preview server. The template path is required; the data
// path may be empty, in which case the generated demo context is used.
func New(cfg config.PreviewConfig, eng *engine.Engine, templatePath, dataPath string, logger logging.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.Discard()
	}

	cache, err := lru.New[uint64, []types.Artifact](cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating artifact cache: %w", err)
	}

	return &Server{
		cfg:          cfg,
		engine:       eng,
		logger:       logger.WithComponent("server"),
		collector:    rendererrors.NewCollector(),
		templatePath: templatePath,
		dataPath:     dataPath,
		cache:        cache,
		clients:      make(map[*websocket.Conn]struct{}),
	}, nil
}

// Start runs the server until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	if err := s.startWatcher(ctx); err != nil {
		return err
	}
	defer s.fileWatch.Stop()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /", s.handleIndex)
	mux.HandleFunc("GET /artifacts/{index}", s.handleArtifact)
	mux.HandleFunc("GET /ws", s.handleWebSocket)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.ListenAndServe()
	}()

	s.logger.Info(ctx, "preview server started", "addr", addr, "template", s.templatePath)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

// startWatcher wires the file watcher to cache invalidation and client
// reload broadcasts.
func (s *Server) startWatcher(ctx context.Context) error {
	fw, err := watcher.NewFileWatcher(100*time.Millisecond, s.logger)
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	s.fileWatch = fw

	fw.AddFilter(watcher.NoHiddenFilter)
	fw.AddFilter(func(path string) bool {
		return watcher.TemplateFilter(path) || watcher.DataFilter(path)
	})
	fw.AddHandler(func(events []watcher.ChangeEvent) {
		s.logger.Info(ctx, "change detected, invalidating cache", "files", len(events))
		s.cache.Purge()
		s.broadcastReload(ctx)
	})

	if err := fw.AddPath(s.templatePath); err != nil {
		return fmt.Errorf("watching template: %w", err)
	}
	if s.dataPath != "" {
		if err := fw.AddPath(s.dataPath); err != nil {
			return fmt.Errorf("watching data file: %w", err)
		}
	}

	fw.Start(ctx)
	return nil
}

// renderArtifacts renders the current template + data pair, serving cached
// results keyed by the content hash of both files.
func (s *Server) renderArtifacts(ctx context.Context) ([]types.Artifact, error) {
	source, err := os.ReadFile(s.templatePath)
	if err != nil {
		return nil, fmt.Errorf("reading template: %w", err)
	}

	data, err := datafile.Load(s.dataPath)
	if err != nil {
		return nil, err
	}

	key := contentKey(source, s.dataPath)
	if artifacts, ok := s.cache.Get(key); ok {
		return artifacts, nil
	}

	artifacts, err := s.engine.RenderToArtifacts(ctx, string(source), data)
	if err != nil {
		s.collector.Add(rendererrors.Wrap(rendererrors.StageAssemble, "preview render", err))
		return nil, err
	}

	s.cache.Add(key, artifacts)
	return artifacts, nil
}

func contentKey(source []byte, dataPath string) uint64 {
	h := fnv.New64a()
	h.Write(source)
	h.Write([]byte(dataPath))
	if dataPath != "" {
		if raw, err := os.ReadFile(dataPath); err == nil {
			h.Write(raw)
		}
	}
	return h.Sum64()
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	artifacts, err := s.renderArtifacts(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), err, "index render failed")
		http.Error(w, "falha ao renderizar o template", http.StatusInternalServerError)
		return
	}

	source, _ := os.ReadFile(s.templatePath)
	profile, plan := s.engine.Analyze(string(source))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexPage(s.templatePath, artifacts, profile, plan).Render(r.Context(), w); err != nil {
		s.logger.Error(r.Context(), err, "index page render failed")
	}
}

func (s *Server) handleArtifact(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil || index < 0 {
		http.Error(w, "índice inválido", http.StatusBadRequest)
		return
	}

	artifacts, err := s.renderArtifacts(r.Context())
	if err != nil {
		http.Error(w, "falha ao renderizar o template", http.StatusInternalServerError)
		return
	}
	if index >= len(artifacts) {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, injectReloadScript(artifacts[index].Content))
}

// injectReloadScript appends the live-reload client to an artifact so the
// browser refreshes when the server broadcasts a change.
func injectReloadScript(content string) string {
	script := `<script>
(function() {
  var ws = new WebSocket('ws://' + window.location.host + '/ws');
  ws.onmessage = function(event) {
    var message = JSON.parse(event.data);
    if (message.type === 'reload') { window.location.reload(); }
  };
})();
</script>`

	if idx := strings.LastIndex(content, "</body>"); idx >= 0 {
		return content[:idx] + script + content[idx:]
	}
	return content + script
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		s.logger.Warn(r.Context(), err, "websocket accept failed")
		return
	}

	s.clientsMu.Lock()
	s.clients[conn] = struct{}{}
	s.clientsMu.Unlock()

	s.logger.Debug(r.Context(), "client connected")

	// CloseRead keeps the connection alive until the client goes away;
	// the server only ever writes.
	ctx := conn.CloseRead(r.Context())
	<-ctx.Done()

	s.clientsMu.Lock()
	delete(s.clients, conn)
	s.clientsMu.Unlock()

	conn.Close(websocket.StatusNormalClosure, "")
}

// broadcastReload notifies every connected client.
func (s *Server) broadcastReload(ctx context.Context) {
	s.clientsMu.Lock()
	conns := make([]*websocket.Conn, 0, len(s.clients))
	for conn := range s.clients {
		conns = append(conns, conn)
	}
	s.clientsMu.Unlock()

	for _, conn := range conns {
		writeCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := conn.Write(writeCtx, websocket.MessageText, []byte(reloadMessage)); err != nil {
			s.logger.Warn(ctx, err, "reload broadcast failed for one client")
		}
		cancel()
	}
}
