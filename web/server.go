// Package web serves the batch-capture UI: paste or upload addresses, watch
// progress live, download the zip when the run completes.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"webshotter/capture"
	"webshotter/config"
	"webshotter/log"
	"webshotter/storage"

	_ "embed"
)

//go:embed index.html
var indexHTML []byte

// ErrBatchInProgress guards the shared artifact store: only one batch may
// run at a time.
var ErrBatchInProgress = errors.New("a batch is already running")

// EngineFactory builds a fresh capture engine per batch; a session is never
// reused across batches.
type EngineFactory func() capture.Engine

// Server is the HTTP surface over the capture engine.
type Server struct {
	cfg     *config.Config
	logger  *log.Logger
	dirs    storage.BatchDirs
	agg     *capture.Aggregator
	metrics *capture.Metrics
	hub     *Hub
	engines EngineFactory

	running atomic.Bool
	mux     *http.ServeMux
}

// NewServer wires the handlers.
func NewServer(cfg *config.Config, dirs storage.BatchDirs, engines EngineFactory, metrics *capture.Metrics, logger *log.Logger) *Server {
	s := &Server{
		cfg:     cfg,
		logger:  logger,
		dirs:    dirs,
		agg:     capture.NewAggregator(dirs, logger),
		metrics: metrics,
		hub:     NewHub(logger),
		engines: engines,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /api/batch", s.handleStartBatch)
	mux.HandleFunc("GET /api/records", s.handleRecords)
	mux.HandleFunc("POST /api/flush", s.handleFlush)
	mux.HandleFunc("GET /archive", s.handleArchive)
	mux.HandleFunc("GET /ws", s.hub.Handle)
	mux.Handle("GET /metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
	s.mux = mux
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe blocks serving the UI.
func (s *Server) ListenAndServe() error {
	s.logger.Infof("Server:ListenAndServe", "listening on %s", s.cfg.ListenAddr)
	return http.ListenAndServe(s.cfg.ListenAddr, s)
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexHTML)
}

// handleStartBatch accepts either a pasted address list ("urls" form field)
// or an uploaded CSV ("csv" file field with a "name" column), and kicks off
// the batch in the background.
func (s *Server) handleStartBatch(w http.ResponseWriter, r *http.Request) {
	addrs, truncated, err := s.parseAddresses(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(addrs) == 0 {
		http.Error(w, "no addresses submitted", http.StatusBadRequest)
		return
	}

	if !s.running.CompareAndSwap(false, true) {
		http.Error(w, ErrBatchInProgress.Error(), http.StatusConflict)
		return
	}

	go s.runBatch(addrs)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"submitted": len(addrs),
		"truncated": truncated,
	})
}

func (s *Server) parseAddresses(r *http.Request) ([]capture.Address, bool, error) {
	const maxUpload = 10 << 20
	if err := r.ParseMultipartForm(maxUpload); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return nil, false, err
	}

	if file, _, err := r.FormFile("csv"); err == nil {
		defer file.Close()
		return capture.ParseCSV(file, s.cfg.MaxBatchSize)
	}

	addrs, truncated := capture.ParseList(r.FormValue("urls"), s.cfg.MaxBatchSize)
	return addrs, truncated, nil
}

func (s *Server) runBatch(addrs []capture.Address) {
	defer s.running.Store(false)

	if err := s.agg.Reset(); err != nil {
		s.logger.Errorf("Server:runBatch", "flushing previous run: %v", err)
		s.hub.Broadcast(map[string]any{"type": "error", "error": err.Error()})
		return
	}
	s.hub.Broadcast(map[string]any{"type": "started", "total": len(addrs)})
	s.logger.Debugf("Server:runBatch", "streaming progress for %d addresses to %d clients", len(addrs), s.hub.ClientCount())

	coord := capture.NewCoordinator(s.engines(), s.cfg.Workers, s.metrics, s.logger)
	run, err := coord.Run(context.Background(), addrs, func(ev capture.ProgressEvent) {
		s.agg.Append(ev.Outcome)
		s.hub.Broadcast(map[string]any{"type": "progress", "event": ev})
	})
	if err != nil {
		s.logger.Errorf("Server:runBatch", "batch failed: %v", err)
		s.hub.Broadcast(map[string]any{"type": "error", "error": err.Error()})
		return
	}

	done := map[string]any{
		"type":         "done",
		"completed":    run.Completed,
		"total":        run.Submitted,
		"hasArtifacts": s.agg.HasArtifacts(),
	}
	if _, err := s.agg.Archive(); err != nil {
		if errors.Is(err, storage.ErrNoArtifacts) {
			done["warning"] = "processing completed, but no screenshots were successfully generated"
		} else {
			done["warning"] = err.Error()
		}
	}
	s.hub.Broadcast(done)
}

func (s *Server) handleRecords(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]any{
		"running": s.running.Load(),
		"records": s.agg.Records(),
	})
}

func (s *Server) handleFlush(w http.ResponseWriter, _ *http.Request) {
	if s.running.Load() {
		http.Error(w, ErrBatchInProgress.Error(), http.StatusConflict)
		return
	}
	if err := s.agg.Reset(); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleArchive(w http.ResponseWriter, r *http.Request) {
	// Archive creation is idempotent per run, so a download mid-batch would
	// freeze a partial bundle as the run's final archive. Same guard as flush.
	if s.running.Load() {
		http.Error(w, ErrBatchInProgress.Error(), http.StatusConflict)
		return
	}
	path, err := s.agg.Archive()
	if err != nil {
		if errors.Is(err, storage.ErrNoArtifacts) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="`+storage.ArchiveName+`"`)
	w.Header().Set("Content-Type", "application/zip")
	http.ServeFile(w, r, path)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
