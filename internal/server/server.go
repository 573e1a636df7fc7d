// Package server exposes a single cache instance over HTTP for the
// browser-based visualization.
//
// The cache contract assumes one logical owner; HTTP handlers run on
// arbitrary goroutines, so the server is that owner and serializes every
// cache operation behind a mutex.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/lruviz/internal/cache"
	"github.com/bnema/lruviz/internal/config"
)

const metricsNamespace = "lruviz"

// Server owns the cache instance shared by all HTTP clients.
type Server struct {
	cfg    config.ServerConfig
	logger zerolog.Logger

	mu      sync.Mutex
	cache   *cache.Cache[string, string]
	initial []cache.Entry[string, string]
	hits    int
	misses  int

	registry *prometheus.Registry
	metrics  *Metrics
}

// New builds a server around a cache with the given capacity and seed
// entries. The seed is retained verbatim so reset can reconstruct the
// original cache.
func New(cfg config.ServerConfig, logger zerolog.Logger, capacity int, initial []cache.Entry[string, string]) (*Server, error) {
	c, err := cache.New(capacity, initial...)
	if err != nil {
		return nil, fmt.Errorf("build cache: %w", err)
	}

	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry, metricsNamespace)
	metrics.Entries.Set(float64(c.Len()))

	return &Server{
		cfg:      cfg,
		logger:   logger,
		cache:    c,
		initial:  initial,
		registry: registry,
		metrics:  metrics,
	}, nil
}

// Handler returns the full HTTP routing table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/entries", s.handleEntries)
	mux.HandleFunc("GET /api/v1/cache/{key}", s.handleGet)
	mux.HandleFunc("PUT /api/v1/cache/{key}", s.handleSet)
	mux.HandleFunc("DELETE /api/v1/cache/{key}", s.handleDelete)
	mux.HandleFunc("POST /api/v1/clear", s.handleClear)
	mux.HandleFunc("POST /api/v1/reset", s.handleReset)

	mux.Handle("GET /metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return mux
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	httpSrv := &http.Server{
		Addr:    s.cfg.ListenAddr,
		Handler: s.Handler(),
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info().Str("addr", s.cfg.ListenAddr).Msg("http server listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()

		s.logger.Info().Msg("shutting down http server")
		return httpSrv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// entryPayload is the wire form of a cache entry.
type entryPayload struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// statePayload is the full snapshot the visualization renders from.
type statePayload struct {
	Capacity int            `json:"capacity"`
	Size     int            `json:"size"`
	Hits     int            `json:"hits"`
	Misses   int            `json:"misses"`
	Entries  []entryPayload `json:"entries"`
}

// snapshotLocked builds a state payload. Caller must hold s.mu.
func (s *Server) snapshotLocked() statePayload {
	entries := s.cache.Entries()
	payload := statePayload{
		Capacity: s.cache.Cap(),
		Size:     s.cache.Len(),
		Hits:     s.hits,
		Misses:   s.misses,
		Entries:  make([]entryPayload, 0, len(entries)),
	}
	for _, e := range entries {
		payload.Entries = append(payload.Entries, entryPayload{Key: e.Key, Value: e.Value})
	}
	return payload
}

func (s *Server) handleEntries(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	payload := s.snapshotLocked()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	s.mu.Lock()
	value, ok := s.cache.Get(key)
	if ok {
		s.hits++
	} else {
		s.misses++
	}
	s.mu.Unlock()

	if !ok {
		s.metrics.MissesTotal.Inc()
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "key not found"})
		return
	}

	s.metrics.HitsTotal.Inc()
	writeJSON(w, http.StatusOK, entryPayload{Key: key, Value: value})
}

// setRequest is the PUT body. A missing or empty value is still a valid
// value; absence is signaled by the 404 on GET, never by a magic value.
type setRequest struct {
	Value string `json:"value"`
}

type setResponse struct {
	Key     string `json:"key"`
	Value   string `json:"value"`
	Evicted string `json:"evicted,omitempty"`
}

func (s *Server) handleSet(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	var req setRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	s.mu.Lock()
	// The evictee is knowable before the set: a new key into a full cache
	// pushes out whatever currently sits at the LRU end.
	var evicted string
	_, existed := s.peekLocked(key)
	if !existed && s.cache.Len() == s.cache.Cap() {
		entries := s.cache.Entries()
		evicted = entries[len(entries)-1].Key
	}
	s.cache.Set(key, req.Value)
	size := s.cache.Len()
	s.mu.Unlock()

	s.metrics.SetsTotal.Inc()
	s.metrics.Entries.Set(float64(size))
	if evicted != "" {
		s.metrics.EvictionsTotal.Inc()
		s.logger.Debug().Str("key", key).Str("evicted", evicted).Msg("set evicted lru entry")
	}

	writeJSON(w, http.StatusOK, setResponse{Key: key, Value: req.Value, Evicted: evicted})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	s.mu.Lock()
	s.cache.Delete(key)
	size := s.cache.Len()
	s.mu.Unlock()

	s.metrics.DeletesTotal.Inc()
	s.metrics.Entries.Set(float64(size))

	// Delete never errors on a missing key, so this is 204 either way.
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClear(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	s.cache.Clear()
	s.mu.Unlock()

	s.metrics.Entries.Set(0)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReset(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	fresh, err := cache.New(s.cache.Cap(), s.initial...)
	if err == nil {
		s.cache = fresh
		s.hits, s.misses = 0, 0
	}
	size := s.cache.Len()
	payload := s.snapshotLocked()
	s.mu.Unlock()

	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	s.metrics.ResetsTotal.Inc()
	s.metrics.Entries.Set(float64(size))
	writeJSON(w, http.StatusOK, payload)
}

// peekLocked reports presence without touching recency. Caller must hold s.mu.
func (s *Server) peekLocked(key string) (string, bool) {
	for _, e := range s.cache.Entries() {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
