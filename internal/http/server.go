// Package http exposes the expense collection as a JSON API, plus a
// dashboard surface (stats, export) computed by the aggregation engine.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"neonspend/internal/core"
	"neonspend/internal/session"
	"neonspend/internal/store"
)

// EventPublisher mirrors mutations onto the event stream. A nil publisher
// disables events; publish failures never fail the request.
type EventPublisher interface {
	PublishCreated(ctx context.Context, e core.Expense) error
	PublishDeleted(ctx context.Context, e core.Expense) error
	PublishCleared(ctx context.Context) error
}

type Server struct {
	http.Server
	store       store.Store
	publisher   EventPublisher
	rateLimiter *rateLimiter

	// Snapshot cache keyed by filter; purged on every mutation.
	statsCache *lruCache[session.Snapshot]
}

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server.
func NewServer(addr string, st store.Store, pub EventPublisher) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		store:       st,
		publisher:   pub,
		rateLimiter: newRateLimiter(),
		statsCache:  newLRUCache[session.Snapshot](100, 5*time.Minute),
	}

	mux.HandleFunc("GET /{$}", s.wrap(s.handleLiveness))
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("GET /api/expenses", s.wrap(s.handleList))
	mux.HandleFunc("POST /api/expenses", s.wrap(s.handleCreate))
	mux.HandleFunc("DELETE /api/expenses/{id}", s.wrap(s.handleDeleteOne))
	mux.HandleFunc("DELETE /api/expenses", s.wrap(s.handleDeleteAll))

	mux.HandleFunc("GET /api/expenses/stats", s.wrap(s.handleStats))
	mux.HandleFunc("GET /api/expenses/export", s.wrap(s.handleExport))

	mux.HandleFunc("OPTIONS /", s.wrap(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	return s
}

// Shutdown stops the rate limiter cleanup goroutine before shutting down
// the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.rateLimiter != nil {
		s.rateLimiter.stop()
	}
	return s.Server.Shutdown(ctx)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// rateLimiter allows up to 60 requests per client per minute.
type rateLimiter struct {
	mu           sync.Mutex
	clients      map[string]*clientInfo
	stopCleanup  chan struct{}
	shutdownOnce sync.Once
}

type clientInfo struct {
	lastRequest time.Time
	requests    int
}

func newRateLimiter() *rateLimiter {
	rl := &rateLimiter{
		clients:     make(map[string]*clientInfo),
		stopCleanup: make(chan struct{}),
	}
	go rl.startCleanup()
	return rl
}

func (rl *rateLimiter) startCleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanupStaleEntries()
		case <-rl.stopCleanup:
			return
		}
	}
}

func (rl *rateLimiter) cleanupStaleEntries() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-10 * time.Minute)
	for ip, client := range rl.clients {
		if client.lastRequest.Before(cutoff) {
			delete(rl.clients, ip)
		}
	}
}

func (rl *rateLimiter) stop() {
	rl.shutdownOnce.Do(func() {
		close(rl.stopCleanup)
	})
}

func (rl *rateLimiter) allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	client, exists := rl.clients[clientIP]
	if !exists {
		rl.clients[clientIP] = &clientInfo{lastRequest: now, requests: 1}
		return true
	}

	if now.Sub(client.lastRequest) > time.Minute {
		client.requests = 1
		client.lastRequest = now
		return true
	}

	client.requests++
	client.lastRequest = now
	return client.requests <= 60
}
