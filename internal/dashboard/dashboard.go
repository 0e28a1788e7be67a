// Package dashboard serves a read-only HTML status page for a running
// client: items fetched, items processed, NODATA count, and how long the
// connection has been up. Like internal/statusapi on the server side, it
// carries no application semantics.
package dashboard

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

//go:embed templates/*
var templates embed.FS

// Stats is the JSON-serializable snapshot served at /api/stats.
type Stats struct {
	ItemsFetched   int64     `json:"itemsFetched"`
	ItemsProcessed int64     `json:"itemsProcessed"`
	NoDataCount    int64     `json:"nodataCount"`
	ConnectedSince time.Time `json:"connectedSince"`
	ClientID       uint      `json:"clientId"`
	ServerURL      string    `json:"serverUrl"`
}

// Dashboard accumulates counters a running client updates as it works and
// serves them as JSON plus a static HTML page.
type Dashboard struct {
	itemsFetched   atomic.Int64
	itemsProcessed atomic.Int64
	noDataCount    atomic.Int64

	mu             sync.RWMutex
	connectedSince time.Time

	clientID  uint
	serverURL string
}

// New creates a Dashboard for a client identified by clientID, talking to
// serverURL.
func New(clientID uint, serverURL string) *Dashboard {
	return &Dashboard{clientID: clientID, serverURL: serverURL}
}

// RecordFetch increments the fetched-item counter.
func (d *Dashboard) RecordFetch() { d.itemsFetched.Add(1) }

// RecordProcessed increments the processed-item counter.
func (d *Dashboard) RecordProcessed() { d.itemsProcessed.Add(1) }

// RecordNoData increments the NODATA counter.
func (d *Dashboard) RecordNoData() { d.noDataCount.Add(1) }

// MarkConnected records the time the current connection was established.
func (d *Dashboard) MarkConnected() {
	d.mu.Lock()
	d.connectedSince = time.Now()
	d.mu.Unlock()
}

// Stats returns a point-in-time snapshot of the counters.
func (d *Dashboard) Stats() Stats {
	d.mu.RLock()
	since := d.connectedSince
	d.mu.RUnlock()

	return Stats{
		ItemsFetched:   d.itemsFetched.Load(),
		ItemsProcessed: d.itemsProcessed.Load(),
		NoDataCount:    d.noDataCount.Load(),
		ConnectedSince: since,
		ClientID:       d.clientID,
		ServerURL:      d.serverURL,
	}
}

// ServeHTTP runs the dashboard's HTTP server until ctx is cancelled, then
// shuts it down gracefully.
func (d *Dashboard) ServeHTTP(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/stats", d.handleStats)

	staticFS, err := fs.Sub(templates, "templates")
	if err != nil {
		return fmt.Errorf("dashboard: sub filesystem: %w", err)
	}
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	mux.HandleFunc("/", d.handleIndex)

	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("[dashboard] listening on %s", addr)
	err = srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (d *Dashboard) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(d.Stats()); err != nil {
		log.Printf("[dashboard] encode stats: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func (d *Dashboard) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	data, err := templates.ReadFile("templates/index.html")
	if err != nil {
		log.Printf("[dashboard] read index.html: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data)
}
