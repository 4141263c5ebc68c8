// Package handler serves aggregated benchmark snapshots to the dashboard.
package handler

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/jellydator/ttlcache/v3"

	"github.com/meshbench/meshbench/pkg/bench/model"
	"github.com/meshbench/meshbench/pkg/bench/spec"
)

// Loader produces a fresh snapshot from the data directory. It is called
// once by the server at startup and again on every reload request.
type Loader func() (*model.Snapshot, error)

// Handler serves read-only views of the current snapshot. Responses are
// cached per endpoint until the cache TTL expires or a reload swaps the
// snapshot.
type Handler struct {
	load Loader

	mu       sync.RWMutex
	snapshot *model.Snapshot

	cache *ttlcache.Cache[string, []byte]

	upgrader websocket.Upgrader

	clientsMu sync.Mutex
	clients   map[*websocket.Conn]struct{}
}

// New returns a Handler serving snapshot, with load used for reloads.
func New(snapshot *model.Snapshot, load Loader, cacheTTL time.Duration) *Handler {
	cache := ttlcache.New(
		ttlcache.WithTTL[string, []byte](cacheTTL),
	)
	go cache.Start()
	return &Handler{
		load:     load,
		snapshot: snapshot,
		cache:    cache,
		upgrader: websocket.Upgrader{
			// Allow cross-origin resource sharing. The dashboard is
			// usually served from a different origin than this API.
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		clients: map[*websocket.Conn]struct{}{},
	}
}

// Register installs all dashboard endpoints on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc(spec.SnapshotPath, h.Snapshot)
	mux.HandleFunc(spec.BenchPath, h.Bench)
	mux.HandleFunc(spec.GeneralPath, h.General)
	mux.HandleFunc(spec.ComparisonPath, h.Comparison)
	mux.HandleFunc(spec.ReloadPath, h.Reload)
	mux.HandleFunc(spec.LivePath, h.Live)
}

func (h *Handler) current() *model.Snapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.snapshot
}

// Snapshot serves the full aggregated snapshot.
func (h *Handler) Snapshot(rw http.ResponseWriter, req *http.Request) {
	h.serveJSON(rw, spec.SnapshotPath, func(s *model.Snapshot) any { return s })
}

// Bench serves the per-VPN, per-profile, per-machine results.
func (h *Handler) Bench(rw http.ResponseWriter, req *http.Request) {
	h.serveJSON(rw, spec.BenchPath, func(s *model.Snapshot) any { return s.Bench })
}

// General serves the global connection-timing data. It responds with 404
// when no connection timings were collected.
func (h *Handler) General(rw http.ResponseWriter, req *http.Request) {
	if h.current().General == nil {
		rw.WriteHeader(http.StatusNotFound)
		return
	}
	h.serveJSON(rw, spec.GeneralPath, func(s *model.Snapshot) any { return s.General })
}

// Comparison serves the cross-VPN per-profile summary tables.
func (h *Handler) Comparison(rw http.ResponseWriter, req *http.Request) {
	h.serveJSON(rw, spec.ComparisonPath, func(s *model.Snapshot) any { return s.Comparison })
}

func (h *Handler) serveJSON(rw http.ResponseWriter, key string, view func(*model.Snapshot) any) {
	rw.Header().Set("Content-Type", "application/json")
	if item := h.cache.Get(key); item != nil {
		rw.Write(item.Value())
		return
	}
	body, err := json.Marshal(view(h.current()))
	if err != nil {
		log.Error("cannot marshal response", "key", key, "error", err)
		rw.WriteHeader(http.StatusInternalServerError)
		return
	}
	h.cache.Set(key, body, ttlcache.DefaultTTL)
	rw.Write(body)
}

// Reload re-runs aggregation from scratch and swaps in the new snapshot.
// Connected live clients are notified. Only POST is accepted.
func (h *Handler) Reload(rw http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		rw.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	snapshot, err := h.load()
	if err != nil {
		log.Error("reload failed", "error", err)
		rw.WriteHeader(http.StatusInternalServerError)
		return
	}

	h.mu.Lock()
	h.snapshot = snapshot
	h.mu.Unlock()
	h.cache.DeleteAll()

	h.broadcast(snapshot)

	rw.Header().Set("Content-Type", "application/json")
	json.NewEncoder(rw).Encode(liveNotice(snapshot))
}

// notice is the message pushed to live clients when a new snapshot is
// available.
type notice struct {
	ID          string    `json:"id"`
	GeneratedAt time.Time `json:"generatedAt"`
}

func liveNotice(s *model.Snapshot) notice {
	return notice{ID: s.ID, GeneratedAt: s.GeneratedAt}
}

// Live upgrades the connection to WebSocket and pushes a notice for the
// current snapshot and for every snapshot swapped in afterwards. The
// dashboard uses it to refetch without polling.
func (h *Handler) Live(rw http.ResponseWriter, req *http.Request) {
	conn, err := h.upgrader.Upgrade(rw, req, nil)
	if err != nil {
		log.Info("websocket upgrade failed", "source", req.RemoteAddr,
			"error", err)
		return
	}

	h.clientsMu.Lock()
	h.clients[conn] = struct{}{}
	h.clientsMu.Unlock()

	if err := conn.WriteJSON(liveNotice(h.current())); err != nil {
		h.drop(conn)
		return
	}

	// Reads are only used to detect the peer going away.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.drop(conn)
				return
			}
		}
	}()
}

func (h *Handler) broadcast(s *model.Snapshot) {
	h.clientsMu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		conns = append(conns, conn)
	}
	h.clientsMu.Unlock()

	for _, conn := range conns {
		if err := conn.WriteJSON(liveNotice(s)); err != nil {
			h.drop(conn)
		}
	}
}

func (h *Handler) drop(conn *websocket.Conn) {
	h.clientsMu.Lock()
	_, ok := h.clients[conn]
	delete(h.clients, conn)
	h.clientsMu.Unlock()
	if ok {
		conn.Close()
	}
}

// Stop stops the cache janitor and closes all live connections.
func (h *Handler) Stop() {
	h.cache.Stop()
	h.clientsMu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		conns = append(conns, conn)
	}
	h.clients = map[*websocket.Conn]struct{}{}
	h.clientsMu.Unlock()
	for _, conn := range conns {
		conn.Close()
	}
}
