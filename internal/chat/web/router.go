// Package web exposes chat server over HTTP: read-only admin API and WebSocket gateway.
//
// WebSocket clients join the same chat as TCP clients. Every text or binary
// WebSocket message is a chat message, server messages are sent as text messages.
package web

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/wtask/framechat/internal/chat"
	"github.com/wtask/framechat/internal/chat/history"
)

// DefaultHistoryLimit - number of history entries returned when limit is not specified.
const DefaultHistoryLimit = 50

type handlers struct {
	server   *chat.Server
	logger   chat.Logger
	upgrader websocket.Upgrader
}

// NewRouter - builds HTTP routes over chat server. Logger may be nil.
//
//	GET /api/users   - all clients known by registry
//	GET /api/stats   - number of registered and connected clients
//	GET /api/history - latest public lines, ?limit=N
//	GET /ws          - WebSocket chat endpoint
func NewRouter(server *chat.Server, logger chat.Logger) *mux.Router {
	h := &handlers{
		server: server,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/users", h.users).Methods(http.MethodGet)
	api.HandleFunc("/stats", h.stats).Methods(http.MethodGet)
	api.HandleFunc("/history", h.history).Methods(http.MethodGet)
	r.HandleFunc("/ws", h.websocket).Methods(http.MethodGet)
	return r
}

func (h *handlers) log(v ...interface{}) {
	if h.logger == nil {
		return
	}
	h.logger.Println(v...)
}

func (h *handlers) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log("ERR", "Can't encode response:", err)
	}
}

func (h *handlers) users(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.server.Clients().Snapshot())
}

func (h *handlers) stats(w http.ResponseWriter, r *http.Request) {
	clients := h.server.Clients()
	h.writeJSON(w, http.StatusOK, map[string]int{
		"clients":   clients.Count(),
		"connected": len(clients.Connected()),
	})
}

func (h *handlers) history(w http.ResponseWriter, r *http.Request) {
	limit := DefaultHistoryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid limit"})
			return
		}
		limit = n
	}
	entries := []history.Entry{}
	if hist := h.server.History(); hist != nil {
		entries = hist.Tail(limit)
	}
	h.writeJSON(w, http.StatusOK, entries)
}

func (h *handlers) websocket(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// upgrader has already replied with HTTP error
		h.log("ERR", "WebSocket upgrade failed:", err)
		return
	}
	read, write := h.server.Timeouts()
	h.server.Handle(newTransport(ws, h.server.MaxFrameSize(), read, write))
}
