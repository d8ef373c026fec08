package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Server is the HTTP+WebSocket front end over a DatasetManager: build a
// dataset from a bit or symbol sequence, then query it by rank, symbol,
// or prefix_rank, optionally watching the results stream over a
// WebSocket subscription.
type Server struct {
	datasets    *DatasetManager
	broadcaster *Broadcaster
	mux         *http.ServeMux
	server      *http.Server
	port        int
}

// NewServer creates a Server listening on port once Start is called.
func NewServer(port int) *Server {
	broadcaster := NewBroadcaster()
	s := &Server{
		datasets:    NewDatasetManager(broadcaster),
		broadcaster: broadcaster,
		mux:         http.NewServeMux(),
		port:        port,
	}
	s.registerRoutes()
	return s
}

// Handler returns the HTTP handler with CORS middleware applied.
func (s *Server) Handler() http.Handler { return s.corsMiddleware(s.mux) }

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/api/v1/ws", s.handleWebSocket)
	s.mux.HandleFunc("/api/v1/datasets", s.handleDatasets)
	s.mux.HandleFunc("/api/v1/datasets/", s.handleDatasetRoute)
}

// Start runs the HTTP server until it errors or Shutdown is called.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         fmt.Sprintf("127.0.0.1:%d", s.port),
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	log.Printf("rank query server starting on http://127.0.0.1:%d", s.port)
	return s.server.ListenAndServe()
}

// Shutdown stops the broadcaster's dispatch loop and gracefully stops the
// HTTP server. Open WebSocket connections are not closed by it.
func (s *Server) Shutdown(ctx context.Context) error {
	s.broadcaster.Close()
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if isAllowedOrigin(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// isAllowedOrigin restricts cross-origin requests to localhost, matching
// the demo server's single-machine threat model.
func isAllowedOrigin(origin string) bool {
	if origin == "" || strings.HasPrefix(origin, "file://") {
		return true
	}
	for _, prefix := range []string{"http://localhost", "https://localhost", "http://127.0.0.1", "https://127.0.0.1"} {
		if strings.HasPrefix(origin, prefix) {
			return true
		}
	}
	return false
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"datasets": s.datasets.Count(),
		"time":     time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleDatasets(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCreateDataset(w, r)
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]interface{}{"datasets": s.datasets.List()})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleCreateDataset(w http.ResponseWriter, r *http.Request) {
	var req DatasetCreateRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	d, err := s.datasets.Create(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, DatasetCreateResponse{
		DatasetID: d.ID,
		Layout:    d.Layout,
		CreatedAt: d.CreatedAt,
		Size:      d.size(),
		SizeHuman: humanize.Comma(int64(d.size())) + " symbols",
	})
}

// handleDatasetRoute dispatches /api/v1/datasets/{id}[/rank|/symbol|/prefixrank|/allranks].
func (s *Server) handleDatasetRoute(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/datasets/")
	parts := strings.Split(path, "/")
	if len(parts) == 0 || parts[0] == "" {
		writeError(w, http.StatusBadRequest, "dataset id required")
		return
	}
	id := parts[0]

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			s.handleGetDataset(w, r, id)
		case http.MethodDelete:
			s.handleDeleteDataset(w, r, id)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	switch parts[1] {
	case "rank":
		s.handleRankQuery(w, r, id)
	case "symbol":
		s.handleSymbolQuery(w, r, id)
	case "prefixrank":
		s.handlePrefixRankQuery(w, r, id)
	case "allranks":
		s.handleAllRanksQuery(w, r, id)
	default:
		writeError(w, http.StatusNotFound, "unknown action: "+parts[1])
	}
}

func (s *Server) handleGetDataset(w http.ResponseWriter, r *http.Request, id string) {
	d, err := s.datasets.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, DatasetStatusResponse{
		DatasetID: d.ID, Layout: d.Layout, CreatedAt: d.CreatedAt, Size: d.size(),
	})
}

func (s *Server) handleDeleteDataset(w http.ResponseWriter, r *http.Request, id string) {
	if err := s.datasets.Delete(id); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRankQuery(w http.ResponseWriter, r *http.Request, id string) {
	d, err := s.datasets.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	i, err := parseUintParam(r, "i")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var value uint64
	if d.Bits != nil {
		value = d.Bits.Rank(i)
	} else {
		c, err := parseSymbolParam(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		value = d.Str.Rank(i, c)
	}

	s.broadcaster.Publish(BroadcastEvent{Type: EventTypeQuery, DatasetID: id, Data: map[string]interface{}{"op": "rank", "i": i, "value": value}})
	writeJSON(w, http.StatusOK, RankQueryResponse{Index: i, Value: value})
}

func (s *Server) handlePrefixRankQuery(w http.ResponseWriter, r *http.Request, id string) {
	d, err := s.datasets.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if d.Str == nil {
		writeError(w, http.StatusBadRequest, "prefix_rank requires a Sigma-ary string dataset")
		return
	}
	i, err := parseUintParam(r, "i")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	c, err := parseSymbolParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	value := d.Str.PrefixRank(i, c)
	s.broadcaster.Publish(BroadcastEvent{Type: EventTypeQuery, DatasetID: id, Data: map[string]interface{}{"op": "prefix_rank", "i": i, "value": value}})
	writeJSON(w, http.StatusOK, RankQueryResponse{Index: i, Value: value})
}

func (s *Server) handleAllRanksQuery(w http.ResponseWriter, r *http.Request, id string) {
	d, err := s.datasets.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if d.Str == nil {
		writeError(w, http.StatusBadRequest, "all_ranks requires a Sigma-ary string dataset")
		return
	}
	i, err := parseUintParam(r, "i")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	ranks, prefix := d.Str.AllRanksAndPrefixRanks(i)
	writeJSON(w, http.StatusOK, AllRanksQueryResponse{Index: i, Ranks: ranks, Prefix: prefix})
}

func (s *Server) handleSymbolQuery(w http.ResponseWriter, r *http.Request, id string) {
	d, err := s.datasets.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	i, err := parseUintParam(r, "i")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := SymbolQueryResponse{Index: i}
	var value interface{}
	if d.Bits != nil {
		b := d.Bits.Symbol(i)
		resp.Bit = &b
		value = b
	} else {
		v := d.Str.Symbol(i)
		resp.Value = &v
		value = v
	}
	s.broadcaster.Publish(BroadcastEvent{Type: EventTypeQuery, DatasetID: id, Data: map[string]interface{}{"op": "symbol", "i": i, "value": value}})
	writeJSON(w, http.StatusOK, resp)
}

func parseUintParam(r *http.Request, name string) (uint64, error) {
	raw := r.URL.Query().Get(name)
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s parameter: %q", name, raw)
	}
	return v, nil
}

func parseSymbolParam(r *http.Request) (uint32, error) {
	raw := r.URL.Query().Get("c")
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid c parameter: %q", raw)
	}
	return uint32(v), nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("error encoding JSON: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: http.StatusText(status), Message: message, Code: status})
}

func readJSON(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 4*1024*1024))
	return decoder.Decode(v)
}
