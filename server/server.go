// Package server hosts the browser surface for the widget: a thin HTML
// shell, a websocket per session carrying pointer events in and rendered
// frames out, and a small JSON API for graph and node detail queries.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/TFMV/trustgraph/config"
	"github.com/TFMV/trustgraph/ingest"
	"github.com/TFMV/trustgraph/models"
)

// Server owns the shared record set and the per-connection sessions, each of
// which runs its own widget instance.
type Server struct {
	cfg      *config.Config
	log      *zap.Logger
	router   *mux.Router
	upgrader websocket.Upgrader

	mu       sync.RWMutex
	nodes    []models.NodeRecord
	links    []models.LinkRecord
	sessions map[string]*Session
}

// New builds a server and loads the configured data file, if any.
func New(cfg *config.Config, log *zap.Logger) (*Server, error) {
	s := &Server{
		cfg: cfg,
		log: log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		sessions: make(map[string]*Session),
	}

	if cfg.Data != "" {
		nodes, links, err := ingest.LoadFile(cfg.Data)
		if err != nil {
			return nil, err
		}
		s.nodes, s.links = nodes, links
		log.Info("data file loaded",
			zap.String("path", cfg.Data),
			zap.Int("nodes", len(nodes)),
			zap.Int("links", len(links)))
	}

	s.router = mux.NewRouter()
	s.router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	s.router.HandleFunc("/ws", s.handleWebSocket)
	s.router.HandleFunc("/api/graph", s.handleGraph).Methods(http.MethodGet)
	s.router.HandleFunc("/api/node/{id}", s.handleNodeDetail).Methods(http.MethodGet)
	return s, nil
}

// Start runs the HTTP server, optionally watching the data file for changes.
func (s *Server) Start() error {
	if s.cfg.Watch && s.cfg.Data != "" {
		stop, err := s.watchData()
		if err != nil {
			return err
		}
		defer stop()
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Port),
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	s.log.Info("listening", zap.Int("port", s.cfg.Port))
	return srv.ListenAndServe()
}

// Records returns the current shared record set.
func (s *Server) Records() ([]models.NodeRecord, []models.LinkRecord) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nodes, s.links
}

// SetRecords replaces the shared record set and reloads every live session.
func (s *Server) SetRecords(nodes []models.NodeRecord, links []models.LinkRecord) {
	s.mu.Lock()
	s.nodes, s.links = nodes, links
	live := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		live = append(live, sess)
	}
	s.mu.Unlock()

	for _, sess := range live {
		sess.Reload(nodes, links)
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("session")
	if id == "" {
		http.Error(w, "session ID required", http.StatusBadRequest)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	nodes, links := s.Records()
	sess := newSession(id, conn, s.cfg, s.log.With(zap.String("session", id)))

	s.mu.Lock()
	if prev, ok := s.sessions[id]; ok {
		prev.Close()
	}
	s.sessions[id] = sess
	s.mu.Unlock()

	go func() {
		sess.Run(nodes, links)
		s.mu.Lock()
		if s.sessions[id] == sess {
			delete(s.sessions, id)
		}
		s.mu.Unlock()
	}()
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	nodes, links := s.Records()
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(map[string]interface{}{
		"nodes": nodes,
		"links": links,
	})
}

func (s *Server) handleNodeDetail(w http.ResponseWriter, r *http.Request) {
	nodeID := mux.Vars(r)["id"]
	sessionID := r.URL.Query().Get("session")

	s.mu.RLock()
	sess := s.sessions[sessionID]
	s.mu.RUnlock()
	if sess == nil {
		http.Error(w, "unknown session", http.StatusNotFound)
		return
	}

	detail, err := sess.widget.NodeDetail(nodeID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(detail)
}
