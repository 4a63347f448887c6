package server

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/TFMV/trustgraph/config"
	"github.com/TFMV/trustgraph/models"
	"github.com/TFMV/trustgraph/render"
	"github.com/TFMV/trustgraph/widget"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 90 * time.Second
	pingPeriod = 54 * time.Second

	// driftPeriod paces the idle wander when drift is enabled.
	driftPeriod = 100 * time.Millisecond
)

// pointerEvent is the wire shape of a shell-forwarded input event.
type pointerEvent struct {
	Type string  `json:"type"` // "down", "move", "up", "leave"
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Session pairs one websocket connection with its own widget instance. The
// read loop feeds pointer events into the interaction controller; produced
// frames go out through a buffered send channel so a slow client drops
// frames instead of blocking the simulation.
type Session struct {
	ID     string
	conn   *websocket.Conn
	cfg    *config.Config
	log    *zap.Logger
	widget *widget.Widget

	send      chan []byte
	closeOnce sync.Once
	closed    chan struct{}
}

func newSession(id string, conn *websocket.Conn, cfg *config.Config, log *zap.Logger) *Session {
	opts := []widget.Option{
		widget.WithSize(cfg.Width, cfg.Height),
		widget.WithLogger(log),
	}
	if cfg.Drift > 0 {
		opts = append(opts, widget.WithDrift(cfg.Drift))
	}
	return &Session{
		ID:     id,
		conn:   conn,
		cfg:    cfg,
		log:    log,
		widget: widget.New("trust-graph", opts...),
		send:   make(chan []byte, 64),
		closed: make(chan struct{}),
	}
}

// Run loads the data, starts the settle animation, and blocks until the
// connection drops.
func (s *Session) Run(nodes []models.NodeRecord, links []models.LinkRecord) {
	defer s.Close()

	s.widget.OnFrame(s.pushFrame)
	s.widget.SetData(nodes, links)
	s.widget.StartSimulation(s.cfg.Iterations)

	go s.writer()
	if s.cfg.Drift > 0 {
		go s.driftLoop()
	}
	s.reader()

	s.widget.StopSimulation()
}

// Reload swaps in a new record set and re-runs the settle animation. Called
// when the watched data file changes.
func (s *Session) Reload(nodes []models.NodeRecord, links []models.LinkRecord) {
	s.widget.SetData(nodes, links)
	s.widget.StartSimulation(s.cfg.Iterations)
}

// Close tears the session down once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.closed)
		s.conn.Close()
	})
}

func (s *Session) reader() {
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	ctrl := s.widget.Controller()
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warn("unexpected close", zap.Error(err))
			}
			return
		}

		var ev pointerEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			s.log.Debug("bad pointer event", zap.Error(err))
			continue
		}

		switch ev.Type {
		case "down":
			ctrl.PointerDown(ev.X, ev.Y)
		case "move":
			ctrl.PointerMove(ev.X, ev.Y)
		case "up":
			ctrl.PointerUp()
		case "leave":
			ctrl.PointerLeave()
		}
	}
}

func (s *Session) writer() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-s.closed:
			return
		}
	}
}

// driftLoop keeps idle diagrams faintly alive between simulation runs.
func (s *Session) driftLoop() {
	ticker := time.NewTicker(driftPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if !s.widget.Simulating() {
				s.widget.DriftStep()
			}
		case <-s.closed:
			return
		}
	}
}

func (s *Session) pushFrame(frame render.Frame) {
	data, err := json.Marshal(frame)
	if err != nil {
		s.log.Error("frame marshal failed", zap.Error(err))
		return
	}
	select {
	case s.send <- data:
	default:
		// Client is behind; drop the frame. The next one supersedes it.
	}
}
