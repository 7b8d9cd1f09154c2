// Package viewer is an optional HTTP+WebSocket sidecar that relays
// already-computed interpreter checkpoints to connected browsers for live
// debugging. It never participates in the interpreter's own step loop —
// it only republishes what OnStep has already produced — so it does not
// touch the spec's "no streaming output" non-goal on the RNA artifact
// itself (see DESIGN.md).
//
// Publish is non-blocking: it hands the record to a bounded channel
// drained by a dedicated broadcast goroutine. If that channel is full
// (a slow or wedged set of WebSocket clients), the checkpoint is dropped
// and a counter is incremented rather than Publish blocking the driver
// loop that called it; the counter is visible through the "/status"
// endpoint this package also serves.
//
// Grounded on texere's pkg/transport/websocket.go (the Upgrader
// configuration and per-connection write loop), cmd/main.go (wiring a
// single http.ServeMux with graceful shutdown and a JSON status
// endpoint), and pkg/rope/cow_optimization.go (sync/atomic counters) for
// the drop counter.
package viewer

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"

	"github.com/dnarope/endo/internal/checkpoint"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// queueSize bounds how many published-but-not-yet-broadcast checkpoints
// Server will hold before it starts dropping them.
const queueSize = 64

// Server broadcasts checkpoint.Record values to every connected
// WebSocket client as they are published.
type Server struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}

	records chan checkpoint.Record
	dropped uint64 // atomic; incremented when records is full

	closeOnce sync.Once
	done      chan struct{}
}

// NewServer returns a Server with no connected clients and starts its
// background broadcast loop.
func NewServer() *Server {
	s := &Server{
		clients: make(map[*websocket.Conn]struct{}),
		records: make(chan checkpoint.Record, queueSize),
		done:    make(chan struct{}),
	}
	go s.broadcastLoop()
	return s
}

// RegisterHandler mounts the WebSocket upgrade endpoint onto mux at
// "/checkpoints" and the drop-counter/client-count status endpoint at
// "/status".
func (s *Server) RegisterHandler(mux *http.ServeMux) {
	mux.HandleFunc("/checkpoints", s.handleUpgrade)
	mux.HandleFunc("/status", s.handleStatus)
}

// Status is the JSON body served at "/status".
type Status struct {
	Clients int    `json:"clients"`
	Dropped uint64 `json:"dropped"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	clients := len(s.clients)
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Status{
		Clients: clients,
		Dropped: atomic.LoadUint64(&s.dropped),
	})
}

func (s *Server) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("viewer: upgrade failed: %v", err)
		return
	}
	s.mu.Lock()
	s.clients[conn] = struct{}{}
	s.mu.Unlock()

	go s.drainClient(conn)
}

// drainClient discards any client-sent frames (this endpoint is
// publish-only) until the connection closes, then deregisters it.
func (s *Server) drainClient(conn *websocket.Conn) {
	defer func() {
		s.mu.Lock()
		delete(s.clients, conn)
		s.mu.Unlock()
		conn.Close()
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Publish hands rec to the broadcast loop without blocking. If the queue
// is already full, rec is dropped and the drop counter (visible at
// "/status") is incremented; the driver loop that called Publish never
// waits on a slow or wedged client.
func (s *Server) Publish(rec checkpoint.Record) {
	select {
	case s.records <- rec:
	default:
		atomic.AddUint64(&s.dropped, 1)
	}
}

// broadcastLoop drains s.records and writes each record to every
// currently connected client, dropping the connection on any write error.
// It runs for the Server's whole lifetime, until Close is called.
func (s *Server) broadcastLoop() {
	for {
		select {
		case rec := <-s.records:
			s.broadcast(rec)
		case <-s.done:
			return
		}
	}
}

func (s *Server) broadcast(rec checkpoint.Record) {
	body, err := json.Marshal(rec)
	if err != nil {
		log.Printf("viewer: marshaling record: %v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.clients {
		if err := conn.WriteMessage(websocket.TextMessage, body); err != nil {
			delete(s.clients, conn)
			conn.Close()
		}
	}
}

// Close stops the broadcast loop and closes every connected client.
func (s *Server) Close() {
	s.closeOnce.Do(func() { close(s.done) })

	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.clients {
		conn.Close()
		delete(s.clients, conn)
	}
}
