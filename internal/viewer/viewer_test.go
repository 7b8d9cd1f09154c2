package viewer

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/dnarope/endo/internal/checkpoint"
)

func TestPublishWithNoClientsIsANoop(t *testing.T) {
	s := NewServer()
	defer s.Close()
	require.NotPanics(t, func() {
		s.Publish(checkpoint.Record{RunID: "r", Step: 1})
	})
}

func TestPublishBroadcastsToConnectedClient(t *testing.T) {
	s := NewServer()
	defer s.Close()
	mux := http.NewServeMux()
	s.RegisterHandler(mux)
	srv := httptest.NewServer(mux)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/checkpoints"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Give the server's upgrade handler time to register the client.
	time.Sleep(20 * time.Millisecond)

	s.Publish(checkpoint.Record{RunID: "run-x", Step: 7, SequenceText: "ICFP"})

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	require.Contains(t, string(msg), "run-x")
	require.Contains(t, string(msg), "ICFP")
}

// Publish never blocks: once the queue is full, further records are
// dropped and counted rather than the caller stalling. Built directly
// (bypassing NewServer, so no broadcastLoop goroutine is draining the
// channel concurrently) to make the full-queue condition deterministic.
func TestPublishDropsOnceQueueIsFull(t *testing.T) {
	s := &Server{
		clients: make(map[*websocket.Conn]struct{}),
		records: make(chan checkpoint.Record, 1),
		done:    make(chan struct{}),
	}
	s.records <- checkpoint.Record{RunID: "r", Step: 0} // fills the only slot

	s.Publish(checkpoint.Record{RunID: "r", Step: 1})
	s.Publish(checkpoint.Record{RunID: "r", Step: 2})

	require.Equal(t, uint64(2), atomic.LoadUint64(&s.dropped))
}

func TestStatusEndpointReportsClientsAndDropped(t *testing.T) {
	s := &Server{
		clients: make(map[*websocket.Conn]struct{}),
		records: make(chan checkpoint.Record, 1),
		done:    make(chan struct{}),
	}
	atomic.StoreUint64(&s.dropped, 3)

	mux := http.NewServeMux()
	s.RegisterHandler(mux)
	srv := httptest.NewServer(mux)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/status")
	require.NoError(t, err)
	defer resp.Body.Close()

	var st Status
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&st))
	require.Equal(t, 0, st.Clients)
	require.Equal(t, uint64(3), st.Dropped)
}
