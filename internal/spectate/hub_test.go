package spectate

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

type frame struct {
	Score int     `json:"score"`
	X     float64 `json:"x"`
}

func startHub(t *testing.T) (*Hub, string) {
	t.Helper()
	hub := NewHub(log.New(io.Discard))
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	srv := httptest.NewServer(hub.Mux())
	t.Cleanup(srv.Close)
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.Clients() != n {
		if time.Now().After(deadline) {
			t.Fatalf("clients = %d, want %d", hub.Clients(), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func readFrame(t *testing.T, conn *websocket.Conn) frame {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage() failed: %v", err)
	}
	var f frame
	if err := json.Unmarshal(data, &f); err != nil {
		t.Fatalf("bad JSON %q: %v", data, err)
	}
	return f
}

func TestHubBroadcast(t *testing.T) {
	hub, url := startHub(t)
	a := dial(t, url)
	b := dial(t, url)
	waitClients(t, hub, 2)

	hub.Publish(frame{Score: 42, X: 1.5})

	for _, conn := range []*websocket.Conn{a, b} {
		if got := readFrame(t, conn); got.Score != 42 || got.X != 1.5 {
			t.Errorf("frame = %+v, want {42 1.5}", got)
		}
	}
}

func TestHubSendsLastSnapshotOnConnect(t *testing.T) {
	hub, url := startHub(t)
	first := dial(t, url)
	waitClients(t, hub, 1)

	hub.Publish(frame{Score: 7})
	readFrame(t, first)

	late := dial(t, url)
	if got := readFrame(t, late); got.Score != 7 {
		t.Errorf("late viewer got %+v, want score 7", got)
	}
}

func TestHubUnregister(t *testing.T) {
	hub, url := startHub(t)
	conn := dial(t, url)
	waitClients(t, hub, 1)

	conn.Close()
	waitClients(t, hub, 0)
}

func TestPublishNeverBlocks(t *testing.T) {
	hub := NewHub(log.New(io.Discard))

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			hub.Publish(frame{Score: i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked without a running hub")
	}
}

func TestPublishUnencodable(t *testing.T) {
	hub := NewHub(log.New(io.Discard))
	hub.Publish(make(chan int))
	if len(hub.broadcast) != 0 {
		t.Error("unencodable value should not be queued")
	}
}

func TestHubRunTwiceStopsCleanly(t *testing.T) {
	hub := NewHub(log.New(io.Discard))
	ctx, cancel := context.WithCancel(context.Background())

	errc := make(chan error, 1)
	go func() { errc <- hub.Serve(ctx, "127.0.0.1:0") }()
	second := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(second)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-hub.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("hub did not stop")
	}
	select {
	case <-second:
	case <-time.After(2 * time.Second):
		t.Fatal("second Run did not return")
	}
	select {
	case err := <-errc:
		if err != nil {
			t.Errorf("Serve() = %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Serve did not return")
	}
}
