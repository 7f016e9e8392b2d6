package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"todo_backend/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func newServer(t *testing.T, hub *Hub, origins []string) string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws", HandleWS(hub, origins))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.Count() != n {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d clients, have %d", n, hub.Count())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestSubscriberReceivesEvents(t *testing.T) {
	hub := NewHub()
	defer hub.Close()
	url := newServer(t, hub, nil)

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(3 * time.Second))

	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read ready: %v", err)
	}
	if string(msg) != `{"type":"ready"}` {
		t.Fatalf("first frame = %s", msg)
	}

	waitForClients(t, hub, 1)
	hub.Publish(domain.Event{Type: domain.EventTodoCreated, ID: 7})

	_, msg, err = conn.ReadMessage()
	if err != nil {
		t.Fatalf("read event: %v", err)
	}
	var ev domain.Event
	if err := json.Unmarshal(msg, &ev); err != nil {
		t.Fatalf("decode event: %v", err)
	}
	if ev.Type != domain.EventTodoCreated || ev.ID != 7 {
		t.Fatalf("unexpected event: %+v", ev)
	}

	conn.Close()
	waitForClients(t, hub, 0)
}

func TestRejectsForeignOrigin(t *testing.T) {
	hub := NewHub()
	defer hub.Close()
	url := newServer(t, hub, []string{"http://localhost:3000"})

	h := http.Header{}
	h.Set("Origin", "http://evil.example")
	_, resp, err := websocket.DefaultDialer.Dial(url, h)
	if err == nil {
		t.Fatalf("expected handshake failure")
	}
	if resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %+v", resp)
	}

	h.Set("Origin", "http://localhost:3000")
	conn, _, err := websocket.DefaultDialer.Dial(url, h)
	if err != nil {
		t.Fatalf("allowed origin rejected: %v", err)
	}
	conn.Close()
}

func TestPublishWithoutClients(t *testing.T) {
	hub := NewHub()
	hub.Publish(domain.Event{Type: domain.EventTodoDeleted, ID: 1})
	hub.Close()
	if hub.Register(&Client{Send: make(chan []byte, 1)}) {
		t.Fatalf("closed hub accepted a client")
	}
}
