package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func waitClients(t *testing.T, h *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if h.Count() == n {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("expected %d clients, got %d", n, h.Count())
}

func TestHub_BroadcastReachesConnectedClients(t *testing.T) {
	h := NewHub(nil, nil)
	srv := httptest.NewServer(h)
	defer srv.Close()
	defer h.Close()

	a := dial(t, srv)
	defer a.Close()
	b := dial(t, srv)
	defer b.Close()
	waitClients(t, h, 2)

	n := h.Broadcast(Message{Event: EventFeedingReminder, Data: "Don't forget to feed your pet!"})
	if n != 2 {
		t.Fatalf("expected delivery to 2 clients, got %d", n)
	}

	for _, c := range []*websocket.Conn{a, b} {
		_ = c.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, raw, err := c.ReadMessage()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if msg.Event != EventFeedingReminder || msg.Data != "Don't forget to feed your pet!" {
			t.Fatalf("unexpected message: %+v", msg)
		}
	}
}

func TestHub_DisconnectedClientIsForgotten(t *testing.T) {
	h := NewHub(nil, nil)
	srv := httptest.NewServer(h)
	defer srv.Close()

	c := dial(t, srv)
	waitClients(t, h, 1)

	_ = c.Close()
	waitClients(t, h, 0)

	if n := h.Broadcast(Message{Event: "x"}); n != 0 {
		t.Fatalf("expected no deliveries, got %d", n)
	}
}

func TestHub_RejectsForeignOrigin(t *testing.T) {
	h := NewHub([]string{"http://localhost:3000"}, nil)
	srv := httptest.NewServer(h)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	hdr := http.Header{"Origin": []string{"http://evil.test"}}
	if _, _, err := websocket.DefaultDialer.Dial(url, hdr); err == nil {
		t.Fatalf("expected handshake to fail for foreign origin")
	}

	hdr.Set("Origin", "http://localhost:3000")
	conn, _, err := websocket.DefaultDialer.Dial(url, hdr)
	if err != nil {
		t.Fatalf("expected allowed origin to connect: %v", err)
	}
	conn.Close()
}

type recordingPublisher struct {
	mu   sync.Mutex
	msgs []Message
}

func (p *recordingPublisher) Publish(_ context.Context, msg Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs = append(p.msgs, msg)
	return nil
}

func TestScheduler_FirePublishesReminder(t *testing.T) {
	pub := &recordingPublisher{}
	s, err := NewScheduler("0 8 * * *", "Don't forget to feed your pet!", pub, nil)
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}

	s.fire()

	if len(pub.msgs) != 1 {
		t.Fatalf("expected 1 publish, got %d", len(pub.msgs))
	}
	if pub.msgs[0].Event != EventFeedingReminder || pub.msgs[0].Data != "Don't forget to feed your pet!" {
		t.Fatalf("unexpected message: %+v", pub.msgs[0])
	}
}

func TestScheduler_InvalidSpec(t *testing.T) {
	if _, err := NewScheduler("every morning", "x", &recordingPublisher{}, nil); err == nil {
		t.Fatalf("expected error for invalid cron spec")
	}
}

func TestScheduler_RunStopsOnCancel(t *testing.T) {
	s, err := NewScheduler("0 8 * * *", "x", &recordingPublisher{}, nil)
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("scheduler did not stop")
	}
}

func TestLocalPublisher_BroadcastsThroughHub(t *testing.T) {
	h := NewHub(nil, nil)
	srv := httptest.NewServer(h)
	defer srv.Close()
	defer h.Close()

	c := dial(t, srv)
	defer c.Close()
	waitClients(t, h, 1)

	if err := NewLocalPublisher(h).Publish(context.Background(), Message{Event: "ping", Data: 1}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	_ = c.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, raw, err := c.ReadMessage(); err != nil || !strings.Contains(string(raw), `"event":"ping"`) {
		t.Fatalf("unexpected read %q err=%v", string(raw), err)
	}
}
