package websocket

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	ws "github.com/coder/websocket"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockClient creates a Client with a send channel but no real connection.
func mockClient(hub *Hub, listID string) *Client {
	return &Client{
		hub:    hub,
		send:   make(chan []byte, sendBufferSize),
		listID: listID,
	}
}

func receive(t *testing.T, c *Client) Message {
	t.Helper()
	select {
	case data := <-c.send:
		var got Message
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		return got
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timeout waiting for message")
	}
	return Message{}
}

func TestRegisterUnregister(t *testing.T) {
	hub := NewHub(testLogger())
	c1 := mockClient(hub, "")
	c2 := mockClient(hub, "")

	hub.Register(c1)
	hub.Register(c2)
	if got := hub.ClientCount(); got != 2 {
		t.Fatalf("expected 2 clients, got %d", got)
	}

	hub.Unregister(c1)
	hub.Unregister(c1)
	if got := hub.ClientCount(); got != 1 {
		t.Fatalf("expected 1 client after unregister, got %d", got)
	}
}

func TestBroadcast(t *testing.T) {
	hub := NewHub(testLogger())
	c1 := mockClient(hub, "")
	c2 := mockClient(hub, "")
	hub.Register(c1)
	hub.Register(c2)

	n := hub.Broadcast(NewMessage(EntityItem, ActionToggled, "i42").ForList("L1"))
	if n != 2 {
		t.Fatalf("delivered = %d, want 2", n)
	}
	for _, c := range []*Client{c1, c2} {
		got := receive(t, c)
		if got.Type != "item_toggled" {
			t.Errorf("type = %s, want item_toggled", got.Type)
		}
		if got.ID != "i42" || got.ListID != "L1" {
			t.Errorf("got %+v", got)
		}
	}
}

func TestBroadcastScopedToList(t *testing.T) {
	hub := NewHub(testLogger())
	watching := mockClient(hub, "L1")
	other := mockClient(hub, "L2")
	index := mockClient(hub, "")
	for _, c := range []*Client{watching, other, index} {
		hub.Register(c)
	}

	if n := hub.Broadcast(NewMessage(EntityShoppingList, ActionUpdated, "L1").ForList("L1")); n != 2 {
		t.Fatalf("delivered = %d, want 2", n)
	}
	receive(t, watching)
	receive(t, index)
	select {
	case <-other.send:
		t.Fatal("client watching L2 got an L1 message")
	default:
	}

	if n := hub.Broadcast(NewMessage(EntitySession, ActionLogout, "")); n != 3 {
		t.Fatalf("unscoped delivered = %d, want 3", n)
	}
}

func TestBroadcastFullBuffer(t *testing.T) {
	hub := NewHub(testLogger())
	c := mockClient(hub, "")
	hub.Register(c)

	for i := 0; i < sendBufferSize; i++ {
		hub.Broadcast(NewMessage(EntityItem, ActionUpdated, "fill"))
	}
	if n := hub.Broadcast(NewMessage(EntityItem, ActionUpdated, "dropped")); n != 0 {
		t.Errorf("delivered to full buffer = %d", n)
	}
	if got := len(c.send); got != sendBufferSize {
		t.Errorf("buffered %d messages, want %d", got, sendBufferSize)
	}
}

func TestConcurrentAccess(t *testing.T) {
	hub := NewHub(testLogger())
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := mockClient(hub, "")
			hub.Register(c)
			hub.Broadcast(NewMessage(EntityCategory, ActionCreated, ""))
			hub.Unregister(c)
		}()
	}
	wg.Wait()

	if got := hub.ClientCount(); got != 0 {
		t.Errorf("expected 0 clients after concurrent test, got %d", got)
	}
}

func TestHandleWebSocket(t *testing.T) {
	hub := NewHub(testLogger())
	srv := httptest.NewServer(HandleWebSocket(hub, testLogger(), nil))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	conn, _, err := ws.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http")+"?list=L1", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.CloseNow()

	deadline := time.Now().Add(time.Second)
	for hub.ClientCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	hub.Broadcast(NewMessage(EntityItem, ActionCreated, "i1").ForList("L1"))

	_, data, err := conn.Read(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var got Message
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Type != "item_created" || got.ListID != "L1" {
		t.Errorf("got %+v", got)
	}
}
