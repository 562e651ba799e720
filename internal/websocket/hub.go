package websocket

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
)

const (
	EntityShoppingList = "shopping_list"
	EntityItem         = "item"
	EntityCategory     = "category"
	EntityProduct      = "product"
	EntitySession      = "session"
	EntityPreferences  = "preferences"
)

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
	ActionToggled = "toggled"
	ActionClosed  = "closed"
	ActionOpened  = "reopened"
	ActionLogin   = "login"
	ActionLogout  = "logout"
)

// Message tells connected screens that something changed and should be
// refetched. It never carries the changed state itself.
type Message struct {
	Type   string `json:"type"`
	Entity string `json:"entity"`
	Action string `json:"action"`
	ID     string `json:"id,omitempty"`
	// ListID scopes item and list messages to screens watching that list.
	ListID string `json:"listId,omitempty"`
}

func NewMessage(entity, action, id string) Message {
	return Message{
		Type:   fmt.Sprintf("%s_%s", entity, action),
		Entity: entity,
		Action: action,
		ID:     id,
	}
}

// ForList scopes the message to one list.
func (m Message) ForList(listID string) Message {
	m.ListID = listID
	return m
}

// Hub fans change messages out to every connected screen.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	logger  *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		logger:  logger,
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

// Unregister removes a client from the hub and closes its send channel.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// Broadcast delivers msg to every interested client and returns how many
// received it. Slow clients miss messages rather than block the caller.
func (h *Hub) Broadcast(msg Message) int {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("marshal broadcast", "error", err)
		return 0
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for c := range h.clients {
		if !c.wants(msg) {
			continue
		}
		select {
		case c.send <- data:
			delivered++
		default:
			h.logger.Debug("dropped broadcast for slow client", "type", msg.Type)
		}
	}
	return delivered
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
