package relay

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/inamate/sketchpad/internal/document"
	"github.com/inamate/sketchpad/internal/storage"
)

// Room holds the connected clients of one origin. While it has clients it
// watches the origin's storage key and broadcasts every write, whoever made
// it, to all of them.
type Room struct {
	origin  string
	clients map[string]*Client // clientID -> client
	cancel  context.CancelFunc
}

type Hub struct {
	mu         sync.RWMutex
	rooms      map[string]*Room // origin -> room
	register   chan *Client
	unregister chan *Client
	kv         storage.WatchKV
	done       chan struct{}

	// ctx is the Run context; only the Run goroutine reads it.
	ctx context.Context
}

func NewHub(kv storage.WatchKV) *Hub {
	return &Hub{
		rooms:      make(map[string]*Room),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		kv:         kv,
		done:       make(chan struct{}),
		ctx:        context.Background(),
	}
}

// Run processes joins and leaves until ctx is done, then disconnects every
// client.
func (h *Hub) Run(ctx context.Context) {
	h.ctx = ctx
	defer close(h.done)

	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-ctx.Done():
			h.closeAll()
			return
		}
	}
}

// Register adds client to its origin's room. It reports false once the hub
// has stopped.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Clients returns the number of clients connected for origin.
func (h *Hub) Clients(origin string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if room, ok := h.rooms[origin]; ok {
		return len(room.clients)
	}
	return 0
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.Origin]
	if !ok {
		room = h.openRoom(client.Origin)
		h.rooms[client.Origin] = room
	}
	room.clients[client.ClientID] = client
	h.mu.Unlock()

	// Send the stored state to the new client
	state, err := h.kv.Get(h.ctx, document.StorageKey(client.Origin))
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		slog.Warn("load state for welcome", "origin", client.Origin, "error", err)
	}
	if len(state) == 0 {
		state = json.RawMessage("null")
	}
	welcome, err := json.Marshal(WelcomePayload{ClientID: client.ClientID, State: state})
	if err != nil {
		// Stored bytes that are not JSON; join with an empty scene.
		slog.Warn("encode welcome", "origin", client.Origin, "error", err)
		welcome, _ = json.Marshal(WelcomePayload{ClientID: client.ClientID, State: json.RawMessage("null")})
	}
	client.Send(&Message{Type: TypeWelcome, Origin: client.Origin, Payload: welcome})

	slog.Info("client joined", "client", client.ClientID, "context", client.ContextID, "origin", client.Origin)
}

// openRoom must be called with h.mu held.
func (h *Hub) openRoom(origin string) *Room {
	ctx, cancel := context.WithCancel(h.ctx)
	room := &Room{
		origin:  origin,
		clients: make(map[string]*Client),
		cancel:  cancel,
	}

	changes, err := h.kv.Watch(ctx, document.StorageKey(origin))
	if err != nil {
		slog.Error("watch origin", "origin", origin, "error", err)
		return room
	}
	go func() {
		for data := range changes {
			h.broadcastToRoom(origin, &Message{Type: TypeStateChanged, Origin: origin, Payload: data}, "")
		}
	}()
	return room
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.Origin]
	if !ok {
		h.mu.Unlock()
		return
	}
	if _, ok := room.clients[client.ClientID]; !ok {
		h.mu.Unlock()
		return
	}

	delete(room.clients, client.ClientID)
	close(client.send)

	if len(room.clients) == 0 {
		room.cancel()
		delete(h.rooms, client.Origin)
	}
	h.mu.Unlock()

	slog.Info("client left", "client", client.ClientID, "origin", client.Origin)
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for origin, room := range h.rooms {
		for _, c := range room.clients {
			close(c.send)
		}
		room.cancel()
		delete(h.rooms, origin)
	}
}

func (h *Hub) handleMessage(ctx context.Context, sender *Client, msg *Message) {
	switch msg.Type {
	case TypeStatePut:
		h.handleStatePut(ctx, sender, msg)
	default:
		slog.Warn("unknown message type", "type", msg.Type, "client", sender.ClientID)
	}
}

// handleStatePut stores the envelope. The room's watch broadcasts it.
func (h *Hub) handleStatePut(ctx context.Context, sender *Client, msg *Message) {
	env, err := document.DecodeEnvelope(msg.Payload)
	if err != nil {
		slog.Warn("invalid state payload", "error", err, "client", sender.ClientID)
		sender.SendError("invalid state payload")
		return
	}
	if env.Source == "" {
		env.Source = sender.ContextID
	}

	data, err := env.Encode()
	if err != nil {
		slog.Error("encode state", "error", err)
		return
	}
	if err := h.kv.Put(ctx, document.StorageKey(sender.Origin), data); err != nil {
		slog.Error("store state", "origin", sender.Origin, "error", err)
		sender.SendError("state not stored")
	}
}

func (h *Hub) broadcastToRoom(origin string, msg *Message, excludeClientID string) {
	h.mu.RLock()
	room, ok := h.rooms[origin]
	if !ok {
		h.mu.RUnlock()
		return
	}

	clients := make([]*Client, 0, len(room.clients))
	for _, c := range room.clients {
		if c.ClientID != excludeClientID {
			clients = append(clients, c)
		}
	}

	// Sends happen under the read lock so removeClient cannot close a
	// channel mid-send.
	for _, c := range clients {
		c.Send(msg)
	}
	h.mu.RUnlock()
}
