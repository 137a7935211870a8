package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/coder/websocket"

	"github.com/inamate/sketchpad/internal/auth"
	"github.com/inamate/sketchpad/internal/document"
	"github.com/inamate/sketchpad/internal/storage"
)

var ErrClosed = errors.New("relay connection closed")

// Remote is a storage.WatchKV backed by a relay server. It holds the single
// key of its origin; the value is cached from the server's broadcasts.
type Remote struct {
	conn      *websocket.Conn
	key       string
	contextID string

	mu       sync.Mutex
	value    []byte
	watchers map[chan []byte]struct{}
	closed   chan struct{}
}

// Dial obtains a context token for origin from the server at serverURL
// (http or https) and joins the origin's relay room. It returns once the
// server's welcome has been received.
func Dial(ctx context.Context, serverURL, origin string) (*Remote, error) {
	result, err := issueContext(ctx, serverURL, origin)
	if err != nil {
		return nil, err
	}

	wsURL := strings.Replace(strings.TrimRight(serverURL, "/"), "http", "ws", 1) +
		"/ws/scene/" + url.PathEscape(origin) + "?token=" + url.QueryEscape(result.Token)
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("dial relay: %w", err)
	}
	conn.SetReadLimit(maxMsgSize)

	r := &Remote{
		conn:      conn,
		key:       document.StorageKey(origin),
		contextID: result.ContextID,
		watchers:  make(map[chan []byte]struct{}),
		closed:    make(chan struct{}),
	}

	welcome := make(chan struct{})
	go r.readLoop(welcome)

	select {
	case <-welcome:
		return r, nil
	case <-r.closed:
		return nil, fmt.Errorf("join relay: %w", ErrClosed)
	case <-ctx.Done():
		conn.Close(websocket.StatusNormalClosure, "")
		return nil, ctx.Err()
	}
}

func issueContext(ctx context.Context, serverURL, origin string) (*auth.ContextResult, error) {
	body, _ := json.Marshal(map[string]string{"origin": origin})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(serverURL, "/")+"/auth/context", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build context request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request context: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("request context: unexpected status %d", resp.StatusCode)
	}
	var result auth.ContextResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode context: %w", err)
	}
	return &result, nil
}

// ContextID is the display context id the server issued for this connection.
func (r *Remote) ContextID() string { return r.contextID }

func (r *Remote) Close() error {
	return r.conn.Close(websocket.StatusNormalClosure, "")
}

func (r *Remote) Get(_ context.Context, key string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if key != r.key || r.value == nil {
		return nil, storage.ErrNotFound
	}
	return bytes.Clone(r.value), nil
}

func (r *Remote) Put(ctx context.Context, key string, value []byte) error {
	if key != r.key {
		return fmt.Errorf("put %q: relay only holds %q", key, r.key)
	}
	data, err := json.Marshal(Message{Type: TypeStatePut, Payload: value})
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}
	if err := r.conn.Write(ctx, websocket.MessageText, data); err != nil {
		return fmt.Errorf("send state: %w", err)
	}

	r.mu.Lock()
	r.value = bytes.Clone(value)
	r.mu.Unlock()
	return nil
}

func (r *Remote) Watch(ctx context.Context, key string) (<-chan []byte, error) {
	if key != r.key {
		return nil, fmt.Errorf("watch %q: relay only holds %q", key, r.key)
	}

	ch := make(chan []byte, 1)
	r.mu.Lock()
	select {
	case <-r.closed:
		r.mu.Unlock()
		return nil, ErrClosed
	default:
	}
	r.watchers[ch] = struct{}{}
	r.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
		case <-r.closed:
		}
		r.mu.Lock()
		if _, ok := r.watchers[ch]; ok {
			delete(r.watchers, ch)
			close(ch)
		}
		r.mu.Unlock()
	}()
	return ch, nil
}

func (r *Remote) readLoop(welcome chan struct{}) {
	defer func() {
		r.mu.Lock()
		close(r.closed)
		for ch := range r.watchers {
			delete(r.watchers, ch)
			close(ch)
		}
		r.mu.Unlock()
	}()

	ctx := context.Background()
	for {
		_, data, err := r.conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) != websocket.StatusNormalClosure {
				slog.Debug("relay read error", "error", err)
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			slog.Warn("invalid relay message", "error", err)
			continue
		}

		switch msg.Type {
		case TypeWelcome:
			var p WelcomePayload
			if err := json.Unmarshal(msg.Payload, &p); err != nil {
				slog.Warn("invalid welcome", "error", err)
				continue
			}
			r.mu.Lock()
			if len(p.State) > 0 && string(p.State) != "null" {
				r.value = bytes.Clone(p.State)
			}
			r.mu.Unlock()
			if welcome != nil {
				close(welcome)
				welcome = nil
			}

		case TypeStateChanged:
			r.mu.Lock()
			r.value = bytes.Clone(msg.Payload)
			for ch := range r.watchers {
				storage.Offer(ch, r.value)
			}
			r.mu.Unlock()

		case TypeError:
			var p ErrorPayload
			if err := json.Unmarshal(msg.Payload, &p); err != nil {
				slog.Warn("invalid relay error", "payload", string(msg.Payload), "error", err)
				continue
			}
			slog.Warn("relay error", "message", p.Message)
		}
	}
}
