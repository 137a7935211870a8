// Package relay replicates persisted scene state between display contexts of
// the same origin over websockets.
package relay

import "encoding/json"

// Message is the websocket frame exchanged with display contexts.
type Message struct {
	Type     string          `json:"type"`
	Origin   string          `json:"origin,omitempty"`
	ClientID string          `json:"clientId,omitempty"`
	Payload  json.RawMessage `json:"payload"`
}

type WelcomePayload struct {
	ClientID string `json:"clientId"`
	// State is the stored envelope, or null if the origin has none yet.
	State json.RawMessage `json:"state"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

const (
	// Connection
	TypeWelcome = "welcome"
	TypeError   = "error"

	// State sync. The payload of both is a persisted envelope.
	TypeStatePut     = "state.put"
	TypeStateChanged = "state.changed"
)
