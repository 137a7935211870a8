package document

import (
	"encoding/json"
	"fmt"
	"regexp"
)

// StateKey is the storage key under which a scene is persisted for an origin.
const StateKey = "sketchpad.scene"

const (
	CursorDefault   = "default"
	CursorCrosshair = "crosshair"
)

// StorageKey namespaces StateKey by origin for backends shared across origins.
func StorageKey(origin string) string {
	return origin + "/" + StateKey
}

var originPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,127}$`)

// ValidOrigin reports whether origin can be used as a storage namespace and
// as a single URL path segment.
func ValidOrigin(origin string) bool {
	return originPattern.MatchString(origin)
}

// State is the persisted form of a scene.
type State struct {
	Shapes   []Shape         `json:"shapes"`
	Selected []string        `json:"selected"`
	Version  Version         `json:"version"`
	Tool     ToolKind        `json:"tool"`
	Color    Color           `json:"color"`
	BgColor  BackgroundColor `json:"bgColor"`
	Cursor   string          `json:"cursor"`
}

func DefaultState() State {
	return State{
		Shapes:   []Shape{},
		Selected: []string{},
		Tool:     ToolSelect,
		Color:    ColorBlack,
		BgColor:  BackgroundNone,
		Cursor:   CursorDefault,
	}
}

// Normalize repairs a decoded state: unknown variants fall back to their
// defaults, shapes without ids get fresh ones, and the selection is reduced
// to unique ids of shapes that exist.
func (s *State) Normalize() {
	if s.Shapes == nil {
		s.Shapes = []Shape{}
	}
	present := make(map[string]bool, len(s.Shapes))
	for i := range s.Shapes {
		s.Shapes[i].normalize()
		present[s.Shapes[i].ID] = true
	}

	selected := make([]string, 0, len(s.Selected))
	seen := make(map[string]bool, len(s.Selected))
	for _, id := range s.Selected {
		if present[id] && !seen[id] {
			selected = append(selected, id)
			seen[id] = true
		}
	}
	s.Selected = selected

	s.Tool = ParseToolKind(string(s.Tool))
	s.Color = ParseColor(string(s.Color))
	s.BgColor = ParseBackgroundColor(string(s.BgColor))
	if s.Cursor == "" {
		s.Cursor = CursorDefault
	}
}

func (s State) Encode() ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal state: %w", err)
	}
	return data, nil
}

// DecodeState decodes a persisted state. Missing fields keep their defaults.
func DecodeState(data []byte) (State, error) {
	st := DefaultState()
	if err := json.Unmarshal(data, &st); err != nil {
		return DefaultState(), fmt.Errorf("unmarshal state: %w", err)
	}
	st.Normalize()
	return st, nil
}

// Envelope wraps a persisted state with the id of the display context that
// wrote it, so a context can recognize its own writes when they come back.
type Envelope struct {
	Source string `json:"source"`
	State  State  `json:"state"`
}

func (e Envelope) Encode() ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal envelope: %w", err)
	}
	return data, nil
}

func DecodeEnvelope(data []byte) (Envelope, error) {
	env := Envelope{State: DefaultState()}
	if err := json.Unmarshal(data, &env); err != nil {
		return Envelope{State: DefaultState()}, fmt.Errorf("unmarshal envelope: %w", err)
	}
	env.State.Normalize()
	return env, nil
}
