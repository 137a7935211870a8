// Package scene holds the observable scene store and its persistence.
package scene

import (
	"slices"

	"github.com/inamate/sketchpad/internal/document"
)

// Snapshot is an immutable copy of the scene published to subscribers.
type Snapshot struct {
	document.State
	// External is set when the snapshot was produced by Replace, i.e. the
	// state came from another display context.
	External bool
}

// IsSelected reports whether id is in the snapshot's selection.
func (s Snapshot) IsSelected(id string) bool {
	return slices.Contains(s.Selected, id)
}

// Store owns the scene state. Every mutation that changes the scene bumps the
// version exactly once, and subscribers get one snapshot per batch of
// mutations once the outermost batch completes.
//
// A Store is not safe for concurrent use. All calls are expected to come from
// the display client's event loop.
type Store struct {
	state document.State

	depth      int
	publishing bool
	published  document.Version
	external   bool

	subs    map[int]func(Snapshot)
	nextSub int
}

// NewStore creates a store holding st. Nothing is published until the first
// mutation.
func NewStore(st document.State) *Store {
	st.Normalize()
	return &Store{
		state:     cloneState(st),
		published: st.Version,
		subs:      make(map[int]func(Snapshot)),
	}
}

// Subscribe registers fn to receive snapshots. The returned func removes it.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() { delete(s.subs, id) }
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{State: cloneState(s.state)}
}

// State returns a copy of the current state in its persisted form.
func (s *Store) State() document.State {
	return cloneState(s.state)
}

func (s *Store) Shapes() []document.Shape          { return slices.Clone(s.state.Shapes) }
func (s *Store) Selected() []string                { return slices.Clone(s.state.Selected) }
func (s *Store) Tool() document.ToolKind           { return s.state.Tool }
func (s *Store) Color() document.Color             { return s.state.Color }
func (s *Store) BgColor() document.BackgroundColor { return s.state.BgColor }
func (s *Store) Cursor() string                    { return s.state.Cursor }
func (s *Store) Version() document.Version         { return s.state.Version }

func (s *Store) IsSelected(id string) bool {
	return slices.Contains(s.state.Selected, id)
}

// Update runs fn as one batch: subscribers see a single snapshot reflecting
// every mutation fn made.
func (s *Store) Update(fn func()) {
	s.depth++
	defer func() {
		s.depth--
		if s.depth == 0 {
			s.commit()
		}
	}()
	fn()
}

// SetTool changes the active tool. Unknown kinds select the default tool.
func (s *Store) SetTool(tool document.ToolKind) {
	tool = document.ParseToolKind(string(tool))
	s.Update(func() {
		if s.state.Tool != tool {
			s.state.Tool = tool
			s.bump()
		}
	})
}

func (s *Store) SetColor(c document.Color) {
	s.Update(func() {
		if s.state.Color != c {
			s.state.Color = c
			s.bump()
		}
	})
}

func (s *Store) SetBgColor(bg document.BackgroundColor) {
	s.Update(func() {
		if s.state.BgColor != bg {
			s.state.BgColor = bg
			s.bump()
		}
	})
}

func (s *Store) SetCursor(cursor string) {
	s.Update(func() {
		if s.state.Cursor != cursor {
			s.state.Cursor = cursor
			s.bump()
		}
	})
}

// AddShape appends shape on top of the z-order.
func (s *Store) AddShape(shape document.Shape) {
	s.Update(func() {
		s.state.Shapes = append(s.state.Shapes, shape)
		s.bump()
	})
}

// RemoveShapes deletes the shapes with the given ids, drops them from the
// selection and returns how many were removed.
func (s *Store) RemoveShapes(ids ...string) int {
	removed := 0
	s.Update(func() {
		before := len(s.state.Shapes)
		s.state.Shapes = slices.DeleteFunc(s.state.Shapes, func(sh document.Shape) bool {
			return slices.Contains(ids, sh.ID)
		})
		removed = before - len(s.state.Shapes)
		if removed == 0 {
			return
		}
		s.state.Selected = slices.DeleteFunc(s.state.Selected, func(id string) bool {
			return slices.Contains(ids, id)
		})
		s.bump()
	})
	return removed
}

// ReplaceSelected sets the selection to ids, ignoring ids of shapes that are
// not in the scene.
func (s *Store) ReplaceSelected(ids []string) {
	s.Update(func() {
		selected := make([]string, 0, len(ids))
		for _, id := range ids {
			if s.hasShape(id) && !slices.Contains(selected, id) {
				selected = append(selected, id)
			}
		}
		s.state.Selected = selected
		s.bump()
	})
}

// ModifySelected applies fn to every selected shape and bumps each one's
// version. The scene version is bumped once if anything was selected.
func (s *Store) ModifySelected(fn func(*document.Shape)) {
	s.Update(func() {
		changed := false
		for i := range s.state.Shapes {
			sh := &s.state.Shapes[i]
			if !slices.Contains(s.state.Selected, sh.ID) {
				continue
			}
			id := sh.ID
			fn(sh)
			sh.ID = id
			sh.Version.Increment()
			changed = true
		}
		if changed {
			s.bump()
		}
	})
}

// ForceRedraw bumps the version without changing anything else.
func (s *Store) ForceRedraw() {
	s.Update(s.bump)
}

// Replace swaps in a state received from another display context. The local
// version is bumped rather than taken from st so the change is always seen.
func (s *Store) Replace(st document.State) {
	s.Update(func() {
		st.Normalize()
		version := s.state.Version
		s.state = cloneState(st)
		s.state.Version = version
		s.external = true
		s.bump()
	})
}

func (s *Store) bump() {
	s.state.Version.Increment()
}

func (s *Store) hasShape(id string) bool {
	return slices.ContainsFunc(s.state.Shapes, func(sh document.Shape) bool { return sh.ID == id })
}

// commit publishes until subscribers stop mutating the store. Mutations made
// by a subscriber while publishing are picked up by the next pass of the loop
// rather than by a nested publish.
func (s *Store) commit() {
	if s.publishing {
		return
	}
	s.publishing = true
	defer func() { s.publishing = false }()

	for s.state.Version != s.published {
		s.published = s.state.Version
		snap := Snapshot{State: cloneState(s.state), External: s.external}
		s.external = false

		keys := make([]int, 0, len(s.subs))
		for k := range s.subs {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			if fn, ok := s.subs[k]; ok {
				fn(snap)
			}
		}
	}
}

func cloneState(st document.State) document.State {
	st.Shapes = slices.Clone(st.Shapes)
	st.Selected = slices.Clone(st.Selected)
	if st.Shapes == nil {
		st.Shapes = []document.Shape{}
	}
	if st.Selected == nil {
		st.Selected = []string{}
	}
	return st
}
