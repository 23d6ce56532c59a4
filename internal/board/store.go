// Package board holds the authoritative in-process model of one whiteboard
// session: the ordered stroke list, remote cursors, the local tool, and the
// linear undo/redo history.
package board

import (
	"sync"

	"github.com/scrawlhq/scrawl/internal/domain"
)

// Default local tool selection.
const (
	DefaultColor = "#000000"
	DefaultWidth = 3
)

// Store owns all mutable whiteboard state for a room session. Consumers read
// through accessors and react through Subscribe; there is no ambient shared
// state. Mutations are serialized internally, so the transport read loop, the
// cursor ticker, and the host UI may call into the store directly.
//
// Invariants, held after every operation:
//   - 0 <= historyIndex < len(history)
//   - history[historyIndex] is the live stroke sequence
//   - every stroke in the sequence has at least one point
type Store struct {
	mu sync.Mutex

	strokes       []domain.Stroke
	cursors       map[string]domain.Cursor
	selectedColor string
	selectedWidth float64

	history      [][]domain.Stroke
	historyIndex int

	listeners []func()
}

// NewStore returns an empty store with one empty history snapshot and the
// default tool.
func NewStore() *Store {
	return &Store{
		cursors:       make(map[string]domain.Cursor),
		selectedColor: DefaultColor,
		selectedWidth: DefaultWidth,
		history:       [][]domain.Stroke{nil},
	}
}

// Subscribe registers fn to run after every mutation. Notifications are
// synchronous and run outside the store lock, so fn may read back from the
// store. Subscriptions cannot be removed; they live as long as the session.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// AddStroke appends a stroke and pushes a new history snapshot, discarding
// any redo-future beyond the current index. This is the only path by which a
// stroke enters history; locally authored and remotely received strokes are
// indistinguishable here. Duplicate IDs are not detected: the same stroke
// delivered twice is appended twice. A stroke with no points is dropped.
func (s *Store) AddStroke(stroke domain.Stroke) {
	if len(stroke.Points) == 0 {
		return
	}

	s.mu.Lock()
	next := make([]domain.Stroke, len(s.strokes)+1)
	copy(next, s.strokes)
	next[len(s.strokes)] = stroke

	s.strokes = next
	// Full slice expression so the append cannot scribble over a snapshot
	// that redo would otherwise still reach.
	s.history = append(s.history[:s.historyIndex+1:s.historyIndex+1], next)
	s.historyIndex++
	s.mu.Unlock()

	s.notify()
}

// UpdateCursor creates or replaces the cursor entry for userID. A zeroed
// cursor is the "participant left" marker; the key stays in the map.
func (s *Store) UpdateCursor(userID string, cursor domain.Cursor) {
	s.mu.Lock()
	s.cursors[userID] = cursor
	s.mu.Unlock()

	s.notify()
}

// SetTool updates the local color and width selection. Strokes, history, and
// remote participants are unaffected.
func (s *Store) SetTool(color string, width float64) {
	s.mu.Lock()
	s.selectedColor = color
	s.selectedWidth = width
	s.mu.Unlock()

	s.notify()
}

// Undo steps the visible stroke sequence one snapshot back. No-op at the
// start of history.
func (s *Store) Undo() {
	s.mu.Lock()
	if s.historyIndex == 0 {
		s.mu.Unlock()
		return
	}
	s.historyIndex--
	s.strokes = s.history[s.historyIndex]
	s.mu.Unlock()

	s.notify()
}

// Redo steps one snapshot forward. No-op at the end of history.
func (s *Store) Redo() {
	s.mu.Lock()
	if s.historyIndex >= len(s.history)-1 {
		s.mu.Unlock()
		return
	}
	s.historyIndex++
	s.strokes = s.history[s.historyIndex]
	s.mu.Unlock()

	s.notify()
}

// Clear resets the board to a single empty snapshot. There is no undo past a
// clear. Cursors and the tool selection are untouched.
func (s *Store) Clear() {
	s.mu.Lock()
	s.strokes = nil
	s.history = [][]domain.Stroke{nil}
	s.historyIndex = 0
	s.mu.Unlock()

	s.notify()
}

// Strokes returns a copy of the current ordered stroke sequence.
func (s *Store) Strokes() []domain.Stroke {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Stroke, len(s.strokes))
	copy(out, s.strokes)
	return out
}

// Cursors returns a copy of the remote cursor map, including zeroed entries
// for participants that left.
func (s *Store) Cursors() map[string]domain.Cursor {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]domain.Cursor, len(s.cursors))
	for id, c := range s.cursors {
		out[id] = c
	}
	return out
}

// Tool returns the local color and width selection.
func (s *Store) Tool() (color string, width float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedColor, s.selectedWidth
}

// HistoryLen returns the number of history snapshots.
func (s *Store) HistoryLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.history)
}

// HistoryIndex returns the position of the live snapshot within history.
func (s *Store) HistoryIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.historyIndex
}

func (s *Store) notify() {
	s.mu.Lock()
	listeners := s.listeners
	s.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}
