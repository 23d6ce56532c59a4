package board_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrawlhq/scrawl/internal/board"
	"github.com/scrawlhq/scrawl/internal/domain"
)

func TestRecorder_Gesture(t *testing.T) {
	t.Parallel()

	t.Run("press move release produces one stroke", func(t *testing.T) {
		t.Parallel()

		r := board.NewRecorder()
		r.Begin(domain.Point{X: 1, Y: 1})
		r.Extend(domain.Point{X: 2, Y: 3})
		r.Extend(domain.Point{X: 4, Y: 5})

		got, ok := r.End("u1", "#FF0000", 4)
		require.True(t, ok)
		assert.Equal(t, []domain.Point{{X: 1, Y: 1}, {X: 2, Y: 3}, {X: 4, Y: 5}}, got.Points)
		assert.Equal(t, "#FF0000", got.Color)
		assert.Equal(t, 4.0, got.Width)
		assert.Equal(t, "u1", got.UserID)

		_, err := uuid.Parse(got.ID)
		assert.NoError(t, err, "stroke id must be a fresh UUID")
	})

	t.Run("begin while drawing is a no-op", func(t *testing.T) {
		t.Parallel()

		r := board.NewRecorder()
		r.Begin(domain.Point{X: 1, Y: 1})
		r.Begin(domain.Point{X: 50, Y: 50}) // ignored
		r.Extend(domain.Point{X: 2, Y: 2})

		got, ok := r.End("u1", "#000000", 3)
		require.True(t, ok)
		assert.Equal(t, domain.Point{X: 1, Y: 1}, got.Points[0])
	})

	t.Run("extend without begin is a no-op", func(t *testing.T) {
		t.Parallel()

		r := board.NewRecorder()
		r.Extend(domain.Point{X: 2, Y: 2})

		_, ok := r.End("u1", "#000000", 3)
		assert.False(t, ok)
	})

	t.Run("end without begin emits nothing", func(t *testing.T) {
		t.Parallel()

		r := board.NewRecorder()
		_, ok := r.End("u1", "#000000", 3)
		assert.False(t, ok)
	})

	t.Run("cancel discards captured points", func(t *testing.T) {
		t.Parallel()

		r := board.NewRecorder()
		r.Begin(domain.Point{X: 1, Y: 1})
		r.Extend(domain.Point{X: 2, Y: 2})
		r.Cancel()

		assert.False(t, r.Drawing())
		_, ok := r.End("u1", "#000000", 3)
		assert.False(t, ok, "cancelled gesture must not partially commit")
	})

	t.Run("recorder is reusable after end", func(t *testing.T) {
		t.Parallel()

		r := board.NewRecorder()
		r.Begin(domain.Point{X: 1, Y: 1})
		first, ok := r.End("u1", "#000000", 3)
		require.True(t, ok)

		r.Begin(domain.Point{X: 9, Y: 9})
		second, ok := r.End("u1", "#000000", 3)
		require.True(t, ok)

		assert.NotEqual(t, first.ID, second.ID)
		assert.Equal(t, domain.Point{X: 9, Y: 9}, second.Points[0])
	})

	t.Run("single point gesture still emits", func(t *testing.T) {
		t.Parallel()

		r := board.NewRecorder()
		r.Begin(domain.Point{X: 7, Y: 7})

		got, ok := r.End("u1", "#000000", 3)
		require.True(t, ok)
		assert.Len(t, got.Points, 1)
	})
}

func TestMapPointer(t *testing.T) {
	t.Parallel()

	b := board.Bounds{Left: 100, Top: 50}
	got := board.MapPointer(130, 75, b)
	assert.Equal(t, domain.Point{X: 30, Y: 25}, got)

	// Zero bounds: client space is canvas space.
	assert.Equal(t, domain.Point{X: 130, Y: 75}, board.MapPointer(130, 75, board.Bounds{}))
}

func TestMapTouches(t *testing.T) {
	t.Parallel()

	b := board.Bounds{Left: 10, Top: 10}

	t.Run("first touch wins", func(t *testing.T) {
		t.Parallel()

		touches := []board.Touch{
			{ClientX: 20, ClientY: 30},
			{ClientX: 500, ClientY: 500}, // second contact ignored
		}
		got, ok := board.MapTouches(touches, b)
		require.True(t, ok)
		assert.Equal(t, domain.Point{X: 10, Y: 20}, got)
	})

	t.Run("no touches", func(t *testing.T) {
		t.Parallel()

		_, ok := board.MapTouches(nil, b)
		assert.False(t, ok)
	})
}
