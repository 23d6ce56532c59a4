package board

import (
	"github.com/google/uuid"

	"github.com/scrawlhq/scrawl/internal/domain"
)

// Recorder tracks the in-progress pointer path while a draw gesture is
// active. One gesture produces zero or one stroke. A Recorder is driven by a
// single input source and is not safe for concurrent use.
type Recorder struct {
	drawing bool
	points  []domain.Point
}

// NewRecorder returns an idle recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Begin starts a new path at p. No-op if a gesture is already in progress.
func (r *Recorder) Begin(p domain.Point) {
	if r.drawing {
		return
	}
	r.drawing = true
	r.points = []domain.Point{p}
}

// Extend appends p to the in-progress path. No-op when not drawing.
func (r *Recorder) Extend(p domain.Point) {
	if !r.drawing {
		return
	}
	r.points = append(r.points, p)
}

// End finalizes the gesture into a stroke authored by userID with the given
// tool, assigning a fresh UUID. It reports false, emitting nothing, when no
// gesture is active or the path captured no points.
func (r *Recorder) End(userID, color string, width float64) (domain.Stroke, bool) {
	if !r.drawing || len(r.points) == 0 {
		r.reset()
		return domain.Stroke{}, false
	}

	stroke := domain.Stroke{
		ID:     uuid.NewString(),
		Points: r.points,
		Color:  color,
		Width:  width,
		UserID: userID,
	}
	r.reset()
	return stroke, true
}

// Cancel discards the in-progress path without emitting a stroke. Used when
// the pointer leaves the canvas or the gesture is otherwise interrupted.
func (r *Recorder) Cancel() {
	r.reset()
}

// Drawing reports whether a gesture is in progress.
func (r *Recorder) Drawing() bool {
	return r.drawing
}

func (r *Recorder) reset() {
	r.drawing = false
	r.points = nil
}
