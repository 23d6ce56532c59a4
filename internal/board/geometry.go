package board

import "github.com/scrawlhq/scrawl/internal/domain"

// Bounds locates the canvas origin within the host's client coordinate
// space.
type Bounds struct {
	Left float64
	Top  float64
}

// Touch is one contact point reported by a touch device, in client
// coordinates.
type Touch struct {
	ClientX float64
	ClientY float64
}

// MapPointer converts a pointer-device position from client coordinates to
// canvas-local coordinates.
func MapPointer(clientX, clientY float64, b Bounds) domain.Point {
	return domain.Point{X: clientX - b.Left, Y: clientY - b.Top}
}

// MapTouches converts a touch event to a canvas-local point. Only the first
// contact point is used; additional touches are ignored, so multi-touch
// gestures never produce input. Reports false when no touches are present.
func MapTouches(touches []Touch, b Bounds) (domain.Point, bool) {
	if len(touches) == 0 {
		return domain.Point{}, false
	}
	return MapPointer(touches[0].ClientX, touches[0].ClientY, b), true
}
