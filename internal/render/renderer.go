// Package render repaints a whiteboard from its ordered stroke list. The
// renderer holds no state of its own: the produced image is a pure function
// of the stroke sequence.
package render

import (
	"fmt"
	"image"

	"github.com/gogpu/gg"

	"github.com/scrawlhq/scrawl/internal/domain"
)

// Renderer rasterizes stroke sequences onto a fixed-size canvas. Every call
// is a full redraw; there is no incremental compositing, which is acceptable
// for the stroke counts of a short session.
type Renderer struct {
	width  int
	height int
}

// New returns a renderer for a width x height pixel canvas.
func New(width, height int) *Renderer {
	return &Renderer{width: width, height: height}
}

// Render clears the surface and paints every stroke in order, walking each
// point sequence as a connected polyline with the stroke's color and width.
func (r *Renderer) Render(strokes []domain.Stroke) (image.Image, error) {
	dc := gg.NewContext(r.width, r.height)
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)

	for _, s := range strokes {
		if len(s.Points) == 0 {
			continue
		}

		dc.SetHexColor(s.Color)
		dc.SetLineWidth(s.Width)

		// A one-point stroke has no segment to walk; paint the dot a round
		// cap would have left.
		if len(s.Points) == 1 {
			dc.DrawPoint(s.Points[0].X, s.Points[0].Y, s.Width/2)
			if err := dc.Fill(); err != nil {
				return nil, fmt.Errorf("render.Renderer.Render: stroke %s: %w", s.ID, err)
			}
			continue
		}

		dc.MoveTo(s.Points[0].X, s.Points[0].Y)
		for _, p := range s.Points[1:] {
			dc.LineTo(p.X, p.Y)
		}
		if err := dc.Stroke(); err != nil {
			return nil, fmt.Errorf("render.Renderer.Render: stroke %s: %w", s.ID, err)
		}
	}

	return dc.Image(), nil
}

// Size returns the canvas dimensions in pixels.
func (r *Renderer) Size() (width, height int) {
	return r.width, r.height
}
