package domain

// Point is a single position in canvas-local pixel space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Stroke is one complete freehand path. A stroke is immutable once its
// authoring gesture ends; ID is client-generated and globally unique.
// UserID is the transport-session identity of the author, not an account.
type Stroke struct {
	ID     string  `json:"id"`
	Points []Point `json:"points"`
	Color  string  `json:"color"`
	Width  float64 `json:"width"`
	UserID string  `json:"userId"`
}
