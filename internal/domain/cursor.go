package domain

// Cursor is ephemeral pointer telemetry for one remote participant. Entries
// are overwritten on every update, never accumulated. A participant that left
// is represented by a zeroed cursor under the same key, so renderers check
// Visible rather than key presence.
type Cursor struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Color string  `json:"color"`
	Name  string  `json:"name,omitempty"`
}

// Visible reports whether the cursor should be drawn. A zeroed color marks a
// participant that has left the room.
func (c Cursor) Visible() bool {
	return c.Color != ""
}
