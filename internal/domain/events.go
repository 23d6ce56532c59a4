package domain

import "encoding/json"

// Event names on the room channel. The relay re-broadcasts stroke and
// cursor-move events from one participant to every other participant in the
// same room with the sender's userId attached.
const (
	EventJoin       = "join"
	EventJoined     = "joined"
	EventStroke     = "stroke"
	EventCursorMove = "cursor-move"
	EventUserLeft   = "user-left"
)

// Envelope frames every message on the wire.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// NewEnvelope marshals data into a framed event.
func NewEnvelope(event string, data any) (Envelope, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Event: event, Data: raw}, nil
}

// JoinPayload announces a participant entering a room (client -> relay).
type JoinPayload struct {
	RoomID   string `json:"roomId"`
	UserName string `json:"userName,omitempty"`
}

// JoinedPayload carries the relay-assigned transport-session identity
// (relay -> client, once, in response to join).
type JoinedPayload struct {
	UserID string `json:"userId"`
}

// StrokeOut publishes a locally completed stroke (client -> relay).
type StrokeOut struct {
	RoomID string `json:"roomId"`
	Stroke Stroke `json:"stroke"`
}

// StrokeIn delivers a remote stroke with its author attached
// (relay -> client).
type StrokeIn struct {
	UserID string `json:"userId"`
	Stroke Stroke `json:"stroke"`
}

// CursorOut publishes a sampled local pointer position (client -> relay).
type CursorOut struct {
	RoomID string  `json:"roomId"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// CursorIn delivers a remote pointer position (relay -> client).
type CursorIn struct {
	UserID string  `json:"userId"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Name   string  `json:"name,omitempty"`
}

// UserLeftPayload notifies that a participant disconnected (relay -> client).
type UserLeftPayload struct {
	UserID string `json:"userId"`
}
