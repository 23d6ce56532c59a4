package domain

import (
	"crypto/rand"
	"time"
)

// DefaultRoomID is the fallback room when the shell supplies none.
const DefaultRoomID = "default"

// Room is a live whiteboard session on the relay. Rooms exist only while at
// least one participant is connected; nothing survives a relay restart.
type Room struct {
	ID           string    `json:"id"`
	Participants int       `json:"participants"`
	CreatedAt    time.Time `json:"created_at"`
}

const roomIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewRoomID returns a short opaque room token: 6 lowercase base-36
// characters. Rooms are not registered anywhere; joining an unknown token
// creates the room on the relay.
func NewRoomID() string {
	var buf [6]byte
	_, _ = rand.Read(buf[:])
	for i, b := range buf {
		buf[i] = roomIDAlphabet[int(b)%len(roomIDAlphabet)]
	}
	return string(buf[:])
}
