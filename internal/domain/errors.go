package domain

import "errors"

// Sentinel errors for the domain layer.
var (
	ErrRoomNotFound = errors.New("domain: room not found")
	ErrNotConnected = errors.New("domain: transport not connected")
)
