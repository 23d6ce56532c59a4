package domain

import (
	"fmt"
	"unicode/utf16"
)

// DeriveUserColor maps a user ID to a stable display color. Every client
// derives the same color for the same participant without a server-assigned
// color table. Collisions are possible; the color is decorative, not an
// identity.
//
// The fold is hash = code + ((hash << 5) - hash) over the ID's UTF-16 code
// units with 32-bit wraparound, masked to the low 24 bits and rendered as
// "#RRGGBB".
func DeriveUserColor(userID string) string {
	var hash int32
	for _, code := range utf16.Encode([]rune(userID)) {
		hash = int32(code) + ((hash << 5) - hash)
	}
	return fmt.Sprintf("#%06X", uint32(hash)&0x00FFFFFF)
}
