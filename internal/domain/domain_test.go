package domain_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrawlhq/scrawl/internal/domain"
)

// ---------------------------------------------------------------------------
// 1. DeriveUserColor — deterministic per-user display color.
// ---------------------------------------------------------------------------

func TestDeriveUserColor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		userID string
		want   string
	}{
		{"short id", "u1", "#000E5C"},
		{"name-like id", "alice", "#899680"},
		{"uuid id", "550e8400-e29b-41d4-a716-446655440000", "#53FFCD"},
		{"empty id", "", "#000000"},
		{"single char", "a", "#000061"},
		{"non-ascii", "José", "#2352FB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, domain.DeriveUserColor(tt.userID))
		})
	}
}

func TestDeriveUserColor_Pure(t *testing.T) {
	t.Parallel()

	ids := []string{"u1", "u2", "someone-longer", ""}
	for _, id := range ids {
		a := domain.DeriveUserColor(id)
		b := domain.DeriveUserColor(id)
		assert.Equal(t, a, b, "color for %q must be stable", id)
	}
}

func TestDeriveUserColor_Format(t *testing.T) {
	t.Parallel()

	got := domain.DeriveUserColor("any-user")
	require.Len(t, got, 7)
	assert.True(t, strings.HasPrefix(got, "#"))
	for _, r := range got[1:] {
		assert.Contains(t, "0123456789ABCDEF", string(r))
	}
}

// ---------------------------------------------------------------------------
// 2. Cursor.Visible — zeroed cursor marks a departed participant.
// ---------------------------------------------------------------------------

func TestCursor_Visible(t *testing.T) {
	t.Parallel()

	assert.True(t, domain.Cursor{X: 5, Y: 5, Color: "#ABC"}.Visible())
	assert.True(t, domain.Cursor{Color: "#000000", Name: "bob"}.Visible())
	assert.False(t, domain.Cursor{}.Visible(), "left marker renders nothing")
	assert.False(t, domain.Cursor{X: 3, Y: 4}.Visible(), "no color, no render")
}

// ---------------------------------------------------------------------------
// 3. NewRoomID — short opaque base-36 tokens.
// ---------------------------------------------------------------------------

func TestNewRoomID(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for range 64 {
		id := domain.NewRoomID()
		require.Len(t, id, 6)
		for _, r := range id {
			assert.Contains(t, "0123456789abcdefghijklmnopqrstuvwxyz", string(r))
		}
		seen[id] = true
	}
	assert.Greater(t, len(seen), 1, "tokens should not all collide")
}

// ---------------------------------------------------------------------------
// 4. Envelope framing.
// ---------------------------------------------------------------------------

func TestNewEnvelope(t *testing.T) {
	t.Parallel()

	t.Run("stroke round trip", func(t *testing.T) {
		t.Parallel()

		out := domain.StrokeOut{
			RoomID: "design",
			Stroke: domain.Stroke{
				ID:     "s-1",
				Points: []domain.Point{{X: 1, Y: 2}, {X: 3, Y: 4}},
				Color:  "#FF0000",
				Width:  4,
				UserID: "u1",
			},
		}

		env, err := domain.NewEnvelope(domain.EventStroke, out)
		require.NoError(t, err)
		assert.Equal(t, domain.EventStroke, env.Event)

		var got domain.StrokeOut
		require.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, out, got)
	})

	t.Run("optional userName omitted", func(t *testing.T) {
		t.Parallel()

		env, err := domain.NewEnvelope(domain.EventJoin, domain.JoinPayload{RoomID: "fun"})
		require.NoError(t, err)
		assert.NotContains(t, string(env.Data), "userName")
	})
}
