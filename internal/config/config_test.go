package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Helper function tests
// ---------------------------------------------------------------------------

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		setVal   *string // nil = don't set; pointer to distinguish "" from unset
		fallback string
		want     string
	}{
		{name: "returns fallback when unset", key: "SCRAWL_TEST_GETENV_UNSET", setVal: nil, fallback: "default", want: "default"},
		{name: "returns env value when set", key: "SCRAWL_TEST_GETENV_SET", setVal: strPtr("custom"), fallback: "default", want: "custom"},
		{name: "returns fallback when empty string", key: "SCRAWL_TEST_GETENV_EMPTY", setVal: strPtr(""), fallback: "default", want: "default"},
		{name: "preserves whitespace", key: "SCRAWL_TEST_GETENV_WS", setVal: strPtr("  spaced  "), fallback: "x", want: "  spaced  "},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.setVal != nil {
				t.Setenv(tc.key, *tc.setVal)
			}

			got := getEnv(tc.key, tc.fallback)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Run("returns fallback when unset", func(t *testing.T) {
		got, err := getEnvInt("SCRAWL_TEST_INT_UNSET", 3)
		require.NoError(t, err)
		assert.Equal(t, 3, got)
	})

	t.Run("parses valid integer", func(t *testing.T) {
		t.Setenv("SCRAWL_TEST_INT_SET", "12")
		got, err := getEnvInt("SCRAWL_TEST_INT_SET", 3)
		require.NoError(t, err)
		assert.Equal(t, 12, got)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		t.Setenv("SCRAWL_TEST_INT_BAD", "twelve")
		_, err := getEnvInt("SCRAWL_TEST_INT_BAD", 3)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SCRAWL_TEST_INT_BAD")
	})
}

func TestGetEnvDuration(t *testing.T) {
	t.Run("returns fallback when unset", func(t *testing.T) {
		got, err := getEnvDuration("SCRAWL_TEST_DUR_UNSET", 5*time.Second)
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, got)
	})

	t.Run("parses valid duration", func(t *testing.T) {
		t.Setenv("SCRAWL_TEST_DUR_SET", "90s")
		got, err := getEnvDuration("SCRAWL_TEST_DUR_SET", 5*time.Second)
		require.NoError(t, err)
		assert.Equal(t, 90*time.Second, got)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		t.Setenv("SCRAWL_TEST_DUR_BAD", "soon")
		_, err := getEnvDuration("SCRAWL_TEST_DUR_BAD", 5*time.Second)
		require.Error(t, err)
	})
}

func TestGetEnvList(t *testing.T) {
	t.Run("returns fallback when unset", func(t *testing.T) {
		got := getEnvList("SCRAWL_TEST_LIST_UNSET", []string{"a"})
		assert.Equal(t, []string{"a"}, got)
	})

	t.Run("splits and trims", func(t *testing.T) {
		t.Setenv("SCRAWL_TEST_LIST_SET", "http://a.example, http://b.example ,")
		got := getEnvList("SCRAWL_TEST_LIST_SET", nil)
		assert.Equal(t, []string{"http://a.example", "http://b.example"}, got)
	})

	t.Run("all-empty value falls back", func(t *testing.T) {
		t.Setenv("SCRAWL_TEST_LIST_BLANK", " , ,")
		got := getEnvList("SCRAWL_TEST_LIST_BLANK", []string{"a"})
		assert.Equal(t, []string{"a"}, got)
	})
}

// ---------------------------------------------------------------------------
// Load
// ---------------------------------------------------------------------------

func TestLoad(t *testing.T) {
	t.Run("defaults are a working standalone relay", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, ":8080", cfg.Server.Addr)
		assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
		assert.Equal(t, []string{"http://localhost:5173"}, cfg.Server.CORSOrigins)
		assert.Empty(t, cfg.Redis.Addr)
		assert.False(t, cfg.Redis.Bridged())
	})

	t.Run("reads overrides from the environment", func(t *testing.T) {
		t.Setenv("SCRAWL_SERVER_ADDR", ":9090")
		t.Setenv("SCRAWL_SERVER_READ_TIMEOUT", "2s")
		t.Setenv("SCRAWL_CORS_ORIGINS", "https://scrawl.example")
		t.Setenv("SCRAWL_REDIS_ADDR", "redis:6379")
		t.Setenv("SCRAWL_REDIS_DB", "2")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, ":9090", cfg.Server.Addr)
		assert.Equal(t, 2*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, []string{"https://scrawl.example"}, cfg.Server.CORSOrigins)
		assert.Equal(t, "redis:6379", cfg.Redis.Addr)
		assert.Equal(t, 2, cfg.Redis.DB)
		assert.True(t, cfg.Redis.Bridged())
	})

	t.Run("rejects non-positive timeouts", func(t *testing.T) {
		t.Setenv("SCRAWL_SERVER_WRITE_TIMEOUT", "-1s")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SCRAWL_SERVER_WRITE_TIMEOUT")
	})

	t.Run("rejects negative redis db", func(t *testing.T) {
		t.Setenv("SCRAWL_REDIS_DB", "-1")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SCRAWL_REDIS_DB")
	})

	t.Run("rejects malformed duration", func(t *testing.T) {
		t.Setenv("SCRAWL_SERVER_READ_TIMEOUT", "fast")
		_, err := Load()
		require.Error(t, err)
	})
}

func strPtr(s string) *string { return &s }
