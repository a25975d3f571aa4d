package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	t.Run("creates with default config", func(t *testing.T) {
		l := New(nil)
		assert.NotNil(t, l)
	})

	t.Run("creates with custom config", func(t *testing.T) {
		buf := &bytes.Buffer{}
		l := New(&Config{Level: "debug", Format: "json", Output: buf})

		l.Info("test message")
		assert.Contains(t, buf.String(), "test message")
	})

	t.Run("creates console format logger", func(t *testing.T) {
		buf := &bytes.Buffer{}
		l := New(&Config{Level: "info", Format: "console", Output: buf})

		l.Info("test message")
		output := buf.String()
		assert.Contains(t, output, "test message")
		assert.False(t, strings.HasPrefix(output, "{"))
	})
}

func TestLogger_LevelFiltering(t *testing.T) {
	buf := &bytes.Buffer{}
	l := New(&Config{Level: "warn", Format: "json", Output: buf})

	l.Info("hidden")
	assert.Empty(t, buf.String())

	l.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestLogger_Fields(t *testing.T) {
	buf := &bytes.Buffer{}
	l := New(&Config{Level: "info", Format: "json", Output: buf})

	l.Named("payment").With(zap.String("seller_id", "S1")).Info("payment created",
		zap.Int("attempt", 1),
		zap.Bool("live", false),
	)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "payment created", entry["msg"])
	assert.Equal(t, "payment", entry["logger"])
	assert.Equal(t, "S1", entry["seller_id"])
	assert.Equal(t, float64(1), entry["attempt"])
	assert.Equal(t, false, entry["live"])
	assert.Equal(t, "info", entry["level"])
}

func TestLogger_Error(t *testing.T) {
	buf := &bytes.Buffer{}
	l := New(&Config{Level: "info", Format: "json", Output: buf})

	l.Error("operation failed", zap.Error(assert.AnError))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Contains(t, entry["error"], "assert.AnError")
	assert.NotEmpty(t, entry["stacktrace"])
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"debug", "debug"},
		{"DEBUG", "debug"},
		{"info", "info"},
		{"warn", "warn"},
		{"warning", "warn"},
		{"error", "error"},
		{"ERROR", "error"},
		{"unknown", "info"},
		{"", "info"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input).String())
		})
	}
}
