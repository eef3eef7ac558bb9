package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	t.Run("creates with default config", func(t *testing.T) {
		l := New(nil)
		assert.NotNil(t, l)
		assert.NotNil(t, l.Logger)
	})

	t.Run("creates with custom config", func(t *testing.T) {
		buf := &bytes.Buffer{}
		l := New(&Config{
			Level:  "debug",
			Format: "json",
			Output: buf,
		})
		assert.NotNil(t, l)

		l.Info("upload accepted")
		assert.Contains(t, buf.String(), "upload accepted")
	})

	t.Run("creates text format logger", func(t *testing.T) {
		buf := &bytes.Buffer{}
		l := New(&Config{
			Level:  "info",
			Format: "text",
			Output: buf,
		})

		l.Info("upload accepted")
		output := buf.String()
		assert.Contains(t, output, "upload accepted")
		// Text format should not be JSON
		assert.False(t, strings.HasPrefix(output, "{"))
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"debug", "DEBUG"},
		{"info", "INFO"},
		{"warning", "WARN"},
		{"error", "ERROR"},
		{"bogus", "INFO"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.in).String())
		})
	}
}

func TestFromContext(t *testing.T) {
	t.Run("returns stored logger", func(t *testing.T) {
		l := New(nil)
		ctx := ContextWithLogger(context.Background(), l)
		assert.Same(t, l, FromContext(ctx))
	})

	t.Run("falls back to default", func(t *testing.T) {
		assert.NotNil(t, FromContext(context.Background()))
	})
}
