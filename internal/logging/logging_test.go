// Public domain.

package logging_test

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/soniakeys/natal/internal/logging"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, logging.ParseLevel(tc.in), tc.in)
	}
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	l := logging.New(logging.Config{Level: "warn", Out: &buf})
	l.Info().Msg("hidden")
	l.Warn().Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"message":"shown"`)
	assert.Contains(t, buf.String(), `"level":"warn"`)
}

func TestPretty(t *testing.T) {
	var buf bytes.Buffer
	l := logging.New(logging.Config{Level: "debug", Pretty: true, Out: &buf})
	l.Debug().Str("body", "Sun").Msg("position")
	assert.Contains(t, buf.String(), "position")
	assert.Contains(t, buf.String(), "body=")
	assert.NotContains(t, buf.String(), "{")
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	l := logging.Component(logging.New(logging.Config{Out: &buf}), "server")
	l.Info().Msg("ready")
	assert.Contains(t, buf.String(), `"component":"server"`)
}
