package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	cases := []struct {
		cfg  Config
		want zapcore.Level
	}{
		{Config{}, zapcore.InfoLevel},
		{Config{Level: "debug"}, zapcore.DebugLevel},
		{Config{Level: "WARN", Format: "json"}, zapcore.WarnLevel},
		{Config{Level: "error", Format: "console"}, zapcore.ErrorLevel},
	}
	for _, c := range cases {
		log, err := New(c.cfg)
		require.NoError(t, err)
		assert.True(t, log.Core().Enabled(c.want), "level %s must be enabled", c.want)
		if c.want > zapcore.DebugLevel {
			assert.False(t, log.Core().Enabled(c.want-1), "level below %s must be disabled", c.want)
		}
	}
}

func TestNewRejectsUnknown(t *testing.T) {
	_, err := New(Config{Level: "loud"})
	assert.Error(t, err)
	_, err = New(Config{Format: "xml"})
	assert.Error(t, err)
	assert.Panics(t, func() { Must(Config{Format: "xml"}) })
}
