package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name       string
		debug      bool
		debugLevel bool
	}{
		{"production", false, false},
		{"debug", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := NewLogger(&LoggerConfig{Debug: tt.debug})
			require.NoError(t, err)
			assert.Equal(t, tt.debugLevel, l.Core().Enabled(zapcore.DebugLevel))
			assert.True(t, l.Core().Enabled(zapcore.ErrorLevel))
		})
	}
}
