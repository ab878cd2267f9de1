// internal/common/logger/logger_test.go
package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapAdapter_FieldsAndLevels(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := NewZapAdapter(zap.New(core)).WithFields(map[string]interface{}{"taskType": "search-candidates"})

	log.Debug("hidden", nil)
	log.Info("ranked", map[string]interface{}{"results": 3, "query": "CS in Dubai"})
	log.WithError(errors.New("boom")).Error("failed", nil)

	entries := logs.All()
	require.Len(t, entries, 2)

	ranked := entries[0].ContextMap()
	assert.Equal(t, "search-candidates", ranked["taskType"])
	assert.Equal(t, int64(3), ranked["results"])
	assert.Equal(t, "CS in Dubai", ranked["query"])

	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "boom", entries[1].ContextMap()["error"])
}

func TestMapToZapFields_SortedKeys(t *testing.T) {
	fields := mapToZapFields(map[string]interface{}{"b": 1, "a": 2, "c": errors.New("x")})
	require.Len(t, fields, 3)
	assert.Equal(t, "a", fields[0].Key)
	assert.Equal(t, "b", fields[1].Key)
	assert.Equal(t, "c", fields[2].Key)
	assert.Nil(t, mapToZapFields(nil))
}

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		level string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"bogus", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			l := New(tt.level, "json", "stderr")
			assert.True(t, l.Core().Enabled(tt.want))
			if tt.want > zapcore.DebugLevel {
				assert.False(t, l.Core().Enabled(tt.want-1))
			}
		})
	}
}
