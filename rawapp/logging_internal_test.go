package rawapp

import (
	"testing"

	"github.com/advdv/rawhttp"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type testEnv struct {
	level   zapcore.Level
	otelExp string
}

func (e testEnv) port() int               { return 0 }
func (e testEnv) serviceName() string     { return "test" }
func (e testEnv) workers() int            { return 2 }
func (e testEnv) readWindow() int         { return 4096 }
func (e testEnv) logLevel() zapcore.Level { return e.level }
func (e testEnv) otelExporter() string    { return e.otelExp }

func TestNewLogger(t *testing.T) {
	for _, level := range []zapcore.Level{
		zapcore.DebugLevel, zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel,
	} {
		t.Run(level.String(), func(t *testing.T) {
			logger, err := NewLogger(testEnv{level: level})
			require.NoError(t, err)
			require.NotNil(t, logger)

			assert.True(t, logger.Core().Enabled(level))
			assert.False(t, logger.Core().Enabled(level-1))
		})
	}
}

func TestZapLogger(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	logger := newZapRawHTTPLogger(zap.New(core))

	tests := []struct {
		name string
		log  func(error)
		want string
	}{
		{"accept error", logger.LogAcceptError, "error while accepting connection"},
		{"conn error", logger.LogConnError, "connection dropped without response"},
		{"handler error", logger.LogHandlerError, "unhandled handler error"},
		{"write error", logger.LogWriteError, "error while writing response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.log(errors.New("boom"))

			entries := logs.TakeAll()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.want, entries[0].Message)
			assert.Equal(t, "rawhttp", entries[0].LoggerName)
			assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
			assert.Equal(t, "boom", entries[0].ContextMap()["error"])
		})
	}
}

func TestZapLoggerRouteReplaced(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := newZapRawHTTPLogger(zap.New(core))

	logger.LogRouteReplaced(rawhttp.Route{Method: "GET", Path: "/messages"})

	entries := logs.TakeAll()
	require.Len(t, entries, 1)
	assert.Equal(t, "handler replaced", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "GET /messages", entries[0].ContextMap()["route"])
}
