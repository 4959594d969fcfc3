package logger

import (
	"path/filepath"
	"testing"

	"github.com/codeorbit/codeorbit-client/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.LoggingConfig
		wantErr bool
	}{
		{name: "console", cfg: config.LoggingConfig{Level: "info", Format: "console"}},
		{name: "json", cfg: config.LoggingConfig{Level: "debug", Format: "json", DisableStacktrace: true}},
		{name: "file", cfg: config.LoggingConfig{Level: "warn", OutputPath: filepath.Join(t.TempDir(), "logs", "client.log"), DisableConsole: true}},
		{name: "bad level", cfg: config.LoggingConfig{Level: "loud"}, wantErr: true},
		{name: "bad format", cfg: config.LoggingConfig{Level: "info", Format: "xml"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := NewLogger(&tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, l)
		})
	}
}

func TestRetryLogger_ForwardsToGlobalLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(nil) })

	rl := RetryLogger()
	rl.Debug("performing request", "method", "GET", "url", "http://x/api/internships")
	rl.Warn("retrying", "attempt", 1)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "GET", entries[0].ContextMap()["method"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, int64(1), entries[1].ContextMap()["attempt"])
}

func TestSetLogger_NilInstallsNop(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := zap.New(core)
	SetLogger(l)
	assert.Same(t, l, GetLogger())

	Info("session saved")
	assert.Equal(t, 1, logs.Len())

	SetLogger(nil)
	t.Cleanup(func() { SetLogger(nil) })
	Info("dropped")
	assert.Equal(t, 1, logs.Len())
	assert.NotSame(t, l, GetLogger())
}
