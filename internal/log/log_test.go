package log

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"trace":   LevelTrace,
		"DEBUG":   slog.LevelDebug,
		"":        slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, ParseLevel(in))
		})
	}
}

func TestConsoleSplitsErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logger, closers, err := setupLogger(&stdout, &stderr, "trace", "", "text")
	require.NoError(t, err)
	assert.Empty(t, closers)

	logger.Log(t.Context(), LevelTrace, "bus")
	logger.Info("scanning")
	logger.Error("stuck")

	assert.Contains(t, stdout.String(), "level=TRACE msg=bus")
	assert.Contains(t, stdout.String(), "msg=scanning")
	assert.NotContains(t, stdout.String(), "stuck")
	assert.Contains(t, stderr.String(), "msg=stuck")
	assert.NotContains(t, stderr.String(), "scanning")
}

func TestFileGetsEverything(t *testing.T) {
	var stdout, stderr bytes.Buffer
	path := filepath.Join(t.TempDir(), "makbe.log")
	logger, closers, err := setupLogger(&stdout, &stderr, "info", path, "json")
	require.NoError(t, err)
	require.Len(t, closers, 1)

	logger.Debug("hidden")
	logger.Warn("device read failed", "device", "tca9555@0x20")
	require.NoError(t, closers[0].Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"device read failed"`)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, stderr.String(), "device read failed")
	assert.Empty(t, stdout.String())
}

func TestRawLogger(t *testing.T) {
	var buf bytes.Buffer
	r := NewRaw(&buf)
	r.Log(0x20, false, []byte{0x06, 0xff})
	r.Log(0x20, true, []byte{0xfe})
	r.Log(0x20, true, nil)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	assert.Contains(t, string(lines[0]), "0x20 W 2 bytes, hex: 06 ff")
	assert.Contains(t, string(lines[1]), "0x20 R 1 bytes, hex: fe")

	NewRaw(nil).Log(0x20, false, []byte{1})
}
