package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLogLine(t *testing.T, line []byte) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(line, &entry), "log output should be JSON: %s", line)
	return entry
}

func TestJSONHandlerOutput(t *testing.T) {
	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	slog.Info("product created", slog.Int64("id", 42), slog.String("category", "Furniture"))

	entry := decodeLogLine(t, buf.Bytes())
	assert.Equal(t, "product created", entry["msg"])
	assert.Equal(t, float64(42), entry["id"])
	assert.Equal(t, "Furniture", entry["category"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Contains(t, entry, "time")
}

func TestInitJSONLogger(t *testing.T) {
	// InitJSONLogger writes to stdout; swap in a pipe to capture one line.
	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	InitJSONLogger()
	slog.Info("service starting", slog.String("service", "catalog"), slog.Int("port", 8080))

	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	_, err = buf.ReadFrom(r)
	require.NoError(t, err)

	entry := decodeLogLine(t, buf.Bytes())
	assert.Equal(t, "service starting", entry["msg"])
	assert.Equal(t, "catalog", entry["service"])
	assert.Equal(t, float64(8080), entry["port"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Contains(t, entry, "time")
}
