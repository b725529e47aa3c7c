package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestLogger_Log(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, time.UTC)

	l.Log(map[string]any{"event": "a", "status": "error"})
	l.Log(map[string]any{"event": "b", "status": "success"})
	l.Log(map[string]any{"event": "c", "level": "debug"})

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 3)
	assert.Equal(t, "error", lines[0]["level"])
	assert.Equal(t, "info", lines[1]["level"])
	assert.Equal(t, "debug", lines[2]["level"])
	for _, line := range lines {
		_, err := time.Parse(time.RFC3339Nano, line["ts"].(string))
		assert.NoError(t, err)
	}
}

func TestLogger_InfoAndError(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, nil)

	l.Info("service", "listing_published", map[string]any{"listing_id": "x"})
	l.Error("service", "snapshot_failed", errors.New("bucket gone"), nil)

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "service", lines[0]["component"])
	assert.Equal(t, "listing_published", lines[0]["event"])
	assert.Equal(t, "x", lines[0]["listing_id"])
	assert.Equal(t, "error", lines[1]["level"])
	assert.Equal(t, "bucket gone", lines[1]["error_message"])
}

func TestLogger_NilIsNoop(t *testing.T) {
	var l *Logger
	assert.NotPanics(t, func() { l.Log(map[string]any{"x": 1}) })
}
