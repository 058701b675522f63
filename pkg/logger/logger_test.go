package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("info"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("loud"))
}

func TestNewHandler_ProductionIsJSON(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(newHandler(&buf, "production", "info"))
	log.Info("product added", "product_id", 7)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "product added", rec["msg"])
	assert.EqualValues(t, 7, rec["product_id"])
}

func TestNewHandler_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(newHandler(&buf, "local", "warn"))
	log.Info("hidden")
	assert.Zero(t, buf.Len())

	log.Warn("shown")
	assert.Contains(t, buf.String(), "msg=shown")
}

func TestMultiHandler_FansOut(t *testing.T) {
	var a, b bytes.Buffer
	h := NewMultiHandler(
		newHandler(&a, "local", "debug"),
		newHandler(&b, "local", "error"),
	)
	log := slog.New(h).With("store", "memory")
	log.Info("listed")

	assert.Contains(t, a.String(), "store=memory")
	assert.Zero(t, b.Len(), "error-level handler must skip info records")
}
