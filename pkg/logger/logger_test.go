package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	return entry
}

func TestErrorCarriesContextFields(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "api", Instance: "web-1", Level: zerolog.DebugLevel, Format: "json", Output: buf})

	ctx := log.WithRequestID(context.Background(), "req-123")
	ctx = log.WithOrderID(ctx, "order-9")
	log.Error(ctx, "persist order failed", errors.New("boom"))

	entry := lastEntry(t, buf)
	assert.Equal(t, "req-123", entry["request_id"])
	assert.Equal(t, "order-9", entry["order_id"])
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "api", entry["service"])
	assert.Equal(t, "web-1", entry["instance"])
	assert.Contains(t, entry, "stack")
}

func TestFieldsDoNotLeakAcrossContexts(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "api", Format: "json", Output: buf})

	base := context.Background()
	_ = log.WithFields(base, map[string]any{"product_id": "p1"})
	log.Info(base, "catalog loaded")

	assert.NotContains(t, lastEntry(t, buf), "product_id")
}

func TestWarnStackToggle(t *testing.T) {
	buf := &bytes.Buffer{}
	New(Options{Format: "json", Output: buf, WarnStack: true}).Warn(context.Background(), "shipping band gap")
	assert.Contains(t, lastEntry(t, buf), "stack")

	buf.Reset()
	New(Options{Format: "json", Output: buf}).Warn(context.Background(), "shipping band gap")
	assert.NotContains(t, lastEntry(t, buf), "stack")
}

func TestLevelFiltersDebug(t *testing.T) {
	buf := &bytes.Buffer{}
	New(Options{Level: zerolog.InfoLevel, Format: "json", Output: buf}).Debug(context.Background(), "hidden")
	assert.Zero(t, buf.Len())
}

func TestNopIgnoresContextLoggers(t *testing.T) {
	log := Nop()
	ctx := log.WithField(context.Background(), "k", "v")
	assert.NotPanics(t, func() { log.Error(ctx, "ignored", nil) })
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("invalid"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel(" WARN "))
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
}
