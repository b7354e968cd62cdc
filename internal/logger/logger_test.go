package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	prev := defaultLogger
	defaultLogger = slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	t.Cleanup(func() { defaultLogger = prev })
	return buf
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLevel(tt.in), "level %q", tt.in)
	}
}

func TestDatabaseResultLevels(t *testing.T) {
	buf := captureLogs(t)

	DatabaseResult("UPDATE", 0, errors.New("connection reset"), "bookingID", "b-1")
	out := buf.String()
	assert.Contains(t, out, `"level":"ERROR"`)
	assert.Contains(t, out, `"operation":"UPDATE"`)
	assert.Contains(t, out, `"rows_affected":0`)
	assert.Contains(t, out, "connection reset")

	buf.Reset()
	DatabaseResult("INSERT", 1, nil, "invoiceID", "inv-1")
	out = buf.String()
	assert.Contains(t, out, `"level":"DEBUG"`)
	assert.Contains(t, out, `"rows_affected":1`)
	assert.Contains(t, out, `"invoiceID":"inv-1"`)
}

func TestDatabaseCallIsDebugOnly(t *testing.T) {
	buf := captureLogs(t)

	DatabaseCall("SELECT", "invoices", "invoiceID", "inv-1")
	out := buf.String()
	assert.Contains(t, out, `"level":"DEBUG"`)
	assert.Contains(t, out, `"table":"invoices"`)
}

func TestExternalServiceResultLevels(t *testing.T) {
	buf := captureLogs(t)

	ExternalServiceResult("sendgrid", "send", errors.New("status 503"), "to", "guest@example.com")
	out := buf.String()
	assert.Contains(t, out, `"level":"ERROR"`)
	assert.Contains(t, out, `"service":"sendgrid"`)
	assert.Contains(t, out, "status 503")

	buf.Reset()
	ExternalServiceResult("sendgrid", "send", nil, "status", 202)
	out = buf.String()
	assert.Contains(t, out, `"level":"DEBUG"`)
	assert.Contains(t, out, `"status":202`)
}
