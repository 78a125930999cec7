package logx

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErr_Field(t *testing.T) {
	require.Equal(t, Field{Key: "err", Value: "boom"}, Err(errors.New("boom")))
	require.Equal(t, Field{Key: "err", Value: nil}, Err(nil))
}

func TestOptInt64_Field(t *testing.T) {
	v := int64(7)
	require.Equal(t, Field{Key: "driver_id", Value: int64(7)}, OptInt64("driver_id", &v))
	require.Equal(t, Field{Key: "driver_id", Value: nil}, OptInt64("driver_id", nil))
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	require.Equal(t, slog.LevelWarn, ParseLevel(" warning "))
	require.Equal(t, slog.LevelError, ParseLevel("error"))
	require.Equal(t, slog.LevelInfo, ParseLevel("whatever"))
}

func TestNewJSON_WritesFieldsAndRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewJSON(&buf, "info").With(String("service", "delivery"))

	l.Debug("hidden")
	l.Info("delivery created", Int64("delivery_id", 3), Any("cause", errors.New("x")))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	require.Equal(t, "delivery created", entry["msg"])
	require.Equal(t, "delivery", entry["service"])
	require.Equal(t, float64(3), entry["delivery_id"])
	require.Equal(t, "x", entry["cause"])
	require.NoError(t, l.Sync())
}

func TestNop_NoPanic(t *testing.T) {
	l := Nop()
	l.Debug("d")
	l.Info("i", Int("n", 1))
	l.Warn("w")
	l.Error("e", Err(errors.New("e")))
	require.NotNil(t, l.With(String("x", "y")))
	require.NoError(t, l.Sync())
}
