package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerWithPath_Stderr(t *testing.T) {
	var buf bytes.Buffer
	res := NewLoggerWithPath(Config{Level: "warn", Format: FormatJSON, Writer: &buf})
	assert.False(t, res.UsingFile)
	assert.False(t, res.FallbackUsed)

	res.Logger.Info().Msg("hidden")
	res.Logger.Warn().Msg("shown")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "shown", entry["message"])
	assert.Equal(t, "warn", entry["level"])
}

func TestNewLoggerWithPath_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "orgboard.log")
	res := NewLoggerWithPath(Config{Level: "debug", Format: FormatJSON, Output: OutputFile, File: path})
	t.Cleanup(func() { _ = res.Close() })

	require.True(t, res.UsingFile)
	assert.Equal(t, path, res.FilePath)

	res.Logger.Debug().Msg("to file")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
	require.NoError(t, res.Close())
	require.NoError(t, res.Close())
}

func TestNewLoggerWithPath_FallsBackWithoutFile(t *testing.T) {
	var buf bytes.Buffer
	res := NewLoggerWithPath(Config{Output: OutputFile, Writer: &buf})
	assert.False(t, res.UsingFile)
	assert.True(t, res.FallbackUsed)
	assert.NotEmpty(t, res.FallbackReason)

	res.Logger.Info().Msg("still logged")
	assert.Contains(t, buf.String(), "still logged")
}

func TestNewLoggerWithPath_Discard(t *testing.T) {
	var buf bytes.Buffer
	res := NewLoggerWithPath(Config{Output: OutputDiscard, Writer: &buf})
	res.Logger.Error().Msg("nowhere")
	assert.Empty(t, buf.String())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("loud"))
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
}

func TestTraceID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, TraceIDFromContext(ctx))

	id := GetOrGenerateTraceID(ctx)
	assert.Len(t, id, 26)

	ctx = ContextWithTraceID(ctx, id)
	assert.Equal(t, id, GetOrGenerateTraceID(ctx))
}

func TestTraceHookAndComponent(t *testing.T) {
	var buf bytes.Buffer
	l := ComponentLogger(NewLogger(Config{Format: FormatJSON, Writer: &buf}), "query")
	ctx := ContextWithTraceID(l.WithContext(context.Background()), "01TRACE")

	FromContext(ctx).Info().Ctx(ctx).Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "query", entry[FieldComponent])
	assert.Equal(t, "01TRACE", entry[FieldTraceID])
}

func TestPrintMessages(t *testing.T) {
	var buf bytes.Buffer
	PrintLogPathMessage(&buf, "/tmp/x.log")
	PrintFallbackWarning(&buf, "denied")
	assert.Contains(t, buf.String(), "/tmp/x.log")
	assert.Contains(t, buf.String(), "denied")
}
