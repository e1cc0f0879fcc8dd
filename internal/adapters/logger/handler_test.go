package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/crates/internal/adapters/logger"
)

func TestPrettyHandler_Info(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := slog.New(logger.NewPrettyHandler(buf, nil))
	lg.Info("information message")

	g := goldie.New(t)
	g.Assert(t, "handler_info", buf.Bytes())
}

func TestPrettyHandler_Attrs(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := slog.New(logger.NewPrettyHandler(buf, nil)).With("platform", "x86_64-unknown-linux-gnu")
	lg.Info("information message", "id", 7)

	g := goldie.New(t)
	g.Assert(t, "handler_attrs", buf.Bytes())
}

func TestPrettyHandler_WithGroup(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := slog.New(logger.NewPrettyHandler(buf, nil)).WithGroup("cargo")
	lg.Warn("slow query", "seconds", 12)

	assert.Equal(t, "! slow query cargo.seconds=12\n", buf.String())
}

func TestPrettyHandler_NestedGroups(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := slog.New(logger.NewPrettyHandler(buf, nil)).
		With("platform", "aarch64-apple-darwin").
		WithGroup("cargo").
		WithGroup("tree").
		With("jobs", 2)
	lg.Info("spawned", "pid", 42)

	assert.Equal(t, "spawned platform=aarch64-apple-darwin cargo.tree.jobs=2 cargo.tree.pid=42\n", buf.String())
}

func TestPrettyHandler_Debug(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := slog.New(logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	lg.Debug("spawning cargo tree")

	assert.Equal(t, "● spawning cargo tree\n", buf.String())
}

func TestPrettyHandler_LevelVar(t *testing.T) {
	level := &slog.LevelVar{}
	h := logger.NewPrettyHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: level})

	assert.False(t, h.Enabled(t.Context(), slog.LevelDebug))
	level.Set(slog.LevelDebug)
	assert.True(t, h.Enabled(t.Context(), slog.LevelDebug))
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) {
	return 0, assert.AnError
}

func TestPrettyHandler_WriteError(t *testing.T) {
	h := logger.NewPrettyHandler(brokenWriter{}, nil)
	err := h.Handle(t.Context(), slog.NewRecord(time0, slog.LevelInfo, "msg", 0))
	require.Error(t, err)
}
