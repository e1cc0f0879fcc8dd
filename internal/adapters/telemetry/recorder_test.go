package telemetry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/crates/internal/adapters/telemetry"
	"go.trai.ch/crates/internal/core/domain"
	"go.trai.ch/crates/internal/core/ports"
)

func TestRecorder_Record(t *testing.T) {
	recorder := telemetry.New()

	ctx, vertex := recorder.Record(t.Context(), "cargo tree --target x86_64-unknown-linux-gnu")
	require.NotNil(t, vertex)

	fromCtx, ok := ports.VertexFromContext(ctx)
	require.True(t, ok)
	assert.Same(t, vertex, fromCtx)

	_, err := vertex.Stdout().Write([]byte("|serde 1.0.0|std|\n"))
	require.NoError(t, err)
	vertex.Log(domain.LogLevelDebug, "resolved 12 packages")
	vertex.Complete(nil)

	require.NoError(t, recorder.Close())
}

func TestRecorder_Failure(t *testing.T) {
	recorder := telemetry.New()

	_, vertex := recorder.Record(t.Context(), "cargo tree --target wasm32-unknown-unknown")
	vertex.Complete(assert.AnError)

	assert.NoError(t, recorder.Close())
}

func TestNoop(t *testing.T) {
	noop := telemetry.NewNoop()

	ctx, vertex := noop.Record(t.Context(), "anything")
	_, ok := ports.VertexFromContext(ctx)
	assert.True(t, ok)

	n, err := vertex.Stderr().Write([]byte("discarded"))
	require.NoError(t, err)
	assert.Equal(t, 9, n)
	vertex.Cached()
	vertex.Complete(nil)
	assert.NoError(t, noop.Close())
}
