package telemetry

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/tixcli/tix/internal/storage"
)

func TestWrapRepositoryDisabled(t *testing.T) {
	t.Setenv("TIX_OTEL_ENABLED", "")
	repo := storage.NewFileRepository(filepath.Join(t.TempDir(), "tickets.json"))
	assert.Same(t, storage.Repository(repo), WrapRepository(repo))
}

func TestInitDisabledInstallsNoop(t *testing.T) {
	t.Setenv("TIX_OTEL_ENABLED", "")
	require.NoError(t, Init(context.Background(), "tix", "test"))
	Shutdown(context.Background())
}

func TestInstrumentedRepositorySpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tickets.json")
	inner := storage.NewFileRepository(path)
	inner.InitMissing = false
	repo := newInstrumentedRepository(inner)
	assert.Equal(t, path, repo.Path())

	_, err := repo.Load(ctx)
	require.Error(t, err)

	require.NoError(t, repo.Save(ctx, storage.New()))

	unlock, err := repo.Lock(ctx, true)
	require.NoError(t, err)
	require.NoError(t, unlock())

	spans := recorder.Ended()
	require.Len(t, spans, 3)
	assert.Equal(t, "storage.load", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "storage.save", spans[1].Name())
	assert.Equal(t, codes.Unset, spans[1].Status().Code)
	assert.Equal(t, "storage.lock", spans[2].Name())
}
