package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fee-wizard/internal/config"
)

func TestSetupDisabledIsNoop(t *testing.T) {
	cfg := config.Default().Telemetry
	cfg.Enabled = false

	shutdown, err := Setup(context.Background(), cfg, "test")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))

	_, span := Tracer().Start(context.Background(), "noop")
	defer span.End()
	assert.False(t, span.SpanContext().IsSampled())
}

func TestSetupEnabledInstallsProvider(t *testing.T) {
	cfg := config.Default().Telemetry
	cfg.Enabled = true
	cfg.SampleRate = 1

	shutdown, err := Setup(context.Background(), cfg, "test")
	require.NoError(t, err)
	defer func() {
		// Nothing listens on the endpoint; only bound the flush attempt.
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()
		_ = shutdown(ctx)
	}()

	_, span := Tracer().Start(context.Background(), "sampled")
	assert.True(t, span.SpanContext().IsSampled())
	span.End()
}
