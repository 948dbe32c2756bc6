package workflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalGate(t *testing.T) {
	g := NewLocalGate()
	ctx := context.Background()

	release, err := g.Acquire(ctx, "form-1")
	require.NoError(t, err)

	_, err = g.Acquire(ctx, "form-1")
	assert.ErrorIs(t, err, ErrInFlight)

	other, err := g.Acquire(ctx, "form-2")
	require.NoError(t, err)
	other()

	release()
	release()

	again, err := g.Acquire(ctx, "form-1")
	require.NoError(t, err)
	again()
}

func TestLocalGateCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewLocalGate().Acquire(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}
