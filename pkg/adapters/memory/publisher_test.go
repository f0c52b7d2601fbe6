package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/semtoken/pkg/adapters/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublisher_ContentAddressed(t *testing.T) {
	p := memory.NewPublisher()
	ctx := context.Background()

	a1, err := p.Publish(ctx, "doc")
	require.NoError(t, err)
	a2, err := p.Publish(ctx, "doc")
	require.NoError(t, err)
	b, err := p.Publish(ctx, "other")
	require.NoError(t, err)

	assert.Equal(t, a1, a2)
	assert.NotEqual(t, a1, b)
	assert.Len(t, a1, 64)
	assert.Equal(t, 2, p.Len())

	text, ok := p.Get(a1)
	assert.True(t, ok)
	assert.Equal(t, "doc", text)
}

func TestPublisher_FailWith(t *testing.T) {
	p := memory.NewPublisher()
	boom := errors.New("offline")
	p.FailWith(boom)

	_, err := p.Publish(context.Background(), "doc")
	assert.ErrorIs(t, err, boom)

	p.FailWith(nil)
	_, err = p.Publish(context.Background(), "doc")
	assert.NoError(t, err)
}
