package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_DisabledIsNoop(t *testing.T) {
	c := New(nil, "reports", time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, c.Key("a"), map[string]int{"x": 1}))

	var out map[string]int
	found, err := c.Get(ctx, c.Key("a"), &out)
	require.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, c.Invalidate(ctx))
}

func TestCache_KeyIsStableAndNamespaced(t *testing.T) {
	c := New(nil, "reports", time.Minute)

	assert.Equal(t, c.Key("2024-01-01", "2024-01-31"), c.Key("2024-01-01", "2024-01-31"))
	assert.NotEqual(t, c.Key("2024-01-01", "2024-01-31"), c.Key("2024-01-01", "2024-02-01"))
	assert.Contains(t, c.Key("x"), "cache:reports:")
}
