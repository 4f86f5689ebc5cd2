package renderer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/pos-backoffice/internal/invoice/domain"
	"github.com/tair/pos-backoffice/pkg/breaker"
)

type flakyRenderer struct {
	calls int
	err   error
}

func (f *flakyRenderer) Render(context.Context, *domain.Invoice) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF"), nil
}

func TestGuardedRenderer(t *testing.T) {
	inner := &flakyRenderer{}
	r := NewGuardedRenderer(inner, breaker.New("pdf", 2, time.Hour))
	invoice := &domain.Invoice{Number: "INV-00000001"}

	data, err := r.Render(context.Background(), invoice)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data))

	inner.err = errors.New("browser gone")
	for i := 0; i < 2; i++ {
		_, err = r.Render(context.Background(), invoice)
		require.Error(t, err)
	}

	_, err = r.Render(context.Background(), invoice)
	assert.ErrorIs(t, err, breaker.ErrOpen)
	assert.Equal(t, 3, inner.calls)
}
