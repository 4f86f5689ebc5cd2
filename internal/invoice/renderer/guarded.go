package renderer

import (
	"context"

	"github.com/tair/pos-backoffice/internal/invoice/domain"
	"github.com/tair/pos-backoffice/pkg/breaker"
)

// PDFRenderer turns an invoice into a printable document
type PDFRenderer interface {
	Render(ctx context.Context, invoice *domain.Invoice) ([]byte, error)
}

// GuardedRenderer fails fast while the browser keeps failing instead of tying up
// requests until the render timeout.
type GuardedRenderer struct {
	next    PDFRenderer
	breaker *breaker.Breaker
}

func NewGuardedRenderer(next PDFRenderer, b *breaker.Breaker) *GuardedRenderer {
	return &GuardedRenderer{next: next, breaker: b}
}

func (g *GuardedRenderer) Render(ctx context.Context, invoice *domain.Invoice) ([]byte, error) {
	var data []byte
	err := g.breaker.Call(ctx, func(ctx context.Context) error {
		var err error
		data, err = g.next.Render(ctx, invoice)
		return err
	})
	return data, err
}
