// Package renderer prints invoices to PDF through headless Chrome.
package renderer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/tair/pos-backoffice/internal/invoice/domain"
	"github.com/tair/pos-backoffice/pkg/config"
	"github.com/tair/pos-backoffice/pkg/logger"
)

// A4 in inches
const (
	paperWidth  = 8.27
	paperHeight = 11.69
	margin      = 0.4
)

// ChromeRenderer prints the invoice page with the DevTools protocol. It attaches to
// a remote browser when ChromeURL is set and launches a local one otherwise.
type ChromeRenderer struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
	timeout     time.Duration
}

// NewChromeRenderer creates the browser allocator; no browser starts until the first render
func NewChromeRenderer(cfg config.RendererConfig) *ChromeRenderer {
	r := &ChromeRenderer{timeout: cfg.Timeout}
	if r.timeout <= 0 {
		r.timeout = 30 * time.Second
	}

	if cfg.ChromeURL != "" {
		r.allocCtx, r.allocCancel = chromedp.NewRemoteAllocator(context.Background(), cfg.ChromeURL)
		return r
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("font-render-hinting", "none"),
	)
	r.allocCtx, r.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
	return r
}

// Render prints the invoice page to PDF
func (r *ChromeRenderer) Render(ctx context.Context, invoice *domain.Invoice) ([]byte, error) {
	html, err := HTML(invoice)
	if err != nil {
		return nil, err
	}

	browserCtx, cancel := chromedp.NewContext(r.allocCtx)
	defer cancel()
	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, r.timeout)
	defer cancelTimeout()

	// Stop the browser tab when the caller goes away
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	start := time.Now()
	var pdf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paperWidth).
				WithPaperHeight(paperHeight).
				WithMarginTop(margin).
				WithMarginBottom(margin).
				WithMarginLeft(margin).
				WithMarginRight(margin).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = data
			return nil
		}),
	)
	if err != nil {
		if errors.Is(browserCtx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("pdf rendering timed out after %v: %w", r.timeout, err)
		}
		return nil, fmt.Errorf("chromedp execution failed: %w", err)
	}
	if len(pdf) == 0 {
		return nil, errors.New("generated pdf is empty")
	}

	logger.Debug(ctx).
		Str("invoice_number", invoice.Number).
		Int("bytes", len(pdf)).
		Dur("duration", time.Since(start)).
		Msg("Invoice rendered")
	return pdf, nil
}

// Close shuts down the browser allocator
func (r *ChromeRenderer) Close() {
	if r.allocCancel != nil {
		r.allocCancel()
	}
}
