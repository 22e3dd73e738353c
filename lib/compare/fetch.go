package compare

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"perf-report/lib/benchtable"
	"perf-report/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ErrPageTimeout is returned when a comparison page does not render a
// benchmark table (or raise a dialog) within the configured timeout.
var ErrPageTimeout = errors.New("timed out waiting for comparison page")

const pollInterval = time.Millisecond * 100

var preflightClient = resty.New()

func init() {
	preflightClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(preflightClient.GetClient().Transport)
	telemetry.InstrumentResty(preflightClient, "perfreport.compare.preflight")
}

// Fetcher drives one headless browser session, fetching comparison
// pages one commit pair at a time.
type Fetcher struct {
	cfg           Config
	browserCtx    context.Context
	cancelBrowser context.CancelFunc
	cancelAlloc   context.CancelFunc
}

func NewFetcher(ctx context.Context, cfg Config) (*Fetcher, error) {
	cfg = cfg.WithDefaults()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(
		ctx,
		chromedp.DefaultExecAllocatorOptions[:]...,
	)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	// start the browser now so a missing chrome binary fails here
	// instead of on the first pair
	if err := chromedp.Run(browserCtx); err != nil {
		cancelBrowser()
		cancelAlloc()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	return &Fetcher{
		cfg:           cfg,
		browserCtx:    browserCtx,
		cancelBrowser: cancelBrowser,
		cancelAlloc:   cancelAlloc,
	}, nil
}

func (f *Fetcher) Close() {
	f.cancelBrowser()
	f.cancelAlloc()
}

// Preflight checks that the comparison site is reachable before the
// first browser navigation.
func (f *Fetcher) Preflight(ctx context.Context) error {
	link, err := url.Parse(f.cfg.BaseURL)
	if err != nil {
		return err
	}

	res, err := preflightClient.R().
		SetContext(ctx).
		Get(link.Scheme + "://" + link.Host)
	if err != nil {
		return fmt.Errorf("comparison site unreachable: %w", err)
	}
	if res.StatusCode() >= 500 {
		return fmt.Errorf("comparison site returned status %d", res.StatusCode())
	}
	return nil
}

// FetchPair navigates to the comparison page for a commit pair and
// waits for either a benchmark table or a dialog. A dialog means the
// pair has no data: zero tables, nil error. A page that shows neither
// within the timeout returns ErrPageTimeout.
func (f *Fetcher) FetchPair(ctx context.Context, start, end string) ([]benchtable.Table, error) {
	ctx, span := tracer.Start(ctx, "FetchPair", trace.WithAttributes(
		attribute.String("start", start),
		attribute.String("end", end),
	))
	defer span.End()

	link := CompareURL(f.cfg.BaseURL, start, end, f.cfg.Stat, f.cfg.Tab)
	slog.DebugContext(ctx, "fetching comparison page", "url", link)

	tabCtx, cancel := chromedp.NewContext(f.browserCtx)
	defer cancel()

	alert := make(chan string, 1)
	chromedp.ListenTarget(tabCtx, func(ev interface{}) {
		dialog, ok := ev.(*page.EventJavascriptDialogOpening)
		if !ok {
			return
		}
		select {
		case alert <- dialog.Message:
		default:
		}
		go func() {
			err := chromedp.Run(tabCtx, page.HandleJavaScriptDialog(false))
			if err != nil {
				slog.WarnContext(ctx, "failed to dismiss dialog", "err", err)
			}
		}()
	})

	if err := chromedp.Run(tabCtx, chromedp.Navigate(link)); err != nil {
		return nil, err
	}

	deadline := time.NewTimer(f.cfg.PageTimeout())
	defer deadline.Stop()
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case message := <-alert:
			slog.WarnContext(
				ctx, "comparison page raised a dialog, skipping pair",
				"start", start,
				"end", end,
				"message", message,
			)
			return nil, nil
		case <-deadline.C:
			return nil, fmt.Errorf("%w: %s..%s after %s", ErrPageTimeout, start, end, f.cfg.PageTimeout())
		case <-ticker.C:
			var count int
			err := chromedp.Run(tabCtx, chromedp.Evaluate(
				fmt.Sprintf("document.querySelectorAll(%q).length", tableSelector),
				&count,
			))
			if err != nil {
				return nil, err
			}
			if count == 0 {
				continue
			}

			var rendered string
			err = chromedp.Run(tabCtx, chromedp.OuterHTML("html", &rendered))
			if err != nil {
				return nil, err
			}
			return ParseHTML(ctx, rendered)
		}
	}
}
