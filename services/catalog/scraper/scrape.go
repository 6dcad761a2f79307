// Package scraper drives one best-effort pass over a marketplace
// listing: fetch the listing, then per app fetch the detail page,
// snapshot the rendered comment list and persist the results. Apps
// that fail to fetch or parse are logged and skipped, the rest of the
// listing still goes through.
package scraper

import (
	"context"
	"log/slog"
	"time"

	"github.com/hanane-yh/app-scraper/lib/browser"
	"github.com/hanane-yh/app-scraper/lib/scrapers/bazaar"
	"github.com/hanane-yh/app-scraper/services/catalog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/catalog/scraper")

// Snapshotter takes rendered html snapshots of pages whose content
// only exists after javascript runs. *browser.Session implements it.
type Snapshotter interface {
	Fetch(ctx context.Context, url string, interact browser.Interaction) (string, error)
}

type Options struct {
	ListUrl string
	// MaxLoadMoreClicks bounds how far the comment list is expanded.
	MaxLoadMoreClicks int
	// SettleDelay is waited after each load-more click.
	SettleDelay time.Duration
}

type Failure struct {
	Package string
	Url     string
	Reason  string
}

type Summary struct {
	// Apps is the number of apps the listing referenced.
	Apps      int
	Succeeded int
	Skipped   int
	// Comments counts comments extracted for succeeded apps,
	// including ones the store already had.
	Comments int
	Elapsed  time.Duration
	Failures []Failure
}

type Scraper struct {
	client  *bazaar.Client
	snaps   Snapshotter
	catalog catalog.Service
	opts    Options
}

func New(client *bazaar.Client, snaps Snapshotter, svc catalog.Service, opts Options) Scraper {
	return Scraper{
		client:  client,
		snaps:   snaps,
		catalog: svc,
		opts:    opts,
	}
}

// Run scrapes every app the listing references, sequentially. The
// returned error is nil for per-app failures, those only show up in
// the summary; it is non-nil when the listing itself cannot be read,
// the store rejects a write or the context is canceled.
func (s Scraper) Run(ctx context.Context) (Summary, error) {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()
	span.SetAttributes(attribute.String("url", s.opts.ListUrl))

	start := time.Now()
	summary := Summary{}
	finish := func(err error) (Summary, error) {
		summary.Elapsed = time.Since(start)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return summary, err
	}

	refs, err := s.client.ListingApps(ctx, s.opts.ListUrl)
	if err != nil {
		return finish(err)
	}
	summary.Apps = len(refs)
	slog.InfoContext(ctx, "scraping listing", "url", s.opts.ListUrl, "apps", len(refs))

	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			return finish(err)
		}

		count, err := s.scrapeApp(ctx, ref)
		if err != nil {
			if bazaar.Skippable(err) {
				slog.WarnContext(ctx, "skipping app", "package", ref.Package, "err", err)
				summary.Skipped++
				summary.Failures = append(summary.Failures, Failure{
					Package: ref.Package,
					Url:     ref.Url,
					Reason:  err.Error(),
				})
				continue
			}
			return finish(err)
		}
		summary.Succeeded++
		summary.Comments += count
	}

	return finish(nil)
}

func (s Scraper) scrapeApp(ctx context.Context, ref bazaar.AppRef) (int, error) {
	ctx, span := tracer.Start(ctx, "scrapeApp")
	defer span.End()
	span.SetAttributes(attribute.String("package", ref.Package))

	fail := func(err error) (int, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}

	slog.DebugContext(ctx, "scraping app", "package", ref.Package, "url", ref.Url)

	app, err := s.client.AppDetail(ctx, ref.Url)
	if err != nil {
		return fail(err)
	}

	html, err := s.snaps.Fetch(ctx, ref.Url, browser.Interaction{
		ClickSelector: bazaar.LoadMoreSelector,
		MaxClicks:     s.opts.MaxLoadMoreClicks,
		SettleDelay:   s.opts.SettleDelay,
	})
	if err != nil {
		return fail(&bazaar.FetchError{URL: ref.Url, Err: err})
	}
	comments, err := bazaar.CommentsFromSnapshot(ctx, ref.Url, html)
	if err != nil {
		return fail(err)
	}

	inserted, err := s.catalog.SaveApp(ctx, app, comments)
	if err != nil {
		return fail(err)
	}
	slog.DebugContext(ctx, "saved app",
		"package", ref.Package,
		"comments", len(comments),
		"new_comments", inserted,
	)
	return len(comments), nil
}
