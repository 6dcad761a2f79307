// Package bazaar scrapes the cafebazaar.ir marketplace: listing
// pages, app detail pages and rendered comment lists.
package bazaar

import (
	"bytes"
	"context"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/hanane-yh/app-scraper/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/bazaar")

// Client fetches the marketplace pages that render server side, the
// listing and the app detail pages. Comment lists render client side
// and arrive as snapshots from a browser session instead.
type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client
}

type ClientOptions struct {
	BaseUrl string
}

func NewClient(ctx context.Context, opts ClientOptions) (*Client, error) {
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	// the detail pages localize their numbers based on this
	client.SetHeader("accept-language", "fa")
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	client.SetTimeout(time.Second * 30)

	telemetry.InstrumentResty(client, "scrapers/bazaar/http")

	c := &Client{
		BaseUrl: baseUrl,
		Http:    client,
	}
	return c, nil
}

func (c *Client) fetchDocument(ctx context.Context, pageUrl string) (*goquery.Document, error) {
	res, err := c.Http.R().
		SetContext(ctx).
		Get(pageUrl)
	if err != nil {
		return nil, &FetchError{URL: pageUrl, Err: err}
	}
	if res.StatusCode() != http.StatusOK {
		return nil, &FetchError{URL: pageUrl, Status: res.StatusCode()}
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		return nil, &ParseError{URL: pageUrl, Err: err}
	}
	return doc, nil
}

// ListingApps returns the apps referenced by a listing page.
func (c *Client) ListingApps(ctx context.Context, listUrl string) ([]AppRef, error) {
	ctx, span := tracer.Start(ctx, "client:ListingApps")
	defer span.End()
	span.SetAttributes(attribute.String("url", listUrl))

	doc, err := c.fetchDocument(ctx, listUrl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch listing")
		return nil, err
	}

	refs := ExtractListing(ctx, doc, c.BaseUrl)
	span.SetAttributes(attribute.Int("apps", len(refs)))
	return refs, nil
}

// AppDetail fetches one app detail page and extracts its record.
func (c *Client) AppDetail(ctx context.Context, appUrl string) (App, error) {
	ctx, span := tracer.Start(ctx, "client:AppDetail")
	defer span.End()
	span.SetAttributes(attribute.String("url", appUrl))

	doc, err := c.fetchDocument(ctx, appUrl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch app detail")
		return App{}, err
	}

	app, err := ExtractDetail(ctx, doc, appUrl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to extract app detail")
		return App{}, err
	}
	return app, nil
}

// CommentsFromSnapshot parses a rendered html snapshot taken by a
// browser session into the comments it shows.
func CommentsFromSnapshot(ctx context.Context, pageUrl, html string) ([]Comment, error) {
	ctx, span := tracer.Start(ctx, "CommentsFromSnapshot")
	defer span.End()
	span.SetAttributes(attribute.String("url", pageUrl))

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse snapshot")
		return nil, &ParseError{URL: pageUrl, Err: err}
	}

	comments := ExtractComments(ctx, doc)
	span.SetAttributes(attribute.Int("comments", len(comments)))
	return comments, nil
}
