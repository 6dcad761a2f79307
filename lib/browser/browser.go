// Package browser drives a headless chromium page for content that
// only exists after javascript runs, like comment lists behind a
// "load more" control.
package browser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("lib/browser")

type Options struct {
	Headless bool
	// NavigationTimeout bounds every page load, zero keeps the
	// playwright default.
	NavigationTimeout time.Duration
}

// Session owns one playwright runtime, browser and page. It is not
// safe for concurrent use, callers fetch one page at a time.
type Session struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	page    playwright.Page
}

// Install downloads the playwright driver and a chromium build, it
// only needs to run once per machine.
func Install() error {
	return playwright.Install(&playwright.RunOptions{
		Browsers: []string{"chromium"},
	})
}

func Start(opts Options) (*Session, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("start playwright: %w", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("launch chromium: %w", err)
	}
	page, err := browser.NewPage()
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("open page: %w", err)
	}
	if opts.NavigationTimeout > 0 {
		page.SetDefaultTimeout(float64(opts.NavigationTimeout.Milliseconds()))
	}

	return &Session{pw: pw, browser: browser, page: page}, nil
}

func (s *Session) Close() error {
	var errlist []error
	if err := s.page.Close(); err != nil {
		errlist = append(errlist, err)
	}
	if err := s.browser.Close(); err != nil {
		errlist = append(errlist, err)
	}
	if err := s.pw.Stop(); err != nil {
		errlist = append(errlist, err)
	}
	return errors.Join(errlist...)
}

// Interaction describes how to coax a page into rendering everything
// before its html snapshot is taken.
type Interaction struct {
	// ClickSelector is clicked repeatedly until it disappears or the
	// click budget runs out. Empty means no clicking.
	ClickSelector string
	MaxClicks     int
	// SettleDelay is waited after every click so newly loaded
	// content can attach.
	SettleDelay time.Duration
}

// Fetch navigates to url, runs the interaction and returns the final
// html of the page.
func (s *Session) Fetch(ctx context.Context, url string, interact Interaction) (string, error) {
	ctx, span := tracer.Start(ctx, "session:Fetch")
	defer span.End()
	span.SetAttributes(attribute.String("url", url))

	_, err := s.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to navigate")
		return "", fmt.Errorf("goto %s: %w", url, err)
	}

	if interact.ClickSelector != "" {
		clicks := s.expand(ctx, interact)
		span.SetAttributes(attribute.Int("load_more_clicks", clicks))
	}

	html, err := s.page.Content()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to take html snapshot")
		return "", fmt.Errorf("page content: %w", err)
	}
	return html, nil
}

// expand clicks the load-more control until it goes away, fails or
// the click budget runs out. a disappearing control is the normal
// end of the list, not an error.
func (s *Session) expand(ctx context.Context, interact Interaction) int {
	locator := s.page.Locator(interact.ClickSelector)

	clicks := 0
	for clicks < interact.MaxClicks {
		if ctx.Err() != nil {
			return clicks
		}

		visible, err := locator.IsVisible()
		if err != nil || !visible {
			return clicks
		}
		if err := locator.ScrollIntoViewIfNeeded(); err != nil {
			slog.DebugContext(ctx, "load more control went away", "err", err)
			return clicks
		}
		if err := locator.Click(); err != nil {
			slog.DebugContext(ctx, "load more click failed", "err", err)
			return clicks
		}
		clicks++

		if interact.SettleDelay > 0 {
			s.page.WaitForTimeout(float64(interact.SettleDelay.Milliseconds()))
		}
	}
	return clicks
}
