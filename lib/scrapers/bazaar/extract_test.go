package bazaar

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/hanane-yh/app-scraper/lib/timezone"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func parseDoc(t *testing.T, html string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

const listingFixture = `
<main>
	<a class="SimpleAppItem SimpleAppItem--single" href="/app/com.example.calm">Calm</a>
	<a class="SimpleAppItem SimpleAppItem--single" href="/app/ir.mindful.breath">Breath</a>
	<a class="SimpleAppItem SimpleAppItem--single" href="/app/com.example.calm">Calm again</a>
	<a class="SimpleAppItem SimpleAppItem--single" href="/lists/similar-apps">another list</a>
</main>`

func TestExtractListing(t *testing.T) {
	base, err := url.Parse("https://cafebazaar.ir")
	require.NoError(t, err)

	refs := ExtractListing(context.Background(), parseDoc(t, listingFixture), base)
	diff := cmp.Diff([]AppRef{
		{Package: "com.example.calm", Url: "https://cafebazaar.ir/app/com.example.calm"},
		{Package: "ir.mindful.breath", Url: "https://cafebazaar.ir/app/ir.mindful.breath"},
	}, refs)
	require.Empty(t, diff)
}

const detailFixture = `
<div>
	<h1 class="AppName"> آرامش </h1>
	<div class="AppDescription__content">
		تمرین‌های تنفس و آرامش
	</div>
	<table><tr>
		<td class="InfoCube__content">۱۰ هزار+</td>
		<td class="InfoCube__content">۴٫۲</td>
		<td class="InfoCube__content">سلامت</td>
		<td class="InfoCube__content">215 MB</td>
		<td class="InfoCube__content">۱۴۰۴/۰۴/۰۱</td>
	</tr></table>
	<picture class="sg__image"><img data-lazy-src="https://cdn.example/shot1.webp"></picture>
	<picture class="sg__image">
		<source data-lazy-srcset="https://cdn.example/shot2.webp 1x, https://cdn.example/shot2@2x.webp 2x">
		<img>
	</picture>
</div>`

func TestExtractDetail(t *testing.T) {
	pageUrl := "https://cafebazaar.ir/app/com.example.calm"
	app, err := ExtractDetail(context.Background(), parseDoc(t, detailFixture), pageUrl)
	require.NoError(t, err)

	rating := 4.2
	diff := cmp.Diff(App{
		Package:     "com.example.calm",
		Name:        "آرامش",
		Description: "تمرین‌های تنفس و آرامش",
		Category:    "سلامت",
		Rating:      &rating,
		Installs:    10_000,
		SizeMB:      215,
		UpdatedAt:   time.Date(2025, time.June, 22, 0, 0, 0, 0, timezone.Location),
		Screenshots: []string{
			"https://cdn.example/shot1.webp",
			"https://cdn.example/shot2.webp",
		},
		Url: pageUrl,
	}, app)
	require.Empty(t, diff)
}

func TestExtractDetailMissingName(t *testing.T) {
	_, err := ExtractDetail(
		context.Background(),
		parseDoc(t, `<div><td class="InfoCube__content">215 MB</td></div>`),
		"https://cafebazaar.ir/app/com.example.calm",
	)
	require.Error(t, err)
	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
}

func TestExtractDetailMissingIdentifier(t *testing.T) {
	_, err := ExtractDetail(
		context.Background(),
		parseDoc(t, detailFixture),
		"https://cafebazaar.ir/lists/not-an-app",
	)
	require.Error(t, err)
	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
}

const commentsFixture = `
<div class="AppCommentsList">
	<div class="AppCommentsList__item">
		<div class="AppComment__username">علی</div>
		<div class="AppComment__body">عالی بود</div>
		<div class="rating"><div class="rating__fill" style="width: 80%"></div></div>
		<div class="AppComment__meta"><div>نسخه ۱.۲</div><div>۱۴۰۲/۰۵/۱۴</div></div>
	</div>
	<div class="AppCommentsList__item">
		<div class="AppComment__username">Sara</div>
		<div class="AppComment__body">Helps a lot</div>
	</div>
	<div class="AppCommentsList__item">
		<div class="AppComment__body">no username on this one</div>
	</div>
</div>`

func TestExtractComments(t *testing.T) {
	comments := ExtractComments(context.Background(), parseDoc(t, commentsFixture))

	rating := int64(4)
	diff := cmp.Diff([]Comment{
		{
			Username: "علی",
			Body:     "عالی بود",
			Rating:   &rating,
			PostedAt: time.Date(2023, time.August, 5, 0, 0, 0, 0, timezone.Location),
			Offset:   0,
		},
		{
			Username: "Sara",
			Body:     "Helps a lot",
			Offset:   1,
		},
	}, comments)
	require.Empty(t, diff)
}

func TestExtractCommentsEmptyList(t *testing.T) {
	comments := ExtractComments(context.Background(), parseDoc(t, `<div class="AppCommentsList"></div>`))
	require.NotNil(t, comments)
	require.Empty(t, comments)
}
