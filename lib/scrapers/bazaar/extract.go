package bazaar

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/hanane-yh/app-scraper/lib/chrono"
	"github.com/hanane-yh/app-scraper/lib/htmlutil"
	"github.com/hanane-yh/app-scraper/lib/textutil"

	"github.com/PuerkitoBio/goquery"
)

// LoadMoreSelector is the control at the bottom of a comment list
// that pulls in the next batch when clicked.
const LoadMoreSelector = ".AppCommentsList__loadmore"

// PackageFromURL pulls the package identifier out of an app page url,
// e.g. "https://cafebazaar.ir/app/com.example.app" -> "com.example.app".
// It returns "" when the url has no app path.
func PackageFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i, p := range parts {
		if p == "app" && i+1 < len(parts) && parts[i+1] != "" {
			return parts[i+1]
		}
	}
	return ""
}

// ExtractListing returns the apps a listing document links to, in
// page order, deduplicated by package identifier.
func ExtractListing(ctx context.Context, doc *goquery.Document, baseUrl *url.URL) []AppRef {
	anchors := htmlutil.GetAnchors(ctx, doc.Find("a.SimpleAppItem--single"))

	var refs []AppRef
	seen := map[string]bool{}
	for _, a := range anchors {
		if !strings.HasPrefix(a.Href, "/app/") {
			continue
		}
		href, err := url.Parse(a.Href)
		if err != nil {
			continue
		}
		full := baseUrl.ResolveReference(href).String()

		pkg := PackageFromURL(full)
		if pkg == "" || seen[pkg] {
			continue
		}
		seen[pkg] = true
		refs = append(refs, AppRef{Package: pkg, Url: full})
	}
	return refs
}

// the detail page renders its numbers inside a row of info cubes
// whose order is stable: installs, rating, category, size, last
// update. only the app name is indispensable.
var detailRules = []htmlutil.Rule{
	{Field: "name", Selector: "h1.AppName", Required: true},
	{Field: "description", Selector: "div.AppDescription__content"},
	{Field: "installs", Selector: "td.InfoCube__content", Index: 0},
	{Field: "rating", Selector: "td.InfoCube__content", Index: 1},
	{Field: "category", Selector: "td.InfoCube__content", Index: 2},
	{Field: "size", Selector: "td.InfoCube__content", Index: 3},
	{Field: "updated_at", Selector: "td.InfoCube__content", Index: 4},
}

// ExtractDetail turns an app detail document into an App. The package
// identifier comes from the page url; a missing identifier or app
// name is a ParseError.
func ExtractDetail(ctx context.Context, doc *goquery.Document, pageUrl string) (App, error) {
	pkg := PackageFromURL(pageUrl)
	if pkg == "" {
		return App{}, &ParseError{URL: pageUrl, Err: fmt.Errorf("no package identifier in url")}
	}

	fields, err := htmlutil.ExtractFields(doc, detailRules)
	if err != nil {
		return App{}, &ParseError{URL: pageUrl, Err: err}
	}

	app := App{
		Package:     pkg,
		Name:        fields["name"],
		Description: fields["description"],
		Category:    fields["category"],
		Installs:    ParseInstalls(fields["installs"]),
		SizeMB:      ParseSizeMB(fields["size"]),
		Screenshots: extractScreenshots(doc),
		Url:         pageUrl,
	}
	if rating, ok := ParseAppRating(fields["rating"]); ok {
		app.Rating = &rating
	}
	if raw, ok := fields["updated_at"]; ok {
		updatedAt, err := chrono.ParseDate(raw)
		if err != nil {
			slog.WarnContext(ctx, "unparseable app update date", "package", pkg, "date", raw)
		} else {
			app.UpdatedAt = updatedAt
		}
	}
	return app, nil
}

func extractScreenshots(doc *goquery.Document) []string {
	var out []string
	doc.Find("picture.sg__image").Each(func(_ int, pic *goquery.Selection) {
		if src, ok := pic.Find("img").Attr("data-lazy-src"); ok && src != "" {
			out = append(out, src)
			return
		}
		// lazy pictures may only carry a srcset, take its first entry
		srcset, ok := pic.Find("source").Attr("data-lazy-srcset")
		if !ok || srcset == "" {
			return
		}
		first := strings.Fields(strings.Split(srcset, ",")[0])
		if len(first) > 0 {
			out = append(out, first[0])
		}
	})
	return out
}

// ExtractComments walks a rendered comment list in page order.
// Entries without a username or body cannot be keyed and are dropped;
// missing ratings and dates stay null. An empty list is not an error.
func ExtractComments(ctx context.Context, doc *goquery.Document) []Comment {
	comments := []Comment{}
	doc.Find(".AppCommentsList__item").Each(func(i int, item *goquery.Selection) {
		username := textutil.CollapseSpace(item.Find(".AppComment__username").First().Text())
		body := strings.TrimSpace(item.Find(".AppComment__body").First().Text())
		if username == "" || body == "" {
			slog.DebugContext(ctx, "dropping comment without username or body", "offset", i)
			return
		}

		comment := Comment{
			Username: username,
			Body:     body,
			Offset:   int64(i),
		}
		if style, ok := item.Find(".rating__fill").First().Attr("style"); ok {
			if rating, ok := ParseRatingStyle(style); ok {
				comment.Rating = &rating
			}
		}
		// the second div of the meta row is the date, the first is
		// version info
		dateText := textutil.CollapseSpace(item.Find(".AppComment__meta").First().Children().Eq(1).Text())
		if dateText != "" {
			postedAt, err := chrono.ParseDate(dateText)
			if err != nil {
				slog.DebugContext(ctx, "unparseable comment date", "date", dateText)
			} else {
				comment.PostedAt = postedAt
			}
		}

		comments = append(comments, comment)
	})
	return comments
}
