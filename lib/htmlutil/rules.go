package htmlutil

import (
	"fmt"
	"strings"

	"github.com/hanane-yh/app-scraper/lib/textutil"

	"github.com/PuerkitoBio/goquery"
)

// Rule names one field pulled out of a document by selector, so that
// extraction code reads as a table of field -> selector bindings
// instead of a wall of Find calls.
type Rule struct {
	Field    string
	Selector string
	// Attr takes the named attribute of the matched element instead
	// of its text content.
	Attr string
	// Index picks the nth match of Selector, 0 is the first.
	Index int
	// Required makes ExtractFields fail when no value is found.
	Required bool
}

// Fields holds extraction results keyed by rule field name. Optional
// rules that matched nothing are absent.
type Fields map[string]string

type MissingFieldsError struct {
	Fields []string
}

func (e MissingFieldsError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// ExtractFields evaluates every rule against doc. All optional-rule
// results are returned even when required rules fail, so callers can
// still inspect partial output.
func ExtractFields(doc *goquery.Document, rules []Rule) (Fields, error) {
	out := Fields{}
	var missing []string

	for _, rule := range rules {
		sel := doc.Find(rule.Selector).Eq(rule.Index)

		var value string
		if rule.Attr != "" {
			value, _ = sel.Attr(rule.Attr)
		} else {
			value = textutil.CollapseSpace(sel.Text())
		}

		if value == "" {
			if rule.Required {
				missing = append(missing, rule.Field)
			}
			continue
		}
		out[rule.Field] = value
	}

	if len(missing) > 0 {
		return out, MissingFieldsError{Fields: missing}
	}
	return out, nil
}
