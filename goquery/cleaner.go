// Package goquery provides a CSS-selector based implementation of
// progdex.Cleaner that strips non-content markup from HTML pages.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/progdex/progdex"
)

// boilerplateSelector matches elements that carry no extractable program
// content: executable code, styling, and site chrome.
const boilerplateSelector = "script, style, noscript, iframe, nav, header, footer"

// Ensure Cleaner implements progdex.Cleaner at compile time.
var _ progdex.Cleaner = (*Cleaner)(nil)

// Cleaner reduces raw HTML to whitespace-collapsed text using goquery.
// It removes script/style/navigation elements and keeps everything else,
// which preserves program descriptions that readability-style extractors
// sometimes discard.
type Cleaner struct{}

// NewCleaner creates a new Cleaner.
func NewCleaner() *Cleaner {
	return &Cleaner{}
}

// Clean strips boilerplate markup and collapses whitespace. An empty result
// is not an error; it means the page had no textual content.
func (c *Cleaner) Clean(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", progdex.Errorf(progdex.EINVALID, "failed to parse HTML: %v", err)
	}

	doc.Find(boilerplateSelector).Remove()

	// goquery concatenates text nodes without separators, so walk block-ish
	// boundaries via the document text and collapse all runs of whitespace.
	text := doc.Text()
	return strings.Join(strings.Fields(text), " "), nil
}
