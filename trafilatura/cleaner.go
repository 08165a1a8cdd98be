// Package trafilatura provides a progdex.Cleaner backed by go-trafilatura's
// main-content extraction. Compared to the goquery cleaner it discards
// sidebars and related-links blocks, which produces shorter text on noisy
// pages at the cost of occasionally dropping program details that sit
// outside the main column.
package trafilatura

import (
	"strings"

	"github.com/markusmobius/go-trafilatura"
	"github.com/progdex/progdex"
)

// Ensure Cleaner implements progdex.Cleaner at compile time.
var _ progdex.Cleaner = (*Cleaner)(nil)

// Cleaner wraps go-trafilatura to extract the main content of a page as text.
type Cleaner struct{}

// NewCleaner creates a new Cleaner.
func NewCleaner() *Cleaner {
	return &Cleaner{}
}

// Clean extracts the main content text from raw HTML and collapses
// whitespace. Pages where no main content can be located yield empty text,
// not an error.
func (c *Cleaner) Clean(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(html), opts)
	if err != nil {
		// trafilatura fails on pages with no discernible content; that is
		// the valid "nothing to extract" terminal state, not a fault.
		return "", nil
	}

	return strings.Join(strings.Fields(result.ContentText), " "), nil
}
