package progdex

// Cleaner reduces raw HTML to extraction-ready text: non-content markup
// (scripts, styles, navigation) removed and whitespace collapsed.
// An empty result is valid and means the page had no textual content.
type Cleaner interface {
	Clean(html string) (text string, err error)
}
