package progdex

import "time"

// UniversitySummary is the per-institution aggregate maintained by the
// store: the most recent source URL and scrape time, and the count of
// programs whose university matches (case-insensitively).
type UniversitySummary struct {
	Name          string    `json:"name"`
	URL           string    `json:"url"`
	ScrapedAt     time.Time `json:"scrapedAt"`
	ProgramsCount int       `json:"programsCount"`
}
