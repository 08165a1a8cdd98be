package progdex

import (
	"context"
	"time"
)

// Database is the top-level persisted aggregate: the ordered program
// collection, one summary per university, and derived metadata. Its JSON
// shape is the on-disk format and must stay stable for external consumers.
type Database struct {
	Programs      []*Program           `json:"programs"`
	Universities  []*UniversitySummary `json:"universities"`
	LastUpdated   *time.Time           `json:"lastUpdated"`
	TotalPrograms int                  `json:"totalPrograms"`
}

// MergeReport describes the outcome of a merge operation.
type MergeReport struct {
	// Created is the number of new programs added to the store.
	Created int

	// Updated is the number of existing programs whose content was replaced.
	Updated int

	// Unchanged is the number of candidates identical to the stored record.
	Unchanged int

	// Universities lists the distinct university names touched by the merge,
	// in first-seen order.
	Universities []string
}

// Stats holds store-level aggregate counts for display.
type Stats struct {
	TotalPrograms int
	Universities  int
	LastUpdated   *time.Time
}

// ProgramService represents the persisted, deduplicated program collection.
// Implementations must serialize merges: concurrent MergePrograms calls are
// mutually exclusive and a failed merge leaves the persisted state untouched.
type ProgramService interface {
	// MergePrograms reconciles extracted candidates against the store.
	// Candidates sharing a dedup key with an existing program replace its
	// content while preserving the original ID and AddedAt; the rest are
	// created with fresh IDs. Summaries and derived counts are recomputed
	// and the whole database is persisted atomically.
	MergePrograms(ctx context.Context, candidates []*Program, sourceURL string) (*MergeReport, error)

	// FindPrograms retrieves programs matching the filter, in insertion order.
	FindPrograms(ctx context.Context, filter ProgramFilter) ([]*Program, error)

	// Universities retrieves all university summaries, in insertion order.
	Universities(ctx context.Context) ([]*UniversitySummary, error)

	// Stats retrieves store-level aggregate counts.
	Stats(ctx context.Context) (*Stats, error)
}
