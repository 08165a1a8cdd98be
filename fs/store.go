// Package fs provides a file-based implementation of progdex.ProgramService.
// The whole database is one JSON document; every merge is a read-modify-write
// of the full document committed with write-to-temp-then-rename.
package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/progdex/progdex"
)

// Ensure Store implements progdex.ProgramService at compile time.
var _ progdex.ProgramService = (*Store)(nil)

// Store persists the program database as a single JSON file. All operations
// serialize on one mutex: merges are read-modify-write critical sections and
// concurrent merges would otherwise lose updates.
type Store struct {
	mu   sync.Mutex
	path string
	db   *progdex.Database
}

// NewStore creates a Store backed by the JSON file at path.
// Call Open before using it.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the location of the database file.
func (s *Store) Path() string {
	return s.path
}

// Open loads the persisted database, or starts empty when no file exists.
// An unparsable file is ECORRUPT: Open never resets it, since a silent
// reset would discard data. Operators confirm explicitly via Clear.
func (s *Store) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.db = emptyDatabase()
		return nil
	}
	if err != nil {
		return progdex.Errorf(progdex.EINTERNAL, "read database %s: %v", s.path, err)
	}

	var db progdex.Database
	if err := json.Unmarshal(data, &db); err != nil {
		return progdex.Errorf(progdex.ECORRUPT, "database %s is not valid JSON: %v", s.path, err)
	}

	if db.Programs == nil {
		db.Programs = []*progdex.Program{}
	}
	if db.Universities == nil {
		db.Universities = []*progdex.UniversitySummary{}
	}
	// totalPrograms is derived; recompute rather than trust the file.
	db.TotalPrograms = len(db.Programs)

	s.db = &db
	return nil
}

// Clear resets the store to an empty database and persists it. This is the
// explicit, operator-confirmed recovery path for a corrupt database.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	db := emptyDatabase()
	if err := s.persist(db); err != nil {
		return err
	}
	s.db = db
	return nil
}

// MergePrograms reconciles candidates against the store: upsert by the
// normalized (university, name) key, preserving ID and AddedAt across
// overwrites, then recompute summaries and derived counts and persist the
// whole database atomically. A failed persist leaves both the file and the
// in-memory state at their last-known-good values.
func (s *Store) MergePrograms(ctx context.Context, candidates []*progdex.Program, sourceURL string) (*progdex.MergeReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil, progdex.Errorf(progdex.EINTERNAL, "store not opened")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := &progdex.MergeReport{}
	if len(candidates) == 0 {
		return report, nil
	}

	for _, c := range candidates {
		if c == nil {
			return nil, progdex.Errorf(progdex.EINVALID, "nil candidate")
		}
		if err := c.Validate(); err != nil {
			return nil, err
		}
	}

	next := cloneDatabase(s.db)
	now := time.Now().UTC()

	index := make(map[progdex.ProgramKey]int, len(next.Programs))
	for i, p := range next.Programs {
		index[p.Key()] = i
	}

	// Touched universities, keyed by normalized name, in first-seen order.
	touched := make(map[string]string)
	var touchedOrder []string

	for _, c := range candidates {
		cand := *c
		cand.SourceURL = sourceURL
		cand.FillDefaults()

		norm := progdex.NormalizeName(cand.University)
		if _, ok := touched[norm]; !ok {
			touched[norm] = cand.University
			touchedOrder = append(touchedOrder, norm)
		}

		key := cand.Key()
		if i, ok := index[key]; ok {
			existing := next.Programs[i]
			if fingerprint(existing) == fingerprint(&cand) {
				report.Unchanged++
				continue
			}
			cand.ID = existing.ID
			cand.AddedAt = existing.AddedAt
			next.Programs[i] = &cand
			report.Updated++
		} else {
			cand.ID = uuid.New().String()
			cand.AddedAt = now
			next.Programs = append(next.Programs, &cand)
			index[key] = len(next.Programs) - 1
			report.Created++
		}
	}

	for _, norm := range touchedOrder {
		refreshSummary(next, norm, touched[norm], sourceURL, now)
		report.Universities = append(report.Universities, touched[norm])
	}

	next.TotalPrograms = len(next.Programs)
	next.LastUpdated = &now

	if err := s.persist(next); err != nil {
		return nil, err
	}
	s.db = next

	return report, nil
}

// FindPrograms retrieves programs matching the filter, in insertion order.
// Returned programs are copies; mutating them does not affect the store.
func (s *Store) FindPrograms(ctx context.Context, filter progdex.ProgramFilter) ([]*progdex.Program, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil, progdex.Errorf(progdex.EINTERNAL, "store not opened")
	}

	programs := make([]*progdex.Program, 0, len(s.db.Programs))
	for _, p := range s.db.Programs {
		if p.Matches(filter) {
			cp := *p
			programs = append(programs, &cp)
		}
	}
	return programs, nil
}

// Universities retrieves all university summaries, in insertion order.
func (s *Store) Universities(ctx context.Context) ([]*progdex.UniversitySummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil, progdex.Errorf(progdex.EINTERNAL, "store not opened")
	}

	summaries := make([]*progdex.UniversitySummary, 0, len(s.db.Universities))
	for _, u := range s.db.Universities {
		cp := *u
		summaries = append(summaries, &cp)
	}
	return summaries, nil
}

// Stats retrieves store-level aggregate counts.
func (s *Store) Stats(ctx context.Context) (*progdex.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil, progdex.Errorf(progdex.EINTERNAL, "store not opened")
	}

	stats := &progdex.Stats{
		TotalPrograms: s.db.TotalPrograms,
		Universities:  len(s.db.Universities),
	}
	if s.db.LastUpdated != nil {
		t := *s.db.LastUpdated
		stats.LastUpdated = &t
	}
	return stats, nil
}

// persist writes db to a temporary file in the target directory and renames
// it over the database file. A crash mid-write leaves the previous file
// intact; rename within one directory is atomic on POSIX filesystems.
func (s *Store) persist(db *progdex.Database) error {
	data, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return progdex.Errorf(progdex.EINTERNAL, "encode database: %v", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return progdex.Errorf(progdex.EINTERNAL, "create database directory: %v", err)
	}

	tmp, err := os.CreateTemp(dir, ".programs-*.json")
	if err != nil {
		return progdex.Errorf(progdex.EINTERNAL, "create temp file: %v", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return progdex.Errorf(progdex.EINTERNAL, "write database: %v", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return progdex.Errorf(progdex.EINTERNAL, "close temp file: %v", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return progdex.Errorf(progdex.EINTERNAL, "chmod temp file: %v", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return progdex.Errorf(progdex.EINTERNAL, "commit database: %v", err)
	}
	return nil
}

// refreshSummary recounts programs for the university and updates or creates
// its summary: url becomes the merge's source URL, scrapedAt becomes now.
func refreshSummary(db *progdex.Database, norm, displayName, sourceURL string, now time.Time) {
	count := 0
	for _, p := range db.Programs {
		if progdex.NormalizeName(p.University) == norm {
			count++
		}
	}

	for _, u := range db.Universities {
		if progdex.NormalizeName(u.Name) == norm {
			u.URL = sourceURL
			u.ScrapedAt = now
			u.ProgramsCount = count
			return
		}
	}

	db.Universities = append(db.Universities, &progdex.UniversitySummary{
		Name:          displayName,
		URL:           sourceURL,
		ScrapedAt:     now,
		ProgramsCount: count,
	})
}

// fingerprint hashes a program's content fields. Equal fingerprints mean an
// upsert would rewrite identical content, which is reported as unchanged.
func fingerprint(p *progdex.Program) uint64 {
	h := xxhash.New()
	for _, f := range []string{
		p.University, p.Name, p.Description, p.Eligibility,
		p.Duration, p.Pricing, p.Link, p.SourceURL,
	} {
		_, _ = h.WriteString(f)
		_, _ = h.Write([]byte{0x1f})
	}
	return h.Sum64()
}

func emptyDatabase() *progdex.Database {
	return &progdex.Database{
		Programs:     []*progdex.Program{},
		Universities: []*progdex.UniversitySummary{},
	}
}

func cloneDatabase(db *progdex.Database) *progdex.Database {
	next := &progdex.Database{
		Programs:      make([]*progdex.Program, len(db.Programs)),
		Universities:  make([]*progdex.UniversitySummary, len(db.Universities)),
		TotalPrograms: db.TotalPrograms,
	}
	for i, p := range db.Programs {
		cp := *p
		next.Programs[i] = &cp
	}
	for i, u := range db.Universities {
		cp := *u
		next.Universities[i] = &cp
	}
	if db.LastUpdated != nil {
		t := *db.LastUpdated
		next.LastUpdated = &t
	}
	return next
}
