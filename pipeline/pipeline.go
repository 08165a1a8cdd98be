// Package pipeline orchestrates the extraction-and-merge flow: fetch a
// page, reduce it to clean text, extract candidate programs via the
// language-model service, and merge them into the program store.
package pipeline

import (
	"context"
	"sync/atomic"
	"unicode/utf8"

	"github.com/progdex/progdex"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxTextLen bounds the normalized page text handed to the
// extraction service. Large enough to preserve program descriptions, small
// enough to respect prompt-size limits.
const DefaultMaxTextLen = 8000

// Status distinguishes the successful outcomes of a pipeline run.
type Status string

const (
	// StatusMerged means candidates were extracted and merged into the store.
	StatusMerged Status = "merged"

	// StatusNoContent means the page yielded no extractable text.
	StatusNoContent Status = "no-content"

	// StatusNoPrograms means the extraction service found no programs.
	StatusNoPrograms Status = "no-programs"
)

// Result holds the outcome of processing one URL.
type Result struct {
	URL    string
	Status Status

	// Text is the normalized page text sent for extraction.
	Text string

	// Report is set when Status is StatusMerged.
	Report *progdex.MergeReport
}

// Summary aggregates a multi-URL run.
type Summary struct {
	Results []*Result
	Failed  int
}

// ProgressEvent reports progress during a multi-URL run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting run progress.
type ProgressFunc func(event ProgressEvent)

// Pipeline composes the stages. Each Run executes them sequentially; store
// serialization is the ProgramService's responsibility, so concurrent Runs
// are safe.
type Pipeline struct {
	Fetcher   progdex.Fetcher
	Cleaner   progdex.Cleaner
	Extractor progdex.Extractor
	Programs  progdex.ProgramService

	// MaxTextLen bounds the cleaned text; DefaultMaxTextLen when zero.
	MaxTextLen int

	// Concurrency bounds parallel URL processing in RunAll. Defaults to 4.
	Concurrency int
}

// Run processes one URL: fetch, clean, extract, merge. It short-circuits on
// the first failing stage, preserving that stage's error code (EFETCH,
// EUNAVAILABLE, EPARSE, or a store error). Pages without content or without
// programs are successful runs with the corresponding status; the store is
// not touched for them.
func (p *Pipeline) Run(ctx context.Context, url string) (*Result, error) {
	html, err := p.Fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	text, err := p.Cleaner.Clean(html)
	if err != nil {
		return nil, err
	}
	text = truncate(text, p.maxTextLen())

	if text == "" {
		return &Result{URL: url, Status: StatusNoContent}, nil
	}

	candidates, err := p.Extractor.Extract(ctx, text, url)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return &Result{URL: url, Status: StatusNoPrograms, Text: text}, nil
	}

	report, err := p.Programs.MergePrograms(ctx, candidates, url)
	if err != nil {
		return nil, err
	}

	return &Result{URL: url, Status: StatusMerged, Text: text, Report: report}, nil
}

// RunAll processes several URLs concurrently. A URL's failure does not stop
// the batch; it is reported through progress and counted in the summary.
// Merges serialize on the store's lock.
func (p *Pipeline) RunAll(ctx context.Context, urls []string, progress ProgressFunc) (*Summary, error) {
	concurrency := p.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	total := len(urls)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	results := make([]*Result, total)
	errs := make([]error, total)
	var completed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, url := range urls {
		g.Go(func() error {
			result, err := p.Run(gctx, url)
			n := int(completed.Add(1))
			if err != nil {
				errs[i] = err
				if progress != nil {
					progress(ProgressEvent{Type: ProgressFailed, Completed: n, Total: total, URL: url, Error: err})
				}
				return nil
			}
			results[i] = result
			if progress != nil {
				progress(ProgressEvent{Type: ProgressCompleted, Completed: n, Total: total, URL: url})
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &Summary{}
	for i := range urls {
		if errs[i] != nil {
			summary.Failed++
			continue
		}
		summary.Results = append(summary.Results, results[i])
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	return summary, nil
}

func (p *Pipeline) maxTextLen() int {
	if p.MaxTextLen > 0 {
		return p.MaxTextLen
	}
	return DefaultMaxTextLen
}

// truncate cuts s to at most max bytes without splitting a UTF-8 sequence.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
