package main

import (
	"fmt"
	"strings"

	"github.com/progdex/progdex"
	"github.com/progdex/progdex/pipeline"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	progress := func(event pipeline.ProgressEvent) {
		switch event.Type {
		case pipeline.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Scraping %d URL(s)\n", event.Total)
		case pipeline.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", event.URL, failureDetail(event.Error))
		}
	}

	summary, err := deps.Pipeline.RunAll(deps.Ctx, c.URLs, progress)
	if err != nil {
		return err
	}

	var created, updated int
	for _, result := range summary.Results {
		switch result.Status {
		case pipeline.StatusNoContent:
			fmt.Fprintf(deps.Stdout, "  %s: no extractable content\n", result.URL)
		case pipeline.StatusNoPrograms:
			fmt.Fprintf(deps.Stdout, "  %s: no programs found\n", result.URL)
		case pipeline.StatusMerged:
			created += result.Report.Created
			updated += result.Report.Updated
			fmt.Fprintf(deps.Stdout, "  %s: %d new, %d updated (%s)\n",
				result.URL, result.Report.Created, result.Report.Updated,
				strings.Join(result.Report.Universities, ", "))
		}
	}

	stats, err := deps.Programs.Stats(deps.Ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "Done: %d created, %d updated, %d failed. Database has %d program(s).\n",
		created, updated, summary.Failed, stats.TotalPrograms)

	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d URL(s) failed", summary.Failed, len(c.URLs))
	}
	return nil
}

// failureDetail renders a per-URL failure, including the raw model response
// for parse failures so the operator can see what came back.
func failureDetail(err error) string {
	msg := progdex.ErrorMessage(err)
	if raw := progdex.ErrorRaw(err); raw != "" {
		return fmt.Sprintf("%s\n    response: %s", msg, raw)
	}
	return msg
}
