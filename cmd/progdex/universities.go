package main

import (
	"fmt"

	"github.com/progdex/progdex"
)

// Run executes the universities command.
func (c *UniversitiesCmd) Run(deps *Dependencies) error {
	summaries, err := deps.Programs.Universities(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", progdex.ErrorMessage(err))
		return err
	}

	if len(summaries) == 0 {
		fmt.Fprintln(deps.Stdout, "No universities scraped yet.")
		return nil
	}

	for _, u := range summaries {
		fmt.Fprintf(deps.Stdout, "%s (%d program(s))\n", u.Name, u.ProgramsCount)
		fmt.Fprintf(deps.Stdout, "  URL:          %s\n", u.URL)
		fmt.Fprintf(deps.Stdout, "  Last scraped: %s\n", u.ScrapedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

// Run executes the stats command.
func (c *StatsCmd) Run(deps *Dependencies) error {
	stats, err := deps.Programs.Stats(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", progdex.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Total programs:       %d\n", stats.TotalPrograms)
	fmt.Fprintf(deps.Stdout, "Universities scraped: %d\n", stats.Universities)
	if stats.LastUpdated != nil {
		fmt.Fprintf(deps.Stdout, "Last updated:         %s\n", stats.LastUpdated.Format("2006-01-02 15:04"))
	} else {
		fmt.Fprintln(deps.Stdout, "Last updated:         never")
	}
	return nil
}
