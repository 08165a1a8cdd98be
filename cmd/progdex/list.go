package main

import (
	"fmt"

	"github.com/progdex/progdex"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := progdex.ProgramFilter{}
	if c.University != "" {
		filter.University = &c.University
	}

	programs, err := deps.Programs.FindPrograms(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", progdex.ErrorMessage(err))
		return err
	}

	if len(programs) == 0 {
		fmt.Fprintln(deps.Stdout, "No programs in the database yet. Run 'progdex scrape <url>' to add some.")
		return nil
	}

	printPrograms(deps, programs)
	return nil
}

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	programs, err := deps.Programs.FindPrograms(deps.Ctx, progdex.ProgramFilter{Query: &c.Query})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", progdex.ErrorMessage(err))
		return err
	}

	if len(programs) == 0 {
		fmt.Fprintf(deps.Stdout, "No programs matching %q.\n", c.Query)
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Found %d program(s) matching %q:\n\n", len(programs), c.Query)
	printPrograms(deps, programs)
	return nil
}

func printPrograms(deps *Dependencies, programs []*progdex.Program) {
	for i, p := range programs {
		if i > 0 {
			fmt.Fprintln(deps.Stdout)
		}
		fmt.Fprintf(deps.Stdout, "%s - %s\n", p.University, p.Name)
		fmt.Fprintf(deps.Stdout, "  Description: %s\n", p.Description)
		fmt.Fprintf(deps.Stdout, "  Eligibility: %s\n", p.Eligibility)
		fmt.Fprintf(deps.Stdout, "  Duration:    %s\n", p.Duration)
		fmt.Fprintf(deps.Stdout, "  Pricing:     %s\n", p.Pricing)
		fmt.Fprintf(deps.Stdout, "  Link:        %s\n", p.Link)
		fmt.Fprintf(deps.Stdout, "  Added:       %s\n", p.AddedAt.Format("2006-01-02 15:04"))
	}
}
