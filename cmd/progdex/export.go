package main

import (
	"fmt"
	"io"
	"os"

	"github.com/progdex/progdex"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	programs, err := deps.Programs.FindPrograms(deps.Ctx, progdex.ProgramFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", progdex.ErrorMessage(err))
		return err
	}

	out := deps.Stdout
	if c.Out != "" {
		f, err := os.Create(c.Out)
		if err != nil {
			return fmt.Errorf("failed to create %q: %w", c.Out, err)
		}
		defer f.Close()
		out = f
	}

	if err := writeExport(out, c.Format, programs); err != nil {
		return err
	}

	if c.Out != "" {
		fmt.Fprintf(deps.Stdout, "Exported %d program(s) to %s\n", len(programs), c.Out)
	}
	return nil
}

func writeExport(w io.Writer, format string, programs []*progdex.Program) error {
	if format == "csv" {
		return progdex.WriteProgramsCSV(w, programs)
	}
	return progdex.WriteProgramsJSON(w, programs)
}
