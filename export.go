package progdex

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"time"
)

// CSVHeader is the column order of tabular exports. It flattens every
// Program field and is part of the export compatibility surface.
var CSVHeader = []string{
	"university", "name", "description", "eligibility",
	"duration", "pricing", "link", "sourceUrl", "addedAt", "id",
}

// WriteProgramsJSON writes programs as an indented JSON array mirroring the
// persisted database's "programs" field.
func WriteProgramsJSON(w io.Writer, programs []*Program) error {
	if programs == nil {
		programs = []*Program{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(programs)
}

// WriteProgramsCSV writes programs as CSV, one row per program, with
// CSVHeader as the first row.
func WriteProgramsCSV(w io.Writer, programs []*Program) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, p := range programs {
		row := []string{
			p.University, p.Name, p.Description, p.Eligibility,
			p.Duration, p.Pricing, p.Link, p.SourceURL,
			p.AddedAt.UTC().Format(time.RFC3339), p.ID,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
