package progdex

import (
	"encoding/json"
	"strings"
)

// DecodePrograms parses an extraction-service response into validated
// program candidates. The response is not trusted to be well-formed: code
// fences and surrounding prose are stripped before parsing, objects missing
// a university or name are discarded, and optional fields are filled with
// the NotSpecified sentinel. SourceURL is stamped onto every candidate.
//
// Returns an EPARSE error carrying the raw response when no JSON array can
// be parsed out of it.
func DecodePrograms(raw, sourceURL string) ([]*Program, error) {
	payload := extractJSONArray(raw)
	if payload == "" {
		return nil, parseError(raw)
	}

	var candidates []*Program
	if err := json.Unmarshal([]byte(payload), &candidates); err != nil {
		return nil, parseError(raw)
	}

	programs := make([]*Program, 0, len(candidates))
	for _, c := range candidates {
		if c == nil {
			continue
		}
		c.SourceURL = sourceURL
		if err := c.Validate(); err != nil {
			// Objects without the required identity fields are dropped
			// silently; they carry nothing mergeable.
			continue
		}
		c.FillDefaults()
		programs = append(programs, c)
	}

	return programs, nil
}

func parseError(raw string) *Error {
	err := Errorf(EPARSE, "extraction response is not a JSON program array")
	err.Raw = raw
	return err
}

// extractJSONArray locates the JSON array inside a model response, tolerating
// ```json fences and surrounding prose. Returns "" if no array is present.
func extractJSONArray(raw string) string {
	s := strings.TrimSpace(raw)

	// Strip a fenced code block if the response is wrapped in one.
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
		s = strings.TrimSpace(s)
	}

	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		return s
	}

	// Fall back to the outermost bracket pair to skip leading/trailing prose.
	start := strings.Index(s, "[")
	end := strings.LastIndex(s, "]")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}
