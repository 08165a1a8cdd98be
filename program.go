package progdex

import (
	"strings"
	"time"
)

// NotSpecified is the sentinel value stored for optional program fields the
// extraction service could not determine.
const NotSpecified = "Not specified"

// Program represents one extracted program listing. The JSON field names are
// the compatibility surface of the persisted database and of JSON exports.
type Program struct {
	ID          string    `json:"id"`
	University  string    `json:"university"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Eligibility string    `json:"eligibility"`
	Duration    string    `json:"duration"`
	Pricing     string    `json:"pricing"`
	Link        string    `json:"link"`
	SourceURL   string    `json:"sourceUrl"`
	AddedAt     time.Time `json:"addedAt"`
}

// Validate returns an error if the program contains invalid fields.
func (p *Program) Validate() error {
	if strings.TrimSpace(p.University) == "" {
		return Errorf(EINVALID, "program university required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return Errorf(EINVALID, "program name required")
	}
	return nil
}

// Key returns the program's dedup key: the normalized (university, name)
// pair. Two programs with equal keys describe the same listing and are
// merged by upsert.
func (p *Program) Key() ProgramKey {
	return ProgramKey{
		University: NormalizeName(p.University),
		Name:       NormalizeName(p.Name),
	}
}

// ProgramKey identifies a program by its normalized university and name.
type ProgramKey struct {
	University string
	Name       string
}

// NormalizeName lowercases a name and collapses interior whitespace so that
// "MIT" and " mit " compare equal. Used for dedup keys and university
// lookups.
func NormalizeName(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// FillDefaults replaces empty optional fields with the NotSpecified sentinel
// and trims the required fields. Link falls back to the source URL when the
// page did not provide a program-specific one.
func (p *Program) FillDefaults() {
	p.University = strings.TrimSpace(p.University)
	p.Name = strings.TrimSpace(p.Name)
	for _, f := range []*string{&p.Description, &p.Eligibility, &p.Duration, &p.Pricing} {
		*f = strings.TrimSpace(*f)
		if *f == "" {
			*f = NotSpecified
		}
	}
	p.Link = strings.TrimSpace(p.Link)
	if p.Link == "" {
		if p.SourceURL != "" {
			p.Link = p.SourceURL
		} else {
			p.Link = NotSpecified
		}
	}
}

// Matches reports whether the program satisfies the filter. Query matching
// is a case-insensitive substring search over name, university, description
// and pricing.
func (p *Program) Matches(filter ProgramFilter) bool {
	if filter.University != nil && NormalizeName(*filter.University) != NormalizeName(p.University) {
		return false
	}
	if filter.Query != nil {
		q := strings.ToLower(strings.TrimSpace(*filter.Query))
		if q != "" {
			haystacks := []string{p.Name, p.University, p.Description, p.Pricing}
			found := false
			for _, h := range haystacks {
				if strings.Contains(strings.ToLower(h), q) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
	}
	return true
}

// ProgramFilter represents a filter for FindPrograms. A nil field means
// "don't filter on this". Results preserve insertion order.
type ProgramFilter struct {
	University *string
	Query      *string
}
