package progdex

import (
	"context"
	"fmt"
	"strings"
)

// Extractor turns normalized page text into candidate program records using
// a language-model service.
//
// Implementations distinguish two failure modes: EUNAVAILABLE when the
// service itself cannot be reached (network, auth, quota) and EPARSE when
// it responds with output that cannot be parsed as a program array. No
// retries are performed; that is the caller's decision.
type Extractor interface {
	Extract(ctx context.Context, text, sourceURL string) ([]*Program, error)
}

// BuildExtractionPrompt builds the model prompt for a page's text and source
// URL. The schema and the "empty array if none" convention are the contract
// DecodePrograms relies on, so every Extractor implementation uses the same
// prompt.
func BuildExtractionPrompt(text, sourceURL string) string {
	var sb strings.Builder
	sb.WriteString("Extract computer science and programming summer programs from this university website content.\n\n")
	fmt.Fprintf(&sb, "Website URL: %s\n", sourceURL)
	fmt.Fprintf(&sb, "Content: %s\n\n", text)
	sb.WriteString(`Extract ONLY programs related to:
- Computer Science
- Programming/Coding
- Software Engineering
- Data Science
- AI/Machine Learning
- Web Development
- Game Development

For each program found, return a JSON object with these exact fields:
- "university": name of the university, summer school, or college
- "name": program title
- "description": what students learn (max 150 words)
- "eligibility": who can apply (age, education level, requirements)
- "duration": program length and dates
- "pricing": cost of enrolling, or "Free" if clearly stated as free
- "link": program URL (use the website URL if no specific link is found)

Return ONLY a valid JSON array with no surrounding prose. If no programs are found, return [].`)
	return sb.String()
}
