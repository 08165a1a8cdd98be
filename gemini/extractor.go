// Package gemini implements progdex.Extractor using Google Gemini.
package gemini

import (
	"context"
	"strings"

	"github.com/progdex/progdex"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Extractor implements progdex.Extractor at compile time.
var _ progdex.Extractor = (*Extractor)(nil)

// Extractor extracts program listings from page text via Gemini.
type Extractor struct {
	client *genai.Client
	model  string
}

// NewExtractor creates a new Extractor. An empty model selects DefaultModel.
func NewExtractor(client *genai.Client, model string) *Extractor {
	if model == "" {
		model = DefaultModel
	}
	return &Extractor{client: client, model: model}
}

// Extract asks Gemini for a JSON array of programs found in text and decodes
// the response. Service failures are EUNAVAILABLE; malformed responses are
// EPARSE (carrying the raw response).
func (e *Extractor) Extract(ctx context.Context, text, sourceURL string) ([]*progdex.Program, error) {
	if strings.TrimSpace(text) == "" {
		return nil, progdex.Errorf(progdex.EINVALID, "page text required")
	}

	result, err := e.client.Models.GenerateContent(ctx, e.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: progdex.BuildExtractionPrompt(text, sourceURL)}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return nil, progdex.Errorf(progdex.EUNAVAILABLE, "gemini: %v", err)
	}
	if result == nil {
		return nil, progdex.Errorf(progdex.EUNAVAILABLE, "gemini returned nil result")
	}

	return progdex.DecodePrograms(result.Text(), sourceURL)
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.3)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a data extraction assistant. Respond with a strict JSON array only, no narration, no code fences.",
			}},
		},
		Temperature: &temp,
	}
}
