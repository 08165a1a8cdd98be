// Package openai implements progdex.Extractor using the OpenAI chat
// completions API.
package openai

import (
	"context"
	"strings"

	"github.com/progdex/progdex"
	openai "github.com/sashabaranov/go-openai"
)

// DefaultModel is the chat model used when none is configured.
const DefaultModel = "gpt-4o-mini"

const (
	temperature = 0.3
	maxTokens   = 2000
)

// ChatCompleter is the subset of the OpenAI client used by the Extractor.
// *openai.Client satisfies it; tests substitute a stub.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Ensure Extractor implements progdex.Extractor at compile time.
var _ progdex.Extractor = (*Extractor)(nil)

// Extractor extracts program listings from page text via OpenAI.
type Extractor struct {
	client ChatCompleter
	model  string
}

// NewExtractor creates a new Extractor. An empty model selects DefaultModel.
func NewExtractor(client ChatCompleter, model string) *Extractor {
	if model == "" {
		model = DefaultModel
	}
	return &Extractor{client: client, model: model}
}

// Extract asks the model for a JSON array of programs found in text and
// decodes the response. Service failures are EUNAVAILABLE; malformed
// responses are EPARSE (carrying the raw response).
func (e *Extractor) Extract(ctx context.Context, text, sourceURL string) ([]*progdex.Program, error) {
	if strings.TrimSpace(text) == "" {
		return nil, progdex.Errorf(progdex.EINVALID, "page text required")
	}

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: progdex.BuildExtractionPrompt(text, sourceURL)},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return nil, progdex.Errorf(progdex.EUNAVAILABLE, "openai: %v", err)
	}
	if len(resp.Choices) == 0 {
		return nil, progdex.Errorf(progdex.EUNAVAILABLE, "openai returned no choices")
	}

	return progdex.DecodePrograms(resp.Choices[0].Message.Content, sourceURL)
}
