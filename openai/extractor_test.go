package openai_test

import (
	"context"
	"errors"
	"testing"

	"github.com/progdex/progdex"
	"github.com/progdex/progdex/openai"
	goopenai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCompleter returns a canned response or error.
type stubCompleter struct {
	resp goopenai.ChatCompletionResponse
	err  error

	gotReq goopenai.ChatCompletionRequest
}

func (s *stubCompleter) CreateChatCompletion(_ context.Context, req goopenai.ChatCompletionRequest) (goopenai.ChatCompletionResponse, error) {
	s.gotReq = req
	return s.resp, s.err
}

func chatResponse(content string) goopenai.ChatCompletionResponse {
	return goopenai.ChatCompletionResponse{
		Choices: []goopenai.ChatCompletionChoice{
			{Message: goopenai.ChatCompletionMessage{Content: content}},
		},
	}
}

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("decodes programs from response", func(t *testing.T) {
		t.Parallel()

		stub := &stubCompleter{resp: chatResponse(`[{"university": "MIT", "name": "AI Camp"}]`)}
		extractor := openai.NewExtractor(stub, "")

		programs, err := extractor.Extract(context.Background(), "page text", "https://mit.edu/summer")
		require.NoError(t, err)
		require.Len(t, programs, 1)
		assert.Equal(t, "MIT", programs[0].University)
		assert.Equal(t, "https://mit.edu/summer", programs[0].SourceURL)
	})

	t.Run("sends prompt with page text and source URL", func(t *testing.T) {
		t.Parallel()

		stub := &stubCompleter{resp: chatResponse("[]")}
		extractor := openai.NewExtractor(stub, "gpt-4o")

		_, err := extractor.Extract(context.Background(), "Python Bootcamp details", "https://mit.edu/summer")
		require.NoError(t, err)

		assert.Equal(t, "gpt-4o", stub.gotReq.Model)
		require.Len(t, stub.gotReq.Messages, 1)
		assert.Contains(t, stub.gotReq.Messages[0].Content, "Python Bootcamp details")
		assert.Contains(t, stub.gotReq.Messages[0].Content, "https://mit.edu/summer")
	})

	t.Run("empty text is EINVALID without calling the service", func(t *testing.T) {
		t.Parallel()

		extractor := openai.NewExtractor(nil, "") // nil client ok for this test

		_, err := extractor.Extract(context.Background(), "   ", "https://mit.edu/summer")
		require.Error(t, err)
		assert.Equal(t, progdex.EINVALID, progdex.ErrorCode(err))
	})

	t.Run("service failure is EUNAVAILABLE", func(t *testing.T) {
		t.Parallel()

		stub := &stubCompleter{err: errors.New("401 unauthorized")}
		extractor := openai.NewExtractor(stub, "")

		_, err := extractor.Extract(context.Background(), "page text", "https://mit.edu/summer")
		require.Error(t, err)
		assert.Equal(t, progdex.EUNAVAILABLE, progdex.ErrorCode(err))
		assert.Contains(t, progdex.ErrorMessage(err), "unauthorized")
	})

	t.Run("empty choices is EUNAVAILABLE", func(t *testing.T) {
		t.Parallel()

		stub := &stubCompleter{}
		extractor := openai.NewExtractor(stub, "")

		_, err := extractor.Extract(context.Background(), "page text", "https://mit.edu/summer")
		require.Error(t, err)
		assert.Equal(t, progdex.EUNAVAILABLE, progdex.ErrorCode(err))
	})

	t.Run("malformed response is EPARSE with raw text", func(t *testing.T) {
		t.Parallel()

		stub := &stubCompleter{resp: chatResponse("no programs here, sorry")}
		extractor := openai.NewExtractor(stub, "")

		_, err := extractor.Extract(context.Background(), "page text", "https://mit.edu/summer")
		require.Error(t, err)
		assert.Equal(t, progdex.EPARSE, progdex.ErrorCode(err))
		assert.Equal(t, "no programs here, sorry", progdex.ErrorRaw(err))
	})
}
