package gemini_test

import (
	"context"
	"testing"

	"github.com/progdex/progdex"
	"github.com/progdex/progdex/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract_ReturnsErrorWhenTextEmpty(t *testing.T) {
	t.Parallel()

	extractor := gemini.NewExtractor(nil, "") // nil client ok for this test

	_, err := extractor.Extract(context.Background(), "", "https://mit.edu/summer")

	require.Error(t, err)
	assert.Equal(t, progdex.EINVALID, progdex.ErrorCode(err))
	assert.Contains(t, progdex.ErrorMessage(err), "page text required")
}

func TestBuildConfig_SetsSystemInstruction(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig()

	require.NotNil(t, config.SystemInstruction)
	require.Len(t, config.SystemInstruction.Parts, 1)
	assert.Contains(t, config.SystemInstruction.Parts[0].Text, "JSON array")
}

func TestBuildConfig_SetsTemperature(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig()

	require.NotNil(t, config.Temperature)
	assert.InDelta(t, 0.3, *config.Temperature, 0.001)
}
