package progdex_test

import (
	"testing"

	"github.com/progdex/progdex"
	"github.com/stretchr/testify/assert"
)

func TestBuildExtractionPrompt(t *testing.T) {
	t.Parallel()

	prompt := progdex.BuildExtractionPrompt("some page text", "https://mit.edu/summer")

	assert.Contains(t, prompt, "Website URL: https://mit.edu/summer")
	assert.Contains(t, prompt, "Content: some page text")
	assert.Contains(t, prompt, `"university"`)
	assert.Contains(t, prompt, `"pricing"`)
	assert.Contains(t, prompt, "return []")
}
