package progdex_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/progdex/progdex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProgram() *progdex.Program {
	return &progdex.Program{
		ID:          "abc-123",
		University:  "MIT",
		Name:        "AI Camp",
		Description: "Six weeks of machine learning.",
		Eligibility: "High school students",
		Duration:    "6 weeks",
		Pricing:     "Free",
		Link:        "https://mit.edu/ai-camp",
		SourceURL:   "https://mit.edu/summer",
		AddedAt:     time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestWriteProgramsJSON(t *testing.T) {
	t.Parallel()

	t.Run("round-trips programs", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, progdex.WriteProgramsJSON(&buf, []*progdex.Program{testProgram()}))

		var decoded []*progdex.Program
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		require.Len(t, decoded, 1)
		assert.Equal(t, testProgram(), decoded[0])
	})

	t.Run("nil programs export as empty array", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, progdex.WriteProgramsJSON(&buf, nil))
		assert.Equal(t, "[]", string(bytes.TrimSpace(buf.Bytes())))
	})
}

func TestWriteProgramsCSV(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, progdex.WriteProgramsCSV(&buf, []*progdex.Program{testProgram()}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, progdex.CSVHeader, records[0])
	assert.Equal(t, []string{
		"MIT", "AI Camp", "Six weeks of machine learning.", "High school students",
		"6 weeks", "Free", "https://mit.edu/ai-camp", "https://mit.edu/summer",
		"2024-06-01T12:00:00Z", "abc-123",
	}, records[1])
}
