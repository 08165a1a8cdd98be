package pipeline_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/progdex/progdex"
	"github.com/progdex/progdex/mock"
	"github.com/progdex/progdex/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPipeline() (*pipeline.Pipeline, *mock.Fetcher, *mock.Cleaner, *mock.Extractor, *mock.ProgramService) {
	fetcher := &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			return "<html><body>AI Camp</body></html>", nil
		},
	}
	cleaner := &mock.Cleaner{
		CleanFn: func(html string) (string, error) {
			return "AI Camp", nil
		},
	}
	extractor := &mock.Extractor{
		ExtractFn: func(ctx context.Context, text, sourceURL string) ([]*progdex.Program, error) {
			return []*progdex.Program{{University: "MIT", Name: "AI Camp"}}, nil
		},
	}
	programs := &mock.ProgramService{
		MergeProgramsFn: func(ctx context.Context, candidates []*progdex.Program, sourceURL string) (*progdex.MergeReport, error) {
			return &progdex.MergeReport{Created: len(candidates), Universities: []string{"MIT"}}, nil
		},
	}
	p := &pipeline.Pipeline{Fetcher: fetcher, Cleaner: cleaner, Extractor: extractor, Programs: programs}
	return p, fetcher, cleaner, extractor, programs
}

func TestPipeline_Run(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("merges extracted programs", func(t *testing.T) {
		t.Parallel()

		p, _, _, _, _ := testPipeline()

		result, err := p.Run(ctx, "https://mit.edu/summer")
		require.NoError(t, err)
		assert.Equal(t, pipeline.StatusMerged, result.Status)
		assert.Equal(t, "https://mit.edu/summer", result.URL)
		require.NotNil(t, result.Report)
		assert.Equal(t, 1, result.Report.Created)
	})

	t.Run("fetch failure short-circuits", func(t *testing.T) {
		t.Parallel()

		p, fetcher, _, extractor, programs := testPipeline()
		fetcher.FetchFn = func(ctx context.Context, url string) (string, error) {
			return "", progdex.Errorf(progdex.EFETCH, "HTTP 404 for %s", url)
		}
		extractor.ExtractFn = func(ctx context.Context, text, sourceURL string) ([]*progdex.Program, error) {
			t.Fatal("extractor must not be called after fetch failure")
			return nil, nil
		}
		programs.MergeProgramsFn = func(ctx context.Context, candidates []*progdex.Program, sourceURL string) (*progdex.MergeReport, error) {
			t.Fatal("store must not be touched after fetch failure")
			return nil, nil
		}

		_, err := p.Run(ctx, "https://mit.edu/missing")
		require.Error(t, err)
		assert.Equal(t, progdex.EFETCH, progdex.ErrorCode(err))
	})

	t.Run("empty text skips extraction", func(t *testing.T) {
		t.Parallel()

		p, _, cleaner, extractor, _ := testPipeline()
		cleaner.CleanFn = func(html string) (string, error) { return "", nil }
		extractor.ExtractFn = func(ctx context.Context, text, sourceURL string) ([]*progdex.Program, error) {
			t.Fatal("extractor must not be called for empty text")
			return nil, nil
		}

		result, err := p.Run(ctx, "https://mit.edu/empty")
		require.NoError(t, err)
		assert.Equal(t, pipeline.StatusNoContent, result.Status)
		assert.Nil(t, result.Report)
	})

	t.Run("zero candidates skips merge", func(t *testing.T) {
		t.Parallel()

		p, _, _, extractor, programs := testPipeline()
		extractor.ExtractFn = func(ctx context.Context, text, sourceURL string) ([]*progdex.Program, error) {
			return nil, nil
		}
		programs.MergeProgramsFn = func(ctx context.Context, candidates []*progdex.Program, sourceURL string) (*progdex.MergeReport, error) {
			t.Fatal("store must not be touched when nothing was extracted")
			return nil, nil
		}

		result, err := p.Run(ctx, "https://mit.edu/sports")
		require.NoError(t, err)
		assert.Equal(t, pipeline.StatusNoPrograms, result.Status)
		assert.Nil(t, result.Report)
	})

	t.Run("parse failure propagates without touching store", func(t *testing.T) {
		t.Parallel()

		p, _, _, extractor, programs := testPipeline()
		extractor.ExtractFn = func(ctx context.Context, text, sourceURL string) ([]*progdex.Program, error) {
			parseErr := progdex.Errorf(progdex.EPARSE, "extraction response is not a JSON program array")
			parseErr.Raw = "garbled output"
			return nil, parseErr
		}
		programs.MergeProgramsFn = func(ctx context.Context, candidates []*progdex.Program, sourceURL string) (*progdex.MergeReport, error) {
			t.Fatal("store must not be touched after parse failure")
			return nil, nil
		}

		_, err := p.Run(ctx, "https://mit.edu/summer")
		require.Error(t, err)
		assert.Equal(t, progdex.EPARSE, progdex.ErrorCode(err))
		assert.Equal(t, "garbled output", progdex.ErrorRaw(err))
	})

	t.Run("truncates text before extraction", func(t *testing.T) {
		t.Parallel()

		p, _, cleaner, extractor, _ := testPipeline()
		p.MaxTextLen = 10
		cleaner.CleanFn = func(html string) (string, error) {
			return strings.Repeat("a", 100), nil
		}
		var gotText string
		extractor.ExtractFn = func(ctx context.Context, text, sourceURL string) ([]*progdex.Program, error) {
			gotText = text
			return nil, nil
		}

		_, err := p.Run(ctx, "https://mit.edu/summer")
		require.NoError(t, err)
		assert.Len(t, gotText, 10)
	})

	t.Run("truncation respects rune boundaries", func(t *testing.T) {
		t.Parallel()

		p, _, cleaner, extractor, _ := testPipeline()
		p.MaxTextLen = 5
		cleaner.CleanFn = func(html string) (string, error) {
			return "abééé", nil // 2 + 3*2 bytes
		}
		var gotText string
		extractor.ExtractFn = func(ctx context.Context, text, sourceURL string) ([]*progdex.Program, error) {
			gotText = text
			return nil, nil
		}

		_, err := p.Run(ctx, "https://mit.edu/summer")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix("abéé", gotText))
		assert.Equal(t, "abé", gotText)
	})
}

func TestPipeline_RunAll(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("processes all URLs and keeps input order", func(t *testing.T) {
		t.Parallel()

		p, _, _, _, _ := testPipeline()

		summary, err := p.RunAll(ctx, []string{"https://a.edu", "https://b.edu", "https://c.edu"}, nil)
		require.NoError(t, err)
		require.Len(t, summary.Results, 3)
		assert.Zero(t, summary.Failed)
		assert.Equal(t, "https://a.edu", summary.Results[0].URL)
		assert.Equal(t, "https://c.edu", summary.Results[2].URL)
	})

	t.Run("a failing URL does not stop the batch", func(t *testing.T) {
		t.Parallel()

		p, fetcher, _, _, _ := testPipeline()
		fetcher.FetchFn = func(ctx context.Context, url string) (string, error) {
			if url == "https://broken.edu" {
				return "", progdex.Errorf(progdex.EFETCH, "HTTP 500 for %s", url)
			}
			return "<html>ok</html>", nil
		}

		var mu sync.Mutex
		var failed []string
		progress := func(event pipeline.ProgressEvent) {
			if event.Type == pipeline.ProgressFailed {
				mu.Lock()
				failed = append(failed, event.URL)
				mu.Unlock()
			}
		}

		summary, err := p.RunAll(ctx, []string{"https://ok.edu", "https://broken.edu"}, progress)
		require.NoError(t, err)
		require.Len(t, summary.Results, 1)
		assert.Equal(t, 1, summary.Failed)
		assert.Equal(t, []string{"https://broken.edu"}, failed)
	})

	t.Run("reports start and finish", func(t *testing.T) {
		t.Parallel()

		p, _, _, _, _ := testPipeline()

		var mu sync.Mutex
		var events []pipeline.ProgressType
		progress := func(event pipeline.ProgressEvent) {
			mu.Lock()
			events = append(events, event.Type)
			mu.Unlock()
		}

		_, err := p.RunAll(ctx, []string{"https://a.edu"}, progress)
		require.NoError(t, err)
		require.NotEmpty(t, events)
		assert.Equal(t, pipeline.ProgressStarted, events[0])
		assert.Equal(t, pipeline.ProgressFinished, events[len(events)-1])
	})
}
