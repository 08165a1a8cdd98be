package mock

import (
	"context"

	"github.com/progdex/progdex"
)

var _ progdex.ProgramService = (*ProgramService)(nil)

// ProgramService is a mock implementation of progdex.ProgramService.
type ProgramService struct {
	MergeProgramsFn func(ctx context.Context, candidates []*progdex.Program, sourceURL string) (*progdex.MergeReport, error)
	FindProgramsFn  func(ctx context.Context, filter progdex.ProgramFilter) ([]*progdex.Program, error)
	UniversitiesFn  func(ctx context.Context) ([]*progdex.UniversitySummary, error)
	StatsFn         func(ctx context.Context) (*progdex.Stats, error)
}

func (s *ProgramService) MergePrograms(ctx context.Context, candidates []*progdex.Program, sourceURL string) (*progdex.MergeReport, error) {
	return s.MergeProgramsFn(ctx, candidates, sourceURL)
}

func (s *ProgramService) FindPrograms(ctx context.Context, filter progdex.ProgramFilter) ([]*progdex.Program, error) {
	return s.FindProgramsFn(ctx, filter)
}

func (s *ProgramService) Universities(ctx context.Context) ([]*progdex.UniversitySummary, error) {
	return s.UniversitiesFn(ctx)
}

func (s *ProgramService) Stats(ctx context.Context) (*progdex.Stats, error) {
	return s.StatsFn(ctx)
}
