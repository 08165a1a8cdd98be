package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/progdex/progdex"
)

// Ensure LoggingProgramService implements progdex.ProgramService.
var _ progdex.ProgramService = (*LoggingProgramService)(nil)

// LoggingProgramService wraps a ProgramService with merge logging.
// Read operations delegate without logging.
type LoggingProgramService struct {
	next   progdex.ProgramService
	logger *slog.Logger
}

// NewLoggingProgramService creates a new LoggingProgramService.
func NewLoggingProgramService(next progdex.ProgramService, logger *slog.Logger) *LoggingProgramService {
	return &LoggingProgramService{next: next, logger: logger}
}

// MergePrograms delegates to the wrapped service and logs the merge report.
func (s *LoggingProgramService) MergePrograms(ctx context.Context, candidates []*progdex.Program, sourceURL string) (*progdex.MergeReport, error) {
	begin := time.Now()
	report, err := s.next.MergePrograms(ctx, candidates, sourceURL)
	if err != nil {
		s.logger.Error("merge",
			"source", sourceURL,
			"candidates", len(candidates),
			"err", progdex.ErrorMessage(err),
		)
		return nil, err
	}
	s.logger.Info("merge",
		"source", sourceURL,
		"candidates", len(candidates),
		"created", report.Created,
		"updated", report.Updated,
		"unchanged", report.Unchanged,
		"duration", time.Since(begin),
	)
	return report, nil
}

// FindPrograms delegates to the wrapped service.
func (s *LoggingProgramService) FindPrograms(ctx context.Context, filter progdex.ProgramFilter) ([]*progdex.Program, error) {
	return s.next.FindPrograms(ctx, filter)
}

// Universities delegates to the wrapped service.
func (s *LoggingProgramService) Universities(ctx context.Context) ([]*progdex.UniversitySummary, error) {
	return s.next.Universities(ctx)
}

// Stats delegates to the wrapped service.
func (s *LoggingProgramService) Stats(ctx context.Context) (*progdex.Stats, error) {
	return s.next.Stats(ctx)
}
