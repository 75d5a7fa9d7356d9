package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/novelsrc"
)

// Ensure LoggingSourceService implements novelsrc.SourceService.
var _ novelsrc.SourceService = (*LoggingSourceService)(nil)

// LoggingSourceService wraps a SourceService with debug logging.
type LoggingSourceService struct {
	next   novelsrc.SourceService
	logger *slog.Logger
}

// NewLoggingSourceService creates a new LoggingSourceService.
func NewLoggingSourceService(next novelsrc.SourceService, logger *slog.Logger) *LoggingSourceService {
	return &LoggingSourceService{next: next, logger: logger}
}

// CreateSource delegates to the wrapped service and logs the operation.
func (s *LoggingSourceService) CreateSource(ctx context.Context, source *novelsrc.Source) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("create source",
			"name", sourceName(source),
			"id", sourceID(source),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateSource(ctx, source)
}

// FindSourceByID delegates to the wrapped service and logs the operation.
func (s *LoggingSourceService) FindSourceByID(ctx context.Context, id string) (source *novelsrc.Source, err error) {
	defer func(begin time.Time) {
		s.logger.Info("find source",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindSourceByID(ctx, id)
}

// FindSourceByName delegates to the wrapped service and logs the operation.
func (s *LoggingSourceService) FindSourceByName(ctx context.Context, name string) (source *novelsrc.Source, err error) {
	defer func(begin time.Time) {
		s.logger.Info("find source",
			"name", name,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindSourceByName(ctx, name)
}

// FindSources delegates to the wrapped service and logs the operation.
func (s *LoggingSourceService) FindSources(ctx context.Context, filter novelsrc.SourceFilter) (sources []*novelsrc.Source, err error) {
	defer func(begin time.Time) {
		s.logger.Info("find sources",
			"count", len(sources),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindSources(ctx, filter)
}

// UpdateSource delegates to the wrapped service and logs the operation.
func (s *LoggingSourceService) UpdateSource(ctx context.Context, id string, cfg *novelsrc.SourceConfig) (source *novelsrc.Source, err error) {
	defer func(begin time.Time) {
		s.logger.Info("update source",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.UpdateSource(ctx, id, cfg)
}

// DeleteSource delegates to the wrapped service and logs the operation.
func (s *LoggingSourceService) DeleteSource(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete source",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteSource(ctx, id)
}

func sourceName(s *novelsrc.Source) string {
	if s == nil || s.Config == nil {
		return ""
	}
	return s.Config.Name
}

func sourceID(s *novelsrc.Source) string {
	if s == nil {
		return ""
	}
	return s.ID
}
