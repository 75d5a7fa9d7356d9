package mock

import (
	"context"

	"github.com/fwojciec/novelsrc"
)

var _ novelsrc.SourceService = (*SourceService)(nil)

// SourceService is a mock implementation of novelsrc.SourceService.
type SourceService struct {
	CreateSourceFn     func(ctx context.Context, source *novelsrc.Source) error
	FindSourceByIDFn   func(ctx context.Context, id string) (*novelsrc.Source, error)
	FindSourceByNameFn func(ctx context.Context, name string) (*novelsrc.Source, error)
	FindSourcesFn      func(ctx context.Context, filter novelsrc.SourceFilter) ([]*novelsrc.Source, error)
	UpdateSourceFn     func(ctx context.Context, id string, cfg *novelsrc.SourceConfig) (*novelsrc.Source, error)
	DeleteSourceFn     func(ctx context.Context, id string) error
}

func (s *SourceService) CreateSource(ctx context.Context, source *novelsrc.Source) error {
	return s.CreateSourceFn(ctx, source)
}

func (s *SourceService) FindSourceByID(ctx context.Context, id string) (*novelsrc.Source, error) {
	return s.FindSourceByIDFn(ctx, id)
}

func (s *SourceService) FindSourceByName(ctx context.Context, name string) (*novelsrc.Source, error) {
	return s.FindSourceByNameFn(ctx, name)
}

func (s *SourceService) FindSources(ctx context.Context, filter novelsrc.SourceFilter) ([]*novelsrc.Source, error) {
	return s.FindSourcesFn(ctx, filter)
}

func (s *SourceService) UpdateSource(ctx context.Context, id string, cfg *novelsrc.SourceConfig) (*novelsrc.Source, error) {
	return s.UpdateSourceFn(ctx, id, cfg)
}

func (s *SourceService) DeleteSource(ctx context.Context, id string) error {
	return s.DeleteSourceFn(ctx, id)
}
