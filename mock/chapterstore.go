package mock

import (
	"context"

	"github.com/fwojciec/novelsrc"
)

var _ novelsrc.ChapterStore = (*ChapterStore)(nil)

// ChapterStore is a mock implementation of novelsrc.ChapterStore.
type ChapterStore struct {
	SaveFn   func(ctx context.Context, item novelsrc.ChapterItem, content string) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *ChapterStore) Save(ctx context.Context, item novelsrc.ChapterItem, content string) error {
	return s.SaveFn(ctx, item, content)
}

func (s *ChapterStore) Commit() error {
	return s.CommitFn()
}

func (s *ChapterStore) Abort() error {
	return s.AbortFn()
}
