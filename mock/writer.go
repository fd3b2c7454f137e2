package mock

import (
	"context"

	"github.com/fwojciec/novelsrc"
)

var _ novelsrc.ChapterWriter = (*ChapterWriter)(nil)

// ChapterWriter is a mock implementation of novelsrc.ChapterWriter.
type ChapterWriter struct {
	WriteChapterFn func(ctx context.Context, manga novelsrc.MangaInfo, chapter novelsrc.ChapterInfo, pages []novelsrc.Page) error
}

func (w *ChapterWriter) WriteChapter(ctx context.Context, manga novelsrc.MangaInfo, chapter novelsrc.ChapterInfo, pages []novelsrc.Page) error {
	return w.WriteChapterFn(ctx, manga, chapter, pages)
}
