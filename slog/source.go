package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/novelsrc"
)

// Ensure LoggingSource implements novelsrc.Source.
var _ novelsrc.Source = (*LoggingSource)(nil)

// LoggingSource wraps a Source and logs each outbound operation.
type LoggingSource struct {
	novelsrc.Source
	logger *slog.Logger
}

// NewLoggingSource creates a new LoggingSource.
func NewLoggingSource(next novelsrc.Source, logger *slog.Logger) *LoggingSource {
	return &LoggingSource{Source: next, logger: logger.With("source", next.ID())}
}

func (s *LoggingSource) GetMangaList(ctx context.Context, q novelsrc.ListQuery, page int) (res *novelsrc.MangaPage, err error) {
	defer func(begin time.Time) {
		var count int
		var hasNext bool
		if res != nil {
			count, hasNext = len(res.Items), res.HasNextPage
		}
		s.logger.Info("manga list",
			"listing", q.Listing,
			"query", q.SearchText(),
			"page", page,
			"count", count,
			"has_next", hasNext,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.Source.GetMangaList(ctx, q, page)
}

func (s *LoggingSource) GetMangaDetails(ctx context.Context, manga novelsrc.MangaInfo, cmds novelsrc.Commands) (res novelsrc.MangaInfo, err error) {
	defer func(begin time.Time) {
		s.logger.Info("manga details",
			"key", manga.Key,
			"commands", len(cmds),
			"status", res.Status.String(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.Source.GetMangaDetails(ctx, manga, cmds)
}

func (s *LoggingSource) GetChapterList(ctx context.Context, manga novelsrc.MangaInfo, cmds novelsrc.Commands) (chapters []novelsrc.ChapterInfo, err error) {
	defer func(begin time.Time) {
		s.logger.Info("chapter list",
			"key", manga.Key,
			"commands", len(cmds),
			"count", len(chapters),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.Source.GetChapterList(ctx, manga, cmds)
}

func (s *LoggingSource) GetPageList(ctx context.Context, chapter novelsrc.ChapterInfo, cmds novelsrc.Commands) (pages []novelsrc.Page, err error) {
	defer func(begin time.Time) {
		s.logger.Info("page list",
			"key", chapter.Key,
			"commands", len(cmds),
			"count", len(pages),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.Source.GetPageList(ctx, chapter, cmds)
}
