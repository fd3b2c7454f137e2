package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/novelsrc"
)

var _ novelsrc.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService logs each title discovery run with its filter.
type LoggingSitemapService struct {
	next   novelsrc.SitemapService
	logger *slog.Logger
}

// NewLoggingSitemapService wraps next.
func NewLoggingSitemapService(next novelsrc.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

// DiscoverURLs logs the site, the filter in effect and the number of title
// URLs kept. Failed runs are logged at warn level.
func (s *LoggingSitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *novelsrc.URLFilter) (urls []string, err error) {
	defer func(begin time.Time) {
		attrs := []any{"site", baseURL}
		if filter != nil {
			attrs = append(attrs, "include", len(filter.Include), "exclude", len(filter.Exclude))
			if !filter.Since.IsZero() {
				attrs = append(attrs, "since", filter.Since.Format(time.DateOnly))
			}
		}
		attrs = append(attrs, "titles", len(urls), "duration", time.Since(begin))
		if err != nil {
			s.logger.Warn("title discovery failed", append(attrs, "err", err)...)
			return
		}
		s.logger.Info("title discovery", attrs...)
	}(time.Now())
	return s.next.DiscoverURLs(ctx, baseURL, filter)
}
