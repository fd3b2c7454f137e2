package mock

import (
	"context"

	"github.com/fwojciec/novelsrc"
)

var _ novelsrc.Converter = (*Converter)(nil)

// Converter is a mock implementation of novelsrc.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ novelsrc.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of novelsrc.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*novelsrc.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*novelsrc.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ novelsrc.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of novelsrc.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *novelsrc.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *novelsrc.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}
