package mock

import (
	"context"

	"github.com/fwojciec/novelsrc"
)

var _ novelsrc.Source = (*Source)(nil)

// Source is a mock implementation of novelsrc.Source.
type Source struct {
	IDFn              func() string
	NameFn            func() string
	LangFn            func() string
	BaseURLFn         func() string
	ListingsFn        func() []string
	FiltersFn         func() novelsrc.FilterList
	GetMangaListFn    func(ctx context.Context, query novelsrc.ListQuery, page int) (*novelsrc.MangaPage, error)
	GetMangaDetailsFn func(ctx context.Context, manga novelsrc.MangaInfo, cmds novelsrc.Commands) (novelsrc.MangaInfo, error)
	GetChapterListFn  func(ctx context.Context, manga novelsrc.MangaInfo, cmds novelsrc.Commands) ([]novelsrc.ChapterInfo, error)
	GetPageListFn     func(ctx context.Context, chapter novelsrc.ChapterInfo, cmds novelsrc.Commands) ([]novelsrc.Page, error)
}

func (s *Source) ID() string { return s.IDFn() }

func (s *Source) Name() string { return s.NameFn() }

func (s *Source) Lang() string { return s.LangFn() }

func (s *Source) BaseURL() string { return s.BaseURLFn() }

func (s *Source) Listings() []string { return s.ListingsFn() }

func (s *Source) Filters() novelsrc.FilterList { return s.FiltersFn() }

func (s *Source) GetMangaList(ctx context.Context, query novelsrc.ListQuery, page int) (*novelsrc.MangaPage, error) {
	return s.GetMangaListFn(ctx, query, page)
}

func (s *Source) GetMangaDetails(ctx context.Context, manga novelsrc.MangaInfo, cmds novelsrc.Commands) (novelsrc.MangaInfo, error) {
	return s.GetMangaDetailsFn(ctx, manga, cmds)
}

func (s *Source) GetChapterList(ctx context.Context, manga novelsrc.MangaInfo, cmds novelsrc.Commands) ([]novelsrc.ChapterInfo, error) {
	return s.GetChapterListFn(ctx, manga, cmds)
}

func (s *Source) GetPageList(ctx context.Context, chapter novelsrc.ChapterInfo, cmds novelsrc.Commands) ([]novelsrc.Page, error) {
	return s.GetPageListFn(ctx, chapter, cmds)
}
