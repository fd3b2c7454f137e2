package goquery

import (
	"net/http"

	"github.com/fwojciec/novelsrc"
)

// MadaraPreset describes sites built on the Madara WordPress theme.
func MadaraPreset() novelsrc.Descriptors {
	item := novelsrc.ExploreDescriptor{
		Selector:          "div.page-item-detail, div.c-tabs-item__content",
		KeySelector:       "div.post-title a, h3 a, div.item-thumb a",
		TitleSelector:     "div.post-title a, h3 a, div.post-title",
		CoverSelector:     "img",
		CoverAttr:         "src",
		NextPageSelector:  "a.nextpostslink, div.nav-previous a, div.wp-pagenavi a.next",
		AddBaseURLToLink:  true,
		AddBaseURLToCover: true,
	}
	latest, popular, search := item, item, item
	latest.Name = "Latest"
	latest.Endpoint = "/page/{page}/?s&post_type=wp-manga&m_orderby=latest"
	popular.Name = "Popular"
	popular.Endpoint = "/page/{page}/?s&post_type=wp-manga&m_orderby=views"
	search.Endpoint = "/page/{page}/?s={query}&post_type=wp-manga"

	return novelsrc.Descriptors{
		Listings: []novelsrc.ExploreDescriptor{latest, popular},
		Search:   search,
		Detail: novelsrc.DetailDescriptor{
			TitleSelector:       "div.post-title h1, div.post-title h3",
			CoverSelector:       "div.summary_image img",
			CoverAttr:           "src",
			DescriptionSelector: "div.description-summary div.summary__content p, div.summary__content, div.manga-excerpt",
			AuthorSelector:      "div.author-content a, div.author-content",
			GenresSelector:      "div.genres-content a",
			StatusSelector:      "div.post-status div.summary-content, div.post-status",
			AddBaseURLToCover:   true,
		},
		Chapters: novelsrc.ChaptersDescriptor{
			Endpoint:         "{+key}ajax/chapters/",
			Method:           http.MethodPost,
			Selector:         "li.wp-manga-chapter",
			KeySelector:      "a",
			NameSelector:     "a",
			DateSelector:     "span.chapter-release-date i, span.chapter-release-date a, span.chapter-release-date",
			Order:            novelsrc.ReverseSiteOrder,
			AddBaseURLToLink: true,
		},
		Content: novelsrc.ContentDescriptor{
			Selector:      "div.reading-content div.text-left, div.reading-content, div.text-left",
			TitleSelector: "#chapter-heading, ol.breadcrumb li.active",
		},
	}
}

// LightNovelWPPreset describes sites built on the LightNovel WP theme.
func LightNovelWPPreset() novelsrc.Descriptors {
	item := novelsrc.ExploreDescriptor{
		Selector:          "div.listupd article, div.listupd div.bs",
		KeySelector:       "a",
		TitleSelector:     "div.tt, h2, a",
		CoverSelector:     "img",
		CoverAttr:         "src",
		NextPageSelector:  "div.hpage a.r, a.next.page-numbers",
		AddBaseURLToLink:  true,
		AddBaseURLToCover: true,
	}
	latest, popular, search := item, item, item
	latest.Name = "Latest"
	latest.Endpoint = "/series/?page={page}&order=update"
	popular.Name = "Popular"
	popular.Endpoint = "/series/?page={page}&order=popular"
	search.Endpoint = "/page/{page}/?s={query}"

	return novelsrc.Descriptors{
		Listings: []novelsrc.ExploreDescriptor{latest, popular},
		Search:   search,
		Detail: novelsrc.DetailDescriptor{
			TitleSelector:       "h1.entry-title",
			CoverSelector:       "div.sertothumb img, div.thumb img",
			CoverAttr:           "src",
			DescriptionSelector: "div.sersys.entry-content p, div.entry-content[itemprop='description'] p, div.entry-content",
			AuthorSelector:      "div.serl:contains('Author') span a, div.spe span:contains('Author') a",
			GenresSelector:      "div.sertogenre a, div.genxed a",
			StatusSelector:      "div.sertostat span, div.spe span:contains('Status')",
			AddBaseURLToCover:   true,
		},
		Chapters: novelsrc.ChaptersDescriptor{
			Selector:         "div.eplister li, ul.clstyle li",
			KeySelector:      "a",
			NameSelector:     "div.epl-title, div.epl-num, a",
			DateSelector:     "div.epl-date",
			Order:            novelsrc.ReverseSiteOrder,
			AddBaseURLToLink: true,
		},
		Content: novelsrc.ContentDescriptor{
			Selector:      "div.epcontent.entry-content, div.entry-content",
			TitleSelector: "div.cat-series, h1.entry-title",
		},
	}
}

// NovelFullPreset describes NovelFull-style sites. Their chapter index is
// paginated on the detail page.
func NovelFullPreset() novelsrc.Descriptors {
	item := novelsrc.ExploreDescriptor{
		Selector:          "div.list-truyen div.row, div.list-novel div.row",
		KeySelector:       "h3.truyen-title a, h3.novel-title a",
		TitleSelector:     "h3.truyen-title a, h3.novel-title a",
		CoverSelector:     "img.cover, img",
		CoverAttr:         "src",
		NextPageSelector:  "ul.pagination li.next:not(.disabled) a",
		AddBaseURLToLink:  true,
		AddBaseURLToCover: true,
	}
	latest, popular, search := item, item, item
	latest.Name = "Latest"
	latest.Endpoint = "/latest-release-novel?page={page}"
	popular.Name = "Popular"
	popular.Endpoint = "/most-popular?page={page}"
	search.Endpoint = "/search?keyword={query}&page={page}"

	return novelsrc.Descriptors{
		Listings: []novelsrc.ExploreDescriptor{latest, popular},
		Search:   search,
		Detail: novelsrc.DetailDescriptor{
			TitleSelector:       "h3.title",
			CoverSelector:       "div.book img",
			CoverAttr:           "src",
			DescriptionSelector: "div.desc-text",
			AuthorSelector:      "div.info a[href*='author']",
			GenresSelector:      "div.info a[href*='genre']",
			StatusSelector:      "div.info a[href*='status'], div.info div:contains('Status')",
			AddBaseURLToCover:   true,
		},
		Chapters: novelsrc.ChaptersDescriptor{
			Endpoint:         "{+key}?page={page}",
			Selector:         "ul.list-chapter li",
			KeySelector:      "a",
			NameSelector:     "a",
			NextPageSelector: "ul.pagination li.next:not(.disabled) a",
			Order:            novelsrc.KeepSiteOrder,
			AddBaseURLToLink: true,
		},
		Content: novelsrc.ContentDescriptor{
			Selector:      "#chapter-content, #chr-content, div.chapter-c",
			TitleSelector: "a.chapter-title, span.chapter-text",
		},
	}
}
