package goquery_test

import (
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/novelsrc"
	"github.com/fwojciec/novelsrc/goquery"
	"github.com/fwojciec/novelsrc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listingHTML = `<html><body>
<div class="list">
  <div class="item">
    <h3><a href="/novel/martial-peak/">Martial Peak</a></h3>
    <img data-src="/covers/mp.jpg">
  </div>
  <div class="item">
    <h3><a href="https://example.com/novel/solo-leveling/">Solo Leveling</a></h3>
    <img src="//cdn.example.com/sl.jpg">
  </div>
  <div class="item"><h3>No link here</h3></div>
</div>
<div class="pagination"><a class="next" href="?page=2">Next »</a></div>
</body></html>`

func exploreDescriptor() novelsrc.ExploreDescriptor {
	return novelsrc.ExploreDescriptor{
		Selector:          "div.item",
		KeySelector:       "h3 a",
		TitleSelector:     "h3 a",
		CoverSelector:     "img",
		NextPageSelector:  "div.pagination a.next",
		AddBaseURLToLink:  true,
		AddBaseURLToCover: true,
	}
}

func TestParser_ParseList(t *testing.T) {
	t.Parallel()

	t.Run("extracts items with absolute links and covers", func(t *testing.T) {
		t.Parallel()

		res := goquery.NewParser().ParseList(listingHTML, "https://example.com/latest", exploreDescriptor())

		require.Len(t, res.Items, 2)
		assert.Equal(t, novelsrc.MangaInfo{
			Key:   "https://example.com/novel/martial-peak/",
			Title: "Martial Peak",
			Cover: "https://example.com/covers/mp.jpg",
		}, res.Items[0])
		assert.Equal(t, "https://cdn.example.com/sl.jpg", res.Items[1].Cover)
		assert.True(t, res.HasNextMarker)
	})

	t.Run("keeps relative keys without base url normalization", func(t *testing.T) {
		t.Parallel()

		d := exploreDescriptor()
		d.AddBaseURLToLink = false

		res := goquery.NewParser().ParseList(listingHTML, "https://example.com", d)

		require.Len(t, res.Items, 2)
		assert.Equal(t, "/novel/martial-peak/", res.Items[0].Key)
	})

	t.Run("applies title and cover hooks", func(t *testing.T) {
		t.Parallel()

		d := exploreDescriptor()
		d.OnTitle = strings.ToUpper
		d.OnCover = func(s string) string { return strings.Replace(s, ".jpg", ".webp", 1) }

		res := goquery.NewParser().ParseList(listingHTML, "https://example.com", d)

		assert.Equal(t, "MARTIAL PEAK", res.Items[0].Title)
		assert.Equal(t, "https://example.com/covers/mp.webp", res.Items[0].Cover)
	})

	t.Run("reports no marker when the next page value differs", func(t *testing.T) {
		t.Parallel()

		d := exploreDescriptor()
		d.NextPageValue = "Older Posts"

		res := goquery.NewParser().ParseList(listingHTML, "https://example.com", d)

		assert.False(t, res.HasNextMarker)
	})

	t.Run("parsing twice yields identical results", func(t *testing.T) {
		t.Parallel()

		p := goquery.NewParser()
		d := exploreDescriptor()

		first := p.ParseList(listingHTML, "https://example.com", d)
		second := p.ParseList(listingHTML, "https://example.com", d)

		assert.Equal(t, first, second)
	})

	t.Run("tolerates malformed markup", func(t *testing.T) {
		t.Parallel()

		res := goquery.NewParser().ParseList(`<div class="item"><h3><a href="/x">Broken<div`, "https://example.com", exploreDescriptor())

		require.Len(t, res.Items, 1)
		assert.Equal(t, "https://example.com/x", res.Items[0].Key)
	})
}

const detailHTML = `<html><body>
<div class="post-title"><h1> Martial   Peak </h1></div>
<div class="summary_image"><img src="/covers/mp-193x278.jpg"></div>
<div class="summary__content"><p>The journey to the martial peak is lonely.</p><p>Line one<br>line two</p></div>
<div class="author-content"><a>Momo</a></div>
<div class="genres-content"><a>Action</a><a>Adventure</a></div>
<div class="post-status"><div class="summary-content">OnGoing</div></div>
</body></html>`

func TestParser_ParseDetail(t *testing.T) {
	t.Parallel()

	d := novelsrc.DetailDescriptor{
		TitleSelector:       "div.post-title h1",
		CoverSelector:       "div.summary_image img",
		DescriptionSelector: "div.summary__content p",
		AuthorSelector:      "div.author-content a",
		GenresSelector:      "div.genres-content a",
		StatusSelector:      "div.post-status div.summary-content",
		AddBaseURLToCover:   true,
	}

	t.Run("extracts all fields", func(t *testing.T) {
		t.Parallel()

		info := goquery.NewParser().ParseDetail(detailHTML, "https://example.com/novel/mp/", d)

		assert.Equal(t, "Martial Peak", info.Title)
		assert.Equal(t, "https://example.com/covers/mp-193x278.jpg", info.Cover)
		assert.Equal(t, "The journey to the martial peak is lonely.\n\nLine one\nline two", info.Description)
		assert.Equal(t, "Momo", info.Author)
		assert.Equal(t, []string{"Action", "Adventure"}, info.Genres)
		assert.Equal(t, novelsrc.StatusOngoing, info.Status)
		assert.Empty(t, info.Key)
	})

	t.Run("uses the source status classifier", func(t *testing.T) {
		t.Parallel()

		custom := d
		custom.OnStatus = func(string) novelsrc.Status { return novelsrc.StatusOnHiatus }

		info := goquery.NewParser().ParseDetail(detailHTML, "https://example.com", custom)

		assert.Equal(t, novelsrc.StatusOnHiatus, info.Status)
	})

	t.Run("splits comma separated genres", func(t *testing.T) {
		t.Parallel()

		info := goquery.NewParser().ParseDetail(`<span class="g">Action, Drama ,Romance</span>`, "https://example.com", novelsrc.DetailDescriptor{GenresSelector: "span.g"})

		assert.Equal(t, []string{"Action", "Drama", "Romance"}, info.Genres)
	})

	t.Run("leaves missing fields empty", func(t *testing.T) {
		t.Parallel()

		info := goquery.NewParser().ParseDetail(`<html><body><p>changed markup</p></body></html>`, "https://example.com", d)

		assert.Equal(t, novelsrc.MangaInfo{}, info)
	})
}

const chaptersHTML = `<ul>
<li class="chapter"><a href="/novel/mp/chapter-2/"> Chapter 2 - Rise </a><span class="date">2 days ago</span><span class="tl">TeamX</span></li>
<li class="chapter"><a href="/novel/mp/chapter-1/">Chapter 1</a><span class="date">Jan 2, 2024</span></li>
<li class="chapter"><span>locked</span></li>
</ul>`

func TestParser_ParseChapters(t *testing.T) {
	t.Parallel()

	d := novelsrc.ChaptersDescriptor{
		Selector:          "li.chapter",
		KeySelector:       "a",
		NameSelector:      "a",
		DateSelector:      "span.date",
		ScanlatorSelector: "span.tl",
		Order:             novelsrc.ReverseSiteOrder,
		AddBaseURLToLink:  true,
	}

	t.Run("extracts chapters in site order", func(t *testing.T) {
		t.Parallel()

		dates := &mock.DateParser{
			ParseDateFn: func(text string) (time.Time, error) {
				if text == "Jan 2, 2024" {
					return time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), nil
				}
				return time.Time{}, errors.New("unparsable")
			},
		}
		p := &goquery.Parser{Dates: dates}

		res := p.ParseChapters(chaptersHTML, "https://example.com", d)

		require.Len(t, res.Chapters, 2)
		assert.Equal(t, novelsrc.ChapterInfo{
			Key:       "https://example.com/novel/mp/chapter-2/",
			Name:      "Chapter 2 - Rise",
			Number:    2,
			Scanlator: "TeamX",
		}, res.Chapters[0])
		assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC).UnixMilli(), res.Chapters[1].DateUpload)
		assert.False(t, res.HasNextMarker)
	})

	t.Run("applies the name hook", func(t *testing.T) {
		t.Parallel()

		custom := d
		custom.OnName = func(s string) string { return strings.TrimPrefix(s, "Chapter ") }

		res := goquery.NewParser().ParseChapters(chaptersHTML, "https://example.com", custom)

		assert.Equal(t, "1", res.Chapters[1].Name)
		assert.Zero(t, res.Chapters[1].DateUpload, "no date parser means unknown dates")
	})

	t.Run("parsing twice yields identical results", func(t *testing.T) {
		t.Parallel()

		p := goquery.NewParser()

		assert.Equal(t, p.ParseChapters(chaptersHTML, "https://example.com", d), p.ParseChapters(chaptersHTML, "https://example.com", d))
	})
}

func TestParser_ParseContent(t *testing.T) {
	t.Parallel()

	t.Run("selects paragraphs and drops blanks", func(t *testing.T) {
		t.Parallel()

		html := `<h1 class="ct">Chapter 1</h1><div id="content"><p> First </p><p>&nbsp;</p><p>Sec<i>ond</i></p></div>`

		pages := goquery.NewParser().ParseContent(html, "https://example.com", novelsrc.ContentDescriptor{Selector: "#content"})

		assert.Equal(t, novelsrc.TextPages([]string{"First", "Second"}), pages)
	})

	t.Run("splits an untagged blob on breaks", func(t *testing.T) {
		t.Parallel()

		html := `<div class="text">Line one<br><br/>Line <b>two</b><br>  Line three  </div>`

		pages := goquery.NewParser().ParseContent(html, "https://example.com", novelsrc.ContentDescriptor{Selector: "div.missing, div.text"})

		assert.Equal(t, novelsrc.TextPages([]string{"Line one", "Line two", "Line three"}), pages)
	})

	t.Run("splits paragraphs containing breaks", func(t *testing.T) {
		t.Parallel()

		html := `<div id="c"><p>A<br>B</p></div>`

		pages := goquery.NewParser().ParseContent(html, "https://example.com", novelsrc.ContentDescriptor{Selector: "#c"})

		assert.Equal(t, novelsrc.TextPages([]string{"A", "B"}), pages)
	})

	t.Run("applies the content hook and prepends the title", func(t *testing.T) {
		t.Parallel()

		html := `<h2 class="t">ch 1 </h2><div id="c"><p>Text</p><p>Read only at example.com</p></div>`
		d := novelsrc.ContentDescriptor{
			Selector:      "#c",
			TitleSelector: "h2.t",
			OnTitle:       strings.ToUpper,
			OnContent:     novelsrc.StripMatching(regexp.MustCompile(`(?i)read only at`)),
		}

		pages := goquery.NewParser().ParseContent(html, "https://example.com", d)

		assert.Equal(t, novelsrc.TextPages([]string{"CH 1", "Text"}), pages)
	})

	t.Run("uses the converter when requested", func(t *testing.T) {
		t.Parallel()

		conv := &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				return strings.ReplaceAll(strings.ReplaceAll(html, "<em>", "*"), "</em>", "*"), nil
			},
		}
		p := &goquery.Parser{Converter: conv}

		pages := p.ParseContent(`<div id="c"><p>An <em>emphasized</em> word</p></div>`, "https://example.com", novelsrc.ContentDescriptor{Selector: "#c", ConvertHTML: true})

		assert.Equal(t, novelsrc.TextPages([]string{"An *emphasized* word"}), pages)
	})

	t.Run("falls back to the extractor when the container is missing", func(t *testing.T) {
		t.Parallel()

		ext := &mock.Extractor{
			ExtractFn: func(html string) (*novelsrc.ExtractResult, error) {
				return &novelsrc.ExtractResult{ContentHTML: "<article><p>Recovered</p></article>"}, nil
			},
		}
		p := &goquery.Parser{Extractor: ext}

		pages := p.ParseContent(`<div class="renamed"><p>Recovered</p></div>`, "https://example.com", novelsrc.ContentDescriptor{Selector: "#content"})

		assert.Equal(t, novelsrc.TextPages([]string{"Recovered"}), pages)
	})

	t.Run("returns image pages for image chapters", func(t *testing.T) {
		t.Parallel()

		html := `<div id="c"><img src="/p/1.jpg"><img data-src="/p/2.jpg"></div>`

		pages := goquery.NewParser().ParseContent(html, "https://example.com/ch/1", novelsrc.ContentDescriptor{Selector: "#c", Paragraphs: "img"})

		assert.Equal(t, []novelsrc.Page{
			novelsrc.ImagePage("https://example.com/p/1.jpg"),
			novelsrc.ImagePage("https://example.com/p/2.jpg"),
		}, pages)
	})

	t.Run("returns nothing when content is missing", func(t *testing.T) {
		t.Parallel()

		pages := goquery.NewParser().ParseContent(`<p>x</p>`, "https://example.com", novelsrc.ContentDescriptor{Selector: "#content"})

		assert.Empty(t, pages)
	})
}
