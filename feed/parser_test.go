package feed_test

import (
	"testing"
	"time"

	"github.com/fwojciec/novelsrc"
	"github.com/fwojciec/novelsrc/feed"
	"github.com/fwojciec/novelsrc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rssFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:dc="http://purl.org/dc/elements/1.1/">
<channel>
  <title>Moonlit Translations</title>
  <link>https://moonlit.example.com</link>
  <description>&lt;p&gt;Fan translations of &lt;b&gt;Reverend Insanity&lt;/b&gt;.&lt;/p&gt;</description>
  <category>Xianxia</category>
  <image><url>https://moonlit.example.com/logo.png</url><title>Moonlit</title><link>https://moonlit.example.com</link></image>
  <item>
    <title>Chapter 12 - The Spring Autumn Cicada</title>
    <link>https://moonlit.example.com/2024/06/chapter-12.html</link>
    <category>Reverend Insanity</category>
    <pubDate>Sat, 15 Jun 2024 10:00:00 GMT</pubDate>
    <dc:creator>Moon</dc:creator>
    <description>&lt;p&gt;Fang Yuan opened his eyes.&lt;/p&gt;&lt;p&gt;&amp;nbsp;&lt;/p&gt;&lt;p&gt;Read only at moonlit.&lt;/p&gt;</description>
  </item>
  <item>
    <title>Announcement: break next week</title>
    <link>https://moonlit.example.com/2024/06/announcement.html</link>
    <category>News</category>
    <pubDate>Fri, 14 Jun 2024 10:00:00 GMT</pubDate>
  </item>
  <item>
    <title>Chapter 11 - Gu Worms</title>
    <link>https://moonlit.example.com/2024/06/chapter-11.html</link>
    <category>Reverend Insanity</category>
    <pubDate>Thu, 13 Jun 2024 10:00:00 GMT</pubDate>
    <description>&lt;p&gt;Eleven.&lt;/p&gt;</description>
  </item>
</channel>
</rss>`

func TestParser_ParseList(t *testing.T) {
	t.Parallel()

	t.Run("maps every item with a link", func(t *testing.T) {
		t.Parallel()

		res := feed.NewParser(nil).ParseList(rssFeed, "https://moonlit.example.com", novelsrc.ExploreDescriptor{})

		require.Len(t, res.Items, 3)
		assert.Equal(t, "https://moonlit.example.com/2024/06/chapter-12.html", res.Items[0].Key)
		assert.Equal(t, "Chapter 12 - The Spring Autumn Cicada", res.Items[0].Title)
		assert.False(t, res.HasNextMarker)
	})

	t.Run("filters by category", func(t *testing.T) {
		t.Parallel()

		res := feed.NewParser(nil).ParseList(rssFeed, "", novelsrc.ExploreDescriptor{Selector: "news"})

		require.Len(t, res.Items, 1)
		assert.Equal(t, "Announcement: break next week", res.Items[0].Title)
	})

	t.Run("delegates html documents", func(t *testing.T) {
		t.Parallel()

		html := &mock.Parser{
			ParseListFn: func(s, baseURL string, d novelsrc.ExploreDescriptor) novelsrc.ListResult {
				return novelsrc.ListResult{Items: []novelsrc.MangaInfo{{Key: "/from-html"}}}
			},
		}

		res := feed.NewParser(html).ParseList(`<html><body>not a feed</body></html>`, "", novelsrc.ExploreDescriptor{})

		require.Len(t, res.Items, 1)
		assert.Equal(t, "/from-html", res.Items[0].Key)
	})

	t.Run("returns nothing for html without delegate", func(t *testing.T) {
		t.Parallel()

		res := feed.NewParser(nil).ParseList(`<html></html>`, "", novelsrc.ExploreDescriptor{})

		assert.Empty(t, res.Items)
	})
}

func TestParser_ParseDetail(t *testing.T) {
	t.Parallel()

	info := feed.NewParser(nil).ParseDetail(rssFeed, "https://moonlit.example.com", novelsrc.DetailDescriptor{})

	assert.Equal(t, "Moonlit Translations", info.Title)
	assert.Equal(t, "Fan translations of Reverend Insanity.", info.Description)
	assert.Equal(t, "https://moonlit.example.com/logo.png", info.Cover)
	assert.Equal(t, []string{"Xianxia"}, info.Genres)
}

func TestParser_ParseChapters(t *testing.T) {
	t.Parallel()

	d := novelsrc.ChaptersDescriptor{Selector: "Reverend Insanity", Order: novelsrc.ReverseSiteOrder}
	res := feed.NewParser(nil).ParseChapters(rssFeed, "https://moonlit.example.com", d)

	require.Len(t, res.Chapters, 2)
	assert.Equal(t, "https://moonlit.example.com/2024/06/chapter-12.html", res.Chapters[0].Key)
	assert.InDelta(t, 12, res.Chapters[0].Number, 0.001)
	assert.Equal(t, time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC).UnixMilli(), res.Chapters[0].DateUpload)
	assert.Equal(t, "Moon", res.Chapters[0].Scanlator)
	assert.InDelta(t, 11, res.Chapters[1].Number, 0.001)
}

func TestParser_ParseContent(t *testing.T) {
	t.Parallel()

	t.Run("reads the item matching the chapter url", func(t *testing.T) {
		t.Parallel()

		d := novelsrc.ContentDescriptor{TitleSelector: "title"}
		pages := feed.NewParser(nil).ParseContent(rssFeed, "https://moonlit.example.com/2024/06/chapter-11.html", d)

		assert.Equal(t, []novelsrc.Page{
			novelsrc.TextPage("Chapter 11 - Gu Worms"),
			novelsrc.TextPage("Eleven."),
		}, pages)
	})

	t.Run("applies content hooks", func(t *testing.T) {
		t.Parallel()

		d := novelsrc.ContentDescriptor{
			OnContent: func(paragraphs []string) []string {
				out := paragraphs[:0:0]
				for _, p := range paragraphs {
					if p != "Read only at moonlit." {
						out = append(out, p)
					}
				}
				return out
			},
		}
		pages := feed.NewParser(nil).ParseContent(rssFeed, "https://moonlit.example.com/2024/06/chapter-12.html", d)

		assert.Equal(t, []novelsrc.Page{novelsrc.TextPage("Fang Yuan opened his eyes.")}, pages)
	})

	t.Run("delegates post pages to the html parser", func(t *testing.T) {
		t.Parallel()

		html := &mock.Parser{
			ParseContentFn: func(s, baseURL string, d novelsrc.ContentDescriptor) []novelsrc.Page {
				return []novelsrc.Page{novelsrc.TextPage("from html")}
			},
		}

		pages := feed.NewParser(html).ParseContent(`<html><body><p>post</p></body></html>`, "", novelsrc.ContentDescriptor{})

		assert.Equal(t, []novelsrc.Page{novelsrc.TextPage("from html")}, pages)
	})
}
