package readability_test

import (
	"testing"

	"github.com/fwojciec/novelsrc"
	"github.com/fwojciec/novelsrc/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chapterPage = `<!DOCTYPE html>
<html>
<head><title>Chapter 3 - The Wandering Inn</title></head>
<body>
<nav><a href="/home">Home Nav Link</a><a href="/novels">Novel Index Link</a></nav>
<aside class="sidebar"><p>Recommended novels sidebar</p></aside>
<article>
<h1>Chapter 3</h1>
<p>Erin opened the door of the inn and found the hallway empty again.</p>
<p>The goblins had left muddy footprints all the way to the kitchen.</p>
<p>She sighed, picked up a broom, and started on the <a href="/glossary/goblins">goblin</a> mess.</p>
<p><img src="/images/map.png" alt="map"></p>
</article>
<footer><p>Footer copyright text 2024</p></footer>
</body>
</html>`

func TestExtractor_RejectsEmptyInput(t *testing.T) {
	t.Parallel()

	ext := readability.NewExtractor()
	_, err := ext.Extract("")

	require.Error(t, err)
	assert.Equal(t, novelsrc.EINVALID, novelsrc.ErrorCode(err))
}

func TestExtractor_ExtractsTitle(t *testing.T) {
	t.Parallel()

	ext := readability.NewExtractor()
	result, err := ext.Extract(chapterPage)

	require.NoError(t, err)
	assert.Contains(t, result.Title, "Chapter 3")
}

func TestExtractor_KeepsChapterParagraphs(t *testing.T) {
	t.Parallel()

	ext := readability.NewExtractor()
	result, err := ext.Extract(chapterPage)

	require.NoError(t, err)
	assert.Contains(t, result.ContentHTML, "hallway empty again")
	assert.Contains(t, result.ContentHTML, "muddy footprints")
	assert.Contains(t, result.ContentHTML, "<p")
}

func TestExtractor_RemovesBoilerplate(t *testing.T) {
	t.Parallel()

	ext := readability.NewExtractor()
	result, err := ext.Extract(chapterPage)

	require.NoError(t, err)
	assert.NotContains(t, result.ContentHTML, "Home Nav Link")
	assert.NotContains(t, result.ContentHTML, "Recommended novels sidebar")
	assert.NotContains(t, result.ContentHTML, "Footer copyright text")
}

func TestExtractor_ResolvesLinksAgainstPageURL(t *testing.T) {
	t.Parallel()

	ext := readability.NewExtractor("https://novels.example.com/wandering-inn/chapter-3")
	result, err := ext.Extract(chapterPage)

	require.NoError(t, err)
	assert.Contains(t, result.ContentHTML, "https://novels.example.com/glossary/goblins")
}

func TestExtractor_IgnoresRelativePageURL(t *testing.T) {
	t.Parallel()

	ext := readability.NewExtractor("/wandering-inn/chapter-3")
	result, err := ext.Extract(chapterPage)

	require.NoError(t, err)
	assert.Contains(t, result.ContentHTML, "hallway empty again")
}
