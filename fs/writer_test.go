package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/novelsrc"
	"github.com/fwojciec/novelsrc/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChapterPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		manga   novelsrc.MangaInfo
		chapter novelsrc.ChapterInfo
		want    string
		wantErr bool
	}{
		{
			name:    "title and numbered chapter",
			manga:   novelsrc.MangaInfo{Key: "https://example.com/novel/shadow-slave/", Title: "Shadow Slave"},
			chapter: novelsrc.ChapterInfo{Key: "https://example.com/novel/shadow-slave/chapter-12/", Number: 12},
			want:    "shadow-slave/0012-chapter-12.md",
		},
		{
			name:    "fractional number",
			manga:   novelsrc.MangaInfo{Key: "/n/1", Title: "Lord of the Mysteries"},
			chapter: novelsrc.ChapterInfo{Key: "/n/1/c/side-story", Number: 1.5},
			want:    "lord-of-the-mysteries/0001.5-side-story.md",
		},
		{
			name:    "unknown number has no prefix",
			manga:   novelsrc.MangaInfo{Key: "/n/1", Title: "Martial Peak"},
			chapter: novelsrc.ChapterInfo{Key: "/read/prologue.html"},
			want:    "martial-peak/prologue.md",
		},
		{
			name:    "falls back to key for missing title",
			manga:   novelsrc.MangaInfo{Key: "https://example.com/novel/reverend-insanity"},
			chapter: novelsrc.ChapterInfo{Key: "/c/1", Number: 1},
			want:    "reverend-insanity/0001-1.md",
		},
		{
			name:    "missing chapter key",
			manga:   novelsrc.MangaInfo{Key: "/n/1", Title: "X"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := fs.ChapterPath(tt.manga, tt.chapter)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, novelsrc.EINVALID, novelsrc.ErrorCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSlug(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a-will-eternal", fs.Slug("  A Will  Eternal! "))
	assert.Equal(t, "chapter-1-5", fs.Slug("Chapter 1.5"))
	assert.Equal(t, "", fs.Slug("!!!"))
}

func TestFormatChapter(t *testing.T) {
	t.Parallel()

	manga := novelsrc.MangaInfo{Key: "/n/1", Title: "Shadow Slave"}
	chapter := novelsrc.ChapterInfo{
		Key:        "https://example.com/c/1",
		Name:       "Chapter 1 - Nightmare Begins",
		Number:     1,
		DateUpload: time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC).UnixMilli(),
	}
	pages := []novelsrc.Page{
		novelsrc.TextPage("Sunny woke up."),
		novelsrc.ImagePage("https://example.com/map.png"),
	}

	got, err := fs.FormatChapter(manga, chapter, pages)

	require.NoError(t, err)
	assert.Equal(t, "---\n"+
		"source: https://example.com/c/1\n"+
		"title: Shadow Slave\n"+
		"chapter: Chapter 1 - Nightmare Begins\n"+
		"number: 1\n"+
		"uploaded: \"2024-03-05\"\n"+
		"---\n"+
		"\nSunny woke up.\n"+
		"\n![](https://example.com/map.png)\n", got)
}

func TestChapterWriter_WriteChapter(t *testing.T) {
	t.Parallel()

	manga := novelsrc.MangaInfo{Key: "/n/1", Title: "Shadow Slave"}
	chapter := novelsrc.ChapterInfo{Key: "/c/chapter-2", Name: "Chapter 2", Number: 2}

	t.Run("writes chapter file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		w := fs.NewChapterWriter(dir)

		err := w.WriteChapter(context.Background(), manga, chapter, []novelsrc.Page{novelsrc.TextPage("Hello.")})

		require.NoError(t, err)
		data, err := os.ReadFile(filepath.Join(dir, "shadow-slave", "0002-chapter-2.md"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "Hello.")
		_, err = os.Stat(filepath.Join(dir, "shadow-slave", "0002-chapter-2.md.tmp"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("overwrites existing chapter", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		w := fs.NewChapterWriter(dir)
		require.NoError(t, w.WriteChapter(context.Background(), manga, chapter, []novelsrc.Page{novelsrc.TextPage("Draft.")}))

		err := w.WriteChapter(context.Background(), manga, chapter, []novelsrc.Page{novelsrc.TextPage("Final.")})

		require.NoError(t, err)
		data, err := os.ReadFile(filepath.Join(dir, "shadow-slave", "0002-chapter-2.md"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "Final.")
		assert.NotContains(t, string(data), "Draft.")
	})

	t.Run("stops on cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := fs.NewChapterWriter(t.TempDir()).WriteChapter(ctx, manga, chapter, nil)

		require.ErrorIs(t, err, context.Canceled)
	})
}
