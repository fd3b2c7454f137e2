// Package fs exports chapters as markdown files.
package fs

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/novelsrc"
	"gopkg.in/yaml.v3"
)

// Ensure ChapterWriter implements novelsrc.ChapterWriter at compile time.
var _ novelsrc.ChapterWriter = (*ChapterWriter)(nil)

// ChapterWriter writes chapters below a base directory, one directory per
// title and one markdown file per chapter.
type ChapterWriter struct {
	baseDir string
}

// NewChapterWriter creates a ChapterWriter rooted at baseDir.
func NewChapterWriter(baseDir string) *ChapterWriter {
	return &ChapterWriter{baseDir: baseDir}
}

// WriteChapter writes the chapter file. The file is written to a
// temporary name first and renamed, so readers never see a partial file.
func (w *ChapterWriter) WriteChapter(ctx context.Context, manga novelsrc.MangaInfo, chapter novelsrc.ChapterInfo, pages []novelsrc.Page) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	relPath, err := ChapterPath(manga, chapter)
	if err != nil {
		return err
	}
	content, err := FormatChapter(manga, chapter, pages)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(w.baseDir, relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	tmp := fullPath + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), 0644); err != nil {
		return err
	}
	return os.Rename(tmp, fullPath)
}

// ChapterPath returns the relative file path of a chapter.
// Example: "Shadow Slave", chapter 12 at /shadow-slave/chapter-12 →
// shadow-slave/0012-chapter-12.md
func ChapterPath(manga novelsrc.MangaInfo, chapter novelsrc.ChapterInfo) (string, error) {
	if manga.Key == "" || chapter.Key == "" {
		return "", novelsrc.Errorf(novelsrc.EINVALID, "title and chapter keys required")
	}

	dir := Slug(manga.Title)
	if dir == "" {
		dir = Slug(lastSegment(manga.Key))
	}
	name := Slug(lastSegment(chapter.Key))
	if name == "" {
		name = Slug(chapter.Name)
	}
	if dir == "" || name == "" {
		return "", novelsrc.Errorf(novelsrc.EINVALID, "cannot derive a file name for chapter %q", chapter.Key)
	}

	return path.Join(dir, numberPrefix(chapter.Number)+name+".md"), nil
}

// Slug lowercases s and replaces every run of characters other than
// letters and digits with a single hyphen.
func Slug(s string) string {
	var b strings.Builder
	hyphen := false
	for _, r := range strings.ToLower(s) {
		if ('a' <= r && r <= 'z') || ('0' <= r && r <= '9') || r > 127 {
			b.WriteRune(r)
			hyphen = false
			continue
		}
		if !hyphen && b.Len() > 0 {
			b.WriteByte('-')
			hyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// numberPrefix pads the chapter number so files sort in reading order.
func numberPrefix(n float64) string {
	if n <= 0 {
		return ""
	}
	whole := math.Floor(n)
	prefix := fmt.Sprintf("%04d", int(whole))
	if frac := n - whole; frac > 0 {
		prefix += strings.TrimPrefix(strconv.FormatFloat(frac, 'f', -1, 64), "0")
	}
	return prefix + "-"
}

func lastSegment(key string) string {
	if u, err := url.Parse(key); err == nil {
		key = u.Path
	}
	key = strings.TrimRight(key, "/")
	if i := strings.LastIndex(key, "/"); i >= 0 {
		key = key[i+1:]
	}
	return strings.TrimSuffix(key, path.Ext(key))
}

type frontmatter struct {
	Source    string  `yaml:"source"`
	Title     string  `yaml:"title,omitempty"`
	Chapter   string  `yaml:"chapter,omitempty"`
	Number    float64 `yaml:"number,omitempty"`
	Uploaded  string  `yaml:"uploaded,omitempty"`
	Scanlator string  `yaml:"scanlator,omitempty"`
}

// FormatChapter formats a chapter with YAML frontmatter. Text pages
// become paragraphs and image pages become markdown images.
func FormatChapter(manga novelsrc.MangaInfo, chapter novelsrc.ChapterInfo, pages []novelsrc.Page) (string, error) {
	fm := frontmatter{
		Source:    chapter.Key,
		Title:     manga.Title,
		Chapter:   chapter.Name,
		Number:    chapter.Number,
		Scanlator: chapter.Scanlator,
	}
	if chapter.DateUpload > 0 {
		fm.Uploaded = time.UnixMilli(chapter.DateUpload).UTC().Format(time.DateOnly)
	}
	header, err := yaml.Marshal(fm)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n")
	for _, p := range pages {
		b.WriteString("\n")
		if p.Kind == novelsrc.PageImage {
			b.WriteString("![](" + p.ImageURL + ")\n")
			continue
		}
		b.WriteString(p.Text)
		b.WriteString("\n")
	}
	return b.String(), nil
}
