package main

import (
	"fmt"
	"sync"

	"github.com/fwojciec/novelsrc"
	"golang.org/x/sync/errgroup"
)

// Run executes the download command. Chapters are fetched concurrently
// and the first failure stops the download.
func (c *DownloadCmd) Run(deps *Dependencies) error {
	src, err := deps.Sources.Get(c.Source)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", novelsrc.ErrorMessage(err))
		return err
	}

	manga := novelsrc.MangaInfo{Key: c.Key}
	if info, err := src.GetMangaDetails(deps.Ctx, manga, nil); err == nil {
		manga = info
	} else {
		fmt.Fprintf(deps.Stderr, "warning: details unavailable: %s\n", novelsrc.ErrorMessage(err))
	}

	chapters, err := src.GetChapterList(deps.Ctx, manga, nil)
	if err != nil && len(chapters) == 0 {
		fmt.Fprintf(deps.Stderr, "error: %s\n", novelsrc.ErrorMessage(err))
		return err
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "warning: chapter list incomplete: %s\n", novelsrc.ErrorMessage(err))
	}
	chapters = c.selectRange(chapters)
	if len(chapters) == 0 {
		fmt.Fprintln(deps.Stdout, "No chapters to download.")
		return nil
	}

	w := deps.NewWriter(c.Out)
	var (
		mu    sync.Mutex
		saved int
	)

	g, ctx := errgroup.WithContext(deps.Ctx)
	g.SetLimit(max(deps.Concurrency, 1))
	for _, ch := range chapters {
		g.Go(func() error {
			pages, err := src.GetPageList(ctx, ch, nil)
			if err != nil {
				return err
			}
			if err := w.WriteChapter(ctx, manga, ch, pages); err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			saved++
			fmt.Fprintf(deps.Stderr, "saved %s\n", ch.Name)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", novelsrc.ErrorMessage(err))
		fmt.Fprintf(deps.Stdout, "Saved %d of %d chapters to %s\n", saved, len(chapters), c.Out)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %d chapters to %s\n", saved, c.Out)
	return nil
}

// selectRange keeps chapters numbered within [From, To]. Unnumbered
// chapters are kept only when no range is given.
func (c *DownloadCmd) selectRange(chapters []novelsrc.ChapterInfo) []novelsrc.ChapterInfo {
	if c.From <= 0 && c.To <= 0 {
		return chapters
	}
	var out []novelsrc.ChapterInfo
	for _, ch := range chapters {
		if ch.Number <= 0 {
			continue
		}
		if c.From > 0 && ch.Number < c.From {
			continue
		}
		if c.To > 0 && ch.Number > c.To {
			continue
		}
		out = append(out, ch)
	}
	return out
}
