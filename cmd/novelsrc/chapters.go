package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fwojciec/novelsrc"
)

// Run executes the chapters command. With a browser the title page is
// rendered and parsed as the first index page, which picks up chapter
// lists that scripts load after the page. When a later index page fails
// the chapters gathered so far are still printed.
func (c *ChaptersCmd) Run(deps *Dependencies) error {
	src, err := deps.Sources.Get(c.Source)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", novelsrc.ErrorMessage(err))
		return err
	}

	cmds, err := renderCommands(deps, src, novelsrc.ChapterFetch, c.Key)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", novelsrc.ErrorMessage(err))
		return err
	}

	chapters, err := src.GetChapterList(deps.Ctx, novelsrc.MangaInfo{Key: c.Key}, cmds)
	for _, ch := range chapters {
		fmt.Fprintf(deps.Stdout, "%6s  %-10s  %s  %s\n", formatNumber(ch.Number), formatDate(ch.DateUpload), ch.Name, ch.Key)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", novelsrc.ErrorMessage(err))
		return err
	}
	if len(chapters) == 0 {
		fmt.Fprintln(deps.Stdout, "No chapters found.")
	}
	return nil
}

func formatNumber(n float64) string {
	if n <= 0 {
		return "-"
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

func formatDate(ms int64) string {
	if ms <= 0 {
		return "-"
	}
	return time.UnixMilli(ms).UTC().Format(time.DateOnly)
}
