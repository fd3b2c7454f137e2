package main

import (
	"fmt"

	"github.com/fwojciec/novelsrc"
	"github.com/fwojciec/novelsrc/pipeline"
)

// Run executes the read command.
func (c *ReadCmd) Run(deps *Dependencies) error {
	src, err := deps.Sources.Get(c.Source)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", novelsrc.ErrorMessage(err))
		return err
	}

	cmds, err := renderCommands(deps, src, novelsrc.ContentFetch, c.Key)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", novelsrc.ErrorMessage(err))
		return err
	}

	pages, err := src.GetPageList(deps.Ctx, novelsrc.ChapterInfo{Key: c.Key}, cmds)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", novelsrc.ErrorMessage(err))
		return err
	}

	if c.Hash {
		fmt.Fprintln(deps.Stdout, pipeline.ContentHash(pages))
		return nil
	}
	if len(pages) == 0 {
		fmt.Fprintln(deps.Stdout, "No content found.")
		return nil
	}
	for i, p := range pages {
		if i > 0 {
			fmt.Fprintln(deps.Stdout)
		}
		if p.Kind == novelsrc.PageImage {
			fmt.Fprintf(deps.Stdout, "[image] %s\n", p.ImageURL)
			continue
		}
		fmt.Fprintln(deps.Stdout, p.Text)
	}
	return nil
}
