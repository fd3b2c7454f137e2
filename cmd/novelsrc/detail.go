package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/novelsrc"
	"github.com/fwojciec/novelsrc/pipeline"
)

// Run executes the detail command.
func (c *DetailCmd) Run(deps *Dependencies) error {
	src, err := deps.Sources.Get(c.Source)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", novelsrc.ErrorMessage(err))
		return err
	}

	cmds, err := renderCommands(deps, src, novelsrc.DetailFetch, c.Key)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", novelsrc.ErrorMessage(err))
		return err
	}

	info, err := src.GetMangaDetails(deps.Ctx, novelsrc.MangaInfo{Key: c.Key}, cmds)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", novelsrc.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Title:   %s\n", info.Title)
	if info.Author != "" {
		fmt.Fprintf(deps.Stdout, "Author:  %s\n", info.Author)
	}
	fmt.Fprintf(deps.Stdout, "Status:  %s\n", info.Status)
	if len(info.Genres) > 0 {
		fmt.Fprintf(deps.Stdout, "Genres:  %s\n", strings.Join(info.Genres, ", "))
	}
	if info.Cover != "" {
		fmt.Fprintf(deps.Stdout, "Cover:   %s\n", info.Cover)
	}
	if info.Description != "" {
		fmt.Fprintf(deps.Stdout, "\n%s\n", info.Description)
	}
	return nil
}

// renderCommands renders key in the browser when one is configured and
// returns the page as a command of kind.
func renderCommands(deps *Dependencies, src novelsrc.Source, kind novelsrc.CommandKind, key string) (novelsrc.Commands, error) {
	if deps.Renderer == nil {
		return nil, nil
	}
	cmd, err := pipeline.RenderCommand(deps.Ctx, deps.Renderer, kind, novelsrc.AbsoluteURL(src.BaseURL(), key))
	if err != nil {
		return nil, err
	}
	return novelsrc.Commands{cmd}, nil
}
