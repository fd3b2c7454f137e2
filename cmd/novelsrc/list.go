package main

import (
	"fmt"
	"io"

	"github.com/fwojciec/novelsrc"
	"github.com/fwojciec/novelsrc/pipeline"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	src, err := deps.Sources.Get(c.Source)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", novelsrc.ErrorMessage(err))
		return err
	}

	q := novelsrc.ListQuery{Listing: c.Listing}
	if c.All {
		items, err := pipeline.Collect(deps.Ctx, src, q, c.MaxPages)
		printTitles(deps.Stdout, items)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", novelsrc.ErrorMessage(err))
			return err
		}
		return nil
	}

	return listPage(deps, src, q, c.Page)
}

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	src, err := deps.Sources.Get(c.Source)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", novelsrc.ErrorMessage(err))
		return err
	}
	return listPage(deps, src, novelsrc.ListQuery{Query: c.Query}, c.Page)
}

func listPage(deps *Dependencies, src novelsrc.Source, q novelsrc.ListQuery, page int) error {
	if page < 1 {
		page = 1
	}
	res, err := src.GetMangaList(deps.Ctx, q, page)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", novelsrc.ErrorMessage(err))
		return err
	}

	if len(res.Items) == 0 {
		fmt.Fprintln(deps.Stdout, "No titles found.")
		return nil
	}
	printTitles(deps.Stdout, res.Items)
	if res.HasNextPage {
		fmt.Fprintf(deps.Stdout, "\nMore results: --page %d\n", page+1)
	}
	return nil
}

func printTitles(w io.Writer, items []novelsrc.MangaInfo) {
	for _, m := range items {
		fmt.Fprintf(w, "%s  %s\n", m.Title, m.Key)
	}
}
