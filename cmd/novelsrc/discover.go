package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/novelsrc"
)

// Run executes the discover command.
func (c *DiscoverCmd) Run(deps *Dependencies) error {
	filter, err := novelsrc.CompileURLFilter(c.Include, c.Exclude)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", novelsrc.ErrorMessage(err))
		return err
	}
	if c.Since != "" {
		since, err := time.Parse(time.DateOnly, c.Since)
		if err != nil {
			err = novelsrc.Errorf(novelsrc.EINVALID, "invalid --since date %q, want YYYY-MM-DD", c.Since)
			fmt.Fprintf(deps.Stderr, "error: %s\n", novelsrc.ErrorMessage(err))
			return err
		}
		if filter == nil {
			filter = &novelsrc.URLFilter{}
		}
		filter.Since = since
	}

	urls, err := deps.Sitemaps.DiscoverURLs(deps.Ctx, c.URL, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", novelsrc.ErrorMessage(err))
		return err
	}

	for _, u := range urls {
		fmt.Fprintln(deps.Stdout, u)
	}
	fmt.Fprintf(deps.Stderr, "%d URLs\n", len(urls))
	return nil
}
