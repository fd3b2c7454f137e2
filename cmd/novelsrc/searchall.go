package main

import (
	"fmt"

	"github.com/fwojciec/novelsrc"
	"github.com/fwojciec/novelsrc/pipeline"
)

// Run executes the search-all command. Failing sources are reported and
// do not hide the results of the others.
func (c *SearchAllCmd) Run(deps *Dependencies) error {
	sources := deps.Sources.List()
	if len(sources) == 0 {
		fmt.Fprintln(deps.Stdout, "No sources configured. Pass --config or set NOVELSRC_CONFIG.")
		return nil
	}

	results := pipeline.SearchAll(deps.Ctx, sources, c.Query, deps.Concurrency)

	var failed int
	for _, r := range results {
		fmt.Fprintf(deps.Stdout, "== %s\n", r.SourceID)
		switch {
		case r.Err != nil && novelsrc.ErrorCode(r.Err) == novelsrc.EUNSUPPORTED:
			fmt.Fprintln(deps.Stdout, "  (search not supported)")
		case r.Err != nil:
			failed++
			fmt.Fprintf(deps.Stdout, "  error: %s\n", novelsrc.ErrorMessage(r.Err))
		case r.Page == nil || len(r.Page.Items) == 0:
			fmt.Fprintln(deps.Stdout, "  no results")
		default:
			for _, m := range r.Page.Items {
				fmt.Fprintf(deps.Stdout, "  %s  %s\n", m.Title, m.Key)
			}
		}
	}

	if failed > 0 && failed == len(results) {
		return novelsrc.Errorf(novelsrc.ETRANSPORT, "search failed on every source")
	}
	return nil
}
