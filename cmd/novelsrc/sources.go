package main

import (
	"fmt"
	"strings"
)

// Run executes the sources command.
func (c *SourcesCmd) Run(deps *Dependencies) error {
	sources := deps.Sources.List()
	if len(sources) == 0 {
		fmt.Fprintln(deps.Stdout, "No sources configured. Pass --config or set NOVELSRC_CONFIG.")
		return nil
	}

	for _, src := range sources {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n", src.ID(), src.Name(), src.Lang(), src.BaseURL())
		if listings := src.Listings(); len(listings) > 0 {
			fmt.Fprintf(deps.Stdout, "    listings: %s\n", strings.Join(listings, ", "))
		}
	}
	return nil
}
