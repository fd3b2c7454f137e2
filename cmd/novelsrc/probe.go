package main

import (
	"fmt"

	"github.com/fwojciec/novelsrc"
)

// Run executes the probe command: it fetches url, detects the theme and
// prints the preset a source definition could start from.
func (c *ProbeCmd) Run(deps *Dependencies) error {
	html, err := deps.Fetcher.Fetch(deps.Ctx, &novelsrc.Request{URL: c.URL})
	if err != nil {
		err = novelsrc.TransportError(c.URL, err)
		fmt.Fprintf(deps.Stderr, "error: %s\n", novelsrc.ErrorMessage(err))
		return err
	}

	theme, preset, ok := deps.Presets.GetForHTML(html)
	if !ok {
		fmt.Fprintln(deps.Stdout, "Theme: unknown")
		fmt.Fprintln(deps.Stdout, "No preset matches; write the descriptors by hand.")
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Theme: %s\n", theme)
	fmt.Fprintf(deps.Stdout, "Use \"theme: %s\" in the source definition.\n", theme)
	for _, l := range preset.Listings {
		fmt.Fprintf(deps.Stdout, "  listing %s: %s\n", l.Name, l.Endpoint)
	}
	if preset.Search.Endpoint != "" {
		fmt.Fprintf(deps.Stdout, "  search: %s\n", preset.Search.Endpoint)
	}
	fmt.Fprintf(deps.Stdout, "  chapter order: %s\n", preset.Chapters.Order)
	return nil
}
