package novelsrc

import (
	"context"
	"regexp"
	"slices"
	"time"
)

// SitemapService discovers title URLs from website sitemaps. Many novel
// sites publish every title page in their sitemap, which gives a complete
// catalogue without paging through listings.
type SitemapService interface {
	// DiscoverURLs returns the URLs listed in the sitemaps of baseURL that
	// pass filter. A nil filter passes everything.
	DiscoverURLs(ctx context.Context, baseURL string, filter *URLFilter) ([]string, error)
}

// URLFilter selects sitemap entries.
type URLFilter struct {
	// Include keeps only URLs matching at least one pattern when non-empty.
	Include []*regexp.Regexp

	// Exclude drops URLs matching any pattern. Applied after Include.
	Exclude []*regexp.Regexp

	// Since drops entries whose lastmod is before it. Entries without a
	// lastmod always pass.
	Since time.Time
}

// Match reports whether url passes the patterns of f.
func (f *URLFilter) Match(url string) bool {
	if f == nil {
		return true
	}
	matches := func(re *regexp.Regexp) bool { return re.MatchString(url) }
	if len(f.Include) > 0 && !slices.ContainsFunc(f.Include, matches) {
		return false
	}
	return !slices.ContainsFunc(f.Exclude, matches)
}

// Fresh reports whether an entry last modified at lastmod passes Since.
func (f *URLFilter) Fresh(lastmod time.Time) bool {
	if f == nil || f.Since.IsZero() || lastmod.IsZero() {
		return true
	}
	return !lastmod.Before(f.Since)
}

// CompileURLFilter builds a filter from include and exclude expressions.
// Returns nil when both lists are empty.
func CompileURLFilter(include, exclude []string) (*URLFilter, error) {
	if len(include) == 0 && len(exclude) == 0 {
		return nil, nil
	}
	var (
		f   URLFilter
		err error
	)
	if f.Include, err = compileAll("include", include); err != nil {
		return nil, err
	}
	if f.Exclude, err = compileAll("exclude", exclude); err != nil {
		return nil, err
	}
	return &f, nil
}

func compileAll(kind string, patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, Errorf(EINVALID, "invalid %s pattern %q: %v", kind, p, err)
		}
		out = append(out, re)
	}
	return out, nil
}
