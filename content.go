package novelsrc

import (
	"html"
	"regexp"
	"strings"
)

var (
	breakPattern      = regexp.MustCompile(`(?i)<br\s*/?>|</p\s*>`)
	tagPattern        = regexp.MustCompile(`(?s)<[^>]*>`)
	scriptPattern     = regexp.MustCompile(`(?is)<(script|style)\b.*?</(script|style)\s*>`)
	whitespacePattern = regexp.MustCompile(`[ \t\f\v\x{00a0}]+`)
)

// SplitBreaks splits an HTML blob into fragments at <br> and </p> tags.
func SplitBreaks(s string) []string {
	return breakPattern.Split(s, -1)
}

// StripTags removes markup from an HTML fragment and unescapes entities.
// Script and style elements are dropped with their contents.
func StripTags(s string) string {
	s = scriptPattern.ReplaceAllString(s, "")
	s = tagPattern.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	return whitespacePattern.ReplaceAllString(s, " ")
}

// Clean trims every fragment and drops blank ones.
func Clean(fragments []string) []string {
	out := make([]string, 0, len(fragments))
	for _, f := range fragments {
		f = strings.TrimSpace(f)
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// NormalizeFragments runs the tag-stripping and cleaning stages over raw
// HTML fragments.
func NormalizeFragments(fragments []string) []string {
	out := make([]string, len(fragments))
	for i, f := range fragments {
		out[i] = StripTags(f)
	}
	return Clean(out)
}

// StripMatching returns a content hook that drops paragraphs matching any
// pattern, typically watermark sentences such as "Read only at ...".
func StripMatching(patterns ...*regexp.Regexp) ContentFunc {
	return func(paragraphs []string) []string {
		out := make([]string, 0, len(paragraphs))
	next:
		for _, p := range paragraphs {
			for _, re := range patterns {
				if re.MatchString(p) {
					continue next
				}
			}
			out = append(out, p)
		}
		return out
	}
}

// ChainContent composes content hooks left to right. Nil hooks are skipped.
func ChainContent(fns ...ContentFunc) ContentFunc {
	return func(paragraphs []string) []string {
		for _, fn := range fns {
			paragraphs = ApplyContent(fn, paragraphs)
		}
		return paragraphs
	}
}

// ChainText composes text hooks left to right. Nil hooks are skipped.
func ChainText(fns ...TextFunc) TextFunc {
	return func(s string) string {
		for _, fn := range fns {
			s = ApplyText(fn, s)
		}
		return s
	}
}
