// Package goquery implements the selector engine and descriptor parsers
// on top of github.com/PuerkitoBio/goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// SelfSelector selects the element the selector is evaluated against.
const SelfSelector = ":self"

// lazyImageAttrs are consulted, in order, when an image attribute is blank.
var lazyImageAttrs = []string{"data-src", "data-lazy-src", "data-original", "data-cfsrc", "srcset", "data-srcset"}

// SplitChain splits a comma-separated fallback chain into alternatives.
// Commas nested in brackets, parentheses or quotes do not split.
func SplitChain(selector string) []string {
	var (
		parts []string
		depth int
		quote rune
		start int
	)
	for i, r := range selector {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == '[' || r == '(':
			depth++
		case r == ']' || r == ')':
			if depth > 0 {
				depth--
			}
		case r == ',' && depth == 0:
			parts = appendAlternative(parts, selector[start:i])
			start = i + 1
		}
	}
	return appendAlternative(parts, selector[start:])
}

func appendAlternative(parts []string, s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return parts
	}
	return append(parts, s)
}

// find evaluates a single alternative against sel.
func find(sel *goquery.Selection, alternative string) *goquery.Selection {
	if alternative == SelfSelector {
		return sel
	}
	return sel.Find(alternative)
}

// Select returns the elements matched by the first alternative of the
// chain that matches anything. The result is empty when nothing matches.
func Select(sel *goquery.Selection, selector string) *goquery.Selection {
	for _, alt := range SplitChain(selector) {
		if found := find(sel, alt); found.Length() > 0 {
			return found
		}
	}
	return sel.Slice(0, 0)
}

// Value returns the first non-blank value produced by the chain: the
// visible text when attr is empty, otherwise the attribute.
func Value(sel *goquery.Selection, selector, attr string) string {
	if sel == nil {
		return ""
	}
	for _, alt := range SplitChain(selector) {
		var value string
		find(sel, alt).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			value = elementValue(s, attr)
			return value == ""
		})
		if value != "" {
			return value
		}
	}
	return ""
}

// Text returns the first non-blank text produced by the chain.
func Text(sel *goquery.Selection, selector string) string {
	return Value(sel, selector, "")
}

// Attr returns the first non-blank attribute produced by the chain.
func Attr(sel *goquery.Selection, selector, attr string) string {
	return Value(sel, selector, attr)
}

// Values returns every non-blank value of the first alternative that
// yields at least one.
func Values(sel *goquery.Selection, selector, attr string) []string {
	if sel == nil {
		return nil
	}
	for _, alt := range SplitChain(selector) {
		var values []string
		find(sel, alt).Each(func(_ int, s *goquery.Selection) {
			if v := elementValue(s, attr); v != "" {
				values = append(values, v)
			}
		})
		if len(values) > 0 {
			return values
		}
	}
	return nil
}

// elementValue reads text or an attribute from the first element of s.
func elementValue(s *goquery.Selection, attr string) string {
	if attr == "" {
		return collapse(s.First().Text())
	}
	v := strings.TrimSpace(s.AttrOr(attr, ""))
	if v == "" && isImageAttr(attr) {
		for _, lazy := range lazyImageAttrs {
			if v = strings.TrimSpace(s.AttrOr(lazy, "")); v != "" {
				attr = lazy
				break
			}
		}
	}
	if strings.HasSuffix(attr, "srcset") {
		v = firstSrcsetCandidate(v)
	}
	return v
}

func isImageAttr(attr string) bool {
	return attr == "src" || attr == "data-src"
}

// firstSrcsetCandidate returns the URL of the first srcset entry.
func firstSrcsetCandidate(srcset string) string {
	first, _, _ := strings.Cut(srcset, ",")
	fields := strings.Fields(first)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// collapse trims s and folds internal whitespace runs to single spaces.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
