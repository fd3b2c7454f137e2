package novelsrc

import (
	"regexp"
	"strconv"
)

// ChapterInfo describes one chapter of a title.
type ChapterInfo struct {
	Key  string
	Name string

	// Number orders chapters. -1 or 0 means unknown.
	Number float64

	// DateUpload is the upload time in epoch milliseconds, 0 if unknown.
	DateUpload int64

	// Scanlator credits the translator, may be blank.
	Scanlator string
}

// ChapterOrder says how a source's chapter index is ordered relative to
// the order the pipeline returns. It has no usable zero value: every
// source must choose.
type ChapterOrder int

// Chapter orders.
const (
	ChapterOrderUnset ChapterOrder = iota
	KeepSiteOrder
	ReverseSiteOrder
)

// String returns the configuration name of the order.
func (o ChapterOrder) String() string {
	switch o {
	case KeepSiteOrder:
		return "keep"
	case ReverseSiteOrder:
		return "reverse"
	default:
		return "unset"
	}
}

// ParseChapterOrder parses "keep" or "reverse".
func ParseChapterOrder(s string) (ChapterOrder, error) {
	switch s {
	case "keep":
		return KeepSiteOrder, nil
	case "reverse":
		return ReverseSiteOrder, nil
	}
	return ChapterOrderUnset, Errorf(EINVALID, "chapter order must be \"keep\" or \"reverse\", got %q", s)
}

// Apply returns chapters in the order o describes. The input is not modified.
func (o ChapterOrder) Apply(chapters []ChapterInfo) []ChapterInfo {
	out := make([]ChapterInfo, len(chapters))
	copy(out, chapters)
	if o == ReverseSiteOrder {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

var chapterNumberPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:chapter|chap|ch\.?|episode|ep\.?|cap[ií]tulo|cap\.?|chương|глава|розділ|bölüm|bab|الفصل)\s*[:#-]?\s*(\d+(?:[.,]\d+)?)`),
	regexp.MustCompile(`(\d+(?:[.,]\d+)?)`),
}

// ChapterNumber extracts a chapter number from a label such as
// "Chapter 12.5: The Return". Returns -1 if the label holds no number.
func ChapterNumber(name string) float64 {
	for _, re := range chapterNumberPatterns {
		m := re.FindStringSubmatch(name)
		if len(m) < 2 {
			continue
		}
		n, err := strconv.ParseFloat(normalizeDecimal(m[1]), 64)
		if err == nil {
			return n
		}
	}
	return -1
}

func normalizeDecimal(s string) string {
	b := []byte(s)
	for i := range b {
		if b[i] == ',' {
			b[i] = '.'
		}
	}
	return string(b)
}
