package pipeline

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/novelsrc"
)

// ContentHash computes an xxhash of the chapter pages so callers can
// detect changed chapter text between reads.
func ContentHash(pages []novelsrc.Page) string {
	var b strings.Builder
	for _, p := range pages {
		switch p.Kind {
		case novelsrc.PageImage:
			b.WriteString("img:")
			b.WriteString(p.ImageURL)
		default:
			b.WriteString(p.Text)
		}
		b.WriteByte('\n')
	}
	return fmt.Sprintf("%x", xxhash.Sum64String(b.String()))
}
