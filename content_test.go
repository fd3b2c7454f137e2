package novelsrc_test

import (
	"regexp"
	"strings"
	"testing"

	"github.com/fwojciec/novelsrc"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeFragments(t *testing.T) {
	t.Parallel()

	t.Run("splits blobs on breaks and paragraph ends", func(t *testing.T) {
		t.Parallel()

		blob := "First line<br>Second <b>line</b><br/>  <br />Third</p><p>Fourth"

		got := novelsrc.NormalizeFragments(novelsrc.SplitBreaks(blob))

		assert.Equal(t, []string{"First line", "Second line", "Third", "Fourth"}, got)
	})

	t.Run("unescapes entities and drops scripts", func(t *testing.T) {
		t.Parallel()

		got := novelsrc.StripTags(`Tom &amp; Jerry<script>var x = "<b>";</script>`)

		assert.Equal(t, "Tom & Jerry", got)
	})
}

func TestStripMatching(t *testing.T) {
	t.Parallel()

	strip := novelsrc.StripMatching(regexp.MustCompile(`(?i)read (only )?at`))

	got := strip([]string{"He left.", "Read only at example.com", "She stayed."})

	assert.Equal(t, []string{"He left.", "She stayed."}, got)
}

func TestChainContent(t *testing.T) {
	t.Parallel()

	upper := func(ps []string) []string {
		out := make([]string, len(ps))
		for i, p := range ps {
			out[i] = strings.ToUpper(p)
		}
		return out
	}
	dropFirst := func(ps []string) []string { return ps[1:] }

	got := novelsrc.ChainContent(dropFirst, nil, upper)([]string{"a", "b"})

	assert.Equal(t, []string{"B"}, got)
}

func TestApplyHooks(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "x", novelsrc.ApplyText(nil, "x"))
	assert.Equal(t, 4, novelsrc.ApplyPage(nil, 4))
	assert.Equal(t, []string{"p"}, novelsrc.ApplyContent(nil, []string{"p"}))
	assert.Equal(t, "X!", novelsrc.ChainText(strings.ToUpper, func(s string) string { return s + "!" })("x"))
}
