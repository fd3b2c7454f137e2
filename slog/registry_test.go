package slog_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/fwojciec/novelsrc"
	"github.com/fwojciec/novelsrc/mock"
	novelslog "github.com/fwojciec/novelsrc/slog"
	"github.com/stretchr/testify/assert"
)

func TestLoggingRegistry_GetForHTML(t *testing.T) {
	t.Parallel()

	t.Run("logs detected theme with duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		preset := novelsrc.Descriptors{Content: novelsrc.ContentDescriptor{Selector: "div.reading-content"}}
		inner := &mock.PresetRegistry{
			GetForHTMLFn: func(string) (novelsrc.Theme, novelsrc.Descriptors, bool) {
				return novelsrc.ThemeMadara, preset, true
			},
		}

		registry := novelslog.NewLoggingRegistry(inner, logger)
		theme, got, ok := registry.GetForHTML("<html>madara</html>")

		assert.Equal(t, novelsrc.ThemeMadara, theme)
		assert.Equal(t, preset, got)
		assert.True(t, ok)
		output := buf.String()
		assert.Contains(t, output, `msg="theme detection"`)
		assert.Contains(t, output, "theme=madara")
		assert.Contains(t, output, "preset=true")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs unknown theme", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.PresetRegistry{
			GetForHTMLFn: func(string) (novelsrc.Theme, novelsrc.Descriptors, bool) {
				return novelsrc.ThemeUnknown, novelsrc.Descriptors{}, false
			},
		}

		registry := novelslog.NewLoggingRegistry(inner, logger)
		_, _, ok := registry.GetForHTML("<html></html>")

		assert.False(t, ok)
		assert.Contains(t, buf.String(), "theme=(unknown)")
	})

	t.Run("delegates list", func(t *testing.T) {
		t.Parallel()

		inner := &mock.PresetRegistry{
			ListFn: func() []novelsrc.Theme { return []novelsrc.Theme{novelsrc.ThemeNovelFull} },
		}

		registry := novelslog.NewLoggingRegistry(inner, slog.New(slog.DiscardHandler))

		assert.Equal(t, []novelsrc.Theme{novelsrc.ThemeNovelFull}, registry.List())
	})
}
