package goquery

import (
	"slices"
	"sync"

	"github.com/fwojciec/novelsrc"
)

var _ novelsrc.PresetRegistry = (*Registry)(nil)

// Registry manages theme presets and auto-detects themes from HTML
// content. It uses a ThemeDetector to identify the template a site was
// built with and returns the descriptors registered for it.
type Registry struct {
	mu       sync.RWMutex
	detector novelsrc.ThemeDetector
	presets  map[novelsrc.Theme]novelsrc.Descriptors
}

// NewRegistry creates an empty Registry with the given detector.
func NewRegistry(detector novelsrc.ThemeDetector) *Registry {
	return &Registry{
		detector: detector,
		presets:  make(map[novelsrc.Theme]novelsrc.Descriptors),
	}
}

// NewDefaultRegistry creates a Registry holding the built-in presets.
func NewDefaultRegistry() *Registry {
	r := NewRegistry(NewDetector())
	r.Register(novelsrc.ThemeMadara, MadaraPreset())
	r.Register(novelsrc.ThemeLightNovelWP, LightNovelWPPreset())
	r.Register(novelsrc.ThemeNovelFull, NovelFullPreset())
	return r
}

// Get returns the preset for a theme.
func (r *Registry) Get(theme novelsrc.Theme) (novelsrc.Descriptors, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	preset, ok := r.presets[theme]
	return preset, ok
}

// GetForHTML detects the theme from HTML and returns its preset.
// The detected theme is returned even when no preset is registered for it.
func (r *Registry) GetForHTML(html string) (novelsrc.Theme, novelsrc.Descriptors, bool) {
	theme := r.detector.Detect(html)
	preset, ok := r.Get(theme)
	return theme, preset, ok
}

// Register adds a preset for a theme.
// If a preset is already registered for the theme, it is replaced.
func (r *Registry) Register(theme novelsrc.Theme, preset novelsrc.Descriptors) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.presets[theme] = preset
}

// List returns all registered themes in name order.
func (r *Registry) List() []novelsrc.Theme {
	r.mu.RLock()
	defer r.mu.RUnlock()
	themes := make([]novelsrc.Theme, 0, len(r.presets))
	for t := range r.presets {
		themes = append(themes, t)
	}
	slices.Sort(themes)
	return themes
}
