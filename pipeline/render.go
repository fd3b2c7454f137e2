package pipeline

import (
	"context"

	"github.com/fwojciec/novelsrc"
)

// RenderCommand renders url in a browser and wraps the markup as a
// command of the given kind, for sites whose pages need JavaScript.
func RenderCommand(ctx context.Context, r novelsrc.Renderer, kind novelsrc.CommandKind, url string) (novelsrc.Command, error) {
	html, err := r.Render(ctx, url)
	if err != nil {
		return novelsrc.Command{}, novelsrc.TransportError(url, err)
	}
	return novelsrc.Command{Kind: kind, HTML: html}, nil
}
