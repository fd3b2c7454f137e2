package mock

import (
	"context"

	"github.com/fwojciec/novelsrc"
)

var _ novelsrc.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of novelsrc.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, req *novelsrc.Request) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, req *novelsrc.Request) (string, error) {
	return f.FetchFn(ctx, req)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ novelsrc.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of novelsrc.Renderer.
type Renderer struct {
	RenderFn func(ctx context.Context, url string) (string, error)
	CloseFn  func() error
}

func (r *Renderer) Render(ctx context.Context, url string) (string, error) {
	return r.RenderFn(ctx, url)
}

func (r *Renderer) Close() error {
	return r.CloseFn()
}

var _ novelsrc.RateGovernor = (*RateGovernor)(nil)

// RateGovernor is a mock implementation of novelsrc.RateGovernor.
type RateGovernor struct {
	WaitFn func(ctx context.Context, sourceID string) error
}

func (g *RateGovernor) Wait(ctx context.Context, sourceID string) error {
	return g.WaitFn(ctx, sourceID)
}
