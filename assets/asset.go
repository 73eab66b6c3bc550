// Package assets loads the images regions display.
//
// Loads are fire-and-forget: Cache.Request returns at once and the result is
// handed to a continuation through a Poster, so the continuation runs on the
// thread that owns the region instead of the loader goroutine. Every locator
// is fetched at most once per Cache; failures are remembered and never retried.
package assets

import (
	"context"
	"image"
)

// Asset is a decoded image plus its natural dimensions.
type Asset struct {
	Locator string
	Width   int
	Height  int
	Image   image.Image
}

// NewAsset wraps img, taking Width and Height from its bounds.
func NewAsset(locator string, img image.Image) *Asset {
	b := img.Bounds()
	return &Asset{Locator: locator, Width: b.Dx(), Height: b.Dy(), Image: img}
}

// Result is the outcome of one load.
type Result struct {
	Asset *Asset
	Err   error
}

// OK reports whether the load succeeded.
func (r Result) OK() bool { return r.Err == nil && r.Asset != nil }

// Loader fetches and decodes the asset named by locator.
type Loader interface {
	Load(ctx context.Context, locator string) (*Asset, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context, locator string) (*Asset, error)

func (f LoaderFunc) Load(ctx context.Context, locator string) (*Asset, error) {
	return f(ctx, locator)
}
