package main

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/comalice/regionfsm"
	"github.com/comalice/regionfsm/assets"
)

var errNotFetched = errors.New("image checks disabled")

// noFetch fails every load at once. Its results are never drained, so they
// raise no diagnostics.
type noFetch struct{}

func (noFetch) Load(context.Context, string) (*assets.Asset, error) {
	return nil, errNotFetched
}

// imageCache returns the cache a check of the document at path uses.
func imageCache(path string, fetch bool) *assets.Cache {
	if !fetch {
		return assets.NewCache(noFetch{})
	}
	return assets.NewCache(assets.DefaultLoader(filepath.Dir(path)))
}

// awaitImages runs load continuations until no region is pending or the
// timeout passes, and returns the regions still pending.
func awaitImages(m *regionfsm.FSM, timeout time.Duration) []*regionfsm.Region {
	deadline := time.Now().Add(timeout)
	for {
		m.AssetQueue().Drain()
		var pending []*regionfsm.Region
		for _, r := range m.Regions() {
			if r.AssetStatus() == regionfsm.AssetPending {
				pending = append(pending, r)
			}
		}
		if len(pending) == 0 || time.Now().After(deadline) {
			return pending
		}
		time.Sleep(5 * time.Millisecond)
	}
}
