package regionfsm

import (
	"fmt"

	"github.com/comalice/regionfsm/assets"
	"github.com/comalice/regionfsm/diag"
	"github.com/comalice/regionfsm/internal/primitives"
)

// AssetStatus tracks a region's image load.
type AssetStatus int

const (
	AssetNone AssetStatus = iota
	AssetPending
	AssetReady
	AssetFailed
)

func (s AssetStatus) String() string {
	switch s {
	case AssetNone:
		return "none"
	case AssetPending:
		return "pending"
	case AssetReady:
		return "ready"
	case AssetFailed:
		return "failed"
	}
	return fmt.Sprintf("AssetStatus(%d)", int(s))
}

// Region is a named rectangle in its component's coordinate space with an
// optional image. A region declared with a negative width or height takes
// its size from the first image load that completes.
type Region struct {
	name    string
	x, y    float64
	w, h    float64
	derived bool

	loc    string
	status AssetStatus
	asset  *assets.Asset

	owner *FSM
	// index is the position in the source document, or -1.
	index int
}

// NewRegion creates an unowned region. A negative w or h marks the size as
// derived from the image.
func NewRegion(name string, x, y, w, h float64, imageLoc string) *Region {
	r := &Region{name: name, x: x, y: y, w: w, h: h, loc: imageLoc, index: -1}
	if w < 0 || h < 0 {
		r.derived = true
		r.w, r.h = 0, 0
	}
	return r
}

func (r *Region) Name() string { return r.name }

// Bounds returns position and size in the parent coordinate space.
func (r *Region) Bounds() (x, y, w, h float64) { return r.x, r.y, r.w, r.h }

// SizeFromAsset reports whether the next completed load will set the size.
func (r *Region) SizeFromAsset() bool { return r.derived }

// Owner returns the FSM the region belongs to, if any.
func (r *Region) Owner() *FSM { return r.owner }

func (r *Region) ImageLoc() string { return r.loc }
func (r *Region) AssetStatus() AssetStatus { return r.status }
func (r *Region) Asset() *assets.Asset { return r.asset }

// Loaded reports whether a load has finished, successfully or not.
func (r *Region) Loaded() bool { return r.status == AssetReady || r.status == AssetFailed }

// LoadError reports whether the last finished load failed.
func (r *Region) LoadError() bool { return r.status == AssetFailed }

// Pick reports whether (px, py), in the parent coordinate space, lies in the
// half-open box [x, x+w) × [y, y+h). Images and clipping play no part.
func (r *Region) Pick(px, py float64) bool {
	return px >= r.x && px < r.x+r.w && py >= r.y && py < r.y+r.h
}

// SetPosition moves the region.
func (r *Region) SetPosition(x, y float64) {
	if r.x == x && r.y == y {
		return
	}
	r.x, r.y = x, y
	r.damage()
}

// SetSize sets an explicit size. The size is no longer taken from the image.
func (r *Region) SetSize(w, h float64) {
	r.derived = false
	if r.w == w && r.h == h {
		return
	}
	r.w, r.h = w, h
	r.damage()
}

// SetImageLoc replaces the image locator and starts loading the new image.
// An empty locator clears the image.
func (r *Region) SetImageLoc(loc string) {
	if loc == r.loc {
		return
	}
	r.loc = loc
	r.asset = nil
	r.status = AssetNone
	r.damage()
	r.RequestAssetLoad()
}

// RequestAssetLoad starts loading the current locator through the owner's
// asset cache. It does nothing when the locator is empty, a load is already
// pending or finished, or the region has no owner.
func (r *Region) RequestAssetLoad() {
	if r.loc == "" || r.status != AssetNone || r.owner == nil {
		return
	}
	r.status = AssetPending
	loc := r.loc
	r.owner.cache.Request(loc, r.owner.poster, func(res assets.Result) {
		r.assetLoaded(loc, res)
	})
}

func (r *Region) assetLoaded(loc string, res assets.Result) {
	if loc != r.loc || r.status != AssetPending {
		return
	}
	if res.OK() {
		r.status = AssetReady
		r.asset = res.Asset
	} else {
		r.status = AssetFailed
		r.asset = nil
		if r.owner != nil {
			r.owner.report(diag.Diagnostic{
				Kind:    diag.Asset,
				Path:    r.ImageLocPath(),
				Message: fmt.Sprintf("load %q: %v", loc, res.Err),
				Value:   loc,
			})
		}
	}
	if r.derived {
		r.derived = false
		if r.asset != nil {
			r.w, r.h = float64(r.asset.Width), float64(r.asset.Height)
		} else {
			r.w, r.h = 0, 0
		}
	}
	r.damage()
}

// ImageLocPath is the document path of the region's imageLoc field, as used
// in diagnostics. Regions not built from a document are named instead.
func (r *Region) ImageLocPath() string {
	if r.index < 0 {
		return primitives.Key(primitives.Key("regions", r.name), "imageLoc")
	}
	return primitives.Key(primitives.Index("regions", r.index), "imageLoc")
}

func (r *Region) damage() {
	if r.owner != nil {
		r.owner.Damage()
	}
}

func (r *Region) String() string {
	return fmt.Sprintf("%s[%g,%g %gx%g]", r.name, r.x, r.y, r.w, r.h)
}
