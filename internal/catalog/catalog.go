// Package catalog caches the listing collection and filters it client-side.
package catalog

import (
	"context"
	"math"

	"go.uber.org/zap"

	"github.com/Nomen-collab/holbertonschool-hbnb/internal/model"
)

// Lister is the slice of the API client the view-model needs.
type Lister interface {
	ListListings(ctx context.Context) ([]model.Listing, error)
}

// ViewModel holds the last successfully fetched catalog. The cache is
// replaced wholesale on fetch, never merged.
type ViewModel struct {
	api Lister
	log *zap.Logger

	listings []model.Listing
	loaded   bool
	lastErr  error
}

// New constructs an empty (never loaded) view-model.
func New(api Lister, log *zap.Logger) *ViewModel {
	if log == nil {
		log = zap.NewNop()
	}
	return &ViewModel{api: api, log: log}
}

// Load fetches the collection and replaces the cache on success. On
// failure the cached catalog (if any) is left untouched and the failure
// is recorded and returned.
//
// Load is not reentrant-guarded: two overlapping calls resolve
// last-response-wins regardless of issue order. Known ordering weakness,
// kept as-is rather than fenced.
func (v *ViewModel) Load(ctx context.Context) error {
	listings, err := v.api.ListListings(ctx)
	if err != nil {
		v.lastErr = err
		v.log.Warn("load catalog", zap.Error(err))
		return err
	}
	v.listings = listings
	v.loaded = true
	v.lastErr = nil
	v.log.Debug("catalog loaded", zap.Int("count", len(listings)))
	return nil
}

// Loaded distinguishes "never loaded" from "load failed, stale data shown":
// it stays true once any fetch has succeeded, even after a later failure.
func (v *ViewModel) Loaded() bool { return v.loaded }

// LastErr returns the most recent load failure, or nil after a success.
func (v *ViewModel) LastErr() error { return v.lastErr }

// Catalog returns the cached collection in server response order.
func (v *ViewModel) Catalog() []model.Listing { return v.listings }

// ApplyPriceCeiling returns the subsequence of the cached catalog with
// PriceByNight <= ceiling, preserving order. A ceiling that is not a
// positive finite number means "no filter" and yields the full catalog.
// Pure over the cache: no network call, recomputed on every change.
func (v *ViewModel) ApplyPriceCeiling(ceiling float64) []model.Listing {
	if math.IsNaN(ceiling) || math.IsInf(ceiling, 0) || ceiling <= 0 {
		return v.listings
	}
	// An empty result is a valid, displayable state, hence non-nil.
	out := make([]model.Listing, 0, len(v.listings))
	for _, l := range v.listings {
		if l.PriceByNight <= ceiling {
			out = append(out, l)
		}
	}
	return out
}
