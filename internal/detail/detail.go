// Package detail loads a single listing with its nested reviews and
// orchestrates the review-submission-then-refresh cycle.
package detail

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/Nomen-collab/holbertonschool-hbnb/internal/errs"
	"github.com/Nomen-collab/holbertonschool-hbnb/internal/model"
)

// Fetcher is the slice of the API client the view-model needs.
type Fetcher interface {
	GetListingDetail(ctx context.Context, id string) (*model.ListingDetail, error)
	SubmitReview(ctx context.Context, listingID string, rating int, comment, credential string) error
}

// Session exposes the credential state the view-model derives from.
type Session interface {
	CurrentCredential() (string, bool)
}

// ViewModel holds the currently displayed listing detail.
type ViewModel struct {
	api     Fetcher
	session Session
	log     *zap.Logger

	current *model.ListingDetail
}

// New constructs an empty view-model.
func New(api Fetcher, session Session, log *zap.Logger) *ViewModel {
	if log == nil {
		log = zap.NewNop()
	}
	return &ViewModel{api: api, session: session, log: log}
}

// ResolveListingID extracts the listing identifier from the page's
// navigation query parameters (key "id"). An absent or blank id is
// terminal for the page context: no fetch should be attempted.
func ResolveListingID(query url.Values) (string, bool) {
	id := strings.TrimSpace(query.Get("id"))
	return id, id != ""
}

// LoadDetail fetches one listing. On failure the previously displayed
// detail, if any, is left unchanged; no partial detail is ever shown.
func (v *ViewModel) LoadDetail(ctx context.Context, id string) error {
	d, err := v.api.GetListingDetail(ctx, id)
	if err != nil {
		v.log.Warn("load detail", zap.String("id", id), zap.Error(err))
		return err
	}
	v.current = d
	return nil
}

// Current returns the displayed detail, nil before the first successful load.
func (v *ViewModel) Current() *model.ListingDetail { return v.current }

// CanReview reports whether a review affordance should be offered. It is
// derived from session state, not independent state.
func (v *ViewModel) CanReview() bool {
	_, ok := v.session.CurrentCredential()
	return ok
}

// SubmitReview validates, submits, and on success re-fetches the listing
// so the displayed review list matches the server's canonical state. The
// new review is never inserted optimistically.
//
// Validation and authentication are checked before any network call:
// a bad rating or blank comment fails with errs.ErrInvalidInput, a
// missing credential with errs.ErrUnauthenticated (the caller should
// redirect to the login page on the latter).
func (v *ViewModel) SubmitReview(ctx context.Context, id string, rating int, comment string) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", errs.ErrInvalidInput)
	}
	if strings.TrimSpace(comment) == "" {
		return fmt.Errorf("%w: comment is required", errs.ErrInvalidInput)
	}
	cred, ok := v.session.CurrentCredential()
	if !ok {
		return fmt.Errorf("%w: login required to review", errs.ErrUnauthenticated)
	}

	if err := v.api.SubmitReview(ctx, id, rating, comment, cred); err != nil {
		return err
	}

	// Refresh after the submission response is observed; strictly
	// sequential, no second in-flight detail fetch is initiated here.
	if err := v.LoadDetail(ctx, id); err != nil {
		return fmt.Errorf("review saved, refresh failed: %w", err)
	}
	return nil
}
