package detail

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/Nomen-collab/holbertonschool-hbnb/internal/errs"
	"github.com/Nomen-collab/holbertonschool-hbnb/internal/model"
)

type fakeFetcher struct {
	detail    *model.ListingDetail
	detailErr error

	submitErr error

	getCalls    int
	getLastID   string
	submitCalls int
	submitIn    struct {
		id, comment, cred string
		rating            int
	}
}

var _ Fetcher = (*fakeFetcher)(nil)

func (f *fakeFetcher) GetListingDetail(_ context.Context, id string) (*model.ListingDetail, error) {
	f.getCalls++
	f.getLastID = id
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	cpy := *f.detail
	return &cpy, nil
}

func (f *fakeFetcher) SubmitReview(_ context.Context, listingID string, rating int, comment, credential string) error {
	f.submitCalls++
	f.submitIn.id, f.submitIn.rating, f.submitIn.comment, f.submitIn.cred = listingID, rating, comment, credential
	return f.submitErr
}

type fakeSession struct {
	cred string
}

var _ Session = (*fakeSession)(nil)

func (s *fakeSession) CurrentCredential() (string, bool) { return s.cred, s.cred != "" }

func sampleDetail(reviews ...model.Review) *model.ListingDetail {
	return &model.ListingDetail{
		Listing:   model.Listing{ID: "42", Title: "Cabin", PriceByNight: 80},
		MaxGuests: 4,
		Reviews:   reviews,
	}
}

func TestResolveListingID(t *testing.T) {
	t.Parallel()
	cases := []struct {
		raw    string
		wantID string
		wantOK bool
	}{
		{"id=42", "42", true},
		{"id=42&other=x", "42", true},
		{"id=", "", false},
		{"id=%20%20", "", false},
		{"other=x", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		q, err := url.ParseQuery(tc.raw)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.raw, err)
		}
		id, ok := ResolveListingID(q)
		if id != tc.wantID || ok != tc.wantOK {
			t.Fatalf("ResolveListingID(%q)=(%q,%v), want (%q,%v)", tc.raw, id, ok, tc.wantID, tc.wantOK)
		}
	}
}

func TestLoadDetail(t *testing.T) {
	t.Parallel()
	api := &fakeFetcher{detail: sampleDetail()}
	vm := New(api, &fakeSession{}, nil)

	if vm.Current() != nil {
		t.Fatalf("no detail before first load")
	}
	if err := vm.LoadDetail(context.Background(), "42"); err != nil {
		t.Fatalf("LoadDetail: %v", err)
	}
	if vm.Current() == nil || vm.Current().ID != "42" {
		t.Fatalf("Current=%+v", vm.Current())
	}

	// failure leaves the prior detail in place, no partial state
	api.detailErr = errs.ErrNotFound
	if err := vm.LoadDetail(context.Background(), "43"); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if vm.Current().ID != "42" {
		t.Fatalf("failed load must not replace detail")
	}
}

func TestCanReview_TracksSession(t *testing.T) {
	t.Parallel()
	sess := &fakeSession{}
	vm := New(&fakeFetcher{detail: sampleDetail()}, sess, nil)

	if vm.CanReview() {
		t.Fatalf("anonymous session must not allow reviews")
	}
	sess.cred = "T1"
	if !vm.CanReview() {
		t.Fatalf("authenticated session must allow reviews")
	}
}

func TestSubmitReview_RatingValidation_NoAPICall(t *testing.T) {
	t.Parallel()
	for _, rating := range []int{0, 6, -1, 100} {
		api := &fakeFetcher{detail: sampleDetail()}
		vm := New(api, &fakeSession{cred: "T1"}, nil)

		err := vm.SubmitReview(context.Background(), "42", rating, "fine")
		if !errors.Is(err, errs.ErrInvalidInput) {
			t.Fatalf("rating %d: want ErrInvalidInput, got %v", rating, err)
		}
		if api.submitCalls != 0 || api.getCalls != 0 {
			t.Fatalf("rating %d: no API call may be issued (submit=%d get=%d)", rating, api.submitCalls, api.getCalls)
		}
	}
}

func TestSubmitReview_BlankComment_NoAPICall(t *testing.T) {
	t.Parallel()
	api := &fakeFetcher{detail: sampleDetail()}
	vm := New(api, &fakeSession{cred: "T1"}, nil)

	err := vm.SubmitReview(context.Background(), "42", 5, "   ")
	if !errors.Is(err, errs.ErrInvalidInput) {
		t.Fatalf("want ErrInvalidInput, got %v", err)
	}
	if api.submitCalls != 0 {
		t.Fatalf("no API call may be issued on blank comment")
	}
}

func TestSubmitReview_Unauthenticated_NoAPICall(t *testing.T) {
	t.Parallel()
	api := &fakeFetcher{detail: sampleDetail()}
	vm := New(api, &fakeSession{}, nil)

	err := vm.SubmitReview(context.Background(), "42", 5, "Great stay")
	if !errors.Is(err, errs.ErrUnauthenticated) {
		t.Fatalf("want ErrUnauthenticated, got %v", err)
	}
	if api.submitCalls != 0 || api.getCalls != 0 {
		t.Fatalf("no API call may be issued while anonymous")
	}
}

func TestSubmitReview_SuccessTriggersExactlyOneRefresh(t *testing.T) {
	t.Parallel()
	prior := sampleDetail(model.Review{ID: "r1", Rating: 4, Comment: "nice"})
	api := &fakeFetcher{detail: prior}
	vm := New(api, &fakeSession{cred: "T1"}, nil)

	if err := vm.LoadDetail(context.Background(), "42"); err != nil {
		t.Fatalf("LoadDetail: %v", err)
	}
	shown := vm.Current()

	// the server has the canonical state including the new review
	api.detail = sampleDetail(
		model.Review{ID: "r1", Rating: 4, Comment: "nice"},
		model.Review{ID: "r2", Rating: 5, Comment: "Great stay"},
	)

	if err := vm.SubmitReview(context.Background(), "42", 5, "Great stay"); err != nil {
		t.Fatalf("SubmitReview: %v", err)
	}
	if api.submitCalls != 1 {
		t.Fatalf("submit calls=%d, want 1", api.submitCalls)
	}
	if api.submitIn.cred != "T1" || api.submitIn.rating != 5 || api.submitIn.comment != "Great stay" {
		t.Fatalf("submit args: %+v", api.submitIn)
	}
	if api.getCalls != 2 { // initial load + exactly one refresh
		t.Fatalf("detail fetches=%d, want 2", api.getCalls)
	}
	if api.getLastID != "42" {
		t.Fatalf("refresh id=%q", api.getLastID)
	}

	// no optimistic mutation: the previously shown snapshot is untouched,
	// the refreshed one carries the server's review list
	if len(shown.Reviews) != 1 {
		t.Fatalf("prior snapshot mutated: %+v", shown.Reviews)
	}
	if len(vm.Current().Reviews) != 2 {
		t.Fatalf("refreshed detail must hold server state, got %d reviews", len(vm.Current().Reviews))
	}
}

func TestSubmitReview_FailureLeavesDetailUnchanged(t *testing.T) {
	t.Parallel()
	api := &fakeFetcher{detail: sampleDetail(model.Review{ID: "r1", Rating: 4})}
	vm := New(api, &fakeSession{cred: "T1"}, nil)

	if err := vm.LoadDetail(context.Background(), "42"); err != nil {
		t.Fatalf("LoadDetail: %v", err)
	}

	api.submitErr = errs.ErrServer
	err := vm.SubmitReview(context.Background(), "42", 5, "Great stay")
	if !errors.Is(err, errs.ErrServer) {
		t.Fatalf("want ErrServer, got %v", err)
	}
	if api.getCalls != 1 {
		t.Fatalf("no refresh may follow a failed submission, fetches=%d", api.getCalls)
	}
	if len(vm.Current().Reviews) != 1 {
		t.Fatalf("detail must be unchanged after failure")
	}
}

func TestSubmitReview_RefreshFailureIsReported(t *testing.T) {
	t.Parallel()
	api := &fakeFetcher{detail: sampleDetail()}
	vm := New(api, &fakeSession{cred: "T1"}, nil)

	if err := vm.LoadDetail(context.Background(), "42"); err != nil {
		t.Fatalf("LoadDetail: %v", err)
	}

	api.detailErr = errs.ErrNetwork
	err := vm.SubmitReview(context.Background(), "42", 5, "Great stay")
	if !errors.Is(err, errs.ErrNetwork) {
		t.Fatalf("refresh failure must surface, got %v", err)
	}
	if api.submitCalls != 1 {
		t.Fatalf("review must still have been submitted once")
	}
}
