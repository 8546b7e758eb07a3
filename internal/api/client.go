// Package api is a typed client for the HBnB HTTP API (base path /api/v1).
//
// Every operation performs a single attempt: failures are surfaced to the
// caller verbatim and retry policy, if any, belongs to the caller.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/Nomen-collab/holbertonschool-hbnb/internal/errs"
	"github.com/Nomen-collab/holbertonschool-hbnb/internal/model"
)

// Config holds client construction parameters.
type Config struct {
	// BaseURL including the /api/v1 prefix, e.g. "http://127.0.0.1:5000/api/v1".
	BaseURL string
	// Timeout bounds each request end to end. Zero means 30s.
	Timeout time.Duration
	// Logger is optional; nil means no logging.
	Logger *zap.Logger
}

// Client performs the four remote operations with uniform error classification.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// New constructs a Client. The timeout lives on the underlying http.Client:
// this core sets no per-request deadlines beyond the caller's context.
func New(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		log:     log,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

type reviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// Login exchanges credentials for a bearer token via POST /auth/login.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	resp, err := c.do(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, "")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		var lr loginResponse
		if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
			return "", fmt.Errorf("%w: decode login response: %v", errs.ErrServer, err)
		}
		if lr.AccessToken == "" {
			return "", fmt.Errorf("%w: login response missing access_token", errs.ErrServer)
		}
		return lr.AccessToken, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", fmt.Errorf("%w: %s", errs.ErrInvalidCredentials, errorMessage(resp))
	default:
		return "", fmt.Errorf("%w: %s", errs.ErrServer, errorMessage(resp))
	}
}

// ListListings fetches the full, unfiltered collection via GET /places.
func (c *Client) ListListings(ctx context.Context) ([]model.Listing, error) {
	resp, err := c.do(ctx, http.MethodGet, "/places", nil, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s", errs.ErrServer, errorMessage(resp))
	}
	var listings []model.Listing
	if err := json.NewDecoder(resp.Body).Decode(&listings); err != nil {
		return nil, fmt.Errorf("%w: decode places: %v", errs.ErrServer, err)
	}
	return listings, nil
}

// GetListingDetail fetches one listing with nested amenities and reviews.
func (c *Client) GetListingDetail(ctx context.Context, id string) (*model.ListingDetail, error) {
	resp, err := c.do(ctx, http.MethodGet, "/places/"+id, nil, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		var d model.ListingDetail
		if err := json.NewDecoder(resp.Body).Decode(&d); err != nil {
			return nil, fmt.Errorf("%w: decode place: %v", errs.ErrServer, err)
		}
		return &d, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", errs.ErrNotFound, errorMessage(resp))
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrServer, errorMessage(resp))
	}
}

// SubmitReview posts a review for a listing. It fails fast with
// errs.ErrUnauthenticated when credential is empty, without any request.
func (c *Client) SubmitReview(ctx context.Context, listingID string, rating int, comment, credential string) error {
	if credential == "" {
		return fmt.Errorf("%w: no credential", errs.ErrUnauthenticated)
	}
	resp, err := c.do(ctx, http.MethodPost, "/places/"+listingID+"/reviews", reviewRequest{Rating: rating, Comment: comment}, credential)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", errs.ErrUnauthenticated, errorMessage(resp))
	case resp.StatusCode == http.StatusBadRequest:
		return fmt.Errorf("%w: %s", errs.ErrInvalidInput, errorMessage(resp))
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", errs.ErrNotFound, errorMessage(resp))
	default:
		return fmt.Errorf("%w: %s", errs.ErrServer, errorMessage(resp))
	}
}

// do issues one request, attaching a correlation id and optional bearer
// credential. Transport failures map to errs.ErrNetwork.
func (c *Client) do(ctx context.Context, method, path string, body any, bearer string) (*http.Response, error) {
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%w: encode request: %v", errs.ErrInvalidInput, err)
		}
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrNetwork, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	reqID := ""
	if id, err := uuid.NewV4(); err == nil {
		reqID = id.String()
		req.Header.Set("X-Request-Id", reqID)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("http",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", reqID),
			zap.Duration("dur", time.Since(start)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", errs.ErrNetwork, err)
	}
	c.log.Debug("http",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", reqID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("dur", time.Since(start)),
	)
	return resp, nil
}

// errorMessage extracts a human-readable message from a failed response.
// Three tiers: {"message": ...} body, then HTTP status text, then a
// generic fallback. Used uniformly by every failing call.
func errorMessage(resp *http.Response) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Message != "" {
		return body.Message
	}
	if txt := http.StatusText(resp.StatusCode); txt != "" {
		return fmt.Sprintf("%d %s", resp.StatusCode, txt)
	}
	return "request failed"
}
