// Package session derives authentication state from the token store and
// owns the login/logout transitions.
package session

import (
	"context"

	"go.uber.org/zap"

	"github.com/Nomen-collab/holbertonschool-hbnb/internal/token"
)

// Authenticator is the slice of the API client the controller needs.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// Controller is a two-state machine: Anonymous or Authenticated(credential).
// The state is derived from the token store on demand, never cached, so a
// store shared with another writer stays consistent.
type Controller struct {
	api   Authenticator
	store token.Store
	log   *zap.Logger
}

// New constructs a Controller. Initial state is whatever the store holds.
func New(api Authenticator, store token.Store, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{api: api, store: store, log: log}
}

// Login authenticates and persists the credential on success. On failure
// the session stays Anonymous and the failure is returned for display.
// Re-login overwrites any prior credential in place.
func (c *Controller) Login(ctx context.Context, email, password string) error {
	tok, err := c.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if err := c.store.Set(tok); err != nil {
		return err
	}
	c.log.Info("logged in")
	return nil
}

// Logout clears the stored credential unconditionally. It never fails:
// a store error is logged and the session is still Anonymous afterwards
// as far as the caller is concerned.
func (c *Controller) Logout() {
	if err := c.store.Clear(); err != nil {
		c.log.Warn("clear token", zap.Error(err))
	}
}

// CurrentCredential returns the persisted credential for authenticated calls.
func (c *Controller) CurrentCredential() (string, bool) {
	tok, err := c.store.Get()
	if err != nil || tok == "" {
		return "", false
	}
	return tok, true
}

// Authenticated reports whether a credential is present. Recomputed on
// demand; no local expiry check (staleness surfaces as a server 401).
func (c *Controller) Authenticated() bool {
	_, ok := c.CurrentCredential()
	return ok
}
