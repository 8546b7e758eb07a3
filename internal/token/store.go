// Package token persists the site-scoped bearer credential.
//
// The credential has exactly one writer (the session controller) and many
// readers; at most one credential is active per store. Expiry is never
// enforced locally: a stale token surfaces as a server 401 on next use.
package token

import (
	"sync"

	"github.com/Nomen-collab/holbertonschool-hbnb/internal/errs"
)

// Store holds a single opaque bearer token.
type Store interface {
	// Set persists the credential, overwriting any prior value.
	Set(token string) error
	// Get returns the current credential or errs.ErrNoToken when absent.
	Get() (string, error)
	// Clear removes the credential; a subsequent Get reports errs.ErrNoToken.
	Clear() error
}

// Memory is an in-process Store used by tests and embedders.
type Memory struct {
	mu  sync.Mutex
	tok string
	set bool
}

// NewMemory constructs an empty in-memory store.
func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Set(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tok, m.set = token, true
	return nil
}

func (m *Memory) Get() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set {
		return "", errs.ErrNoToken
	}
	return m.tok, nil
}

func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tok, m.set = "", false
	return nil
}
