// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels shared by the token store, API client and view-models.
var (
	// ErrNotFound indicates the requested listing does not exist on the server.
	ErrNotFound = errors.New("not found")

	// ErrNetwork indicates a transport failure with no server response.
	ErrNetwork = errors.New("network error")

	// ErrServer indicates a non-2xx response outside the more specific cases.
	ErrServer = errors.New("server error")

	// ErrInvalidCredentials indicates a rejected email/password pair on login.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthenticated indicates a missing or rejected credential on a write.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrInvalidInput indicates client-side validation failure; never reaches the network.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoToken indicates the token store holds no credential.
	ErrNoToken = errors.New("no token")
)
