package token

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Nomen-collab/holbertonschool-hbnb/internal/errs"
)

// tokenFile is the on-disk format under the config dir.
type tokenFile struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at,omitzero"`
}

// File persists the credential to a JSON file in the user config dir,
// so it survives across invocations like a site-scoped cookie would.
type File struct {
	path string
}

// NewFile constructs a file-backed store rooted at dir (e.g. DefaultDir()).
func NewFile(dir string) *File {
	return &File{path: filepath.Join(dir, "token.json")}
}

// DefaultDir resolves the config directory, honoring XDG_CONFIG_HOME.
func DefaultDir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "hbnb")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "hbnb")
}

// Path returns the token file location.
func (f *File) Path() string { return f.path }

// Set writes the token, recording its JWT expiry when decodable.
// The expiry is display metadata only; Get does not check it.
func (f *File) Set(token string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	out, err := os.OpenFile(f.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer out.Close()
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(tokenFile{AccessToken: token, ExpiresAt: DecodeExpiry(token)})
}

// Get returns the stored token; a missing file means errs.ErrNoToken.
func (f *File) Get() (string, error) {
	b, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", errs.ErrNoToken
		}
		return "", err
	}
	var tf tokenFile
	if err := json.Unmarshal(b, &tf); err != nil {
		return "", err
	}
	if tf.AccessToken == "" {
		return "", errs.ErrNoToken
	}
	return tf.AccessToken, nil
}

// Clear removes the token file; an already-absent file is not an error.
func (f *File) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// DecodeExpiry extracts the exp claim without validating the signature.
// Returns the zero time when the token is not a decodable JWT.
func DecodeExpiry(token string) time.Time {
	var claims jwt.RegisteredClaims
	_, _, err := jwt.NewParser().ParseUnverified(token, &claims)
	if err != nil || claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}

// DecodeSubject extracts the sub claim without validating the signature.
func DecodeSubject(token string) string {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return ""
	}
	return claims.Subject
}
