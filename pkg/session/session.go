// Package session persists the operator's credentials between invocations:
// the API access token and the identity record returned at login. The two
// are always written and cleared together, mirroring the platform's
// browser-storage contract.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/phishguard/phishctl/pkg/api"
)

// ErrNotLoggedIn is returned when no stored session exists.
var ErrNotLoggedIn = errors.New("not logged in — run `phishctl login` first")

// Session is the persisted credential pair.
type Session struct {
	AccessToken string       `json:"access_token"`
	Identity    api.Identity `json:"usuario"`
}

// Path returns the session file location inside dir.
func Path(dir string) string {
	return filepath.Join(dir, "session.json")
}

// Load reads the stored session from dir. A missing file, or a file
// missing either the token or the identity, yields ErrNotLoggedIn: there
// is no partial-session fallback.
func Load(dir string) (*Session, error) {
	data, err := os.ReadFile(Path(dir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotLoggedIn
		}
		return nil, fmt.Errorf("read session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if s.AccessToken == "" || s.Identity.Username == "" {
		return nil, ErrNotLoggedIn
	}
	return &s, nil
}

// Save writes the session to dir with owner-only permissions.
func Save(dir string, s *Session) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.WriteFile(Path(dir), data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Clear removes the session file, dropping token and identity together.
// Clearing an absent session is not an error.
func Clear(dir string) error {
	err := os.Remove(Path(dir))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// CanManage is the single authorization decision consulted by both the
// dashboard tab router and every admin-only command. It gates presentation
// only; the API re-validates each request server-side.
func CanManage(id api.Identity) bool {
	return id.Role == api.RoleAdmin
}

// Expired reports whether the stored token carries an exp claim in the
// past. The claim is read without signature verification; this is a
// local convenience warning, not an authentication check.
func Expired(s *Session, now time.Time) bool {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(s.AccessToken, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
