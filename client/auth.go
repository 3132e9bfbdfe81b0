package client

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims adalah isi token login staff yang diterbitkan server.
type SessionClaims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// ParseSessionToken membaca claims dari token tanpa verifikasi signature.
// Client tidak memegang secret; validasi sesungguhnya tetap di server,
// di sini hanya untuk tahu role dan kapan token kedaluwarsa.
func ParseSessionToken(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, errors.New("invalid session token")
	}
	return claims, nil
}

// ExpiresWithin melaporkan apakah token akan kedaluwarsa dalam rentang d.
// Token tanpa klaim exp dianggap tidak kedaluwarsa.
func (c *SessionClaims) ExpiresWithin(d time.Duration) bool {
	if c.ExpiresAt == nil {
		return false
	}
	return time.Until(c.ExpiresAt.Time) < d
}

// HasKitchenAccess melaporkan apakah role pada token boleh membuka KDS.
func (c *SessionClaims) HasKitchenAccess() bool {
	switch c.Role {
	case "chef", "staff", "admin":
		return true
	}
	return false
}
