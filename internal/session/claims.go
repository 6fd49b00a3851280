// Package session reads the claims of a saved login token.
//
// The signing key lives on the server, so nothing here verifies a token. The
// claims are only used to show who is logged in and to warn before the server
// rejects an expired token.
package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Veraticus/installmart/internal/common"
)

// Claims is the payload the backend signs into its tokens. Older tokens carry
// the user ID as id or _id instead of userId.
type Claims struct {
	UserID  string `json:"userId"`
	ID      string `json:"id"`
	MongoID string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

// Inspect decodes token without checking its signature.
func Inspect(token string) (*Claims, error) {
	token = strings.TrimPrefix(strings.TrimSpace(token), "Bearer ")
	if token == "" {
		return nil, fmt.Errorf("%w: empty token", common.ErrInvalidPayload)
	}

	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidPayload, err)
	}
	return claims, nil
}

// User returns the ID of the user the token was issued to.
func (c *Claims) User() string {
	for _, id := range []string{c.UserID, c.ID, c.MongoID, c.Subject} {
		if id != "" {
			return id
		}
	}
	return ""
}

// Expiry returns the expiry time, or the zero time when the token has none.
func (c *Claims) Expiry() time.Time {
	if c.RegisteredClaims.ExpiresAt == nil {
		return time.Time{}
	}
	return c.RegisteredClaims.ExpiresAt.Time
}

// Expired reports whether the token had expired at now.
func (c *Claims) Expired(now time.Time) bool {
	exp := c.Expiry()
	return !exp.IsZero() && !now.Before(exp)
}
