// ABOUTME: Identity claims decoded from the backend's JWT
// ABOUTME: Decoding is unverified; the backend checks signatures on every request

package session

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Roles issued by the backend.
const (
	RoleAdmin     = "ROLE_ADMIN"
	RoleProfessor = "ROLE_PROFESOR"
	RoleStudent   = "ROLE_ALUMNO"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Claims is the identity carried by a session.
type Claims struct {
	Subject   string    `json:"sub"`
	UserID    *int64    `json:"userId,omitempty"`
	Roles     []string  `json:"roles"`
	ExpiresAt time.Time `json:"exp,omitempty"`
}

func (c *Claims) clone() *Claims {
	if c == nil {
		return nil
	}
	out := *c
	out.Roles = slices.Clone(c.Roles)
	if c.UserID != nil {
		id := *c.UserID
		out.UserID = &id
	}
	return &out
}

// HasRole reports whether the claims include role.
func (c *Claims) HasRole(role string) bool {
	return c != nil && slices.Contains(c.Roles, role)
}

// NormalizeRole maps bare role names ("ADMIN", "profesor") to their
// ROLE_-prefixed form.
func NormalizeRole(role string) string {
	role = strings.ToUpper(strings.TrimSpace(role))
	if role == "" || strings.HasPrefix(role, "ROLE_") {
		return role
	}
	return "ROLE_" + role
}

// ParseToken decodes a JWT into Claims without verifying its signature.
// A token past its exp claim is rejected with ErrTokenExpired.
func ParseToken(raw string, now time.Time) (*Claims, error) {
	mc := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, mc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	sub, err := mc.GetSubject()
	if err != nil || sub == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	claims := &Claims{Subject: sub, Roles: rolesFrom(mc)}

	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
		if !now.Before(exp.Time) {
			return nil, ErrTokenExpired
		}
	}

	for _, key := range []string{"userId", "id"} {
		if id, ok := int64From(mc[key]); ok {
			claims.UserID = &id
			break
		}
	}

	return claims, nil
}

// rolesFrom accepts "roles" as a list or a single string, and falls back to
// the singular "role" / "rol" claims.
func rolesFrom(mc jwt.MapClaims) []string {
	var roles []string
	switch v := mc["roles"].(type) {
	case []any:
		for _, r := range v {
			switch rv := r.(type) {
			case string:
				roles = append(roles, NormalizeRole(rv))
			case map[string]any:
				// Spring authorities serialize as {"authority": "ROLE_X"}
				if a, ok := rv["authority"].(string); ok {
					roles = append(roles, NormalizeRole(a))
				}
			}
		}
	case string:
		for _, r := range strings.Split(v, ",") {
			if r = NormalizeRole(r); r != "" {
				roles = append(roles, r)
			}
		}
	}
	if len(roles) == 0 {
		for _, key := range []string{"role", "rol"} {
			if r, ok := mc[key].(string); ok && r != "" {
				roles = append(roles, NormalizeRole(r))
			}
		}
	}
	return roles
}

func int64From(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case string:
		id, err := strconv.ParseInt(n, 10, 64)
		return id, err == nil
	}
	return 0, false
}
