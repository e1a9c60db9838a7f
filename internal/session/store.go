// ABOUTME: Session store holding the auth token and its decoded claims
// ABOUTME: Persists to Storage, restores at startup and redirects on login/logout

package session

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/markalston/academia-console/internal/navigation"
)

// LoginResponse is the backend's answer to POST /api/auth/login.
type LoginResponse struct {
	Token     string `json:"token"`
	Type      string `json:"type,omitempty"`
	ID        *int64 `json:"id,omitempty"`
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Role      string `json:"role"`
}

// LoginRequest carries credentials for POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required,username"`
	Password string `json:"password" validate:"required,min=6"`
}

// Session is a point-in-time view of the store. Claims is non-nil exactly
// when Token is non-empty.
type Session struct {
	Token  string  `json:"-"`
	Claims *Claims `json:"claims,omitempty"`
}

func (s Session) IsAuthenticated() bool { return s.Token != "" }
func (s Session) IsAdmin() bool         { return s.Claims.HasRole(RoleAdmin) }
func (s Session) IsProfessor() bool     { return s.Claims.HasRole(RoleProfessor) }
func (s Session) IsStudent() bool       { return s.Claims.HasRole(RoleStudent) }

// HasAnyRole reports whether the session carries at least one of roles.
func (s Session) HasAnyRole(roles ...string) bool {
	for _, r := range roles {
		if s.Claims.HasRole(r) {
			return true
		}
	}
	return false
}

// Store is the process-wide session. Safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	token  string
	claims *Claims

	storage Storage
	nav     navigation.Navigator
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures a Store.
type Option func(*Store)

func WithLogger(l *slog.Logger) Option { return func(s *Store) { s.logger = l } }

// WithClock overrides time.Now for expiry checks.
func WithClock(now func() time.Time) Option { return func(s *Store) { s.now = now } }

// New creates an empty store. Call Restore to load a persisted token.
func New(storage Storage, nav navigation.Navigator, opts ...Option) *Store {
	if storage == nil {
		storage = NewMemoryStorage()
	}
	if nav == nil {
		nav = navigation.Discard
	}
	s := &Store{storage: storage, nav: nav, logger: slog.Default(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login decodes a raw token. A token that fails to decode forces a full
// logout and the decode error is returned.
func (s *Store) Login(token string) error {
	claims, err := ParseToken(token, s.now())
	if err != nil {
		s.logger.Warn("Rejected session token", "error", err)
		s.Logout()
		return err
	}

	s.set(token, claims)
	s.persist(token, claims.UserID)
	s.nav.Goto(LandingRoute(claims))
	return nil
}

// LoginWithResponse builds the session from a login response. The store is
// left untouched if the token, username or role is missing.
func (s *Store) LoginWithResponse(resp LoginResponse) error {
	var missing []string
	if resp.Token == "" {
		missing = append(missing, "token")
	}
	if resp.Username == "" {
		missing = append(missing, "username")
	}
	if resp.Role == "" {
		missing = append(missing, "role")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: login response missing %v", ErrInvalidToken, missing)
	}

	claims := &Claims{
		Subject: resp.Username,
		UserID:  resp.ID,
		Roles:   []string{NormalizeRole(resp.Role)},
	}
	// Keep the expiry when the token is a decodable JWT.
	if decoded, err := ParseToken(resp.Token, s.now()); err == nil {
		claims.ExpiresAt = decoded.ExpiresAt
	}

	s.set(resp.Token, claims)
	s.persist(resp.Token, claims.UserID)
	s.nav.Goto(LandingRoute(claims))
	return nil
}

// Logout clears the session and durable storage, then redirects to the
// login route.
func (s *Store) Logout() {
	s.set("", nil)
	for _, key := range []string{KeyToken, KeyUserID} {
		if err := s.storage.Remove(key); err != nil {
			s.logger.Warn("Failed to clear session storage", "key", key, "error", err)
		}
	}
	s.nav.Goto(navigation.RouteLogin)
}

// Restore loads a persisted token. A missing token leaves the store empty;
// a token that no longer decodes is handled as Logout.
func (s *Store) Restore() error {
	token, err := s.storage.Get(KeyToken)
	if errors.Is(err, ErrNotFound) || (err == nil && token == "") {
		return nil
	}
	if err != nil {
		s.logger.Warn("Failed to read session storage", "error", err)
		return fmt.Errorf("reading stored session: %w", err)
	}

	claims, err := ParseToken(token, s.now())
	if err != nil {
		s.logger.Info("Stored session is no longer valid", "error", err)
		s.Logout()
		return err
	}

	if claims.UserID == nil {
		if raw, err := s.storage.Get(KeyUserID); err == nil {
			if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
				claims.UserID = &id
			}
		}
	}

	s.set(token, claims)
	return nil
}

func (s *Store) set(token string, claims *Claims) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.claims = claims
}

// persist writes are best-effort.
func (s *Store) persist(token string, userID *int64) {
	if err := s.storage.Set(KeyToken, token); err != nil {
		s.logger.Warn("Failed to persist session token", "error", err)
	}
	if userID == nil {
		return
	}
	if err := s.storage.Set(KeyUserID, strconv.FormatInt(*userID, 10)); err != nil {
		s.logger.Warn("Failed to persist user id", "error", err)
	}
}

// Snapshot returns a copy of the current session.
func (s *Store) Snapshot() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Session{Token: s.token, Claims: s.claims.clone()}
}

// Token returns the bearer token, or "" when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Store) Claims() *Claims          { return s.Snapshot().Claims }
func (s *Store) IsAuthenticated() bool    { return s.Token() != "" }
func (s *Store) IsAdmin() bool            { return s.Snapshot().IsAdmin() }
func (s *Store) IsProfessor() bool        { return s.Snapshot().IsProfessor() }
func (s *Store) IsStudent() bool          { return s.Snapshot().IsStudent() }
func (s *Store) HasRole(role string) bool { return s.Snapshot().Claims.HasRole(role) }

// LandingRoute is where a freshly logged-in user is sent.
func LandingRoute(c *Claims) string {
	switch {
	case c.HasRole(RoleAdmin), c.HasRole(RoleProfessor):
		return navigation.RouteStudents
	case c.HasRole(RoleStudent):
		return navigation.RouteProfile
	}
	return navigation.RouteHome
}
