package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/diewo77/go-blogs/httpx"
	"github.com/golang-jwt/jwt/v5"
)

type ctxKey string

const (
	sessionCookieName = "session"
	userIDCtxKey      = ctxKey("userID")
)

// ErrInvalidSession is returned by ParseToken for any token that cannot be trusted.
var ErrInvalidSession = errors.New("invalid session")

// UserVerifier is an optional callback to validate that a session's user still exists.
// If nil, no extra verification is performed.
type UserVerifier func(ctx context.Context, uid uint) bool

// Sessions issues and reads the signed session cookie.
type Sessions struct {
	secret      []byte
	ttl         time.Duration
	rememberTTL time.Duration
	secure      bool
	verifier    UserVerifier
	now         func() time.Time
}

// Options configures Sessions.
type Options struct {
	Secret      string
	TTL         time.Duration // lifetime of a browser-session login
	RememberTTL time.Duration // lifetime of a "remember me" login
	Secure      bool
	Verifier    UserVerifier
}

func NewSessions(o Options) *Sessions {
	if o.Secret == "" {
		o.Secret = "devsessionsecret"
	}
	if o.TTL <= 0 {
		o.TTL = 24 * time.Hour
	}
	if o.RememberTTL <= 0 {
		o.RememberTTL = 30 * 24 * time.Hour
	}
	return &Sessions{
		secret:      []byte(o.Secret),
		ttl:         o.TTL,
		rememberTTL: o.RememberTTL,
		secure:      o.Secure,
		verifier:    o.Verifier,
		now:         time.Now,
	}
}

// Token signs a session token for userID valid for ttl.
func (s *Sessions) Token(userID uint, ttl time.Duration) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ParseToken validates a session token and returns the user id it carries.
func (s *Sessions) ParseToken(token string) (uint, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	id64, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id64 == 0 {
		return 0, ErrInvalidSession
	}
	return uint(id64), nil
}

// CreateSession sets the session cookie. Without remember the cookie lives until the browser closes.
func (s *Sessions) CreateSession(w http.ResponseWriter, userID uint, remember bool) error {
	ttl := s.ttl
	if remember {
		ttl = s.rememberTTL
	}
	token, err := s.Token(userID, ttl)
	if err != nil {
		return fmt.Errorf("sign session: %w", err)
	}
	c := &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
	if remember {
		c.Expires = s.now().Add(ttl)
	}
	http.SetCookie(w, c)
	return nil
}

// ClearSession deletes the session cookie.
func (s *Sessions) ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: sessionCookieName, Value: "", Path: "/", Expires: time.Unix(0, 0), MaxAge: -1, HttpOnly: true, SameSite: http.SameSiteLaxMode})
}

// ParseSession validates the cookie and returns the user id.
func (s *Sessions) ParseSession(r *http.Request) (uint, bool) {
	c, err := r.Cookie(sessionCookieName)
	if err != nil || c.Value == "" {
		return 0, false
	}
	uid, err := s.ParseToken(c.Value)
	if err != nil {
		return 0, false
	}
	return uid, true
}

// WithUserID stores user id in context.
func WithUserID(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, userIDCtxKey, userID)
}

// UserIDFromContext extracts user id.
func UserIDFromContext(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(userIDCtxKey).(uint)
	if !ok || id == 0 {
		return 0, false
	}
	return id, true
}

// Middleware attaches the user id to the request context when the session is valid and the
// verifier (if any) still knows the user. Stale cookies are cleared.
func (s *Sessions) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if uid, ok := s.ParseSession(r); ok {
			if s.verifier != nil && !s.verifier(r.Context(), uid) {
				s.ClearSession(w)
			} else {
				r = r.WithContext(WithUserID(r.Context(), uid))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAuth redirects to /login if not authenticated (HTML) or returns 401 JSON.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserIDFromContext(r.Context()); !ok {
			accept := r.Header.Get("Accept")
			if strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html") {
				httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
				return
			}
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
