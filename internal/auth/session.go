package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/xid"
)

// SESSION MODEL:
// The session is a client-side signed cookie — the server persists nothing.
// The only identity datum it carries is the username (the JWT Subject);
// everything else about the user (role flags included) is re-read from the
// database on every request that needs identity. That re-read is deliberate:
// a stale cookie for a since-deleted user resolves to an anonymous request
// rather than an error, and a role change takes effect on the next request.
//
// A JWT in an HttpOnly cookie gives the same guarantees a framework's signed
// session cookie does: the browser can't tamper with the name without
// breaking the HMAC signature, and JavaScript can't read it.
const (
	// CookieName is the session cookie's name.
	CookieName = "session"

	issuer          = "web-playground"
	defaultLifetime = 7 * 24 * time.Hour
)

// Sessions issues and verifies the signed session cookie.
type Sessions struct {
	secret   []byte
	lifetime time.Duration
}

// NewSessions creates a Sessions signer. The secret should be at least 32
// bytes of random data in production, e.g. SESSION_SECRET=$(openssl rand -hex 32).
// A zero lifetime falls back to seven days.
func NewSessions(secret string, lifetime time.Duration) (*Sessions, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: session secret must be at least 16 characters")
	}
	if lifetime <= 0 {
		lifetime = defaultLifetime
	}
	return &Sessions{secret: []byte(secret), lifetime: lifetime}, nil
}

// claims is the session token payload. The username lives in the standard
// "sub" claim; there is nothing else worth carrying.
type claims struct {
	jwt.RegisteredClaims
}

// Issue creates a signed session token for the given username.
//
// Signing algorithm: HS256 (HMAC-SHA256) — symmetric, fast, fine for a
// single-server deployment. The jti is an xid so individual tokens are
// distinguishable in logs.
func (s *Sessions) Issue(username string) (string, error) {
	now := time.Now()

	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ID:        xid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing session token: %w", err)
	}

	return signed, nil
}

// Verify parses and verifies a session token, returning the username it was
// issued for.
//
// jwt.WithValidMethods pins HS256 so a forged token can't downgrade the
// algorithm; WithIssuer rejects tokens minted by other apps sharing a secret.
func (s *Sessions) Verify(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("auth: session expired")
		}
		return "", fmt.Errorf("auth: invalid session token: %w", err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("auth: invalid session claims")
	}
	if c.Subject == "" {
		return "", fmt.Errorf("auth: session token has no subject")
	}

	return c.Subject, nil
}

// SetCookie starts a session for username by writing the signed cookie.
func (s *Sessions) SetCookie(w http.ResponseWriter, username string) error {
	token, err := s.Issue(username)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(s.lifetime),
	})
	return nil
}

// ClearCookie ends the session. Idempotent — clearing an absent cookie is
// fine, the browser just overwrites nothing.
func (s *Sessions) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// Username extracts the session's username from a request, if a valid
// session cookie is present. Returns ("", false) for anonymous requests.
func (s *Sessions) Username(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		// http.ErrNoCookie — not an error, just anonymous.
		return "", false
	}

	username, err := s.Verify(cookie.Value)
	if err != nil {
		return "", false
	}
	return username, true
}
