// Package session manages the `token` cookie that carries the backend JWT.
package session

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/asdos-web/internal/token"
)

// CookieName is the cookie holding the session token.
const CookieName = "token"

var (
	ErrNoToken = errors.New("no session token")
	ErrExpired = errors.New("session token expired")
)

// Valid reports whether raw is a decodable token that has not expired at now.
// Signatures are not checked.
func Valid(raw string, now time.Time) bool {
	if strings.TrimSpace(raw) == "" {
		return false
	}
	tok, err := token.Decode(raw)
	if err != nil {
		return false
	}
	return !tok.Expired(now)
}

// Manager reads, checks and writes the session cookie.
type Manager struct {
	codec  *token.Codec
	secure bool
	now    func() time.Time
}

// NewManager creates a manager. secure marks the cookie Secure.
func NewManager(codec *token.Codec, secure bool) *Manager {
	return &Manager{codec: codec, secure: secure, now: time.Now}
}

// WithClock replaces the time source, for tests.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// Raw returns the token cookie value for the request.
func (m *Manager) Raw(c *fiber.Ctx) string {
	return strings.TrimSpace(c.Cookies(CookieName))
}

// Check decodes raw, rejecting missing, malformed, forged and expired tokens
// before checking the claims. A token that is only wrong in its claims is
// returned together with an error wrapping token.ErrClaims, so callers can
// tell "signed in with unusable claims" from "not signed in".
func (m *Manager) Check(raw string) (token.Token, error) {
	if strings.TrimSpace(raw) == "" {
		return token.Token{}, ErrNoToken
	}

	tok, err := m.codec.DecodeVerified(raw)
	if err != nil {
		return token.Token{}, err
	}

	if tok.Expired(m.now()) {
		return token.Token{}, ErrExpired
	}

	if err := m.codec.CheckClaims(tok); err != nil {
		return tok, err
	}

	return tok, nil
}

// Current returns the request's session token, if it is present and valid.
func (m *Manager) Current(c *fiber.Ctx) (token.Token, error) {
	return m.Check(m.Raw(c))
}

// Valid reports whether the request carries a usable session.
func (m *Manager) Valid(c *fiber.Ctx) bool {
	_, err := m.Current(c)
	return err == nil
}

// Set stores raw in the session cookie, expiring it with the token.
func (m *Manager) Set(c *fiber.Ctx, raw string) (token.Token, error) {
	tok, err := m.Check(raw)
	if err != nil {
		return token.Token{}, err
	}

	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    tok.Raw,
		Path:     "/",
		Expires:  tok.ExpiresAt(),
		Secure:   m.secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return tok, nil
}

// Clear removes the session cookie.
func (m *Manager) Clear(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		Secure:   m.secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
