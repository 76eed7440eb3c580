// Package token decodes the session JWT issued by the backend.
//
// The backend owns signing. The web tier only needs the claims to decide which
// dashboard a visitor may open, so decoding does not verify the signature unless
// a Codec is configured with the shared secret.
package token

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Role is the account role carried in the token.
type Role string

const (
	RoleStudent  Role = "STUDENT"
	RoleLecturer Role = "LECTURER"
	RoleAdmin    Role = "ADMIN"
)

var (
	// ErrMalformed reports a token that is not three base64url JSON segments.
	ErrMalformed = errors.New("malformed token")
	// ErrClaims reports a token whose payload does not match the claims schema.
	ErrClaims = errors.New("invalid token claims")
	// ErrSignature reports a token that failed HMAC verification.
	ErrSignature = errors.New("invalid token signature")
)

// toStdAlphabet maps the URL-safe base64 alphabet onto the standard one.
var toStdAlphabet = strings.NewReplacer("-", "+", "_", "/")

// Claims is the typed view of the payload.
type Claims struct {
	Role   Role   `json:"role"`
	UserID string `json:"userId,omitempty"`
	jwt.RegisteredClaims
}

// Token is a decoded, unverified session token.
type Token struct {
	Raw       string
	Header    map[string]interface{}
	Payload   map[string]interface{}
	Signature string
	Claims    Claims
}

// Subject returns the login identifier.
func (t Token) Subject() string {
	return t.Claims.Subject
}

// Role returns the role claim.
func (t Token) Role() Role {
	return t.Claims.Role
}

// UserID returns the backend user identifier.
func (t Token) UserID() string {
	return t.Claims.UserID
}

// ExpiresAt returns the expiry time, or the zero time when the claim is absent.
func (t Token) ExpiresAt() time.Time {
	if t.Claims.ExpiresAt == nil {
		return time.Time{}
	}
	return t.Claims.ExpiresAt.Time
}

// Expired reports whether the token is no longer valid at now. A token without
// an exp claim is treated as expired, and one expiring exactly at now is expired.
func (t Token) Expired(now time.Time) bool {
	exp := t.ExpiresAt()
	if exp.IsZero() {
		return true
	}
	return !exp.After(now)
}

// Decode splits raw on '.', base64url-decodes the header and payload and parses
// them as JSON. The signature is kept as-is and never checked.
func Decode(raw string) (Token, error) {
	raw = strings.TrimSpace(raw)
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return Token{}, fmt.Errorf("%w: expected 3 segments, got %d", ErrMalformed, len(parts))
	}

	header, err := decodeObject(parts[0])
	if err != nil {
		return Token{}, fmt.Errorf("%w: header: %v", ErrMalformed, err)
	}

	payloadBytes, err := decodeSegment(parts[1])
	if err != nil {
		return Token{}, fmt.Errorf("%w: payload: %v", ErrMalformed, err)
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(payloadBytes, &payload); err != nil {
		return Token{}, fmt.Errorf("%w: payload: %v", ErrMalformed, err)
	}
	if payload == nil {
		return Token{}, fmt.Errorf("%w: payload is not an object", ErrMalformed)
	}

	var claims Claims
	if err := json.Unmarshal(payloadBytes, &claims); err != nil {
		return Token{}, fmt.Errorf("%w: claims: %v", ErrMalformed, err)
	}

	return Token{
		Raw:       raw,
		Header:    header,
		Payload:   payload,
		Signature: parts[2],
		Claims:    claims,
	}, nil
}

// Encode serialises header and payload into the compact form, appending the
// given signature segment verbatim.
func Encode(header, payload map[string]interface{}, signature string) (string, error) {
	headerJSON, err := json.Marshal(header)
	if err != nil {
		return "", fmt.Errorf("encode header: %w", err)
	}
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode payload: %w", err)
	}

	return strings.Join([]string{
		base64.RawURLEncoding.EncodeToString(headerJSON),
		base64.RawURLEncoding.EncodeToString(payloadJSON),
		signature,
	}, "."), nil
}

func decodeObject(segment string) (map[string]interface{}, error) {
	decoded, err := decodeSegment(segment)
	if err != nil {
		return nil, err
	}

	var out map[string]interface{}
	if err := json.Unmarshal(decoded, &out); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, errors.New("segment is not an object")
	}
	return out, nil
}

// decodeSegment accepts URL-safe and standard alphabets, padded or not.
func decodeSegment(segment string) ([]byte, error) {
	normalized := toStdAlphabet.Replace(strings.TrimRight(segment, "="))
	if rem := len(normalized) % 4; rem != 0 {
		normalized += strings.Repeat("=", 4-rem)
	}
	return base64.StdEncoding.DecodeString(normalized)
}
