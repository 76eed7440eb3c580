package service

import (
	"errors"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/noah-isme/asdos-web/internal/token"
)

var (
	// ErrForbidden reports an action on a record the actor does not own.
	ErrForbidden = errors.New("not allowed to modify this record")
	// ErrLocked reports a change to a log or application that was already reviewed.
	ErrLocked = errors.New("record already reviewed")
	// ErrLowonganClosed reports an application to a vacancy that is full.
	ErrLowonganClosed = errors.New("lowongan is no longer open")
	// ErrInvalidInput reports input rejected before reaching the backend.
	ErrInvalidInput = errors.New("invalid input")
)

// Actor is the signed-in user a request is made for. Token is forwarded to the
// backend as the bearer credential.
type Actor struct {
	ID    string
	Role  token.Role
	Token string
}

// textPolicy strips every tag from free text before it is forwarded.
var textPolicy = bluemonday.StrictPolicy()

func cleanText(value string) string {
	return strings.TrimSpace(textPolicy.Sanitize(value))
}
