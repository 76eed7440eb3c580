package dto

import "time"

// LoginRequest is the credential form posted to /auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=128"`
	Password string `json:"password" validate:"required,max=128"`
}

// RegisterRequest creates a student account.
type RegisterRequest struct {
	FullName string `json:"fullName" validate:"required,max=128"`
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,max=64"`
	NIM      string `json:"nim" validate:"required,numeric,max=20"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// LoginResult is the backend's answer to a successful login.
type LoginResult struct {
	Token   string `json:"token"`
	Message string `json:"message,omitempty"`
}

// SessionResponse describes the visitor's session to the front end.
type SessionResponse struct {
	Authenticated bool       `json:"authenticated"`
	Subject       string     `json:"sub,omitempty"`
	Role          string     `json:"role,omitempty"`
	UserID        string     `json:"userId,omitempty"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty"`
	Dashboard     string     `json:"dashboard,omitempty"`
}
