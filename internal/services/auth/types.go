package auth

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrSessionNotFound = errors.New("session not found")
	ErrRefreshNotFound = errors.New("refresh token not found")
	ErrCaptchaInvalid  = errors.New("captcha invalid or expired")
)

type SessionRecord struct {
	SID       string
	UserID    uuid.UUID
	Role      string
	ExpiresAt time.Time
}

type AccessClaims struct {
	UserID    uuid.UUID
	SID       string
	Role      string
	ExpiresAt time.Time
}

type Me struct {
	ID   uuid.UUID
	Role string
}

type AuthResult struct {
	AccessToken   string
	RefreshToken  string
	AccessExpires time.Time
	Me            Me
}

type CaptchaChallenge struct {
	CaptchaID string
	Question  string
}
