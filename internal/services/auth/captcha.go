package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"strconv"
	"strings"
	"time"
)

type CaptchaStore interface {
	Store(ctx context.Context, captchaID, answer string, ttl time.Duration) error
	Consume(ctx context.Context, captchaID string) (string, bool, error)
}

// NewCaptcha issues an arithmetic challenge and stores the expected answer
// under an opaque id with the given TTL.
func (s *Service) NewCaptcha(ctx context.Context, ttl time.Duration) (CaptchaChallenge, error) {
	if s.captchas == nil {
		return CaptchaChallenge{}, fmt.Errorf("captcha store is nil")
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	captchaID, err := NewOpaqueToken(16)
	if err != nil {
		return CaptchaChallenge{}, fmt.Errorf("generate captcha id: %w", err)
	}

	a, err := randomOperand()
	if err != nil {
		return CaptchaChallenge{}, err
	}
	b, err := randomOperand()
	if err != nil {
		return CaptchaChallenge{}, err
	}

	answer := strconv.Itoa(a + b)
	if err := s.captchas.Store(ctx, captchaID, answer, ttl); err != nil {
		return CaptchaChallenge{}, fmt.Errorf("store captcha: %w", err)
	}

	return CaptchaChallenge{
		CaptchaID: captchaID,
		Question:  fmt.Sprintf("%d + %d = ?", a, b),
	}, nil
}

func (s *Service) verifyCaptcha(ctx context.Context, captchaID, answer string) error {
	if s.captchas == nil {
		return fmt.Errorf("captcha store is nil")
	}
	if strings.TrimSpace(captchaID) == "" || strings.TrimSpace(answer) == "" {
		return ErrCaptchaInvalid
	}

	expected, found, err := s.captchas.Consume(ctx, captchaID)
	if err != nil {
		return fmt.Errorf("consume captcha: %w", err)
	}
	if !found || strings.TrimSpace(answer) != expected {
		return ErrCaptchaInvalid
	}

	return nil
}

func randomOperand() (int, error) {
	b := make([]byte, 1)
	if _, err := rand.Read(b); err != nil {
		return 0, fmt.Errorf("generate captcha operand: %w", err)
	}
	return int(b[0]%20) + 1, nil
}
