package dto

import "github.com/google/uuid"

type CaptchaResponse struct {
	CaptchaID string `json:"captcha_id"`
	Question  string `json:"question"`
}

type LoginRequest struct {
	Phone         string `json:"phone"`
	Role          string `json:"role"`
	CaptchaID     string `json:"captcha_id"`
	CaptchaAnswer string `json:"captcha_answer"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type AuthMeResponse struct {
	ID   uuid.UUID `json:"id"`
	Role string    `json:"role"`
}

type AuthTokensResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	ExpiresInSec int64          `json:"expires_in_sec"`
	Me           AuthMeResponse `json:"me"`
}

type LogoutResponse struct {
	OK bool `json:"ok"`
}
