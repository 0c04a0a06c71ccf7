package dto

import "time"

type IssueTokenInput struct {
	UserID    string `json:"user_id"`
	IPAddress string `json:"-"`
	UserAgent string `json:"-"`
}

type RotateTokenInput struct {
	RefreshToken string `json:"refresh_token"`
	IPAddress    string `json:"-"`
	UserAgent    string `json:"-"`
}

type TokenPairOutput struct {
	AccessToken      string    `json:"access_token"`
	RefreshToken     string    `json:"refresh_token"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}
