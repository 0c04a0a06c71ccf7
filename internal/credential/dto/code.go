package dto

import "time"

type IssueCodeInput struct {
	UserID string `json:"user_id"`
	Kind   string `json:"kind"`
}

type IssueCodeOutput struct {
	Code      string    `json:"code"`
	RecordID  string    `json:"record_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

type ConsumeCodeInput struct {
	UserID   string `json:"user_id"`
	Kind     string `json:"kind"`
	RecordID string `json:"record_id,omitempty"`
	Code     string `json:"code"`
}

type ConsumeCodeOutput struct {
	Result string `json:"result"`
}
