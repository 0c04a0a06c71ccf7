package dto

import "time"

// SecurityEventOutput is the wire shape pushed to live subscribers and
// returned from the read endpoint.
type SecurityEventOutput struct {
	ID              string            `json:"id"`
	Type            string            `json:"type"`
	UserID          *string           `json:"user_id,omitempty"`
	UserDisplayName *string           `json:"user_display_name,omitempty"`
	TenantID        *string           `json:"tenant_id,omitempty"`
	OccurredAt      time.Time         `json:"occurred_at"`
	IPAddress       string            `json:"ip_address,omitempty"`
	UserAgent       string            `json:"user_agent,omitempty"`
	Description     string            `json:"description"`
	Metadata        map[string]string `json:"metadata,omitempty"`
}

type ListInput struct {
	UserID    string     `query:"user_id"`
	TenantID  string     `query:"tenant_id"`
	Type      string     `query:"type"`
	From      *time.Time `query:"from"`
	To        *time.Time `query:"to"`
	PageSize  int        `query:"page_size"`
	PageToken string     `query:"page_token"`
}

type PageOutput struct {
	Events        []SecurityEventOutput `json:"events"`
	NextPageToken string                `json:"next_page_token,omitempty"`
}
