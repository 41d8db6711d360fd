package model

import "time"

const DefaultProjectColor = "#6366f1"

type Project struct {
	ID              int64      `json:"id"`
	WorkspaceID     int64      `json:"workspace_id"`
	ClientID        *int64     `json:"client_id,omitempty"`
	Name            string     `json:"name"`
	Color           string     `json:"color"`
	RateCents       *int64     `json:"rate_cents,omitempty"`
	EstimateMinutes *int32     `json:"estimate_minutes,omitempty"`
	ArchivedAt      *time.Time `json:"archived_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (p *Project) IsArchived() bool {
	return p.ArchivedAt != nil
}
