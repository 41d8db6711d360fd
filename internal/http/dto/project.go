package dto

import (
	"time"

	"hourline.app/server/internal/model"
)

type ListProjectsRequest struct {
	Archived bool `json:"archived,omitempty"`
}

type ProjectRequest struct {
	Name            string `json:"name" binding:"required,min=1,max=255"`
	ClientID        *int64 `json:"client_id,omitempty,string"`
	Color           string `json:"color,omitempty"`
	RateCents       *int64 `json:"rate_cents,omitempty" binding:"omitempty,min=0"`
	EstimateMinutes *int32 `json:"estimate_minutes,omitempty" binding:"omitempty,min=0"`
}

type UpdateProjectRequest struct {
	ID int64 `json:"id,string" binding:"required"`
	ProjectRequest
}

type ProjectResponse struct {
	ID              int64      `json:"id,string"`
	ClientID        *int64     `json:"client_id,omitempty,string"`
	Name            string     `json:"name"`
	Color           string     `json:"color"`
	RateCents       *int64     `json:"rate_cents,omitempty"`
	EstimateMinutes *int32     `json:"estimate_minutes,omitempty"`
	Archived        bool       `json:"archived"`
	ArchivedAt      *time.Time `json:"archived_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func ToProjectResponse(p *model.Project) ProjectResponse {
	return ProjectResponse{
		ID:              p.ID,
		ClientID:        p.ClientID,
		Name:            p.Name,
		Color:           p.Color,
		RateCents:       p.RateCents,
		EstimateMinutes: p.EstimateMinutes,
		Archived:        p.IsArchived(),
		ArchivedAt:      p.ArchivedAt,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func ToProjectResponses(projects []model.Project) []ProjectResponse {
	out := make([]ProjectResponse, len(projects))
	for i := range projects {
		out[i] = ToProjectResponse(&projects[i])
	}
	return out
}
