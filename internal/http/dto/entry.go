package dto

import (
	"fmt"
	"time"

	"hourline.app/server/internal/model"
)

const monthLayout = "2006-01"

// ParseMonth parses "YYYY-MM" into the first day of that month in UTC.
func ParseMonth(s string) (time.Time, error) {
	t, err := time.Parse(monthLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("month must look like 2026-01: %w", err)
	}
	return t.UTC(), nil
}

type StartEntryRequest struct {
	ProjectID   *int64 `json:"project_id,omitempty,string"`
	Description string `json:"description" binding:"max=1000"`
}

type CreateEntryRequest struct {
	ProjectID   *int64    `json:"project_id,omitempty,string"`
	Description string    `json:"description" binding:"max=1000"`
	StartAt     time.Time `json:"start_at" binding:"required"`
	EndAt       time.Time `json:"end_at" binding:"required"`
}

type UpdateEntryRequest struct {
	ID           int64      `json:"id,string" binding:"required"`
	ProjectID    *int64     `json:"project_id,omitempty,string"`
	ClearProject bool       `json:"clear_project,omitempty"`
	Description  *string    `json:"description,omitempty" binding:"omitempty,max=1000"`
	StartAt      *time.Time `json:"start_at,omitempty"`
	EndAt        *time.Time `json:"end_at,omitempty"`
}

// ListEntriesRequest filters by month, or by ISO week and year, and optionally by project.
type ListEntriesRequest struct {
	Month     string `json:"month,omitempty"`
	Week      *int   `json:"week,omitempty" binding:"omitempty,min=1,max=53"`
	Year      *int   `json:"year,omitempty" binding:"omitempty,min=1970"`
	ProjectID *int64 `json:"project_id,omitempty,string"`
	UserID    *int64 `json:"user_id,omitempty,string"`
	Limit     int    `json:"limit,omitempty" binding:"omitempty,min=1,max=1000"`
}

type SummaryRequest struct {
	Month string `json:"month" binding:"required"`
}

type EntryResponse struct {
	ID          int64      `json:"id,string"`
	UserID      int64      `json:"user_id,string"`
	ProjectID   *int64     `json:"project_id,omitempty,string"`
	Description string     `json:"description"`
	StartAt     time.Time  `json:"start_at"`
	EndAt       *time.Time `json:"end_at,omitempty"`
	DurationMs  int64      `json:"duration_ms"`
	Live        bool       `json:"live"`
	Month       string     `json:"month"`
	WeekNumber  int        `json:"week_number"`
	WeekYear    int        `json:"week_year"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func ToEntryResponse(e *model.TimeEntry) *EntryResponse {
	return &EntryResponse{
		ID:          e.ID,
		UserID:      e.UserID,
		ProjectID:   e.ProjectID,
		Description: e.Description,
		StartAt:     e.StartAt,
		EndAt:       e.EndAt,
		DurationMs:  e.DurationMs,
		Live:        e.IsLive(),
		Month:       e.MonthDate.Format(monthLayout),
		WeekNumber:  e.WeekNumber,
		WeekYear:    e.WeekYear,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func ToEntryResponses(entries []model.TimeEntry) []*EntryResponse {
	out := make([]*EntryResponse, len(entries))
	for i := range entries {
		out[i] = ToEntryResponse(&entries[i])
	}
	return out
}

type ProjectTotalResponse struct {
	ProjectID  *int64 `json:"project_id,omitempty,string"`
	TotalMs    int64  `json:"total_ms"`
	EntryCount int64  `json:"entry_count"`
}

func ToProjectTotals(totals []model.ProjectTotal) []ProjectTotalResponse {
	out := make([]ProjectTotalResponse, len(totals))
	for i, t := range totals {
		out[i] = ProjectTotalResponse{ProjectID: t.ProjectID, TotalMs: t.TotalMs, EntryCount: t.EntryCount}
	}
	return out
}
