package model

import (
	"errors"
	"time"
)

// LiveDuration is the duration stored on an entry whose timer is still running.
const LiveDuration int64 = -1

var ErrInvalidInterval = errors.New("end must be after start")

type TimeEntry struct {
	ID          int64      `json:"id"`
	WorkspaceID int64      `json:"workspace_id"`
	UserID      int64      `json:"user_id"`
	ProjectID   *int64     `json:"project_id,omitempty"`
	Description string     `json:"description"`
	StartAt     time.Time  `json:"start_at"`
	EndAt       *time.Time `json:"end_at,omitempty"`
	DurationMs  int64      `json:"duration_ms"`
	MonthDate   time.Time  `json:"month_date"`
	WeekNumber  int        `json:"week_number"`
	WeekYear    int        `json:"week_year"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (e *TimeEntry) IsLive() bool {
	return e.EndAt == nil
}

// Elapsed is the tracked time so far: the stored duration once stopped,
// or the time since start for a live entry.
func (e *TimeEntry) Elapsed(now time.Time) time.Duration {
	if e.IsLive() {
		return now.Sub(e.StartAt)
	}
	return time.Duration(e.DurationMs) * time.Millisecond
}

// Period holds the denormalized filter columns derived from an entry's start.
type Period struct {
	MonthDate  time.Time
	WeekYear   int
	WeekNumber int
}

// PeriodOf places t in its UTC calendar month and ISO week.
func PeriodOf(t time.Time) Period {
	u := t.UTC()
	year, week := u.ISOWeek()
	return Period{
		MonthDate:  MonthStart(u),
		WeekYear:   year,
		WeekNumber: week,
	}
}

// MonthStart returns midnight UTC on the first day of t's month.
func MonthStart(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// DurationMs returns end - start in milliseconds, requiring end after start.
func DurationMs(start, end time.Time) (int64, error) {
	if !end.After(start) {
		return 0, ErrInvalidInterval
	}
	return end.Sub(start).Milliseconds(), nil
}

// ProjectTotal is a caller's tracked time for one project within a month.
// A nil ProjectID groups entries without a project.
type ProjectTotal struct {
	ProjectID  *int64 `json:"project_id,omitempty"`
	TotalMs    int64  `json:"total_ms"`
	EntryCount int64  `json:"entry_count"`
}
