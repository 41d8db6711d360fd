package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"hourline.app/server/common/id"
	"hourline.app/server/common/logger"
	"hourline.app/server/internal/model"
	"hourline.app/server/internal/observability"
	"hourline.app/server/internal/store"
)

const liveEntryConstraint = "time_entries_one_live_per_user_idx"

var (
	ErrTrackerRunning = errors.New("a timer is already running")
	ErrNoLiveEntry    = errors.New("no timer is running")
	ErrEntryNotFound  = errors.New("time entry not found")
	ErrEntryIsLive    = errors.New("stop the running timer before setting its end")
	ErrInvalidFilter  = errors.New("week and year must be given together")
)

type StartEntryParams struct {
	ProjectID   *int64
	Description string
}

type ManualEntryParams struct {
	ProjectID   *int64
	Description string
	StartAt     time.Time
	EndAt       time.Time
}

// UpdateEntryParams changes only the non-nil fields. ClearProject detaches the project.
type UpdateEntryParams struct {
	ProjectID    *int64
	ClearProject bool
	Description  *string
	StartAt      *time.Time
	EndAt        *time.Time
}

type ListEntriesParams struct {
	UserID    *int64
	ProjectID *int64
	Month     *time.Time
	Year      *int
	Week      *int
	Limit     int
}

type TimeEntryService interface {
	Start(ctx context.Context, actor Actor, params StartEntryParams) (*model.TimeEntry, error)
	Stop(ctx context.Context, actor Actor) (*model.TimeEntry, error)
	// Live returns the running entry, or nil when no timer is running.
	Live(ctx context.Context, actor Actor) (*model.TimeEntry, error)
	Create(ctx context.Context, actor Actor, params ManualEntryParams) (*model.TimeEntry, error)
	Update(ctx context.Context, actor Actor, id int64, params UpdateEntryParams) (*model.TimeEntry, error)
	Delete(ctx context.Context, actor Actor, id int64) error
	List(ctx context.Context, actor Actor, params ListEntriesParams) ([]model.TimeEntry, error)
	Summary(ctx context.Context, actor Actor, month time.Time) ([]model.ProjectTotal, error)
}

type timeEntryService struct {
	entryStore   store.TimeEntryStore
	projectStore store.ProjectStore
	now          func() time.Time
}

func NewTimeEntryService(entryStore store.TimeEntryStore, projectStore store.ProjectStore) TimeEntryService {
	return &timeEntryService{
		entryStore:   entryStore,
		projectStore: projectStore,
		now:          time.Now,
	}
}

func (s *timeEntryService) Start(ctx context.Context, actor Actor, params StartEntryParams) (*model.TimeEntry, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		WorkspaceID: logger.Ptr(actor.WorkspaceID()),
		UserID:      logger.Ptr(actor.UserID),
	})

	if err := s.checkProject(ctx, actor.WorkspaceID(), params.ProjectID); err != nil {
		return nil, err
	}

	if _, err := s.entryStore.GetLive(ctx, actor.WorkspaceID(), actor.UserID); err == nil {
		return nil, ErrTrackerRunning
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("checking running timer: %w", err)
	}

	start := s.now().UTC()
	period := model.PeriodOf(start)
	entry := &model.TimeEntry{
		ID:          id.New(),
		WorkspaceID: actor.WorkspaceID(),
		UserID:      actor.UserID,
		ProjectID:   params.ProjectID,
		Description: strings.TrimSpace(params.Description),
		StartAt:     start,
		DurationMs:  model.LiveDuration,
		MonthDate:   period.MonthDate,
		WeekYear:    period.WeekYear,
		WeekNumber:  period.WeekNumber,
	}

	if err := s.entryStore.Create(ctx, entry); err != nil {
		// Two concurrent starts race past GetLive; the partial unique index decides.
		if store.ViolatedConstraint(err) == liveEntryConstraint {
			return nil, ErrTrackerRunning
		}
		return nil, mapEntryWriteErr("starting timer", err)
	}
	observability.RecordTrackerStart()

	slog.InfoContext(ctx, "timer started", "entry_id", entry.ID, "project_id", entry.ProjectID)
	return entry, nil
}

func (s *timeEntryService) Stop(ctx context.Context, actor Actor) (*model.TimeEntry, error) {
	live, err := s.entryStore.GetLive(ctx, actor.WorkspaceID(), actor.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNoLiveEntry
		}
		return nil, fmt.Errorf("getting running timer: %w", err)
	}

	end := s.now().UTC()
	duration := end.Sub(live.StartAt).Milliseconds()
	if duration < 0 {
		// Clock skew between API replicas; the entry closes at its own start.
		end, duration = live.StartAt, 0
	}

	stopped, err := s.entryStore.Stop(ctx, live.ID, end, duration)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNoLiveEntry
		}
		return nil, fmt.Errorf("stopping timer: %w", err)
	}
	observability.RecordTrackerStop()

	slog.InfoContext(ctx, "timer stopped",
		"workspace_id", actor.WorkspaceID(),
		"user_id", actor.UserID,
		"entry_id", stopped.ID,
		"duration_ms", stopped.DurationMs,
	)
	return stopped, nil
}

func (s *timeEntryService) Live(ctx context.Context, actor Actor) (*model.TimeEntry, error) {
	live, err := s.entryStore.GetLive(ctx, actor.WorkspaceID(), actor.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting running timer: %w", err)
	}
	return live, nil
}

func (s *timeEntryService) Create(ctx context.Context, actor Actor, params ManualEntryParams) (*model.TimeEntry, error) {
	duration, err := model.DurationMs(params.StartAt, params.EndAt)
	if err != nil {
		return nil, err
	}
	if err := s.checkProject(ctx, actor.WorkspaceID(), params.ProjectID); err != nil {
		return nil, err
	}

	start := params.StartAt.UTC()
	end := params.EndAt.UTC()
	period := model.PeriodOf(start)
	entry := &model.TimeEntry{
		ID:          id.New(),
		WorkspaceID: actor.WorkspaceID(),
		UserID:      actor.UserID,
		ProjectID:   params.ProjectID,
		Description: strings.TrimSpace(params.Description),
		StartAt:     start,
		EndAt:       &end,
		DurationMs:  duration,
		MonthDate:   period.MonthDate,
		WeekYear:    period.WeekYear,
		WeekNumber:  period.WeekNumber,
	}

	if err := s.entryStore.Create(ctx, entry); err != nil {
		return nil, mapEntryWriteErr("creating time entry", err)
	}
	return entry, nil
}

func (s *timeEntryService) Update(ctx context.Context, actor Actor, id int64, params UpdateEntryParams) (*model.TimeEntry, error) {
	entry, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if params.ClearProject {
		entry.ProjectID = nil
	} else if params.ProjectID != nil {
		if err := s.checkProject(ctx, actor.WorkspaceID(), params.ProjectID); err != nil {
			return nil, err
		}
		entry.ProjectID = params.ProjectID
	}
	if params.Description != nil {
		entry.Description = strings.TrimSpace(*params.Description)
	}
	if params.StartAt != nil {
		entry.StartAt = params.StartAt.UTC()
	}
	if params.EndAt != nil {
		if entry.IsLive() {
			return nil, ErrEntryIsLive
		}
		end := params.EndAt.UTC()
		entry.EndAt = &end
	}

	if entry.IsLive() {
		if entry.StartAt.After(s.now()) {
			return nil, model.ErrInvalidInterval
		}
		entry.DurationMs = model.LiveDuration
	} else {
		duration, err := model.DurationMs(entry.StartAt, *entry.EndAt)
		if err != nil {
			return nil, err
		}
		entry.DurationMs = duration
	}

	period := model.PeriodOf(entry.StartAt)
	entry.MonthDate = period.MonthDate
	entry.WeekYear = period.WeekYear
	entry.WeekNumber = period.WeekNumber

	if err := s.entryStore.Update(ctx, entry); err != nil {
		return nil, mapEntryWriteErr("updating time entry", err)
	}
	return entry, nil
}

func (s *timeEntryService) Delete(ctx context.Context, actor Actor, id int64) error {
	if _, err := s.owned(ctx, actor, id); err != nil {
		return err
	}
	if err := s.entryStore.Delete(ctx, actor.WorkspaceID(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrEntryNotFound
		}
		return fmt.Errorf("deleting time entry: %w", err)
	}

	slog.InfoContext(ctx, "time entry deleted",
		"workspace_id", actor.WorkspaceID(),
		"entry_id", id,
		"by", actor.UserID,
	)
	return nil
}

// List returns the actor's entries. Admins may list another member's
// entries or, with no user filter, everyone's.
func (s *timeEntryService) List(ctx context.Context, actor Actor, params ListEntriesParams) ([]model.TimeEntry, error) {
	if (params.Year == nil) != (params.Week == nil) {
		return nil, ErrInvalidFilter
	}

	filter := store.TimeEntryFilter{
		UserID:     params.UserID,
		ProjectID:  params.ProjectID,
		WeekYear:   params.Year,
		WeekNumber: params.Week,
		Limit:      params.Limit,
	}
	if !actor.Role.IsAdmin() {
		if params.UserID != nil && *params.UserID != actor.UserID {
			return nil, ErrForbidden
		}
		filter.UserID = &actor.UserID
	}
	if params.Month != nil {
		month := model.MonthStart(*params.Month)
		filter.MonthDate = &month
	}

	entries, err := s.entryStore.List(ctx, actor.WorkspaceID(), filter)
	if err != nil {
		return nil, fmt.Errorf("listing time entries: %w", err)
	}
	return entries, nil
}

func (s *timeEntryService) Summary(ctx context.Context, actor Actor, month time.Time) ([]model.ProjectTotal, error) {
	totals, err := s.entryStore.SummarizeByProject(ctx, actor.WorkspaceID(), actor.UserID, model.MonthStart(month))
	if err != nil {
		return nil, fmt.Errorf("summarizing time entries: %w", err)
	}
	return totals, nil
}

func (s *timeEntryService) owned(ctx context.Context, actor Actor, id int64) (*model.TimeEntry, error) {
	entry, err := s.entryStore.GetByID(ctx, actor.WorkspaceID(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("getting time entry: %w", err)
	}
	if !actor.CanActOn(entry.UserID) {
		return nil, ErrForbidden
	}
	return entry, nil
}

func (s *timeEntryService) checkProject(ctx context.Context, workspaceID int64, projectID *int64) error {
	if projectID == nil {
		return nil
	}
	project, err := s.projectStore.GetByID(ctx, workspaceID, *projectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("getting project: %w", err)
	}
	if project.IsArchived() {
		return ErrProjectArchived
	}
	return nil
}

func mapEntryWriteErr(op string, err error) error {
	switch {
	case errors.Is(err, store.ErrInvalidReference):
		return ErrProjectNotFound
	case errors.Is(err, store.ErrNotFound):
		return ErrEntryNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
