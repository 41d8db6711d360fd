package store

import (
	"context"
	"time"

	"hourline.app/server/core/db/sqlc"
	"hourline.app/server/internal/model"
)

const (
	defaultEntryLimit = 200
	maxEntryLimit     = 1000
)

type timeEntryStore struct {
	queries *sqlc.Queries
}

func newTimeEntryStore(queries *sqlc.Queries) TimeEntryStore {
	return &timeEntryStore{queries: queries}
}

func (s *timeEntryStore) GetByID(ctx context.Context, workspaceID, id int64) (*model.TimeEntry, error) {
	row, err := s.queries.GetTimeEntry(ctx, sqlc.GetTimeEntryParams{ID: id, WorkspaceID: workspaceID})
	if err != nil {
		return nil, mapErr(err)
	}
	return toTimeEntryModel(row), nil
}

func (s *timeEntryStore) GetLive(ctx context.Context, workspaceID, userID int64) (*model.TimeEntry, error) {
	row, err := s.queries.GetLiveTimeEntry(ctx, sqlc.GetLiveTimeEntryParams{
		WorkspaceID: workspaceID,
		UserID:      userID,
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return toTimeEntryModel(row), nil
}

func (s *timeEntryStore) Create(ctx context.Context, entry *model.TimeEntry) error {
	row, err := s.queries.CreateTimeEntry(ctx, sqlc.CreateTimeEntryParams{
		ID:          entry.ID,
		WorkspaceID: entry.WorkspaceID,
		UserID:      entry.UserID,
		ProjectID:   entry.ProjectID,
		Description: entry.Description,
		StartAt:     timestamptz(entry.StartAt),
		EndAt:       optTimestamptz(entry.EndAt),
		DurationMs:  entry.DurationMs,
		MonthDate:   date(entry.MonthDate),
		WeekNumber:  int32(entry.WeekNumber),
		WeekYear:    int32(entry.WeekYear),
	})
	if err != nil {
		return mapErr(err)
	}
	*entry = *toTimeEntryModel(row)
	return nil
}

// Stop closes a live entry. It returns ErrNotFound if the entry was already stopped.
func (s *timeEntryStore) Stop(ctx context.Context, id int64, endAt time.Time, durationMs int64) (*model.TimeEntry, error) {
	row, err := s.queries.StopTimeEntry(ctx, sqlc.StopTimeEntryParams{
		ID:         id,
		EndAt:      timestamptz(endAt),
		DurationMs: durationMs,
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return toTimeEntryModel(row), nil
}

func (s *timeEntryStore) Update(ctx context.Context, entry *model.TimeEntry) error {
	row, err := s.queries.UpdateTimeEntry(ctx, sqlc.UpdateTimeEntryParams{
		ID:          entry.ID,
		WorkspaceID: entry.WorkspaceID,
		ProjectID:   entry.ProjectID,
		Description: entry.Description,
		StartAt:     timestamptz(entry.StartAt),
		EndAt:       optTimestamptz(entry.EndAt),
		DurationMs:  entry.DurationMs,
		MonthDate:   date(entry.MonthDate),
		WeekNumber:  int32(entry.WeekNumber),
		WeekYear:    int32(entry.WeekYear),
	})
	if err != nil {
		return mapErr(err)
	}
	*entry = *toTimeEntryModel(row)
	return nil
}

func (s *timeEntryStore) Delete(ctx context.Context, workspaceID, id int64) error {
	n, err := s.queries.DeleteTimeEntry(ctx, sqlc.DeleteTimeEntryParams{ID: id, WorkspaceID: workspaceID})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *timeEntryStore) List(ctx context.Context, workspaceID int64, filter TimeEntryFilter) ([]model.TimeEntry, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultEntryLimit
	}
	if limit > maxEntryLimit {
		limit = maxEntryLimit
	}

	rows, err := s.queries.ListTimeEntries(ctx, sqlc.ListTimeEntriesParams{
		WorkspaceID: workspaceID,
		UserID:      filter.UserID,
		ProjectID:   filter.ProjectID,
		MonthDate:   optDate(filter.MonthDate),
		WeekYear:    int32Ptr(filter.WeekYear),
		WeekNumber:  int32Ptr(filter.WeekNumber),
		RowLimit:    int32(limit),
	})
	if err != nil {
		return nil, err
	}
	return toTimeEntryModels(rows), nil
}

func (s *timeEntryStore) ListCompletedForProjects(ctx context.Context, workspaceID int64, month time.Time, projectIDs []int64) ([]model.TimeEntry, error) {
	rows, err := s.queries.ListCompletedEntriesForProjects(ctx, sqlc.ListCompletedEntriesForProjectsParams{
		WorkspaceID: workspaceID,
		MonthDate:   date(month),
		ProjectIds:  projectIDs,
	})
	if err != nil {
		return nil, err
	}
	return toTimeEntryModels(rows), nil
}

func (s *timeEntryStore) SummarizeByProject(ctx context.Context, workspaceID, userID int64, month time.Time) ([]model.ProjectTotal, error) {
	rows, err := s.queries.SummarizeTimeEntriesByProject(ctx, sqlc.SummarizeTimeEntriesByProjectParams{
		WorkspaceID: workspaceID,
		UserID:      userID,
		MonthDate:   date(month),
	})
	if err != nil {
		return nil, err
	}
	totals := make([]model.ProjectTotal, len(rows))
	for i, row := range rows {
		totals[i] = model.ProjectTotal{
			ProjectID:  row.ProjectID,
			TotalMs:    row.TotalMs,
			EntryCount: row.EntryCount,
		}
	}
	return totals, nil
}

func toTimeEntryModels(rows []sqlc.TimeEntry) []model.TimeEntry {
	entries := make([]model.TimeEntry, len(rows))
	for i, row := range rows {
		entries[i] = *toTimeEntryModel(row)
	}
	return entries
}

func toTimeEntryModel(row sqlc.TimeEntry) *model.TimeEntry {
	return &model.TimeEntry{
		ID:          row.ID,
		WorkspaceID: row.WorkspaceID,
		UserID:      row.UserID,
		ProjectID:   row.ProjectID,
		Description: row.Description,
		StartAt:     row.StartAt.Time,
		EndAt:       timePtr(row.EndAt),
		DurationMs:  row.DurationMs,
		MonthDate:   row.MonthDate.Time,
		WeekNumber:  int(row.WeekNumber),
		WeekYear:    int(row.WeekYear),
		CreatedAt:   row.CreatedAt.Time,
		UpdatedAt:   row.UpdatedAt.Time,
	}
}
