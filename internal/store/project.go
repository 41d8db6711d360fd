package store

import (
	"context"
	"time"

	"hourline.app/server/core/db/sqlc"
	"hourline.app/server/internal/model"
)

type projectStore struct {
	queries *sqlc.Queries
}

func newProjectStore(queries *sqlc.Queries) ProjectStore {
	return &projectStore{queries: queries}
}

func (s *projectStore) GetByID(ctx context.Context, workspaceID, id int64) (*model.Project, error) {
	row, err := s.queries.GetProject(ctx, sqlc.GetProjectParams{ID: id, WorkspaceID: workspaceID})
	if err != nil {
		return nil, mapErr(err)
	}
	return toProjectModel(row), nil
}

func (s *projectStore) Create(ctx context.Context, project *model.Project) error {
	row, err := s.queries.CreateProject(ctx, sqlc.CreateProjectParams{
		ID:              project.ID,
		WorkspaceID:     project.WorkspaceID,
		ClientID:        project.ClientID,
		Name:            project.Name,
		Color:           project.Color,
		RateCents:       project.RateCents,
		EstimateMinutes: project.EstimateMinutes,
	})
	if err != nil {
		return mapErr(err)
	}
	*project = *toProjectModel(row)
	return nil
}

func (s *projectStore) Update(ctx context.Context, project *model.Project) error {
	row, err := s.queries.UpdateProject(ctx, sqlc.UpdateProjectParams{
		ID:              project.ID,
		WorkspaceID:     project.WorkspaceID,
		ClientID:        project.ClientID,
		Name:            project.Name,
		Color:           project.Color,
		RateCents:       project.RateCents,
		EstimateMinutes: project.EstimateMinutes,
	})
	if err != nil {
		return mapErr(err)
	}
	*project = *toProjectModel(row)
	return nil
}

func (s *projectStore) SetArchivedAt(ctx context.Context, workspaceID, id int64, archivedAt *time.Time) (*model.Project, error) {
	row, err := s.queries.SetProjectArchivedAt(ctx, sqlc.SetProjectArchivedAtParams{
		ID:          id,
		WorkspaceID: workspaceID,
		ArchivedAt:  optTimestamptz(archivedAt),
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return toProjectModel(row), nil
}

func (s *projectStore) List(ctx context.Context, workspaceID int64, includeArchived bool) ([]model.Project, error) {
	rows, err := s.queries.ListProjects(ctx, sqlc.ListProjectsParams{
		WorkspaceID:     workspaceID,
		IncludeArchived: includeArchived,
	})
	if err != nil {
		return nil, err
	}
	projects := make([]model.Project, len(rows))
	for i, row := range rows {
		projects[i] = *toProjectModel(row)
	}
	return projects, nil
}

func toProjectModel(row sqlc.Project) *model.Project {
	return &model.Project{
		ID:              row.ID,
		WorkspaceID:     row.WorkspaceID,
		ClientID:        row.ClientID,
		Name:            row.Name,
		Color:           row.Color,
		RateCents:       row.RateCents,
		EstimateMinutes: row.EstimateMinutes,
		ArchivedAt:      timePtr(row.ArchivedAt),
		CreatedAt:       row.CreatedAt.Time,
		UpdatedAt:       row.UpdatedAt.Time,
	}
}
