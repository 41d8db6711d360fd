package store

import (
	"context"

	"hourline.app/server/core/db/sqlc"
	"hourline.app/server/internal/model"
)

type workspaceStore struct {
	queries *sqlc.Queries
}

func newWorkspaceStore(queries *sqlc.Queries) WorkspaceStore {
	return &workspaceStore{queries: queries}
}

func (s *workspaceStore) GetByID(ctx context.Context, id int64) (*model.Workspace, error) {
	row, err := s.queries.GetWorkspace(ctx, id)
	if err != nil {
		return nil, mapErr(err)
	}
	return toWorkspaceModel(row), nil
}

func (s *workspaceStore) GetBySlug(ctx context.Context, slug string) (*model.Workspace, error) {
	row, err := s.queries.GetWorkspaceBySlug(ctx, slug)
	if err != nil {
		return nil, mapErr(err)
	}
	return toWorkspaceModel(row), nil
}

func (s *workspaceStore) Create(ctx context.Context, ws *model.Workspace) error {
	row, err := s.queries.CreateWorkspace(ctx, sqlc.CreateWorkspaceParams{
		ID:          ws.ID,
		OwnerID:     ws.OwnerID,
		Name:        ws.Name,
		Slug:        ws.Slug,
		Description: ws.Description,
		Currency:    ws.Currency,
	})
	if err != nil {
		return mapErr(err)
	}
	*ws = *toWorkspaceModel(row)
	return nil
}

func (s *workspaceStore) Update(ctx context.Context, ws *model.Workspace) error {
	row, err := s.queries.UpdateWorkspace(ctx, sqlc.UpdateWorkspaceParams{
		ID:          ws.ID,
		Name:        ws.Name,
		Slug:        ws.Slug,
		Description: ws.Description,
		Currency:    ws.Currency,
	})
	if err != nil {
		return mapErr(err)
	}
	*ws = *toWorkspaceModel(row)
	return nil
}

func (s *workspaceStore) ListByUser(ctx context.Context, userID int64) ([]model.Workspace, error) {
	rows, err := s.queries.ListWorkspacesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	workspaces := make([]model.Workspace, len(rows))
	for i, row := range rows {
		workspaces[i] = *toWorkspaceModel(row)
	}
	return workspaces, nil
}

func (s *workspaceStore) NextInvoiceSeq(ctx context.Context, id int64) (int64, error) {
	seq, err := s.queries.NextInvoiceSeq(ctx, id)
	if err != nil {
		return 0, mapErr(err)
	}
	return seq, nil
}

func toWorkspaceModel(row sqlc.Workspace) *model.Workspace {
	return &model.Workspace{
		ID:          row.ID,
		OwnerID:     row.OwnerID,
		Name:        row.Name,
		Slug:        row.Slug,
		Description: row.Description,
		Currency:    row.Currency,
		CreatedAt:   row.CreatedAt.Time,
		UpdatedAt:   row.UpdatedAt.Time,
	}
}
