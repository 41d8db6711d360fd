package store

import (
	"context"

	"hourline.app/server/core/db/sqlc"
	"hourline.app/server/internal/model"
)

type clientStore struct {
	queries *sqlc.Queries
}

func newClientStore(queries *sqlc.Queries) ClientStore {
	return &clientStore{queries: queries}
}

func (s *clientStore) GetByID(ctx context.Context, workspaceID, id int64) (*model.Client, error) {
	row, err := s.queries.GetClient(ctx, sqlc.GetClientParams{ID: id, WorkspaceID: workspaceID})
	if err != nil {
		return nil, mapErr(err)
	}
	return toClientModel(row), nil
}

func (s *clientStore) Create(ctx context.Context, client *model.Client) error {
	row, err := s.queries.CreateClient(ctx, sqlc.CreateClientParams{
		ID:          client.ID,
		WorkspaceID: client.WorkspaceID,
		Name:        client.Name,
		Email:       client.Email,
		Address:     client.Address,
		Currency:    client.Currency,
	})
	if err != nil {
		return mapErr(err)
	}
	*client = *toClientModel(row)
	return nil
}

func (s *clientStore) Update(ctx context.Context, client *model.Client) error {
	row, err := s.queries.UpdateClient(ctx, sqlc.UpdateClientParams{
		ID:          client.ID,
		WorkspaceID: client.WorkspaceID,
		Name:        client.Name,
		Email:       client.Email,
		Address:     client.Address,
		Currency:    client.Currency,
	})
	if err != nil {
		return mapErr(err)
	}
	*client = *toClientModel(row)
	return nil
}

func (s *clientStore) List(ctx context.Context, workspaceID int64) ([]model.Client, error) {
	rows, err := s.queries.ListClients(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	clients := make([]model.Client, len(rows))
	for i, row := range rows {
		clients[i] = *toClientModel(row)
	}
	return clients, nil
}

func toClientModel(row sqlc.Client) *model.Client {
	return &model.Client{
		ID:          row.ID,
		WorkspaceID: row.WorkspaceID,
		Name:        row.Name,
		Email:       row.Email,
		Address:     row.Address,
		Currency:    row.Currency,
		CreatedAt:   row.CreatedAt.Time,
		UpdatedAt:   row.UpdatedAt.Time,
	}
}
