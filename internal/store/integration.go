package store

import (
	"context"

	"hourline.app/server/core/db/sqlc"
	"hourline.app/server/internal/model"
)

type integrationStore struct {
	queries *sqlc.Queries
}

func newIntegrationStore(queries *sqlc.Queries) IntegrationStore {
	return &integrationStore{queries: queries}
}

func (s *integrationStore) GetByWorkspaceAndProvider(ctx context.Context, workspaceID int64, provider model.Provider) (*model.Integration, error) {
	row, err := s.queries.GetIntegrationByWorkspaceAndProvider(ctx, sqlc.GetIntegrationByWorkspaceAndProviderParams{
		WorkspaceID: workspaceID,
		Provider:    string(provider),
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return toIntegrationModel(row), nil
}

// Upsert stores the connection, replacing any earlier connection of the
// same provider in the workspace. The existing row keeps its id.
func (s *integrationStore) Upsert(ctx context.Context, integration *model.Integration) error {
	scopes := integration.Scopes
	if scopes == nil {
		scopes = []string{}
	}
	row, err := s.queries.UpsertIntegration(ctx, sqlc.UpsertIntegrationParams{
		ID:                  integration.ID,
		WorkspaceID:         integration.WorkspaceID,
		Provider:            string(integration.Provider),
		ExternalAccountID:   integration.ExternalAccountID,
		ExternalAccountName: integration.ExternalAccountName,
		AccessToken:         integration.AccessToken,
		RefreshToken:        integration.RefreshToken,
		ExpiresAt:           optTimestamptz(integration.ExpiresAt),
		Scopes:              scopes,
		ConnectedBy:         integration.ConnectedBy,
	})
	if err != nil {
		return mapErr(err)
	}
	*integration = *toIntegrationModel(row)
	return nil
}

func (s *integrationStore) Delete(ctx context.Context, workspaceID int64, provider model.Provider) error {
	n, err := s.queries.DeleteIntegration(ctx, sqlc.DeleteIntegrationParams{
		WorkspaceID: workspaceID,
		Provider:    string(provider),
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *integrationStore) ListByWorkspace(ctx context.Context, workspaceID int64) ([]model.Integration, error) {
	rows, err := s.queries.ListIntegrationsByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	integrations := make([]model.Integration, len(rows))
	for i, row := range rows {
		integrations[i] = *toIntegrationModel(row)
	}
	return integrations, nil
}

func toIntegrationModel(row sqlc.Integration) *model.Integration {
	return &model.Integration{
		ID:                  row.ID,
		WorkspaceID:         row.WorkspaceID,
		Provider:            model.Provider(row.Provider),
		ExternalAccountID:   row.ExternalAccountID,
		ExternalAccountName: row.ExternalAccountName,
		AccessToken:         row.AccessToken,
		RefreshToken:        row.RefreshToken,
		ExpiresAt:           timePtr(row.ExpiresAt),
		Scopes:              row.Scopes,
		ConnectedBy:         row.ConnectedBy,
		CreatedAt:           row.CreatedAt.Time,
		UpdatedAt:           row.UpdatedAt.Time,
	}
}
