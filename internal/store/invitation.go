package store

import (
	"context"

	"hourline.app/server/core/db/sqlc"
	"hourline.app/server/internal/model"
)

type invitationStore struct {
	queries *sqlc.Queries
}

func newInvitationStore(queries *sqlc.Queries) InvitationStore {
	return &invitationStore{queries: queries}
}

func (s *invitationStore) Create(ctx context.Context, inv *model.Invitation) error {
	row, err := s.queries.CreateInvitation(ctx, sqlc.CreateInvitationParams{
		ID:          inv.ID,
		WorkspaceID: inv.WorkspaceID,
		Email:       inv.Email,
		Role:        string(inv.Role),
		Token:       inv.Token,
		Status:      string(inv.Status),
		InvitedBy:   inv.InvitedBy,
		ExpiresAt:   timestamptz(inv.ExpiresAt),
	})
	if err != nil {
		return mapErr(err)
	}
	*inv = *toInvitationModel(row)
	return nil
}

func (s *invitationStore) GetByID(ctx context.Context, workspaceID, id int64) (*model.Invitation, error) {
	row, err := s.queries.GetInvitationByID(ctx, sqlc.GetInvitationByIDParams{ID: id, WorkspaceID: workspaceID})
	if err != nil {
		return nil, mapErr(err)
	}
	return toInvitationModel(row), nil
}

func (s *invitationStore) GetByToken(ctx context.Context, token string) (*model.Invitation, error) {
	row, err := s.queries.GetInvitationByToken(ctx, token)
	if err != nil {
		return nil, mapErr(err)
	}
	return toInvitationModel(row), nil
}

func (s *invitationStore) GetValidByToken(ctx context.Context, token string) (*model.Invitation, error) {
	row, err := s.queries.GetValidInvitationByToken(ctx, token)
	if err != nil {
		return nil, mapErr(err)
	}
	return toInvitationModel(row), nil
}

func (s *invitationStore) GetPendingByEmail(ctx context.Context, workspaceID int64, email string) (*model.Invitation, error) {
	row, err := s.queries.GetPendingInvitationByEmail(ctx, sqlc.GetPendingInvitationByEmailParams{
		WorkspaceID: workspaceID,
		Email:       email,
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return toInvitationModel(row), nil
}

func (s *invitationStore) Accept(ctx context.Context, id int64, userID int64) (*model.Invitation, error) {
	row, err := s.queries.AcceptInvitation(ctx, sqlc.AcceptInvitationParams{
		ID:         id,
		AcceptedBy: &userID,
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return toInvitationModel(row), nil
}

func (s *invitationStore) Revoke(ctx context.Context, workspaceID, id int64) (*model.Invitation, error) {
	row, err := s.queries.RevokeInvitation(ctx, sqlc.RevokeInvitationParams{ID: id, WorkspaceID: workspaceID})
	if err != nil {
		return nil, mapErr(err)
	}
	return toInvitationModel(row), nil
}

func (s *invitationStore) List(ctx context.Context, workspaceID int64) ([]model.Invitation, error) {
	rows, err := s.queries.ListInvitations(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	invs := make([]model.Invitation, len(rows))
	for i, row := range rows {
		invs[i] = *toInvitationModel(row)
	}
	return invs, nil
}

func (s *invitationStore) ExpireOld(ctx context.Context) error {
	return s.queries.ExpireOldInvitations(ctx)
}

func toInvitationModel(row sqlc.Invitation) *model.Invitation {
	return &model.Invitation{
		ID:          row.ID,
		WorkspaceID: row.WorkspaceID,
		Email:       row.Email,
		Role:        model.Role(row.Role),
		Token:       row.Token,
		Status:      model.InvitationStatus(row.Status),
		InvitedBy:   row.InvitedBy,
		AcceptedBy:  row.AcceptedBy,
		ExpiresAt:   row.ExpiresAt.Time,
		CreatedAt:   row.CreatedAt.Time,
		AcceptedAt:  timePtr(row.AcceptedAt),
	}
}
