package store

import (
	"context"

	"hourline.app/server/core/db/sqlc"
	"hourline.app/server/internal/model"
)

type memberStore struct {
	queries *sqlc.Queries
}

func newMemberStore(queries *sqlc.Queries) MemberStore {
	return &memberStore{queries: queries}
}

func (s *memberStore) Get(ctx context.Context, workspaceID, userID int64) (model.Role, error) {
	row, err := s.queries.GetWorkspaceMember(ctx, sqlc.GetWorkspaceMemberParams{
		WorkspaceID: workspaceID,
		UserID:      userID,
	})
	if err != nil {
		return "", mapErr(err)
	}
	return model.Role(row.Role), nil
}

func (s *memberStore) Add(ctx context.Context, workspaceID, userID int64, role model.Role) error {
	_, err := s.queries.AddWorkspaceMember(ctx, sqlc.AddWorkspaceMemberParams{
		WorkspaceID: workspaceID,
		UserID:      userID,
		Role:        string(role),
	})
	return mapErr(err)
}

func (s *memberStore) List(ctx context.Context, workspaceID int64) ([]model.Member, error) {
	rows, err := s.queries.ListWorkspaceMembers(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	members := make([]model.Member, len(rows))
	for i, row := range rows {
		members[i] = model.Member{
			WorkspaceID: row.WorkspaceID,
			UserID:      row.UserID,
			Role:        model.Role(row.Role),
			Name:        row.Name,
			Email:       row.Email,
			AvatarURL:   row.AvatarUrl,
			CreatedAt:   row.CreatedAt.Time,
			UpdatedAt:   row.UpdatedAt.Time,
		}
	}
	return members, nil
}

func (s *memberStore) UpdateRole(ctx context.Context, workspaceID, userID int64, role model.Role) error {
	_, err := s.queries.UpdateWorkspaceMemberRole(ctx, sqlc.UpdateWorkspaceMemberRoleParams{
		WorkspaceID: workspaceID,
		UserID:      userID,
		Role:        string(role),
	})
	return mapErr(err)
}

func (s *memberStore) Remove(ctx context.Context, workspaceID, userID int64) error {
	n, err := s.queries.RemoveWorkspaceMember(ctx, sqlc.RemoveWorkspaceMemberParams{
		WorkspaceID: workspaceID,
		UserID:      userID,
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *memberStore) CountOwners(ctx context.Context, workspaceID int64) (int64, error) {
	return s.queries.CountWorkspaceOwners(ctx, workspaceID)
}
