package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"hourline.app/server/internal/model"
	"hourline.app/server/internal/store"
)

var (
	ErrMemberNotFound    = errors.New("member not found")
	ErrInvalidRole       = errors.New("role must be admin or member")
	ErrOwnerRoleLocked   = errors.New("the owner role cannot be changed")
	ErrLastOwner         = errors.New("a workspace must keep at least one owner")
	ErrCannotRemoveOwner = errors.New("the workspace owner cannot be removed")
)

type TeamService interface {
	ListMembers(ctx context.Context, workspaceID int64) ([]model.Member, error)
	UpdateRole(ctx context.Context, actor Actor, userID int64, role model.Role) (*model.Member, error)
	Remove(ctx context.Context, actor Actor, userID int64) error
}

type teamService struct {
	memberStore store.MemberStore
}

func NewTeamService(memberStore store.MemberStore) TeamService {
	return &teamService{memberStore: memberStore}
}

func (s *teamService) ListMembers(ctx context.Context, workspaceID int64) ([]model.Member, error) {
	members, err := s.memberStore.List(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}
	return members, nil
}

// UpdateRole switches a member between admin and member. Only owners may
// grant admin, and owners themselves are never demoted here.
func (s *teamService) UpdateRole(ctx context.Context, actor Actor, userID int64, role model.Role) (*model.Member, error) {
	if role != model.RoleAdmin && role != model.RoleMember {
		return nil, ErrInvalidRole
	}
	if role == model.RoleAdmin && actor.Role != model.RoleOwner {
		return nil, ErrForbidden
	}

	current, err := s.role(ctx, actor.WorkspaceID(), userID)
	if err != nil {
		return nil, err
	}
	if current == model.RoleOwner {
		owners, err := s.memberStore.CountOwners(ctx, actor.WorkspaceID())
		if err != nil {
			return nil, fmt.Errorf("counting owners: %w", err)
		}
		if owners <= 1 {
			return nil, ErrLastOwner
		}
		return nil, ErrOwnerRoleLocked
	}
	if current == model.RoleAdmin && actor.Role != model.RoleOwner && actor.UserID != userID {
		return nil, ErrForbidden
	}

	if current != role {
		if err := s.memberStore.UpdateRole(ctx, actor.WorkspaceID(), userID, role); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, ErrMemberNotFound
			}
			return nil, fmt.Errorf("updating role: %w", err)
		}
		slog.InfoContext(ctx, "member role updated",
			"workspace_id", actor.WorkspaceID(),
			"user_id", userID,
			"from", current,
			"to", role,
			"by", actor.UserID,
		)
	}

	return s.member(ctx, actor.WorkspaceID(), userID)
}

func (s *teamService) Remove(ctx context.Context, actor Actor, userID int64) error {
	current, err := s.role(ctx, actor.WorkspaceID(), userID)
	if err != nil {
		return err
	}
	if current == model.RoleOwner {
		return ErrCannotRemoveOwner
	}
	if current == model.RoleAdmin && actor.Role != model.RoleOwner && actor.UserID != userID {
		return ErrForbidden
	}

	if err := s.memberStore.Remove(ctx, actor.WorkspaceID(), userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("removing member: %w", err)
	}

	slog.InfoContext(ctx, "member removed",
		"workspace_id", actor.WorkspaceID(),
		"user_id", userID,
		"by", actor.UserID,
	)
	return nil
}

func (s *teamService) role(ctx context.Context, workspaceID, userID int64) (model.Role, error) {
	role, err := s.memberStore.Get(ctx, workspaceID, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrMemberNotFound
		}
		return "", fmt.Errorf("getting member: %w", err)
	}
	return role, nil
}

func (s *teamService) member(ctx context.Context, workspaceID, userID int64) (*model.Member, error) {
	members, err := s.ListMembers(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	for i := range members {
		if members[i].UserID == userID {
			return &members[i], nil
		}
	}
	return nil, ErrMemberNotFound
}
