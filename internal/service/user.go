package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"hourline.app/server/internal/model"
	"hourline.app/server/internal/store"
)

type UserService interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	// Profile returns the user together with every workspace they belong to.
	Profile(ctx context.Context, userID int64) (*model.User, []model.Workspace, error)
}

type userService struct {
	userStore      store.UserStore
	workspaceStore store.WorkspaceStore
}

func NewUserService(userStore store.UserStore, workspaceStore store.WorkspaceStore) UserService {
	return &userService{
		userStore:      userStore,
		workspaceStore: workspaceStore,
	}
}

func (s *userService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return user, nil
}

func (s *userService) Profile(ctx context.Context, userID int64) (*model.User, []model.Workspace, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	workspaces, err := s.workspaceStore.ListByUser(ctx, userID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list workspaces for user",
			"error", err,
			"user_id", userID,
		)
		return nil, nil, fmt.Errorf("listing workspaces: %w", err)
	}

	return user, workspaces, nil
}
