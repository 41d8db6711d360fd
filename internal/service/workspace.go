package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"hourline.app/server/common"
	"hourline.app/server/common/id"
	"hourline.app/server/internal/model"
	"hourline.app/server/internal/store"
)

const maxSlugAttempts = 20

var (
	ErrWorkspaceNotFound  = errors.New("workspace not found")
	ErrWorkspaceSlugTaken = errors.New("workspace slug is already taken")
	ErrNotMember          = errors.New("not a member of this workspace")
	ErrInvalidWorkspace   = errors.New("workspace name is required")
)

type CreateWorkspaceParams struct {
	Name        string
	Slug        *string
	Description *string
	Currency    string
}

// UpdateWorkspaceParams changes only the non-nil fields.
type UpdateWorkspaceParams struct {
	Name        *string
	Slug        *string
	Description *string
	Currency    *string
}

type WorkspaceService interface {
	Create(ctx context.Context, ownerID int64, params CreateWorkspaceParams) (*model.Workspace, error)
	ListForUser(ctx context.Context, userID int64) ([]model.Workspace, error)
	// Resolve loads the workspace by slug together with the user's role in it.
	Resolve(ctx context.Context, userID int64, slug string) (*model.Membership, error)
	Update(ctx context.Context, workspaceID int64, params UpdateWorkspaceParams) (*model.Workspace, error)
	// Select resolves the workspace and remembers it as the user's most recent one.
	Select(ctx context.Context, userID int64, slug string) (*model.Membership, error)
	// Current resolves the preferred slug, falling back to the cached recent
	// workspace and then to the user's first workspace.
	Current(ctx context.Context, userID int64, preferredSlug string) (*model.Membership, error)
}

type workspaceService struct {
	workspaceStore store.WorkspaceStore
	memberStore    store.MemberStore
	txRunner       TxRunner
	recent         RecentWorkspaceCache
}

func NewWorkspaceService(
	workspaceStore store.WorkspaceStore,
	memberStore store.MemberStore,
	txRunner TxRunner,
	recent RecentWorkspaceCache,
) WorkspaceService {
	return &workspaceService{
		workspaceStore: workspaceStore,
		memberStore:    memberStore,
		txRunner:       txRunner,
		recent:         recent,
	}
}

func (s *workspaceService) Create(ctx context.Context, ownerID int64, params CreateWorkspaceParams) (*model.Workspace, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, ErrInvalidWorkspace
	}
	currency, err := model.NormalizeCurrency(params.Currency, model.DefaultCurrency)
	if err != nil {
		return nil, err
	}

	var ws *model.Workspace
	err = s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		slug, err := ensureSlug(ctx, stores.Workspaces(), name, params.Slug)
		if err != nil {
			return err
		}

		ws = &model.Workspace{
			ID:          id.New(),
			OwnerID:     ownerID,
			Name:        name,
			Slug:        slug,
			Description: params.Description,
			Currency:    currency,
		}
		if err := stores.Workspaces().Create(ctx, ws); err != nil {
			if errors.Is(err, store.ErrConflict) {
				return ErrWorkspaceSlugTaken
			}
			return fmt.Errorf("creating workspace: %w", err)
		}

		if err := stores.Members().Add(ctx, ws.ID, ownerID, model.RoleOwner); err != nil {
			return fmt.Errorf("adding owner membership: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.remember(ctx, ownerID, ws.Slug)

	slog.InfoContext(ctx, "workspace created",
		"workspace_id", ws.ID,
		"slug", ws.Slug,
		"owner_id", ownerID,
	)
	return ws, nil
}

// ensureSlug validates an explicit slug, which must be free, or derives one
// from the name and appends -1..-20 until it is free.
func ensureSlug(ctx context.Context, workspaces store.WorkspaceStore, name string, explicit *string) (string, error) {
	if explicit != nil && *explicit != "" {
		slug := strings.ToLower(strings.TrimSpace(*explicit))
		if err := common.ValidateSlug(slug); err != nil {
			return "", err
		}
		taken, err := slugTaken(ctx, workspaces, slug)
		if err != nil {
			return "", err
		}
		if taken {
			return "", ErrWorkspaceSlugTaken
		}
		return slug, nil
	}

	base, err := common.Slugify(name, "workspace")
	if err != nil {
		return "", fmt.Errorf("generating slug: %w", err)
	}

	taken, err := slugTaken(ctx, workspaces, base)
	if err != nil {
		return "", err
	}
	if !taken {
		return base, nil
	}

	for i := 1; i <= maxSlugAttempts; i++ {
		candidate := common.SlugWithSuffix(base, i)
		taken, err := slugTaken(ctx, workspaces, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w: no free variant of %q", ErrWorkspaceSlugTaken, base)
}

func slugTaken(ctx context.Context, workspaces store.WorkspaceStore, slug string) (bool, error) {
	_, err := workspaces.GetBySlug(ctx, slug)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking slug availability: %w", err)
	}
	return true, nil
}

func (s *workspaceService) ListForUser(ctx context.Context, userID int64) ([]model.Workspace, error) {
	workspaces, err := s.workspaceStore.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing workspaces: %w", err)
	}
	return workspaces, nil
}

func (s *workspaceService) Resolve(ctx context.Context, userID int64, slug string) (*model.Membership, error) {
	ws, err := s.workspaceStore.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("getting workspace: %w", err)
	}

	role, err := s.memberStore.Get(ctx, ws.ID, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotMember
		}
		return nil, fmt.Errorf("getting membership: %w", err)
	}

	return &model.Membership{
		Workspace:   *ws,
		Role:        role,
		Permissions: model.PermissionsFor(role),
	}, nil
}

func (s *workspaceService) Update(ctx context.Context, workspaceID int64, params UpdateWorkspaceParams) (*model.Workspace, error) {
	ws, err := s.workspaceStore.GetByID(ctx, workspaceID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("getting workspace: %w", err)
	}

	if params.Name != nil {
		name := strings.TrimSpace(*params.Name)
		if name == "" {
			return nil, ErrInvalidWorkspace
		}
		ws.Name = name
	}
	if params.Slug != nil {
		slug := strings.ToLower(strings.TrimSpace(*params.Slug))
		if err := common.ValidateSlug(slug); err != nil {
			return nil, err
		}
		ws.Slug = slug
	}
	if params.Description != nil {
		ws.Description = params.Description
	}
	if params.Currency != nil {
		currency, err := model.NormalizeCurrency(*params.Currency, ws.Currency)
		if err != nil {
			return nil, err
		}
		ws.Currency = currency
	}

	if err := s.workspaceStore.Update(ctx, ws); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, ErrWorkspaceSlugTaken
		}
		return nil, fmt.Errorf("updating workspace: %w", err)
	}

	slog.InfoContext(ctx, "workspace updated", "workspace_id", ws.ID, "slug", ws.Slug)
	return ws, nil
}

func (s *workspaceService) Select(ctx context.Context, userID int64, slug string) (*model.Membership, error) {
	m, err := s.Resolve(ctx, userID, slug)
	if err != nil {
		return nil, err
	}
	s.remember(ctx, userID, m.Workspace.Slug)
	return m, nil
}

func (s *workspaceService) Current(ctx context.Context, userID int64, preferredSlug string) (*model.Membership, error) {
	candidates := []string{preferredSlug}
	if s.recent != nil {
		cached, err := s.recent.Get(ctx, userID)
		if err != nil {
			slog.WarnContext(ctx, "recent workspace lookup failed", "error", err, "user_id", userID)
		}
		candidates = append(candidates, cached)
	}

	for _, slug := range candidates {
		if slug == "" {
			continue
		}
		m, err := s.Resolve(ctx, userID, slug)
		if errors.Is(err, ErrWorkspaceNotFound) || errors.Is(err, ErrNotMember) {
			continue
		}
		if err != nil {
			return nil, err
		}
		s.remember(ctx, userID, m.Workspace.Slug)
		return m, nil
	}

	workspaces, err := s.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(workspaces) == 0 {
		return nil, ErrWorkspaceNotFound
	}
	return s.Select(ctx, userID, workspaces[0].Slug)
}

func (s *workspaceService) remember(ctx context.Context, userID int64, slug string) {
	if s.recent == nil {
		return
	}
	if err := s.recent.Set(ctx, userID, slug); err != nil {
		slog.WarnContext(ctx, "failed to cache recent workspace", "error", err, "user_id", userID)
	}
}
