package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"hourline.app/server/common/id"
	"hourline.app/server/internal/model"
	"hourline.app/server/internal/store"
)

var (
	ErrProjectNotFound      = errors.New("project not found")
	ErrProjectNameTaken     = errors.New("a project with this name already exists")
	ErrProjectArchived      = errors.New("project is archived")
	ErrClientNotInWorkspace = errors.New("client does not belong to this workspace")
	ErrInvalidProject       = errors.New("invalid project")
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

type ProjectParams struct {
	Name            string
	ClientID        *int64
	Color           string
	RateCents       *int64
	EstimateMinutes *int32
}

type ProjectService interface {
	List(ctx context.Context, workspaceID int64, includeArchived bool) ([]model.Project, error)
	Get(ctx context.Context, workspaceID, id int64) (*model.Project, error)
	Create(ctx context.Context, workspaceID int64, params ProjectParams) (*model.Project, error)
	Update(ctx context.Context, workspaceID, id int64, params ProjectParams) (*model.Project, error)
	Archive(ctx context.Context, workspaceID, id int64) (*model.Project, error)
	Unarchive(ctx context.Context, workspaceID, id int64) (*model.Project, error)
}

type projectService struct {
	projectStore store.ProjectStore
	clientStore  store.ClientStore
	now          func() time.Time
}

func NewProjectService(projectStore store.ProjectStore, clientStore store.ClientStore) ProjectService {
	return &projectService{
		projectStore: projectStore,
		clientStore:  clientStore,
		now:          time.Now,
	}
}

func (s *projectService) List(ctx context.Context, workspaceID int64, includeArchived bool) ([]model.Project, error) {
	projects, err := s.projectStore.List(ctx, workspaceID, includeArchived)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return projects, nil
}

func (s *projectService) Get(ctx context.Context, workspaceID, id int64) (*model.Project, error) {
	project, err := s.projectStore.GetByID(ctx, workspaceID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return project, nil
}

func (s *projectService) Create(ctx context.Context, workspaceID int64, params ProjectParams) (*model.Project, error) {
	project := &model.Project{
		ID:          id.New(),
		WorkspaceID: workspaceID,
	}
	if err := s.apply(ctx, project, params); err != nil {
		return nil, err
	}

	if err := s.projectStore.Create(ctx, project); err != nil {
		return nil, mapProjectWriteErr("creating project", err)
	}

	slog.InfoContext(ctx, "project created", "workspace_id", workspaceID, "project_id", project.ID)
	return project, nil
}

func (s *projectService) Update(ctx context.Context, workspaceID, id int64, params ProjectParams) (*model.Project, error) {
	project, err := s.Get(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, project, params); err != nil {
		return nil, err
	}

	if err := s.projectStore.Update(ctx, project); err != nil {
		return nil, mapProjectWriteErr("updating project", err)
	}
	return project, nil
}

func (s *projectService) Archive(ctx context.Context, workspaceID, id int64) (*model.Project, error) {
	now := s.now()
	return s.setArchivedAt(ctx, workspaceID, id, &now)
}

func (s *projectService) Unarchive(ctx context.Context, workspaceID, id int64) (*model.Project, error) {
	return s.setArchivedAt(ctx, workspaceID, id, nil)
}

func (s *projectService) setArchivedAt(ctx context.Context, workspaceID, id int64, at *time.Time) (*model.Project, error) {
	project, err := s.projectStore.SetArchivedAt(ctx, workspaceID, id, at)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("archiving project: %w", err)
	}
	slog.InfoContext(ctx, "project archive state changed",
		"workspace_id", workspaceID,
		"project_id", id,
		"archived", at != nil,
	)
	return project, nil
}

func (s *projectService) apply(ctx context.Context, project *model.Project, params ProjectParams) error {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidProject)
	}

	color := params.Color
	if color == "" {
		color = model.DefaultProjectColor
	}
	if !hexColor.MatchString(color) {
		return fmt.Errorf("%w: color must look like #a1b2c3", ErrInvalidProject)
	}
	if params.RateCents != nil && *params.RateCents < 0 {
		return fmt.Errorf("%w: rate must not be negative", ErrInvalidProject)
	}
	if params.EstimateMinutes != nil && *params.EstimateMinutes < 0 {
		return fmt.Errorf("%w: estimate must not be negative", ErrInvalidProject)
	}

	if params.ClientID != nil {
		if _, err := s.clientStore.GetByID(ctx, project.WorkspaceID, *params.ClientID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrClientNotInWorkspace
			}
			return fmt.Errorf("getting client: %w", err)
		}
	}

	project.Name = name
	project.ClientID = params.ClientID
	project.Color = strings.ToLower(color)
	project.RateCents = params.RateCents
	project.EstimateMinutes = params.EstimateMinutes
	return nil
}

func mapProjectWriteErr(op string, err error) error {
	switch {
	case errors.Is(err, store.ErrConflict):
		return ErrProjectNameTaken
	case errors.Is(err, store.ErrInvalidReference):
		return ErrClientNotInWorkspace
	case errors.Is(err, store.ErrNotFound):
		return ErrProjectNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
