package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"hourline.app/server/common/id"
	"hourline.app/server/internal/model"
	"hourline.app/server/internal/store"
)

var (
	ErrClientNotFound  = errors.New("client not found")
	ErrClientNameTaken = errors.New("a client with this name already exists")
	ErrInvalidClient   = errors.New("client name is required")
)

type ClientParams struct {
	Name     string
	Email    *string
	Address  *string
	Currency string
}

type ClientService interface {
	List(ctx context.Context, workspaceID int64) ([]model.Client, error)
	Get(ctx context.Context, workspaceID, id int64) (*model.Client, error)
	Create(ctx context.Context, ws model.Workspace, params ClientParams) (*model.Client, error)
	Update(ctx context.Context, workspaceID, id int64, params ClientParams) (*model.Client, error)
}

type clientService struct {
	clientStore store.ClientStore
}

func NewClientService(clientStore store.ClientStore) ClientService {
	return &clientService{clientStore: clientStore}
}

func (s *clientService) List(ctx context.Context, workspaceID int64) ([]model.Client, error) {
	clients, err := s.clientStore.List(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	return clients, nil
}

func (s *clientService) Get(ctx context.Context, workspaceID, id int64) (*model.Client, error) {
	client, err := s.clientStore.GetByID(ctx, workspaceID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("getting client: %w", err)
	}
	return client, nil
}

// Create adds a client billed in the given currency, defaulting to the workspace currency.
func (s *clientService) Create(ctx context.Context, ws model.Workspace, params ClientParams) (*model.Client, error) {
	client := &model.Client{
		ID:          id.New(),
		WorkspaceID: ws.ID,
	}
	if err := applyClientParams(client, params, ws.Currency); err != nil {
		return nil, err
	}

	if err := s.clientStore.Create(ctx, client); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, ErrClientNameTaken
		}
		return nil, fmt.Errorf("creating client: %w", err)
	}

	slog.InfoContext(ctx, "client created", "workspace_id", ws.ID, "client_id", client.ID)
	return client, nil
}

func (s *clientService) Update(ctx context.Context, workspaceID, id int64, params ClientParams) (*model.Client, error) {
	client, err := s.Get(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	if err := applyClientParams(client, params, client.Currency); err != nil {
		return nil, err
	}

	if err := s.clientStore.Update(ctx, client); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, ErrClientNameTaken
		}
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("updating client: %w", err)
	}
	return client, nil
}

func applyClientParams(client *model.Client, params ClientParams, fallbackCurrency string) error {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return ErrInvalidClient
	}
	currency, err := model.NormalizeCurrency(params.Currency, fallbackCurrency)
	if err != nil {
		return err
	}

	var email *string
	if params.Email != nil && strings.TrimSpace(*params.Email) != "" {
		normalized, err := normalizeEmail(*params.Email)
		if err != nil {
			return err
		}
		email = &normalized
	}

	client.Name = name
	client.Email = email
	client.Address = trimmedOrNil(params.Address)
	client.Currency = currency
	return nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
