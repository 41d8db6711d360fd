package integration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"hourline.app/server/common/id"
	"hourline.app/server/common/logger"
	"hourline.app/server/internal/model"
	"hourline.app/server/internal/store"
)

var (
	ErrUnknownProvider       = errors.New("unknown integration provider")
	ErrProviderNotConfigured = errors.New("integration provider not configured")
	ErrWorkspaceMismatch     = errors.New("oauth state does not match the current workspace")
	ErrForbidden             = errors.New("not allowed to manage integrations")
	ErrExchangeFailed        = errors.New("oauth code exchange failed")
	ErrAccountLookupFailed   = errors.New("provider account lookup failed")
	ErrIntegrationNotFound   = errors.New("integration not found")
)

// ErrorCode maps a callback failure onto the short code passed back to the dashboard.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnknownProvider):
		return "unknown_provider"
	case errors.Is(err, ErrProviderNotConfigured):
		return "not_configured"
	case errors.Is(err, ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, ErrWorkspaceMismatch):
		return "workspace_mismatch"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrExchangeFailed):
		return "exchange_failed"
	case errors.Is(err, ErrAccountLookupFailed):
		return "account_lookup_failed"
	default:
		return "internal"
	}
}

type CallbackParams struct {
	Provider model.Provider
	Code     string
	State    string
	// WorkspaceSlug comes from the hourline_workspace cookie.
	WorkspaceSlug string
}

type CallbackResult struct {
	Integration *model.Integration
	// WorkspaceSlug is set whenever the workspace could be identified, including on failure.
	WorkspaceSlug string
}

type Service interface {
	ConnectURL(ctx context.Context, provider model.Provider, workspaceID, userID int64) (string, error)
	HandleCallback(ctx context.Context, params CallbackParams) (CallbackResult, error)
	List(ctx context.Context, workspaceID int64) ([]model.Integration, error)
	Disconnect(ctx context.Context, workspaceID int64, provider model.Provider) error
	Repositories(ctx context.Context, workspaceID int64, provider model.Provider) ([]model.Repository, error)
}

type service struct {
	providers    Registry
	state        *StateSigner
	integrations store.IntegrationStore
	workspaces   store.WorkspaceStore
	members      store.MemberStore
}

func NewService(
	providers Registry,
	state *StateSigner,
	integrations store.IntegrationStore,
	workspaces store.WorkspaceStore,
	members store.MemberStore,
) Service {
	return &service{
		providers:    providers,
		state:        state,
		integrations: integrations,
		workspaces:   workspaces,
		members:      members,
	}
}

func (s *service) provider(name model.Provider) (Provider, error) {
	if !name.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
	p, ok := s.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProviderNotConfigured, name)
	}
	return p, nil
}

func (s *service) ConnectURL(ctx context.Context, name model.Provider, workspaceID, userID int64) (string, error) {
	p, err := s.provider(name)
	if err != nil {
		return "", err
	}
	state, err := s.state.Sign(workspaceID, userID, name)
	if err != nil {
		return "", err
	}
	slog.InfoContext(ctx, "starting integration connect",
		"provider", name,
		"workspace_id", workspaceID)
	return p.AuthCodeURL(state), nil
}

func (s *service) HandleCallback(ctx context.Context, params CallbackParams) (CallbackResult, error) {
	var result CallbackResult

	p, err := s.provider(params.Provider)
	if err != nil {
		return result, err
	}
	claims, err := s.state.Verify(params.State, params.Provider)
	if err != nil {
		return result, err
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		WorkspaceID: logger.Ptr(claims.WorkspaceID),
		UserID:      logger.Ptr(claims.UserID),
		Provider:    logger.Ptr(string(params.Provider)),
	})

	ws, err := s.workspaces.GetByID(ctx, claims.WorkspaceID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return result, ErrWorkspaceMismatch
		}
		return result, fmt.Errorf("loading workspace: %w", err)
	}
	result.WorkspaceSlug = ws.Slug

	if params.WorkspaceSlug != ws.Slug {
		slog.WarnContext(ctx, "integration callback workspace mismatch",
			"cookie_slug", params.WorkspaceSlug,
			"state_slug", ws.Slug)
		return result, ErrWorkspaceMismatch
	}

	role, err := s.members.Get(ctx, ws.ID, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return result, ErrForbidden
		}
		return result, fmt.Errorf("loading membership: %w", err)
	}
	if !model.HasPermission(role, model.PermIntegrationsManage) {
		return result, ErrForbidden
	}

	tok, err := p.Exchange(ctx, params.Code)
	if err != nil {
		slog.WarnContext(ctx, "oauth code exchange failed", "error", err)
		return result, fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}

	account, err := p.Account(ctx, tok)
	if err != nil {
		slog.WarnContext(ctx, "provider account lookup failed", "error", err)
		return result, fmt.Errorf("%w: %v", ErrAccountLookupFailed, err)
	}

	integration := &model.Integration{
		ID:                  id.New(),
		WorkspaceID:         ws.ID,
		Provider:            params.Provider,
		ExternalAccountID:   account.ID,
		ExternalAccountName: account.Name,
		Scopes:              tokenScopes(tok, p),
		ConnectedBy:         claims.UserID,
	}
	applyToken(integration, tok)

	if err := s.integrations.Upsert(ctx, integration); err != nil {
		return result, fmt.Errorf("saving integration: %w", err)
	}

	slog.InfoContext(ctx, "integration connected",
		"integration_id", integration.ID,
		"account", account.Name)

	result.Integration = integration
	return result, nil
}

func (s *service) List(ctx context.Context, workspaceID int64) ([]model.Integration, error) {
	integrations, err := s.integrations.ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("listing integrations: %w", err)
	}
	return integrations, nil
}

func (s *service) Disconnect(ctx context.Context, workspaceID int64, name model.Provider) error {
	if !name.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
	if err := s.integrations.Delete(ctx, workspaceID, name); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrIntegrationNotFound
		}
		return fmt.Errorf("deleting integration: %w", err)
	}
	slog.InfoContext(ctx, "integration disconnected",
		"workspace_id", workspaceID,
		"provider", name)
	return nil
}

func (s *service) Repositories(ctx context.Context, workspaceID int64, name model.Provider) ([]model.Repository, error) {
	p, err := s.provider(name)
	if err != nil {
		return nil, err
	}

	integration, err := s.integrations.GetByWorkspaceAndProvider(ctx, workspaceID, name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrIntegrationNotFound
		}
		return nil, fmt.Errorf("loading integration: %w", err)
	}

	stored := storedToken(integration)
	tok, err := p.TokenSource(ctx, stored).Token()
	if err != nil {
		return nil, fmt.Errorf("refreshing %s token: %w", name, err)
	}
	if tok.AccessToken != stored.AccessToken {
		applyToken(integration, tok)
		if err := s.integrations.Upsert(ctx, integration); err != nil {
			return nil, fmt.Errorf("saving refreshed token: %w", err)
		}
		slog.InfoContext(ctx, "integration token refreshed",
			"workspace_id", workspaceID,
			"provider", name)
	}

	repos, err := p.Repositories(ctx, tok)
	if err != nil {
		return nil, err
	}
	return repos, nil
}

func storedToken(i *model.Integration) *oauth2.Token {
	tok := &oauth2.Token{
		AccessToken: i.AccessToken,
		TokenType:   "Bearer",
	}
	if i.RefreshToken != nil {
		tok.RefreshToken = *i.RefreshToken
	}
	if i.ExpiresAt != nil {
		tok.Expiry = *i.ExpiresAt
	}
	return tok
}

func applyToken(i *model.Integration, tok *oauth2.Token) {
	i.AccessToken = tok.AccessToken
	i.RefreshToken = nil
	if tok.RefreshToken != "" {
		i.RefreshToken = logger.Ptr(tok.RefreshToken)
	}
	i.ExpiresAt = nil
	if !tok.Expiry.IsZero() {
		i.ExpiresAt = logger.Ptr(tok.Expiry.UTC().Truncate(time.Second))
	}
}

// tokenScopes prefers the scopes granted in the token response over the ones requested.
func tokenScopes(tok *oauth2.Token, p Provider) []string {
	if raw, ok := tok.Extra("scope").(string); ok && raw != "" {
		fields := strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == ' ' })
		if len(fields) > 0 {
			return fields
		}
	}
	if s, ok := p.(interface{ Scopes() []string }); ok {
		return s.Scopes()
	}
	return nil
}
