package integration

import (
	"context"

	"hourline.app/server/internal/model"
	"hourline.app/server/internal/store"
)

type mockIntegrationStore struct {
	getFn       func(ctx context.Context, workspaceID int64, provider model.Provider) (*model.Integration, error)
	upsertFn    func(ctx context.Context, integration *model.Integration) error
	deleteFn    func(ctx context.Context, workspaceID int64, provider model.Provider) error
	listFn      func(ctx context.Context, workspaceID int64) ([]model.Integration, error)
	upsertCalls int
}

func (m *mockIntegrationStore) GetByWorkspaceAndProvider(ctx context.Context, workspaceID int64, provider model.Provider) (*model.Integration, error) {
	if m.getFn != nil {
		return m.getFn(ctx, workspaceID, provider)
	}
	return nil, store.ErrNotFound
}

func (m *mockIntegrationStore) Upsert(ctx context.Context, integration *model.Integration) error {
	m.upsertCalls++
	if m.upsertFn != nil {
		return m.upsertFn(ctx, integration)
	}
	return nil
}

func (m *mockIntegrationStore) Delete(ctx context.Context, workspaceID int64, provider model.Provider) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, workspaceID, provider)
	}
	return nil
}

func (m *mockIntegrationStore) ListByWorkspace(ctx context.Context, workspaceID int64) ([]model.Integration, error) {
	if m.listFn != nil {
		return m.listFn(ctx, workspaceID)
	}
	return nil, nil
}

type mockWorkspaceStore struct {
	getByIDFn func(ctx context.Context, id int64) (*model.Workspace, error)
}

func (m *mockWorkspaceStore) GetByID(ctx context.Context, id int64) (*model.Workspace, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockWorkspaceStore) GetBySlug(context.Context, string) (*model.Workspace, error) {
	return nil, store.ErrNotFound
}

func (m *mockWorkspaceStore) Create(context.Context, *model.Workspace) error { return nil }

func (m *mockWorkspaceStore) Update(context.Context, *model.Workspace) error { return nil }

func (m *mockWorkspaceStore) ListByUser(context.Context, int64) ([]model.Workspace, error) {
	return nil, nil
}

func (m *mockWorkspaceStore) NextInvoiceSeq(context.Context, int64) (int64, error) { return 1, nil }

type mockMemberStore struct {
	getFn func(ctx context.Context, workspaceID, userID int64) (model.Role, error)
}

func (m *mockMemberStore) Get(ctx context.Context, workspaceID, userID int64) (model.Role, error) {
	if m.getFn != nil {
		return m.getFn(ctx, workspaceID, userID)
	}
	return "", store.ErrNotFound
}

func (m *mockMemberStore) Add(context.Context, int64, int64, model.Role) error { return nil }

func (m *mockMemberStore) List(context.Context, int64) ([]model.Member, error) { return nil, nil }

func (m *mockMemberStore) UpdateRole(context.Context, int64, int64, model.Role) error { return nil }

func (m *mockMemberStore) Remove(context.Context, int64, int64) error { return nil }

func (m *mockMemberStore) CountOwners(context.Context, int64) (int64, error) { return 1, nil }
