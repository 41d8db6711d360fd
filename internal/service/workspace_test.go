package service_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"hourline.app/server/common"
	"hourline.app/server/internal/model"
	"hourline.app/server/internal/service"
	"hourline.app/server/internal/store"
)

var _ = Describe("WorkspaceService", func() {
	var (
		ctx        context.Context
		workspaces *mockWorkspaceStore
		members    *mockMemberStore
		txRunner   *mockTxRunner
		recent     *mockRecentCache
		svc        service.WorkspaceService
		taken      map[string]*model.Workspace
	)

	BeforeEach(func() {
		ctx = context.Background()
		taken = map[string]*model.Workspace{}
		workspaces = &mockWorkspaceStore{
			getBySlugFn: func(_ context.Context, slug string) (*model.Workspace, error) {
				if ws, ok := taken[slug]; ok {
					return ws, nil
				}
				return nil, store.ErrNotFound
			},
		}
		members = &mockMemberStore{}
		txRunner = &mockTxRunner{stores: &mockStoreProvider{workspaces: workspaces, members: members}}
		recent = &mockRecentCache{}
		svc = service.NewWorkspaceService(workspaces, members, txRunner, recent)
	})

	Describe("Create", func() {
		It("derives the slug from the name and adds the creator as owner", func() {
			var ownerRole model.Role
			members.addFn = func(_ context.Context, _, userID int64, role model.Role) error {
				Expect(userID).To(Equal(int64(7)))
				ownerRole = role
				return nil
			}

			ws, err := svc.Create(ctx, 7, service.CreateWorkspaceParams{Name: "  Acme Studio ", Currency: "eur"})
			Expect(err).NotTo(HaveOccurred())
			Expect(ws.Name).To(Equal("Acme Studio"))
			Expect(ws.Slug).To(Equal("acme-studio"))
			Expect(ws.Currency).To(Equal("EUR"))
			Expect(ws.OwnerID).To(Equal(int64(7)))
			Expect(ws.ID).NotTo(BeZero())
			Expect(ownerRole).To(Equal(model.RoleOwner))
			Expect(txRunner.calls).To(Equal(1))
		})

		It("remembers the new workspace as the creator's most recent one", func() {
			recent.slugs = map[int64]string{7: "globex"}

			ws, err := svc.Create(ctx, 7, service.CreateWorkspaceParams{Name: "Acme"})
			Expect(err).NotTo(HaveOccurred())
			Expect(recent.slugs[7]).To(Equal(ws.Slug))
		})

		It("does not remember a workspace that failed to save", func() {
			workspaces.createFn = func(context.Context, *model.Workspace) error {
				return &store.ConstraintError{Err: store.ErrConflict, Constraint: "workspaces_slug_key"}
			}

			_, err := svc.Create(ctx, 7, service.CreateWorkspaceParams{Name: "Acme"})
			Expect(err).To(HaveOccurred())
			Expect(recent.slugs).NotTo(HaveKey(int64(7)))
		})

		It("appends a suffix when the derived slug is taken", func() {
			taken["acme"] = &model.Workspace{ID: 1, Slug: "acme"}
			taken["acme-1"] = &model.Workspace{ID: 2, Slug: "acme-1"}

			ws, err := svc.Create(ctx, 7, service.CreateWorkspaceParams{Name: "Acme"})
			Expect(err).NotTo(HaveOccurred())
			Expect(ws.Slug).To(Equal("acme-2"))
			Expect(ws.Currency).To(Equal(model.DefaultCurrency))
		})

		It("rejects an explicit slug that is already taken", func() {
			taken["acme"] = &model.Workspace{ID: 1, Slug: "acme"}
			slug := "acme"

			_, err := svc.Create(ctx, 7, service.CreateWorkspaceParams{Name: "Other", Slug: &slug})
			Expect(err).To(MatchError(service.ErrWorkspaceSlugTaken))
			Expect(workspaces.createCalls).To(BeZero())
			Expect(members.addCalls).To(BeZero())
		})

		It("maps a unique violation on insert to a slug conflict", func() {
			workspaces.createFn = func(context.Context, *model.Workspace) error {
				return &store.ConstraintError{Err: store.ErrConflict, Constraint: "workspaces_slug_key"}
			}

			_, err := svc.Create(ctx, 7, service.CreateWorkspaceParams{Name: "Acme"})
			Expect(err).To(MatchError(service.ErrWorkspaceSlugTaken))
		})

		It("rejects an invalid explicit slug", func() {
			slug := "Not A Slug!"
			_, err := svc.Create(ctx, 7, service.CreateWorkspaceParams{Name: "Acme", Slug: &slug})
			Expect(err).To(MatchError(common.ErrInvalidSlug))
		})

		It("requires a name", func() {
			_, err := svc.Create(ctx, 7, service.CreateWorkspaceParams{Name: "   "})
			Expect(err).To(MatchError(service.ErrInvalidWorkspace))
		})

		It("rejects unknown currencies", func() {
			_, err := svc.Create(ctx, 7, service.CreateWorkspaceParams{Name: "Acme", Currency: "dollars"})
			Expect(err).To(MatchError(model.ErrInvalidCurrency))
		})
	})

	Describe("Resolve", func() {
		BeforeEach(func() {
			taken["acme"] = &model.Workspace{ID: 10, Slug: "acme"}
		})

		It("returns the membership with role permissions", func() {
			members.getFn = func(_ context.Context, wsID, userID int64) (model.Role, error) {
				return model.RoleMember, nil
			}

			m, err := svc.Resolve(ctx, 7, "acme")
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Workspace.ID).To(Equal(int64(10)))
			Expect(m.Can(model.PermEntriesWrite)).To(BeTrue())
			Expect(m.Can(model.PermInvoicesManage)).To(BeFalse())
		})

		It("rejects non members", func() {
			_, err := svc.Resolve(ctx, 7, "acme")
			Expect(err).To(MatchError(service.ErrNotMember))
		})

		It("reports unknown workspaces", func() {
			_, err := svc.Resolve(ctx, 7, "globex")
			Expect(err).To(MatchError(service.ErrWorkspaceNotFound))
		})
	})

	Describe("Current", func() {
		BeforeEach(func() {
			taken["acme"] = &model.Workspace{ID: 10, Slug: "acme"}
			taken["globex"] = &model.Workspace{ID: 11, Slug: "globex"}
			members.getFn = func(_ context.Context, wsID, _ int64) (model.Role, error) {
				if wsID == 11 {
					return model.RoleAdmin, nil
				}
				return "", store.ErrNotFound
			}
		})

		It("skips a preferred workspace the user cannot access", func() {
			recent.slugs = map[int64]string{7: "globex"}

			m, err := svc.Current(ctx, 7, "acme")
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Workspace.Slug).To(Equal("globex"))
		})

		It("falls back to the first listed workspace and remembers it", func() {
			workspaces.listByUserFn = func(context.Context, int64) ([]model.Workspace, error) {
				return []model.Workspace{*taken["globex"]}, nil
			}

			m, err := svc.Current(ctx, 7, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Role).To(Equal(model.RoleAdmin))
			Expect(recent.slugs[7]).To(Equal("globex"))
		})

		It("keeps going when the cache fails", func() {
			recent.err = errors.New("redis down")

			m, err := svc.Current(ctx, 7, "globex")
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Workspace.ID).To(Equal(int64(11)))
		})

		It("reports no workspace for users without memberships", func() {
			_, err := svc.Current(ctx, 99, "")
			Expect(err).To(MatchError(service.ErrWorkspaceNotFound))
		})
	})

	Describe("Update", func() {
		It("changes only provided fields", func() {
			workspaces.getByIDFn = func(context.Context, int64) (*model.Workspace, error) {
				return &model.Workspace{ID: 10, Name: "Acme", Slug: "acme", Currency: "USD"}, nil
			}
			name := "Acme Inc"

			ws, err := svc.Update(ctx, 10, service.UpdateWorkspaceParams{Name: &name})
			Expect(err).NotTo(HaveOccurred())
			Expect(ws.Name).To(Equal("Acme Inc"))
			Expect(ws.Slug).To(Equal("acme"))
			Expect(ws.Currency).To(Equal("USD"))
		})
	})
})
