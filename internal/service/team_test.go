package service_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"hourline.app/server/internal/model"
	"hourline.app/server/internal/service"
	"hourline.app/server/internal/store"
)

var _ = Describe("TeamService", func() {
	var (
		ctx     context.Context
		members *mockMemberStore
		roles   map[int64]model.Role
		svc     service.TeamService
		owner   service.Actor
		admin   service.Actor
	)

	BeforeEach(func() {
		ctx = context.Background()
		ws := model.Workspace{ID: 10, Slug: "acme"}
		owner = service.Actor{UserID: 1, Workspace: ws, Role: model.RoleOwner}
		admin = service.Actor{UserID: 2, Workspace: ws, Role: model.RoleAdmin}
		roles = map[int64]model.Role{1: model.RoleOwner, 2: model.RoleAdmin, 3: model.RoleMember, 4: model.RoleAdmin}

		members = &mockMemberStore{
			getFn: func(_ context.Context, _, userID int64) (model.Role, error) {
				if r, ok := roles[userID]; ok {
					return r, nil
				}
				return "", store.ErrNotFound
			},
			updateRoleFn: func(_ context.Context, _, userID int64, role model.Role) error {
				roles[userID] = role
				return nil
			},
			listFn: func(context.Context, int64) ([]model.Member, error) {
				var out []model.Member
				for uid, r := range roles {
					out = append(out, model.Member{WorkspaceID: 10, UserID: uid, Role: r})
				}
				return out, nil
			},
		}
		svc = service.NewTeamService(members)
	})

	Describe("UpdateRole", func() {
		It("lets an owner promote a member to admin", func() {
			m, err := svc.UpdateRole(ctx, owner, 3, model.RoleAdmin)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Role).To(Equal(model.RoleAdmin))
		})

		It("does not let an admin grant admin", func() {
			_, err := svc.UpdateRole(ctx, admin, 3, model.RoleAdmin)
			Expect(err).To(MatchError(service.ErrForbidden))
		})

		It("does not let an admin demote another admin", func() {
			_, err := svc.UpdateRole(ctx, admin, 4, model.RoleMember)
			Expect(err).To(MatchError(service.ErrForbidden))
		})

		It("lets an admin step down", func() {
			m, err := svc.UpdateRole(ctx, admin, 2, model.RoleMember)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Role).To(Equal(model.RoleMember))
		})

		It("refuses to assign the owner role", func() {
			_, err := svc.UpdateRole(ctx, owner, 3, model.RoleOwner)
			Expect(err).To(MatchError(service.ErrInvalidRole))
		})

		It("protects the last owner", func() {
			_, err := svc.UpdateRole(ctx, owner, 1, model.RoleMember)
			Expect(err).To(MatchError(service.ErrLastOwner))
		})

		It("locks owner roles when several owners exist", func() {
			members.countOwnersFn = func(context.Context, int64) (int64, error) { return 2, nil }
			_, err := svc.UpdateRole(ctx, owner, 1, model.RoleMember)
			Expect(err).To(MatchError(service.ErrOwnerRoleLocked))
		})

		It("reports unknown members", func() {
			_, err := svc.UpdateRole(ctx, owner, 99, model.RoleMember)
			Expect(err).To(MatchError(service.ErrMemberNotFound))
		})
	})

	Describe("Remove", func() {
		It("never removes the owner", func() {
			err := svc.Remove(ctx, admin, 1)
			Expect(err).To(MatchError(service.ErrCannotRemoveOwner))
		})

		It("removes a member", func() {
			var removed int64
			members.removeFn = func(_ context.Context, _, userID int64) error {
				removed = userID
				return nil
			}
			Expect(svc.Remove(ctx, admin, 3)).To(Succeed())
			Expect(removed).To(Equal(int64(3)))
		})

		It("does not let an admin remove another admin", func() {
			Expect(svc.Remove(ctx, admin, 4)).To(MatchError(service.ErrForbidden))
		})
	})
})
