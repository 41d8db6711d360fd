package service_test

import (
	"context"
	"errors"
	"net/url"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"hourline.app/server/internal/model"
	"hourline.app/server/internal/service"
	"hourline.app/server/internal/store"
)

var _ = Describe("InvitationService", func() {
	var (
		ctx         context.Context
		invitations *mockInvitationStore
		users       *mockUserStore
		members     *mockMemberStore
		workspaces  *mockWorkspaceStore
		emails      *mockEmailService
		txRunner    *mockTxRunner
		svc         service.InvitationService
		owner       service.Actor
		admin       service.Actor
	)

	BeforeEach(func() {
		ctx = context.Background()
		ws := model.Workspace{ID: 10, Name: "Acme", Slug: "acme"}
		owner = service.Actor{UserID: 1, UserName: "Olive Owner", Workspace: ws, Role: model.RoleOwner}
		admin = service.Actor{UserID: 2, UserName: "Ada Admin", Workspace: ws, Role: model.RoleAdmin}

		invitations = &mockInvitationStore{}
		users = &mockUserStore{}
		members = &mockMemberStore{}
		workspaces = &mockWorkspaceStore{
			getByIDFn: func(context.Context, int64) (*model.Workspace, error) { return &ws, nil },
		}
		emails = &mockEmailService{}
		txRunner = &mockTxRunner{stores: &mockStoreProvider{
			workspaces:  workspaces,
			members:     members,
			invitations: invitations,
		}}
		svc = service.NewInvitationService(invitations, users, members, txRunner, emails, "https://app.hourline.test")
	})

	Describe("Create", func() {
		It("stores a pending invitation and queues the email", func() {
			var stored *model.Invitation
			invitations.createFn = func(_ context.Context, inv *model.Invitation) error {
				stored = inv
				return nil
			}

			inv, inviteURL, err := svc.Create(ctx, owner, " New@Example.com ", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(inv).To(BeIdenticalTo(stored))
			Expect(inv.Email).To(Equal("new@example.com"))
			Expect(inv.Role).To(Equal(model.RoleMember))
			Expect(inv.Status).To(Equal(model.InvitationStatusPending))
			Expect(inv.ExpiresAt).To(BeTemporally("~", time.Now().Add(model.InvitationTTL), time.Minute))
			Expect(inv.Token).To(HaveLen(44))

			u, err := url.Parse(inviteURL)
			Expect(err).NotTo(HaveOccurred())
			Expect(u.Query().Get("token")).To(Equal(inv.Token))

			Expect(emails.sent).To(HaveLen(1))
			Expect(emails.sent[0].Template).To(Equal(model.EmailTemplateInvitation))
			Expect(emails.sent[0].Data["inviter_name"]).To(Equal("Olive Owner"))
			Expect(emails.sent[0].Data["invite_url"]).To(Equal(inviteURL))
		})

		It("still succeeds when the email cannot be queued", func() {
			emails.enqueueFn = func(context.Context, model.EmailMessage) error {
				return errors.New("redis down")
			}
			inv, _, err := svc.Create(ctx, owner, "new@example.com", model.RoleMember)
			Expect(err).NotTo(HaveOccurred())
			Expect(inv).NotTo(BeNil())
		})

		It("only lets owners invite admins", func() {
			_, _, err := svc.Create(ctx, admin, "new@example.com", model.RoleAdmin)
			Expect(err).To(MatchError(service.ErrForbidden))
		})

		It("never invites owners", func() {
			_, _, err := svc.Create(ctx, owner, "new@example.com", model.RoleOwner)
			Expect(err).To(MatchError(service.ErrInvalidRole))
		})

		It("rejects a second pending invitation", func() {
			invitations.getPendingByEmailFn = func(context.Context, int64, string) (*model.Invitation, error) {
				return &model.Invitation{Status: model.InvitationStatusPending, ExpiresAt: time.Now().Add(time.Hour)}, nil
			}
			_, _, err := svc.Create(ctx, owner, "new@example.com", "")
			Expect(err).To(MatchError(service.ErrInvitePendingExists))
		})

		It("rejects existing members", func() {
			users.getByEmailFn = func(context.Context, string) (*model.User, error) {
				return &model.User{ID: 33}, nil
			}
			members.getFn = func(context.Context, int64, int64) (model.Role, error) {
				return model.RoleMember, nil
			}
			_, _, err := svc.Create(ctx, owner, "member@example.com", "")
			Expect(err).To(MatchError(service.ErrAlreadyMember))
		})

		It("rejects malformed addresses", func() {
			_, _, err := svc.Create(ctx, owner, "Someone <someone@example.com>", "")
			Expect(err).To(MatchError(service.ErrInvalidEmail))
		})
	})

	Describe("ValidateToken", func() {
		BeforeEach(func() {
			invitations.getValidByTokenFn = func(context.Context, string) (*model.Invitation, error) {
				return nil, store.ErrNotFound
			}
		})

		DescribeTable("explains why a token is not usable",
			func(status model.InvitationStatus, expires time.Duration, want error) {
				invitations.getByTokenFn = func(context.Context, string) (*model.Invitation, error) {
					return &model.Invitation{Status: status, ExpiresAt: time.Now().Add(expires)}, nil
				}
				_, err := svc.ValidateToken(ctx, "tok")
				Expect(err).To(MatchError(want))
			},
			Entry("accepted", model.InvitationStatusAccepted, time.Hour, service.ErrInviteAlreadyUsed),
			Entry("revoked", model.InvitationStatusRevoked, time.Hour, service.ErrInviteRevoked),
			Entry("marked expired", model.InvitationStatusExpired, time.Hour, service.ErrInviteExpired),
			Entry("pending but past expiry", model.InvitationStatusPending, -time.Hour, service.ErrInviteExpired),
		)

		It("reports unknown tokens", func() {
			_, err := svc.ValidateToken(ctx, "missing")
			Expect(err).To(MatchError(service.ErrInviteNotFound))
		})
	})

	Describe("Accept", func() {
		var pending *model.Invitation

		BeforeEach(func() {
			pending = &model.Invitation{
				ID: 70, WorkspaceID: 10, Email: "new@example.com", Role: model.RoleAdmin,
				Status: model.InvitationStatusPending, ExpiresAt: time.Now().Add(time.Hour),
			}
			invitations.getValidByTokenFn = func(context.Context, string) (*model.Invitation, error) {
				return pending, nil
			}
			invitations.acceptFn = func(_ context.Context, id, userID int64) (*model.Invitation, error) {
				accepted := *pending
				accepted.Status = model.InvitationStatusAccepted
				accepted.AcceptedBy = &userID
				return &accepted, nil
			}
		})

		It("adds the member with the invited role inside a transaction", func() {
			var addedRole model.Role
			members.addFn = func(_ context.Context, wsID, userID int64, role model.Role) error {
				addedRole = role
				return nil
			}

			inv, ws, err := svc.Accept(ctx, "tok", &model.User{ID: 44, Email: "NEW@example.com"})
			Expect(err).NotTo(HaveOccurred())
			Expect(inv.Status).To(Equal(model.InvitationStatusAccepted))
			Expect(ws.Slug).To(Equal("acme"))
			Expect(addedRole).To(Equal(model.RoleAdmin))
			Expect(txRunner.calls).To(Equal(1))
		})

		It("rejects a different signed in user", func() {
			_, _, err := svc.Accept(ctx, "tok", &model.User{ID: 44, Email: "other@example.com"})
			Expect(err).To(MatchError(service.ErrEmailMismatch))
			Expect(members.addCalls).To(BeZero())
		})

		It("rejects users who are already members", func() {
			members.getFn = func(context.Context, int64, int64) (model.Role, error) {
				return model.RoleMember, nil
			}
			_, _, err := svc.Accept(ctx, "tok", &model.User{ID: 44, Email: "new@example.com"})
			Expect(err).To(MatchError(service.ErrAlreadyMember))
		})
	})

	Describe("Revoke", func() {
		It("maps a missing invitation", func() {
			_, err := svc.Revoke(ctx, 10, 70)
			Expect(err).To(MatchError(service.ErrInviteNotFound))
		})
	})
})
