package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"hourline.app/server/internal/http/handler"
	"hourline.app/server/internal/model"
	"hourline.app/server/internal/service"
)

var _ = Describe("InvitationHandler", func() {
	var (
		router   *gin.Engine
		svc      *mockInvitationService
		auth     *mockAuthService
		resolver *mockResolver
	)

	BeforeEach(func() {
		router = gin.New()
		svc = &mockInvitationService{}
		auth = &mockAuthService{}
		resolver = &mockResolver{}
		h := handler.NewInvitationHandler(svc)

		router.GET("/invitations/validate", h.Validate)
		router.POST("/rpc/invitations.create", rpcChain(auth, resolver, model.PermMembersManage, h.Create)...)
		router.POST("/rpc/invitations.revoke", rpcChain(auth, resolver, model.PermMembersManage, h.Revoke)...)
		router.POST("/rpc/invitations.accept", rpcChain(auth, resolver, "", h.Accept)...)
	})

	Describe("Create", func() {
		It("returns 201 with the invitation and its accept URL", func() {
			svc.createFn = func(_ context.Context, actor service.Actor, email string, role model.Role) (*model.Invitation, string, error) {
				Expect(actor.WorkspaceID()).To(Equal(testWorkspaceID))
				Expect(actor.UserID).To(Equal(testUserID))
				return &model.Invitation{
					ID:        1,
					Email:     email,
					Role:      role,
					Status:    model.InvitationStatusPending,
					ExpiresAt: time.Now().Add(7 * 24 * time.Hour),
				}, "https://app.hourline.test/invite?token=abc", nil
			}

			w := callRPC(router, "/rpc/invitations.create", map[string]string{
				"email": "grace@example.com",
				"role":  "member",
			})

			Expect(w.Code).To(Equal(http.StatusCreated))
			resp := decodeJSON(w)
			Expect(resp["invite_url"]).To(ContainSubstring("token=abc"))
			Expect(resp["invitation"]).To(HaveKeyWithValue("email", "grace@example.com"))
			Expect(resp["invitation"]).To(HaveKeyWithValue("id", "1"))
		})

		It("returns 409 when a pending invitation exists", func() {
			svc.createFn = func(context.Context, service.Actor, string, model.Role) (*model.Invitation, string, error) {
				return nil, "", service.ErrInvitePendingExists
			}

			w := callRPC(router, "/rpc/invitations.create", map[string]string{
				"email": "grace@example.com",
				"role":  "member",
			})

			Expect(w.Code).To(Equal(http.StatusConflict))
			Expect(decodeJSON(w)).To(HaveKeyWithValue("code", "conflict"))
		})

		It("returns 400 for an invalid email", func() {
			w := callRPC(router, "/rpc/invitations.create", map[string]string{
				"email": "not-an-email",
				"role":  "member",
			})

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 403 for members without members:manage", func() {
			resolver.role = model.RoleMember
			called := false
			svc.createFn = func(context.Context, service.Actor, string, model.Role) (*model.Invitation, string, error) {
				called = true
				return nil, "", nil
			}

			w := callRPC(router, "/rpc/invitations.create", map[string]string{
				"email": "grace@example.com",
				"role":  "member",
			})

			Expect(w.Code).To(Equal(http.StatusForbidden))
			Expect(called).To(BeFalse())
		})

		It("returns 401 without a session", func() {
			auth.validateSessionFn = func(context.Context, int64) (*model.User, error) {
				return nil, service.ErrSessionExpired
			}

			w := callRPC(router, "/rpc/invitations.create", map[string]string{
				"email": "grace@example.com",
				"role":  "member",
			})

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})
	})

	Describe("Revoke", func() {
		It("scopes the revoke to the resolved workspace", func() {
			svc.revokeFn = func(_ context.Context, workspaceID, id int64) (*model.Invitation, error) {
				Expect(workspaceID).To(Equal(testWorkspaceID))
				Expect(id).To(Equal(int64(9)))
				return &model.Invitation{ID: id, Status: model.InvitationStatusRevoked}, nil
			}

			w := callRPC(router, "/rpc/invitations.revoke", map[string]string{"id": "9"})

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(decodeJSON(w)).To(HaveKeyWithValue("status", "revoked"))
		})

		It("returns 404 for an unknown invitation", func() {
			w := callRPC(router, "/rpc/invitations.revoke", map[string]string{"id": "9"})
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("Validate", func() {
		validate := func(token string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodGet, "/invitations/validate?token="+token, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			return w
		}

		It("returns the invitation summary for a valid token", func() {
			svc.validateTokenFn = func(_ context.Context, token string) (*model.Invitation, error) {
				Expect(token).To(Equal("good"))
				return &model.Invitation{
					Email:     "grace@example.com",
					Role:      model.RoleAdmin,
					ExpiresAt: time.Now().Add(time.Hour),
				}, nil
			}

			w := validate("good")

			Expect(w.Code).To(Equal(http.StatusOK))
			resp := decodeJSON(w)
			Expect(resp["valid"]).To(BeTrue())
			Expect(resp["role"]).To(Equal("admin"))
		})

		It("returns 400 without a token", func() {
			Expect(validate("").Code).To(Equal(http.StatusBadRequest))
		})

		DescribeTable("maps invalid tokens to status and code",
			func(err error, status int, code string) {
				svc.validateTokenFn = func(context.Context, string) (*model.Invitation, error) {
					return nil, err
				}

				w := validate("bad")

				Expect(w.Code).To(Equal(status))
				Expect(decodeJSON(w)).To(HaveKeyWithValue("code", code))
			},
			Entry("unknown", service.ErrInviteNotFound, http.StatusNotFound, "not_found"),
			Entry("expired", service.ErrInviteExpired, http.StatusGone, "expired"),
			Entry("accepted", service.ErrInviteAlreadyUsed, http.StatusGone, "already_used"),
			Entry("revoked", service.ErrInviteRevoked, http.StatusGone, "revoked"),
		)
	})

	Describe("Accept", func() {
		It("returns the joined workspace", func() {
			svc.acceptFn = func(_ context.Context, token string, user *model.User) (*model.Invitation, *model.Workspace, error) {
				Expect(token).To(Equal("tok"))
				Expect(user.ID).To(Equal(testUserID))
				ws := testMembership(model.RoleMember).Workspace
				return &model.Invitation{ID: 3, Status: model.InvitationStatusAccepted}, &ws, nil
			}

			w := callRPC(router, "/rpc/invitations.accept", map[string]string{"token": "tok"})

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(decodeJSON(w)["workspace"]).To(HaveKeyWithValue("slug", "acme"))
		})

		It("returns 403 when the signed in email does not match", func() {
			svc.acceptFn = func(context.Context, string, *model.User) (*model.Invitation, *model.Workspace, error) {
				return nil, nil, service.ErrEmailMismatch
			}

			w := callRPC(router, "/rpc/invitations.accept", map[string]string{"token": "tok"})

			Expect(w.Code).To(Equal(http.StatusForbidden))
		})
	})
})
