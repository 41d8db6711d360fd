package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"hourline.app/server/common/logger"
	"hourline.app/server/internal/http/middleware"
	"hourline.app/server/internal/model"
	"hourline.app/server/internal/service"
)

var _ = Describe("RequireAuth", func() {
	var (
		router *gin.Engine
		auth   *mockAuthService
	)

	BeforeEach(func() {
		auth = &mockAuthService{
			validateSessionFn: func(_ context.Context, sessionID int64) (*model.User, error) {
				if sessionID == 42 {
					return &model.User{ID: 7, Email: "ada@example.com"}, nil
				}
				return nil, service.ErrSessionExpired
			},
		}
		router = gin.New()
		router.GET("/me", middleware.RequireAuth(auth, middleware.CookieConfig{}), func(c *gin.Context) {
			ctx := c.Request.Context()
			fields := logger.GetLogFields(ctx)
			c.JSON(http.StatusOK, gin.H{
				"user_id":    middleware.GetUser(ctx).ID,
				"session_id": middleware.GetSessionID(ctx),
				"log_user":   *fields.UserID,
			})
		})
	})

	serve := func(req *http.Request) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("loads the user from the session cookie", func() {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "42"})

		w := serve(req)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(MatchJSON(`{"user_id": 7, "session_id": 42, "log_user": 7}`))
	})

	It("prefers the session header over the cookie", func() {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set(middleware.SessionIDHeader, "42")
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "99"})

		Expect(serve(req).Code).To(Equal(http.StatusOK))
	})

	It("returns 401 without a session", func() {
		w := serve(httptest.NewRequest(http.MethodGet, "/me", nil))

		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(w.Body.String()).To(MatchJSON(`{"error": "not authenticated", "code": "unauthorized"}`))
	})

	It("clears the cookie of an expired session", func() {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "99"})

		w := serve(req)

		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(w.Header().Get("Set-Cookie")).To(ContainSubstring(middleware.SessionCookie + "=;"))
	})

	It("returns 500 when the session lookup fails", func() {
		auth.validateSessionFn = func(context.Context, int64) (*model.User, error) {
			return nil, errors.New("db down")
		}
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set(middleware.SessionIDHeader, "42")

		Expect(serve(req).Code).To(Equal(http.StatusInternalServerError))
	})
})

var _ = Describe("RequireWorkspace", func() {
	var (
		router   *gin.Engine
		resolver *mockResolver
	)

	membership := func(role model.Role) *model.Membership {
		return &model.Membership{
			Workspace:   model.Workspace{ID: 100, Slug: "acme"},
			Role:        role,
			Permissions: model.PermissionsFor(role),
		}
	}

	BeforeEach(func() {
		auth := &mockAuthService{
			validateSessionFn: func(context.Context, int64) (*model.User, error) {
				return &model.User{ID: 7}, nil
			},
		}
		resolver = &mockResolver{
			resolveFn: func(_ context.Context, userID int64, slug string) (*model.Membership, error) {
				Expect(userID).To(Equal(int64(7)))
				switch slug {
				case "acme":
					return membership(model.RoleMember), nil
				case "other":
					return nil, service.ErrNotMember
				default:
					return nil, service.ErrWorkspaceNotFound
				}
			},
		}

		router = gin.New()
		chain := []gin.HandlerFunc{
			middleware.RequireAuth(auth, middleware.CookieConfig{}),
			middleware.RequireWorkspace(resolver),
		}
		router.GET("/ws", append(chain, func(c *gin.Context) {
			actor, ok := middleware.GetActor(c.Request.Context())
			Expect(ok).To(BeTrue())
			c.JSON(http.StatusOK, gin.H{"workspace_id": actor.WorkspaceID(), "role": actor.Role})
		})...)
		router.GET("/manage", append(chain, middleware.RequirePermission(model.PermMembersManage), func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})...)
		router.GET("/write", append(chain, middleware.RequirePermission(model.PermEntriesWrite), func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})...)
	})

	request := func(path, header, cookie string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set(middleware.SessionIDHeader, "1")
		if header != "" {
			req.Header.Set(middleware.WorkspaceHeader, header)
		}
		if cookie != "" {
			req.AddCookie(&http.Cookie{Name: middleware.WorkspaceCookie, Value: cookie})
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("resolves the workspace from the header", func() {
		w := request("/ws", "acme", "")

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(MatchJSON(`{"workspace_id": 100, "role": "member"}`))
	})

	It("falls back to the workspace cookie", func() {
		Expect(request("/ws", "", "acme").Code).To(Equal(http.StatusOK))
	})

	It("prefers the header over the cookie", func() {
		Expect(request("/ws", "other", "acme").Code).To(Equal(http.StatusForbidden))
	})

	It("returns 400 when no workspace is selected", func() {
		Expect(request("/ws", "", "").Code).To(Equal(http.StatusBadRequest))
	})

	It("returns 404 for unknown workspaces", func() {
		Expect(request("/ws", "ghost", "").Code).To(Equal(http.StatusNotFound))
	})

	It("returns 403 for non members", func() {
		Expect(request("/ws", "other", "").Code).To(Equal(http.StatusForbidden))
	})

	It("enforces role permissions", func() {
		Expect(request("/manage", "acme", "").Code).To(Equal(http.StatusForbidden))
		Expect(request("/write", "acme", "").Code).To(Equal(http.StatusNoContent))
	})
})

var _ = Describe("Recovery", func() {
	It("turns a panic into a 500 envelope", func() {
		router := gin.New()
		router.Use(middleware.Recovery())
		router.GET("/boom", func(*gin.Context) { panic("boom") })

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

		Expect(w.Code).To(Equal(http.StatusInternalServerError))
		Expect(w.Body.String()).To(MatchJSON(`{"error": "internal server error", "code": "internal"}`))
	})
})
