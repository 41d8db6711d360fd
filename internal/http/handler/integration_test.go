package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"hourline.app/server/internal/http/handler"
	"hourline.app/server/internal/http/middleware"
	"hourline.app/server/internal/model"
	"hourline.app/server/internal/service/integration"
)

var _ = Describe("IntegrationHandler", func() {
	const dashboard = "https://app.hourline.test"

	var (
		router   *gin.Engine
		svc      *mockIntegrationService
		resolver *mockResolver
	)

	BeforeEach(func() {
		router = gin.New()
		svc = &mockIntegrationService{}
		auth := &mockAuthService{}
		resolver = &mockResolver{}
		h := handler.NewIntegrationHandler(svc, dashboard)

		router.GET("/integrations/:provider/connect", rpcChain(auth, resolver, model.PermIntegrationsManage, h.Connect)...)
		router.GET("/integrations/:provider/callback", h.Callback)
		router.POST("/rpc/integrations.disconnect", rpcChain(auth, resolver, model.PermIntegrationsManage, h.Disconnect)...)
		router.POST("/rpc/integrations.repositories", rpcChain(auth, resolver, model.PermIntegrationsManage, h.Repositories)...)
	})

	callback := func(query string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/integrations/github/callback?"+query, nil)
		req.AddCookie(&http.Cookie{Name: middleware.WorkspaceCookie, Value: "acme"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	Describe("Connect", func() {
		It("redirects to the provider authorize URL", func() {
			svc.connectURLFn = func(_ context.Context, provider model.Provider, workspaceID, userID int64) (string, error) {
				Expect(provider).To(Equal(model.ProviderGitHub))
				Expect(workspaceID).To(Equal(testWorkspaceID))
				Expect(userID).To(Equal(testUserID))
				return "https://github.com/login/oauth/authorize?state=signed", nil
			}

			req := httptest.NewRequest(http.MethodGet, "/integrations/github/connect", nil)
			req.Header.Set(middleware.SessionIDHeader, fmt.Sprint(testSessionID))
			req.Header.Set(middleware.WorkspaceHeader, "acme")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusTemporaryRedirect))
			Expect(w.Header().Get("Location")).To(ContainSubstring("state=signed"))
		})

		It("returns 403 for members", func() {
			resolver.role = model.RoleMember

			req := httptest.NewRequest(http.MethodGet, "/integrations/github/connect", nil)
			req.Header.Set(middleware.SessionIDHeader, fmt.Sprint(testSessionID))
			req.Header.Set(middleware.WorkspaceHeader, "acme")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusForbidden))
		})
	})

	Describe("Callback", func() {
		It("redirects to the integrations settings page on success", func() {
			svc.handleCallbackFn = func(_ context.Context, params integration.CallbackParams) (integration.CallbackResult, error) {
				Expect(params.Provider).To(Equal(model.ProviderGitHub))
				Expect(params.Code).To(Equal("abc"))
				Expect(params.State).To(Equal("signed"))
				Expect(params.WorkspaceSlug).To(Equal("acme"))
				return integration.CallbackResult{
					Integration:   &model.Integration{ID: 1, Provider: model.ProviderGitHub},
					WorkspaceSlug: "acme",
				}, nil
			}

			w := callback("code=abc&state=signed")

			Expect(w.Code).To(Equal(http.StatusTemporaryRedirect))
			Expect(w.Header().Get("Location")).To(Equal(dashboard + "/acme/settings/integrations?connected=github"))
		})

		It("passes the failure code back to the dashboard", func() {
			svc.handleCallbackFn = func(context.Context, integration.CallbackParams) (integration.CallbackResult, error) {
				return integration.CallbackResult{WorkspaceSlug: "acme"}, integration.ErrWorkspaceMismatch
			}

			w := callback("code=abc&state=signed")

			Expect(w.Header().Get("Location")).To(Equal(dashboard + "/acme/settings/integrations?integration_error=workspace_mismatch"))
		})

		It("falls back to the cookie slug when the state is unreadable", func() {
			w := callback("code=abc&state=garbage")

			Expect(w.Header().Get("Location")).To(Equal(dashboard + "/acme/settings/integrations?integration_error=invalid_state"))
		})

		It("reports a denied authorization without calling the service", func() {
			called := false
			svc.handleCallbackFn = func(context.Context, integration.CallbackParams) (integration.CallbackResult, error) {
				called = true
				return integration.CallbackResult{}, nil
			}

			w := callback("error=access_denied&error_description=nope")

			Expect(called).To(BeFalse())
			Expect(w.Header().Get("Location")).To(HaveSuffix("?integration_error=access_denied"))
		})
	})

	Describe("Disconnect", func() {
		It("returns 404 when nothing is connected", func() {
			svc.disconnectFn = func(context.Context, int64, model.Provider) error {
				return integration.ErrIntegrationNotFound
			}

			w := callRPC(router, "/rpc/integrations.disconnect", map[string]string{"provider": "linear"})

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("Repositories", func() {
		It("returns an empty list rather than null", func() {
			w := callRPC(router, "/rpc/integrations.repositories", map[string]string{"provider": "gitlab"})

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(Equal("[]"))
		})

		It("returns 400 for providers without repositories", func() {
			svc.repositoriesFn = func(context.Context, int64, model.Provider) ([]model.Repository, error) {
				return nil, integration.ErrRepositoriesUnsupported
			}

			w := callRPC(router, "/rpc/integrations.repositories", map[string]string{"provider": "linear"})

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})
})
