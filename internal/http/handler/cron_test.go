package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"hourline.app/server/internal/http/handler"
	"hourline.app/server/internal/http/middleware"
	"hourline.app/server/internal/service"
)

var _ = Describe("CronHandler", func() {
	var (
		router *gin.Engine
		svc    *mockKeepaliveService
	)

	BeforeEach(func() {
		router = gin.New()
		svc = &mockKeepaliveService{report: service.KeepaliveReport{
			Database: service.DependencyStatus{OK: true, LatencyMs: 3},
			Cache:    service.DependencyStatus{OK: true, LatencyMs: 1},
		}}
		h := handler.NewCronHandler(svc)

		cron := router.Group("/cron", middleware.RequireCronSecret("s3cret"))
		cron.GET("/keepalive", h.Keepalive)
		cron.GET("/cleanup", h.Cleanup)
	})

	get := func(path, token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("rejects requests without the cron secret", func() {
		Expect(get("/cron/keepalive", "").Code).To(Equal(http.StatusUnauthorized))
		Expect(get("/cron/keepalive", "wrong").Code).To(Equal(http.StatusUnauthorized))
	})

	It("reports healthy dependencies", func() {
		w := get("/cron/keepalive", "s3cret")

		Expect(w.Code).To(Equal(http.StatusOK))
		resp := decodeJSON(w)
		Expect(resp["ok"]).To(BeTrue())
		Expect(resp["database"]).To(HaveKeyWithValue("ok", true))
		Expect(resp).To(HaveKey("timestamp"))
	})

	It("returns 503 when a dependency is down", func() {
		svc.report.Cache = service.DependencyStatus{OK: false, Error: "connection refused"}

		w := get("/cron/keepalive", "s3cret")

		Expect(w.Code).To(Equal(http.StatusServiceUnavailable))
		Expect(decodeJSON(w)["cache"]).To(HaveKeyWithValue("error", "connection refused"))
	})

	It("runs the cleanup", func() {
		w := get("/cron/cleanup", "s3cret")

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(decodeJSON(w)["report"]).To(HaveKeyWithValue("invitations_expired", true))
	})

	It("returns 500 when the cleanup fails", func() {
		svc.cleanupFn = func(context.Context) (service.CleanupReport, error) {
			return service.CleanupReport{ExpiredSessionsDeleted: true}, errors.New("db down")
		}

		w := get("/cron/cleanup", "s3cret")

		Expect(w.Code).To(Equal(http.StatusInternalServerError))
		Expect(w.Body.String()).NotTo(ContainSubstring("db down"))
	})

	It("is unavailable when no secret is configured", func() {
		r := gin.New()
		r.GET("/cron/keepalive", middleware.RequireCronSecret(""), handler.NewCronHandler(svc).Keepalive)

		req := httptest.NewRequest(http.MethodGet, "/cron/keepalive", nil)
		req.Header.Set("Authorization", "Bearer ")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusServiceUnavailable))
	})
})
