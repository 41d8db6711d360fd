package handler_test

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"hourline.app/server/internal/http/handler"
	"hourline.app/server/internal/model"
	"hourline.app/server/internal/service"
)

var _ = Describe("EntryHandler", func() {
	var (
		router *gin.Engine
		svc    *mockTimeEntryService
	)

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	BeforeEach(func() {
		router = gin.New()
		svc = &mockTimeEntryService{}
		auth := &mockAuthService{}
		resolver := &mockResolver{role: model.RoleMember}
		h := handler.NewEntryHandler(svc)

		router.POST("/rpc/entries.start", rpcChain(auth, resolver, model.PermEntriesWrite, h.Start)...)
		router.POST("/rpc/entries.stop", rpcChain(auth, resolver, model.PermEntriesWrite, h.Stop)...)
		router.POST("/rpc/entries.live", rpcChain(auth, resolver, "", h.Live)...)
		router.POST("/rpc/entries.create", rpcChain(auth, resolver, model.PermEntriesWrite, h.Create)...)
		router.POST("/rpc/entries.list", rpcChain(auth, resolver, "", h.List)...)
		router.POST("/rpc/entries.summary", rpcChain(auth, resolver, "", h.Summary)...)
	})

	Describe("Start", func() {
		It("returns 201 with a live entry", func() {
			svc.startFn = func(_ context.Context, actor service.Actor, params service.StartEntryParams) (*model.TimeEntry, error) {
				Expect(actor.Role).To(Equal(model.RoleMember))
				Expect(*params.ProjectID).To(Equal(int64(55)))
				return &model.TimeEntry{
					ID:          1,
					UserID:      actor.UserID,
					ProjectID:   params.ProjectID,
					Description: params.Description,
					StartAt:     start,
					DurationMs:  model.LiveDuration,
					MonthDate:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
				}, nil
			}

			w := callRPC(router, "/rpc/entries.start", map[string]string{
				"project_id":  "55",
				"description": "writing tests",
			})

			Expect(w.Code).To(Equal(http.StatusCreated))
			resp := decodeJSON(w)
			Expect(resp["live"]).To(BeTrue())
			Expect(resp["duration_ms"]).To(BeEquivalentTo(-1))
			Expect(resp["month"]).To(Equal("2026-03"))
			Expect(resp["project_id"]).To(Equal("55"))
		})

		It("accepts an empty body", func() {
			svc.startFn = func(_ context.Context, _ service.Actor, params service.StartEntryParams) (*model.TimeEntry, error) {
				Expect(params.ProjectID).To(BeNil())
				return &model.TimeEntry{ID: 2, StartAt: start, DurationMs: model.LiveDuration}, nil
			}

			w := callRPC(router, "/rpc/entries.start", nil)

			Expect(w.Code).To(Equal(http.StatusCreated))
		})

		It("returns 409 when a timer is already running", func() {
			svc.startFn = func(context.Context, service.Actor, service.StartEntryParams) (*model.TimeEntry, error) {
				return nil, service.ErrTrackerRunning
			}

			w := callRPC(router, "/rpc/entries.start", nil)

			Expect(w.Code).To(Equal(http.StatusConflict))
		})
	})

	Describe("Stop", func() {
		It("returns 404 when no timer is running", func() {
			w := callRPC(router, "/rpc/entries.stop", nil)

			Expect(w.Code).To(Equal(http.StatusNotFound))
			Expect(decodeJSON(w)).To(HaveKeyWithValue("code", "not_found"))
		})

		It("returns the completed entry", func() {
			end := start.Add(90 * time.Minute)
			svc.stopFn = func(context.Context, service.Actor) (*model.TimeEntry, error) {
				return &model.TimeEntry{ID: 1, StartAt: start, EndAt: &end, DurationMs: 90 * 60 * 1000}, nil
			}

			w := callRPC(router, "/rpc/entries.stop", nil)

			Expect(w.Code).To(Equal(http.StatusOK))
			resp := decodeJSON(w)
			Expect(resp["live"]).To(BeFalse())
			Expect(resp["duration_ms"]).To(BeEquivalentTo(5400000))
		})
	})

	Describe("Live", func() {
		It("returns null when the tracker is idle", func() {
			w := callRPC(router, "/rpc/entries.live", nil)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(Equal("null"))
		})
	})

	Describe("Create", func() {
		It("returns 400 when start_at is missing", func() {
			w := callRPC(router, "/rpc/entries.create", map[string]string{
				"end_at": start.Format(time.RFC3339),
			})

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("maps an inverted interval to 400", func() {
			svc.createFn = func(context.Context, service.Actor, service.ManualEntryParams) (*model.TimeEntry, error) {
				return nil, model.ErrInvalidInterval
			}

			w := callRPC(router, "/rpc/entries.create", map[string]string{
				"start_at": start.Format(time.RFC3339),
				"end_at":   start.Add(-time.Hour).Format(time.RFC3339),
			})

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("List", func() {
		It("passes the parsed month filter", func() {
			svc.listFn = func(_ context.Context, _ service.Actor, params service.ListEntriesParams) ([]model.TimeEntry, error) {
				Expect(params.Month).NotTo(BeNil())
				Expect(*params.Month).To(Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)))
				return []model.TimeEntry{}, nil
			}

			w := callRPC(router, "/rpc/entries.list", map[string]string{"month": "2026-03"})

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(Equal("[]"))
		})

		It("rejects a malformed month", func() {
			w := callRPC(router, "/rpc/entries.list", map[string]string{"month": "March"})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("rejects an out of range week", func() {
			w := callRPC(router, "/rpc/entries.list", map[string]int{"week": 60, "year": 2026})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("Summary", func() {
		It("sums the per project totals", func() {
			projectID := int64(55)
			svc.summaryFn = func(context.Context, service.Actor, time.Time) ([]model.ProjectTotal, error) {
				return []model.ProjectTotal{
					{ProjectID: &projectID, TotalMs: 3_600_000, EntryCount: 2},
					{TotalMs: 600_000, EntryCount: 1},
				}, nil
			}

			w := callRPC(router, "/rpc/entries.summary", map[string]string{"month": "2026-03"})

			Expect(w.Code).To(Equal(http.StatusOK))
			resp := decodeJSON(w)
			Expect(resp["month"]).To(Equal("2026-03"))
			Expect(resp["total_ms"]).To(BeEquivalentTo(4_200_000))
			Expect(resp["projects"]).To(HaveLen(2))
		})
	})
})
