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

var _ = Describe("InvoiceHandler", func() {
	var (
		router   *gin.Engine
		svc      *mockInvoiceService
		resolver *mockResolver
	)

	sentInvoice := func() *model.Invoice {
		return &model.Invoice{
			ID:         12,
			ClientID:   3,
			Number:     "INV-1",
			Status:     model.InvoiceStatusSent,
			Currency:   "USD",
			IssueDate:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			DueDate:    time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
			ShareToken: "5f0c2f9e-8f57-4d0a-9d0e-1c1b8d3d6a11",
			InvoiceTotals: model.InvoiceTotals{
				SubtotalCents: 10000,
				TotalCents:    10000,
			},
			Items: []model.InvoiceItem{{Position: 1, Description: "Design", Quantity: 2, UnitPriceCents: 5000, AmountCents: 10000}},
		}
	}

	BeforeEach(func() {
		router = gin.New()
		svc = &mockInvoiceService{}
		auth := &mockAuthService{}
		resolver = &mockResolver{role: model.RoleAdmin}
		h := handler.NewInvoiceHandler(svc)

		router.GET("/public/invoices/:token", h.Public)
		router.POST("/rpc/invoices.create", rpcChain(auth, resolver, model.PermInvoicesManage, h.Create)...)
		router.POST("/rpc/invoices.list", rpcChain(auth, resolver, model.PermInvoicesManage, h.List)...)
		router.POST("/rpc/invoices.updateStatus", rpcChain(auth, resolver, model.PermInvoicesManage, h.UpdateStatus)...)
		router.POST("/rpc/invoices.fromEntries", rpcChain(auth, resolver, model.PermInvoicesManage, h.FromEntries)...)
		router.POST("/rpc/emails.sendInvoice", rpcChain(auth, resolver, model.PermInvoicesManage, h.Send)...)
	})

	Describe("Create", func() {
		It("converts the request into invoice input", func() {
			svc.createFn = func(_ context.Context, actor service.Actor, input service.InvoiceInput) (*model.Invoice, error) {
				Expect(actor.WorkspaceID()).To(Equal(testWorkspaceID))
				Expect(input.ClientID).To(Equal(int64(3)))
				Expect(input.IssueDate).To(Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)))
				Expect(input.Items).To(HaveLen(1))
				Expect(input.Items[0].UnitPriceCents).To(Equal(int64(5000)))
				inv := sentInvoice()
				inv.Status = model.InvoiceStatusDraft
				return inv, nil
			}

			w := callRPC(router, "/rpc/invoices.create", map[string]any{
				"client_id":   "3",
				"issue_date":  "2026-03-01",
				"due_date":    "2026-03-31",
				"tax_percent": 10,
				"items": []map[string]any{
					{"description": "Design", "quantity": 2, "unit_price_cents": 5000},
				},
			})

			Expect(w.Code).To(Equal(http.StatusCreated))
			resp := decodeJSON(w)
			Expect(resp["issue_date"]).To(Equal("2026-03-01"))
			Expect(resp).NotTo(HaveKey("share_url"))
		})

		It("returns 400 for a malformed date", func() {
			w := callRPC(router, "/rpc/invoices.create", map[string]any{
				"client_id":  "3",
				"issue_date": "03/01/2026",
			})

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("maps an out of range percentage to 400", func() {
			svc.createFn = func(context.Context, service.Actor, service.InvoiceInput) (*model.Invoice, error) {
				return nil, model.ErrPercentOutOfRange
			}

			w := callRPC(router, "/rpc/invoices.create", map[string]any{
				"client_id":        "3",
				"discount_percent": 150,
			})

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(decodeJSON(w)["error"]).To(ContainSubstring("between 0 and 100"))
		})

		It("returns 403 for members", func() {
			resolver.role = model.RoleMember

			w := callRPC(router, "/rpc/invoices.create", map[string]any{"client_id": "3"})

			Expect(w.Code).To(Equal(http.StatusForbidden))
		})
	})

	Describe("List", func() {
		It("includes the share URL of sent invoices", func() {
			svc.listFn = func(_ context.Context, workspaceID int64, status *model.InvoiceStatus) ([]model.Invoice, error) {
				Expect(workspaceID).To(Equal(testWorkspaceID))
				Expect(*status).To(Equal(model.InvoiceStatusSent))
				return []model.Invoice{*sentInvoice()}, nil
			}

			w := callRPC(router, "/rpc/invoices.list", map[string]string{"status": "sent"})

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring(`"share_url":"https://app.hourline.test/i/5f0c2f9e`))
		})
	})

	Describe("UpdateStatus", func() {
		It("returns 409 for a disallowed transition", func() {
			svc.updateStatusFn = func(context.Context, int64, int64, model.InvoiceStatus) (*model.Invoice, error) {
				return nil, service.ErrInvalidTransition
			}

			w := callRPC(router, "/rpc/invoices.updateStatus", map[string]string{"id": "12", "status": "draft"})

			Expect(w.Code).To(Equal(http.StatusConflict))
		})
	})

	Describe("FromEntries", func() {
		It("parses the month and project ids", func() {
			svc.fromEntriesFn = func(_ context.Context, _ service.Actor, input service.FromEntriesInput) (*model.Invoice, error) {
				Expect(input.ProjectIDs).To(Equal([]int64{55, 56}))
				Expect(input.Month).To(Equal(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)))
				inv := sentInvoice()
				inv.Status = model.InvoiceStatusDraft
				return inv, nil
			}

			w := callRPC(router, "/rpc/invoices.fromEntries", map[string]any{
				"client_id":   "3",
				"project_ids": []string{"55", "56"},
				"month":       "2026-02",
			})

			Expect(w.Code).To(Equal(http.StatusCreated))
		})

		It("rejects non numeric project ids", func() {
			w := callRPC(router, "/rpc/invoices.fromEntries", map[string]any{
				"client_id":   "3",
				"project_ids": []string{"abc"},
				"month":       "2026-02",
			})

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 400 when the month has no billable entries", func() {
			svc.fromEntriesFn = func(context.Context, service.Actor, service.FromEntriesInput) (*model.Invoice, error) {
				return nil, service.ErrNoBillableEntries
			}

			w := callRPC(router, "/rpc/invoices.fromEntries", map[string]any{
				"client_id":   "3",
				"project_ids": []string{"55"},
				"month":       "2026-02",
			})

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("Send", func() {
		It("returns 202 once the email is queued", func() {
			svc.sendFn = func(_ context.Context, _ service.Actor, id int64, to string) (*model.Invoice, error) {
				Expect(id).To(Equal(int64(12)))
				Expect(to).To(Equal("billing@client.example"))
				return sentInvoice(), nil
			}

			w := callRPC(router, "/rpc/emails.sendInvoice", map[string]string{
				"invoice_id": "12",
				"to":         "billing@client.example",
			})

			Expect(w.Code).To(Equal(http.StatusAccepted))
			Expect(decodeJSON(w)).To(HaveKeyWithValue("status", "sent"))
		})

		It("returns 400 when the client has no email", func() {
			svc.sendFn = func(context.Context, service.Actor, int64, string) (*model.Invoice, error) {
				return nil, service.ErrInvoiceNoRecipient
			}

			w := callRPC(router, "/rpc/emails.sendInvoice", map[string]string{"invoice_id": "12"})

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("Public", func() {
		It("serves a sent invoice without a session", func() {
			svc.getPublicFn = func(_ context.Context, token string) (*model.Invoice, error) {
				Expect(token).To(Equal("5f0c2f9e-8f57-4d0a-9d0e-1c1b8d3d6a11"))
				return sentInvoice(), nil
			}

			req := httptest.NewRequest(http.MethodGet, "/public/invoices/5f0c2f9e-8f57-4d0a-9d0e-1c1b8d3d6a11", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("Cache-Control")).To(Equal("no-store"))
			resp := decodeJSON(w)
			Expect(resp["number"]).To(Equal("INV-1"))
			Expect(resp).NotTo(HaveKey("id"))
			Expect(resp["items"]).To(HaveLen(1))
		})

		It("returns 404 for unknown tokens", func() {
			req := httptest.NewRequest(http.MethodGet, "/public/invoices/nope", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})
})
