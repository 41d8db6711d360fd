package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"hourline.app/server/internal/http/handler"
)

var _ = Describe("PaymentHandler", func() {
	var (
		router *gin.Engine
		svc    *mockPaymentService
	)

	BeforeEach(func() {
		router = gin.New()
		svc = &mockPaymentService{}
		router.POST("/webhooks/payments", handler.NewPaymentHandler(svc).Webhook)
	})

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/webhooks/payments", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("records the event payload", func() {
		svc.recordFn = func(_ context.Context, eventID, eventType string, payload json.RawMessage) (bool, error) {
			Expect(eventID).To(Equal("evt_1"))
			Expect(eventType).To(Equal("invoice.paid"))
			Expect(string(payload)).To(MatchJSON(`{"amount": 1200}`))
			return true, nil
		}

		w := post(`{"id": "evt_1", "type": "invoice.paid", "data": {"amount": 1200}}`)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(MatchJSON(`{"received": true, "duplicate": false}`))
	})

	It("acknowledges redeliveries as duplicates", func() {
		svc.recordFn = func(context.Context, string, string, json.RawMessage) (bool, error) {
			return false, nil
		}

		w := post(`{"id": "evt_1", "type": "invoice.paid", "data": {}}`)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(decodeJSON(w)["duplicate"]).To(BeTrue())
	})

	It("rejects events without an id", func() {
		w := post(`{"type": "invoice.paid"}`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("returns 500 when the event cannot be stored", func() {
		svc.recordFn = func(context.Context, string, string, json.RawMessage) (bool, error) {
			return false, errors.New("insert failed")
		}

		w := post(`{"id": "evt_2", "type": "invoice.paid"}`)

		Expect(w.Code).To(Equal(http.StatusInternalServerError))
	})
})
