package handler_test

import (
	"errors"
	"fmt"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"hourline.app/server/common"
	"hourline.app/server/internal/email"
	"hourline.app/server/internal/http/handler"
	"hourline.app/server/internal/model"
	"hourline.app/server/internal/service"
	"hourline.app/server/internal/service/integration"
	"hourline.app/server/internal/store"
)

var _ = Describe("Classify", func() {
	DescribeTable("maps errors to status and code",
		func(err error, status int, code string) {
			gotStatus, gotCode := handler.Classify(err)
			Expect(gotStatus).To(Equal(status))
			Expect(gotCode).To(Equal(code))
		},
		Entry("invalid slug", common.ErrInvalidSlug, http.StatusBadRequest, handler.CodeBadRequest),
		Entry("wrapped currency", fmt.Errorf("client: %w", model.ErrInvalidCurrency), http.StatusBadRequest, handler.CodeBadRequest),
		Entry("expired session", service.ErrSessionExpired, http.StatusUnauthorized, handler.CodeUnauthorized),
		Entry("owner role", service.ErrOwnerRoleLocked, http.StatusForbidden, handler.CodeForbidden),
		Entry("project", service.ErrProjectNotFound, http.StatusNotFound, handler.CodeNotFound),
		Entry("store not found", store.ErrNotFound, http.StatusNotFound, handler.CodeNotFound),
		Entry("check constraint", fmt.Errorf("stopping timer: %w", &store.ConstraintError{Err: store.ErrCheckViolation, Constraint: "time_entries_interval_check"}), http.StatusBadRequest, handler.CodeBadRequest),
		Entry("running tracker", service.ErrTrackerRunning, http.StatusConflict, handler.CodeConflict),
		Entry("last owner", service.ErrLastOwner, http.StatusConflict, handler.CodeConflict),
		Entry("expired invite", service.ErrInviteExpired, http.StatusGone, handler.CodeGone),
		Entry("oauth exchange", fmt.Errorf("%w: boom", integration.ErrExchangeFailed), http.StatusBadGateway, handler.CodeBadGateway),
		Entry("email rate limit", email.ErrRateLimited, http.StatusBadGateway, handler.CodeBadGateway),
		Entry("unknown", errors.New("boom"), http.StatusInternalServerError, handler.CodeInternal),
	)
})
