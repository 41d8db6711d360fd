package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"hourline.app/server/common"
	"hourline.app/server/internal/email"
	"hourline.app/server/internal/model"
	"hourline.app/server/internal/service"
	"hourline.app/server/internal/service/integration"
	"hourline.app/server/internal/store"
)

// Error codes of the RPC error envelope {"error": message, "code": code}.
const (
	CodeBadRequest   = "bad_request"
	CodeUnauthorized = "unauthorized"
	CodeForbidden    = "forbidden"
	CodeNotFound     = "not_found"
	CodeConflict     = "conflict"
	CodeGone         = "gone"
	CodeBadGateway   = "bad_gateway"
	CodeInternal     = "internal"
)

type errorMapping struct {
	targets []error
	status  int
	code    string
}

var errorMappings = []errorMapping{
	{status: http.StatusBadRequest, code: CodeBadRequest, targets: []error{
		service.ErrInvalidWorkspace,
		service.ErrInvalidRole,
		service.ErrInvalidClient,
		service.ErrInvalidProject,
		service.ErrClientNotInWorkspace,
		service.ErrProjectArchived,
		service.ErrEntryIsLive,
		service.ErrInvalidFilter,
		service.ErrInvalidInvoice,
		service.ErrInvalidInvoiceState,
		service.ErrNoBillableEntries,
		service.ErrInvoiceNoRecipient,
		service.ErrInvalidEmail,
		service.ErrUnknownTemplate,
		service.ErrInvalidPaymentEvent,
		model.ErrInvalidCurrency,
		model.ErrInvalidInterval,
		model.ErrPercentOutOfRange,
		model.ErrNegativeQuantity,
		model.ErrNegativeUnitPrice,
		common.ErrEmptySlug,
		common.ErrInvalidSlug,
		integration.ErrUnknownProvider,
		integration.ErrProviderNotConfigured,
		integration.ErrRepositoriesUnsupported,
		store.ErrInvalidReference,
		store.ErrCheckViolation,
	}},
	{status: http.StatusUnauthorized, code: CodeUnauthorized, targets: []error{
		service.ErrSessionExpired,
		service.ErrInvalidCode,
	}},
	{status: http.StatusForbidden, code: CodeForbidden, targets: []error{
		service.ErrForbidden,
		service.ErrNotMember,
		service.ErrOwnerRoleLocked,
		service.ErrCannotRemoveOwner,
		service.ErrEmailMismatch,
		integration.ErrForbidden,
	}},
	{status: http.StatusNotFound, code: CodeNotFound, targets: []error{
		service.ErrWorkspaceNotFound,
		service.ErrMemberNotFound,
		service.ErrClientNotFound,
		service.ErrProjectNotFound,
		service.ErrNoLiveEntry,
		service.ErrEntryNotFound,
		service.ErrInvoiceNotFound,
		service.ErrInviteNotFound,
		service.ErrUserNotFound,
		integration.ErrIntegrationNotFound,
		store.ErrNotFound,
	}},
	{status: http.StatusConflict, code: CodeConflict, targets: []error{
		service.ErrWorkspaceSlugTaken,
		service.ErrClientNameTaken,
		service.ErrProjectNameTaken,
		service.ErrTrackerRunning,
		service.ErrInvoiceNumberTaken,
		service.ErrInvoiceNotDraft,
		service.ErrInvalidTransition,
		service.ErrInvoiceNotSendable,
		service.ErrInvitePendingExists,
		service.ErrAlreadyMember,
		service.ErrLastOwner,
		store.ErrConflict,
	}},
	{status: http.StatusGone, code: CodeGone, targets: []error{
		service.ErrInviteExpired,
		service.ErrInviteAlreadyUsed,
		service.ErrInviteRevoked,
	}},
	{status: http.StatusBadGateway, code: CodeBadGateway, targets: []error{
		integration.ErrExchangeFailed,
		integration.ErrAccountLookupFailed,
		email.ErrRateLimited,
	}},
}

// Classify maps an error onto its HTTP status and envelope code.
func Classify(err error) (int, string) {
	for _, m := range errorMappings {
		for _, target := range m.targets {
			if errors.Is(err, target) {
				return m.status, m.code
			}
		}
	}
	return http.StatusInternalServerError, CodeInternal
}

// respondError writes the error envelope. Internal errors are logged and their
// message is not exposed.
func respondError(c *gin.Context, err error) {
	status, code := Classify(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "request failed",
			"error", err,
			"path", c.FullPath())
		message = "internal server error"
	}
	c.AbortWithStatusJSON(status, gin.H{"error": message, "code": code})
}

func badRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": message, "code": CodeBadRequest})
}

// bindInput decodes a procedure's JSON input. An empty body is a zero input, so
// procedures whose fields are all optional may be called without one.
func bindInput(c *gin.Context, req any) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		if err := validateInput(req); err != nil {
			badRequest(c, err.Error())
			return false
		}
		return true
	}
	if err := c.ShouldBindJSON(req); err != nil {
		if errors.Is(err, io.EOF) {
			if err := validateInput(req); err != nil {
				badRequest(c, err.Error())
				return false
			}
			return true
		}
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			badRequest(c, "malformed JSON input")
			return false
		}
		badRequest(c, err.Error())
		return false
	}
	return true
}

func validateInput(req any) error {
	return binding.Validator.ValidateStruct(req)
}
