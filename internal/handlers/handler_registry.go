package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/eureka-stamping/invreg-backend/internal/apperrors"
	"github.com/eureka-stamping/invreg-backend/internal/core/domain"
	portssvc "github.com/eureka-stamping/invreg-backend/internal/core/ports/services"
	"github.com/eureka-stamping/invreg-backend/internal/dto"
	"github.com/eureka-stamping/invreg-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// registryHandler handles HTTP requests for the invoice integrity registry.
type registryHandler struct {
	registryService portssvc.RegistrySvcFacade
}

// newRegistryHandler creates a new registryHandler.
func newRegistryHandler(rs portssvc.RegistrySvcFacade) *registryHandler {
	return &registryHandler{registryService: rs}
}

// RegisterRegistryRoutes registers routes related to the registry.
func RegisterRegistryRoutes(rg *gin.RouterGroup, registryService portssvc.RegistrySvcFacade) {
	h := newRegistryHandler(registryService)

	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.submitInvoice)
		invoices.GET("/:code", h.getInvoice)
		invoices.POST("/:code/complete", h.completeInvoice)
		invoices.POST("/:code/revoke", h.revokeInvoice)
	}
	rg.GET("/hashes/:sha", h.hashExists)
}

// mutationErrorStatus maps a registry mutation error to an HTTP status and a
// stable machine-readable kind. The ledger's diagnostic stays in the message;
// the core never masks it as a generic failure.
func mutationErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest, "validation"
	case errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict, "duplicate"
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, apperrors.ErrInvalidState):
		return http.StatusConflict, "invalid_state"
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusForbidden, "unauthorized"
	case errors.Is(err, apperrors.ErrSubmissionRejected):
		return http.StatusUnprocessableEntity, "submission_rejected"
	case errors.Is(err, apperrors.ErrLedgerUnavailable):
		return http.StatusServiceUnavailable, "ledger_unavailable"
	case errors.Is(err, apperrors.ErrIndeterminate):
		return http.StatusGatewayTimeout, "indeterminate"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

// submitInvoice godoc
// @Summary Anchor a new invoice record
// @Description Submits an invoice content hash and business code to the ledger and waits for confirmation.
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   invoice body dto.SubmitInvoiceRequest true "Invoice hash and code"
// @Success 201 {object} dto.MutationResponse
// @Failure 400 {object} map[string]string "Malformed hash or code"
// @Failure 409 {object} map[string]string "Hash or code already registered"
// @Failure 503 {object} map[string]string "Ledger unavailable"
// @Failure 504 {object} dto.MutationResponse "Confirmation timed out; transaction may still confirm"
// @Security BearerAuth
// @Router /invoices [post]
func (h *registryHandler) submitInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SubmitInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for submitInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received request to submit invoice", slog.String("code", req.Code))

	handle, err := h.registryService.SubmitInvoice(c.Request.Context(), req)
	if err != nil {
		h.respondMutationError(c, err, handle)
		return
	}

	c.JSON(http.StatusCreated, dto.ToMutationResponse("submitted", handle))
}

// completeInvoice godoc
// @Summary Mark an invoice record as completed
// @Description Moves the record for the code from Submitted to Completed. Only the original issuer may complete.
// @Tags invoices
// @Produce  json
// @Param   code path string true "Invoice code"
// @Success 200 {object} dto.MutationResponse
// @Failure 403 {object} map[string]string "Caller is not the issuer"
// @Failure 404 {object} map[string]string "No record for code"
// @Failure 409 {object} map[string]string "Record not in Submitted state"
// @Security BearerAuth
// @Router /invoices/{code}/complete [post]
func (h *registryHandler) completeInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := c.Param("code")
	logger.Info("Received request to complete invoice", slog.String("code", code))

	handle, err := h.registryService.CompleteInvoice(c.Request.Context(), code)
	if err != nil {
		h.respondMutationError(c, err, handle)
		return
	}

	c.JSON(http.StatusOK, dto.ToMutationResponse("completed", handle))
}

// revokeInvoice godoc
// @Summary Revoke an invoice record
// @Description Moves the record for the code from Submitted to Revoked. Only the original issuer may revoke.
// @Tags invoices
// @Produce  json
// @Param   code path string true "Invoice code"
// @Success 200 {object} dto.MutationResponse
// @Failure 403 {object} map[string]string "Caller is not the issuer"
// @Failure 404 {object} map[string]string "No record for code"
// @Failure 409 {object} map[string]string "Record not in Submitted state"
// @Security BearerAuth
// @Router /invoices/{code}/revoke [post]
func (h *registryHandler) revokeInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := c.Param("code")
	logger.Info("Received request to revoke invoice", slog.String("code", code))

	handle, err := h.registryService.RevokeInvoice(c.Request.Context(), code)
	if err != nil {
		h.respondMutationError(c, err, handle)
		return
	}

	c.JSON(http.StatusOK, dto.ToMutationResponse("revoked", handle))
}

// respondMutationError writes the mapped error response. When a transaction
// was broadcast before the failure (rejected or indeterminate), its ID and
// sequence are included so the caller can re-query instead of blindly retrying.
func (h *registryHandler) respondMutationError(c *gin.Context, err error, handle *domain.TxHandle) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status, kind := mutationErrorStatus(err)
	if status == http.StatusInternalServerError {
		logger.Error("Registry mutation failed", slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": "Registry mutation failed"})
		return
	}

	body := gin.H{"error": err.Error(), "kind": kind}
	if handle != nil {
		body["txID"] = handle.TxID
		body["sequence"] = handle.Sequence
	}
	c.JSON(status, body)
}

// getInvoice godoc
// @Summary Get an invoice record by code
// @Description Retrieves the registry record for a business code, read from latest confirmed ledger state.
// @Tags invoices
// @Produce  json
// @Param   code path string true "Invoice code"
// @Success 200 {object} dto.RecordResponse
// @Failure 404 {object} map[string]string "No record for code"
// @Failure 503 {object} map[string]string "Ledger unavailable"
// @Security BearerAuth
// @Router /invoices/{code} [get]
func (h *registryHandler) getInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := c.Param("code")

	record, err := h.registryService.GetInvoice(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to get invoice from service", slog.String("error", err.Error()))
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to read registry"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToRecordResponse(record))
}

// hashExists godoc
// @Summary Check whether a content hash is registered
// @Description Reports whether any record exists for the sha256 content hash.
// @Tags invoices
// @Produce  json
// @Param   sha path string true "Hex sha256 content hash"
// @Success 200 {object} dto.ExistsResponse
// @Failure 400 {object} map[string]string "Malformed hash"
// @Failure 503 {object} map[string]string "Ledger unavailable"
// @Security BearerAuth
// @Router /hashes/{sha} [get]
func (h *registryHandler) hashExists(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sha := c.Param("sha")

	exists, err := h.registryService.HashExists(c.Request.Context(), sha)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to check hash existence", slog.String("error", err.Error()))
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to read registry"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ExistsResponse{Exists: exists})
}
