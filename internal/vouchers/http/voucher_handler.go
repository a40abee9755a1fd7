// Package http provides HTTP handlers for voucher lifecycle operations.
// All responses use the {"message": ..., "data": ...} envelope.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/redeemly/vouchers/internal/httputil"
	customValidation "github.com/redeemly/vouchers/internal/validation"
	vouchersDomain "github.com/redeemly/vouchers/internal/vouchers/domain"
	"github.com/redeemly/vouchers/internal/vouchers/http/dto"
	vouchersUseCase "github.com/redeemly/vouchers/internal/vouchers/usecase"
)

// VoucherHandler handles HTTP requests for voucher lifecycle operations.
type VoucherHandler struct {
	voucherUseCase vouchersUseCase.VoucherUseCase
	logger         *slog.Logger
}

// NewVoucherHandler creates a new voucher handler with required dependencies.
func NewVoucherHandler(
	voucherUseCase vouchersUseCase.VoucherUseCase,
	logger *slog.Logger,
) *VoucherHandler {
	return &VoucherHandler{
		voucherUseCase: voucherUseCase,
		logger:         logger,
	}
}

// parseVoucherID extracts and validates the voucher ID path parameter.
func parseVoucherID(c *gin.Context) (uuid.UUID, error) {
	voucherID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid voucher id: must be a UUID")
	}
	return voucherID, nil
}

// CreateHandler creates a single voucher with a caller-supplied code.
// POST /v1/vouchers - Requires ManageVouchersCapability.
func (h *VoucherHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateVoucherRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	voucher, err := h.voucherUseCase.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, httputil.MessageResponse{
		Message: "voucher created",
		Data:    dto.MapVoucherToResponse(voucher),
	})
}

// GetHandler retrieves a voucher by ID.
// GET /v1/vouchers/:id - Requires ManageVouchersCapability.
func (h *VoucherHandler) GetHandler(c *gin.Context) {
	voucherID, err := parseVoucherID(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	voucher, err := h.voucherUseCase.Get(c.Request.Context(), voucherID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, httputil.MessageResponse{
		Message: "voucher",
		Data:    dto.MapVoucherToResponse(voucher),
	})
}

// ListHandler retrieves vouchers with pagination, optionally filtered by owner.
// GET /v1/vouchers?offset=0&limit=50&user_id=X - Requires ManageVouchersCapability.
func (h *VoucherHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	filter := vouchersDomain.ListVouchersFilter{UserID: c.Query("user_id")}

	vouchers, total, err := h.voucherUseCase.List(c.Request.Context(), filter, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, httputil.MessageResponse{
		Message: "vouchers",
		Data:    dto.MapVouchersToListResponse(vouchers, total, offset, limit),
	})
}

// UpdateHandler applies a partial update to a voucher.
// PUT /v1/vouchers/:id - Requires ManageVouchersCapability.
func (h *VoucherHandler) UpdateHandler(c *gin.Context) {
	voucherID, err := parseVoucherID(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var req dto.UpdateVoucherRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.voucherUseCase.Update(c.Request.Context(), voucherID, req.ToInput()); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, httputil.MessageResponse{Message: "voucher updated"})
}

// DeleteHandler removes a voucher. Deleting a missing voucher succeeds.
// DELETE /v1/vouchers/:id - Requires ManageVouchersCapability.
func (h *VoucherHandler) DeleteHandler(c *gin.Context) {
	voucherID, err := parseVoucherID(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := h.voucherUseCase.Delete(c.Request.Context(), voucherID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, httputil.MessageResponse{Message: "deleted"})
}

// GenerateHandler creates vouchers in bulk for one or more users.
// POST /v1/vouchers/generate - Requires ManageVouchersCapability.
func (h *VoucherHandler) GenerateHandler(c *gin.Context) {
	var req dto.GenerateVouchersRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	err := h.voucherUseCase.GenerateForMany(
		c.Request.Context(),
		req.Quantity,
		req.UserIDs,
		req.Template(),
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, httputil.MessageResponse{Message: "Vouchers Generated"})
}

// RedeemHandler consumes a voucher exactly once.
// POST /v1/vouchers/redeem - Requires RedeemVoucherCapability.
func (h *VoucherHandler) RedeemHandler(c *gin.Context) {
	var req dto.RedeemVoucherRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	voucher, err := h.voucherUseCase.Redeem(c.Request.Context(), req.Code, req.UserID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, httputil.MessageResponse{
		Message: "Redeemed Voucher",
		Data:    dto.MapVoucherToResponse(voucher),
	})
}
