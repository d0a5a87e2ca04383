package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lavanderia/backend/internal/dto"
	"github.com/lavanderia/backend/internal/fees"
	"github.com/lavanderia/backend/internal/middleware"
	"github.com/lavanderia/backend/internal/service"
)

// PaymentHandler exposes the payment-reconciliation entry points and the
// fee-config admin endpoints.
type PaymentHandler struct {
	reconciler *service.PaymentReconciler
	feeStore   *service.FeeConfigStore
	dashboard  *service.DashboardService
}

func NewPaymentHandler(reconciler *service.PaymentReconciler, feeStore *service.FeeConfigStore, dashboard *service.DashboardService) *PaymentHandler {
	return &PaymentHandler{reconciler: reconciler, feeStore: feeStore, dashboard: dashboard}
}

// Confirm handles POST /orders/:id/payment. The installment count, when
// present with a credit-card payment, selects the "Cartão de Crédito (Nx)"
// fee bracket; the assembled key is opaque to the fee core.
func (h *PaymentHandler) Confirm(c *gin.Context) {
	var req dto.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "validation failed: " + err.Error()})
		return
	}

	method := req.PaymentMethod
	if strings.EqualFold(method, "Cartão de Crédito") {
		installments := req.Installments
		if installments == 0 {
			installments = 1
		}
		method = fees.CreditCardMethod(installments)
	}

	order, err := h.reconciler.ConfirmPayment(c.Request.Context(), c.Param("id"), method)
	if err != nil {
		if errors.Is(err, service.ErrAlreadyPaid) {
			c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
			return
		}
		status, resp := middleware.MapDBError(err)
		c.JSON(status, resp)
		return
	}

	h.dashboard.Invalidate()
	c.JSON(http.StatusOK, order)
}

// Revert handles DELETE /orders/:id/payment. Clearing a payment throws
// away the persisted fee values, so it demands explicit consent via
// confirm=true.
func (h *PaymentHandler) Revert(c *gin.Context) {
	if c.Query("confirm") != "true" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "reverting a payment is irreversible; pass confirm=true to proceed",
		})
		return
	}

	if err := h.reconciler.RevertPayment(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrNotPaid) {
			c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
			return
		}
		status, resp := middleware.MapDBError(err)
		c.JSON(status, resp)
		return
	}

	h.dashboard.Invalidate()
	c.Status(http.StatusNoContent)
}

// RecalculateAll handles POST /payments/recalculate. It rewrites fee/net
// values on every paid order, so it also demands confirm=true.
func (h *PaymentHandler) RecalculateAll(c *gin.Context) {
	if c.Query("confirm") != "true" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "recalculation overwrites persisted fees on all paid orders; pass confirm=true to proceed",
		})
		return
	}

	report, err := h.reconciler.RecalculateAll(c.Request.Context())
	if err != nil {
		status, resp := middleware.MapDBError(err)
		c.JSON(status, resp)
		return
	}

	h.dashboard.Invalidate()
	c.JSON(http.StatusOK, report)
}

func (h *PaymentHandler) GetFees(c *gin.Context) {
	cfg := h.feeStore.GetFees(c.Request.Context())
	c.JSON(http.StatusOK, dto.FeesResponse{Fees: cfg})
}

func (h *PaymentHandler) SaveFees(c *gin.Context) {
	var req dto.SaveFeesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "validation failed: " + err.Error()})
		return
	}

	if err := h.feeStore.SaveFees(c.Request.Context(), req.Fees); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.FeesResponse{Fees: h.feeStore.GetFees(c.Request.Context())})
}
