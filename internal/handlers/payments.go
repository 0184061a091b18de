package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hooiv/foodorder/internal/middleware"
	"github.com/hooiv/foodorder/internal/services"
)

type PaymentsHandler struct {
	payments *services.PaymentsService
}

func NewPaymentsHandler(payments *services.PaymentsService) *PaymentsHandler {
	return &PaymentsHandler{payments: payments}
}

type updatePaymentMethodRequest struct {
	PaymentMethod string `json:"paymentMethod" binding:"required"`
}

func (h *PaymentsHandler) GetMethod(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	result, err := h.payments.GetPaymentMethod(c.Request.Context(), c.Param("userId"), identity)
	if err != nil {
		errorResponse(c, err)
		return
	}
	successResponse(c, http.StatusOK, "Payment method fetched successfully", result)
}

func (h *PaymentsHandler) UpdateMethod(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	var req updatePaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.payments.UpdatePaymentMethod(c.Request.Context(), c.Param("userId"), req.PaymentMethod, identity)
	if err != nil {
		errorResponse(c, err)
		return
	}
	successResponse(c, http.StatusOK, "Payment method updated successfully", result)
}

func (h *PaymentsHandler) Process(c *gin.Context) {
	var input services.ProcessPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	result := h.payments.Process(c.Request.Context(), input)
	successResponse(c, http.StatusOK, "Payment processed", result)
}
