package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hooiv/foodorder/internal/database/models"
	"github.com/hooiv/foodorder/internal/middleware"
	"github.com/hooiv/foodorder/internal/services"
)

type OrdersHandler struct {
	orders *services.OrdersService
}

func NewOrdersHandler(orders *services.OrdersService) *OrdersHandler {
	return &OrdersHandler{orders: orders}
}

type createOrderRequest struct {
	UserID string `json:"userId"`
}

type updateStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

func (h *OrdersHandler) List(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	orders, err := h.orders.FindAll(c.Request.Context(), identity)
	if err != nil {
		errorResponse(c, err)
		return
	}
	successWithMetaResponse(c, http.StatusOK, "Orders fetched successfully", orders, gin.H{
		"count": len(orders),
	})
}

func (h *OrdersHandler) Recent(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, APIResponse{
				Success: false,
				Message: "limit must be a non-negative integer",
			})
			return
		}
		limit = parsed
	}

	orders, err := h.orders.FindRecent(c.Request.Context(), identity, limit)
	if err != nil {
		errorResponse(c, err)
		return
	}
	successWithMetaResponse(c, http.StatusOK, "Recent orders fetched successfully", orders, gin.H{
		"count": len(orders),
	})
}

func (h *OrdersHandler) Get(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	order, err := h.orders.FindOne(c.Request.Context(), c.Param("id"), identity)
	if err != nil {
		errorResponse(c, err)
		return
	}
	successResponse(c, http.StatusOK, "Order fetched successfully", order)
}

// Create opens a cart. Members always open carts for themselves; admins and
// managers may name any existing user as the owner.
func (h *OrdersHandler) Create(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	userID := req.UserID
	if userID == "" || identity.Role == models.RoleMember {
		userID = identity.UserID
	}

	order, err := h.orders.Create(c.Request.Context(), userID)
	if err != nil {
		errorResponse(c, err)
		return
	}
	successResponse(c, http.StatusCreated, "Order created successfully", order)
}

func (h *OrdersHandler) AddItem(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	var input services.AddItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	order, err := h.orders.AddItem(c.Request.Context(), c.Param("id"), input, identity)
	if err != nil {
		errorResponse(c, err)
		return
	}
	successResponse(c, http.StatusOK, "Item added to order", order)
}

func (h *OrdersHandler) RemoveItem(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	order, err := h.orders.RemoveItem(c.Request.Context(), c.Param("id"), c.Param("itemId"), identity)
	if err != nil {
		errorResponse(c, err)
		return
	}
	successResponse(c, http.StatusOK, "Item removed from order", order)
}

func (h *OrdersHandler) Place(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	var input services.PlaceOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	order, err := h.orders.Place(c.Request.Context(), c.Param("id"), input, identity)
	if err != nil {
		errorResponse(c, err)
		return
	}
	successResponse(c, http.StatusOK, "Order placed successfully", order)
}

func (h *OrdersHandler) Cancel(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	order, err := h.orders.Cancel(c.Request.Context(), c.Param("id"), identity)
	if err != nil {
		errorResponse(c, err)
		return
	}
	successResponse(c, http.StatusOK, "Order cancelled successfully", order)
}

func (h *OrdersHandler) UpdateStatus(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	order, err := h.orders.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status, identity)
	if err != nil {
		errorResponse(c, err)
		return
	}
	successResponse(c, http.StatusOK, "Order status updated successfully", order)
}
