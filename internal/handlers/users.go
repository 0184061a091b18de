package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hooiv/foodorder/internal/middleware"
	"github.com/hooiv/foodorder/internal/services"
)

type UsersHandler struct {
	users *services.UsersService
}

func NewUsersHandler(users *services.UsersService) *UsersHandler {
	return &UsersHandler{users: users}
}

func (h *UsersHandler) List(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	users, err := h.users.FindAll(c.Request.Context(), identity)
	if err != nil {
		errorResponse(c, err)
		return
	}
	successWithMetaResponse(c, http.StatusOK, "Users fetched successfully", users, gin.H{
		"count": len(users),
	})
}

func (h *UsersHandler) Get(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	user, err := h.users.FindOne(c.Request.Context(), c.Param("id"), identity)
	if err != nil {
		errorResponse(c, err)
		return
	}
	successResponse(c, http.StatusOK, "User fetched successfully", user)
}

func (h *UsersHandler) Create(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	var input services.CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	user, err := h.users.Create(c.Request.Context(), input, identity)
	if err != nil {
		errorResponse(c, err)
		return
	}
	successResponse(c, http.StatusCreated, "User created successfully", user)
}

func (h *UsersHandler) Update(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	var input services.UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	user, err := h.users.Update(c.Request.Context(), c.Param("id"), input, identity)
	if err != nil {
		errorResponse(c, err)
		return
	}
	successResponse(c, http.StatusOK, "User updated successfully", user)
}

func (h *UsersHandler) UpdatePaymentMethod(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	var req updatePaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, err := h.users.UpdatePaymentMethod(c.Request.Context(), c.Param("id"), req.PaymentMethod, identity)
	if err != nil {
		errorResponse(c, err)
		return
	}
	successResponse(c, http.StatusOK, "Payment method updated successfully", user)
}

func (h *UsersHandler) Delete(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	if err := h.users.Remove(c.Request.Context(), c.Param("id"), identity); err != nil {
		errorResponse(c, err)
		return
	}
	successResponse(c, http.StatusOK, "User deleted successfully", nil)
}
