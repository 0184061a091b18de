package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hooiv/foodorder/internal/middleware"
	"github.com/hooiv/foodorder/internal/services"
)

type MenuHandler struct {
	menu *services.MenuService
}

func NewMenuHandler(menu *services.MenuService) *MenuHandler {
	return &MenuHandler{menu: menu}
}

func (h *MenuHandler) List(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	restaurantID := c.Query("restaurantId")
	if restaurantID == "" {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "restaurantId query parameter is required",
		})
		return
	}

	items, err := h.menu.FindAllByRestaurant(c.Request.Context(), restaurantID, identity)
	if err != nil {
		errorResponse(c, err)
		return
	}
	successWithMetaResponse(c, http.StatusOK, "Menu items fetched successfully", items, gin.H{
		"count": len(items),
	})
}

func (h *MenuHandler) Get(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	item, err := h.menu.FindOne(c.Request.Context(), c.Param("id"), identity)
	if err != nil {
		errorResponse(c, err)
		return
	}
	successResponse(c, http.StatusOK, "Menu item fetched successfully", item)
}

func (h *MenuHandler) Create(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	var input services.CreateMenuItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	item, err := h.menu.Create(c.Request.Context(), input, identity)
	if err != nil {
		errorResponse(c, err)
		return
	}
	successResponse(c, http.StatusCreated, "Menu item created successfully", item)
}

func (h *MenuHandler) Update(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	var input services.UpdateMenuItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	item, err := h.menu.Update(c.Request.Context(), c.Param("id"), input, identity)
	if err != nil {
		errorResponse(c, err)
		return
	}
	successResponse(c, http.StatusOK, "Menu item updated successfully", item)
}

func (h *MenuHandler) Delete(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	if err := h.menu.Remove(c.Request.Context(), c.Param("id"), identity); err != nil {
		errorResponse(c, err)
		return
	}
	successResponse(c, http.StatusOK, "Menu item deleted successfully", nil)
}
