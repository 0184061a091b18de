package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hooiv/foodorder/internal/middleware"
	"github.com/hooiv/foodorder/internal/services"
)

type RestaurantsHandler struct {
	restaurants *services.RestaurantsService
}

func NewRestaurantsHandler(restaurants *services.RestaurantsService) *RestaurantsHandler {
	return &RestaurantsHandler{restaurants: restaurants}
}

func (h *RestaurantsHandler) List(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	restaurants, err := h.restaurants.FindAll(c.Request.Context(), identity)
	if err != nil {
		errorResponse(c, err)
		return
	}
	successWithMetaResponse(c, http.StatusOK, "Restaurants fetched successfully", restaurants, gin.H{
		"count": len(restaurants),
	})
}

func (h *RestaurantsHandler) Get(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	restaurant, err := h.restaurants.FindOne(c.Request.Context(), c.Param("id"), identity)
	if err != nil {
		errorResponse(c, err)
		return
	}
	successResponse(c, http.StatusOK, "Restaurant fetched successfully", restaurant)
}

func (h *RestaurantsHandler) Create(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	var input services.CreateRestaurantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	restaurant, err := h.restaurants.Create(c.Request.Context(), input, identity)
	if err != nil {
		errorResponse(c, err)
		return
	}
	successResponse(c, http.StatusCreated, "Restaurant created successfully", restaurant)
}

func (h *RestaurantsHandler) Update(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	var input services.UpdateRestaurantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	restaurant, err := h.restaurants.Update(c.Request.Context(), c.Param("id"), input, identity)
	if err != nil {
		errorResponse(c, err)
		return
	}
	successResponse(c, http.StatusOK, "Restaurant updated successfully", restaurant)
}

func (h *RestaurantsHandler) Delete(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	if err := h.restaurants.Remove(c.Request.Context(), c.Param("id"), identity); err != nil {
		errorResponse(c, err)
		return
	}
	successResponse(c, http.StatusOK, "Restaurant deleted successfully", nil)
}
