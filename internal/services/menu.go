package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hooiv/foodorder/internal/access"
	"github.com/hooiv/foodorder/internal/database/models"
)

type MenuService struct {
	db          *gorm.DB
	redis       *redis.Client
	restaurants *RestaurantsService
}

func NewMenuService(db *gorm.DB, redisClient *redis.Client, restaurants *RestaurantsService) *MenuService {
	return &MenuService{db: db, redis: redisClient, restaurants: restaurants}
}

type CreateMenuItemInput struct {
	RestaurantID string          `json:"restaurantId" binding:"required"`
	Name         string          `json:"name" binding:"required"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price" binding:"required"`
	ImageURL     string          `json:"imageUrl"`
	IsAvailable  *bool           `json:"isAvailable,omitempty"`
	Categories   []string        `json:"categories"`
}

type UpdateMenuItemInput struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	ImageURL    *string          `json:"imageUrl,omitempty"`
	IsAvailable *bool            `json:"isAvailable,omitempty"`
	Categories  []string         `json:"categories,omitempty"`
}

func (s *MenuService) invalidateCache(ctx context.Context, restaurantID string) {
	if s.redis == nil {
		return
	}
	_ = s.redis.Del(ctx, fmt.Sprintf("%s%s", MENU_CACHE_PREFIX, restaurantID))
}

// FindAllByRestaurant lists a restaurant's menu. Restaurant visibility is
// checked first, so an out-of-scope restaurant reads as absent before any
// menu rows are touched.
func (s *MenuService) FindAllByRestaurant(ctx context.Context, restaurantID string, caller access.Identity) ([]models.MenuItem, error) {
	if _, err := s.restaurants.FindOne(ctx, restaurantID, caller); err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("%s%s", MENU_CACHE_PREFIX, restaurantID)
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var items []models.MenuItem
			if err := json.Unmarshal([]byte(cached), &items); err == nil {
				return items, nil
			}
		}
	}

	var items []models.MenuItem
	if err := s.db.WithContext(ctx).Where("restaurant_id = ?", restaurantID).Find(&items).Error; err != nil {
		return nil, err
	}

	if s.redis != nil {
		if data, err := json.Marshal(items); err == nil {
			_ = s.redis.Set(ctx, cacheKey, data, CACHE_TTL_SHORT)
		}
	}
	return items, nil
}

// FindOne resolves a menu item under its restaurant's country scope.
func (s *MenuService) FindOne(ctx context.Context, id string, caller access.Identity) (*models.MenuItem, error) {
	if id == "" {
		return nil, notFound("Menu item ID is required")
	}

	var item models.MenuItem
	if err := s.db.WithContext(ctx).Preload("Restaurant").First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Menu item with ID %s not found", id)
		}
		return nil, err
	}
	if item.Restaurant == nil {
		return nil, notFound("Restaurant not found for menu item with ID %s", id)
	}

	if !access.ResolveRestaurant(caller, item.Restaurant.Country).Allowed() {
		return nil, notFound("Menu item with ID %s not found", id)
	}
	return &item, nil
}

func (s *MenuService) Create(ctx context.Context, input CreateMenuItemInput, caller access.Identity) (*models.MenuItem, error) {
	if caller.Role != models.RoleAdmin {
		return nil, forbidden("Only Admin can create menu items")
	}
	if input.Price.IsNegative() {
		return nil, invalid("price must not be negative")
	}

	restaurant, err := s.restaurants.FindOne(ctx, input.RestaurantID, caller)
	if err != nil {
		return nil, err
	}

	isAvailable := true
	if input.IsAvailable != nil {
		isAvailable = *input.IsAvailable
	}

	item := models.MenuItem{
		Name:         input.Name,
		Description:  input.Description,
		Price:        input.Price,
		ImageURL:     input.ImageURL,
		IsAvailable:  isAvailable,
		Categories:   input.Categories,
		RestaurantID: restaurant.ID,
	}
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, restaurant.ID)
	return &item, nil
}

func (s *MenuService) Update(ctx context.Context, id string, input UpdateMenuItemInput, caller access.Identity) (*models.MenuItem, error) {
	if caller.Role != models.RoleAdmin {
		return nil, forbidden("Only Admin can update menu items")
	}

	item, err := s.FindOne(ctx, id, caller)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, invalid("price must not be negative")
		}
		item.Price = *input.Price
	}
	if input.ImageURL != nil {
		item.ImageURL = *input.ImageURL
	}
	if input.IsAvailable != nil {
		item.IsAvailable = *input.IsAvailable
	}
	if input.Categories != nil {
		item.Categories = input.Categories
	}

	if err := s.db.WithContext(ctx).Omit(clause.Associations).Save(item).Error; err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, item.RestaurantID)
	return item, nil
}

func (s *MenuService) Remove(ctx context.Context, id string, caller access.Identity) error {
	if caller.Role != models.RoleAdmin {
		return forbidden("Only Admin can delete menu items")
	}

	item, err := s.FindOne(ctx, id, caller)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Delete(&models.MenuItem{}, "id = ?", item.ID).Error; err != nil {
		return err
	}

	s.invalidateCache(ctx, item.RestaurantID)
	return nil
}
