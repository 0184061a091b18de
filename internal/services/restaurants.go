package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hooiv/foodorder/internal/access"
	"github.com/hooiv/foodorder/internal/database/models"
)

const (
	RESTAURANT_CACHE_PREFIX = "restaurants:"
	MENU_CACHE_PREFIX       = "menu:"
	CACHE_TTL_SHORT         = 5 * time.Minute
)

type RestaurantsService struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewRestaurantsService(db *gorm.DB, redisClient *redis.Client) *RestaurantsService {
	return &RestaurantsService{db: db, redis: redisClient}
}

type CreateRestaurantInput struct {
	Name        string         `json:"name" binding:"required"`
	Description string         `json:"description"`
	ImageURL    string         `json:"imageUrl"`
	Address     string         `json:"address"`
	Country     models.Country `json:"country" binding:"required"`
}

type UpdateRestaurantInput struct {
	Name        *string         `json:"name,omitempty"`
	Description *string         `json:"description,omitempty"`
	ImageURL    *string         `json:"imageUrl,omitempty"`
	Address     *string         `json:"address,omitempty"`
	Country     *models.Country `json:"country,omitempty"`
}

func (s *RestaurantsService) invalidateCaches(ctx context.Context, restaurantIDs ...string) {
	if s.redis == nil {
		return
	}
	_ = s.redis.Del(ctx,
		RESTAURANT_CACHE_PREFIX+"all",
		RESTAURANT_CACHE_PREFIX+string(models.CountryIndia),
		RESTAURANT_CACHE_PREFIX+string(models.CountryAmerica),
	)
	for _, id := range restaurantIDs {
		_ = s.redis.Del(ctx, fmt.Sprintf("%s%s", MENU_CACHE_PREFIX, id))
	}
}

func (s *RestaurantsService) FindAll(ctx context.Context, caller access.Identity) ([]models.Restaurant, error) {
	countries := access.VisibleCountries(caller)

	cacheKey := RESTAURANT_CACHE_PREFIX + "all"
	if countries != nil {
		cacheKey = RESTAURANT_CACHE_PREFIX + string(caller.Country)
	}

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var restaurants []models.Restaurant
			if err := json.Unmarshal([]byte(cached), &restaurants); err == nil {
				return restaurants, nil
			}
		}
	}

	query := s.db.WithContext(ctx).Model(&models.Restaurant{})
	if countries != nil {
		query = query.Where("country IN ?", countries)
	}

	var restaurants []models.Restaurant
	if err := query.Find(&restaurants).Error; err != nil {
		return nil, err
	}

	if s.redis != nil {
		if data, err := json.Marshal(restaurants); err == nil {
			_ = s.redis.Set(ctx, cacheKey, data, CACHE_TTL_SHORT)
		}
	}
	return restaurants, nil
}

func (s *RestaurantsService) FindOne(ctx context.Context, id string, caller access.Identity) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := s.db.WithContext(ctx).Preload("MenuItems").First(&restaurant, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Restaurant with ID %s not found", id)
		}
		return nil, err
	}

	// Out-of-scope restaurants read as absent, not forbidden.
	if !access.ResolveRestaurant(caller, restaurant.Country).Allowed() {
		return nil, notFound("Restaurant with ID %s not found", id)
	}
	return &restaurant, nil
}

func (s *RestaurantsService) Create(ctx context.Context, input CreateRestaurantInput, caller access.Identity) (*models.Restaurant, error) {
	if caller.Role != models.RoleAdmin {
		return nil, forbidden("Only Admin can create restaurants")
	}
	if !input.Country.Valid() {
		return nil, invalid("invalid country %q", input.Country)
	}

	restaurant := models.Restaurant{
		Name:        input.Name,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		Address:     input.Address,
		Country:     input.Country,
	}
	if err := s.db.WithContext(ctx).Create(&restaurant).Error; err != nil {
		return nil, err
	}

	s.invalidateCaches(ctx)
	return &restaurant, nil
}

func (s *RestaurantsService) Update(ctx context.Context, id string, input UpdateRestaurantInput, caller access.Identity) (*models.Restaurant, error) {
	if caller.Role != models.RoleAdmin {
		return nil, forbidden("Only Admin can update restaurants")
	}

	restaurant, err := s.FindOne(ctx, id, caller)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		restaurant.Name = *input.Name
	}
	if input.Description != nil {
		restaurant.Description = *input.Description
	}
	if input.ImageURL != nil {
		restaurant.ImageURL = *input.ImageURL
	}
	if input.Address != nil {
		restaurant.Address = *input.Address
	}
	if input.Country != nil {
		if !input.Country.Valid() {
			return nil, invalid("invalid country %q", *input.Country)
		}
		restaurant.Country = *input.Country
	}

	if err := s.db.WithContext(ctx).Omit(clause.Associations).Save(restaurant).Error; err != nil {
		return nil, err
	}

	s.invalidateCaches(ctx, restaurant.ID)
	return restaurant, nil
}

func (s *RestaurantsService) Remove(ctx context.Context, id string, caller access.Identity) error {
	if caller.Role != models.RoleAdmin {
		return forbidden("Only Admin can delete restaurants")
	}

	restaurant, err := s.FindOne(ctx, id, caller)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Select("MenuItems").Delete(restaurant).Error; err != nil {
		return err
	}

	s.invalidateCaches(ctx, restaurant.ID)
	return nil
}
