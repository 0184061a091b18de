package database

import (
	"errors"
	"log"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/hooiv/foodorder/internal/database/models"
)

type seedMenuItem struct {
	Name        string
	Description string
	Price       string
	Categories  []string
}

var seedMenusByCountry = map[models.Country][]seedMenuItem{
	models.CountryIndia: {
		{Name: "Butter Chicken", Description: "Creamy tomato curry with tandoori chicken", Price: "14.99", Categories: []string{"mains", "curry"}},
		{Name: "Vegetable Biryani", Description: "Fragrant basmati rice with seasonal vegetables", Price: "12.99", Categories: []string{"mains", "rice"}},
		{Name: "Garlic Naan", Description: "Tandoor-baked flatbread with garlic butter", Price: "3.99", Categories: []string{"sides", "bread"}},
	},
	models.CountryAmerica: {
		{Name: "Cheeseburger", Description: "Char-grilled beef patty with cheddar", Price: "9.99", Categories: []string{"mains", "burgers"}},
		{Name: "Buffalo Wings", Description: "Crispy wings tossed in hot sauce", Price: "11.99", Categories: []string{"starters"}},
		{Name: "Caesar Salad", Description: "Romaine, parmesan and croutons", Price: "8.99", Categories: []string{"salads"}},
	},
	models.CountryGlobal: {
		{Name: "World Pizza", Description: "Wood-fired pizza with rotating toppings", Price: "15.99", Categories: []string{"mains", "pizza"}},
		{Name: "Global Salad", Description: "Mixed greens with international dressings", Price: "9.99", Categories: []string{"salads"}},
		{Name: "International Platter", Description: "Tasting platter from three cuisines", Price: "19.99", Categories: []string{"mains", "sharing"}},
	},
}

// Seed loads the demo dataset. It is idempotent: if any user already
// exists the whole seed is skipped.
func Seed(db *gorm.DB) error {
	var existing models.User
	err := db.First(&existing).Error
	if err == nil {
		log.Println("Seed skipped, users already present")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	users := []struct {
		Name     string
		Email    string
		Password string
		Role     models.Role
		Country  models.Country
	}{
		{"Nick Fury", "nick.fury@shield.com", "admin123", models.RoleAdmin, models.CountryGlobal},
		{"Captain Marvel", "captain.marvel@shield.com", "manager123", models.RoleManager, models.CountryIndia},
		{"Captain America", "captain.america@shield.com", "manager123", models.RoleManager, models.CountryAmerica},
		{"Thanos", "thanos@shield.com", "member123", models.RoleMember, models.CountryIndia},
		{"Thor", "thor@shield.com", "member123", models.RoleMember, models.CountryIndia},
		{"Travis", "travis@shield.com", "member123", models.RoleMember, models.CountryAmerica},
	}

	for _, u := range users {
		pwHash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user := models.User{
			Name:     u.Name,
			Email:    u.Email,
			Password: string(pwHash),
			Role:     u.Role,
			Country:  u.Country,
		}
		if err := db.Create(&user).Error; err != nil {
			return err
		}
	}

	restaurants := []models.Restaurant{
		{Name: "Indian Spice House", Description: "North Indian classics", Address: "12 Spice Road, Mumbai", Country: models.CountryIndia},
		{Name: "Curry Palace", Description: "Regional curries and breads", Address: "8 Curry Lane, Delhi", Country: models.CountryIndia},
		{Name: "American Diner", Description: "All-day diner staples", Address: "401 Main St, Austin", Country: models.CountryAmerica},
		{Name: "Burger Joint", Description: "Smash burgers and shakes", Address: "77 5th Ave, New York", Country: models.CountryAmerica},
		{Name: "Global Eats", Description: "World cuisine under one roof", Address: "1 International Plaza", Country: models.CountryGlobal},
	}

	for i := range restaurants {
		if err := db.Create(&restaurants[i]).Error; err != nil {
			return err
		}
		for _, m := range seedMenusByCountry[restaurants[i].Country] {
			price, err := decimal.NewFromString(m.Price)
			if err != nil {
				return err
			}
			item := models.MenuItem{
				Name:         m.Name,
				Description:  m.Description,
				Price:        price,
				IsAvailable:  true,
				Categories:   m.Categories,
				RestaurantID: restaurants[i].ID,
			}
			if err := db.Create(&item).Error; err != nil {
				return err
			}
		}
	}

	log.Printf("Seeded %d users and %d restaurants", len(users), len(restaurants))
	return nil
}
