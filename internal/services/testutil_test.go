package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hooiv/foodorder/internal/access"
	"github.com/hooiv/foodorder/internal/database/models"
)

type fixture struct {
	db *gorm.DB

	users       *UsersService
	restaurants *RestaurantsService
	menu        *MenuService
	orders      *OrdersService
	payments    *PaymentsService

	admin          models.User
	managerIndia   models.User
	managerAmerica models.User
	memberIndia    models.User
	memberAmerica  models.User

	indiaRestaurant   models.Restaurant
	americaRestaurant models.Restaurant
	globalRestaurant  models.Restaurant

	biryani models.MenuItem
	naan    models.MenuItem
	burger  models.MenuItem
	pizza   models.MenuItem
}

// newFixture opens an in-memory sqlite database and loads a small dataset
// spanning all three countries. The connection pool is capped at one so
// every query sees the same in-memory database.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
	))

	f := &fixture{db: db}
	f.users = NewUsersService(db)
	f.restaurants = NewRestaurantsService(db, nil)
	f.menu = NewMenuService(db, nil, f.restaurants)
	f.orders = NewOrdersService(db, f.users, f.menu)
	f.payments = NewPaymentsService(f.users)

	f.admin = f.createUser(t, "Nick Fury", "nick.fury@shield.com", models.RoleAdmin, models.CountryGlobal)
	f.managerIndia = f.createUser(t, "Captain Marvel", "captain.marvel@shield.com", models.RoleManager, models.CountryIndia)
	f.managerAmerica = f.createUser(t, "Captain America", "captain.america@shield.com", models.RoleManager, models.CountryAmerica)
	f.memberIndia = f.createUser(t, "Thanos", "thanos@shield.com", models.RoleMember, models.CountryIndia)
	f.memberAmerica = f.createUser(t, "Travis", "travis@shield.com", models.RoleMember, models.CountryAmerica)

	f.indiaRestaurant = f.createRestaurant(t, "Indian Spice House", models.CountryIndia)
	f.americaRestaurant = f.createRestaurant(t, "American Diner", models.CountryAmerica)
	f.globalRestaurant = f.createRestaurant(t, "Global Eats", models.CountryGlobal)

	f.biryani = f.createMenuItem(t, f.indiaRestaurant.ID, "Vegetable Biryani", "12.99")
	f.naan = f.createMenuItem(t, f.indiaRestaurant.ID, "Garlic Naan", "3.99")
	f.burger = f.createMenuItem(t, f.americaRestaurant.ID, "Cheeseburger", "9.99")
	f.pizza = f.createMenuItem(t, f.globalRestaurant.ID, "World Pizza", "15.99")

	return f
}

func (f *fixture) createUser(t *testing.T, name, email string, role models.Role, country models.Country) models.User {
	t.Helper()
	pwHash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		Name:     name,
		Email:    email,
		Password: string(pwHash),
		Role:     role,
		Country:  country,
	}
	require.NoError(t, f.db.Create(&user).Error)
	return user
}

func (f *fixture) createRestaurant(t *testing.T, name string, country models.Country) models.Restaurant {
	t.Helper()
	restaurant := models.Restaurant{Name: name, Country: country}
	require.NoError(t, f.db.Create(&restaurant).Error)
	return restaurant
}

func (f *fixture) createMenuItem(t *testing.T, restaurantID, name, price string) models.MenuItem {
	t.Helper()
	item := models.MenuItem{
		Name:         name,
		Price:        decimal.RequireFromString(price),
		IsAvailable:  true,
		RestaurantID: restaurantID,
	}
	require.NoError(t, f.db.Create(&item).Error)
	return item
}

func identity(u models.User) access.Identity {
	return access.Identity{
		UserID:  u.ID,
		Email:   u.Email,
		Role:    u.Role,
		Country: u.Country,
	}
}
