package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hooiv/foodorder/config"
	"github.com/hooiv/foodorder/internal/database"
	"github.com/hooiv/foodorder/internal/handlers"
	"github.com/hooiv/foodorder/internal/middleware"
	"github.com/hooiv/foodorder/internal/services"
)

func main() {
	cfg := config.LoadConfig()

	db, err := database.NewConnection(cfg.DB.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if cfg.Seed {
		if err := database.Seed(db); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	}

	redisClient := config.NewRedisClient(cfg.Redis)

	usersService := services.NewUsersService(db)
	restaurantsService := services.NewRestaurantsService(db, redisClient)
	menuService := services.NewMenuService(db, redisClient, restaurantsService)
	ordersService := services.NewOrdersService(db, usersService, menuService)
	paymentsService := services.NewPaymentsService(usersService)

	authHandler := handlers.NewAuthHandler(usersService, cfg.Auth)
	usersHandler := handlers.NewUsersHandler(usersService)
	restaurantsHandler := handlers.NewRestaurantsHandler(restaurantsService)
	menuHandler := handlers.NewMenuHandler(menuService)
	ordersHandler := handlers.NewOrdersHandler(ordersService)
	paymentsHandler := handlers.NewPaymentsHandler(paymentsService)

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.RateLimit())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")

	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
	}

	protected := api.Group("")
	protected.Use(middleware.JWTAuth([]byte(cfg.Auth.JWTSecret)))
	{
		protected.GET("/auth/profile", authHandler.Profile)

		users := protected.Group("/users")
		{
			users.GET("", usersHandler.List)
			users.GET("/:id", usersHandler.Get)
			users.POST("", usersHandler.Create)
			users.PUT("/:id", usersHandler.Update)
			users.PATCH("/:id/payment-method", usersHandler.UpdatePaymentMethod)
			users.DELETE("/:id", usersHandler.Delete)
		}

		restaurants := protected.Group("/restaurants")
		{
			restaurants.GET("", restaurantsHandler.List)
			restaurants.GET("/:id", restaurantsHandler.Get)
			restaurants.POST("", restaurantsHandler.Create)
			restaurants.PUT("/:id", restaurantsHandler.Update)
			restaurants.DELETE("/:id", restaurantsHandler.Delete)
		}

		menu := protected.Group("/menu")
		{
			menu.GET("", menuHandler.List)
			menu.GET("/:id", menuHandler.Get)
			menu.POST("", menuHandler.Create)
			menu.PUT("/:id", menuHandler.Update)
			menu.DELETE("/:id", menuHandler.Delete)
		}

		orders := protected.Group("/orders")
		{
			orders.GET("", ordersHandler.List)
			orders.GET("/recent", ordersHandler.Recent)
			orders.GET("/:id", ordersHandler.Get)
			orders.POST("", ordersHandler.Create)
			orders.POST("/:id/items", ordersHandler.AddItem)
			orders.DELETE("/:id/items/:itemId", ordersHandler.RemoveItem)
			orders.POST("/:id/place", ordersHandler.Place)
			orders.POST("/:id/cancel", ordersHandler.Cancel)
			orders.PATCH("/:id/status", ordersHandler.UpdateStatus)
		}

		payments := protected.Group("/payments")
		{
			payments.GET("/:userId", paymentsHandler.GetMethod)
			payments.POST("/:userId", paymentsHandler.UpdateMethod)
			payments.POST("/process", paymentsHandler.Process)
		}
	}

	log.Printf("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
