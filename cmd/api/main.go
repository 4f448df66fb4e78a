package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-galon-gas/internal/handler"
	"go-galon-gas/internal/middleware"
	"go-galon-gas/internal/model"
	"go-galon-gas/internal/repository"
	"go-galon-gas/internal/service"
	"go-galon-gas/internal/ws"
	"go-galon-gas/pkg/database"
	"go-galon-gas/pkg/kvstore"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Admin accounts live in Postgres; catalog and orders in the KV store
	db := database.ConnectDB()
	db.AutoMigrate(&model.User{})
	seedAdmin(db)

	store, err := kvstore.ConnectRedis()
	if err != nil {
		log.Fatal("Failed to connect to KV store: ", err)
	}

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(store)
	orderRepo := repository.NewOrderRepo(store)
	userRepo := repository.NewUserRepo(db)

	catalogService := service.NewCatalogService(productRepo, wsHub)
	orderService := service.NewOrderService(orderRepo, wsHub)
	authService := service.NewAuthService(userRepo)

	productHandler := handler.NewProductHandler(catalogService)
	orderHandler := handler.NewOrderHandler(orderService)
	authHandler := handler.NewAuthHandler(authService)

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Galon & Gas Delivery v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 6. Routes
	admin := middleware.RequireAdmin(userRepo)

	// ============ PUBLIC ROUTES ============
	app.Post("/admin/login", authHandler.Login)
	app.Get("/products", productHandler.GetProducts)
	app.Post("/orders", orderHandler.CreateOrder)
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"timestamp": time.Now().UTC(),
			"service":   "galon-gas-server",
		})
	})

	// ============ ADMIN ROUTES ============
	app.Get("/products/:id", admin, productHandler.GetProduct)
	app.Post("/products", admin, productHandler.CreateProduct)
	app.Put("/products/:id", admin, productHandler.UpdateProduct)
	app.Patch("/products/:id/stock", admin, productHandler.UpdateStock)
	app.Delete("/products/:id", admin, productHandler.DeleteProduct)

	// /orders/report must be registered before /orders/:id, otherwise
	// "report" is matched as an order id.
	app.Get("/orders", admin, orderHandler.GetOrders)
	app.Get("/orders/report", admin, orderHandler.GetReport)
	app.Get("/orders/statistics", admin, orderHandler.GetStatistics)
	app.Get("/orders/:id", admin, orderHandler.GetOrder)
	app.Put("/orders/:id/status", admin, orderHandler.UpdateStatus)
	app.Put("/orders/:id", admin, orderHandler.UpdateOrder)
	app.Delete("/orders/:id", admin, orderHandler.DeleteOrder)

	// WebSocket Route (live admin dashboard updates)
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 7. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedAdmin creates the default admin user if none exists yet.
func seedAdmin(db *gorm.DB) {
	userRepo := repository.NewUserRepo(db)

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@example.com"
	}

	if _, err := userRepo.FindByEmail(email); err == nil {
		return
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	admin := &model.User{
		Email:    email,
		FullName: "Administrator",
		IsActive: true,
	}
	if err := admin.SetPassword(password); err != nil {
		log.Printf("Warning: Failed to hash admin password: %v", err)
		return
	}

	if err := userRepo.Create(admin); err != nil {
		log.Printf("Warning: Failed to create admin user: %v", err)
	} else {
		log.Printf("Admin user created: %s", email)
	}
}
