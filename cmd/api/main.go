package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"goldshop-api/internal/handler"
	"goldshop-api/internal/metrics"
	"goldshop-api/internal/middleware"
	"goldshop-api/internal/model"
	"goldshop-api/internal/repository"
	"goldshop-api/internal/service"
	"goldshop-api/internal/ws"
	"goldshop-api/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(
		&model.Branch{},
		&model.User{},
		&model.Vendor{},
		&model.Customer{},
		&model.Seller{},
		&model.Warehouse{},
		&model.Product{},
		&model.StockRow{},
		&model.Invoice{},
		&model.InvoiceItem{},
		&model.WarehouseTransaction{},
	)

	// 3. Seed bootstrap admin
	seedAdmin(db)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	userRepo := repository.NewUserRepo(db)
	branchRepo := repository.NewBranchRepo(db)
	warehouseRepo := repository.NewWarehouseRepo(db)
	vendorRepo := repository.NewVendorRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	sellerRepo := repository.NewSellerRepo(db)
	productRepo := repository.NewProductRepo(db)
	stockRepo := repository.NewStockRepo(db)
	invoiceRepo := repository.NewInvoiceRepo(db)
	transferRepo := repository.NewTransferRepo(db)
	reportRepo := repository.NewReportRepo(db)

	authService := service.NewAuthService(userRepo, wsHub)
	userService := service.NewUserService(userRepo, branchRepo)
	orgService := service.NewOrgService(branchRepo, warehouseRepo)
	catalogService := service.NewCatalogService(vendorRepo, customerRepo, sellerRepo, productRepo, branchRepo)
	lifecycleService := service.NewLifecycleService(branchRepo, warehouseRepo, vendorRepo, customerRepo, sellerRepo, productRepo, transferRepo)
	stockService := service.NewStockService(stockRepo, warehouseRepo, productRepo, db, wsHub)
	invoiceService := service.NewInvoiceService(invoiceRepo, stockRepo, warehouseRepo, sellerRepo, customerRepo, branchRepo, productRepo, db, wsHub)
	transferService := service.NewTransferService(transferRepo, stockRepo, warehouseRepo, productRepo, db, wsHub)
	reportService := service.NewReportService(reportRepo)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	orgHandler := handler.NewOrgHandler(orgService, lifecycleService)
	catalogHandler := handler.NewCatalogHandler(catalogService, lifecycleService)
	stockHandler := handler.NewStockHandler(stockService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	transferHandler := handler.NewTransferHandler(transferService)
	reportHandler := handler.NewReportHandler(reportService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Goldshop API v1.0",
	})

	// Middleware
	app.Use(fiberlogger.New()) // Logging request
	app.Use(recover.New())     // Panic recovery
	app.Use(cors.New())        // CORS
	app.Use(metrics.HTTPMetrics())

	// Prometheus scrape endpoint
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/validate-token", authHandler.ValidateToken)
	auth.Post("/heartbeat", middleware.RequireAuth(userRepo), authHandler.Heartbeat)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Branches
	protected.Get("/branches", orgHandler.ListBranches)
	protected.Get("/branches/:id", orgHandler.GetBranch)
	protected.Get("/branches/:id/warehouses", orgHandler.ListBranchWarehouses)
	protected.Post("/branches", middleware.RequireAdmin(), orgHandler.CreateBranch)
	protected.Put("/branches/:id", middleware.RequireAdmin(), orgHandler.UpdateBranch)
	protected.Delete("/branches/:id", middleware.RequireAdmin(), orgHandler.DeleteBranch)
	protected.Post("/branches/:id/restore", middleware.RequireAdmin(), orgHandler.RestoreBranch)
	protected.Delete("/branches/:id/purge", middleware.RequireAdmin(), orgHandler.PurgeBranch)

	// Warehouses
	protected.Get("/warehouses", orgHandler.ListWarehouses)
	protected.Get("/warehouses/:id", orgHandler.GetWarehouse)
	protected.Post("/warehouses", middleware.RequireAdmin(), orgHandler.CreateWarehouse)
	protected.Put("/warehouses/:id", orgHandler.UpdateWarehouse)
	protected.Delete("/warehouses/:id", orgHandler.DeleteWarehouse)
	protected.Post("/warehouses/:id/restore", middleware.RequireAdmin(), orgHandler.RestoreWarehouse)
	protected.Delete("/warehouses/:id/purge", middleware.RequireAdmin(), orgHandler.PurgeWarehouse)

	// Stock ledger
	protected.Get("/warehouses/:id/stock", stockHandler.ListByWarehouse)
	protected.Get("/warehouses/:id/stock/:productId", stockHandler.GetQuantity)
	protected.Post("/stock/receive", stockHandler.Receive)

	// Vendors
	protected.Get("/vendors", catalogHandler.ListVendors)
	protected.Post("/vendors", catalogHandler.CreateVendor)
	protected.Put("/vendors/:id", catalogHandler.UpdateVendor)
	protected.Delete("/vendors/:id", catalogHandler.DeleteVendor)
	protected.Post("/vendors/:id/restore", middleware.RequireAdmin(), catalogHandler.RestoreVendor)
	protected.Delete("/vendors/:id/purge", middleware.RequireAdmin(), catalogHandler.PurgeVendor)

	// Customers
	protected.Get("/customers", catalogHandler.ListCustomers)
	protected.Post("/customers", catalogHandler.CreateCustomer)
	protected.Put("/customers/:id", catalogHandler.UpdateCustomer)
	protected.Delete("/customers/:id", catalogHandler.DeleteCustomer)
	protected.Post("/customers/:id/restore", middleware.RequireAdmin(), catalogHandler.RestoreCustomer)
	protected.Delete("/customers/:id/purge", middleware.RequireAdmin(), catalogHandler.PurgeCustomer)

	// Sellers
	protected.Get("/sellers", catalogHandler.ListSellers)
	protected.Post("/sellers", catalogHandler.CreateSeller)
	protected.Put("/sellers/:id", catalogHandler.UpdateSeller)
	protected.Delete("/sellers/:id", catalogHandler.DeleteSeller)
	protected.Post("/sellers/:id/restore", middleware.RequireAdmin(), catalogHandler.RestoreSeller)
	protected.Delete("/sellers/:id/purge", middleware.RequireAdmin(), catalogHandler.PurgeSeller)

	// Products
	protected.Get("/products", catalogHandler.ListProducts)
	protected.Get("/products/:id", catalogHandler.GetProduct)
	protected.Post("/products", catalogHandler.CreateProduct)
	protected.Put("/products/:id", catalogHandler.UpdateProduct)
	protected.Delete("/products/:id", catalogHandler.DeleteProduct)
	protected.Post("/products/:id/restore", middleware.RequireAdmin(), catalogHandler.RestoreProduct)
	protected.Delete("/products/:id/purge", middleware.RequireAdmin(), catalogHandler.PurgeProduct)

	// Invoices
	protected.Get("/invoices", invoiceHandler.List)
	protected.Get("/invoices/:id", invoiceHandler.Get)
	protected.Post("/invoices", invoiceHandler.Create)

	// Transfers
	protected.Get("/transfers", transferHandler.List)
	protected.Get("/transfers/:id", transferHandler.Get)
	protected.Post("/transfers", transferHandler.Create)
	protected.Post("/transfers/:id/approve", transferHandler.Approve)
	protected.Post("/transfers/:id/reject", transferHandler.Reject)

	// Reports
	protected.Get("/reports/dashboard", reportHandler.Dashboard)
	protected.Get("/reports/movements", reportHandler.DailyMovements)
	protected.Get("/reports/invoices/export", reportHandler.ExportInvoices)

	// User Management (admin only, enforced again in the service)
	protected.Get("/users", middleware.RequireAdmin(), userHandler.List)
	protected.Get("/users/:id", middleware.RequireAdmin(), userHandler.Get)
	protected.Post("/users", middleware.RequireAdmin(), userHandler.Create)
	protected.Put("/users/:id", middleware.RequireAdmin(), userHandler.Update)
	protected.Delete("/users/:id", middleware.RequireAdmin(), userHandler.Delete)
	protected.Post("/users/:id/restore", middleware.RequireAdmin(), userHandler.Restore)
	protected.Post("/users/:id/set-password", middleware.RequireAdmin(), userHandler.SetPassword)

	// WebSocket Route
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

	// 8. Graceful Shutdown
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

// seedAdmin creates the bootstrap admin account if it doesn't exist.
func seedAdmin(db *gorm.DB) {
	userRepo := repository.NewUserRepo(db)

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@example.com"
	}
	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	if _, err := userRepo.FindByUsername(username); err == nil {
		return
	}

	admin := &model.User{
		Username: username,
		Email:    email,
		Role:     model.RoleAdmin,
		Enabled:  true,
	}
	if err := admin.SetPassword(password); err != nil {
		log.Printf("Warning: Failed to hash admin password: %v", err)
		return
	}

	if err := userRepo.Create(admin); err != nil {
		log.Printf("Warning: Failed to create admin user: %v", err)
	} else {
		log.Printf("Admin user created: %s", username)
	}
}
