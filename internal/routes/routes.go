package routes

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"invoice-dashboard-backend/internal/auth"
	"invoice-dashboard-backend/internal/cache"
	"invoice-dashboard-backend/internal/config"
	handler "invoice-dashboard-backend/internal/handlers"
	"invoice-dashboard-backend/internal/metrics"
	"invoice-dashboard-backend/internal/middleware"
	"invoice-dashboard-backend/internal/repository"
	"invoice-dashboard-backend/internal/seed"
	"invoice-dashboard-backend/internal/services/invoices"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) {
	invoiceRepo := repository.NewInvoiceRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	userRepo := repository.NewUserRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)

	routeCache := cache.New()
	jwtManager := auth.NewJWTManager(cfg.Auth.Secret, cfg.Auth.SessionTTL)

	invoiceService := invoices.NewService(invoiceRepo, routeCache, logger, m)
	seeder := seed.NewSeeder(db,
		seed.WithBcryptCost(cfg.Auth.BcryptCost),
		seed.WithStatementTimeout(cfg.Seed.StatementTimeout),
		seed.WithLogger(logger.With("component", "seed")),
	)

	invoiceHandler := handler.NewInvoiceHandler(invoiceService, invoiceRepo, routeCache, m)
	dashboardHandler := handler.NewDashboardHandler(dashboardRepo, invoiceRepo, customerRepo)
	queryHandler := handler.NewQueryHandler(invoiceRepo)
	seedHandler := handler.NewSeedHandler(seeder, routeCache, invoices.InvoicesPath)
	authHandler := handler.NewAuthHandler(
		auth.NewPasswordAuthenticator(userRepo),
		jwtManager,
		cfg.Server.Mode == gin.ReleaseMode,
	)

	// Health check
	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(m.Handler()))

	r.GET("/query", queryHandler.List)
	r.GET("/seed", seedHandler.Seed)

	r.POST(handler.LoginPath, authHandler.Login)
	r.POST("/logout", authHandler.Logout)

	dashboard := r.Group(handler.DashboardPath, middleware.RequireSession(jwtManager, handler.LoginPath))
	dashboard.GET("", dashboardHandler.Overview)
	dashboard.GET("/customers", dashboardHandler.Customers)
	dashboard.GET("/export/invoices.xlsx", invoiceHandler.Export)

	// Invoice routes
	inv := dashboard.Group("/invoices")
	{
		inv.GET("", invoiceHandler.List)
		inv.POST("", invoiceHandler.Create)
		inv.GET("/:id", invoiceHandler.Get)
		inv.POST("/:id", invoiceHandler.Update)
		inv.DELETE("/:id", invoiceHandler.Delete)
		inv.POST("/:id/delete", invoiceHandler.Delete)
	}
}
