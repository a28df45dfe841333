package handler

import (
	"merchant-pos/internal/adapter/http/middleware"
	"merchant-pos/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	SessionSvc     ports.SessionService
	SaleSvc        ports.SaleService
	HistorySvc     ports.HistoryService
	VaultSvc       ports.VaultService
	TokenSvc       ports.TokenService
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	authHandler := NewAuthHandler(deps.SessionSvc)
	merchantHandler := NewMerchantHandler(deps.SessionSvc)
	saleHandler := NewSaleHandler(deps.SaleSvc)
	historyHandler := NewHistoryHandler(deps.HistorySvc, deps.SessionSvc)
	vaultHandler := NewVaultHandler(deps.VaultSvc)

	v1 := r.Group("/api/v1")

	// --- Public routes (no session token yet) ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
	}

	// --- Authenticated routes ---
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)

	// Lock management stays reachable while locked; everything else is
	// gated behind RequireUnlocked.
	session := v1.Group("/auth", jwtAuth)
	{
		session.POST("/logout", authHandler.Logout)
		session.POST("/lock", authHandler.Lock)
		session.POST("/unlock", authHandler.Unlock)
		session.PUT("/passcode", authHandler.SetPasscode)
	}

	unlocked := middleware.RequireUnlocked(deps.SessionSvc)

	merchant := v1.Group("/merchant", jwtAuth, unlocked)
	{
		merchant.GET("/profile", merchantHandler.GetProfile)
		merchant.POST("/profile/refresh", merchantHandler.RefreshProfile)
	}

	settings := v1.Group("/settings", jwtAuth, unlocked)
	{
		settings.GET("", merchantHandler.GetSettings)
		settings.PUT("", merchantHandler.UpdateSettings)
	}

	sales := v1.Group("/sales", jwtAuth, unlocked)
	{
		sales.POST("", saleHandler.Create)
		sales.PUT("/:id/amount", saleHandler.SetAmount)
		sales.PUT("/:id/card", saleHandler.SetCard)
		sales.PUT("/:id/customer", saleHandler.SetCustomer)
		sales.POST("/:id/back", saleHandler.Back)
		sales.POST("/:id/submit", saleHandler.Submit)
	}

	transactions := v1.Group("/transactions", jwtAuth, unlocked)
	{
		transactions.GET("", historyHandler.ListTransactions)
	}

	dashboard := v1.Group("/dashboard", jwtAuth, unlocked)
	{
		dashboard.GET("/daily-total", historyHandler.DailyTotal)
	}

	vault := v1.Group("/vault", jwtAuth, unlocked)
	{
		vault.GET("/customers", vaultHandler.ListCustomers)
	}

	return r
}
