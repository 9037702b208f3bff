package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/sweetshop/inventory-system/docs"
	"github.com/sweetshop/inventory-system/internal/api/handler"
	"github.com/sweetshop/inventory-system/internal/api/middleware"
	"github.com/sweetshop/inventory-system/internal/core/domain"
	"github.com/sweetshop/inventory-system/internal/core/service"
	mongodb "github.com/sweetshop/inventory-system/internal/infrastructure/db/mongo"
	redisdb "github.com/sweetshop/inventory-system/internal/infrastructure/db/redis"
	"github.com/sweetshop/inventory-system/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("sweetshop"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	sweetRepo := mongodb.NewSweetRepository(db)
	throttle := redisdb.NewLoginThrottle(rdb)

	authService := service.NewAuthService(userRepo, throttle, jwtSecret, 24*time.Hour, log)
	sweetService := service.NewSweetService(sweetRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	sweetHandler := handler.NewSweetHandler(sweetService)

	authenticated := middleware.Auth(jwtSecret)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// --- Inventory routes ---
	sweets := e.Group("/api/sweets", authenticated)
	sweets.GET("", sweetHandler.List)
	sweets.GET("/search", sweetHandler.Search)
	sweets.GET("/:id", sweetHandler.Get)
	sweets.POST("", sweetHandler.Create, adminOnly)
	sweets.PUT("/:id", sweetHandler.Update, adminOnly)
	sweets.DELETE("/:id", sweetHandler.Delete, adminOnly)
	sweets.POST("/:id/purchase", sweetHandler.Purchase)
	sweets.POST("/:id/restock", sweetHandler.Restock, adminOnly)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
