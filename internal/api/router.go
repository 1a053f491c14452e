package api

import (
	"context"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/time/rate"

	"github.com/tastecraft/menu-studio/internal/api/handler"
	"github.com/tastecraft/menu-studio/internal/api/middleware"
	"github.com/tastecraft/menu-studio/internal/core/domain"
	"github.com/tastecraft/menu-studio/internal/core/service"
	"github.com/tastecraft/menu-studio/internal/core/token"
	"github.com/tastecraft/menu-studio/internal/infrastructure/config"
	mongodb "github.com/tastecraft/menu-studio/internal/infrastructure/db/mongo"
	redisdb "github.com/tastecraft/menu-studio/internal/infrastructure/db/redis"
	"github.com/tastecraft/menu-studio/internal/infrastructure/queue"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// ctx bounds the lifetime of the background lifecycle workers.
func NewRouter(ctx context.Context, db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("menu_studio"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	menuRepo := mongodb.NewMenuRepository(db)
	eventRepo := mongodb.NewLifecycleRepository(db)

	revocations := redisdb.NewRevocationStore(rdb)
	authority := token.NewAuthority(cfg.JWTSecret, cfg.TokenTTL, revocations)

	lifecycle := service.NewLifecycleService(eventRepo, log)
	dispatcher := queue.NewDispatcher(0, lifecycle, log)
	dispatcher.Start(ctx)

	userService := service.NewUserService(userRepo, authority, log)
	menuService := service.NewMenuService(menuRepo, userRepo, dispatcher, log)

	authHandler := handler.NewAuthHandler(userService)
	menuHandler := handler.NewMenuHandler(menuService)

	authMW := middleware.Auth(authority)
	staffMW := middleware.RBAC(userRepo, domain.RoleAdmin, domain.RoleManager)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register, rateLimit(5))
	e.POST("/auth/login", authHandler.Login, rateLimit(10))

	me := e.Group("/auth", authMW)
	me.POST("/logout", authHandler.Logout)
	me.GET("/me", authHandler.GetSelf)
	me.PATCH("/me/email", authHandler.UpdateEmail)
	me.PATCH("/me/password", authHandler.UpdatePassword)
	me.DELETE("/me", authHandler.DeleteAccount)

	// --- Menu routes ---
	menus := e.Group("/api/menus", authMW)
	menus.POST("", menuHandler.Create)
	menus.GET("", menuHandler.List)
	menus.GET("/:id", menuHandler.Get)
	menus.PUT("/:id", menuHandler.Update)
	menus.POST("/:id/submit", menuHandler.Submit)
	menus.DELETE("/:id", menuHandler.Delete)

	admin := e.Group("/api/admin", authMW, staffMW)
	admin.GET("/menus", menuHandler.ListAll)

	// --- Observability (no auth required) ---
	e.GET("/metrics", echoprometheus.NewHandler())

	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	return e
}

// rateLimit returns a per-client in-memory rate limiter for the
// credential endpoints, r requests per second sustained.
func rateLimit(r rate.Limit) echo.MiddlewareFunc {
	return echomiddleware.RateLimiter(echomiddleware.NewRateLimiterMemoryStore(r))
}
