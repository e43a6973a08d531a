// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"ratinity/internal/delivery/http/middleware"
	"ratinity/internal/delivery/http/router/handler"
	"ratinity/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler      *handler.AuthHandler
	AccountHandler   *handler.AccountHandler
	StoreHandler     *handler.StoreHandler
	RatingHandler    *handler.RatingHandler
	DashboardHandler *handler.DashboardHandler
	AuthMiddleware   *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler      *handler.AuthHandler
	accountHandler   *handler.AccountHandler
	storeHandler     *handler.StoreHandler
	ratingHandler    *handler.RatingHandler
	dashboardHandler *handler.DashboardHandler
	authMiddleware   *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:      params.AuthHandler,
		accountHandler:   params.AccountHandler,
		storeHandler:     params.StoreHandler,
		ratingHandler:    params.RatingHandler,
		dashboardHandler: params.DashboardHandler,
		authMiddleware:   params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/verify", r.authHandler.VerifyCredentials)
	}

	// API v1 routes
	apiV1 := e.Group("/api/v1")
	apiV1.Use(r.authMiddleware.Authenticate) // All API v1 routes require authentication

	// Account self-service routes
	apiV1.PUT("/account/password", r.authHandler.ChangePassword)

	// Store routes
	storesGroup := apiV1.Group("/stores")
	{
		storesGroup.GET("", r.storeHandler.ListStores)
		storesGroup.GET("/:id", r.storeHandler.GetStore)
		storesGroup.GET("/:id/qr", r.storeHandler.GetStoreQR)
		storesGroup.POST("/qr/resolve", r.storeHandler.ResolveStoreQR)
		storesGroup.GET("/:id/ratings", r.ratingHandler.ListStoreRatings)

		// Store creation is reserved for administrators
		storesGroup.POST("", r.storeHandler.CreateStore, r.authMiddleware.RequireRole(entity.RoleAdmin))

		// Rating submission is reserved for normal users
		storesGroup.POST("/:id/ratings", r.ratingHandler.SubmitRating, r.authMiddleware.RequireRole(entity.RoleNormalUser))
	}

	// Rating history routes
	apiV1.GET("/ratings/me", r.ratingHandler.ListMyRatings)

	// Administrator routes
	adminGroup := apiV1.Group("/admin")
	adminGroup.Use(r.authMiddleware.RequireRole(entity.RoleAdmin))
	{
		adminGroup.GET("/accounts", r.accountHandler.ListAccounts)
		adminGroup.POST("/accounts", r.accountHandler.CreateAccount)
		adminGroup.GET("/accounts/:id", r.accountHandler.GetAccount)
		adminGroup.GET("/stats", r.dashboardHandler.AdminStats)
	}

	// Store owner routes
	ownerGroup := apiV1.Group("/owner")
	ownerGroup.Use(r.authMiddleware.RequireRole(entity.RoleStoreOwner))
	{
		ownerGroup.GET("/dashboard", r.dashboardHandler.OwnerDashboard)
	}
}
