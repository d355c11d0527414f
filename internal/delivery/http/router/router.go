// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"habitat/internal/delivery/http/middleware"
	"habitat/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	UserHandler    *handler.UserHandler
	MovieHandler   *handler.MovieHandler
	CatalogHandler *handler.CatalogHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	userHandler    *handler.UserHandler
	movieHandler   *handler.MovieHandler
	catalogHandler *handler.CatalogHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		userHandler:    params.UserHandler,
		movieHandler:   params.MovieHandler,
		catalogHandler: params.CatalogHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
// Identity resolution runs on every route; which routes REJECT anonymous or
// non-admin callers is decided here, not in the gate itself.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.Use(r.authMiddleware.Authenticate)

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")

	// Auth routes
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/logout", r.authHandler.Logout)
	}

	// Federated login routes; the provider redirects the browser back here.
	oauthGroup := e.Group("/oauth2")
	{
		oauthGroup.GET("/google", r.authHandler.GoogleLogin)
		oauthGroup.GET("/callback/google", r.authHandler.GoogleCallback)
	}

	// Account routes that require authentication
	userGroup := api.Group("/users")
	{
		userGroup.GET("/me", r.userHandler.Me, r.authMiddleware.RequireAuthenticated)
		userGroup.PUT("/me", r.userHandler.UpdateMe, r.authMiddleware.RequireAuthenticated)
	}

	// Catalog reads are public; mutations require the admin role.
	movieGroup := api.Group("/movies")
	{
		movieGroup.GET("", r.movieHandler.GetAll)
		movieGroup.GET("/:id", r.movieHandler.GetByID)
		movieGroup.GET("/genre/:name", r.movieHandler.GetByGenre)
		movieGroup.GET("/format/:name", r.movieHandler.GetByFormat)
		movieGroup.GET("/language/:name", r.movieHandler.GetByLanguage)
		movieGroup.GET("/:id/ratings", r.catalogHandler.ListRatings)

		movieGroup.POST("", r.movieHandler.Add, r.authMiddleware.RequireAdmin)
		movieGroup.PUT("/:id", r.movieHandler.Update, r.authMiddleware.RequireAdmin)
		movieGroup.DELETE("/:id", r.movieHandler.Delete, r.authMiddleware.RequireAdmin)
	}

	// Classification lookups
	api.GET("/genres", r.catalogHandler.ListGenres)
	api.GET("/formats", r.catalogHandler.ListFormats)
	api.GET("/languages", r.catalogHandler.ListLanguages)
}
