package routes

import (
	"github.com/labstack/echo/v4"

	"gameshelf/handlers"
)

// RegisterAuthRoutes wires the auth service endpoints.
func RegisterAuthRoutes(e *echo.Echo, h *handlers.AuthHandler, authRequired echo.MiddlewareFunc) {
	registerHealthRoutes(e, "auth-service")

	g := e.Group("/api/v1/auth")
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.GET("/me", h.Me, authRequired)
}

// RegisterCollectionRoutes wires the collection service endpoints. Every
// route is owner-scoped behind the bearer middleware.
func RegisterCollectionRoutes(e *echo.Echo, h *handlers.CollectionHandler, authRequired echo.MiddlewareFunc) {
	registerHealthRoutes(e, "collection-service")

	g := e.Group("/api/v1/collection", authRequired)
	g.GET("", h.ListItems)
	g.POST("", h.AddItem)
	g.GET("/:id", h.GetItem)
	g.PATCH("/:id", h.UpdateItem)
	g.DELETE("/:id", h.DeleteItem)
}

// RegisterStatsRoutes wires the stats read API.
func RegisterStatsRoutes(e *echo.Echo, h *handlers.StatsHandler, authRequired echo.MiddlewareFunc) {
	registerHealthRoutes(e, "stats-service")

	g := e.Group("/api/v1/stats", authRequired)
	g.GET("/events", h.MyEvents)
}

func registerHealthRoutes(e *echo.Echo, service string) {
	e.GET("/health", handlers.Health(service))
	e.GET("/health/ready", handlers.Readiness)
	e.GET("/health/live", handlers.Liveness)
}
