package server

import (
	"github.com/labstack/echo/v4"

	"example.com/travomate/backend/internal/handlers"
)

func registerRoutes(
	e *echo.Echo,
	chatHandler *handlers.ChatHandler,
	statsHandler *handlers.StatsHandler,
	eventsHandler *handlers.EventsHandler,
	sessionMiddleware echo.MiddlewareFunc,
	aiRateLimiter echo.MiddlewareFunc,
) {
	e.GET("/health", handlers.Health)

	api := e.Group("/api/v1")

	api.POST("/sessions", chatHandler.CreateSession)

	sessions := api.Group("/sessions", sessionMiddleware)
	sessions.GET("/:id", chatHandler.GetTranscript)
	sessions.POST("/:id/messages", chatHandler.SubmitMessage, aiRateLimiter)
	sessions.POST("/:id/budget", chatHandler.SubmitManualBudget)
	sessions.POST("/:id/reset", chatHandler.ResetSession)
	sessions.GET("/:id/breakdown", chatHandler.GetLastBreakdown)
	sessions.GET("/:id/breakdowns", chatHandler.GetBreakdownHistory)
	sessions.GET("/:id/events", eventsHandler.Stream)

	stats := api.Group("/stats")
	stats.GET("/overview", statsHandler.Overview)
	stats.GET("/category-totals", statsHandler.CategoryTotals)
}
