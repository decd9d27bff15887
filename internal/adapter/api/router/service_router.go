package router

import (
	"armabazar/internal/adapter/api/handler"
	"armabazar/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupServiceRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	serviceHandler := handler.GetServiceHandler()

	services := e.Group("/v1/services")
	services.GET("", serviceHandler.ListServices)
	services.GET("/:id", serviceHandler.GetService)
	services.GET("/:id/reviews", serviceHandler.ListReviews)

	authed := e.Group("/v1/services")
	authed.Use(authMiddleware.Authenticate)
	authed.POST("", serviceHandler.CreateService)
	authed.PUT("/:id", serviceHandler.UpdateService)
	authed.DELETE("/:id", serviceHandler.DeleteService)
	authed.POST("/:id/reviews", serviceHandler.AddReview)
	authed.DELETE("/:id/reviews/:reviewId", serviceHandler.DeleteReview)
}
