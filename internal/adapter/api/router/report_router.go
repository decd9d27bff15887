package router

import (
	"armabazar/internal/adapter/api/handler"
	"armabazar/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupReportRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	reportHandler := handler.GetReportHandler()

	// Reports accept anonymous submissions, so auth is optional here.
	reports := e.Group("/v1/reports")
	reports.Use(authMiddleware.OptionalAuthenticate)
	reports.POST("", reportHandler.CreateReport)
}
