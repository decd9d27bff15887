package router

import (
	"armabazar/internal/adapter/api/handler"
	"armabazar/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupAdminRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	adminHandler := handler.GetAdminHandler()

	admin := e.Group("/v1/admin")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(adminMiddleware.AdminOnly)

	admin.GET("/stats", adminHandler.GetStats)

	admin.GET("/users", adminHandler.ListUsers)
	admin.PATCH("/users/:id/toggle-ban", adminHandler.ToggleUserBan)
	admin.PATCH("/users/:id/toggle-admin", adminHandler.ToggleUserAdmin)

	admin.GET("/products", adminHandler.ListProducts)
	admin.PATCH("/products/:id/toggle-active", adminHandler.ToggleProductActive)
	admin.DELETE("/products/:id", adminHandler.DeleteProduct)

	admin.GET("/services", adminHandler.ListServices)
	admin.PATCH("/services/:id/approval", adminHandler.SetServiceApproval)
	admin.DELETE("/services/:id", adminHandler.DeleteService)
	admin.DELETE("/services/:id/reviews/:reviewId", adminHandler.DeleteServiceReview)

	admin.GET("/conversations", adminHandler.ListConversations)

	admin.GET("/reports", adminHandler.ListReports)
	admin.PATCH("/reports/:id/status", adminHandler.UpdateReportStatus)
	admin.DELETE("/reports/:id", adminHandler.DeleteReport)
}
