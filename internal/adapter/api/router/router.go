package router

import (
	"armabazar/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware, environment string) {
	SetupProductRouter(e, authMiddleware)
	SetupConversationRouter(e, authMiddleware)
	SetupServiceRouter(e, authMiddleware)
	SetupReportRouter(e, authMiddleware)
	SetupAdminRouter(e, authMiddleware, adminMiddleware)
	SetupHealthRouter(e)
	SetupDevRouter(e, environment)
}
