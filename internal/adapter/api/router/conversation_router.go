package router

import (
	"armabazar/internal/adapter/api/handler"
	"armabazar/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupConversationRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	conversationHandler := handler.GetConversationHandler()

	conversations := e.Group("/v1/conversations")
	conversations.Use(authMiddleware.Authenticate)
	conversations.POST("", conversationHandler.CreateConversation)
	conversations.GET("", conversationHandler.ListConversations)
	conversations.PATCH("/:id", conversationHandler.UpdateConversation)
	conversations.POST("/:id/messages", conversationHandler.SendMessage)
	conversations.GET("/:id/messages", conversationHandler.ListMessages)
}
