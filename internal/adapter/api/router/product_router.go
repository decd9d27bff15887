package router

import (
	"armabazar/internal/adapter/api/handler"
	"armabazar/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupProductRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	productHandler := handler.GetProductHandler()

	products := e.Group("/v1/products")
	products.GET("", productHandler.ListProducts)
	products.GET("/:id", productHandler.GetProduct)

	authed := e.Group("/v1/products")
	authed.Use(authMiddleware.Authenticate)
	authed.POST("", productHandler.CreateProduct)
	authed.PUT("/:id", productHandler.UpdateProduct)
	authed.DELETE("/:id", productHandler.DeleteProduct)
	authed.PATCH("/:id/toggle-active", productHandler.ToggleActive)
	authed.PATCH("/:id/mark-sold", productHandler.MarkSold)

	myProducts := e.Group("/v1/my-products")
	myProducts.Use(authMiddleware.Authenticate)
	myProducts.GET("", productHandler.ListMyProducts)
}
