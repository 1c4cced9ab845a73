package router

import (
	"myBizHub/internal/rest"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupDuplicateRoutes(api *echo.Group, handler *rest.DuplicateHandler, authRequired echo.MiddlewareFunc) {
	api.POST("/suppliers/duplicates", handler.CheckSupplier, authRequired)
	api.POST("/customers/duplicates", handler.CheckCustomer, authRequired)
}

func SetupSearchRoutes(api *echo.Group, handler *rest.SearchHandler, authRequired echo.MiddlewareFunc) {
	search := api.Group("/search", authRequired)

	search.GET("/products", handler.SearchProducts)
	search.GET("/customers", handler.SearchCustomers)
}

func SetupUsageRoutes(api *echo.Group, handler *rest.UsageHandler, authRequired echo.MiddlewareFunc) {
	usage := api.Group("/usage", authRequired)

	usage.POST("/:scope", handler.Record)
	usage.GET("/:scope/recent", handler.Recent)
	usage.GET("/:scope/favorites", handler.Favorites)
}

func SetupOpsRoutes(e *echo.Echo, health *rest.HealthHandler) {
	e.GET("/healthz", health.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}
