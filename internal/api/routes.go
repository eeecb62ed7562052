package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes configures the service routes. Health routes are registered
// by the httpserver package.
func SetupRoutes(router *gin.Engine, handler *Handler) {
	api := router.Group("/api")
	api.POST("/indexing", handler.IndexingWebhook)
	api.GET("/indexing", handler.IndexingTest)
	api.GET("/posts", handler.ListPosts)
	api.GET("/categories", handler.ListCategories)

	router.GET("/news-sitemap.xml", handler.NewsSitemap)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
