package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (s *Server) newRouter() *gin.Engine {
	router := gin.New()

	router.Use(s.recoveryMiddleware())
	router.Use(requestIDMiddleware())
	router.Use(s.loggingMiddleware())
	router.Use(s.metricsMiddleware())
	router.Use(corsMiddleware())

	router.GET("/health", healthCheck)
	router.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	api := router.Group("/api")
	{
		api.GET("/status", s.status)
		api.GET("/projects", s.listProjects)
		api.GET("/posts", s.listPosts)
		api.POST("/chat", s.chat)
		api.POST("/admin/login", s.login)
	}

	admin := api.Group("/admin", s.requireAdmin)
	{
		admin.POST("/logout", s.logout)

		admin.GET("/config", s.getConfig)
		admin.PUT("/config", s.putConfig)
		admin.DELETE("/config", s.deleteConfig)

		admin.PUT("/projects", s.saveProject)
		admin.DELETE("/projects/:id", s.deleteProject)

		admin.PUT("/posts", s.savePost)
		admin.DELETE("/posts/:id", s.deletePost)
		admin.POST("/posts/generate", s.generatePost)

		admin.POST("/uploads", s.presignUpload)
	}

	return router
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "neoportfolio",
	})
}
