package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// registerRoutes sets up all API routes on the gin router.
func registerRoutes(router *gin.Engine, db *gorm.DB) {
	router.GET("/", handleRoot())
	router.GET("/api/health", handleHealth())

	router.GET("/api/logs", handleListLogs(db))
	router.POST("/api/logs", handleCreateLog(db))
	router.GET("/api/logs/:id", handleGetLog(db))
	router.PUT("/api/logs/:id", handleUpdateLog(db))
	router.DELETE("/api/logs/:id", handleDeleteLog(db))
	router.GET("/api/logs/:id/image", handleGetImage(db))

	router.GET("/api/stats", handleStats(db))
}

func handleRoot() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Climbing Log API is running",
			"health":  "/api/health",
		})
	}
}

func handleHealth() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
