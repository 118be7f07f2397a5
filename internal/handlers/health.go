package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func Root(c *gin.Context) {
	c.String(http.StatusOK, "Task App API is alive and well")
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"message":   "taskhive is running",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
