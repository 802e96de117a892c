package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/taskify/taskify/internal/models"
)

// HealthHandler reports service and database health.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Check returns the health status of the service and its database.
func (h *HealthHandler) Check(c *gin.Context) {
	overall := "healthy"

	dbStatus := "ok"
	sqlDB, err := models.GetDB().DB()
	if err != nil {
		dbStatus = "error: " + err.Error()
		overall = "unhealthy"
	} else if err := sqlDB.Ping(); err != nil {
		dbStatus = "error: " + err.Error()
		overall = "unhealthy"
	}

	status := 200
	if overall != "healthy" {
		status = 503
	}

	c.JSON(status, gin.H{
		"status":   overall,
		"service":  "taskify",
		"database": dbStatus,
	})
}
