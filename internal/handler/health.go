package handler

import (
	"database/sql"
	"net/http"
	"runtime"
	"time"

	"github.com/cleberrangel/studyplan-api/internal/database"
	"github.com/cleberrangel/studyplan-api/internal/websocket"
	"github.com/gin-gonic/gin"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	db        *sql.DB
	wsHub     *websocket.Hub
	version   string
	startTime time.Time
}

// NewHealthHandler creates a new health handler. db and wsHub may be nil.
func NewHealthHandler(db *sql.DB, wsHub *websocket.Hub, version string) *HealthHandler {
	return &HealthHandler{
		db:        db,
		wsHub:     wsHub,
		version:   version,
		startTime: time.Now(),
	}
}

// HealthCheck returns service status including optional components
// @Summary Health check
// @Description Returns service status, uptime and component details
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	status := "ok"
	statusCode := http.StatusOK

	components := gin.H{}

	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			status = "degraded"
			statusCode = http.StatusServiceUnavailable
			components["database"] = gin.H{"status": "unhealthy", "error": err.Error()}
		} else {
			components["database"] = gin.H{
				"status": "healthy",
				"pool":   database.GetPoolStats(h.db),
			}
		}
	}

	if h.wsHub != nil {
		components["websocket"] = gin.H{
			"status":      "healthy",
			"connections": h.wsHub.GetConnectionCount(),
		}
	}

	c.JSON(statusCode, gin.H{
		"status":     status,
		"version":    h.version,
		"uptime":     time.Since(h.startTime).String(),
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"components": components,
	})
}

// MemoryInfo returns current memory usage
// @Summary Memory usage
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /debug/memory [get]
func (h *HealthHandler) MemoryInfo(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	c.JSON(http.StatusOK, gin.H{
		"heap_alloc_mb":  float64(m.HeapAlloc) / 1024 / 1024,
		"heap_in_use_mb": float64(m.HeapInuse) / 1024 / 1024,
		"sys_mb":         float64(m.Sys) / 1024 / 1024,
		"num_gc":         m.NumGC,
		"goroutines":     runtime.NumGoroutine(),
	})
}
