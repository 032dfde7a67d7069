package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/procure/backend/internal/infrastructure/persistence"
)

// SystemHandler handles health and liveness endpoints
type SystemHandler struct {
	BaseHandler
	db      *persistence.Database
	started time.Time
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(db *persistence.Database) *SystemHandler {
	return &SystemHandler{db: db, started: time.Now()}
}

// RegisterRoutes registers system routes on the API group
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
}

// Health reports process and database health. Returns 503 when the
// database is unreachable so load balancers stop routing here.
func (h *SystemHandler) Health(c *gin.Context) {
	status := "healthy"
	dbStatus := "up"
	code := http.StatusOK

	if h.db == nil || h.db.Ping() != nil {
		status = "degraded"
		dbStatus = "down"
		code = http.StatusServiceUnavailable
	}

	body := gin.H{
		"status":   status,
		"database": dbStatus,
		"uptime":   time.Since(h.started).Round(time.Second).String(),
	}
	if h.db != nil {
		if stats, err := h.db.Stats(); err == nil {
			body["connections"] = gin.H{
				"open":   stats.OpenConnections,
				"in_use": stats.InUse,
				"idle":   stats.Idle,
			}
		}
	}
	c.JSON(code, body)
}
