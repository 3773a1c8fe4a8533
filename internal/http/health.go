package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/virtualcode/readingvault/internal/database"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

// SchedulerStatus is what the health endpoint needs to know about the
// overdue-lending scheduler without depending on the scheduler package.
type SchedulerStatus interface {
	IsRunning() bool
	GetNextRunTime() *time.Time
}

type HealthController struct {
	db        *database.Database
	scheduler SchedulerStatus
	version   string
}

func NewHealthController(db *database.Database, scheduler SchedulerStatus, version string) *HealthController {
	return &HealthController{
		db:        db,
		scheduler: scheduler,
		version:   version,
	}
}

func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	// Check database connectivity
	if h.db != nil {
		sqlDB, err := h.db.DB.DB()
		if err != nil {
			checks["database"] = "error: " + err.Error()
			status = "unhealthy"
		} else if err := sqlDB.Ping(); err != nil {
			checks["database"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks["database"] = "ok"
		}
	} else {
		checks["database"] = "not configured"
	}

	// An idle scheduler is a valid configuration, not a failure.
	if h.scheduler != nil {
		if h.scheduler.IsRunning() {
			checks["overdue_check"] = "running"
			if next := h.scheduler.GetNextRunTime(); next != nil {
				checks["overdue_check"] = "running, next check " + next.Format(time.RFC3339)
			}
		} else {
			checks["overdue_check"] = "idle"
		}
	} else {
		checks["overdue_check"] = "not configured"
	}

	health := HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}
