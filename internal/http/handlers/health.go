package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

// requiredTables must exist before the API can serve todos.
var requiredTables = []string{"categories", "todos"}

// StatusHandler serves /health, /healthz and /readyz.
type StatusHandler struct {
	store   *sqlx.DB
	started time.Time
	version string
}

func NewStatusHandler(store *sqlx.DB, version string) *StatusHandler {
	return &StatusHandler{store: store, started: time.Now(), version: version}
}

// ReadyReport is the /readyz body. Rows holds a row count per table and is
// only filled when every table answered.
type ReadyReport struct {
	Ready   bool             `json:"ready"`
	Version string           `json:"version,omitempty"`
	Driver  string           `json:"driver"`
	Uptime  string           `json:"uptime"`
	Rows    map[string]int64 `json:"rows,omitempty"`
	Error   string           `json:"error,omitempty"`
}

// Liveness never touches the store.
func (h *StatusHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness answers 503 until the store is reachable and migrated.
func (h *StatusHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	report := ReadyReport{
		Version: h.version,
		Driver:  h.store.DriverName(),
		Uptime:  time.Since(h.started).Round(time.Second).String(),
	}
	rows, err := h.countRows(ctx)
	if err != nil {
		report.Error = err.Error()
		c.JSON(http.StatusServiceUnavailable, report)
		return
	}
	report.Ready = true
	report.Rows = rows
	c.JSON(http.StatusOK, report)
}

// Health is the lightweight check used by the container healthcheck.
func (h *StatusHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := h.store.PingContext(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": "database unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": h.version})
}

func (h *StatusHandler) countRows(ctx context.Context) (map[string]int64, error) {
	rows := make(map[string]int64, len(requiredTables))
	for _, table := range requiredTables {
		var n int64
		if err := h.store.GetContext(ctx, &n, "SELECT COUNT(*) FROM "+table); err != nil {
			return nil, err
		}
		rows[table] = n
	}
	return rows, nil
}
