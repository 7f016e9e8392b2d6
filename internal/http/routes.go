package http

import (
	"todo_backend/internal/config"
	"todo_backend/internal/http/handlers"
	"todo_backend/internal/http/middleware"
	"todo_backend/internal/service"
	"todo_backend/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	redis "github.com/redis/go-redis/v9"
)

// NewRouter builds the engine with the standard middleware chain and all
// routes registered. rdb may be nil.
func NewRouter(store *sqlx.DB, hub *ws.Hub, cfg *config.Config, rdb *redis.Client) *gin.Engine {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog())
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(cfg.CORSOrigins))

	RegisterRoutes(r, store, hub, cfg, rdb)
	return r
}

func RegisterRoutes(r *gin.Engine, store *sqlx.DB, hub *ws.Hub, cfg *config.Config, rdb *redis.Client) {
	// a nil *ws.Hub must not become a non-nil interface
	var events service.EventPublisher
	if hub != nil {
		events = hub
	}
	h := handlers.NewHandler(store, events)
	status := handlers.NewStatusHandler(store, cfg.Version)

	r.GET("/", h.Root)
	r.GET("/test-db", h.TestDB)

	// Health checks (no rate limiting)
	r.GET("/health", status.Health)
	r.GET("/healthz", status.Liveness)
	r.GET("/readyz", status.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if hub != nil {
		r.GET("/ws", ws.HandleWS(hub, cfg.CORSOrigins))
	}

	limiter := middleware.NewRateLimiter(rdb, cfg.APIRateLimit, cfg.APIRateWindow)
	api := r.Group("/api")
	api.Use(limiter.Handler())

	todos := api.Group("/todos")
	todos.GET("", h.ListTodos)
	todos.POST("", h.CreateTodo)
	todos.GET("/:id", h.GetTodo)
	todos.PUT("/:id", h.UpdateTodo)
	todos.DELETE("/:id", h.DeleteTodo)
	todos.PATCH("/:id/complete", h.ToggleTodo)

	categories := api.Group("/categories")
	categories.GET("", h.ListCategories)
	categories.POST("", h.CreateCategory)
	categories.GET("/:id", h.GetCategory)
	categories.PUT("/:id", h.UpdateCategory)
	categories.DELETE("/:id", h.DeleteCategory)
}
