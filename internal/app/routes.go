package app

import (
	"tasktracker/internal/auth"
	"tasktracker/internal/cache"
	"tasktracker/internal/config"
	"tasktracker/internal/handlers"
	"tasktracker/internal/recurrence"
	"tasktracker/internal/repo"
	"tasktracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
)

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, db *pgxpool.Pool, rdb *redis.Client) {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(302, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
		ginSwagger.PersistAuthorization(true),
	))

	api := r.Group("/api/v1")

	sessionStore := auth.NewStore(rdb, cfg.Redis.SessionTTL.Duration())
	userRepo := repo.NewPGUserRepo(db)
	userSvc := service.NewUserService(userRepo)
	authHandler := handlers.NewAuthHandler(sessionStore, userSvc)
	registerAuthRoutes(api, authHandler)

	protected := api.Group("", auth.RequireSession(sessionStore))
	protected.GET("/me", authHandler.Me)
	protected.PATCH("/me", authHandler.UpdateMe)

	clock := recurrence.SystemClock{}

	taskRepo := repo.NewPGTaskRepo(db)
	taskCache := cache.NewTaskCache(rdb, cfg.Redis.CacheTTL.Duration())
	taskSvc := service.NewTaskService(taskRepo, taskCache)
	taskHandler := handlers.NewTaskHandler(taskSvc)
	calendarHandler := handlers.NewCalendarHandler(taskSvc)
	registerTaskRoutes(protected, taskHandler, calendarHandler)

	goalRepo := repo.NewPGGoalRepo(db)
	goalSvc := service.NewGoalService(goalRepo)
	registerGoalRoutes(protected, handlers.NewGoalHandler(goalSvc))

	habitRepo := repo.NewPGHabitRepo(db)
	habitSvc := service.NewHabitService(habitRepo, clock)
	registerHabitRoutes(protected, handlers.NewHabitHandler(habitSvc))

	admin := protected.Group("/admin", auth.RequireAdmin(userSvc))
	admin.GET("/tasks", taskHandler.AdminList)
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "Task Tracker API",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"docs":    "/swagger/index.html",
			"spec":    "/swagger-doc.json",
			"health":  "/health",
			"api":     "/api/v1",
		})
	}
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.Data(200, "application/json; charset=utf-8", []byte(doc))
	}
}

func registerAuthRoutes(api *gin.RouterGroup, h *handlers.AuthHandler) {
	api.POST("/auth/login", h.Login)
	api.POST("/auth/register", h.Register)
	api.POST("/auth/logout", h.Logout)
}

func registerTaskRoutes(api *gin.RouterGroup, h *handlers.TaskHandler, cal *handlers.CalendarHandler) {
	api.POST("/tasks", h.Create)
	api.GET("/tasks", h.List)
	api.GET("/tasks/counts", h.Counts)
	api.GET("/tasks/:id", h.GetByID)
	api.PATCH("/tasks/:id", h.Update)
	api.DELETE("/tasks/:id", h.Delete)
	api.POST("/tasks/:id/status", h.SetStatus)
	api.POST("/tasks/:id/share", h.SetShared)

	api.GET("/calendar", cal.Range)
	api.GET("/calendar/:date", cal.ByDate)
}

func registerGoalRoutes(api *gin.RouterGroup, h *handlers.GoalHandler) {
	api.POST("/goals", h.Create)
	api.GET("/goals", h.List)
	api.GET("/goals/:id", h.GetByID)
	api.PATCH("/goals/:id", h.Update)
	api.DELETE("/goals/:id", h.Delete)
	api.POST("/goals/:id/complete", h.SetCompleted)
}

func registerHabitRoutes(api *gin.RouterGroup, h *handlers.HabitHandler) {
	api.POST("/habits", h.Create)
	api.GET("/habits", h.List)
	api.DELETE("/habits/:id", h.Delete)
	api.POST("/habits/:id/entries/toggle", h.ToggleEntry)
	api.GET("/habits/:id/entries", h.Entries)
}
