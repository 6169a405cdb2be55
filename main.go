package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gtdflow/internal/cache"
	"gtdflow/internal/config"
	"gtdflow/internal/database"
	"gtdflow/internal/handlers"
	"gtdflow/internal/health"
	"gtdflow/internal/middleware"
	"gtdflow/internal/monitoring"
	"gtdflow/internal/repositories"
	"gtdflow/internal/version"

	"gtdflow/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// Application holds all application dependencies and state.
type Application struct {
	Config  *config.Config
	DB      *gorm.DB
	Pool    *database.DatabasePool
	Cache   cache.Cache
	Redis   *redis.Client
	Router  *gin.Engine
	Server  *http.Server
	Tracker *health.Tracker
	Version version.Info

	// Services
	TaskService     services.TaskService
	ProjectService  services.ProjectService
	NoteService     services.NoteService
	JournalService  services.JournalService
	TagService      services.TagService
	SearchService   services.SearchService
	SettingsService services.SettingsService
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	app, err := initializeApplication(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	app.setupRoutes()
	app.startServer()
}

func initializeApplication(cfg *config.Config) (*Application, error) {
	app := &Application{
		Config:  cfg,
		Tracker: health.NewTracker(),
		Version: version.Load(version.DefaultFile),
	}

	log.Printf("Initializing gtdflow backend %s (environment: %s)", app.Version.Version, cfg.Server.Environment)

	app.Tracker.SetPhase(health.PhaseDBConnecting)

	pool, err := database.NewDatabasePool(database.PoolConfigFromApp(cfg))
	if err != nil {
		app.Tracker.SetPhase(health.PhaseUnhealthy)
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	app.Pool = pool
	app.DB = pool.DB

	log.Println("Database connected and configured")

	app.Tracker.SetPhase(health.PhaseMigrating)

	migrationConfig := &repositories.MigrationConfig{
		MigrationsPath: "file://migrations",
		DBName:         cfg.Database.Name,
		MaxRetries:     3,
		RetryDelay:     2 * time.Second,
	}
	if err := repositories.RunMigrations(app.DB, migrationConfig); err != nil {
		app.Tracker.SetPhase(health.PhaseUnhealthy)
		return nil, fmt.Errorf("database migration failed: %w", err)
	}

	app.Tracker.SetPhase(health.PhaseCacheConnecting)

	redisClient := redis.NewClient(&redis.Options{
		Addr:         cfg.GetRedisAddr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		MaxRetries:   cfg.Redis.MaxRetries,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Printf("Redis unavailable: %v (continuing with memory cache only)", err)
		redisClient.Close()
		redisClient = nil
	} else {
		app.Redis = redisClient
		log.Println("Redis connected")
	}

	if redisClient != nil {
		redisCache := cache.NewRedisCacheWithClient(redisClient)
		app.Cache = cache.NewMultiLevelCache(redisCache)
		log.Println("Multi-level cache initialized (Memory L1 + Redis L2)")
	} else {
		app.Cache = cache.NewMultiLevelCache(nil)
		log.Println("Memory cache initialized (Redis fallback mode)")
	}

	// Services
	app.ProjectService = services.NewProjectService()
	app.NoteService = services.NewNoteService()
	app.JournalService = services.NewJournalService()
	app.TagService = services.NewTagService()
	app.SearchService = services.NewSearchService()
	app.SettingsService = services.NewSettingsService()

	taskServiceImpl := services.NewTaskService()
	if multiCache, ok := app.Cache.(*cache.MultiLevelCache); ok {
		app.TaskService = services.NewCachedTaskService(taskServiceImpl, multiCache)
		log.Println("Cached task service initialized")
	} else {
		app.TaskService = taskServiceImpl
		log.Println("Task service initialized")
	}

	log.Println("All services initialized")
	app.Tracker.SetPhase(health.PhaseReady)

	return app, nil
}

func (app *Application) setupRoutes() {
	r := gin.New()

	// Global middleware stack (order matters!)
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(monitoring.MetricsMiddleware())
	r.Use(middleware.RecoveryWithLog())
	r.Use(middleware.SecureHeader())

	// Redis-backed limiting when available so limits hold across
	// instances; per-IP token buckets otherwise.
	if app.Redis != nil {
		limiter := middleware.NewDistributedRateLimiter(app.Redis)
		r.Use(limiter.CreateMiddleware("api", &middleware.RateLimit{
			Rate:    app.Config.RateLimit.RequestsPerMin,
			Window:  time.Minute,
			KeyFunc: middleware.IPKeyFunc,
		}))
	} else {
		rateLimit := rate.Limit(float64(app.Config.RateLimit.RequestsPerMin) / 60.0)
		r.Use(middleware.RateLimiter(rateLimit, app.Config.RateLimit.BurstSize))
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Ops endpoints (no auth required)
	var cacheHealth func() error
	if app.Cache != nil {
		cacheHealth = app.Cache.Health
	}
	r.GET("/health", health.LivenessHandler("gtdflow-backend"))
	r.GET("/ready", health.ReadinessHandler(app.Tracker, app.DB, cacheHealth))
	r.GET("/version", version.Handler(app.Version))
	r.GET("/metrics", monitoring.MetricsHandler())

	v1 := r.Group("/api/v1")

	protected := v1.Group("")
	protected.Use(middleware.SessionMiddleware(middleware.SessionConfig{
		Secret: app.Config.Auth.JWTSecret,
		Issuer: app.Config.Auth.Issuer,
	}))
	{
		taskHandler := handlers.NewTaskHandler(app.DB, app.TaskService)
		taskRoutes := protected.Group("/tasks")
		{
			taskRoutes.POST("", taskHandler.CreateTask)
			taskRoutes.GET("", taskHandler.GetTasks)
			taskRoutes.GET("/stats", taskHandler.GetStats)
			taskRoutes.GET("/:id", taskHandler.GetTaskByID)
			taskRoutes.PUT("/:id", taskHandler.UpdateTask)
			taskRoutes.DELETE("/:id", taskHandler.DeleteTask)
			taskRoutes.PATCH("/:id/status", taskHandler.UpdateStatus)
			taskRoutes.POST("/:id/timer/start", taskHandler.StartTimer)
			taskRoutes.POST("/:id/timer/pause", taskHandler.PauseTimer)
			taskRoutes.PUT("/:id/recurring", taskHandler.SetRecurring)
			taskRoutes.GET("/:id/feedback", taskHandler.GetFeedback)
			taskRoutes.PUT("/:id/feedback", taskHandler.UpdateFeedback)
		}

		projectHandler := handlers.NewProjectHandler(app.DB, app.ProjectService)
		projectRoutes := protected.Group("/projects")
		{
			projectRoutes.POST("", projectHandler.CreateProject)
			projectRoutes.GET("", projectHandler.GetProjects)
			projectRoutes.GET("/:id", projectHandler.GetProjectByID)
			projectRoutes.PUT("/:id", projectHandler.UpdateProject)
			projectRoutes.POST("/:id/archive", projectHandler.ArchiveProject)
			projectRoutes.DELETE("/:id", projectHandler.DeleteProject)
		}

		noteHandler := handlers.NewNoteHandler(app.DB, app.NoteService)
		noteRoutes := protected.Group("/notes")
		{
			noteRoutes.POST("", noteHandler.CreateNote)
			noteRoutes.GET("", noteHandler.GetNotes)
			noteRoutes.GET("/:id", noteHandler.GetNoteByID)
			noteRoutes.PUT("/:id", noteHandler.UpdateNote)
			noteRoutes.POST("/:id/autosave", noteHandler.AutoSave)
			noteRoutes.DELETE("/:id", noteHandler.DeleteNote)
		}

		journalHandler := handlers.NewJournalHandler(app.DB, app.JournalService)
		journalRoutes := protected.Group("/journals")
		{
			journalRoutes.POST("", journalHandler.SaveJournal)
			journalRoutes.GET("", journalHandler.GetJournals)
			journalRoutes.GET("/date/:date", journalHandler.GetJournalByDate)
			journalRoutes.DELETE("/:id", journalHandler.DeleteJournal)
		}

		tagHandler := handlers.NewTagHandler(app.DB, app.TagService)
		tagRoutes := protected.Group("/tags")
		{
			tagRoutes.POST("", tagHandler.CreateTag)
			tagRoutes.GET("", tagHandler.GetTags)
			tagRoutes.PUT("/:id", tagHandler.UpdateTag)
			tagRoutes.DELETE("/:id", tagHandler.DeleteTag)
			tagRoutes.POST("/seed", tagHandler.SeedTags)
		}

		searchHandler := handlers.NewSearchHandler(app.DB, app.SearchService, app.TagService, app.ProjectService)
		searchRoutes := protected.Group("/search")
		{
			searchRoutes.POST("/saved", searchHandler.CreateSavedSearch)
			searchRoutes.GET("/saved", searchHandler.GetSavedSearches)
			searchRoutes.GET("/saved/:id", searchHandler.GetSavedSearchByID)
			searchRoutes.PUT("/saved/:id", searchHandler.UpdateSavedSearch)
			searchRoutes.DELETE("/saved/:id", searchHandler.DeleteSavedSearch)
			searchRoutes.GET("/suggest", searchHandler.Suggest)
			searchRoutes.POST("/conditions", searchHandler.SummarizeConditions)
		}

		settingsHandler := handlers.NewSettingsHandler(app.DB, app.SettingsService)
		protected.GET("/settings", settingsHandler.GetSettings)
		protected.PUT("/settings", settingsHandler.UpdateSettings)

		userHandler := handlers.NewUserHandler(app.DB)
		protected.GET("/users/profile", userHandler.GetProfile)
		protected.PUT("/users/profile", userHandler.UpdateProfile)

		if app.Cache != nil {
			cacheHandler := handlers.NewCacheHandler(app.Cache)
			cacheRoutes := protected.Group("/cache")
			cacheRoutes.Use(adminOnlyMiddleware())
			{
				cacheRoutes.GET("/stats", cacheHandler.GetCacheStats)
				cacheRoutes.GET("/health", cacheHandler.GetCacheHealth)
				cacheRoutes.DELETE("/clear", cacheHandler.ClearCache)
				cacheRoutes.DELETE("/evict/:key", cacheHandler.EvictKey)
			}
		}
	}

	app.Router = r
}

func (app *Application) startServer() {
	addr := app.Config.GetServerAddr()

	app.Server = &http.Server{
		Addr:         addr,
		Handler:      app.Router,
		ReadTimeout:  app.Config.Server.ReadTimeout,
		WriteTimeout: app.Config.Server.WriteTimeout,
		IdleTimeout:  app.Config.Server.IdleTimeout,
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		log.Println("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := app.Server.Shutdown(ctx); err != nil {
			log.Printf("Server forced to shutdown: %v", err)
		}

		app.cleanup()
		log.Println("Server stopped gracefully")
	}()

	log.Printf("Server starting on %s", addr)
	log.Printf("Health check at http://%s/health, readiness at http://%s/ready", addr, addr)

	if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server failed to start: %v", err)
	}
}

func (app *Application) cleanup() {
	log.Println("Cleaning up resources...")

	if app.Cache != nil {
		if err := app.Cache.Close(); err != nil {
			log.Printf("Error closing cache: %v", err)
		}
	}

	if app.Pool != nil {
		if err := app.Pool.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}

	log.Println("Cleanup complete")
}

// adminOnlyMiddleware gates cache management on the role claim from the
// session token.
func adminOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":   "FORBIDDEN",
				"message": "admin role required for this operation",
			})
			return
		}
		c.Next()
	}
}
