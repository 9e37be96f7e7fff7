package internal

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"peergram/pkg/cache"
	"peergram/pkg/config"
	"peergram/pkg/database"
	"peergram/pkg/jwt"
	"peergram/pkg/logger"
	"peergram/pkg/middleware"
	"peergram/pkg/models"
	"peergram/pkg/queue"
	"peergram/pkg/s3"
	accessHTTP "peergram/services/access/internal/controller/http"
	"peergram/services/access/internal/entity"
	"peergram/services/access/internal/repo/persistent"
	"peergram/services/access/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	redisClient *redis.Client
	s3Client    *s3.Client
	jwtService  *jwt.Service
	queueClient *queue.Client
	httpServer  *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.New()

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.Identity{},
		&models.Profile{},
		&models.FollowEdge{},
		&models.Resource{},
		&models.Permission{},
		&models.Role{},
		&models.RoleAssignment{},
	); err != nil {
		log.Error("Failed to migrate database: %v", err)
		return nil, err
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v (rate limiting disabled)", err)
		redisClient = nil
	}

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create S3 client: %v", err)
		return nil, err
	}

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Error("Failed to connect to RabbitMQ: %v (continuing without queue)", err)
		queueClient = nil
	}

	jwtService := jwt.NewService(cfg.JWTSecret)

	return &App{
		cfg:         cfg,
		log:         log,
		db:          db,
		redisClient: redisClient,
		s3Client:    s3Client,
		jwtService:  jwtService,
		queueClient: queueClient,
	}, nil
}

func (a *App) Run() error {
	// Initialize repositories
	identityRepo := persistent.NewIdentityRepository(a.db)
	profileRepo := persistent.NewProfileRepository(a.db)
	graphRepo := persistent.NewGraphRepository(a.db)
	rbacRepo := persistent.NewRBACRepository(a.db)

	// Initialize resolvers and use cases
	permissions := usecase.NewPermissionResolver(identityRepo, rbacRepo, a.log)
	visibility := usecase.NewVisibilityResolver(graphRepo, profileRepo, a.log)

	accessUseCase := usecase.NewAccessUseCase(
		identityRepo,
		profileRepo,
		graphRepo,
		rbacRepo,
		permissions,
		visibility,
		a.queueClient,
		a.log,
	)
	identityUseCase := usecase.NewIdentityUseCase(
		identityRepo,
		profileRepo,
		rbacRepo,
		a.jwtService,
		a.s3Client,
		a.log,
	)

	// Initialize HTTP handlers
	accessHandler := accessHTTP.NewAccessHandler(accessUseCase)
	identityHandler := accessHTTP.NewIdentityHandler(identityUseCase)

	// Setup router
	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	{
		public := api.Group("")
		if a.redisClient != nil {
			public.Use(middleware.RateLimitMiddleware(a.redisClient, a.cfg.RateLimitPerMinute, time.Minute))
		}
		public.POST("/register", identityHandler.Register)
		public.POST("/login", identityHandler.Login)

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(a.jwtService))
		{
			protected.GET("/me", identityHandler.Me)
			protected.PATCH("/profile", identityHandler.UpdateProfile)
			protected.POST("/avatar", identityHandler.UploadAvatar)

			protected.POST("/access/check", accessHandler.Check)
			protected.GET("/profiles/:owner_id", accessHandler.ViewProfile)

			protected.POST("/follows/:following_id", accessHandler.Follow)
			protected.DELETE("/follows/:following_id", accessHandler.Unfollow)
			protected.GET("/follows/:following_id/status", accessHandler.FollowStatus)
			protected.GET("/identities/:identity_id/follow-counts", accessHandler.FollowCounts)

			// Role and resource administration is gated on FULL access to
			// the rbac resource; the admin capability flag passes the gate
			// without any assignment.
			admin := protected.Group("/admin")
			admin.Use(a.requireFullAccess(accessUseCase, "rbac"))
			{
				admin.GET("/roles", accessHandler.ListRoles)
				admin.POST("/roles", accessHandler.CreateRole)
				admin.POST("/roles/assign", accessHandler.AssignRole)
				admin.POST("/roles/revoke", accessHandler.RevokeRole)
				admin.POST("/resources", accessHandler.CreateResource)
				admin.POST("/permissions", accessHandler.GrantPermission)
				admin.POST("/identities/:identity_id/deactivate", accessHandler.DeactivateIdentity)
				admin.DELETE("/identities/:identity_id", accessHandler.RemoveIdentity)
			}
		}
	}

	// Create HTTP server
	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		a.log.Info("Access service starting on port %s", a.cfg.ServerPort)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	return nil
}

func (a *App) requireFullAccess(accessUseCase usecase.AccessUseCase, resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identityID := c.GetString("user_id")

		decision, err := accessUseCase.CanPerform(identityID, resource, entity.LevelFull)
		if err != nil {
			a.log.Error("Admin gate check failed for %s: %v", identityID, err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "store unavailable"})
			c.Abort()
			return
		}
		if !decision.Allowed() {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func (a *App) Wait() {
	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("Shutting down access service...")
}

func (a *App) Shutdown() error {
	// The context is used to inform the server it has 5 seconds to finish
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sqlDB, err := a.db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			a.log.Error("Error closing database: %v", err)
		}
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing Redis: %v", err)
		}
	}

	if a.queueClient != nil {
		a.queueClient.Close()
	}

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.log.Error("Server forced to shutdown: %v", err)
		return err
	}

	a.log.Info("Access service exited")
	return nil
}
