package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/usersvc/usersvc/internal/config"
	"github.com/usersvc/usersvc/internal/users"
)

// AppState holds all application services
type AppState struct {
	UserService users.UserService
	Logger      *zap.Logger
	Config      *config.Config
}

// NewAppState builds the user store and service from cfg. The store is seeded
// here, once, and lives for as long as the returned state.
func NewAppState(cfg *config.Config, logger *zap.Logger) *AppState {
	usersCfg := cfg.Common.Users

	userStore := users.NewInMemoryStore(usersCfg.SeedName, users.IDStrategy(usersCfg.IDStrategy))
	userService := users.NewUserService(userStore, logger.Named("users"))

	logger.Info("User store initialized",
		zap.String("seed_name", usersCfg.SeedName),
		zap.String("id_strategy", usersCfg.IDStrategy))

	return &AppState{
		UserService: userService,
		Logger:      logger,
		Config:      cfg,
	}
}

// SetupRouter assembles the gin engine with middleware and all routes
func SetupRouter(as *AppState) *gin.Engine {
	router := gin.New()

	router.Use(cors.Default())
	router.Use(RequestID())
	router.Use(AccessLog(as.Logger))
	router.Use(gin.CustomRecovery(recoveryHandler(as.Logger)))
	router.Use(MaxBodySize(as.Config.Common.Http.MaxRequestSize))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Format(time.RFC3339),
			"users":     as.UserService.Count(c.Request.Context()),
		})
	})

	userHandlers := users.NewUserHandlers(as.UserService, as.Logger.Named("http"))
	userHandlers.RegisterRoutes(router)

	return router
}

// NewHTTPServer wraps the router in an http.Server configured from cfg
func NewHTTPServer(as *AppState, handler http.Handler) *http.Server {
	httpCfg := as.Config.Common.Http
	return &http.Server{
		Addr:         httpCfg.Addr(),
		Handler:      handler,
		ReadTimeout:  time.Duration(httpCfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(httpCfg.WriteTimeout) * time.Second,
	}
}

func recoveryHandler(logger *zap.Logger) gin.RecoveryFunc {
	return func(c *gin.Context, recovered any) {
		logger.Error("Panic while handling request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", c.GetString(RequestIDKey)),
			zap.Any("panic", recovered))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
	}
}
