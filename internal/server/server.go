package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"pollbox/config"
	"pollbox/internal/handler"
	"pollbox/internal/middleware"
	"pollbox/internal/services"
	"pollbox/internal/transport/httpdto"
	"pollbox/pkg/database"
	"pollbox/pkg/logger"
)

type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	config     *config.Config
	logger     *logger.Logger
}

var (
	ReleaseMode = "release"
	DebugMode   = "debug"
	TestMode    = "test"
)

type Handlers struct {
	Auth *handler.AuthHandler
	Poll *handler.PollHandler
	Vote *handler.VoteHandler
}

func New(cfg *config.Config, l *logger.Logger) *Server {
	if cfg.AppMode == ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	} else if cfg.AppMode == TestMode {
		gin.SetMode(gin.TestMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	return &Server{
		httpServer: &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.AppPort),
			Handler: engine,
		},
		engine: engine,
		config: cfg,
		logger: l,
	}
}

func (s *Server) SetupRoutes(handlers *Handlers, authService *services.AuthService) {
	s.engine.Use(middleware.RequestIDMiddleware())
	s.engine.Use(middleware.CORSMiddleware())
	s.engine.Use(middleware.LoggingMiddleware(s.logger))
	s.engine.Use(middleware.ErrorHandler(s.logger))

	s.engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"message": "pong"}))
	})

	s.engine.GET("/health", func(c *gin.Context) {
		if err := database.HealthCheck(); err != nil {
			c.JSON(http.StatusServiceUnavailable, httpdto.NewErrorResponse(err.Error(), "UNHEALTHY"))
			return
		}
		c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"status": "healthy"}))
	})

	auth := s.engine.Group("/v1/auth")
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", handlers.Auth.Login)
		auth.POST("/refresh", handlers.Auth.Refresh)
		auth.POST("/logout", middleware.AuthMiddleware(authService), handlers.Auth.Logout)
		auth.POST("/logout-all", middleware.AuthMiddleware(authService), handlers.Auth.LogoutAll)
		auth.GET("/me", middleware.AuthMiddleware(authService), handlers.Auth.Me)
	}

	polls := s.engine.Group("/v1/polls")
	{
		polls.POST("", middleware.AuthMiddleware(authService), handlers.Poll.Create)
		polls.GET("", middleware.AuthMiddleware(authService), handlers.Poll.List)
		polls.GET("/:id", middleware.OptionalAuthMiddleware(authService), handlers.Poll.Get)
		polls.PUT("/:id", middleware.AuthMiddleware(authService), handlers.Poll.Update)
		polls.DELETE("/:id", middleware.AuthMiddleware(authService), handlers.Poll.Delete)

		polls.POST("/:id/vote", middleware.OptionalAuthMiddleware(authService), handlers.Vote.Submit)
		polls.GET("/:id/results", handlers.Vote.Results)
		polls.GET("/:id/voted", middleware.OptionalAuthMiddleware(authService), handlers.Vote.Voted)
	}
}

func (s *Server) Start() error {
	go func() {
		if s.logger != nil {
			s.logger.Infof("Starting the server on port %s...", s.config.AppPort)
		}
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if s.logger != nil {
				s.logger.Errorf("server error: %v", err)
			}
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	if s.logger != nil {
		s.logger.Infof("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
