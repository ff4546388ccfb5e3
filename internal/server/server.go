package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"messenger-api/config"
	"messenger-api/internal/handler"
	"messenger-api/internal/middleware"
	"messenger-api/internal/transport/httpdto"
	"messenger-api/pkg/database"
	messenger_errors "messenger-api/pkg/errors"
	"messenger-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	config     *config.Config
	logger     *logger.Logger
	pool       *pgxpool.Pool
}

var (
	ReleaseMode = "release"
	DebugMode   = "debug"
	TestMode    = "test"
)

type Handlers struct {
	Chat    *handler.ChatHandler
	Message *handler.MessageHandler
	Upload  *handler.UploadHandler
	User    *handler.UserHandler
}

var (
	headersWithCaller = []string{"Content-Type", middleware.UserIDHeader}
	headersPlain      = []string{"Content-Type"}
)

func New(cfg *config.Config, l *logger.Logger, pool *pgxpool.Pool) *Server {
	switch cfg.AppMode {
	case ReleaseMode:
		gin.SetMode(gin.ReleaseMode)
	case TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	engine := gin.New()
	engine.HandleMethodNotAllowed = true
	engine.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		err := fmt.Errorf("%v", recovered)
		if l != nil {
			l.ErrorCtx(c.Request.Context(), "panic recovered", zap.Error(err))
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, httpdto.NewErrorResponse(err.Error()))
	}))

	return &Server{
		httpServer: &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.AppPort),
			Handler: engine,
		},
		engine: engine,
		config: cfg,
		logger: l,
		pool:   pool,
	}
}

// Engine exposes the router, mostly for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) SetupRoutes(handlers *Handlers) {
	s.engine.Use(middleware.RequestIDMiddleware())
	s.engine.Use(middleware.CORSMiddleware())
	s.engine.Use(middleware.CallerMiddleware())
	s.engine.Use(middleware.LoggingMiddleware(s.logger))
	s.engine.Use(middleware.ErrorHandler(s.logger))

	s.engine.NoRoute(func(c *gin.Context) {
		_ = c.Error(messenger_errors.NotFound("Not found"))
	})
	s.engine.NoMethod(func(c *gin.Context) {
		_ = c.Error(messenger_errors.MethodNotAllowed())
	})

	s.engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, httpdto.PingResponse{Message: "pong"})
	})

	s.engine.GET("/health", func(c *gin.Context) {
		if err := database.HealthCheck(c.Request.Context(), s.pool); err != nil {
			c.JSON(http.StatusServiceUnavailable, httpdto.NewErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusOK, httpdto.HealthResponse{Status: "healthy"})
	})

	v1 := s.engine.Group("/v1", middleware.DBScope(s.pool))

	chats := v1.Group("/chats")
	{
		chats.OPTIONS("", middleware.Preflight([]string{"GET", "POST", "OPTIONS"}, headersWithCaller))
		chats.GET("", handlers.Chat.List)
		chats.POST("", handlers.Chat.CreateOrGet)
	}

	messages := v1.Group("/messages")
	{
		messages.OPTIONS("", middleware.Preflight([]string{"GET", "POST", "OPTIONS"}, headersPlain))
		messages.GET("", handlers.Message.List)
		messages.POST("", handlers.Message.Send)
	}

	upload := v1.Group("/upload")
	{
		upload.OPTIONS("", middleware.Preflight([]string{"POST", "OPTIONS"}, headersPlain))
		upload.POST("", handlers.Upload.Avatar)
	}

	users := v1.Group("/users")
	{
		users.OPTIONS("", middleware.Preflight([]string{"GET", "POST", "PUT", "OPTIONS"}, headersWithCaller))
		users.GET("", handlers.User.Search)
		users.PUT("", handlers.User.UpdateProfile)
		users.POST("", handlers.User.Block)
	}
}

func (s *Server) Start() error {
	go func() {
		if s.logger != nil {
			s.logger.Infof("Starting the server on port %s...", s.config.AppPort)
		}
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if s.logger != nil {
				s.logger.Errorf("Error in starting the server: %s", err)
			}
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	<-quit

	if s.logger != nil {
		s.logger.Infof("Quitting signal received.. Shutting down after 5 seconds")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		if s.logger != nil {
			s.logger.Infof("Error in the graceful shutdown of the server: %s", err)
		}
		return err
	}

	if s.logger != nil {
		s.logger.Infof("Server stopped gracefully")
	}

	return nil
}
