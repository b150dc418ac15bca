package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	v1 "github.com/mikesterific/parallel-instances/api/v1"
	"github.com/mikesterific/parallel-instances/internal/config"
)

const (
	ModeDev  = "dev"
	ModeProd = "prod"

	apiPrefix = "/api/v1"
)

type Server struct {
	srv    *http.Server
	engine *gin.Engine
}

// NewServer builds the gin engine. registerHandlerFn receives the /api/v1
// group, already behind the authenticator when auth is enabled.
func NewServer(cfg *config.Configuration, registerHandlerFn func(router *gin.RouterGroup)) (*Server, error) {
	switch cfg.Server.ServerMode {
	case ModeProd:
		gin.SetMode(gin.ReleaseMode)
	case ModeDev:
		gin.SetMode(gin.DebugMode)
	default:
		return nil, fmt.Errorf("unknown server mode: %s", cfg.Server.ServerMode)
	}

	logger := zap.L().Named("http")

	engine := gin.New()
	engine.Use(
		ginzap.Ginzap(logger, time.RFC3339, true),
		ginzap.RecoveryWithZap(logger, true),
	)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group(apiPrefix)
	if cfg.Auth.Enabled {
		api.Use(Authenticator(cfg.Auth.JWTSecret))
	}
	registerHandlerFn(api)

	engine.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, apiPrefix) {
			c.JSON(http.StatusNotFound, v1.ErrorResponse{Error: "not found"})
			return
		}
		c.Status(http.StatusNotFound)
	})

	return &Server{
		engine: engine,
		srv: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Server.HTTPPort),
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start blocks until the server stops. ctx cancellation triggers a graceful
// shutdown.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		zap.S().Named("server").Infow("http server started", "addr", s.srv.Addr)
		errCh <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		return s.Stop(shutdownCtx)
	}
}

// Stop waits for in-flight requests to complete.
func (s *Server) Stop(ctx context.Context) error {
	zap.S().Named("server").Info("shutting down http server")
	return s.srv.Shutdown(ctx)
}
