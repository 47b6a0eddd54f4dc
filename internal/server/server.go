package server

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/aevon-lab/project-tally/internal/engine"
	"github.com/aevon-lab/project-tally/internal/resilience"
	"github.com/gin-gonic/gin"
)

type Server struct {
	Engine *gin.Engine
	Addr   string

	db         *sql.DB
	breaker    *resilience.CircuitBreaker
	maintainer *engine.Maintainer
}

func New(addr string, db *sql.DB, mode string, breaker *resilience.CircuitBreaker, maintainer *engine.Maintainer) *Server {
	// Set Gin mode based on configuration
	if mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	s := &Server{
		Engine:     r,
		Addr:       addr,
		db:         db,
		breaker:    breaker,
		maintainer: maintainer,
	}

	// Health check endpoint: database connectivity plus engine health.
	r.GET("/health", s.healthHandler)

	return s
}

// healthHandler reports liveness. The store being down does not by itself
// make the process unhealthy once the circuit is open and reads can serve
// stale values, but it is surfaced so operators see degradation.
func (s *Server) healthHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	body := gin.H{"status": "healthy", "database": "connected"}
	if s.breaker != nil {
		body["circuit"] = s.breaker.State().String()
	}
	if s.maintainer != nil {
		body["dirty_aggregates"] = len(s.maintainer.DirtyItems())
	}

	if s.db != nil {
		if err := s.db.PingContext(ctx); err != nil {
			slog.Error("Health check failed: database unreachable", "error", err)
			body["status"] = "degraded"
			body["database"] = "unreachable"
			c.JSON(http.StatusServiceUnavailable, body)
			return
		}
	}

	c.JSON(http.StatusOK, body)
}

func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.Addr,
		Handler: s.Engine,
	}

	slog.Info("Starting HTTP Server...", "address", s.Addr)

	go func() {
		<-ctx.Done()
		slog.Info("Stopping HTTP Server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("HTTP Server forced to shutdown", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
