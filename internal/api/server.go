// Package api exposes the intake service over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/CCC-MF/mtb-validator/internal/domain"
	"github.com/CCC-MF/mtb-validator/internal/middleware"
	"github.com/CCC-MF/mtb-validator/internal/service"
)

// Server represents the HTTP server wrapping the intake service.
type Server struct {
	configManager domain.ConfigManager
	intake        *service.IntakeService
	router        *gin.Engine
	server        *http.Server
}

// NewServer creates a new HTTP server instance.
func NewServer(configManager domain.ConfigManager, intake *service.IntakeService) *Server {
	cfg := configManager.GetConfig()

	if cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CorrelationID())
	router.Use(middleware.RequestTimeout(cfg.Server.ReadTimeout))

	s := &Server{
		configManager: configManager,
		intake:        intake,
		router:        router,
	}

	s.setupRoutes()

	return s
}

// Start starts the HTTP server and blocks until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	cfg := s.configManager.GetServerConfig()
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("HTTP server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return s.server.Shutdown(shutdownCtx)
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/mtbfile", s.handleUploadMTBFile)
		v1.DELETE("/mtbfile/:patientId", s.handleDeleteMTBFile)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
	})
}

func (s *Server) handleUploadMTBFile(c *gin.Context) {
	var file domain.MTBFile
	if err := json.NewDecoder(c.Request.Body).Decode(&file); err != nil {
		c.JSON(http.StatusBadRequest, domain.NewIntakeError(
			domain.ErrInvalidInput, "malformed MTB file payload", err.Error(), c.GetString("correlation_id"),
		))
		return
	}

	result, err := s.intake.UploadMTBFile(c.Request.Context(), file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, domain.NewIntakeError(
			domain.ErrInternalServer, "failed to process upload", err.Error(), c.GetString("correlation_id"),
		))
		return
	}

	switch result.Outcome {
	case service.OutcomeRejected:
		c.JSON(http.StatusUnprocessableEntity, result.Report)
	case service.OutcomeAcceptedWithReport:
		c.JSON(http.StatusAccepted, result.Report)
	default:
		c.Status(http.StatusNoContent)
	}
}

func (s *Server) handleDeleteMTBFile(c *gin.Context) {
	patientID := c.Param("patientId")

	if err := s.intake.DeleteMTBFile(c.Request.Context(), patientID); err != nil {
		if errors.Is(err, domain.ErrReportNotFound) {
			c.JSON(http.StatusNotFound, domain.NewIntakeError(
				domain.ErrNotFound, "no report stored for patient", patientID, c.GetString("correlation_id"),
			))
			return
		}
		c.JSON(http.StatusInternalServerError, domain.NewIntakeError(
			domain.ErrInternalServer, "failed to delete report", err.Error(), c.GetString("correlation_id"),
		))
		return
	}

	c.Status(http.StatusNoContent)
}
