// Package http provides the HTTP server adapter for the application layer.
// It hosts the bill pages and the store REST API.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/garyjia/billed/internal/application/port"
	"github.com/garyjia/billed/internal/views"
)

// Logger interface for logging operations
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// HealthFunc reports component health for GET /health
type HealthFunc func() (healthy bool, components interface{})

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// ReceiptsDir is served under /receipts when set
	ReceiptsDir string

	// MaxUploadSize bounds multipart bodies, in bytes
	MaxUploadSize int64
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:          "0.0.0.0",
		Port:          8080,
		ReadTimeout:   30 * time.Second,
		WriteTimeout:  30 * time.Second,
		MaxUploadSize: 10 << 20,
	}
}

// Server is the HTTP server adapter
type Server struct {
	config     ServerConfig
	httpServer *http.Server
	router     *gin.Engine
	stores     port.StoreProvider
	health     HealthFunc
	logger     Logger
}

// NewServer creates a new HTTP server backed by the given store provider
func NewServer(config ServerConfig, stores port.StoreProvider, health HealthFunc, logger Logger) (*Server, error) {
	gin.SetMode(gin.ReleaseMode)

	tmpl, err := views.Templates()
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.SetHTMLTemplate(tmpl)
	if config.MaxUploadSize > 0 {
		router.MaxMultipartMemory = config.MaxUploadSize
	}

	server := &Server{
		config: config,
		router: router,
		stores: stores,
		health: health,
		logger: logger,
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server, nil
}

// setupMiddleware configures middleware for the router
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(s.loggingMiddleware())
	s.router.Use(corsMiddleware())
}

// loggingMiddleware creates a logging middleware
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		s.logger.Info("HTTP request",
			"method", method,
			"path", path,
			"status", status,
			"latency", latency.String(),
			"client_ip", c.ClientIP(),
		)
	}
}

// corsMiddleware lets browser clients call the store API with identity headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+headerUserEmail+", "+headerUserType)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	handlers := NewHandlers(s.stores, s.health, s.logger)
	pages := NewPages(s.stores, s.logger)

	s.router.GET("/health", handlers.HealthCheck)

	if s.config.ReceiptsDir != "" {
		s.router.Static("/receipts", s.config.ReceiptsDir)
	}

	// Host UI
	s.router.GET("/", pages.LoginPage)
	s.router.POST("/", pages.Login)
	s.router.GET("/logout", pages.Logout)

	bills := s.router.Group("/bills", sessionMiddleware(s.logger))
	{
		bills.GET("", pages.BillsPage)
		bills.GET("/actions/new-bill", pages.NewBillAction)
		bills.GET("/new", pages.NewBillPage)
		bills.POST("/new", pages.SubmitNewBill)
		bills.GET("/export.xlsx", pages.ExportBills)
	}

	// Store API
	api := s.router.Group("/api", identityMiddleware())
	{
		api.GET("/bills", handlers.ListBills)
		api.POST("/bills", handlers.CreateBill)
		api.PATCH("/bills/:key", handlers.UpdateBill)
	}
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	addr := s.Address()

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.logger.Info("Starting HTTP server", "address", addr)

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("HTTP server shutdown requested")
		return s.Stop()
	case err := <-errCh:
		s.logger.Error("HTTP server error", "error", err)
		return err
	}
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	s.logger.Info("Stopping HTTP server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
		return err
	}

	s.logger.Info("HTTP server stopped")
	return nil
}

// Router returns the underlying gin router (for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Address returns the server address
func (s *Server) Address() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}
