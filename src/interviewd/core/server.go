package core

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"

	"github.com/mockstage/interviewd/src/interviewd/api"
	"github.com/mockstage/interviewd/src/interviewd/auth"
	"github.com/mockstage/interviewd/src/interviewd/db"
	"github.com/mockstage/interviewd/src/interviewd/storage"
)

// Server holds the HTTP server instance and its dependencies
type Server struct {
	router      *gin.Engine
	httpServer  *http.Server
	database    *db.Database
	snapshotter *storage.Snapshotter
	api         *api.API

	snapshotCancel context.CancelFunc
}

// NewServer creates a new Server instance
func NewServer(database *db.Database, snapshotter *storage.Snapshotter) *Server {
	// Set Gin mode based on log level
	if viper.GetString("log.level") == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Add recovery middleware
	router.Use(gin.Recovery())

	// Add CORS middleware
	router.Use(corsMiddleware())

	// Add logging middleware
	router.Use(ginLogger())

	// Initialize auth components
	tokenStore := auth.NewTokenStore(database.DB())
	jwtCfg := auth.DefaultJWTConfig()
	if hours := viper.GetInt("auth.token_duration"); hours > 0 {
		jwtCfg.TokenDuration = time.Duration(hours) * time.Hour
	}
	jwtService := auth.NewJWTService(jwtCfg, tokenStore, database)

	// Create API instance with all dependencies
	api.SetLogger(log)
	api.SetVersionInfo(VersionInfo)
	apiInstance := api.New(api.Config{
		UserRepo:      db.NewUserRepository(database),
		InterviewRepo: db.NewInterviewRepository(database),
		QuestionRepo:  db.NewQuestionRepository(database),
		JWTService:    jwtService,
		Hasher:        auth.NewDefaultHasher(),
	})

	// Register all routes
	apiInstance.RegisterRoutes(router)

	s := &Server{
		router:      router,
		database:    database,
		snapshotter: snapshotter,
		api:         apiInstance,
	}

	// Start periodic snapshots
	if snapshotter != nil {
		ctx, cancel := context.WithCancel(context.Background())
		s.snapshotCancel = cancel
		go snapshotter.Run(ctx)
	}

	// Drop expired token revocations once a day
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := tokenStore.CleanupExpired(); err != nil {
				log.Error("Revoked token cleanup failed", "error", err)
			}
		}
	}()

	return s
}

// Run starts the HTTP server and blocks until a shutdown signal
func (s *Server) Run() error {
	bind := viper.GetString("server.bind")
	port := viper.GetInt("server.port")
	addr := fmt.Sprintf("%s:%d", bind, port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors coming from the listener
	errChan := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting interviewd server", "address", addr)

		if s.snapshotter != nil {
			log.Info("Snapshot backups enabled")
		}
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	// Wait for interrupt signal or error
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		log.Info("Received signal, shutting down", "signal", sig)
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if s.snapshotCancel != nil {
		s.snapshotCancel()
	}

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}

// corsMiddleware returns a gin middleware for handling CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		// Allow all origins for now (can be restricted via config later)
		if origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}

		// Handle preflight requests
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// ginLogger returns a gin middleware for logging requests
func ginLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		// Process request
		c.Next()

		// Log request details
		latency := time.Since(start)
		status := c.Writer.Status()
		method := c.Request.Method

		if query != "" {
			path = path + "?" + query
		}

		log.Debug("HTTP request",
			"status", status,
			"method", method,
			"path", path,
			"latency", latency,
			"client_ip", c.ClientIP(),
		)
	}
}

// newSnapshotter builds the snapshot subsystem from viper configuration.
// Returns nil when snapshots are fully disabled.
func newSnapshotter(database *db.Database) (*storage.Snapshotter, error) {
	backupType := viper.GetString("backup.type")

	// If an S3 endpoint is specified, use S3 regardless of backup.type
	s3Endpoint := viper.GetString("backup.s3.endpoint")
	if s3Endpoint != "" {
		backupType = "s3"
	}

	storageCfg := storage.Config{
		Type: backupType,
		Local: storage.LocalConfig{
			BasePath: viper.GetString("backup.local.path"),
		},
		S3: storage.S3Config{
			Endpoint:        s3Endpoint,
			Region:          viper.GetString("backup.s3.region"),
			Bucket:          viper.GetString("backup.s3.bucket"),
			AccessKeyID:     viper.GetString("backup.s3.access_key"),
			SecretAccessKey: viper.GetString("backup.s3.secret_key"),
			UsePathStyle:    viper.GetBool("backup.s3.path_style"),
		},
	}

	backend, err := storage.New(storageCfg)
	if err != nil {
		return nil, err
	}

	// For S3 backend, ensure bucket exists
	if s3Backend, ok := backend.(*storage.S3Backend); ok {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s3Backend.EnsureBucket(ctx); err != nil {
			log.Warn("S3 bucket not accessible - snapshots may fail", "error", err)
		}
	}

	snapCfg := storage.DefaultSnapshotConfig()
	snapCfg.Interval = time.Duration(viper.GetInt("backup.interval")) * time.Minute

	return storage.NewSnapshotter(database, backend, snapCfg), nil
}

// runServer is called by the root command to start the server
func runServer() error {
	log.Info("interviewd starting",
		"version", VersionInfo.Version,
		"build_date", VersionInfo.BuildDate,
		"log_output", log.Output(),
	)

	// Initialize database
	dbPath := viper.GetString("database.path")
	log.Info("Initializing database", "persist_path", dbPath)

	database, err := db.New(db.Config{
		PersistPath: dbPath,
		LoadOnStart: true,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize snapshot backend
	storage.SetLogger(log)
	snapshotter, err := newSnapshotter(database)
	if err != nil {
		log.Warn("Snapshot backend unavailable - continuing without backups", "error", err)
		snapshotter = nil
	}

	server := NewServer(database, snapshotter)

	// Run server (blocks until shutdown signal)
	err = server.Run()

	// Take a final snapshot, then persist the database on shutdown
	if snapshotter != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		if snapErr := snapshotter.Snapshot(ctx); snapErr != nil {
			log.Error("Shutdown snapshot failed", "error", snapErr)
		}
		cancel()
	}

	log.Info("Persisting database to disk")
	if dbErr := database.Shutdown(); dbErr != nil {
		log.Error("Failed to persist database", "error", dbErr)
		if err == nil {
			err = dbErr
		}
	} else {
		log.Info("Database persisted successfully")
	}

	return err
}
