package main

import (
	"strconv"
	"time"

	"kost-service/internal/handler"
	"kost-service/internal/middleware"
	"kost-service/internal/model"
	"kost-service/internal/repository"
	"kost-service/pkg/config"
	"kost-service/pkg/jwtutil"
	"kost-service/pkg/logger"
	"kost-service/pkg/textstore"
	"kost-service/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	logger.InitLogger(cfg)
	log := logger.GetLogger()
	log.Info("Starting kost service...", zap.String("environment", cfg.Server.Env))

	// Initialize JWT utilities
	jwtutil.Initialize(&cfg.JWT)
	log.Info("JWT utilities initialized")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(cfg)
	log.Info("Prometheus metrics initialized")

	// Open the flat-file store and load every repository once; the instances
	// live for the whole process and are shared by the handlers below.
	store := textstore.New(cfg.Storage.DataDir, log)

	rooms, err := repository.NewRoomRepository(store, log)
	if err != nil {
		log.Fatal("Failed to load rooms", zap.Error(err))
	}
	tenants, err := repository.NewTenantRepository(store, log)
	if err != nil {
		log.Fatal("Failed to load tenants", zap.Error(err))
	}
	payments, err := repository.NewPaymentRepository(store, log)
	if err != nil {
		log.Fatal("Failed to load payments", zap.Error(err))
	}
	users, err := repository.NewUserRepository(store, log)
	if err != nil {
		log.Fatal("Failed to load users", zap.Error(err))
	}
	log.Info("Record files loaded",
		zap.String("data_dir", cfg.Storage.DataDir),
		zap.Int("rooms", len(rooms.GetAll())),
		zap.Int("tenants", len(tenants.GetAll())),
		zap.Int("payments", len(payments.GetAll())),
		zap.Int("users", users.Count()))

	occupancy := repository.NewOccupancy(rooms, tenants, log)

	if err := seedAdminUser(users, cfg, log); err != nil {
		log.Fatal("Failed to seed admin user", zap.Error(err))
	}

	// Handlers
	authHandler := handler.NewAuthHandler(users)
	roomHandler := handler.NewRoomHandler(rooms)
	tenantHandler := handler.NewTenantHandler(tenants, occupancy)
	paymentHandler := handler.NewPaymentHandler(payments)
	reportHandler := handler.NewReportHandler(rooms, tenants, payments)

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)

	// Request logging middleware
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			// Process request
			err := next(c)

			// Calculate duration
			duration := time.Since(start).Seconds()
			status := c.Response().Status

			// Log request details
			log := logger.FromContext(c)
			log.Info("HTTP Request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", status),
				zap.Float64("duration_s", duration),
				zap.String("ip", c.RealIP()),
			)

			prometheus.HttpRequestsTotal.WithLabelValues(
				c.Request().Method,
				c.Request().URL.Path,
				strconv.Itoa(status),
			).Inc()

			prometheus.HttpRequestDuration.WithLabelValues(
				c.Request().Method,
				c.Request().URL.Path,
				strconv.Itoa(status),
			).Observe(duration)

			return err
		}
	})

	// Routes
	// Public routes that don't require authentication
	e.GET("/", handler.Health)
	e.GET("/health", handler.Health)

	// Prometheus metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Login
	e.POST("/api/auth/login", authHandler.Login)

	// API routes that require authentication
	api := e.Group("/api")
	api.Use(middleware.AuthMiddleware)

	roomGroup := api.Group("/rooms")
	roomGroup.POST("", roomHandler.Create)
	roomGroup.GET("", roomHandler.List)
	roomGroup.POST("/refresh", roomHandler.Refresh)
	roomGroup.GET("/:id", roomHandler.Get)
	roomGroup.PUT("/:id", roomHandler.Update)
	roomGroup.PUT("/:id/status", roomHandler.UpdateStatus)
	roomGroup.DELETE("/:id", roomHandler.Delete)

	tenantGroup := api.Group("/tenants")
	tenantGroup.POST("", tenantHandler.Create)
	tenantGroup.GET("", tenantHandler.List)
	tenantGroup.POST("/refresh", tenantHandler.Refresh)
	tenantGroup.GET("/:id", tenantHandler.Get)
	tenantGroup.PUT("/:id", tenantHandler.Update)
	tenantGroup.DELETE("/:id", tenantHandler.Delete)

	paymentGroup := api.Group("/payments")
	paymentGroup.POST("", paymentHandler.Create)
	paymentGroup.GET("", paymentHandler.List)
	paymentGroup.POST("/refresh", paymentHandler.Refresh)
	paymentGroup.GET("/:id", paymentHandler.Get)
	paymentGroup.PUT("/:id", paymentHandler.Update)
	paymentGroup.DELETE("/:id", paymentHandler.Delete)

	reportGroup := api.Group("/reports")
	reportGroup.GET("/monthly", reportHandler.Monthly)
	reportGroup.GET("/monthly/export", reportHandler.MonthlyExport)

	// Start server
	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}

// seedAdminUser creates the default admin account when the user file is empty
func seedAdminUser(users *repository.UserRepository, cfg *config.Config, log *zap.Logger) error {
	if users.Count() > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Auth.DefaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := model.User{
		ID:           users.GenerateNewID(),
		Username:     "admin",
		PasswordHash: string(hash),
		FullName:     "Administrator",
		Role:         model.UserRoleAdmin,
	}
	if err := users.Create(admin); err != nil {
		return err
	}

	log.Info("Seeded default admin user", zap.String("user_id", admin.ID))
	return nil
}
