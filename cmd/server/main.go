package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	identityapp "github.com/procure/backend/internal/application/identity"
	procurementapp "github.com/procure/backend/internal/application/procurement"
	"github.com/procure/backend/internal/application/reconciliation"
	"github.com/procure/backend/internal/infrastructure/auth"
	"github.com/procure/backend/internal/infrastructure/config"
	"github.com/procure/backend/internal/infrastructure/logger"
	"github.com/procure/backend/internal/infrastructure/persistence"
	"github.com/procure/backend/internal/infrastructure/report"
	"github.com/procure/backend/internal/interfaces/http/handler"
	"github.com/procure/backend/internal/interfaces/http/middleware"
	"github.com/procure/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting procurement backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithGormLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	requisitionRepo := persistence.NewGormRequisitionRepository(db.DB)
	purchaseOrderRepo := persistence.NewGormPurchaseOrderRepository(db.DB)
	grnRepo := persistence.NewGormGRNRepository(db.DB)
	grnReturnRepo := persistence.NewGormGRNReturnRepository(db.DB)
	issueRepo := persistence.NewGormIssueRepository(db.DB)
	issueReturnRepo := persistence.NewGormIssueReturnRepository(db.DB)
	consumptionRepo := persistence.NewGormConsumptionRepository(db.DB)

	// Auth infrastructure. Redis backs the token blacklist when
	// configured; otherwise revocation is process-local.
	jwtService := auth.NewJWTService(cfg.JWT)
	var blacklist auth.TokenBlacklist
	if cfg.Redis.Host != "" {
		redisBlacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			_ = redisBlacklist.Close()
		}()
		blacklist = redisBlacklist
		log.Info("Token blacklist backed by Redis",
			zap.String("host", cfg.Redis.Host), zap.Int("port", cfg.Redis.Port))
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
		log.Warn("Redis not configured, using in-memory token blacklist")
	}

	// Application services
	engine := reconciliation.NewEngine(log)
	policy := reconciliation.ChainPolicy{
		GRNRequiresPO:    cfg.Chain.GRNRequiresPO,
		IssueRequiresGRN: cfg.Chain.IssueRequiresGRN,
	}

	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	userService := identityapp.NewUserService(userRepo, log)
	requisitionService := procurementapp.NewRequisitionService(requisitionRepo, log)
	purchaseOrderService := procurementapp.NewPurchaseOrderService(purchaseOrderRepo, log)
	grnService := procurementapp.NewGRNService(grnRepo, purchaseOrderRepo, consumptionRepo, engine, policy, log)
	grnReturnService := procurementapp.NewGRNReturnService(grnReturnRepo, grnRepo, consumptionRepo, engine, log)
	issueService := procurementapp.NewIssueService(issueRepo, grnRepo, consumptionRepo, engine, policy, log)
	issueReturnService := procurementapp.NewIssueReturnService(issueReturnRepo, issueRepo, consumptionRepo, engine, log)

	reportAdapter := report.NewExcelAdapter(log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	web := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := web.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	web.Use(middleware.RequestID())
	web.Use(logger.Recovery(log))
	web.Use(logger.GinMiddleware(log))
	web.Use(middleware.Secure())
	web.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	web.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	if cfg.HTTP.RateLimitRequests > 0 {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		defer limiter.Close()
		web.Use(middleware.RateLimit(limiter))
	}

	// Health endpoint outside API versioning for load balancers
	systemHandler := handler.NewSystemHandler(db)
	web.GET("/health", systemHandler.Health)

	r := router.NewRouter(web, router.WithAPIVersion("v1"))
	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.TokenBlacklist = blacklist
	jwtConfig.Logger = log
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	r.Register(systemHandler).
		Register(handler.NewAuthHandler(authService)).
		Register(handler.NewUserHandler(userService)).
		Register(handler.NewRequisitionHandler(requisitionService, reportAdapter)).
		Register(handler.NewPurchaseOrderHandler(purchaseOrderService, reportAdapter)).
		Register(handler.NewGRNHandler(grnService, reportAdapter)).
		Register(handler.NewGRNReturnHandler(grnReturnService, reportAdapter)).
		Register(handler.NewIssueHandler(issueService, reportAdapter)).
		Register(handler.NewIssueReturnHandler(issueReturnService, reportAdapter))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        web,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
