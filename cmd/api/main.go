package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "fieldrep/api/swagger" // swagger docs
	"fieldrep/internal/config"
	"fieldrep/internal/database"
	"fieldrep/internal/handler"
	"fieldrep/internal/logging"
	"fieldrep/internal/middleware"
	"fieldrep/internal/repository"
	"fieldrep/internal/service"
	"fieldrep/internal/session"
	"fieldrep/internal/websocket"
	"fieldrep/pkg/pagination"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Field Representative Request API
// @version         1.0
// @description     Orders, doctor/chemist directory entries and utility requests submitted by field representatives.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load("configs/.env")
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	log := logging.New(cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, catalog := openStore(ctx, cfg, log)

	// Set up WebSocket Hub
	wsHub := websocket.NewHub(log)
	go wsHub.Run(ctx)

	deps := service.Deps{
		Repo:      repo,
		Catalog:   catalog,
		Identity:  session.ContextProvider{},
		Refresher: wsHub,
		Log:       log,
	}
	requestHandler := handler.NewRequestHandler(deps)
	catalogHandler := handler.NewCatalogHandler(catalog, pagination.Limits{Default: cfg.PageSize, Max: cfg.MaxPageSize})

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET(cfg.MetricsPath, gin.WrapH(promhttp.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	secret := []byte(cfg.JWTSecret)
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, secret)
	})

	api := router.Group("")
	api.Use(middleware.Authenticate(secret))
	requestHandler.RegisterRoutes(api)
	catalogHandler.RegisterRoutes(api)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: router}
	go func() {
		log.WithField("port", cfg.Port).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
	log.Info("server stopped")
}

// openStore connects to postgres, or falls back to a seeded in-memory store
// when the database is disabled.
func openStore(ctx context.Context, cfg *config.Config, log *logrus.Logger) (repository.RequestRepository, repository.CatalogRepository) {
	if cfg.Database.Disabled {
		log.Warn("DB_DISABLED set: records are kept in memory and lost on restart")
		store := repository.NewMemoryStore(database.DevCatalog()...)
		return store, store
	}

	db, err := database.NewConnection(cfg.Database.DSN(), log)
	if err != nil {
		log.WithError(err).Fatal("database connection failed")
	}
	log.Info("connected to PostgreSQL")
	if err := database.SeedCatalog(ctx, db, database.DevCatalog(), log); err != nil {
		log.WithError(err).Warn("catalog seeding failed")
	}

	auditRepo := repository.NewAuditRepository(db)
	txManager := repository.NewTransactionManager(db)
	return repository.NewRequestRepository(db, auditRepo, txManager), repository.NewCatalogRepository(db)
}

func requestLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.FullPath(),
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		}).Debug("request")
	}
}
