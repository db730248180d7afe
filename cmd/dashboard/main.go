package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"folioboard/internal/client/folio"
	"folioboard/internal/config"
	cronrunner "folioboard/internal/cron"
	"folioboard/internal/db"
	"folioboard/internal/derive"
	"folioboard/internal/handler"
	"folioboard/internal/logger"
	gormrepository "folioboard/internal/repository/gorm"
	"folioboard/internal/service"
	"folioboard/internal/session"

	_ "folioboard/docs"
)

func main() {
	cfgPath := os.Getenv("FOLIO_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("FOLIO_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	dbConn, err := db.Open(cfg.DB)
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}
	defer db.Close(dbConn)

	if err := db.SetTimezone(dbConn, cfg.DB.Timezone); err != nil {
		logger.Warn("failed to set timezone", zap.Error(err))
	}
	if err := db.AutoMigrate(dbConn); err != nil {
		logger.Fatal("auto-migrate failed", zap.Error(err))
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	backendHTTP := &http.Client{Timeout: cfg.Backend.Timeout}
	backend := folio.NewClient(backendHTTP, cfg.Backend.BaseURL)

	store := gormrepository.New(dbConn.Gorm)
	sessions := session.NewStore(rdb, cfg.Session.TTL)
	sorter := derive.NewSorter(cfg.Display.Locale)

	positionSvc := &service.PositionViewService{API: backend, Sorter: sorter, Logger: logger}
	transactionSvc := &service.TransactionViewService{API: backend, Sorter: sorter, Logger: logger}
	chartSvc := &service.ChartService{API: backend, Logger: logger}
	dividendSvc := &service.DividendService{API: backend, InFlight: service.NewInFlightSet(), Logger: logger}
	notificationSvc := &service.NotificationService{
		API:      backend,
		Sessions: sessions,
		Guard:    service.NewLatestGuard(),
		Logger:   logger,
	}
	shareSvc := &service.ShareService{
		Repo:     store,
		API:      backend,
		Sessions: sessions,
		Logger:   logger,
		MinAge:   cfg.Sharing.SnapshotAge,
	}
	logos := service.NewLogoResolver(backend, logger)

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())

	healthHandler := &handler.HealthHandler{DB: dbConn.Gorm, Redis: rdb}
	healthHandler.Register(engine)

	authed := engine.Group("/api", handler.SessionMiddleware(sessions, cfg.Session))

	authHandler := &handler.AuthHandler{Client: backend, Sessions: sessions, Cfg: cfg.Session, Logger: logger}
	authHandler.Register(engine, authed)

	portfolioHandler := &handler.PortfolioHandler{Client: backend, Positions: positionSvc, Prefs: store, Logger: logger}
	portfolioHandler.Register(authed)

	transactionHandler := &handler.TransactionHandler{
		Client:       backend,
		Transactions: transactionSvc,
		Prefs:        portfolioHandler,
		Logger:       logger,
	}
	transactionHandler.Register(authed)

	chartHandler := &handler.ChartHandler{Charts: chartSvc, Logger: logger}
	chartHandler.Register(authed)

	dividendHandler := &handler.DividendHandler{Dividends: dividendSvc, Logger: logger}
	dividendHandler.Register(authed)

	notificationHandler := &handler.NotificationHandler{Notifications: notificationSvc, Logger: logger}
	notificationHandler.Register(authed)

	watchlistHandler := &handler.WatchlistHandler{Client: backend, Logger: logger}
	watchlistHandler.Register(authed)

	assetHandler := &handler.AssetHandler{Client: backend, Logos: logos, Logger: logger}
	assetHandler.Register(authed)

	shareHandler := &handler.ShareHandler{Shares: shareSvc, Enabled: cfg.Sharing.Enabled, Logger: logger}
	shareHandler.Register(engine, authed)

	preferenceHandler := &handler.PreferenceHandler{Repo: store}
	preferenceHandler.Register(authed)

	adminHandler := &handler.AdminHandler{Client: backend, Logger: logger}
	adminHandler.Register(authed)

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cronRunner := cronrunner.New(logger, ctx)
	_, err = cronRunner.Add(cfg.Refresh.UnreadCount, func(ctx context.Context) {
		if err := notificationSvc.RefreshAll(ctx); err != nil {
			logger.Warn("unread count refresh failed", zap.Error(err))
		}
	})
	if err != nil {
		logger.Warn("cron register unread refresh failed", zap.Error(err))
	}
	if cfg.Sharing.Enabled {
		_, err = cronRunner.Add(cfg.Refresh.ShareSnapshots, func(ctx context.Context) {
			if err := shareSvc.RefreshAll(ctx); err != nil {
				logger.Warn("share snapshot refresh failed", zap.Error(err))
			}
		})
		if err != nil {
			logger.Warn("cron register share refresh failed", zap.Error(err))
		}
	}
	cronRunner.Start()
	defer cronRunner.Stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization,X-Session-ID")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
