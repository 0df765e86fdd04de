package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"tallyclank/internal/cache"
	"tallyclank/internal/client/clanker"
	"tallyclank/internal/client/dexscreener"
	"tallyclank/internal/client/neynar"
	"tallyclank/internal/client/pinata"
	"tallyclank/internal/config"
	cronrunner "tallyclank/internal/cron"
	"tallyclank/internal/db"
	"tallyclank/internal/handler"
	"tallyclank/internal/logger"
	"tallyclank/internal/normalize"
	gormrepository "tallyclank/internal/repository/gorm"
	"tallyclank/internal/service"

	_ "tallyclank/docs"
)

func main() {
	cfgPath := os.Getenv("TC_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("TC_ENV_ONLY"); envOnlyRaw != "" {
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
	defer dbConn.Close()

	if err := dbConn.Ping(); err != nil {
		logger.Fatal("db unreachable", zap.Error(err))
	}
	if err := dbConn.SetTimezone(cfg.DB.Timezone); err != nil {
		logger.Warn("failed to set timezone", zap.Error(err))
	}
	if err := dbConn.AutoMigrate(); err != nil {
		logger.Fatal("auto-migrate failed", zap.Error(err))
	}

	clankerClient := clanker.New(cfg.Clanker, logger)
	dexClient := dexscreener.New(cfg.DexScreener, logger)
	neynarClient := neynar.New(cfg.Neynar, logger)
	pinataClient := pinata.New(cfg.Pinata, logger)

	store := gormrepository.New(dbConn.Gorm)
	ttlCache := cache.New(cfg.Cache.TokensTTL, cfg.Cache.CleanupEvery)

	tokenService := &service.TokenService{
		Clanker:     clankerClient,
		Neynar:      neynarClient,
		Cache:       ttlCache,
		Norm:        &normalize.Normalizer{AssetHost: clankerClient.Host()},
		Logger:      logger,
		TokensTTL:   cfg.Cache.TokensTTL,
		TrendingTTL: cfg.Cache.TrendingTTL,
		ProfileTTL:  cfg.Neynar.ProfileTTL,
	}
	storedService := &service.StoredTokenService{
		Repo:      store,
		Logger:    logger,
		TargetFID: cfg.Sync.TargetFID,
	}
	syncService := &service.SyncService{
		Repo:      store,
		Clanker:   clankerClient,
		Logger:    logger,
		TargetFID: cfg.Sync.TargetFID,
		PageLimit: cfg.Sync.PageLimit,
	}
	dexService := &service.DexService{
		Client: dexClient,
		Cache:  ttlCache,
		Logger: logger,
		TTL:    cfg.Cache.DexScreenerTTL,
	}
	chatService := &service.ChatService{
		Repo:       store,
		Logger:     logger,
		MaxMessage: cfg.Chat.MaxMessageLen,
		PageLimit:  cfg.Chat.PageLimit,
	}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())

	healthHandler := &handler.HealthHandler{DB: dbConn.Gorm}
	healthHandler.Register(engine)
	tokensHandler := &handler.TokensHandler{Tokens: tokenService, Stored: storedService, Logger: logger}
	tokensHandler.Register(engine)
	trendingHandler := &handler.TrendingHandler{Tokens: tokenService, Logger: logger}
	trendingHandler.Register(engine)
	dexHandler := &handler.DexScreenerHandler{Dex: dexService, Logger: logger}
	dexHandler.Register(engine)
	syncHandler := &handler.SyncHandler{Sync: syncService, Logger: logger}
	syncHandler.Register(engine)
	clankerHandler := &handler.ClankerHandler{
		Client:          clankerClient,
		Logger:          logger,
		DeployerAddress: cfg.Clanker.DeployerAddress,
	}
	clankerHandler.Register(engine)
	uploadHandler := &handler.UploadHandler{Pinata: pinataClient, Logger: logger}
	uploadHandler.Register(engine)
	chatHandler := &handler.ChatHandler{Chat: chatService, Logger: logger}
	chatHandler.Register(engine)

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Cron.Enabled {
		cronRunner := cronrunner.New(logger, ctx)
		_, err := cronRunner.Add(cfg.Cron.TokenSync, func(ctx context.Context) {
			summary, err := syncService.Run(ctx)
			if err != nil {
				logger.Warn("cron token sync failed", zap.Error(err))
				return
			}
			logger.Info("cron token sync ok",
				zap.Int("checked", summary.TotalChecked),
				zap.Int("found", summary.TokensFound),
				zap.Int("inserted", summary.Inserted),
				zap.Int("updated", summary.Updated),
			)
		})
		if err != nil {
			logger.Warn("cron register token sync failed", zap.Error(err))
		}
		cronRunner.Start()
		defer cronRunner.Stop()
	}

	if cfg.Sync.PollerEnabled {
		poller := &service.SyncPoller{
			Sync:       syncService,
			Logger:     logger,
			Interval:   cfg.Sync.PollInterval,
			MaxBackoff: cfg.Sync.MaxPollBackoff,
		}
		go poller.Run(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
