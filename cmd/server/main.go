package main // Entry point package

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/tuiter/internal/config"
	"github.com/iliyamo/tuiter/internal/database"
	"github.com/iliyamo/tuiter/internal/handler"
	"github.com/iliyamo/tuiter/internal/logging"
	"github.com/iliyamo/tuiter/internal/middleware"
	"github.com/iliyamo/tuiter/internal/repository"
	"github.com/iliyamo/tuiter/internal/router"
	"github.com/iliyamo/tuiter/internal/service"
)

func main() {
	config.LoadDotEnv("")
	cfg := config.Load() // Load environment config
	log := logging.New(cfg.LogLevel, cfg.LogFormat)
	logging.ShipToDatadog(log, cfg.DatadogHost, cfg.DatadogAPIKey)

	client, db, err := database.Open(cfg.MongoURI, cfg.MongoDB, cfg.MongoConnectTimeout)
	if err != nil {
		log.WithError(err).Fatal("open database")
	}
	idxCtx, cancel := context.WithTimeout(context.Background(), cfg.MongoConnectTimeout)
	if err := database.EnsureIndexes(idxCtx, db); err != nil {
		log.WithError(err).Warn("ensure indexes")
	}
	cancel()

	e := echo.New() // Create Echo instance
	e.HideBanner = true
	e.HTTPErrorHandler = handler.ErrorHandler(log)

	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{AllowOrigins: cfg.CORSOrigins}))

	cacheCfg := config.LoadCacheConfig()
	rlCfg := config.LoadRateLimitConfig()
	if config.RedisNeeded(cacheCfg, rlCfg) {
		if rdb := config.NewRedisClient(config.LoadRedisConfig(), log); rdb != nil {
			defer rdb.Close()
			e.Use(middleware.NewTokenBucket(rlCfg, rdb))
			e.Use(middleware.NewRedisCache(cacheCfg, rdb))
		}
	}

	eventsCfg := config.LoadEventsConfig()
	if eventsCfg.Enabled {
		pub := service.NewActivityPublisher(eventsCfg.URL, eventsCfg.Queue, log)
		defer pub.Close()
		e.Use(middleware.Activity(pub, log))
	}

	// Repositories and handlers are built once and shared by every request.
	router.RegisterRoutes(e, client, router.Handlers{
		Users:     handler.NewUserHandler(repository.NewUserRepo(db)),
		Tuits:     handler.NewTuitHandler(repository.NewTuitRepo(db)),
		Follows:   handler.NewFollowHandler(repository.NewFollowRepo(db)),
		Bookmarks: handler.NewBookmarkHandler(repository.NewBookmarkRepo(db)),
		Messages:  handler.NewMessageHandler(repository.NewMessageRepo(db)),
	})

	addr := ":" + cfg.Port // Address string with port
	go func() {
		log.WithFields(logrus.Fields{"addr": addr, "env": cfg.Env}).Info("listening")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server stopped")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := e.Shutdown(ctx); err != nil {
		log.WithError(err).Warn("http shutdown")
	}
	if err := client.Disconnect(ctx); err != nil {
		log.WithError(err).Warn("mongo disconnect")
	}
	log.Info("stopped")
}
