package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"utmkit/cache"
	"utmkit/cache/redis"
	"utmkit/config"
	"utmkit/idgenerator"
	"utmkit/logger"
	"utmkit/propertyname"
	"utmkit/repository"
	"utmkit/server"
	"utmkit/utm"
)

var (
	env       config.Env
	db        repository.Repository
	zaplogger *zap.Logger
)

func main() {
	var err error
	env, err = config.Process()
	if err != nil {
		log.Fatalf("failed to process env: %s", err)
	}

	zaplogger, err = logger.New(logger.Config{
		Level:       env.LogLevel,
		Development: env.LogDevelopment,
		File:        env.LogFile,
	})
	if err != nil {
		log.Fatalf("failed to initialize logger: %s", err)
	}
	if !env.LogDevelopment {
		gin.SetMode(gin.ReleaseMode)
	}

	options, err := config.LoadOptions(env.OptionsFile)
	if err != nil {
		zaplogger.Fatal("failed to load options", zap.String("file", env.OptionsFile), zap.Error(err))
	}

	switch env.DBDriver {
	case config.DriverSQLite:
		db, err = repository.NewSQLiteRepo(env.DBPath)
	default:
		db, err = repository.NewPGRepo(env.DBPort, env.DBHost, env.DBUser, env.DBName, env.DBPassword)
	}
	if err != nil {
		zaplogger.Fatal("failed to connect db", zap.String("driver", env.DBDriver), zap.Error(err))
	}

	switch env.CacheKind {
	case config.CacheMemory:
		db = cache.NewInMemory(db, zaplogger)
	case config.CacheRedis:
		db = cache.New(db, redis.New(env.CacheHost, env.CachePort), zaplogger)
	}

	idGenerator := idgenerator.New(db, zaplogger)
	r := server.NewRouter(server.App{
		DB:             db,
		IDGenerator:    idGenerator,
		UTM:            utm.NewService(db, utm.Options{RequireContent: env.RequireContent}, zaplogger),
		Properties:     propertyname.NewGenerator(options),
		Options:        options,
		RedirectOrigin: env.RedirectOrigin,
	}, zaplogger)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", env.AppPort),
		Handler: r,
	}
	go func() {
		zaplogger.Info("listening", zap.String("addr", srv.Addr), zap.String("db", env.DBDriver), zap.String("cache", env.CacheKind))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zaplogger.Fatal("server stopped", zap.Error(err))
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		env.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			// in-flight requests still use the database, so drain them first
			"http-server": func(ctx context.Context) error {
				zaplogger.Info("shutting down")
				if err := srv.Shutdown(ctx); err != nil {
					return err
				}
				return db.Close()
			},
		},
	)

	exitCode := <-wait
	zaplogger.Info("exited", zap.Int("code", exitCode))
	_ = zaplogger.Sync()
	os.Exit(exitCode)
}
