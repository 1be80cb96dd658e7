package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"go-gin-blog-api/internal/bootstrap"
	"go-gin-blog-api/internal/core/config"
	"go-gin-blog-api/internal/core/server"
	"go-gin-blog-api/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := bootstrap.Logger(cfg)
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps, closeDeps, err := bootstrap.Deps(ctx, cfg, log)
	if err != nil {
		log.Fatal("startup failed", zap.Error(err))
	}
	defer func() {
		if err := closeDeps(); err != nil {
			log.Warn("close", zap.Error(err))
		}
	}()

	h := cfg.App.HTTP
	addr := server.Addr(h.Host, h.Port)
	srv := server.BuildServer(addr, router.NewAPIEngine(deps),
		time.Duration(h.ReadTimeoutSec)*time.Second,
		time.Duration(h.WriteTimeoutSec)*time.Second,
		time.Duration(h.IdleTimeoutSec)*time.Second,
	)

	base := server.HumanURL(h.Host, h.Port)
	log.Info("blog api starting",
		zap.String("env", cfg.App.Env),
		zap.String("open", base),
		zap.String("health", base+"/health"),
		zap.String("api", base+"/api"),
	)
	if err := server.Serve(ctx, srv, log, 10*time.Second); err != nil {
		log.Error("blog api stopped with error", zap.Error(err))
		return
	}
	log.Info("blog api stopped gracefully")
}
