package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"go-gin-blog-api/internal/bootstrap"
	"go-gin-blog-api/internal/core/config"
	"go-gin-blog-api/internal/core/server"
	"go-gin-blog-api/internal/service"
	"go-gin-blog-api/internal/transport/http/router"
)

func main() {
	var (
		cfgPath = flag.StringP("config", "c", os.Getenv("CONFIG_PATH"), "config file (default "+config.DefaultPath+")")
		promote = flag.String("promote", "", "grant the administrator flag to the user with this email and exit")
		demote  = flag.String("demote", "", "withdraw the administrator flag from the user with this email and exit")
	)
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load(*cfgPath)
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

	if *promote != "" || *demote != "" {
		if err := setAdmin(ctx, service.NewUserService(deps.Users), *promote, *demote); err != nil {
			log.Error("set admin failed", zap.Error(err))
			os.Exit(1)
		}
		return
	}

	a := cfg.App.Admin
	addr := server.Addr(a.Host, a.Port)
	srv := server.BuildServer(addr, router.NewAdminEngine(deps), 5*time.Second, 10*time.Second, 60*time.Second)

	base := server.HumanURL(a.Host, a.Port)
	log.Info("admin api starting",
		zap.String("open", base),
		zap.String("health", base+"/health"),
		zap.String("admin_v1", base+"/admin/v1"),
	)
	if err := server.Serve(ctx, srv, log, 10*time.Second); err != nil {
		log.Error("admin api stopped with error", zap.Error(err))
		return
	}
	log.Info("admin api stopped gracefully")
}

func setAdmin(ctx context.Context, users *service.UserService, promote, demote string) error {
	if promote != "" && demote != "" {
		return fmt.Errorf("--promote and --demote are mutually exclusive")
	}
	email, admin := promote, true
	if demote != "" {
		email, admin = demote, false
	}
	if err := users.SetAdmin(ctx, email, admin); err != nil {
		return err
	}
	fmt.Printf("%s: isAdmin=%t\n", email, admin)
	return nil
}
