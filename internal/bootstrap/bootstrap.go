// Package bootstrap wires config into the logger, storage and token services
// shared by the api and admin binaries.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"go-gin-blog-api/internal/core/auth"
	"go-gin-blog-api/internal/core/cache"
	"go-gin-blog-api/internal/core/config"
	"go-gin-blog-api/internal/core/database"
	"go-gin-blog-api/internal/core/logger"
	"go-gin-blog-api/internal/domain"
	"go-gin-blog-api/internal/repo"
	"go-gin-blog-api/internal/transport/http/router"
)

// migrate runs run against db and closes the pool when it fails.
func migrate(db *gorm.DB, pool io.Closer, run func(*gorm.DB) error) error {
	if err := run(db); err != nil {
		return errors.Join(fmt.Errorf("automigrate: %w", err), pool.Close())
	}
	return nil
}

func Logger(cfg *config.Config) (*zap.Logger, func()) {
	f := cfg.Log.File
	l, flush := logger.New(logger.Options{
		Level:       cfg.Log.Level,
		JSON:        cfg.Log.JSON,
		AddCaller:   true,
		Development: !cfg.App.IsProduction(),
		Rotate: logger.FileRotate{
			Enable:     f.Enable,
			Filename:   f.Filename,
			MaxSizeMB:  f.MaxSizeMB,
			MaxBackups: f.MaxBackups,
			MaxAgeDays: f.MaxAgeDays,
			Compress:   f.Compress,
		},
	})
	restore := logger.RedirectStdLog(l, zapcore.InfoLevel)

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	gin.DefaultWriter = logger.ToWriter(l, zapcore.DebugLevel)
	gin.DefaultErrorWriter = logger.ToWriter(l, zapcore.ErrorLevel)

	return l, func() {
		restore()
		flush()
	}
}

// Store is the storage picked by db.driver.
type Store struct {
	Users domain.UserRepository
	Blogs domain.BlogRepository
	Ready func(ctx context.Context) error
	Close func() error
}

func OpenStore(cfg *config.Config, l *zap.Logger) (*Store, error) {
	if cfg.DB.Driver == "memory" {
		mem := repo.NewMemory()
		l.Warn("using in-memory storage; data is lost on exit")
		return &Store{
			Users: mem.Users(),
			Blogs: mem.Blogs(),
			Ready: func(context.Context) error { return nil },
			Close: func() error { return nil },
		}, nil
	}

	gormLog, err := logger.ToStdLogger(l.Named("gorm"), zapcore.WarnLevel)
	if err != nil {
		return nil, err
	}
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		Log:                gormLog,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s (%s): %w", cfg.DB.Driver, database.MaskDSN(cfg.DB.DSN), err)
	}
	l.Info("database connected", zap.String("driver", cfg.DB.Driver), zap.String("dsn", database.MaskDSN(cfg.DB.DSN)))

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		if err := migrate(db, sqlDB, repo.Migrate); err != nil {
			return nil, err
		}
		l.Info("automigrate done")
	}
	return &Store{
		Users: repo.NewUserRepo(db),
		Blogs: repo.NewBlogRepo(db),
		Ready: sqlDB.PingContext,
		Close: sqlDB.Close,
	}, nil
}

// JWTer builds the signer. With redis configured, tokens become revocable and
// the returned ready check covers redis as well.
func JWTer(ctx context.Context, cfg *config.Config, l *zap.Logger) (*auth.JWTer, func(context.Context) error, func() error, error) {
	j := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
	}
	if !cfg.Redis.Enabled() {
		l.Info("redis not configured; sign out disabled")
		return j, nil, func() error { return nil }, nil
	}

	c := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := c.Ping(pctx); err != nil {
		_ = c.Close()
		return nil, nil, nil, fmt.Errorf("redis %s: %w", cfg.Redis.Addr, err)
	}
	j.Revoked = cache.NewDenylist(c, "")
	l.Info("redis connected", zap.String("addr", cfg.Redis.Addr))
	return j, c.Ping, c.Close, nil
}

// Deps assembles router dependencies; it owns everything it opened until the
// returned close func runs.
func Deps(ctx context.Context, cfg *config.Config, l *zap.Logger) (router.Deps, func() error, error) {
	st, err := OpenStore(cfg, l)
	if err != nil {
		return router.Deps{}, nil, err
	}
	j, redisReady, closeRedis, err := JWTer(ctx, cfg, l)
	if err != nil {
		_ = st.Close()
		return router.Deps{}, nil, err
	}
	ready := st.Ready
	if redisReady != nil {
		ready = func(ctx context.Context) error {
			return errors.Join(st.Ready(ctx), redisReady(ctx))
		}
	}
	d := router.Deps{
		Cfg:   cfg,
		Log:   l,
		JWT:   j,
		Users: st.Users,
		Blogs: st.Blogs,
		Ready: ready,
	}
	return d, func() error { return errors.Join(st.Close(), closeRedis()) }, nil
}
