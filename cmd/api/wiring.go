// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"github.com/taibuivan/secureblog/internal/api"
	"github.com/taibuivan/secureblog/internal/auth"
	"github.com/taibuivan/secureblog/internal/platform/config"
	"github.com/taibuivan/secureblog/internal/platform/constants"
	"github.com/taibuivan/secureblog/internal/platform/csrf"
	"github.com/taibuivan/secureblog/internal/platform/logging"
	"github.com/taibuivan/secureblog/internal/platform/metrics"
	"github.com/taibuivan/secureblog/internal/platform/middleware"
	"github.com/taibuivan/secureblog/internal/platform/migration"
	pgstore "github.com/taibuivan/secureblog/internal/platform/postgres"
	redisstore "github.com/taibuivan/secureblog/internal/platform/redis"
	"github.com/taibuivan/secureblog/internal/platform/sec"
	"github.com/taibuivan/secureblog/internal/platform/sqlite"
	"github.com/taibuivan/secureblog/internal/post"
)

// storage is the repository pair for the configured database driver.
type storage struct {
	users auth.UserRepository
	posts post.PostRepository
	check api.Check
	close func()
}

// app holds the long-lived dependencies shared by every command.
type app struct {
	cfg     *config.Config
	log     *slog.Logger
	logSink io.Closer
	storage *storage
	redis   *goredis.Client
	tokens  *sec.TokenService
	metrics *metrics.Metrics
	limiter *middleware.RateLimiter
}

// bootstrap loads configuration, builds the logger and opens storage.
//
// Startup work is bounded by [constants.StartupTimeout] so misconfiguration
// fails fast rather than hanging.
func bootstrap(ctx context.Context, runMigrations bool) (*app, error) {
	bootLog, _ := logging.New(logging.Options{App: constants.AppName})

	cfg, err := config.Load()
	if err != nil {
		bootLog.Error("startup_failed", slog.String("step", "load configuration"), slog.Any("error", err))
		return nil, err
	}

	log, sink := logging.New(logging.Options{
		App:        constants.AppName,
		Debug:      cfg.Debug,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
	})
	slog.SetDefault(log)

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("db_driver", cfg.DBDriver),
		slog.String("csrf_store", cfg.CSRFStore),
	)

	a := &app{
		cfg:     cfg,
		log:     log,
		logSink: sink,
		metrics: metrics.New(),
		limiter: middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
	}

	startupCtx, cancel := context.WithTimeout(ctx, constants.StartupTimeout)
	defer cancel()

	a.tokens, err = newTokenService(cfg)
	if err != nil {
		return nil, a.abort(err, "initialize token service")
	}

	a.storage, err = openStorage(startupCtx, cfg, log, runMigrations)
	if err != nil {
		return nil, a.abort(err, "open storage")
	}

	if cfg.RedisURL != "" {
		a.redis, err = redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		if err != nil {
			return nil, a.abort(err, "connect to redis")
		}
	}

	return a, nil
}

func openStorage(ctx context.Context, cfg *config.Config, log *slog.Logger, runMigrations bool) (*storage, error) {
	switch cfg.DBDriver {
	case config.DriverSQLite:
		db, err := sqlite.OpenLogged(cfg.SQLitePath, log)
		if err != nil {
			return nil, err
		}
		if runMigrations {
			if err := migration.RunSQLite(db, log); err != nil {
				_ = db.Close()
				return nil, err
			}
		}
		return &storage{
			users: auth.NewSQLiteUserRepository(db),
			posts: post.NewSQLitePostRepository(db),
			check: api.Check{Name: "sqlite", Probe: func(ctx context.Context) error {
				return sqlite.Ping(ctx, db)
			}},
			close: func() {
				log.Info("closing sqlite database")
				_ = db.Close()
			},
		}, nil

	case config.DriverPostgres:
		pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, log)
		if err != nil {
			return nil, err
		}
		if runMigrations {
			if err := migration.RunPostgres(cfg.DatabaseURL, log); err != nil {
				pool.Close()
				return nil, err
			}
		}
		return &storage{
			users: auth.NewUserRepository(pool),
			posts: post.NewPostRepository(pool),
			check: api.Check{Name: "postgres", Probe: func(ctx context.Context) error {
				return pgstore.Ping(ctx, pool)
			}},
			close: func() {
				log.Info("closing postgres pool")
				pool.Close()
			},
		}, nil
	}

	return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
}

// # Services

func newTokenService(cfg *config.Config) (*sec.TokenService, error) {
	if cfg.UsesRSA() {
		return sec.NewRSATokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, cfg.JWTIssuer, cfg.JWTTTL)
	}
	return sec.NewHMACTokenService([]byte(cfg.JWTSecret), cfg.JWTIssuer, cfg.JWTTTL)
}

func (a *app) authService() (*auth.Service, error) {
	hasher, err := sec.NewPasswordHasher(a.cfg.BcryptCost)
	if err != nil {
		return nil, err
	}
	return auth.NewService(a.storage.users, hasher, a.tokens, a.metrics), nil
}

func (a *app) postService() *post.Service {
	return post.NewService(a.storage.posts, a.metrics)
}

func (a *app) csrfGuard() *csrf.Guard {
	options := csrf.CookieOptions{
		Name:   a.cfg.CSRFCookieName,
		Secure: a.cfg.CSRFCookieSecure,
		TTL:    a.cfg.CSRFTTL,
	}

	var store csrf.SecretStore = csrf.NewCookieStore(options)
	if a.cfg.CSRFStore == config.CSRFStoreRedis {
		store = csrf.NewRedisStore(a.redis, options)
	}
	return csrf.NewGuard(store, a.metrics)
}

// server wires every handler into the HTTP server.
func (a *app) server() (*api.Server, error) {
	accounts, err := a.authService()
	if err != nil {
		return nil, err
	}

	checks := []api.Check{a.storage.check}
	if a.redis != nil {
		client := a.redis
		checks = append(checks, api.Check{Name: "redis", Probe: func(ctx context.Context) error {
			return redisstore.Ping(ctx, client)
		}})
	}
	liveness, readiness := api.NewHealthHandlers(a.log, checks...)

	return api.NewServer(a.cfg, a.log, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(accounts),
		Post:      post.NewHandler(a.postService()),
		CSRF:      a.csrfGuard(),
		Verifier:  a.tokens,
		Limiter:   a.limiter,
		Metrics:   a.metrics,
	}), nil
}

// # Lifecycle

func (a *app) fail(err error, step string) error {
	a.log.Error("startup_failed", slog.String("step", step), slog.Any("error", err))
	return fmt.Errorf("%s: %w", step, err)
}

// abort logs a failed bootstrap step and releases what was already acquired.
func (a *app) abort(err error, step string) error {
	err = a.fail(err, step)
	a.Close()
	return err
}

// Close releases storage, Redis and the log file, in reverse order of acquisition.
func (a *app) Close() {
	if a.redis != nil {
		a.log.Info("closing redis client")
		if err := a.redis.Close(); err != nil {
			a.log.Error("redis close error", slog.Any("error", err))
		}
	}
	if a.storage != nil {
		a.storage.close()
	}
	_ = a.logSink.Close()
}
