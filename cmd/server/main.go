package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dmitrymomot/authgate/handler"
	"github.com/dmitrymomot/authgate/modules/member"
	"github.com/dmitrymomot/authgate/pkg/auth"
	"github.com/dmitrymomot/authgate/pkg/config"
	"github.com/dmitrymomot/authgate/pkg/httpserver"
	"github.com/dmitrymomot/authgate/pkg/jwt"
	"github.com/dmitrymomot/authgate/pkg/logger"
	"github.com/dmitrymomot/authgate/pkg/pg"
	"github.com/dmitrymomot/authgate/pkg/ratelimit"
	"github.com/dmitrymomot/authgate/pkg/redis"
)

type appConfig struct {
	// Secret is the base64-encoded HMAC signing key. Decoding happens
	// once at startup; a malformed or short value aborts boot.
	Secret   string        `env:"JWT_SECRET,required"`
	TokenTTL time.Duration `env:"JWT_TTL" envDefault:"24h"`

	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:","`
}

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("server exited", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var (
		appCfg   appConfig
		logCfg   logger.Config
		httpCfg  httpserver.Config
		pgCfg    pg.Config
		redisCfg redis.Config
		limitCfg ratelimit.Config
	)
	if err := config.Load(&appCfg); err != nil {
		return err
	}
	if err := config.Load(&logCfg); err != nil {
		return err
	}
	if err := config.Load(&httpCfg); err != nil {
		return err
	}
	if err := config.Load(&pgCfg); err != nil {
		return err
	}
	if err := config.Load(&redisCfg); err != nil {
		return err
	}
	if err := config.Load(&limitCfg); err != nil {
		return err
	}

	log := logger.NewFromConfig(logCfg, logger.WithAttr(logger.Component("authgate")))
	slog.SetDefault(log)

	tokens, err := jwt.NewFromBase64(appCfg.Secret)
	if err != nil {
		return fmt.Errorf("invalid JWT_SECRET: %w", err)
	}

	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, member.Migrations(), pgCfg, log); err != nil {
		return err
	}

	authOpts := []auth.Option{
		auth.WithLogger(log),
		auth.WithTokenTTL(appCfg.TokenTTL),
	}
	readiness := []func(context.Context) error{pg.Healthcheck(pool)}

	if limitCfg.Enabled {
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return err
		}
		defer client.Close()

		limiter, err := ratelimit.NewLimiter(client, limitCfg.Attempts, limitCfg.Window)
		if err != nil {
			return err
		}
		authOpts = append(authOpts, auth.WithBeforeLogin(loginThrottle(limiter, log)))
		readiness = append(readiness, redis.Healthcheck(client))
	}

	svc := auth.NewService(member.NewRepository(pool), tokens, authOpts...)

	router, err := handler.NewRouter(handler.Deps{
		Auth:        svc,
		Tokens:      tokens,
		Logger:      log,
		CORSOrigins: appCfg.CORSOrigins,
		Readiness:   readiness,
	})
	if err != nil {
		return err
	}

	srv := httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log))
	return srv.Run(ctx, router)
}

// loginThrottle counts login attempts per username. A Redis outage
// fails open: logins proceed unthrottled rather than locking everyone
// out.
func loginThrottle(limiter *ratelimit.Limiter, log *slog.Logger) func(ctx context.Context, username string) error {
	return func(ctx context.Context, username string) error {
		res, err := limiter.Allow(ctx, "login:"+username)
		if err != nil {
			log.WarnContext(ctx, "login throttle unavailable", logger.Error(err))
			return nil
		}
		if !res.Allowed {
			return ratelimit.ErrLimitExceeded
		}
		return nil
	}
}
