package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/authbridge/handler"
	"github.com/dmitrymomot/authbridge/modules/account"
	"github.com/dmitrymomot/authbridge/pkg/authproxy"
	"github.com/dmitrymomot/authbridge/pkg/authresult"
	"github.com/dmitrymomot/authbridge/pkg/clientip"
	"github.com/dmitrymomot/authbridge/pkg/config"
	"github.com/dmitrymomot/authbridge/pkg/cookie"
	"github.com/dmitrymomot/authbridge/pkg/events"
	"github.com/dmitrymomot/authbridge/pkg/httpserver"
	"github.com/dmitrymomot/authbridge/pkg/logger"
	"github.com/dmitrymomot/authbridge/pkg/mongo"
	"github.com/dmitrymomot/authbridge/pkg/ratelimiter"
	"github.com/dmitrymomot/authbridge/pkg/redis"
	"github.com/dmitrymomot/authbridge/pkg/requestid"
)

type appConfig struct {
	Name     string `env:"APP_NAME" envDefault:"authbridge"`
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("authbridge stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var (
		app        appConfig
		serverCfg  httpserver.Config
		proxyCfg   authproxy.Config
		cookieCfg  cookie.Config
		accountCfg account.Config
		mongoCfg   mongo.Config
		redisCfg   redis.Config
		eventsCfg  events.Config
		ipCfg      clientip.Config
		limitCfg   ratelimiter.Config
	)
	if err := errors.Join(
		config.Load(&app),
		config.Load(&serverCfg),
		config.Load(&proxyCfg),
		config.Load(&cookieCfg),
		config.Load(&accountCfg),
		config.Load(&mongoCfg),
		config.Load(&redisCfg),
		config.Load(&eventsCfg),
		config.Load(&ipCfg),
		config.Load(&limitCfg),
	); err != nil {
		return err
	}

	log := logger.New(
		logger.WithEnvironment(app.Env, app.Name),
		logger.WithLevelName(app.LogLevel),
		logger.WithContextExtractors(requestid.LoggerExtractor(), clientip.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	checks := []httpserver.Check{}

	db := mongo.NewProvider(mongoCfg)
	if db.Configured() {
		checks = append(checks, httpserver.Check{Name: "mongo", Fn: db.Ping})
		defer func() {
			if err := db.Close(context.WithoutCancel(ctx)); err != nil {
				log.Error("failed to close mongo client", logger.Error(err))
			}
		}()
	}

	var publisher events.Publisher
	if redisCfg.ConnectionURL != "" {
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return err
		}
		defer client.Close()
		publisher = client
		checks = append(checks, httpserver.Check{Name: "redis", Fn: redis.Healthcheck(client)})
	}
	dispatcher := events.NewDispatcher(eventsCfg, publisher)

	upstream, err := authproxy.New(proxyCfg, authproxy.WithLogger(log))
	if err != nil {
		return err
	}

	opts := []account.Option{
		account.WithNormalizer(authresult.New(
			authresult.WithLogger(log),
			authresult.WithMaxBodySize(proxyCfg.MaxBodySize),
		)),
		account.WithCookieManager(cookie.NewFromConfig(cookieCfg)),
		account.WithDispatcher(dispatcher),
		account.WithLogger(log),
	}
	if limitCfg.Enabled {
		store := ratelimiter.NewMemoryStore()
		defer store.Close()
		limiter, err := ratelimiter.New(store, limitCfg)
		if err != nil {
			return err
		}
		opts = append(opts, account.WithRateLimiter(limiter))
	}
	svc := account.NewService(accountCfg, upstream, opts...)
	r := chi.NewRouter()
	r.Use(requestid.Middleware, clientip.NewFromConfig(ipCfg).Middleware, middleware.Recoverer)
	r.Get("/healthz", httpserver.LivenessHandler())
	r.Get("/readyz", httpserver.ReadinessHandler(log, serverCfg.ReadyTimeout, checks...))
	r.Mount("/", account.Router(svc))
	r.With(svc.RequireSession).Get("/session", handler.Wrap(func(handler.Context, struct{}) handler.Response {
		return handler.Empty()
	}))

	return httpserver.NewFromConfig(serverCfg, httpserver.WithLogger(log)).Run(ctx, r)
}
