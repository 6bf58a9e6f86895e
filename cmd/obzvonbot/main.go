package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tele "gopkg.in/telebot.v4"

	"obzvonbot/core/bootstrap"
	coreconfig "obzvonbot/core/config"
	"obzvonbot/core/logger"
	coretelegram "obzvonbot/core/telegram"
	"obzvonbot/core/telegram/middleware"
	"obzvonbot/internal/bot"
	"obzvonbot/internal/service"
	"obzvonbot/internal/storage/postgres"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := coreconfig.Load(cfgPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	res, err := bootstrap.Run(bootstrap.Options{Config: cfg})
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}
	defer func() {
		_ = res.DB.Close()
		_ = logger.Shutdown()
	}()

	store := postgres.New(res.DB)
	settings := service.NewSettings(store, cfg.Journal.Regions)
	records := service.NewRecords(store, settings)

	channel := bot.NewTeleChannel(bot.NewMenus(cfg.Journal.Regions))
	engine := bot.NewEngine(channel, settings, records, cfg.Journal.PhonePrefix)

	middlewares := []coretelegram.Middleware{
		{Name: "recover", Use: middleware.RecoverMiddleware},
	}
	if cfg.RateLimit.IntervalMS > 0 {
		middlewares = append(middlewares, coretelegram.Middleware{
			Name: "rate_limit",
			Use: middleware.RateLimitMiddleware(middleware.RateLimitOptions{
				Interval: time.Duration(cfg.RateLimit.IntervalMS) * time.Millisecond,
			}),
		})
	}
	middlewares = append(middlewares, coretelegram.Middleware{
		Name: "logging",
		Use:  middleware.LoggerMiddleware,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = coretelegram.Run(ctx, coretelegram.RunOptions{
		Config:      cfg,
		Middlewares: middlewares,
		Routes:      bot.Routes(engine),
		OnStart: func(_ context.Context, b *tele.Bot) error {
			channel.Bind(b)
			return nil
		},
	})
	if err != nil {
		logger.L.Error("bot stopped with error",
			slog.String("component", "app"),
			slog.String("event", "shutdown"),
			slog.String("err", err.Error()),
		)
		_ = logger.Shutdown()
		os.Exit(1)
	}

	logger.L.Info("bot stopped",
		slog.String("component", "app"),
		slog.String("event", "shutdown"),
	)
}
