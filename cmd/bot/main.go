package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"github.com/project-monet/monet-bot/internal/api"
	"github.com/project-monet/monet-bot/internal/bot"
	"github.com/project-monet/monet-bot/internal/charts"
	"github.com/project-monet/monet-bot/internal/config"
	"github.com/project-monet/monet-bot/internal/currency"
	"github.com/project-monet/monet-bot/internal/prefs"
	"github.com/project-monet/monet-bot/internal/service"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	flag.Parse()

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := api.NewClient(cfg.Backend.URL, time.Duration(cfg.Backend.TimeoutSeconds)*time.Second)
	if err != nil {
		log.Fatalf("failed to create backend client: %v", err)
	}

	user, err := client.Login(ctx, cfg.Backend.Email, cfg.Backend.Password)
	if err != nil {
		log.Fatalf("failed to log in to backend: %v", err)
	}
	log.Infof("logged in as %s", user.Username)

	store := prefs.Load(cfg.Prefs.Path)
	format := func(amount float64) string {
		return currency.Format(store.Currency(), amount)
	}
	renderer := charts.NewRenderer(format)
	coordinator := service.NewCoordinator(store, renderer)

	tracker := service.NewBudgetTracker(client, format)

	b, err := bot.NewBot(cfg.Telegram.Token, user.Username, tracker, coordinator, renderer)
	if err != nil {
		log.Fatalf("failed to create bot: %v", err)
	}

	if cfg.Digest.ChatID != 0 {
		scheduler := cron.New()
		_, err := scheduler.AddFunc(cfg.Digest.Schedule, func() {
			b.SendDigest(ctx, cfg.Digest.ChatID)
		})
		if err != nil {
			log.Fatalf("invalid digest schedule %q: %v", cfg.Digest.Schedule, err)
		}
		scheduler.Start()
		defer scheduler.Stop()
		log.Infof("daily digest scheduled: %s", cfg.Digest.Schedule)
	}

	if err := b.Start(ctx); err != nil && err != context.Canceled {
		log.Fatalf("bot stopped: %v", err)
	}
	log.Info("shutting down")
}
