package main

import (
	"context"
	"time"

	"github.com/project-monet/monet-bot/internal/api"
	"github.com/project-monet/monet-bot/internal/bot"
	"github.com/project-monet/monet-bot/internal/charts"
	"github.com/project-monet/monet-bot/internal/config"
	"github.com/project-monet/monet-bot/internal/currency"
	"github.com/project-monet/monet-bot/internal/prefs"
	"github.com/project-monet/monet-bot/internal/service"
)

// Request is the API gateway's envelope around a Telegram webhook update.
type Request struct {
	Body string `json:"body"`
}

// Response is the API gateway's reply envelope.
type Response struct {
	StatusCode int               `json:"statusCode"`
	Body       string            `json:"body"`
	Headers    map[string]string `json:"headers,omitempty"`
}

// Handler processes one webhook update per invocation.
func Handler(ctx context.Context, request Request) (*Response, error) {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		return errorResponse(err)
	}

	client, err := api.NewClient(cfg.Backend.URL, time.Duration(cfg.Backend.TimeoutSeconds)*time.Second)
	if err != nil {
		return errorResponse(err)
	}
	if _, err := client.Login(ctx, cfg.Backend.Email, cfg.Backend.Password); err != nil {
		return errorResponse(err)
	}

	store := prefs.Load(cfg.Prefs.Path)
	format := func(amount float64) string {
		return currency.Format(store.Currency(), amount)
	}
	renderer := charts.NewRenderer(format)
	coordinator := service.NewCoordinator(store, renderer)
	tracker := service.NewBudgetTracker(client, format)

	b, err := bot.NewBot(cfg.Telegram.Token, "", tracker, coordinator, renderer)
	if err != nil {
		return errorResponse(err)
	}

	if err := b.HandleWebhook(ctx, []byte(request.Body)); err != nil {
		return errorResponse(err)
	}

	return &Response{
		StatusCode: 200,
		Body:       "",
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}

func errorResponse(err error) (*Response, error) {
	return &Response{
		StatusCode: 500,
		Body:       err.Error(),
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}

func main() {
	// Entry point for local builds; the serverless runtime calls Handler.
}
