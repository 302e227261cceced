// Package bot is the Telegram front end. It routes commands, keyboard
// presses and free-text replies to the tracker, renders chart images and
// keeps the theme and currency selectors in sync through the coordinator.
package bot

import (
	"context"
	"encoding/json"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"github.com/project-monet/monet-bot/internal/charts"
	"github.com/project-monet/monet-bot/internal/model"
	"github.com/project-monet/monet-bot/internal/service"
)

// userState tracks what free-text input the bot expects from a chat next.
// editing holds the record under /edit so unchanged fields survive the update.
type userState struct {
	awaiting        string
	transactionType string
	category        string
	goalID          int64
	editing         model.Transaction
}

const (
	awaitingAmount     = "amount"
	awaitingBudget     = "budget"
	awaitingGoal       = "goal"
	awaitingGoalAmount = "goal_amount"
	awaitingEdit       = "edit"
)

type Bot struct {
	api         *tgbotapi.BotAPI
	tracker     *service.BudgetTracker
	coordinator *service.Coordinator
	renderer    *charts.Renderer
	states      map[int64]*userState
	username    string

	// Two theme surfaces: the settings menu and the restyle row under the
	// analytics charts. The coordinator keeps their check marks in lockstep.
	settingsTheme  *themeSelector
	analyticsTheme *themeSelector
}

func NewBot(token, username string, tracker *service.BudgetTracker, coordinator *service.Coordinator, renderer *charts.Renderer) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	b := &Bot{
		api:            api,
		tracker:        tracker,
		coordinator:    coordinator,
		renderer:       renderer,
		states:         make(map[int64]*userState),
		username:       username,
		settingsTheme:  &themeSelector{},
		analyticsTheme: &themeSelector{},
	}
	coordinator.RegisterSelector(b.settingsTheme)
	coordinator.RegisterSelector(b.analyticsTheme)
	return b, nil
}

// Start runs the long-polling loop until the context is canceled. Updates
// are handled one at a time; chart and selector state is only touched here
// and never from other goroutines.
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	log.Infof("bot started as @%s", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, update)
		}
	}
}

// HandleWebhook processes a single webhook body, for the serverless entry.
func (b *Bot) HandleWebhook(ctx context.Context, body []byte) error {
	var update tgbotapi.Update
	if err := json.Unmarshal(body, &update); err != nil {
		return err
	}
	b.handleUpdate(ctx, update)
	return nil
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		b.handleCommand(ctx, update.Message)
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	}
}

// SendDigest pushes the scheduled daily summary to the given chat.
func (b *Bot) SendDigest(ctx context.Context, chatID int64) {
	text, err := b.tracker.DigestText(ctx)
	if err != nil {
		log.Errorf("failed to build digest: %v", err)
		return
	}
	b.send(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		log.Errorf("failed to send message: %v", err)
	}
}

func (b *Bot) sendText(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) sendError(chatID int64, err error) {
	log.Errorf("request failed: %v", err)
	b.sendText(chatID, "❌ "+userMessage(err))
}

// answer closes a callback's loading state, optionally with a toast.
func (b *Bot) answer(callbackID, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		log.Errorf("failed to answer callback: %v", err)
	}
}
