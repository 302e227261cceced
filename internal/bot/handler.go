package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/project-monet/monet-bot/internal/api"
	"github.com/project-monet/monet-bot/internal/charts"
	"github.com/project-monet/monet-bot/internal/currency"
	"github.com/project-monet/monet-bot/internal/model"
)

// userMessage keeps backend error detail for the chat while hiding
// transport noise.
func userMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return "Something went wrong, please try again"
}

func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	delete(b.states, chatID)

	switch message.Command() {
	case "start":
		b.handleStart(message)
	case "dashboard":
		b.showDashboard(ctx, chatID)
	case "add":
		b.promptAdd(chatID)
	case "transactions":
		b.showTransactions(ctx, chatID, model.TransactionFilter{})
	case "analytics":
		b.showAnalytics(ctx, chatID)
	case "goals":
		b.showGoals(ctx, chatID)
	case "settings":
		b.showSettings(chatID)
	case "edit":
		b.promptEdit(ctx, chatID, message.CommandArguments())
	case "delete":
		b.promptDelete(chatID, message.CommandArguments())
	case "help":
		b.sendText(chatID, helpText)
	default:
		b.sendText(chatID, "Unknown command. Try /help.")
	}
}

const helpText = "💡 Commands\n\n" +
	"/dashboard - balance, budget and insights\n" +
	"/add - record an income or expense\n" +
	"/transactions - list and filter transactions\n" +
	"/analytics - spending charts\n" +
	"/goals - savings goals\n" +
	"/settings - theme, currency and budget\n" +
	"/edit <id> - change a transaction\n" +
	"/delete <id> - remove a transaction"

func (b *Bot) handleStart(message *tgbotapi.Message) {
	text := greeting(time.Now(), b.username) + "\n\n" +
		"I track your money against the Monet budget book:\n\n" +
		"• record incomes and expenses\n" +
		"• watch your monthly budget and insights\n" +
		"• draw spending charts in your theme\n" +
		"• keep savings goals on track\n\n" +
		"Pick an action below."

	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	msg.ReplyMarkup = mainKeyboard()
	b.send(msg)
}

func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	switch message.Text {
	case "🏠 Dashboard":
		b.showDashboard(ctx, chatID)
		return
	case "➕ Add":
		b.promptAdd(chatID)
		return
	case "📋 Transactions":
		b.showTransactions(ctx, chatID, model.TransactionFilter{})
		return
	case "📊 Analytics":
		b.showAnalytics(ctx, chatID)
		return
	case "🎯 Goals":
		b.showGoals(ctx, chatID)
		return
	case "⚙️ Settings":
		b.showSettings(chatID)
		return
	}

	state, ok := b.states[chatID]
	if !ok {
		msg := tgbotapi.NewMessage(chatID, "Pick an action:")
		msg.ReplyMarkup = mainKeyboard()
		b.send(msg)
		return
	}

	switch state.awaiting {
	case awaitingAmount:
		b.finishAddTransaction(ctx, chatID, state, message.Text)
	case awaitingBudget:
		b.finishSetBudget(ctx, chatID, message.Text)
	case awaitingGoal:
		b.finishAddGoal(ctx, chatID, message.Text)
	case awaitingGoalAmount:
		b.finishFundGoal(ctx, chatID, state, message.Text)
	case awaitingEdit:
		b.finishEditTransaction(ctx, chatID, state, message.Text)
	}
}

func (b *Bot) handleCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	chatID := callback.Message.Chat.ID
	data := callback.Data

	switch {
	case data == "add_expense" || data == "add_income":
		transactionType := model.TypeExpense
		if data == "add_income" {
			transactionType = model.TypeIncome
		}
		msg := tgbotapi.NewMessage(chatID, "Pick a category:")
		msg.ReplyMarkup = categoryKeyboard(transactionType)
		b.send(msg)
		b.answer(callback.ID, "")

	case strings.HasPrefix(data, "cat_"):
		b.startAddTransaction(chatID, data)
		b.answer(callback.ID, "")

	case strings.HasPrefix(data, "tx_confirm_"):
		id, _ := strconv.ParseInt(strings.TrimPrefix(data, "tx_confirm_"), 10, 64)
		if err := b.tracker.DeleteTransaction(ctx, id); err != nil {
			b.answer(callback.ID, "")
			b.sendError(chatID, err)
			return
		}
		b.answer(callback.ID, "Transaction deleted")
		b.showTransactions(ctx, chatID, model.TransactionFilter{})

	case data == "tx_cancel":
		b.answer(callback.ID, "Kept it")

	case data == "txf_all":
		b.answer(callback.ID, "")
		b.showTransactions(ctx, chatID, model.TransactionFilter{})

	case data == "txf_income":
		b.answer(callback.ID, "")
		b.showTransactions(ctx, chatID, model.TransactionFilter{Type: model.TypeIncome})

	case data == "txf_expense":
		b.answer(callback.ID, "")
		b.showTransactions(ctx, chatID, model.TransactionFilter{Type: model.TypeExpense})

	case data == "txf_category":
		msg := tgbotapi.NewMessage(chatID, "Filter by category:")
		msg.ReplyMarkup = filterCategoryKeyboard()
		b.send(msg)
		b.answer(callback.ID, "")

	case strings.HasPrefix(data, "txfc_"):
		index, err := strconv.Atoi(strings.TrimPrefix(data, "txfc_"))
		if err != nil {
			b.answer(callback.ID, "")
			return
		}
		category, ok := filterCategoryByIndex(index)
		if !ok {
			b.answer(callback.ID, "")
			return
		}
		b.answer(callback.ID, "")
		b.showTransactions(ctx, chatID, model.TransactionFilter{Category: category})

	case data == "settings_theme":
		msg := tgbotapi.NewMessage(chatID, "Pick a theme:")
		msg.ReplyMarkup = b.settingsTheme.keyboard()
		b.send(msg)
		b.answer(callback.ID, "")

	case data == "settings_currency":
		msg := tgbotapi.NewMessage(chatID, "Pick a currency:")
		msg.ReplyMarkup = currencyKeyboard(b.coordinator.Currency())
		b.send(msg)
		b.answer(callback.ID, "")

	case data == "settings_budget":
		b.states[chatID] = &userState{awaiting: awaitingBudget}
		b.sendText(chatID, "Send the monthly budget amount, e.g. 1200")
		b.answer(callback.ID, "")

	case strings.HasPrefix(data, "theme_"):
		b.switchTheme(chatID, callback.ID, strings.TrimPrefix(data, "theme_"))

	case strings.HasPrefix(data, "currency_"):
		b.switchCurrency(ctx, chatID, callback.ID, strings.TrimPrefix(data, "currency_"))

	case data == "goal_add":
		b.states[chatID] = &userState{awaiting: awaitingGoal}
		b.sendText(chatID, "Describe the goal as name; target; optional deadline.\nFor example: Vacation; 1500; 2026-12-31")
		b.answer(callback.ID, "")

	case strings.HasPrefix(data, "goal_fund_"):
		id, _ := strconv.ParseInt(strings.TrimPrefix(data, "goal_fund_"), 10, 64)
		b.states[chatID] = &userState{awaiting: awaitingGoalAmount, goalID: id}
		b.sendText(chatID, "Send the new saved amount, e.g. 450")
		b.answer(callback.ID, "")

	case strings.HasPrefix(data, "goal_del_"):
		id, _ := strconv.ParseInt(strings.TrimPrefix(data, "goal_del_"), 10, 64)
		if err := b.tracker.DeleteGoal(ctx, id); err != nil {
			b.answer(callback.ID, "")
			b.sendError(chatID, err)
			return
		}
		b.answer(callback.ID, "Goal deleted")
		b.showGoals(ctx, chatID)

	default:
		b.answer(callback.ID, "")
	}
}

func (b *Bot) promptAdd(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, "What are you recording?")
	msg.ReplyMarkup = addTypeKeyboard()
	b.send(msg)
}

// startAddTransaction parses a "cat_<type>_<index>" callback and arms the
// amount prompt.
func (b *Bot) startAddTransaction(chatID int64, data string) {
	parts := strings.Split(data, "_")
	if len(parts) != 3 {
		return
	}
	transactionType := parts[1]
	index, err := strconv.Atoi(parts[2])
	if err != nil {
		return
	}
	category, ok := categoryByIndex(transactionType, index)
	if !ok {
		return
	}

	b.states[chatID] = &userState{
		awaiting:        awaitingAmount,
		transactionType: transactionType,
		category:        category,
	}
	b.sendText(chatID, fmt.Sprintf("%s %s\nSend the amount with an optional note, e.g. 12.50 lunch",
		model.CategoryIcon(category), category))
}

func (b *Bot) finishAddTransaction(ctx context.Context, chatID int64, state *userState, text string) {
	parts := strings.SplitN(strings.TrimSpace(text), " ", 2)
	amount, err := strconv.ParseFloat(parts[0], 64)
	if err != nil || amount <= 0 {
		b.sendText(chatID, "❌ That doesn't look like an amount. Try something like 12.50 lunch")
		return
	}
	description := ""
	if len(parts) == 2 {
		description = strings.TrimSpace(parts[1])
	}

	created, err := b.tracker.AddTransaction(ctx, amount, state.category, description, state.transactionType)
	if err != nil {
		b.sendError(chatID, err)
		return
	}
	delete(b.states, chatID)

	format := b.coordinator.Formatter()
	b.sendText(chatID, fmt.Sprintf("✅ Recorded %s %s in %s",
		model.CategoryIcon(created.Category), format(created.Amount), created.Category))
	b.showDashboard(ctx, chatID)
}

func (b *Bot) finishSetBudget(ctx context.Context, chatID int64, text string) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || amount < 0 {
		b.sendText(chatID, "❌ Send a plain number, e.g. 1200")
		return
	}
	if err := b.tracker.SetBudget(ctx, amount); err != nil {
		b.sendError(chatID, err)
		return
	}
	delete(b.states, chatID)
	b.sendText(chatID, "✅ Monthly budget updated")
	b.showDashboard(ctx, chatID)
}

func (b *Bot) finishAddGoal(ctx context.Context, chatID int64, text string) {
	parts := strings.Split(text, ";")
	if len(parts) < 2 {
		b.sendText(chatID, "❌ Use name; target; optional deadline, e.g. Vacation; 1500; 2026-12-31")
		return
	}
	name := strings.TrimSpace(parts[0])
	target, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil || name == "" || target <= 0 {
		b.sendText(chatID, "❌ Use name; target; optional deadline, e.g. Vacation; 1500; 2026-12-31")
		return
	}

	goal := model.SavingsGoal{Name: name, TargetAmount: target}
	if len(parts) > 2 {
		if deadline, err := time.Parse("2006-01-02", strings.TrimSpace(parts[2])); err == nil {
			goal.Deadline = model.NewDate(deadline)
		}
	}

	if _, err := b.tracker.AddGoal(ctx, goal); err != nil {
		b.sendError(chatID, err)
		return
	}
	delete(b.states, chatID)
	b.sendText(chatID, "✅ Goal created")
	b.showGoals(ctx, chatID)
}

func (b *Bot) finishFundGoal(ctx context.Context, chatID int64, state *userState, text string) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || amount < 0 {
		b.sendText(chatID, "❌ Send a plain number, e.g. 450")
		return
	}

	goals, err := b.tracker.Goals(ctx)
	if err != nil {
		b.sendError(chatID, err)
		return
	}
	for _, g := range goals {
		if g.ID == state.goalID {
			if _, err := b.tracker.UpdateGoalAmount(ctx, g, amount); err != nil {
				b.sendError(chatID, err)
				return
			}
			delete(b.states, chatID)
			b.sendText(chatID, "✅ Goal updated")
			b.showGoals(ctx, chatID)
			return
		}
	}
	b.sendText(chatID, "❌ That goal no longer exists")
}

func (b *Bot) promptEdit(ctx context.Context, chatID int64, args string) {
	id, err := strconv.ParseInt(strings.TrimSpace(args), 10, 64)
	if err != nil {
		b.sendText(chatID, "Usage: /edit <id>. The id is shown in /transactions.")
		return
	}
	list, err := b.tracker.Transactions(ctx, model.TransactionFilter{})
	if err != nil {
		b.sendError(chatID, err)
		return
	}
	for _, t := range list {
		if t.ID == id {
			b.states[chatID] = &userState{awaiting: awaitingEdit, editing: t}
			format := b.coordinator.Formatter()
			b.sendText(chatID, fmt.Sprintf("✏️ #%d %s %s, currently %s.\nSend the new amount with an optional note, e.g. 12.50 lunch",
				t.ID, model.CategoryIcon(t.Category), t.Category, format(t.Amount)))
			return
		}
	}
	b.sendText(chatID, "❌ No transaction with that id")
}

// applyEdit overlays "<amount> [note]" input onto an existing record. An
// omitted note keeps the current one.
func applyEdit(t model.Transaction, text string) (model.Transaction, error) {
	parts := strings.SplitN(strings.TrimSpace(text), " ", 2)
	amount, err := strconv.ParseFloat(parts[0], 64)
	if err != nil || amount <= 0 {
		return model.Transaction{}, fmt.Errorf("parse amount %q", parts[0])
	}
	t.Amount = amount
	if len(parts) == 2 {
		t.Description = strings.TrimSpace(parts[1])
	}
	return t, nil
}

func (b *Bot) finishEditTransaction(ctx context.Context, chatID int64, state *userState, text string) {
	updated, err := applyEdit(state.editing, text)
	if err != nil {
		b.sendText(chatID, "❌ That doesn't look like an amount. Try something like 12.50 lunch")
		return
	}
	saved, err := b.tracker.UpdateTransaction(ctx, updated.ID, updated)
	if err != nil {
		b.sendError(chatID, err)
		return
	}
	delete(b.states, chatID)

	format := b.coordinator.Formatter()
	b.sendText(chatID, fmt.Sprintf("✅ Updated #%d to %s %s",
		saved.ID, format(saved.Amount), saved.Category))
	b.showTransactions(ctx, chatID, model.TransactionFilter{})
}

func (b *Bot) promptDelete(chatID int64, args string) {
	id, err := strconv.ParseInt(strings.TrimSpace(args), 10, 64)
	if err != nil {
		b.sendText(chatID, "Usage: /delete <id>. The id is shown in /transactions.")
		return
	}
	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("Delete transaction #%d?", id))
	msg.ReplyMarkup = deleteConfirmKeyboard(id)
	b.send(msg)
}

func (b *Bot) switchTheme(chatID int64, callbackID, raw string) {
	theme := model.ParseTheme(raw)
	if err := b.coordinator.SetTheme(theme); err != nil {
		b.answer(callbackID, "")
		b.sendError(chatID, err)
		return
	}
	b.answer(callbackID, "Theme: "+theme.DisplayName())

	// Mounted charts were re-rendered in the new palette; show them again.
	b.resendCharts(chatID)
}

func (b *Bot) switchCurrency(ctx context.Context, chatID int64, callbackID, raw string) {
	code := currency.Parse(raw)
	if err := b.coordinator.SetCurrency(code); err != nil {
		b.answer(callbackID, "")
		b.sendError(chatID, err)
		return
	}
	b.answer(callbackID, fmt.Sprintf("Currency: %s %s", currency.Symbol(code), code))
	b.showDashboard(ctx, chatID)
}

func (b *Bot) showDashboard(ctx context.Context, chatID int64) {
	dashboard, err := b.tracker.LoadDashboard(ctx)
	if err != nil {
		b.sendError(chatID, err)
		return
	}
	b.sendText(chatID, b.dashboardText(dashboard))
}

func (b *Bot) showTransactions(ctx context.Context, chatID int64, filter model.TransactionFilter) {
	list, err := b.tracker.Transactions(ctx, filter)
	if err != nil {
		b.sendError(chatID, err)
		return
	}
	msg := tgbotapi.NewMessage(chatID, b.transactionsText(list, filter))
	msg.ReplyMarkup = transactionFilterKeyboard()
	b.send(msg)
}

func (b *Bot) showGoals(ctx context.Context, chatID int64) {
	goals, err := b.tracker.Goals(ctx)
	if err != nil {
		b.sendError(chatID, err)
		return
	}
	msg := tgbotapi.NewMessage(chatID, b.goalsText(goals))
	msg.ReplyMarkup = goalsKeyboard(goals)
	b.send(msg)
}

func (b *Bot) showSettings(chatID int64) {
	theme := b.coordinator.Theme()
	code := b.coordinator.Currency()
	text := fmt.Sprintf("⚙️ Settings\n\nTheme: %s\nCurrency: %s %s",
		theme.DisplayName(), currency.Symbol(code), code)
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = settingsKeyboard()
	b.send(msg)
}

// chartSlots fixes the send order of the analytics charts.
var chartSlots = []charts.Slot{
	charts.SlotCategory,
	charts.SlotTrends,
	charts.SlotComparison,
	charts.SlotDaily,
	charts.SlotDistribution,
}

var chartCaptions = map[charts.Slot]string{
	charts.SlotCategory:     "Spending by category",
	charts.SlotTrends:       "Income vs expenses",
	charts.SlotComparison:   "Monthly comparison",
	charts.SlotDaily:        "Daily spending",
	charts.SlotDistribution: "Expense distribution",
}

func (b *Bot) showAnalytics(ctx context.Context, chatID int64) {
	analytics, err := b.tracker.LoadAnalytics(ctx)
	if err != nil {
		b.sendError(chatID, err)
		return
	}
	b.coordinator.Remember(analytics)
	theme := b.coordinator.Theme()

	breakdown := analytics.Summary.CategoryBreakdown
	if _, err := b.renderer.Category(breakdown, charts.For(theme, charts.KindCategory)); err != nil {
		b.sendError(chatID, err)
		return
	}
	if _, err := b.renderer.Trends(analytics.Trends, charts.For(theme, charts.KindTrend)); err != nil {
		b.sendError(chatID, err)
		return
	}
	if _, err := b.renderer.Comparison(analytics.Trends, charts.For(theme, charts.KindComparison)); err != nil {
		b.sendError(chatID, err)
		return
	}
	if _, err := b.renderer.Daily(analytics.Daily, charts.For(theme, charts.KindDaily)); err != nil {
		b.sendError(chatID, err)
		return
	}
	if _, err := b.renderer.Distribution(breakdown, charts.For(theme, charts.KindDistribution)); err != nil {
		b.sendError(chatID, err)
		return
	}

	b.resendCharts(chatID)

	if legend := legendText(breakdown, theme, b.coordinator.Formatter()); legend != "" {
		b.sendText(chatID, "🏷 Top categories\n"+legend)
	}

	msg := tgbotapi.NewMessage(chatID, "Restyle the charts:")
	msg.ReplyMarkup = b.analyticsTheme.keyboard()
	b.send(msg)
}

// resendCharts sends the current handle of every mounted slot, photos for
// rendered charts and plain text for empty-state placeholders.
func (b *Bot) resendCharts(chatID int64) {
	for _, slot := range chartSlots {
		h := b.renderer.Handle(slot)
		if h == nil {
			continue
		}
		if h.Empty() {
			b.sendText(chatID, fmt.Sprintf("%s: %s", chartCaptions[slot], h.Placeholder()))
			continue
		}
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{
			Name:  string(slot) + ".png",
			Bytes: h.PNG(),
		})
		photo.Caption = chartCaptions[slot]
		b.send(photo)
	}
}
