package bot

import (
	"fmt"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/project-monet/monet-bot/internal/currency"
	"github.com/project-monet/monet-bot/internal/model"
)

func mainKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("🏠 Dashboard"),
			tgbotapi.NewKeyboardButton("➕ Add"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("📋 Transactions"),
			tgbotapi.NewKeyboardButton("📊 Analytics"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("🎯 Goals"),
			tgbotapi.NewKeyboardButton("⚙️ Settings"),
		),
	)
}

func addTypeKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💸 Expense", "add_expense"),
			tgbotapi.NewInlineKeyboardButtonData("💰 Income", "add_income"),
		),
	)
}

// categoryKeyboard lists the fixed category set for a transaction type, two
// per row. Callback data carries the index because category labels can
// exceed what fits comfortably in callback payloads.
func categoryKeyboard(transactionType string) tgbotapi.InlineKeyboardMarkup {
	categories := model.ExpenseCategories
	if transactionType == model.TypeIncome {
		categories = model.IncomeCategories
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for i := 0; i < len(categories); i += 2 {
		row := []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(
				model.CategoryIcon(categories[i])+" "+categories[i],
				fmt.Sprintf("cat_%s_%d", transactionType, i),
			),
		}
		if i+1 < len(categories) {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(
				model.CategoryIcon(categories[i+1])+" "+categories[i+1],
				fmt.Sprintf("cat_%s_%d", transactionType, i+1),
			))
		}
		rows = append(rows, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func categoryByIndex(transactionType string, index int) (string, bool) {
	categories := model.ExpenseCategories
	if transactionType == model.TypeIncome {
		categories = model.IncomeCategories
	}
	if index < 0 || index >= len(categories) {
		return "", false
	}
	return categories[index], true
}

// transactionFilterKeyboard narrows the transaction list by type or category.
func transactionFilterKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("All", "txf_all"),
			tgbotapi.NewInlineKeyboardButtonData("💰 Income", "txf_income"),
			tgbotapi.NewInlineKeyboardButtonData("💸 Expenses", "txf_expense"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🏷 By category", "txf_category"),
		),
	)
}

// filterCategories spans both transaction types so one keyboard covers the
// whole category filter. Order is fixed; callback data indexes into it.
func filterCategories() []string {
	categories := make([]string, 0, len(model.ExpenseCategories)+len(model.IncomeCategories))
	categories = append(categories, model.ExpenseCategories...)
	categories = append(categories, model.IncomeCategories...)
	return categories
}

func filterCategoryKeyboard() tgbotapi.InlineKeyboardMarkup {
	categories := filterCategories()

	var rows [][]tgbotapi.InlineKeyboardButton
	for i := 0; i < len(categories); i += 2 {
		row := []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(
				model.CategoryIcon(categories[i])+" "+categories[i],
				fmt.Sprintf("txfc_%d", i),
			),
		}
		if i+1 < len(categories) {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(
				model.CategoryIcon(categories[i+1])+" "+categories[i+1],
				fmt.Sprintf("txfc_%d", i+1),
			))
		}
		rows = append(rows, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func filterCategoryByIndex(index int) (string, bool) {
	categories := filterCategories()
	if index < 0 || index >= len(categories) {
		return "", false
	}
	return categories[index], true
}

func settingsKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎨 Theme", "settings_theme"),
			tgbotapi.NewInlineKeyboardButtonData("💱 Currency", "settings_currency"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎯 Monthly budget", "settings_budget"),
		),
	)
}

func currencyKeyboard(active currency.Code) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, code := range currency.Codes {
		label := fmt.Sprintf("%s %s", currency.Symbol(code), code)
		if code == active {
			label = "✓ " + label
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, "currency_"+string(code)))
		if len(row) == 3 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func deleteConfirmKeyboard(id int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑 Delete", fmt.Sprintf("tx_confirm_%d", id)),
			tgbotapi.NewInlineKeyboardButtonData("Cancel", "tx_cancel"),
		),
	)
}

func goalsKeyboard(goals []model.SavingsGoal) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, g := range goals {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💵 Fund "+g.Name, fmt.Sprintf("goal_fund_%d", g.ID)),
			tgbotapi.NewInlineKeyboardButtonData("🗑", fmt.Sprintf("goal_del_%d", g.ID)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("➕ New goal", "goal_add"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// themeSelector is one surface that displays the active theme. The settings
// menu and the analytics view each hold their own; the coordinator pushes
// every theme change to both so their check marks never diverge.
type themeSelector struct {
	mu     sync.Mutex
	active model.Theme
}

func (s *themeSelector) ShowSelected(t model.Theme) {
	s.mu.Lock()
	s.active = t
	s.mu.Unlock()
}

func (s *themeSelector) keyboard() tgbotapi.InlineKeyboardMarkup {
	s.mu.Lock()
	active := s.active
	s.mu.Unlock()

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, theme := range model.Themes {
		label := theme.DisplayName()
		if theme == active {
			label = "✓ " + label
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, "theme_"+string(theme)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
