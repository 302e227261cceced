// Package service composes backend data into the views the bot presents:
// the dashboard and analytics snapshots, the scheduled digest, and the
// theme/currency coordination that keeps rendered charts current.
package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/project-monet/monet-bot/internal/insights"
	"github.com/project-monet/monet-bot/internal/model"
)

// Backend is the part of the API client the tracker uses.
type Backend interface {
	Summary(ctx context.Context) (model.Summary, error)
	Trends(ctx context.Context) ([]model.TrendPoint, error)
	DailySpending(ctx context.Context) ([]model.DailyPoint, error)
	Transactions(ctx context.Context, filter model.TransactionFilter) ([]model.Transaction, error)
	CreateTransaction(ctx context.Context, t model.Transaction) (model.Transaction, error)
	UpdateTransaction(ctx context.Context, id int64, t model.Transaction) (model.Transaction, error)
	DeleteTransaction(ctx context.Context, id int64) error
	Goals(ctx context.Context) ([]model.SavingsGoal, error)
	CreateGoal(ctx context.Context, g model.SavingsGoal) (model.SavingsGoal, error)
	UpdateGoal(ctx context.Context, id int64, g model.SavingsGoal) (model.SavingsGoal, error)
	DeleteGoal(ctx context.Context, id int64) error
	UpdateBudget(ctx context.Context, monthlyBudget float64) error
}

// recentLimit caps the transaction list shown on the dashboard.
const recentLimit = 5

// BudgetTracker assembles backend data into view snapshots.
type BudgetTracker struct {
	backend Backend
	engine  *insights.Engine
	format  func(float64) string
}

// NewBudgetTracker builds a tracker. format renders amounts in the active
// currency; it is called at view-assembly time, so a currency switch takes
// effect on the next load without rebuilding the tracker.
func NewBudgetTracker(backend Backend, format func(float64) string) *BudgetTracker {
	if format == nil {
		format = func(v float64) string { return fmt.Sprintf("%.2f", v) }
	}
	return &BudgetTracker{
		backend: backend,
		engine:  insights.NewEngine(format),
		format:  format,
	}
}

// Dashboard is everything the main view shows: this month's aggregates, the
// latest transactions, savings goals and the derived insight cards.
type Dashboard struct {
	Summary  model.Summary
	Recent   []model.Transaction
	Goals    []model.SavingsGoal
	Trends   []model.TrendPoint
	Insights []insights.Insight
}

// Analytics is the data behind the chart views.
type Analytics struct {
	Summary model.Summary
	Trends  []model.TrendPoint
	Daily   []model.DailyPoint
}

// LoadDashboard fetches the dashboard snapshot. Trends ride along because
// insight derivation compares the last two periods.
func (s *BudgetTracker) LoadDashboard(ctx context.Context) (Dashboard, error) {
	summary, err := s.backend.Summary(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("failed to load summary: %w", err)
	}
	trends, err := s.backend.Trends(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("failed to load trends: %w", err)
	}
	transactions, err := s.backend.Transactions(ctx, model.TransactionFilter{})
	if err != nil {
		return Dashboard{}, fmt.Errorf("failed to load transactions: %w", err)
	}
	if len(transactions) > recentLimit {
		transactions = transactions[:recentLimit]
	}
	goals, err := s.backend.Goals(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("failed to load savings goals: %w", err)
	}

	return Dashboard{
		Summary:  summary,
		Recent:   transactions,
		Goals:    goals,
		Trends:   trends,
		Insights: s.engine.Derive(summary, trends),
	}, nil
}

// LoadAnalytics fetches the data behind the chart views.
func (s *BudgetTracker) LoadAnalytics(ctx context.Context) (Analytics, error) {
	summary, err := s.backend.Summary(ctx)
	if err != nil {
		return Analytics{}, fmt.Errorf("failed to load summary: %w", err)
	}
	trends, err := s.backend.Trends(ctx)
	if err != nil {
		return Analytics{}, fmt.Errorf("failed to load trends: %w", err)
	}
	daily, err := s.backend.DailySpending(ctx)
	if err != nil {
		return Analytics{}, fmt.Errorf("failed to load daily spending: %w", err)
	}
	return Analytics{Summary: summary, Trends: trends, Daily: daily}, nil
}

// AddTransaction records a transaction dated today.
func (s *BudgetTracker) AddTransaction(ctx context.Context, amount float64, category, description, transactionType string) (model.Transaction, error) {
	return s.backend.CreateTransaction(ctx, model.Transaction{
		Amount:      amount,
		Category:    category,
		Description: description,
		Type:        transactionType,
		Date:        model.Today(),
	})
}

// UpdateTransaction replaces a transaction's fields.
func (s *BudgetTracker) UpdateTransaction(ctx context.Context, id int64, t model.Transaction) (model.Transaction, error) {
	return s.backend.UpdateTransaction(ctx, id, t)
}

// DeleteTransaction removes a transaction.
func (s *BudgetTracker) DeleteTransaction(ctx context.Context, id int64) error {
	return s.backend.DeleteTransaction(ctx, id)
}

// Transactions lists transactions with the given filter applied.
func (s *BudgetTracker) Transactions(ctx context.Context, filter model.TransactionFilter) ([]model.Transaction, error) {
	return s.backend.Transactions(ctx, filter)
}

// Goals lists savings goals.
func (s *BudgetTracker) Goals(ctx context.Context) ([]model.SavingsGoal, error) {
	return s.backend.Goals(ctx)
}

// AddGoal records a savings goal.
func (s *BudgetTracker) AddGoal(ctx context.Context, g model.SavingsGoal) (model.SavingsGoal, error) {
	return s.backend.CreateGoal(ctx, g)
}

// UpdateGoalAmount sets a goal's saved amount, keeping its other fields.
func (s *BudgetTracker) UpdateGoalAmount(ctx context.Context, g model.SavingsGoal, amount float64) (model.SavingsGoal, error) {
	g.CurrentAmount = amount
	return s.backend.UpdateGoal(ctx, g.ID, g)
}

// DeleteGoal removes a savings goal.
func (s *BudgetTracker) DeleteGoal(ctx context.Context, id int64) error {
	return s.backend.DeleteGoal(ctx, id)
}

// SetBudget updates the monthly budget.
func (s *BudgetTracker) SetBudget(ctx context.Context, monthlyBudget float64) error {
	return s.backend.UpdateBudget(ctx, monthlyBudget)
}

// DigestText builds the scheduled daily summary message.
func (s *BudgetTracker) DigestText(ctx context.Context) (string, error) {
	summary, err := s.backend.Summary(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load summary: %w", err)
	}
	trends, err := s.backend.Trends(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load trends: %w", err)
	}

	var b strings.Builder
	b.WriteString("📊 Daily digest\n\n")
	fmt.Fprintf(&b, "💰 Income: %s\n", s.format(summary.TotalIncome))
	fmt.Fprintf(&b, "💸 Expenses: %s\n", s.format(summary.TotalExpenses))
	fmt.Fprintf(&b, "📈 Balance: %s\n", s.format(summary.Balance))
	if summary.MonthlyBudget > 0 {
		// The percentage is clamped for display only.
		shown := math.Min(summary.BudgetPercentage, 100)
		fmt.Fprintf(&b, "🎯 Budget used: %.0f%% (%s left)\n", shown, s.format(summary.BudgetRemaining))
	}

	for _, insight := range s.engine.Derive(summary, trends) {
		fmt.Fprintf(&b, "\n%s %s: %s", insight.Glyph(), insight.Title, insight.Text)
	}
	return b.String(), nil
}
