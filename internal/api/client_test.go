package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/project-monet/monet-bot/internal/model"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := NewClient(server.URL, 5*time.Second)
	require.NoError(t, err)
	return client, server
}

func TestLoginKeepsSessionCookie(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/login", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "monet@example.com", body["email"])
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))

		http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc123"})
		json.NewEncoder(w).Encode(map[string]any{
			"message": "Login successful",
			"user":    map[string]any{"id": 7, "username": "claude", "email": "monet@example.com"},
		})
	})
	mux.HandleFunc("/api/user", func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("session")
		if err != nil || cookie.Value != "abc123" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "Not authenticated"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"id": 7, "username": "claude", "email": "monet@example.com"})
	})

	client, _ := newTestClient(t, mux)

	user, err := client.Login(context.Background(), "monet@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, "claude", user.Username)

	// The session cookie from login must ride along on later calls.
	current, err := client.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "monet@example.com", current.Email)
}

func TestErrorBodyBecomesTypedError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid email or password"})
	})

	client, _ := newTestClient(t, mux)

	_, err := client.Login(context.Background(), "monet@example.com", "wrong")
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Invalid email or password", apiErr.Message)
}

func TestErrorWithoutBodyGetsFallbackMessage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/analytics/summary", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	client, _ := newTestClient(t, mux)

	_, err := client.Summary(context.Background())
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "An error occurred", apiErr.Message)
}

func TestTransactionsFilterQuery(t *testing.T) {
	var gotQuery string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/transactions", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode([]map[string]any{
			{
				"id": 1, "amount": 12.50, "category": "Food & Dining",
				"description": "lunch", "transaction_type": "expense",
				"date": "2026-08-12",
			},
		})
	})

	client, _ := newTestClient(t, mux)

	start := model.NewDate(time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC))
	transactions, err := client.Transactions(context.Background(), model.TransactionFilter{
		Type:      model.TypeExpense,
		Category:  "Food & Dining",
		StartDate: &start,
	})
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, "Food & Dining", transactions[0].Category)
	assert.True(t, transactions[0].IsExpense())
	assert.Contains(t, gotQuery, "type=expense")
	assert.Contains(t, gotQuery, "start_date=2026-08-01")
}

func TestCreateTransactionSendsWireFields(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/transactions", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "expense", body["transaction_type"])
		assert.Equal(t, "2026-08-15", body["date"])
		assert.Equal(t, 42.0, body["amount"])

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"id": 99, "amount": 42.0, "category": "Shopping",
			"transaction_type": "expense", "date": "2026-08-15",
		})
	})

	client, _ := newTestClient(t, mux)

	created, err := client.CreateTransaction(context.Background(), model.Transaction{
		Amount:   42.0,
		Category: "Shopping",
		Type:     model.TypeExpense,
		Date:     model.NewDate(time.Date(2026, time.August, 15, 0, 0, 0, 0, time.UTC)),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(99), created.ID)
}

func TestDeleteTransaction(t *testing.T) {
	var gotPath, gotMethod string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/transactions/", func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotMethod = r.URL.Path, r.Method
		json.NewEncoder(w).Encode(map[string]string{"message": "Transaction deleted successfully"})
	})

	client, _ := newTestClient(t, mux)

	require.NoError(t, client.DeleteTransaction(context.Background(), 15))
	assert.Equal(t, "/api/transactions/15", gotPath)
	assert.Equal(t, http.MethodDelete, gotMethod)
}

func TestGoalDeadlineOmittedWhenUnset(t *testing.T) {
	var gotBody map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("/api/savings-goals", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"id": 3, "name": "Vacation", "target_amount": 1500.0})
	})

	client, _ := newTestClient(t, mux)

	created, err := client.CreateGoal(context.Background(), model.SavingsGoal{
		Name:         "Vacation",
		TargetAmount: 1500,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), created.ID)
	assert.Nil(t, gotBody["deadline"])
}

func TestSummaryDecodesBreakdown(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/analytics/summary", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"total_income":      3000.0,
			"total_expenses":    1200.0,
			"balance":           1800.0,
			"monthly_budget":    1000.0,
			"budget_remaining":  -200.0,
			"budget_percentage": 120.0,
			"category_breakdown": []map[string]any{
				{"category": "Housing", "total": 800.0},
				{"category": "Food & Dining", "total": 400.0},
			},
		})
	})

	client, _ := newTestClient(t, mux)

	summary, err := client.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 120.0, summary.BudgetPercentage)
	require.Len(t, summary.CategoryBreakdown, 2)
	assert.Equal(t, "Housing", summary.CategoryBreakdown[0].Category)
}

func TestTrendsAndDaily(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/analytics/trends", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{
			{"month": "Mar 2026", "income": 3000.0, "expenses": 2000.0, "savings": 1000.0},
			{"month": "Apr 2026", "income": 3000.0, "expenses": 1500.0, "savings": 1500.0},
		})
	})
	mux.HandleFunc("/api/analytics/daily", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{
			{"date": "2026-08-01", "total": 25.0},
			{"date": "2026-08-02", "total": 0.0},
		})
	})

	client, _ := newTestClient(t, mux)

	trends, err := client.Trends(context.Background())
	require.NoError(t, err)
	require.Len(t, trends, 2)
	assert.Equal(t, "Mar 2026", trends[0].Month)
	assert.Equal(t, 1500.0, trends[1].Savings)

	daily, err := client.DailySpending(context.Background())
	require.NoError(t, err)
	require.Len(t, daily, 2)
	assert.Equal(t, "Aug 1", daily[0].Date.Short())
}
