// Package api is the client for the Monet backend. Authentication is a
// session cookie; every failing response is turned into an *Error carrying
// the human-readable message from the body, so callers treat all backend
// failures uniformly as recoverable.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/project-monet/monet-bot/internal/model"
)

// Error is a non-success backend response.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
}

// Client talks to the Monet REST API. It is safe to share: the underlying
// http.Client and its cookie jar handle their own synchronization.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client for the backend at baseURL. The cookie jar keeps
// the session established by Login alive across calls.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Jar:     jar,
			Timeout: timeout,
		},
	}, nil
}

// do issues one request and decodes the response into out (when non-nil).
// No retries, no cancellation beyond the caller's context.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)

	log.Debugf("%s %s (request %s)", method, path, requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return &Error{StatusCode: resp.StatusCode, Message: errorMessage(data)}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}

// errorMessage pulls the backend's message out of an {"error": ...} body.
func errorMessage(data []byte) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Error != "" {
		return body.Error
	}
	return "An error occurred"
}

// Login authenticates with email and password and stores the session cookie.
func (c *Client) Login(ctx context.Context, email, password string) (model.User, error) {
	var resp struct {
		User model.User `json:"user"`
	}
	err := c.do(ctx, http.MethodPost, "/api/login", nil, map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return model.User{}, fmt.Errorf("login failed: %w", err)
	}
	return resp.User, nil
}

// Register creates an account; the backend logs the new user in immediately.
func (c *Client) Register(ctx context.Context, username, email, password string) (model.User, error) {
	var resp struct {
		User model.User `json:"user"`
	}
	err := c.do(ctx, http.MethodPost, "/api/register", nil, map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return model.User{}, fmt.Errorf("registration failed: %w", err)
	}
	return resp.User, nil
}

// Logout clears the backend session.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/logout", nil, nil, nil)
}

// CurrentUser fetches the authenticated account.
func (c *Client) CurrentUser(ctx context.Context) (model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodGet, "/api/user", nil, nil, &user); err != nil {
		return model.User{}, err
	}
	return user, nil
}

// UpdateBudget sets the monthly budget.
func (c *Client) UpdateBudget(ctx context.Context, monthlyBudget float64) error {
	return c.do(ctx, http.MethodPut, "/api/user/budget", nil, map[string]float64{
		"monthly_budget": monthlyBudget,
	}, nil)
}

// Transactions lists transactions, newest first, optionally filtered.
func (c *Client) Transactions(ctx context.Context, filter model.TransactionFilter) ([]model.Transaction, error) {
	query := url.Values{}
	if filter.Type != "" {
		query.Set("type", filter.Type)
	}
	if filter.Category != "" {
		query.Set("category", filter.Category)
	}
	if filter.StartDate != nil {
		query.Set("start_date", filter.StartDate.String())
	}
	if filter.EndDate != nil {
		query.Set("end_date", filter.EndDate.String())
	}

	var transactions []model.Transaction
	if err := c.do(ctx, http.MethodGet, "/api/transactions", query, nil, &transactions); err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	return transactions, nil
}

type transactionPayload struct {
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Type        string  `json:"transaction_type"`
	Date        string  `json:"date"`
}

func payloadFrom(t model.Transaction) transactionPayload {
	return transactionPayload{
		Amount:      t.Amount,
		Category:    t.Category,
		Description: t.Description,
		Type:        t.Type,
		Date:        t.Date.String(),
	}
}

// CreateTransaction records a new transaction and returns it with the
// backend-assigned id.
func (c *Client) CreateTransaction(ctx context.Context, t model.Transaction) (model.Transaction, error) {
	var created model.Transaction
	if err := c.do(ctx, http.MethodPost, "/api/transactions", nil, payloadFrom(t), &created); err != nil {
		return model.Transaction{}, fmt.Errorf("failed to create transaction: %w", err)
	}
	return created, nil
}

// UpdateTransaction replaces a transaction's fields.
func (c *Client) UpdateTransaction(ctx context.Context, id int64, t model.Transaction) (model.Transaction, error) {
	var updated model.Transaction
	path := fmt.Sprintf("/api/transactions/%d", id)
	if err := c.do(ctx, http.MethodPut, path, nil, payloadFrom(t), &updated); err != nil {
		return model.Transaction{}, fmt.Errorf("failed to update transaction: %w", err)
	}
	return updated, nil
}

// DeleteTransaction removes a transaction.
func (c *Client) DeleteTransaction(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/transactions/%d", id)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return nil
}

// Goals lists savings goals, newest first.
func (c *Client) Goals(ctx context.Context) ([]model.SavingsGoal, error) {
	var goals []model.SavingsGoal
	if err := c.do(ctx, http.MethodGet, "/api/savings-goals", nil, nil, &goals); err != nil {
		return nil, fmt.Errorf("failed to get savings goals: %w", err)
	}
	return goals, nil
}

type goalPayload struct {
	Name          string  `json:"name"`
	TargetAmount  float64 `json:"target_amount"`
	CurrentAmount float64 `json:"current_amount"`
	Deadline      *string `json:"deadline"`
}

func goalPayloadFrom(g model.SavingsGoal) goalPayload {
	p := goalPayload{
		Name:          g.Name,
		TargetAmount:  g.TargetAmount,
		CurrentAmount: g.CurrentAmount,
	}
	if !g.Deadline.IsZero() {
		d := g.Deadline.String()
		p.Deadline = &d
	}
	return p
}

// CreateGoal records a new savings goal.
func (c *Client) CreateGoal(ctx context.Context, g model.SavingsGoal) (model.SavingsGoal, error) {
	var created model.SavingsGoal
	if err := c.do(ctx, http.MethodPost, "/api/savings-goals", nil, goalPayloadFrom(g), &created); err != nil {
		return model.SavingsGoal{}, fmt.Errorf("failed to create savings goal: %w", err)
	}
	return created, nil
}

// UpdateGoal replaces a savings goal's fields.
func (c *Client) UpdateGoal(ctx context.Context, id int64, g model.SavingsGoal) (model.SavingsGoal, error) {
	var updated model.SavingsGoal
	path := fmt.Sprintf("/api/savings-goals/%d", id)
	if err := c.do(ctx, http.MethodPut, path, nil, goalPayloadFrom(g), &updated); err != nil {
		return model.SavingsGoal{}, fmt.Errorf("failed to update savings goal: %w", err)
	}
	return updated, nil
}

// DeleteGoal removes a savings goal.
func (c *Client) DeleteGoal(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/savings-goals/%d", id)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		return fmt.Errorf("failed to delete savings goal: %w", err)
	}
	return nil
}

// Summary fetches the current month's aggregates.
func (c *Client) Summary(ctx context.Context) (model.Summary, error) {
	var summary model.Summary
	if err := c.do(ctx, http.MethodGet, "/api/analytics/summary", nil, nil, &summary); err != nil {
		return model.Summary{}, fmt.Errorf("failed to get summary: %w", err)
	}
	return summary, nil
}

// Trends fetches the historical trend series, oldest first.
func (c *Client) Trends(ctx context.Context) ([]model.TrendPoint, error) {
	var trends []model.TrendPoint
	if err := c.do(ctx, http.MethodGet, "/api/analytics/trends", nil, nil, &trends); err != nil {
		return nil, fmt.Errorf("failed to get trends: %w", err)
	}
	return trends, nil
}

// DailySpending fetches this month's per-day expense totals, ascending.
func (c *Client) DailySpending(ctx context.Context) ([]model.DailyPoint, error) {
	var daily []model.DailyPoint
	if err := c.do(ctx, http.MethodGet, "/api/analytics/daily", nil, nil, &daily); err != nil {
		return nil, fmt.Errorf("failed to get daily spending: %w", err)
	}
	return daily, nil
}
