package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/project-monet/monet-bot/internal/model"
)

func TestApplyEditOverlaysAmountAndNote(t *testing.T) {
	existing := model.Transaction{
		ID:          7,
		Amount:      10,
		Category:    "Food & Dining",
		Description: "lunch",
		Type:        model.TypeExpense,
	}

	updated, err := applyEdit(existing, "12.50 dinner")
	require.NoError(t, err)
	assert.Equal(t, 12.50, updated.Amount)
	assert.Equal(t, "dinner", updated.Description)
	// Untouched fields survive the edit.
	assert.Equal(t, int64(7), updated.ID)
	assert.Equal(t, "Food & Dining", updated.Category)
	assert.Equal(t, model.TypeExpense, updated.Type)
}

func TestApplyEditKeepsNoteWhenOmitted(t *testing.T) {
	existing := model.Transaction{ID: 7, Amount: 10, Description: "lunch"}

	updated, err := applyEdit(existing, "25")
	require.NoError(t, err)
	assert.Equal(t, 25.0, updated.Amount)
	assert.Equal(t, "lunch", updated.Description)
}

func TestApplyEditRejectsBadAmounts(t *testing.T) {
	existing := model.Transaction{ID: 7, Amount: 10}

	_, err := applyEdit(existing, "free lunch")
	assert.Error(t, err)

	_, err = applyEdit(existing, "-3")
	assert.Error(t, err)
}

func TestTransactionFilterKeyboard(t *testing.T) {
	keyboard := transactionFilterKeyboard()
	require.Len(t, keyboard.InlineKeyboard, 2)
	assert.Equal(t, "txf_all", *keyboard.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "txf_income", *keyboard.InlineKeyboard[0][1].CallbackData)
	assert.Equal(t, "txf_expense", *keyboard.InlineKeyboard[0][2].CallbackData)
	assert.Equal(t, "txf_category", *keyboard.InlineKeyboard[1][0].CallbackData)
}

func TestFilterCategoryKeyboardRoundTrip(t *testing.T) {
	category, ok := filterCategoryByIndex(0)
	require.True(t, ok)
	assert.Equal(t, "Food & Dining", category)

	// Income categories follow the expense set in one continuous index space.
	last := len(model.ExpenseCategories) + len(model.IncomeCategories) - 1
	category, ok = filterCategoryByIndex(last)
	require.True(t, ok)
	assert.Equal(t, "Other Income", category)

	_, ok = filterCategoryByIndex(last + 1)
	assert.False(t, ok)

	keyboard := filterCategoryKeyboard()
	assert.Equal(t, "txfc_0", *keyboard.InlineKeyboard[0][0].CallbackData)
}
