package expense

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assistant-agents/internal/common/logger"
	"assistant-agents/internal/router"
)

var testNow = time.Date(2025, time.June, 15, 10, 30, 0, 0, time.UTC)

func newTestHandler(t *testing.T) (*Handler, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	service := NewService(DefaultConfig(), NewStore(db), logger.NewTestLogger(t))
	service.now = func() time.Time { return testNow }
	return NewHandler(service, logger.NewTestLogger(t)), mock
}

func amountArgs(amount float64, category, date, description string) router.Arguments {
	return router.Arguments{
		UserID:      "default_user",
		Amount:      &amount,
		Category:    category,
		Date:        date,
		Description: description,
	}
}

func TestHandler_AddExpense(t *testing.T) {
	h, mock := newTestHandler(t)

	mock.ExpectExec("INSERT INTO expenses").
		WillReturnResult(sqlmock.NewResult(0, 1))

	got, err := h.Execute(context.Background(), router.CapAddExpense,
		amountArgs(12.50, "food", "2025-06-15", "coffee"))

	require.NoError(t, err)
	assert.Contains(t, got, "✅ Added expense: $12.50 for coffee (food) on 2025-06-15")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_AddExpense_DescriptionDefaultsToCategory(t *testing.T) {
	h, mock := newTestHandler(t)

	mock.ExpectExec("INSERT INTO expenses").
		WillReturnResult(sqlmock.NewResult(0, 1))

	got, err := h.Execute(context.Background(), router.CapAddExpense,
		amountArgs(50, "electronics", "2025-06-15", ""))

	require.NoError(t, err)
	assert.Contains(t, got, "$50.00 for electronics (electronics)")
}

func TestHandler_ListExpenses(t *testing.T) {
	h, mock := newTestHandler(t)

	rows := sqlmock.NewRows([]string{
		"expense_id", "user_id", "amount", "currency", "category",
		"subcategory", "description", "date", "payment_method", "is_recurring", "tags", "created_at",
	}).
		AddRow("e1", "default_user", 12.50, "USD", "food", "", "coffee", "2025-06-15", "", false, "{}", testNow).
		AddRow("e2", "default_user", 30.00, "USD", "transportation", "", "taxi", "2025-06-14", "", false, "{}", testNow)

	mock.ExpectQuery("SELECT expense_id, user_id, amount").
		WithArgs("default_user", "2025-06-08").
		WillReturnRows(rows)

	got, err := h.Execute(context.Background(), router.CapListExpenses, router.Arguments{
		UserID: "default_user",
		Date:   "2025-06-08",
	})

	require.NoError(t, err)
	assert.Contains(t, got, "coffee")
	assert.Contains(t, got, "taxi")
	assert.Contains(t, got, "Total: $42.50 across 2 expense(s).")
}

func TestHandler_ListExpenses_Empty(t *testing.T) {
	h, mock := newTestHandler(t)

	mock.ExpectQuery("SELECT expense_id").
		WillReturnRows(sqlmock.NewRows([]string{
			"expense_id", "user_id", "amount", "currency", "category",
			"subcategory", "description", "date", "payment_method", "is_recurring", "tags", "created_at",
		}))

	got, err := h.Execute(context.Background(), router.CapListExpenses, router.Arguments{
		UserID: "default_user",
		Date:   "2025-06-15",
	})

	require.NoError(t, err)
	assert.Equal(t, "No expenses found since 2025-06-15.", got)
}

func TestHandler_Summary(t *testing.T) {
	h, mock := newTestHandler(t)

	rows := sqlmock.NewRows([]string{"category", "count", "sum"}).
		AddRow("food", 2, 42.50).
		AddRow("transportation", 1, 30.00)

	mock.ExpectQuery("GROUP BY category").
		WithArgs("default_user", "2025-06-01").
		WillReturnRows(rows)

	got, err := h.Execute(context.Background(), router.CapExpenseSummary, router.Arguments{
		UserID: "default_user",
		Date:   "2025-06-01",
	})

	require.NoError(t, err)
	assert.Contains(t, got, "Total: $72.50 across 3 expense(s)")
	assert.Contains(t, got, "food: $42.50 (2 expense(s))")
	assert.Contains(t, got, "transportation: $30.00 (1 expense(s))")
}

func TestHandler_UpdateExpense(t *testing.T) {
	h, mock := newTestHandler(t)

	mock.ExpectExec("UPDATE expenses SET").
		WillReturnResult(sqlmock.NewResult(0, 1))

	got, err := h.Execute(context.Background(), router.CapUpdateExpense, router.Arguments{
		UserID:   "default_user",
		EntityID: "e1",
		Updates:  `{"amount": 20}`,
	})

	require.NoError(t, err)
	assert.Equal(t, "✅ Updated expense e1.", got)
}

func TestHandler_UpdateExpense_BadPayload(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"missing payload", ""},
		{"broken json", `{"amount":`},
		{"unknown field", `{"wat": 1}`},
		{"wrong type", `{"amount": "twenty"}`},
		{"negative amount", `{"amount": -5}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, mock := newTestHandler(t)

			got, err := h.Execute(context.Background(), router.CapUpdateExpense, router.Arguments{
				UserID:   "default_user",
				EntityID: "e1",
				Updates:  tt.payload,
			})

			require.NoError(t, err, "payload problems are user-facing text, not errors")
			assert.Contains(t, got, "❌")
			assert.NoError(t, mock.ExpectationsWereMet(), "nothing may reach the database")
		})
	}
}

func TestHandler_DeleteExpense_NotFound(t *testing.T) {
	h, mock := newTestHandler(t)

	mock.ExpectExec("DELETE FROM expenses").
		WithArgs("default_user", "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	got, err := h.Execute(context.Background(), router.CapDeleteExpense, router.Arguments{
		UserID:   "default_user",
		EntityID: "missing",
	})

	require.NoError(t, err)
	assert.Equal(t, "❌ No expense with id missing found for you.", got)
}

func TestHandler_BudgetStatus(t *testing.T) {
	h, mock := newTestHandler(t)

	rows := sqlmock.NewRows([]string{"category", "monthly_limit", "spent"}).
		AddRow("food", 300.0, 120.0).
		AddRow("shopping", 100.0, 150.0)

	mock.ExpectQuery("FROM budget_limits").
		WithArgs("default_user", "2025-06-01", "2025-06-15").
		WillReturnRows(rows)

	got, err := h.Execute(context.Background(), router.CapBudgetStatus, router.Arguments{
		UserID: "default_user",
	})

	require.NoError(t, err)
	assert.Contains(t, got, "✅ food: $120.00 of $300.00 spent ($180.00 remaining)")
	assert.Contains(t, got, "⚠️ shopping: $150.00 of $100.00 spent ($-50.00 remaining)")
}

func TestHandler_UnknownCapability(t *testing.T) {
	h, _ := newTestHandler(t)

	_, err := h.Execute(context.Background(), router.CapAddNote, router.Arguments{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownCapability)
}
