package models

import "time"

// Expense is one expense row, keyed by a generated id and scoped to a user.
type Expense struct {
	ExpenseID     string    `json:"expense_id"`
	UserID        string    `json:"user_id"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	Category      string    `json:"category"`
	Subcategory   string    `json:"subcategory,omitempty"`
	Description   string    `json:"description"`
	Date          string    `json:"date"` // YYYY-MM-DD
	PaymentMethod string    `json:"payment_method"`
	IsRecurring   bool      `json:"is_recurring"`
	Tags          []string  `json:"tags,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// ExpenseFilters narrows list/summary queries. Zero values mean "no filter"
// except Category, where "all" is the explicit wildcard.
type ExpenseFilters struct {
	UserID    string
	StartDate string
	EndDate   string
	Category  string
	MinAmount float64
	MaxAmount float64
}

// ExpenseSummary aggregates expenses over a period.
type ExpenseSummary struct {
	TotalExpenses  int                       `json:"total_expenses"`
	TotalAmount    float64                   `json:"total_amount"`
	AverageExpense float64                   `json:"average_expense"`
	Categories     map[string]CategoryTotals `json:"categories"`
	DateRange      string                    `json:"date_range"`
}

type CategoryTotals struct {
	Count  int     `json:"count"`
	Amount float64 `json:"amount"`
}
