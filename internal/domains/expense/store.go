package expense

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"assistant-agents/internal/models"
)

// Store owns the expenses and budget_limits tables.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Insert(ctx context.Context, e *models.Expense) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO expenses (expense_id, user_id, amount, currency, category,
		       subcategory, description, date, payment_method, is_recurring, tags, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		e.ExpenseID, e.UserID, e.Amount, e.Currency, e.Category,
		e.Subcategory, e.Description, e.Date, e.PaymentMethod,
		e.IsRecurring, pq.Array(e.Tags), e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

// List returns expenses matching the filters, newest first.
func (s *Store) List(ctx context.Context, f models.ExpenseFilters) ([]models.Expense, error) {
	query, params := buildListQuery(f)

	rows, err := s.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var e models.Expense
		var tags pq.StringArray
		if err := rows.Scan(
			&e.ExpenseID, &e.UserID, &e.Amount, &e.Currency, &e.Category,
			&e.Subcategory, &e.Description, &e.Date, &e.PaymentMethod,
			&e.IsRecurring, &tags, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		e.Tags = tags
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func buildListQuery(f models.ExpenseFilters) (string, []interface{}) {
	var conditions []string
	var params []interface{}

	add := func(clause string, value interface{}) {
		params = append(params, value)
		conditions = append(conditions, fmt.Sprintf(clause, len(params)))
	}

	add("user_id = $%d", f.UserID)
	if f.StartDate != "" {
		add("date >= $%d", f.StartDate)
	}
	if f.EndDate != "" {
		add("date <= $%d", f.EndDate)
	}
	if f.Category != "" && f.Category != "all" {
		add("category = $%d", f.Category)
	}
	if f.MinAmount > 0 {
		add("amount >= $%d", f.MinAmount)
	}
	if f.MaxAmount > 0 {
		add("amount <= $%d", f.MaxAmount)
	}

	query := `
		SELECT expense_id, user_id, amount, currency, category,
		       subcategory, description, date, payment_method, is_recurring, tags, created_at
		FROM expenses
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY date DESC, created_at DESC`
	return query, params
}

// Summary aggregates matching expenses by category in one pass.
func (s *Store) Summary(ctx context.Context, f models.ExpenseFilters) (*models.ExpenseSummary, error) {
	query, params := buildListQuery(f)
	query = `
		SELECT category, COUNT(*), COALESCE(SUM(amount), 0)
		FROM (` + query + `) matched
		GROUP BY category`

	rows, err := s.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("summarize expenses: %w", err)
	}
	defer rows.Close()

	summary := &models.ExpenseSummary{Categories: make(map[string]models.CategoryTotals)}
	for rows.Next() {
		var category string
		var totals models.CategoryTotals
		if err := rows.Scan(&category, &totals.Count, &totals.Amount); err != nil {
			return nil, fmt.Errorf("scan summary row: %w", err)
		}
		summary.Categories[category] = totals
		summary.TotalExpenses += totals.Count
		summary.TotalAmount += totals.Amount
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if summary.TotalExpenses > 0 {
		summary.AverageExpense = summary.TotalAmount / float64(summary.TotalExpenses)
	}
	return summary, nil
}

// updatableColumns whitelists the columns an update payload may touch.
var updatableColumns = map[string]string{
	"amount":         "amount",
	"category":       "category",
	"subcategory":    "subcategory",
	"description":    "description",
	"date":           "date",
	"payment_method": "payment_method",
}

// Update applies a validated field map to one expense. Returns the number
// of rows touched, zero meaning the id did not exist for that user.
func (s *Store) Update(ctx context.Context, userID, expenseID string, updates map[string]interface{}) (int64, error) {
	var assignments []string
	var params []interface{}

	for field, value := range updates {
		column, ok := updatableColumns[field]
		if !ok {
			continue
		}
		params = append(params, value)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, len(params)))
	}
	if len(assignments) == 0 {
		return 0, fmt.Errorf("no updatable fields in payload")
	}

	params = append(params, userID, expenseID)
	query := fmt.Sprintf(
		"UPDATE expenses SET %s WHERE user_id = $%d AND expense_id = $%d",
		strings.Join(assignments, ", "), len(params)-1, len(params),
	)

	result, err := s.db.ExecContext(ctx, query, params...)
	if err != nil {
		return 0, fmt.Errorf("update expense: %w", err)
	}
	return result.RowsAffected()
}

func (s *Store) Delete(ctx context.Context, userID, expenseID string) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM expenses WHERE user_id = $1 AND expense_id = $2",
		userID, expenseID,
	)
	if err != nil {
		return 0, fmt.Errorf("delete expense: %w", err)
	}
	return result.RowsAffected()
}

// BudgetStandings joins each configured limit with the user's spend inside
// the given date window.
func (s *Store) BudgetStandings(ctx context.Context, userID, startDate, endDate string) ([]BudgetStanding, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT b.category, b.monthly_limit,
		       COALESCE(SUM(e.amount), 0) AS spent
		FROM budget_limits b
		LEFT JOIN expenses e
		       ON e.user_id = b.user_id
		      AND e.category = b.category
		      AND e.date >= $2 AND e.date <= $3
		WHERE b.user_id = $1
		GROUP BY b.category, b.monthly_limit
		ORDER BY b.category`,
		userID, startDate, endDate,
	)
	if err != nil {
		return nil, fmt.Errorf("query budget standings: %w", err)
	}
	defer rows.Close()

	var standings []BudgetStanding
	for rows.Next() {
		var st BudgetStanding
		if err := rows.Scan(&st.Category, &st.Limit, &st.Spent); err != nil {
			return nil, fmt.Errorf("scan budget standing: %w", err)
		}
		standings = append(standings, st)
	}
	return standings, rows.Err()
}
