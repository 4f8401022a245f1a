package expense

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xeipuuv/gojsonschema"

	apperrors "assistant-agents/internal/common/errors"
	"assistant-agents/internal/common/logger"
	"assistant-agents/internal/models"
	"assistant-agents/internal/router"
)

// updateSchema constrains update payloads to known fields with sane types.
var updateSchema = map[string]interface{}{
	"type":                 "object",
	"minProperties":        1,
	"additionalProperties": false,
	"properties": map[string]interface{}{
		"amount":         map[string]interface{}{"type": "number", "exclusiveMinimum": 0},
		"category":       map[string]interface{}{"type": "string"},
		"subcategory":    map[string]interface{}{"type": "string"},
		"description":    map[string]interface{}{"type": "string"},
		"date":           map[string]interface{}{"type": "string", "pattern": `^\d{4}-\d{2}-\d{2}$`},
		"payment_method": map[string]interface{}{"type": "string"},
	},
}

// Service implements the expense capabilities on top of the store. All
// responses are plain text ready for composition; user-facing problems
// (bad payloads, unknown ids) come back as text, not errors.
type Service struct {
	config *Config
	store  *Store
	logger logger.Logger
	now    func() time.Time
}

func NewService(config *Config, store *Store, log logger.Logger) *Service {
	return &Service{
		config: config,
		store:  store,
		logger: log.WithFields(map[string]interface{}{"domain": "expense"}),
		now:    time.Now,
	}
}

func (s *Service) AddExpense(ctx context.Context, args router.Arguments) (string, error) {
	description := args.Description
	if description == "" {
		description = args.Category
	}

	e := &models.Expense{
		ExpenseID:   uuid.NewString(),
		UserID:      args.UserID,
		Amount:      *args.Amount,
		Currency:    s.config.Currency,
		Category:    args.Category,
		Description: description,
		Date:        args.Date,
		CreatedAt:   s.now().UTC(),
	}

	if err := s.store.Insert(ctx, e); err != nil {
		return "", err
	}

	s.logger.Info("expense recorded", map[string]interface{}{
		"expenseId": e.ExpenseID,
		"userId":    e.UserID,
		"amount":    e.Amount,
	})

	return fmt.Sprintf("✅ Added expense: $%.2f for %s (%s) on %s. id: %s",
		e.Amount, e.Description, e.Category, e.Date, e.ExpenseID), nil
}

func (s *Service) ListExpenses(ctx context.Context, args router.Arguments) (string, error) {
	expenses, err := s.store.List(ctx, s.filtersFrom(args))
	if err != nil {
		return "", err
	}

	if len(expenses) == 0 {
		return fmt.Sprintf("No expenses found since %s.", args.Date), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 Expenses since %s:\n", args.Date)
	var total float64
	for _, e := range expenses {
		fmt.Fprintf(&b, "  - %s: $%.2f for %s (%s) [id: %s]\n",
			e.Date, e.Amount, e.Description, e.Category, e.ExpenseID)
		total += e.Amount
	}
	fmt.Fprintf(&b, "Total: $%.2f across %d expense(s).", total, len(expenses))
	return b.String(), nil
}

func (s *Service) Summary(ctx context.Context, args router.Arguments) (string, error) {
	summary, err := s.store.Summary(ctx, s.filtersFrom(args))
	if err != nil {
		return "", err
	}

	if summary.TotalExpenses == 0 {
		return fmt.Sprintf("No expenses to summarize since %s.", args.Date), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "💰 Expense summary since %s:\n", args.Date)
	fmt.Fprintf(&b, "  Total: $%.2f across %d expense(s) (avg $%.2f)\n",
		summary.TotalAmount, summary.TotalExpenses, summary.AverageExpense)
	for _, category := range sortedCategories(summary.Categories) {
		totals := summary.Categories[category]
		fmt.Fprintf(&b, "  %s: $%.2f (%d expense(s))\n", category, totals.Amount, totals.Count)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func (s *Service) UpdateExpense(ctx context.Context, args router.Arguments) (string, error) {
	updates, problem := parseUpdatePayload(args.Updates)
	if problem != "" {
		stdErr := apperrors.NewMalformedUpdatePayload(problem)
		s.logger.Warn("rejected expense update payload", map[string]interface{}{
			"code":      string(stdErr.Code),
			"expenseId": args.EntityID,
		})
		return problem, nil
	}

	affected, err := s.store.Update(ctx, args.UserID, args.EntityID, updates)
	if err != nil {
		return "", err
	}
	if affected == 0 {
		return fmt.Sprintf("❌ No expense with id %s found for you.", args.EntityID), nil
	}
	return fmt.Sprintf("✅ Updated expense %s.", args.EntityID), nil
}

func (s *Service) DeleteExpense(ctx context.Context, args router.Arguments) (string, error) {
	affected, err := s.store.Delete(ctx, args.UserID, args.EntityID)
	if err != nil {
		return "", err
	}
	if affected == 0 {
		return fmt.Sprintf("❌ No expense with id %s found for you.", args.EntityID), nil
	}
	return fmt.Sprintf("✅ Deleted expense %s.", args.EntityID), nil
}

// BudgetStatus reports month-to-date spend against each configured limit.
func (s *Service) BudgetStatus(ctx context.Context, args router.Arguments) (string, error) {
	now := s.now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
	end := now.Format("2006-01-02")

	standings, err := s.store.BudgetStandings(ctx, args.UserID, start, end)
	if err != nil {
		return "", err
	}

	if len(standings) == 0 {
		return "No budget limits configured. Set limits to track spending against them.", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "💰 Budget status for %s:\n", now.Format("January 2006"))
	for _, st := range standings {
		marker := "✅"
		if st.Remaining() < 0 {
			marker = "⚠️"
		}
		fmt.Fprintf(&b, "  %s %s: $%.2f of $%.2f spent ($%.2f remaining)\n",
			marker, st.Category, st.Spent, st.Limit, st.Remaining())
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// filtersFrom maps extracted arguments onto query filters. The category
// default is add-side only, so it does not constrain reads.
func (s *Service) filtersFrom(args router.Arguments) models.ExpenseFilters {
	f := models.ExpenseFilters{
		UserID:    args.UserID,
		StartDate: args.Date,
	}
	if args.Category != "" && args.Category != "other" {
		f.Category = args.Category
	}
	return f
}

// parseUpdatePayload validates the inline JSON against the update schema.
// The returned problem string is user-facing and terminal.
func parseUpdatePayload(payload string) (map[string]interface{}, string) {
	if payload == "" {
		return nil, "❌ To update an expense, include the change as JSON, for example: update expense id: 17 {\"amount\": 20}"
	}

	var updates map[string]interface{}
	if err := json.Unmarshal([]byte(payload), &updates); err != nil {
		return nil, fmt.Sprintf("❌ The update payload is not valid JSON: %v", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(updateSchema),
		gojsonschema.NewGoLoader(updates),
	)
	if err != nil {
		return nil, fmt.Sprintf("❌ Could not validate the update payload: %v", err)
	}
	if !result.Valid() {
		var reasons []string
		for _, desc := range result.Errors() {
			reasons = append(reasons, desc.String())
		}
		return nil, fmt.Sprintf("❌ The update payload is invalid: %s", strings.Join(reasons, "; "))
	}

	return updates, ""
}

func sortedCategories(totals map[string]models.CategoryTotals) []string {
	categories := make([]string, 0, len(totals))
	for c := range totals {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	return categories
}
