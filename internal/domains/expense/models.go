package expense

// BudgetLimit is one per-category monthly cap.
type BudgetLimit struct {
	Category     string  `json:"category"`
	MonthlyLimit float64 `json:"monthly_limit"`
}

// BudgetStanding pairs a limit with the month-to-date spend against it.
type BudgetStanding struct {
	Category string  `json:"category"`
	Limit    float64 `json:"limit"`
	Spent    float64 `json:"spent"`
}

// Remaining is negative when the category is over budget.
func (b BudgetStanding) Remaining() float64 {
	return b.Limit - b.Spent
}
