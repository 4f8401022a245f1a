package router

// Keyword tables. One immutable table per concern, initialized here and
// never mutated at runtime.

// domainKeywords trigger a domain match on word-boundary containment.
var domainKeywords = map[Domain][]string{
	DomainExpense: {
		"expense", "expenses", "spend", "spent", "spending", "cost", "costs",
		"money", "budget", "purchase", "bought", "paid",
	},
	DomainNotes: {
		"note", "notes", "reminder", "todo",
	},
	DomainHealth: {
		"health", "diet", "fitness", "nutrition", "weight", "exercise",
		"workout", "calorie", "calories", "ate", "goal", "goals", "meal",
		"food log", "log food",
	},
	DomainMeeting: {
		"meeting", "meetings", "appointment", "standup", "calendar", "schedule",
	},
}

// Intent keyword families, applied in priority order: update/delete
// outranks list/view, which outranks add/create, which outranks
// summary/analysis. "change my food spending category" must not be
// misread as add-expense.
var (
	updateIntentWords = []string{"update", "change", "fix", "modify", "edit", "correct"}
	deleteIntentWords = []string{"delete", "remove", "cancel", "clear"}
	listIntentWords   = []string{"list", "show", "view", "see", "find", "search", "what"}
	addIntentWords    = []string{"add", "create", "record", "log", "spent", "bought", "paid", "set", "new", "ate", "schedule", "book"}
	summaryWords      = []string{"summary", "summarize", "total", "analysis", "analytics", "breakdown", "how much", "status", "conflict", "conflicts"}
)

// Words that select a more specific capability inside an intent family.
var (
	goalWords   = []string{"goal", "goals", "target"}
	budgetWords = []string{"budget"}
	searchWords = []string{"search", "find"}
)
