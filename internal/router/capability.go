// Package router turns free-form utterances into dispatched capability
// calls: a keyword classifier picks the domains and capabilities, the
// extractors supply structured arguments, and the dispatcher fans out to
// the bound collaborators and composes their results.
package router

// Domain groups related capabilities sharing a keyword vocabulary and a
// backing collaborator.
type Domain string

const (
	DomainExpense Domain = "expense"
	DomainNotes   Domain = "notes"
	DomainHealth  Domain = "health"
	DomainMeeting Domain = "meeting"
)

// domainOrder fixes the match (and composition) order of domains.
var domainOrder = []Domain{DomainExpense, DomainNotes, DomainHealth, DomainMeeting}

// domainLabels name each domain's result section in composed responses.
var domainLabels = map[Domain]string{
	DomainExpense: "Expense Tracker",
	DomainNotes:   "Notes",
	DomainHealth:  "Health & Diet",
	DomainMeeting: "Meeting Manager",
}

// Label returns the human-readable collaborator name for a domain.
func (d Domain) Label() string {
	if l, ok := domainLabels[d]; ok {
		return l
	}
	return string(d)
}

// Capability names one supported operation within a domain.
type Capability string

const (
	CapAddExpense     Capability = "add-expense"
	CapListExpenses   Capability = "list-expenses"
	CapExpenseSummary Capability = "expense-summary"
	CapUpdateExpense  Capability = "update-expense"
	CapDeleteExpense  Capability = "delete-expense"
	CapBudgetStatus   Capability = "budget-status"

	CapAddNote     Capability = "add-note"
	CapListNotes   Capability = "list-notes"
	CapSearchNotes Capability = "search-notes"
	CapUpdateNote  Capability = "update-note"
	CapDeleteNote  Capability = "delete-note"

	CapAddHealthGoal    Capability = "add-health-goal"
	CapListHealthGoals  Capability = "list-health-goals"
	CapUpdateHealthGoal Capability = "update-health-goal"
	CapDeleteHealthGoal Capability = "delete-health-goal"
	CapLogFood          Capability = "log-food"
	CapGetFoodLog       Capability = "get-food-log"

	CapAddMeeting       Capability = "add-meeting"
	CapListMeetings     Capability = "list-meetings"
	CapSearchMeetings   Capability = "search-meetings"
	CapUpdateMeeting    Capability = "update-meeting"
	CapDeleteMeeting    Capability = "delete-meeting"
	CapMeetingConflicts Capability = "meeting-conflicts"
)

// Argument names used in capability requirement lists.
const (
	ArgAmount      = "amount"
	ArgEntityID    = "entity_id"
	ArgDescription = "description"
	ArgTargetValue = "target_value"
)

// CapabilitySpec describes one registry entry: which domain a capability
// belongs to and which extracted arguments it cannot run without.
type CapabilitySpec struct {
	Domain   Domain
	Required []string
}

// Registry is the immutable capability catalog, constructed once at
// startup and never mutated, so the classifier is trivially thread-safe.
var Registry = map[Capability]CapabilitySpec{
	CapAddExpense:     {Domain: DomainExpense, Required: []string{ArgAmount}},
	CapListExpenses:   {Domain: DomainExpense},
	CapExpenseSummary: {Domain: DomainExpense},
	CapUpdateExpense:  {Domain: DomainExpense, Required: []string{ArgEntityID}},
	CapDeleteExpense:  {Domain: DomainExpense, Required: []string{ArgEntityID}},
	CapBudgetStatus:   {Domain: DomainExpense},

	CapAddNote:     {Domain: DomainNotes, Required: []string{ArgDescription}},
	CapListNotes:   {Domain: DomainNotes},
	CapSearchNotes: {Domain: DomainNotes, Required: []string{ArgDescription}},
	CapUpdateNote:  {Domain: DomainNotes, Required: []string{ArgEntityID}},
	CapDeleteNote:  {Domain: DomainNotes, Required: []string{ArgEntityID}},

	CapAddHealthGoal:    {Domain: DomainHealth, Required: []string{ArgTargetValue}},
	CapListHealthGoals:  {Domain: DomainHealth},
	CapUpdateHealthGoal: {Domain: DomainHealth, Required: []string{ArgEntityID}},
	CapDeleteHealthGoal: {Domain: DomainHealth, Required: []string{ArgEntityID}},
	CapLogFood:          {Domain: DomainHealth, Required: []string{ArgDescription}},
	CapGetFoodLog:       {Domain: DomainHealth},

	CapAddMeeting:       {Domain: DomainMeeting, Required: []string{ArgDescription}},
	CapListMeetings:     {Domain: DomainMeeting},
	CapSearchMeetings:   {Domain: DomainMeeting, Required: []string{ArgDescription}},
	CapUpdateMeeting:    {Domain: DomainMeeting, Required: []string{ArgEntityID}},
	CapDeleteMeeting:    {Domain: DomainMeeting, Required: []string{ArgEntityID}},
	CapMeetingConflicts: {Domain: DomainMeeting},
}
