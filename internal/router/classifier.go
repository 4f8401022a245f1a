package router

import (
	"strings"

	"assistant-agents/internal/router/extract"
)

type intent int

const (
	intentNone intent = iota
	intentUpdate
	intentDelete
	intentList
	intentAdd
	intentSummary
)

// Match is one (capability, arguments) pair selected for an utterance.
type Match struct {
	Domain     Domain     `json:"domain"`
	Capability Capability `json:"capability"`
	Args       Arguments  `json:"args"`
}

// Outcome distinguishes the terminal states of utterance processing.
type Outcome string

const (
	OutcomeDispatched      Outcome = "dispatched"
	OutcomeNoMatch         Outcome = "no_match"
	OutcomeMissingArgument Outcome = "missing_argument"
)

// Decision is the classifier output for one utterance. Created fresh per
// utterance and discarded after the response is composed.
type Decision struct {
	Outcome Outcome
	Matches []Match

	// Set when Outcome is OutcomeMissingArgument.
	MissingField      string
	MissingCapability Capability
}

// ClassifyDomains returns the domains whose keyword sets intersect the
// utterance, in fixed match order. A "$"-prefixed amount counts as an
// expense trigger even without an expense keyword ("Add $50 for
// electronics").
func ClassifyDomains(utterance string) []Domain {
	lower := strings.ToLower(utterance)

	var matched []Domain
	for _, d := range domainOrder {
		for _, kw := range domainKeywords[d] {
			if extract.ContainsWord(lower, kw) {
				matched = append(matched, d)
				break
			}
		}
	}

	if len(matched) == 0 {
		if _, token, ok := extract.Amount(lower); ok && strings.HasPrefix(token, "$") {
			matched = append(matched, DomainExpense)
		}
	}

	return matched
}

// classifyIntent picks the strongest intent family present in the text.
// Update/delete outranks list/view, which outranks add/create, which
// outranks summary/analysis.
func classifyIntent(lower string) intent {
	if anyWord(lower, deleteIntentWords) {
		return intentDelete
	}
	if anyWord(lower, updateIntentWords) {
		return intentUpdate
	}
	if anyWord(lower, listIntentWords) {
		return intentList
	}
	if anyWord(lower, addIntentWords) {
		return intentAdd
	}
	if anyWord(lower, summaryWords) {
		return intentSummary
	}
	return intentNone
}

// pickCapability resolves the single capability for a domain given the
// utterance's intent.
func pickCapability(d Domain, in intent, lower string) Capability {
	switch d {
	case DomainExpense:
		switch in {
		case intentUpdate:
			return CapUpdateExpense
		case intentDelete:
			return CapDeleteExpense
		case intentList:
			if anyWord(lower, budgetWords) {
				return CapBudgetStatus
			}
			return CapListExpenses
		case intentAdd:
			return CapAddExpense
		case intentSummary:
			if anyWord(lower, budgetWords) {
				return CapBudgetStatus
			}
			return CapExpenseSummary
		}
		if _, _, ok := extract.Amount(lower); ok {
			return CapAddExpense
		}
		return CapListExpenses

	case DomainNotes:
		switch in {
		case intentUpdate:
			return CapUpdateNote
		case intentDelete:
			return CapDeleteNote
		case intentList:
			if anyWord(lower, searchWords) {
				return CapSearchNotes
			}
			return CapListNotes
		case intentAdd:
			return CapAddNote
		}
		return CapListNotes

	case DomainHealth:
		switch in {
		case intentUpdate:
			return CapUpdateHealthGoal
		case intentDelete:
			return CapDeleteHealthGoal
		case intentList:
			if anyWord(lower, goalWords) {
				return CapListHealthGoals
			}
			return CapGetFoodLog
		case intentAdd:
			if anyWord(lower, goalWords) {
				return CapAddHealthGoal
			}
			return CapLogFood
		}
		return CapGetFoodLog

	case DomainMeeting:
		switch in {
		case intentUpdate:
			return CapUpdateMeeting
		case intentDelete:
			return CapDeleteMeeting
		case intentList:
			if anyWord(lower, searchWords) {
				return CapSearchMeetings
			}
			return CapListMeetings
		case intentAdd:
			return CapAddMeeting
		case intentSummary:
			if extract.ContainsWord(lower, "conflict") || extract.ContainsWord(lower, "conflicts") {
				return CapMeetingConflicts
			}
			return CapListMeetings
		}
		return CapListMeetings
	}

	return CapListNotes
}

func anyWord(lower string, words []string) bool {
	for _, w := range words {
		if extract.ContainsWord(lower, w) {
			return true
		}
	}
	return false
}

// matchedWords returns every keyword from the given families present in
// the text; used to strip intent/domain noise from residual descriptions.
func matchedWords(lower string, families ...[]string) []string {
	var out []string
	for _, family := range families {
		for _, w := range family {
			if extract.ContainsWord(lower, w) {
				out = append(out, w)
			}
		}
	}
	return out
}
