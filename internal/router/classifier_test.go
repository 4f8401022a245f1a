package router

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyDomains(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Domain
	}{
		{"expense keyword", "I spent $12.50 on coffee", []Domain{DomainExpense}},
		{"notes keyword", "add a note to buy groceries", []Domain{DomainNotes}},
		{"health keyword", "I ate a salad for lunch", []Domain{DomainHealth}},
		{"meeting keyword", "schedule a standup tomorrow", []Domain{DomainMeeting}},
		{"dollar amount without keyword", "Add $50 for electronics", []Domain{DomainExpense}},
		{"bare number without keyword", "add 50 for electronics", nil},
		{"multi domain keeps fixed order", "show my notes and my expenses", []Domain{DomainExpense, DomainNotes}},
		{"greeting matches nothing", "hello there", nil},
		{"ate does not hide in update", "update my budget", []Domain{DomainExpense}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyDomains(tt.text))
		})
	}
}

func TestClassifyIntent_Priority(t *testing.T) {
	tests := []struct {
		name string
		text string
		want intent
	}{
		{"delete beats everything", "delete the new expense I added", intentDelete},
		{"update beats list", "update the list of expenses", intentUpdate},
		{"list beats add", "show the expenses I added", intentList},
		{"add beats summary", "record the total I spent", intentAdd},
		{"summary alone", "expense breakdown please", intentSummary},
		{"none", "my expenses", intentNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyIntent(tt.text))
		})
	}
}

func TestPickCapability(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Capability
	}{
		{"spent with amount", "i spent $12.50 on coffee", CapAddExpense},
		{"amount with no intent", "$50 for electronics", CapAddExpense},
		{"expense list", "show my expenses for last week", CapListExpenses},
		{"expense summary", "expense breakdown for this month", CapExpenseSummary},
		{"budget status", "how much of my budget is left", CapBudgetStatus},
		{"budget status via list word", "what's my budget status", CapBudgetStatus},
		{"budget view", "show my budget", CapBudgetStatus},
		{"update expense", "update expense id: 17 {\"amount\": 20}", CapUpdateExpense},
		{"delete expense", "delete expense id: 17", CapDeleteExpense},
		{"add note", "add a note to buy groceries", CapAddNote},
		{"search notes", "search notes for groceries", CapSearchNotes},
		{"list notes", "show my notes", CapListNotes},
		{"add goal", "set a goal to drink 8 glasses of water", CapAddHealthGoal},
		{"list goals", "show my health goals", CapListHealthGoals},
		{"delete goal", "delete my water goal id: abc123", CapDeleteHealthGoal},
		{"log food", "log that i ate oatmeal for breakfast", CapLogFood},
		{"food log view", "show my food log", CapGetFoodLog},
		{"schedule meeting", "schedule a meeting with sam tomorrow at 2pm", CapAddMeeting},
		{"meeting conflicts", "any meeting conflicts this week", CapMeetingConflicts},
		{"cancel meeting", "cancel meeting id: 42", CapDeleteMeeting},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			domains := ClassifyDomains(tt.text)
			if assert.NotEmpty(t, domains) {
				in := classifyIntent(tt.text)
				assert.Equal(t, tt.want, pickCapability(domains[0], in, tt.text))
			}
		})
	}
}

// Every phrasing the help text offers must route to the capability it
// advertises.
func TestPickCapability_HelpTextExamples(t *testing.T) {
	tests := []struct {
		text string
		want Capability
	}{
		{"I spent $12.50 on coffee", CapAddExpense},
		{"show my expenses for last week", CapListExpenses},
		{"expense summary for this month", CapExpenseSummary},
		{"what's my budget status", CapBudgetStatus},
		{"add a note to buy groceries", CapAddNote},
		{"show my notes", CapListNotes},
		{"search notes for groceries", CapSearchNotes},
		{"set a goal to drink 8 glasses of water", CapAddHealthGoal},
		{"show my health goals", CapListHealthGoals},
		{"log that I ate a salad for lunch", CapLogFood},
		{"show my food log", CapGetFoodLog},
		{"schedule a meeting with Sam tomorrow at 2pm", CapAddMeeting},
		{"list my meetings", CapListMeetings},
		{"any meeting conflicts this week?", CapMeetingConflicts},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Contains(t, helpText(), "\""+tt.text+"\"")

			lower := strings.ToLower(tt.text)
			domains := ClassifyDomains(tt.text)
			require.NotEmpty(t, domains)
			assert.Equal(t, tt.want, pickCapability(domains[0], classifyIntent(lower), lower))
		})
	}
}
