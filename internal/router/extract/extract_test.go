package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2025, time.June, 15, 10, 30, 0, 0, time.UTC)

func TestAmount(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantValue float64
		wantToken string
		wantOK    bool
	}{
		{"dollar with decimals", "I spent $12.50 on coffee", 12.50, "$12.50", true},
		{"dollar with space", "add $ 50 for electronics", 50, "$ 50", true},
		{"bare number", "spent 200 on groceries", 200, "200", true},
		{"no amount", "show my expenses", 0, "", false},
		{"number glued to unit", "run 5km today", 0, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, token, ok := Amount(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantValue, value)
				assert.Equal(t, tt.wantToken, token)
			}
		})
	}
}

func TestCategory(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"exact name", "spent 20 on food", "food"},
		{"synonym", "coffee with the team", "food"},
		{"exact beats synonym", "uber to the food market", "food"},
		{"electronics synonym", "bought a new laptop", "electronics"},
		{"travel synonym", "booked a flight to nyc", "travel"},
		{"no match", "spent 20 on stuff", "other"},
		{"substring does not trigger", "updated my records", "other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Category(tt.text))
		})
	}
}

func TestDate_RelativePhrases(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantDate   string
		wantPhrase string
	}{
		{"yesterday", "what did I spend yesterday", "2025-06-14", "yesterday"},
		{"last week", "expenses for last week", "2025-06-08", "last week"},
		{"today", "show today's expenses", "2025-06-15", "today"},
		{"tomorrow clamps to today", "remind me tomorrow", "2025-06-15", "tomorrow"},
		{"next week clamps to today", "expenses for next week", "2025-06-15", "next week"},
		{"no phrase defaults to today", "show my expenses", "2025-06-15", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, phrase := Date(tt.text, testNow)
			assert.Equal(t, tt.wantDate, date)
			assert.Equal(t, tt.wantPhrase, phrase)
		})
	}
}

func TestDate_ExplicitDates(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantDate string
	}{
		{"numeric day month year", "expenses on 12/06/2025", "2025-06-12"},
		{"numeric without year", "spent 40 on 3-5", "2025-05-03"},
		{"two digit year", "expenses on 12/06/25", "2025-06-12"},
		{"day month name", "what did I buy on 3rd may", "2025-05-03"},
		{"month name day", "expenses for may 3rd", "2025-05-03"},
		{"future explicit date clamps", "expenses on 25/12/2025", "2025-06-15"},
		{"invalid date ignored", "expenses on 31/02", "2025-06-15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, _ := Date(tt.text, testNow)
			assert.Equal(t, tt.wantDate, date)
		})
	}
}

func TestUserID(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"explicit marker", "show expenses for user: alice", "alice"},
		{"possessive", "show bob's expenses", "bob"},
		{"expenses for name", "expenses for carol", "carol"},
		{"expenses for period is not an id", "expenses for last week", "default_user"},
		{"my expenses falls back", "show my expenses", "default_user"},
		{"no mention falls back", "spent 20 on lunch", "default_user"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserID(tt.text, "default_user"))
		})
	}
}

func TestEntityID(t *testing.T) {
	id, ok := EntityID("delete expense id: exp-17")
	assert.True(t, ok)
	assert.Equal(t, "exp-17", id)

	id, ok = EntityID("update note ID:abc123 please")
	assert.True(t, ok)
	assert.Equal(t, "abc123", id)

	_, ok = EntityID("delete my last expense")
	assert.False(t, ok)
}

func TestResidual(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		remove []string
		want   string
	}{
		{
			name:   "amount and intent removed",
			text:   "I spent $12.50 on coffee",
			remove: []string{"$12.50", "spent"},
			want:   "coffee",
		},
		{
			name:   "date phrase removed",
			text:   "add a note to buy groceries tomorrow",
			remove: []string{"tomorrow", "add", "note"},
			want:   "buy groceries",
		},
		{
			name:   "nothing left",
			text:   "show my expenses",
			remove: []string{"show", "expenses"},
			want:   "",
		},
		{
			name:   "case insensitive removal",
			text:   "Add $50 for electronics",
			remove: []string{"$50", "add"},
			want:   "electronics",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Residual(tt.text, tt.remove...))
		})
	}
}

func TestContainsWord(t *testing.T) {
	assert.True(t, ContainsWord("i ate lunch", "ate"))
	assert.False(t, ContainsWord("update my expense", "ate"))
	assert.True(t, ContainsWord("check the food log now", "food log"))
}
