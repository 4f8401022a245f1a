package router

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assistant-agents/internal/common/logger"
)

var fixedNow = time.Date(2025, time.June, 15, 10, 30, 0, 0, time.UTC)

// fakeCollaborator records the call it received and returns a canned
// response or error.
type fakeCollaborator struct {
	response string
	err      error
	delay    time.Duration

	gotCapability Capability
	gotArgs       Arguments
	called        bool
}

func (f *fakeCollaborator) Execute(ctx context.Context, capability Capability, args Arguments) (string, error) {
	f.called = true
	f.gotCapability = capability
	f.gotArgs = args
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.response, f.err
}

func newTestRouter(t *testing.T, collaborators map[Domain]Collaborator) *Router {
	t.Helper()
	return New(collaborators, "default_user", logger.NewTestLogger(t),
		WithClock(func() time.Time { return fixedNow }))
}

func TestRouteAndExecute_SingleDomainPassThrough(t *testing.T) {
	expense := &fakeCollaborator{response: "✅ Added expense: $12.50 for coffee (food) on 2025-06-15. id: abc"}
	rt := newTestRouter(t, map[Domain]Collaborator{DomainExpense: expense})

	got := rt.RouteAndExecute(context.Background(), "I spent $12.50 on coffee")

	assert.Equal(t, expense.response, got)
	assert.Equal(t, CapAddExpense, expense.gotCapability)
	require.NotNil(t, expense.gotArgs.Amount)
	assert.Equal(t, 12.50, *expense.gotArgs.Amount)
	assert.Equal(t, "food", expense.gotArgs.Category)
	assert.Equal(t, "2025-06-15", expense.gotArgs.Date)
	assert.Equal(t, "default_user", expense.gotArgs.UserID)
	assert.Equal(t, "coffee", expense.gotArgs.Description)
}

func TestRouteAndExecute_MultiDomainComposition(t *testing.T) {
	expense := &fakeCollaborator{response: "expense result", delay: 20 * time.Millisecond}
	notes := &fakeCollaborator{response: "notes result"}
	rt := newTestRouter(t, map[Domain]Collaborator{
		DomainExpense: expense,
		DomainNotes:   notes,
	})

	got := rt.RouteAndExecute(context.Background(), "show my notes and my expenses")

	expenseIdx := strings.Index(got, "## Expense Tracker\nexpense result")
	notesIdx := strings.Index(got, "## Notes\nnotes result")
	require.GreaterOrEqual(t, expenseIdx, 0)
	require.GreaterOrEqual(t, notesIdx, 0)
	// Sections keep match order even though the expense call finished last.
	assert.Less(t, expenseIdx, notesIdx)
	assert.True(t, strings.HasSuffix(got, "(Results gathered from multiple sources.)"))
}

func TestRouteAndExecute_NoMatchReturnsHelp(t *testing.T) {
	expense := &fakeCollaborator{}
	rt := newTestRouter(t, map[Domain]Collaborator{DomainExpense: expense})

	got := rt.RouteAndExecute(context.Background(), "hello there")

	assert.Contains(t, got, "I can help with expenses, notes, health tracking, and meetings")
	assert.False(t, expense.called)
}

func TestRouteAndExecute_MissingArgumentClarifies(t *testing.T) {
	expense := &fakeCollaborator{}
	rt := newTestRouter(t, map[Domain]Collaborator{DomainExpense: expense})

	got := rt.RouteAndExecute(context.Background(), "update my expense")

	assert.Contains(t, got, "id")
	assert.False(t, expense.called, "nothing may be dispatched when a required argument is missing")
}

func TestRouteAndExecute_MissingAmountClarifies(t *testing.T) {
	expense := &fakeCollaborator{}
	rt := newTestRouter(t, map[Domain]Collaborator{DomainExpense: expense})

	got := rt.RouteAndExecute(context.Background(), "add an expense for coffee")

	assert.Contains(t, got, "amount")
	assert.False(t, expense.called)
}

func TestRouteAndExecute_CollaboratorErrorIsEmbedded(t *testing.T) {
	expense := &fakeCollaborator{err: errors.New("connection refused")}
	notes := &fakeCollaborator{response: "notes result"}
	rt := newTestRouter(t, map[Domain]Collaborator{
		DomainExpense: expense,
		DomainNotes:   notes,
	})

	got := rt.RouteAndExecute(context.Background(), "show my notes and my expenses")

	assert.Contains(t, got, "Unable to contact Expense Tracker: connection refused")
	assert.Contains(t, got, "notes result")
}

func TestRouteAndExecute_UnboundDomain(t *testing.T) {
	rt := newTestRouter(t, map[Domain]Collaborator{})

	got := rt.RouteAndExecute(context.Background(), "schedule a meeting with sam at 2pm")

	assert.Contains(t, got, "Meeting Manager is not available right now.")
}

func TestDecide_Deterministic(t *testing.T) {
	rt := newTestRouter(t, map[Domain]Collaborator{})

	utterance := "I spent $12.50 on coffee yesterday"
	first := rt.Decide(utterance)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, rt.Decide(utterance))
	}

	require.Len(t, first.Matches, 1)
	assert.Equal(t, OutcomeDispatched, first.Outcome)
	assert.Equal(t, "2025-06-14", first.Matches[0].Args.Date)
}

func TestDecide_DollarAmountWithoutKeyword(t *testing.T) {
	rt := newTestRouter(t, map[Domain]Collaborator{})

	decision := rt.Decide("Add $50 for electronics")

	require.Equal(t, OutcomeDispatched, decision.Outcome)
	require.Len(t, decision.Matches, 1)
	m := decision.Matches[0]
	assert.Equal(t, DomainExpense, m.Domain)
	assert.Equal(t, CapAddExpense, m.Capability)
	require.NotNil(t, m.Args.Amount)
	assert.Equal(t, float64(50), *m.Args.Amount)
	assert.Equal(t, "electronics", m.Args.Category)
	assert.Equal(t, "electronics", m.Args.Description)
}

func TestDecide_UpdatePayloadCarried(t *testing.T) {
	rt := newTestRouter(t, map[Domain]Collaborator{})

	decision := rt.Decide(`update expense id: 17 {"amount": 20}`)

	require.Equal(t, OutcomeDispatched, decision.Outcome)
	require.Len(t, decision.Matches, 1)
	m := decision.Matches[0]
	assert.Equal(t, CapUpdateExpense, m.Capability)
	assert.Equal(t, "17", m.Args.EntityID)
	assert.JSONEq(t, `{"amount": 20}`, m.Args.Updates)
}

func TestRouter_ConcurrentQueries(t *testing.T) {
	expense := &fakeCollaborator{response: "ok"}
	rt := newTestRouter(t, map[Domain]Collaborator{DomainExpense: expense})

	done := make(chan string, 8)
	for i := 0; i < 8; i++ {
		go func(i int) {
			done <- rt.RouteAndExecute(context.Background(), fmt.Sprintf("I spent $%d on coffee", i+1))
		}(i)
	}
	for i := 0; i < 8; i++ {
		assert.Equal(t, "ok", <-done)
	}
}
