package health

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assistant-agents/internal/common/logger"
	"assistant-agents/internal/router"
)

var testNow = time.Date(2025, time.June, 15, 10, 30, 0, 0, time.UTC)

func newTestHandler(t *testing.T) (*Handler, *Service) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	service := NewService(NewStore(rdb), logger.NewTestLogger(t))
	service.now = func() time.Time { return testNow }
	return NewHandler(service, logger.NewTestLogger(t)), service
}

func target(v float64) *float64 { return &v }

func TestHandler_AddGoal(t *testing.T) {
	h, _ := newTestHandler(t)

	got, err := h.Execute(context.Background(), router.CapAddHealthGoal, router.Arguments{
		UserID:      "default_user",
		Amount:      target(8),
		Description: "drink glasses of water",
	})

	require.NoError(t, err)
	assert.Contains(t, got, "✅ Added water goal")
	assert.Contains(t, got, "target 8.0")
}

func TestHandler_ListGoals(t *testing.T) {
	h, _ := newTestHandler(t)

	empty, err := h.Execute(context.Background(), router.CapListHealthGoals, router.Arguments{
		UserID: "default_user",
	})
	require.NoError(t, err)
	assert.Equal(t, "No health goals set. Try: \"set a goal to drink 8 glasses of water\".", empty)

	_, err = h.Execute(context.Background(), router.CapAddHealthGoal, router.Arguments{
		UserID:      "default_user",
		Amount:      target(8),
		Description: "drink glasses of water",
	})
	require.NoError(t, err)

	_, err = h.Execute(context.Background(), router.CapAddHealthGoal, router.Arguments{
		UserID:      "default_user",
		Amount:      target(10000),
		Description: "walk more steps",
	})
	require.NoError(t, err)

	got, err := h.Execute(context.Background(), router.CapListHealthGoals, router.Arguments{
		UserID: "default_user",
	})
	require.NoError(t, err)
	assert.Contains(t, got, "🎯 Your health goals:")
	assert.Contains(t, got, "water: 0.0 of 8.0 (0%)")
	assert.Contains(t, got, "steps: 0.0 of 10000.0 (0%)")
}

func TestHandler_DeleteGoal(t *testing.T) {
	h, service := newTestHandler(t)

	_, err := h.Execute(context.Background(), router.CapAddHealthGoal, router.Arguments{
		UserID:      "default_user",
		Amount:      target(8),
		Description: "drink glasses of water",
	})
	require.NoError(t, err)

	goals, err := service.store.ListGoals(context.Background(), "default_user")
	require.NoError(t, err)
	require.Len(t, goals, 1)

	got, err := h.Execute(context.Background(), router.CapDeleteHealthGoal, router.Arguments{
		UserID:   "default_user",
		EntityID: goals[0].GoalID,
	})
	require.NoError(t, err)
	assert.Equal(t, "✅ Deleted health goal "+goals[0].GoalID+".", got)

	remaining, err := service.store.ListGoals(context.Background(), "default_user")
	require.NoError(t, err)
	assert.Empty(t, remaining)

	again, err := h.Execute(context.Background(), router.CapDeleteHealthGoal, router.Arguments{
		UserID:   "default_user",
		EntityID: goals[0].GoalID,
	})
	require.NoError(t, err)
	assert.Equal(t, "❌ No health goal with id "+goals[0].GoalID+" found for you.", again)
}

func TestHandler_UpdateGoal_Progress(t *testing.T) {
	h, service := newTestHandler(t)

	add, err := h.Execute(context.Background(), router.CapAddHealthGoal, router.Arguments{
		UserID:      "default_user",
		Amount:      target(10000),
		Description: "walk more steps",
	})
	require.NoError(t, err)

	goals, err := service.store.ListGoals(context.Background(), "default_user")
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Contains(t, add, goals[0].GoalID)

	got, err := h.Execute(context.Background(), router.CapUpdateHealthGoal, router.Arguments{
		UserID:   "default_user",
		EntityID: goals[0].GoalID,
		Amount:   target(4000),
	})

	require.NoError(t, err)
	assert.Contains(t, got, "4000.0 of 10000.0 (40%)")
}

func TestHandler_UpdateGoal_NotFound(t *testing.T) {
	h, _ := newTestHandler(t)

	got, err := h.Execute(context.Background(), router.CapUpdateHealthGoal, router.Arguments{
		UserID:   "default_user",
		EntityID: "missing",
		Amount:   target(1),
	})

	require.NoError(t, err)
	assert.Equal(t, "❌ No health goal with id missing found for you.", got)
}

func TestHandler_LogFoodAndReadBack(t *testing.T) {
	h, _ := newTestHandler(t)

	got, err := h.Execute(context.Background(), router.CapLogFood, router.Arguments{
		UserID:      "default_user",
		Date:        "2025-06-15",
		Description: "oatmeal breakfast",
	})
	require.NoError(t, err)
	assert.Equal(t, "✅ Logged oatmeal for breakfast on 2025-06-15.", got)

	_, err = h.Execute(context.Background(), router.CapLogFood, router.Arguments{
		UserID:      "default_user",
		Date:        "2025-06-15",
		Description: "salad for lunch",
	})
	require.NoError(t, err)

	log, err := h.Execute(context.Background(), router.CapGetFoodLog, router.Arguments{
		UserID: "default_user",
		Date:   "2025-06-15",
	})

	require.NoError(t, err)
	assert.Contains(t, log, "🍽️ Food log for 2025-06-15:")
	assert.Contains(t, log, "breakfast: oatmeal")
	assert.Contains(t, log, "lunch: salad")
}

func TestHandler_LogFood_CalorieTotals(t *testing.T) {
	h, _ := newTestHandler(t)

	breakfast := 300.0
	got, err := h.Execute(context.Background(), router.CapLogFood, router.Arguments{
		UserID:      "default_user",
		Date:        "2025-06-15",
		Amount:      &breakfast,
		Description: "calories of oatmeal for breakfast",
	})
	require.NoError(t, err)
	assert.Equal(t, "✅ Logged oatmeal for breakfast on 2025-06-15 (300 cal).", got)

	lunch := 450.0
	_, err = h.Execute(context.Background(), router.CapLogFood, router.Arguments{
		UserID:      "default_user",
		Date:        "2025-06-15",
		Amount:      &lunch,
		Description: "pasta for lunch",
	})
	require.NoError(t, err)

	log, err := h.Execute(context.Background(), router.CapGetFoodLog, router.Arguments{
		UserID: "default_user",
		Date:   "2025-06-15",
	})
	require.NoError(t, err)
	assert.Contains(t, log, "breakfast: oatmeal (300 cal)")
	assert.Contains(t, log, "lunch: pasta (450 cal)")
	assert.Contains(t, log, "Calories: breakfast 300, lunch 450. Total: 750.")
}

func TestHandler_FoodLog_DaysAreIsolated(t *testing.T) {
	h, _ := newTestHandler(t)

	_, err := h.Execute(context.Background(), router.CapLogFood, router.Arguments{
		UserID:      "default_user",
		Date:        "2025-06-14",
		Description: "pizza dinner",
	})
	require.NoError(t, err)

	got, err := h.Execute(context.Background(), router.CapGetFoodLog, router.Arguments{
		UserID: "default_user",
		Date:   "2025-06-15",
	})

	require.NoError(t, err)
	assert.Equal(t, "No food logged on 2025-06-15.", got)
}

func TestHandler_LogFood_NoMealDefaultsToSnack(t *testing.T) {
	h, _ := newTestHandler(t)

	got, err := h.Execute(context.Background(), router.CapLogFood, router.Arguments{
		UserID:      "default_user",
		Date:        "2025-06-15",
		Description: "an apple",
	})

	require.NoError(t, err)
	assert.Equal(t, "✅ Logged an apple for snack on 2025-06-15.", got)
}

func TestInferGoalType(t *testing.T) {
	tests := []struct {
		description string
		want        string
	}{
		{"drink 8 glasses of water", "water"},
		{"lose some weight", "weight"},
		{"walk more steps", "steps"},
		{"stay under my calorie budget", "calories"},
		{"just be better", "general"},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			assert.Equal(t, tt.want, inferGoalType(tt.description))
		})
	}
}

func TestHandler_UnknownCapability(t *testing.T) {
	h, _ := newTestHandler(t)

	_, err := h.Execute(context.Background(), router.CapAddNote, router.Arguments{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownCapability)
}
