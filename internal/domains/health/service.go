package health

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"assistant-agents/internal/common/logger"
	"assistant-agents/internal/models"
	"assistant-agents/internal/router"
)

// goalTypesByKeyword maps description words to a goal type.
var goalTypesByKeyword = []struct {
	keyword  string
	goalType string
}{
	{"weight", "weight"},
	{"calorie", "calories"},
	{"water", "water"},
	{"glasses", "water"},
	{"step", "steps"},
	{"run", "exercise"},
	{"km", "exercise"},
	{"mile", "exercise"},
	{"sleep", "sleep"},
}

var mealTypes = []string{"breakfast", "lunch", "dinner", "snack"}

type Service struct {
	store  *Store
	logger logger.Logger
	now    func() time.Time
}

func NewService(store *Store, log logger.Logger) *Service {
	return &Service{
		store:  store,
		logger: log.WithFields(map[string]interface{}{"domain": "health"}),
		now:    time.Now,
	}
}

func (s *Service) AddGoal(ctx context.Context, args router.Arguments) (string, error) {
	g := &models.HealthGoal{
		GoalID:      uuid.NewString(),
		UserID:      args.UserID,
		GoalType:    inferGoalType(args.Description),
		TargetValue: *args.Amount,
		Description: args.Description,
		CreatedAt:   s.now().UTC(),
	}

	if err := s.store.SaveGoal(ctx, g); err != nil {
		return "", err
	}

	s.logger.Info("health goal added", map[string]interface{}{
		"goalId":   g.GoalID,
		"userId":   g.UserID,
		"goalType": g.GoalType,
	})

	return fmt.Sprintf("✅ Added %s goal: %s (target %.1f). id: %s",
		g.GoalType, g.Description, g.TargetValue, g.GoalID), nil
}

func (s *Service) ListGoals(ctx context.Context, args router.Arguments) (string, error) {
	goals, err := s.store.ListGoals(ctx, args.UserID)
	if err != nil {
		return "", err
	}
	if len(goals) == 0 {
		return "No health goals set. Try: \"set a goal to drink 8 glasses of water\".", nil
	}

	// Hash iteration order is arbitrary; present oldest first.
	sort.Slice(goals, func(i, j int) bool {
		return goals[i].CreatedAt.Before(goals[j].CreatedAt)
	})

	var b strings.Builder
	b.WriteString("🎯 Your health goals:")
	for _, g := range goals {
		pct := 0.0
		if g.TargetValue != 0 {
			pct = g.CurrentValue / g.TargetValue * 100
		}
		fmt.Fprintf(&b, "\n  - %s: %.1f of %.1f (%.0f%%) [id: %s]",
			g.GoalType, g.CurrentValue, g.TargetValue, pct, g.GoalID)
	}
	return b.String(), nil
}

// UpdateGoal moves the goal's current value to the amount in the
// utterance. Progress updates are the only mutation goals need.
func (s *Service) UpdateGoal(ctx context.Context, args router.Arguments) (string, error) {
	g, err := s.store.GetGoal(ctx, args.UserID, args.EntityID)
	if err != nil {
		return "", err
	}
	if g == nil {
		return fmt.Sprintf("❌ No health goal with id %s found for you.", args.EntityID), nil
	}

	if args.Amount == nil {
		return "Tell me the new value, for example: \"update health goal id: abc to 72\".", nil
	}

	g.CurrentValue = *args.Amount
	if err := s.store.SaveGoal(ctx, g); err != nil {
		return "", err
	}

	pct := 0.0
	if g.TargetValue != 0 {
		pct = g.CurrentValue / g.TargetValue * 100
	}
	return fmt.Sprintf("✅ Goal %s updated: %.1f of %.1f (%.0f%%).",
		g.GoalID, g.CurrentValue, g.TargetValue, pct), nil
}

func (s *Service) DeleteGoal(ctx context.Context, args router.Arguments) (string, error) {
	removed, err := s.store.DeleteGoal(ctx, args.UserID, args.EntityID)
	if err != nil {
		return "", err
	}
	if !removed {
		return fmt.Sprintf("❌ No health goal with id %s found for you.", args.EntityID), nil
	}

	s.logger.Info("health goal deleted", map[string]interface{}{
		"goalId": args.EntityID,
		"userId": args.UserID,
	})
	return fmt.Sprintf("✅ Deleted health goal %s.", args.EntityID), nil
}

func (s *Service) LogFood(ctx context.Context, args router.Arguments) (string, error) {
	item, meal := splitMeal(args.Description)

	entry := &models.FoodLogEntry{
		FoodID:    uuid.NewString(),
		UserID:    args.UserID,
		MealType:  meal,
		FoodItem:  item,
		Date:      args.Date,
		CreatedAt: s.now().UTC(),
	}
	if args.Amount != nil && *args.Amount > 0 {
		entry.Calories = int(*args.Amount)
		entry.FoodItem = trimCaloriePrefix(entry.FoodItem)
	}

	if err := s.store.AppendFood(ctx, entry); err != nil {
		return "", err
	}
	if entry.Calories > 0 {
		return fmt.Sprintf("✅ Logged %s for %s on %s (%d cal).",
			entry.FoodItem, entry.MealType, entry.Date, entry.Calories), nil
	}
	return fmt.Sprintf("✅ Logged %s for %s on %s.", entry.FoodItem, entry.MealType, entry.Date), nil
}

func (s *Service) FoodLog(ctx context.Context, args router.Arguments) (string, error) {
	entries, err := s.store.FoodForDay(ctx, args.UserID, args.Date)
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return fmt.Sprintf("No food logged on %s.", args.Date), nil
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return mealRank(entries[i].MealType) < mealRank(entries[j].MealType)
	})

	var b strings.Builder
	fmt.Fprintf(&b, "🍽️ Food log for %s:", args.Date)
	mealTotals := make(map[string]int)
	total := 0
	for _, e := range entries {
		fmt.Fprintf(&b, "\n  - %s: %s", e.MealType, e.FoodItem)
		if e.Calories > 0 {
			fmt.Fprintf(&b, " (%d cal)", e.Calories)
			mealTotals[e.MealType] += e.Calories
			total += e.Calories
		}
	}
	if total > 0 {
		var parts []string
		for _, m := range mealTypes {
			if mealTotals[m] > 0 {
				parts = append(parts, fmt.Sprintf("%s %d", m, mealTotals[m]))
			}
		}
		fmt.Fprintf(&b, "\nCalories: %s. Total: %d.", strings.Join(parts, ", "), total)
	}
	return b.String(), nil
}

func inferGoalType(description string) string {
	lower := strings.ToLower(description)
	for _, entry := range goalTypesByKeyword {
		if strings.Contains(lower, entry.keyword) {
			return entry.goalType
		}
	}
	return "general"
}

// splitMeal pulls the meal name out of the description, defaulting to
// "snack" when none is mentioned.
func splitMeal(description string) (item, meal string) {
	lower := strings.ToLower(description)
	for _, m := range mealTypes {
		idx := strings.Index(lower, m)
		if idx < 0 {
			continue
		}
		item = strings.TrimSpace(strings.Trim(description[:idx]+description[idx+len(m):], " ,."))
		for _, suffix := range []string{" for", " at", " as"} {
			item = strings.TrimSuffix(item, suffix)
		}
		if item == "" {
			item = description
		}
		return item, m
	}
	return description, "snack"
}

// trimCaloriePrefix drops the unit words left behind once the calorie
// number has been pulled out of the text.
func trimCaloriePrefix(item string) string {
	lower := strings.ToLower(item)
	for _, prefix := range []string{"calories of ", "calories ", "cal of ", "cal "} {
		if strings.HasPrefix(lower, prefix) {
			return strings.TrimSpace(item[len(prefix):])
		}
	}
	return item
}

func mealRank(meal string) int {
	for i, m := range mealTypes {
		if m == meal {
			return i
		}
	}
	return len(mealTypes)
}
