package health

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"assistant-agents/internal/models"
)

// Store keeps goals and food logs in Redis. Goals live in one hash per
// user; food entries in one list per user and day.
type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

func goalsKey(userID string) string {
	return fmt.Sprintf("health:goals:%s", userID)
}

func foodKey(userID, date string) string {
	return fmt.Sprintf("health:food:%s:%s", userID, date)
}

func (s *Store) SaveGoal(ctx context.Context, g *models.HealthGoal) error {
	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("marshal goal: %w", err)
	}
	if err := s.rdb.HSet(ctx, goalsKey(g.UserID), g.GoalID, data).Err(); err != nil {
		return fmt.Errorf("save goal: %w", err)
	}
	return nil
}

func (s *Store) GetGoal(ctx context.Context, userID, goalID string) (*models.HealthGoal, error) {
	data, err := s.rdb.HGet(ctx, goalsKey(userID), goalID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get goal: %w", err)
	}

	var g models.HealthGoal
	if err := json.Unmarshal([]byte(data), &g); err != nil {
		return nil, fmt.Errorf("unmarshal goal: %w", err)
	}
	return &g, nil
}

func (s *Store) ListGoals(ctx context.Context, userID string) ([]models.HealthGoal, error) {
	entries, err := s.rdb.HGetAll(ctx, goalsKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}

	goals := make([]models.HealthGoal, 0, len(entries))
	for _, data := range entries {
		var g models.HealthGoal
		if err := json.Unmarshal([]byte(data), &g); err != nil {
			continue
		}
		goals = append(goals, g)
	}
	return goals, nil
}

func (s *Store) DeleteGoal(ctx context.Context, userID, goalID string) (bool, error) {
	removed, err := s.rdb.HDel(ctx, goalsKey(userID), goalID).Result()
	if err != nil {
		return false, fmt.Errorf("delete goal: %w", err)
	}
	return removed > 0, nil
}

func (s *Store) AppendFood(ctx context.Context, entry *models.FoodLogEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal food entry: %w", err)
	}
	if err := s.rdb.RPush(ctx, foodKey(entry.UserID, entry.Date), data).Err(); err != nil {
		return fmt.Errorf("append food entry: %w", err)
	}
	return nil
}

func (s *Store) FoodForDay(ctx context.Context, userID, date string) ([]models.FoodLogEntry, error) {
	items, err := s.rdb.LRange(ctx, foodKey(userID, date), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read food log: %w", err)
	}

	entries := make([]models.FoodLogEntry, 0, len(items))
	for _, data := range items {
		var e models.FoodLogEntry
		if err := json.Unmarshal([]byte(data), &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}
