package health

import (
	"context"
	"errors"
	"fmt"

	"assistant-agents/internal/common/logger"
	"assistant-agents/internal/router"
)

var ErrUnknownCapability = errors.New("UNKNOWN_CAPABILITY")

type Handler struct {
	service *Service
	logger  logger.Logger
}

func NewHandler(service *Service, log logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log.WithFields(map[string]interface{}{"domain": "health"}),
	}
}

func (h *Handler) Execute(ctx context.Context, capability router.Capability, args router.Arguments) (string, error) {
	switch capability {
	case router.CapAddHealthGoal:
		return h.service.AddGoal(ctx, args)
	case router.CapListHealthGoals:
		return h.service.ListGoals(ctx, args)
	case router.CapUpdateHealthGoal:
		return h.service.UpdateGoal(ctx, args)
	case router.CapDeleteHealthGoal:
		return h.service.DeleteGoal(ctx, args)
	case router.CapLogFood:
		return h.service.LogFood(ctx, args)
	case router.CapGetFoodLog:
		return h.service.FoodLog(ctx, args)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownCapability, capability)
	}
}
