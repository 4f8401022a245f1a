package expense

import (
	"context"
	"errors"
	"fmt"

	"assistant-agents/internal/common/logger"
	"assistant-agents/internal/router"
)

const AgentName = "expense_tracker"

var ErrUnknownCapability = errors.New("UNKNOWN_CAPABILITY")

// Handler binds the expense service to the router's collaborator contract.
type Handler struct {
	service *Service
	logger  logger.Logger
}

func NewHandler(service *Service, log logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log.WithFields(map[string]interface{}{"agent": AgentName}),
	}
}

func (h *Handler) Execute(ctx context.Context, capability router.Capability, args router.Arguments) (string, error) {
	switch capability {
	case router.CapAddExpense:
		return h.service.AddExpense(ctx, args)
	case router.CapListExpenses:
		return h.service.ListExpenses(ctx, args)
	case router.CapExpenseSummary:
		return h.service.Summary(ctx, args)
	case router.CapUpdateExpense:
		return h.service.UpdateExpense(ctx, args)
	case router.CapDeleteExpense:
		return h.service.DeleteExpense(ctx, args)
	case router.CapBudgetStatus:
		return h.service.BudgetStatus(ctx, args)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownCapability, capability)
	}
}
