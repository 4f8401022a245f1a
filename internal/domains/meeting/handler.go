package meeting

import (
	"context"
	"errors"
	"fmt"

	"assistant-agents/internal/common/logger"
	"assistant-agents/internal/router"
)

const AgentName = "meeting_manager"

var ErrUnknownCapability = errors.New("UNKNOWN_CAPABILITY")

// Handler binds the meeting service to the router's collaborator contract.
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
	case router.CapAddMeeting:
		return h.service.AddMeeting(ctx, args)
	case router.CapListMeetings:
		return h.service.ListMeetings(ctx, args)
	case router.CapSearchMeetings:
		return h.service.SearchMeetings(ctx, args)
	case router.CapUpdateMeeting:
		return h.service.UpdateMeeting(ctx, args)
	case router.CapDeleteMeeting:
		return h.service.DeleteMeeting(ctx, args)
	case router.CapMeetingConflicts:
		return h.service.Conflicts(ctx, args)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownCapability, capability)
	}
}
