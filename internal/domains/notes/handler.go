package notes

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
		logger:  log.WithFields(map[string]interface{}{"domain": "notes"}),
	}
}

func (h *Handler) Execute(ctx context.Context, capability router.Capability, args router.Arguments) (string, error) {
	switch capability {
	case router.CapAddNote:
		return h.service.AddNote(ctx, args)
	case router.CapListNotes:
		return h.service.ListNotes(ctx, args)
	case router.CapSearchNotes:
		return h.service.SearchNotes(ctx, args)
	case router.CapUpdateNote:
		return h.service.UpdateNote(ctx, args)
	case router.CapDeleteNote:
		return h.service.DeleteNote(ctx, args)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownCapability, capability)
	}
}
