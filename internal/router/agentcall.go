package router

import (
	"context"
	"encoding/json"
	"fmt"

	"assistant-agents/internal/acp"
)

// CapabilityRequest is the payload exchanged with remote agents. The
// orchestrator encodes it as the text of a single message part; the agent
// decodes it back before touching its stores.
type CapabilityRequest struct {
	Capability Capability `json:"capability"`
	Args       Arguments  `json:"args"`
}

// DecodeCapabilityRequest parses an inbound agent message body.
func DecodeCapabilityRequest(text string) (CapabilityRequest, error) {
	var req CapabilityRequest
	if err := json.Unmarshal([]byte(text), &req); err != nil {
		return CapabilityRequest{}, fmt.Errorf("invalid capability request: %w", err)
	}
	if req.Capability == "" {
		return CapabilityRequest{}, fmt.Errorf("capability request missing capability")
	}
	return req, nil
}

// RemoteCollaborator forwards capability calls to an agent process over
// the run endpoint.
type RemoteCollaborator struct {
	client *acp.Client
	agent  string
}

func NewRemoteCollaborator(client *acp.Client, agent string) *RemoteCollaborator {
	return &RemoteCollaborator{client: client, agent: agent}
}

func (c *RemoteCollaborator) Execute(ctx context.Context, capability Capability, args Arguments) (string, error) {
	payload, err := json.Marshal(CapabilityRequest{Capability: capability, Args: args})
	if err != nil {
		return "", fmt.Errorf("encode capability request: %w", err)
	}
	return c.client.Run(ctx, c.agent, string(payload))
}

// CollaboratorAgent exposes a collaborator as an agent function: the
// inverse of RemoteCollaborator, used by the agent binaries.
func CollaboratorAgent(c Collaborator) acp.AgentFunc {
	return func(ctx context.Context, input []acp.Message) ([]acp.Message, error) {
		if len(input) == 0 {
			return nil, fmt.Errorf("empty input")
		}
		req, err := DecodeCapabilityRequest(input[0].Text())
		if err != nil {
			return nil, err
		}
		text, err := c.Execute(ctx, req.Capability, req.Args)
		if err != nil {
			return nil, err
		}
		return []acp.Message{acp.TextMessage(text)}, nil
	}
}
