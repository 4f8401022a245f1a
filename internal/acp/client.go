package acp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"assistant-agents/internal/common/httpclient"
	"assistant-agents/internal/common/metrics"
)

// Client calls agents hosted by a remote Server.
type Client struct {
	baseURL string
	http    *httpclient.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    httpclient.NewClient(timeout),
	}
}

// Run executes the named agent with plain-text input messages and returns
// the text of the first output message.
func (c *Client) Run(ctx context.Context, agent string, inputs ...string) (string, error) {
	messages := make([]Message, 0, len(inputs))
	for _, in := range inputs {
		messages = append(messages, TextMessage(in))
	}

	body, err := json.Marshal(RunRequest{Agent: agent, Input: messages})
	if err != nil {
		return "", fmt.Errorf("marshal run request: %w", err)
	}

	start := time.Now()
	resp, err := c.http.PostJSON(ctx, c.baseURL+"/runs", body)
	metrics.AgentCallDuration.WithLabelValues(agent).Observe(time.Since(start).Seconds())
	if err != nil {
		return "", fmt.Errorf("call agent %s: %w", agent, err)
	}
	defer resp.Body.Close()

	var runResp RunResponse
	if err := json.NewDecoder(resp.Body).Decode(&runResp); err != nil {
		return "", fmt.Errorf("decode run response: %w", err)
	}

	if runResp.Error != "" {
		return "", fmt.Errorf("agent %s: %s", agent, runResp.Error)
	}
	if len(runResp.Output) == 0 {
		return "", fmt.Errorf("agent %s returned no output", agent)
	}

	return runResp.Output[0].Text(), nil
}
