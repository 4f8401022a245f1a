// Package acp implements the minimal agent-call protocol the assistant
// services speak: named agents exposed over HTTP, exchanging messages made
// of text parts via POST /runs.
package acp

// MessagePart is one content fragment of a message.
type MessagePart struct {
	Content     string `json:"content"`
	ContentType string `json:"content_type"`
}

// Message is an ordered list of parts.
type Message struct {
	Parts []MessagePart `json:"parts"`
}

// TextMessage builds a single-part plain-text message.
func TextMessage(content string) Message {
	return Message{Parts: []MessagePart{{Content: content, ContentType: "text/plain"}}}
}

// Text returns the concatenated text content of a message.
func (m Message) Text() string {
	if len(m.Parts) == 1 {
		return m.Parts[0].Content
	}
	var out string
	for _, p := range m.Parts {
		out += p.Content
	}
	return out
}

// RunRequest asks a server to run a named agent on the given input.
type RunRequest struct {
	Agent string    `json:"agent"`
	Input []Message `json:"input"`
}

// RunResponse carries the agent output, or an error string when the run
// itself failed.
type RunResponse struct {
	Output []Message `json:"output,omitempty"`
	Error  string    `json:"error,omitempty"`
}
