// File path: internal/llm/providers/provider.go
package providers

import "context"

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string
	Content string
}

// Provider is the single capability the pipeline needs from a language
// model: turn a message sequence into generated text. Implementations are
// synchronous and perform no retries; a failure aborts the in-flight
// document build.
type Provider interface {
	Chat(ctx context.Context, messages []Message) (string, error)
	Name() string
}
