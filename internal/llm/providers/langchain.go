// File path: internal/llm/providers/langchain.go
package providers

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/tmc/langchaingo/llms"
	lcopenai "github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"

	"github.com/specdraft/specdraft/internal/common"
)

// LangchainProvider drives generation through langchaingo's OpenAI-compatible
// client. It exists for deployments fronted by OpenAI-compatible proxies and
// gateways that the direct SDK configuration does not cover.
type LangchainProvider struct {
	model llms.Model
	name  string
}

func NewLangchainProvider() (*LangchainProvider, error) {
	opts := []lcopenai.Option{}
	if key := strings.TrimSpace(os.Getenv("OPENAI_API_KEY")); key != "" {
		opts = append(opts, lcopenai.WithToken(key))
	}
	if model := strings.TrimSpace(os.Getenv("OPENAI_CHAT_MODEL")); model != "" {
		opts = append(opts, lcopenai.WithModel(model))
	}
	if endpoint := strings.TrimSpace(os.Getenv("OPENAI_ENDPOINT")); endpoint != "" {
		opts = append(opts, lcopenai.WithBaseURL(endpoint))
	}
	model, err := lcopenai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("init langchain backend: %w", err)
	}
	common.Logger().Info("llm: langchain provider configured")
	return &LangchainProvider{model: model, name: "langchain"}, nil
}

func (l *LangchainProvider) Chat(ctx context.Context, messages []Message) (string, error) {
	logger := common.Logger()
	content := make([]llms.MessageContent, 0, len(messages))
	for _, msg := range messages {
		role := schema.ChatMessageTypeHuman
		switch strings.ToLower(msg.Role) {
		case RoleSystem:
			role = schema.ChatMessageTypeSystem
		case RoleAssistant:
			role = schema.ChatMessageTypeAI
		}
		content = append(content, llms.TextParts(role, msg.Content))
	}
	logger.Debug("llm: sending langchain generation request", "messages", len(content))
	resp, err := l.model.GenerateContent(ctx, content)
	if err != nil {
		logger.Error("llm: langchain generation failed", "error", err)
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}
	return resp.Choices[0].Content, nil
}

func (l *LangchainProvider) Name() string {
	return l.name
}
