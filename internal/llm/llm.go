// File path: internal/llm/llm.go
package llm

import (
	"os"
	"strings"
	"time"

	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/specdraft/specdraft/internal/common"
	"github.com/specdraft/specdraft/internal/llm/providers"
)

type Message = providers.Message

type Provider = providers.Provider

const (
	RoleSystem    = providers.RoleSystem
	RoleUser      = providers.RoleUser
	RoleAssistant = providers.RoleAssistant
)

// NewProvider picks a backend from the environment. With OPENAI_API_KEY set,
// the OpenAI SDK client is used unless LLM_BACKEND=langchain requests the
// langchaingo client instead. Without a key the local stub is returned.
func NewProvider() Provider {
	logger := common.Logger()
	apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	if apiKey == "" {
		logger.Warn("llm: OPENAI_API_KEY not set; falling back to local provider")
		return providers.NewLocalProvider()
	}
	if strings.EqualFold(strings.TrimSpace(os.Getenv("LLM_BACKEND")), "langchain") {
		provider, err := providers.NewLangchainProvider()
		if err != nil {
			logger.Warn("llm: langchain backend unavailable; falling back to local provider", "error", err)
			return providers.NewLocalProvider()
		}
		logger.Info("llm: langchain provider selected")
		return provider
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if timeoutStr := strings.TrimSpace(os.Getenv("OPENAI_HTTP_TIMEOUT")); timeoutStr != "" {
		timeout, err := time.ParseDuration(timeoutStr)
		if err != nil {
			logger.Warn("llm: invalid OPENAI_HTTP_TIMEOUT, using default", "value", timeoutStr, "error", err)
		} else {
			opts = append(opts, option.WithRequestTimeout(timeout))
		}
	}
	if endpoint := strings.TrimSpace(os.Getenv("OPENAI_ENDPOINT")); endpoint != "" {
		logger.Info("llm: configuring OpenAI client with custom endpoint", "endpoint", endpoint)
		opts = append(opts, option.WithBaseURL(endpoint))
	}
	client := openai.NewClient(opts...)
	logger.Info("llm: OpenAI provider selected")
	return providers.NewOpenAIProvider(client)
}
