package ai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.uber.org/zap"
)

// DeepSeekClient talks to the DeepSeek API, which speaks the OpenAI
// chat-completions protocol.
type DeepSeekClient struct {
	client       *openai.Client
	apiKey       string
	model        string
	systemPrompt string
	maxTokens    int
	temperature  float64
	logger       *zap.Logger
}

func NewDeepSeekClient(baseURL, apiKey, model, systemPrompt string, maxTokens int, temperature float64, logger *zap.Logger) *DeepSeekClient {
	options := []option.RequestOption{option.WithBaseURL(baseURL)}

	if apiKey == "" {
		logger.Warn("DEEPSEEK_API_KEY is not set, completion requests will fail")
	} else {
		options = append(options, option.WithAPIKey(apiKey))
	}

	client := openai.NewClient(options...)
	return &DeepSeekClient{
		client:       &client,
		apiKey:       apiKey,
		model:        model,
		systemPrompt: systemPrompt,
		maxTokens:    maxTokens,
		temperature:  temperature,
		logger:       logger,
	}
}

func (c *DeepSeekClient) Complete(ctx context.Context, history []Message) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("%w: API key is not set", ErrUpstream)
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+1)
	messages = append(messages, openai.SystemMessage(c.systemPrompt))
	for _, m := range history {
		if m.Role == RoleAssistant {
			messages = append(messages, openai.AssistantMessage(m.Content))
		} else {
			messages = append(messages, openai.UserMessage(m.Content))
		}
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages:    messages,
		Model:       c.model,
		MaxTokens:   openai.Int(int64(c.maxTokens)),
		Temperature: openai.Float(c.temperature),
	})
	if err != nil {
		c.logger.Error("DeepSeek completion failed", zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no completion choices returned", ErrUpstream)
	}

	return FormatReply(resp.Choices[0].Message.Content), nil
}

func (c *DeepSeekClient) Close() error {
	return nil
}
