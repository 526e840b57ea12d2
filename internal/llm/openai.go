package llm

import (
	"context"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/pkg/errors"
)

const (
	GroqBaseURL      = "https://api.groq.com/openai/v1"
	GroqDefaultModel = "llama-3.1-8b-instant"

	openAIDefaultModel = "gpt-4o-mini"
	requestTimeout     = 30 * time.Second
)

// OpenAIProvider talks to any OpenAI-compatible chat completions endpoint.
type OpenAIProvider struct {
	name        string
	model       string
	temperature float64
	client      openai.Client
}

// NewGroqProvider targets Groq's OpenAI-compatible API.
func NewGroqProvider(apiKey, baseURL, model string, temperature float64) *OpenAIProvider {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = GroqBaseURL
	}
	if strings.TrimSpace(model) == "" {
		model = GroqDefaultModel
	}
	p := NewOpenAIProvider(apiKey, baseURL, model, temperature)
	p.name = ProviderGroq
	return p
}

func NewOpenAIProvider(apiKey, baseURL, model string, temperature float64) *OpenAIProvider {
	opts := []option.RequestOption{option.WithAPIKey(strings.TrimSpace(apiKey))}
	if u := strings.TrimSpace(baseURL); u != "" {
		opts = append(opts, option.WithBaseURL(u))
	}
	if strings.TrimSpace(model) == "" {
		model = openAIDefaultModel
	}
	return &OpenAIProvider{
		name:        ProviderOpenAI,
		model:       strings.TrimSpace(model),
		temperature: temperature,
		client:      openai.NewClient(opts...),
	}
}

func (p *OpenAIProvider) Name() string { return p.name }

func (p *OpenAIProvider) Generate(ctx context.Context, req Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	var messages []openai.ChatCompletionMessageParamUnion
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}
	messages = append(messages, openai.UserMessage(req.Prompt))

	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(p.model),
		Messages:    messages,
		Temperature: openai.Float(p.temperature),
	})
	if err != nil {
		return "", errors.Wrapf(err, "%s: chat completion", p.name)
	}
	if len(resp.Choices) == 0 {
		return "", errors.Errorf("%s: empty response", p.name)
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
