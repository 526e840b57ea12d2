package llm

import (
	"context"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jask/docqa/internal/config"
)

// Generator turns a grounded prompt into an answer.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
	Name() string
}

// Request carries both the rendered prompt for hosted models and the raw pieces the
// offline generator works from.
type Request struct {
	System   string
	Prompt   string
	Question string
	Context  []string
}

const (
	ProviderGroq       = "groq"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderExtractive = "extractive"
)

// KeySource looks up a stored API key for a provider.
type KeySource interface {
	Get(provider string) (string, error)
}

// FromConfig builds the configured provider. Hosted providers without an API key fall
// back to the extractive generator so the backend still answers from the documents.
// keys may be nil.
func FromConfig(cfg config.LLMConfig, keys KeySource) Generator {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if provider == ProviderExtractive {
		return NewExtractive()
	}
	key := ResolveAPIKey(cfg, keys)
	if key == "" {
		log.Warn().Str("provider", provider).Msg("no api key configured, answering extractively")
		return NewExtractive()
	}
	switch provider {
	case ProviderGemini:
		return NewGeminiProvider(key, cfg.Model, cfg.Temperature)
	case ProviderOpenAI:
		return NewOpenAIProvider(key, cfg.BaseURL, cfg.Model, cfg.Temperature)
	default:
		if provider != ProviderGroq {
			log.Warn().Str("provider", provider).Msg("unknown llm provider, using groq")
		}
		return NewGroqProvider(key, cfg.BaseURL, cfg.Model, cfg.Temperature)
	}
}

// ResolveAPIKey prefers the configured env var (or the provider's conventional one),
// then a key from keys, then the plain-text key from the config file.
func ResolveAPIKey(cfg config.LLMConfig, keys KeySource) string {
	env := strings.TrimSpace(cfg.APIKeyEnv)
	if env == "" {
		switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
		case ProviderOpenAI:
			env = "OPENAI_API_KEY"
		case ProviderGemini:
			env = "GEMINI_API_KEY"
		default:
			env = "GROQ_API_KEY"
		}
	}
	if v := strings.TrimSpace(os.Getenv(env)); v != "" {
		return v
	}
	if keys != nil {
		provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
		if provider == "" {
			provider = ProviderGroq
		}
		if k, err := keys.Get(provider); err == nil && strings.TrimSpace(k) != "" {
			return strings.TrimSpace(k)
		}
	}
	return strings.TrimSpace(cfg.APIKey)
}
