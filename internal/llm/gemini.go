package llm

import (
	"context"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

const geminiDefaultModel = "gemini-2.0-flash"

// GeminiProvider calls Google's Gemini API. The client is created lazily on first use.
type GeminiProvider struct {
	apiKey      string
	model       string
	temperature float32

	mu     sync.Mutex
	client *genai.Client
}

func NewGeminiProvider(apiKey, model string, temperature float64) *GeminiProvider {
	if strings.TrimSpace(model) == "" {
		model = geminiDefaultModel
	}
	return &GeminiProvider{
		apiKey:      strings.TrimSpace(apiKey),
		model:       strings.TrimSpace(model),
		temperature: float32(temperature),
	}
}

func (g *GeminiProvider) Name() string { return ProviderGemini }

func (g *GeminiProvider) ensureClient(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.client != nil {
		return nil
	}
	client, err := genai.NewClient(context.WithoutCancel(ctx), option.WithAPIKey(g.apiKey))
	if err != nil {
		return errors.Wrap(err, "gemini: create client")
	}
	g.client = client
	return nil
}

func (g *GeminiProvider) Generate(ctx context.Context, req Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	if err := g.ensureClient(ctx); err != nil {
		return "", err
	}

	g.mu.Lock()
	model := g.client.GenerativeModel(g.model)
	g.mu.Unlock()
	model.SetTemperature(g.temperature)
	if req.System != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(req.System)}}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return "", errors.Wrap(err, "gemini: generate")
	}
	if len(resp.Candidates) == 0 {
		return "", errors.New("gemini: no response candidates")
	}
	return strings.TrimSpace(extractText(resp)), nil
}

// Close releases the underlying client.
func (g *GeminiProvider) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.client == nil {
		return nil
	}
	return g.client.Close()
}

// extractText joins the text parts of the first candidate.
func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return b.String()
}
