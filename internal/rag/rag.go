// Package rag answers questions from the ingested documents: it ranks stored chunks
// against the question, renders a grounded prompt and hands it to a generator.
package rag

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/jask/docqa/internal/llm"
)

// SystemPrompt is sent as the system message to hosted models.
const SystemPrompt = "You are a helpful assistant."

const promptTemplate = `
You are an intelligent HR assistant.

Answer the question strictly using the information provided in the context below.
If the answer is not found in the context, say "` + llm.NotAvailable + `"

Context:
{{context}}

Question:
{{question}}

Answer in clear, complete sentences.
`

// BuildPrompt renders the grounded prompt for a question and its context chunks.
func BuildPrompt(question string, context []string) string {
	r := strings.NewReplacer("{{context}}", strings.Join(context, "\n"), "{{question}}", question)
	return r.Replace(promptTemplate)
}

// Service is the question-answering pipeline behind POST /ask.
type Service struct {
	Retriever *Retriever
	Generator llm.Generator
}

func (s *Service) Answer(ctx context.Context, question string) (string, error) {
	scored, err := s.Retriever.Retrieve(ctx, question)
	if err != nil {
		return "", errors.Wrap(err, "retrieve context")
	}
	contextTexts := Texts(scored)
	log.Debug().Str("question", question).Int("chunks", len(contextTexts)).
		Str("generator", s.Generator.Name()).Msg("answering")

	answer, err := s.Generator.Generate(ctx, llm.Request{
		System:   SystemPrompt,
		Prompt:   BuildPrompt(question, contextTexts),
		Question: question,
		Context:  contextTexts,
	})
	if err != nil {
		return "", errors.Wrap(err, "generate answer")
	}
	return strings.TrimSpace(answer), nil
}
