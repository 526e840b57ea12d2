package rag

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/docqa/internal/database/repository"
	"github.com/jask/docqa/internal/llm"
)

type staticSource []repository.Chunk

func (s staticSource) List(context.Context) ([]repository.Chunk, error) { return s, nil }

type failingSource struct{}

func (failingSource) List(context.Context) ([]repository.Chunk, error) {
	return nil, errors.New("disk gone")
}

type recordingGenerator struct {
	req    llm.Request
	answer string
}

func (g *recordingGenerator) Name() string { return "recording" }
func (g *recordingGenerator) Generate(_ context.Context, req llm.Request) (string, error) {
	g.req = req
	return g.answer, nil
}

func corpus() staticSource {
	return staticSource{
		{ID: "1", Content: "Employees are entitled to twenty days of annual leave per year."},
		{ID: "2", Content: "The notice period for resignation is 30 days."},
		{ID: "3", Content: "Office hours are nine to five."},
		{ID: "4", Content: "Probation lasts three months, during which the notice period is one week."},
	}
}

func TestRankPrefersMatchingChunks(t *testing.T) {
	got := Rank("What is the notice period?", corpus(), 2)
	require.Len(t, got, 2)
	require.Equal(t, "2", got[0].Chunk.ID)
	require.Equal(t, "4", got[1].Chunk.ID)
	require.Greater(t, got[0].Score, got[1].Score)
}

func TestRankFuzzyTerms(t *testing.T) {
	got := Rank("resignaton rules", corpus(), 1)
	require.Equal(t, "2", got[0].Chunk.ID)
	require.Greater(t, got[0].Score, 0.0)
}

func TestRankTiesKeepCorpusOrder(t *testing.T) {
	got := Rank("parking", corpus(), 3)
	require.Len(t, got, 3)
	require.Equal(t, []string{"1", "2", "3"}, []string{got[0].Chunk.ID, got[1].Chunk.ID, got[2].Chunk.ID})
}

func TestRankEdgeCases(t *testing.T) {
	require.Nil(t, Rank("notice", nil, 3))
	require.Nil(t, Rank("notice", corpus(), 0))
	require.Len(t, Rank("notice", corpus(), 10), 4)
}

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt("What is the notice period?", []string{"chunk one", "chunk two"})
	require.Contains(t, p, "Context:\nchunk one\nchunk two\n")
	require.Contains(t, p, "Question:\nWhat is the notice period?\n")
	require.Contains(t, p, llm.NotAvailable)
}

func TestServiceAnswer(t *testing.T) {
	gen := &recordingGenerator{answer: "  30 days.\n"}
	svc := &Service{Retriever: &Retriever{Source: corpus(), TopK: 3}, Generator: gen}

	answer, err := svc.Answer(context.Background(), "What is the notice period?")
	require.NoError(t, err)
	require.Equal(t, "30 days.", answer)
	require.Equal(t, SystemPrompt, gen.req.System)
	require.Equal(t, "What is the notice period?", gen.req.Question)
	require.Len(t, gen.req.Context, 3)
	require.True(t, strings.Contains(gen.req.Prompt, "The notice period for resignation is 30 days."))
}

func TestServiceAnswerWithExtractive(t *testing.T) {
	svc := &Service{Retriever: &Retriever{Source: corpus(), TopK: 3}, Generator: llm.NewExtractive()}
	answer, err := svc.Answer(context.Background(), "How long is the notice period for resignation?")
	require.NoError(t, err)
	require.Contains(t, answer, "30 days")
}

func TestServiceAnswerRetrieveError(t *testing.T) {
	svc := &Service{Retriever: &Retriever{Source: failingSource{}, TopK: 3}, Generator: &recordingGenerator{}}
	_, err := svc.Answer(context.Background(), "q")
	require.Error(t, err)
}
