package rag

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/jask/docqa/internal/database/repository"
	"github.com/jask/docqa/internal/llm"
)

// ChunkSource lists the stored corpus.
type ChunkSource interface {
	List(ctx context.Context) ([]repository.Chunk, error)
}

const (
	exactWeight = 1.0
	fuzzyWeight = 0.5
	// fuzzy matching only considers terms at least this long
	fuzzyMinLen = 5
)

// Scored is a chunk with its relevance to a question.
type Scored struct {
	Chunk repository.Chunk
	Score float64
}

// Rank scores every chunk against the question and returns the best k in descending
// score order. Ties keep corpus order. Chunks that share no term with the question are
// still returned when fewer than k chunks match, so the prompt always carries context.
func Rank(question string, chunks []repository.Chunk, k int) []Scored {
	if k <= 0 || len(chunks) == 0 {
		return nil
	}
	terms := llm.Tokens(question)
	scored := make([]Scored, len(chunks))
	for i, c := range chunks {
		scored[i] = Scored{Chunk: c, Score: score(terms, c.Content)}
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	if len(scored) > k {
		scored = scored[:k]
	}
	return scored
}

func score(terms []string, content string) float64 {
	words := llm.Tokens(content)
	if len(terms) == 0 || len(words) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	total := 0.0
	for _, t := range terms {
		if _, ok := set[t]; ok {
			total += exactWeight
			continue
		}
		if len([]rune(t)) < fuzzyMinLen {
			continue
		}
		for _, w := range words {
			if len([]rune(w)) < fuzzyMinLen {
				continue
			}
			if levenshtein.ComputeDistance(t, w) <= 1 {
				total += fuzzyWeight
				break
			}
		}
	}
	// damp long chunks so a short, focused chunk outranks a long one with the same hits
	return total / math.Sqrt(float64(len(words)))
}

// Retriever fetches the top chunks for a question from a ChunkSource.
type Retriever struct {
	Source ChunkSource
	TopK   int
}

func (r *Retriever) Retrieve(ctx context.Context, question string) ([]Scored, error) {
	chunks, err := r.Source.List(ctx)
	if err != nil {
		return nil, err
	}
	return Rank(question, chunks, r.TopK), nil
}

// Texts returns the chunk contents in ranked order.
func Texts(scored []Scored) []string {
	out := make([]string, len(scored))
	for i, s := range scored {
		out[i] = strings.TrimSpace(s.Chunk.Content)
	}
	return out
}
