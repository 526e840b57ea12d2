package llm

import (
	"context"
	"strings"
	"unicode"
)

// NotAvailable is the reply when the documents do not cover the question.
const NotAvailable = "Information not available in the provided documents."

// Extractive answers offline by quoting the context sentences that overlap the
// question most. It never calls out to a model.
type Extractive struct {
	// MaxSentences caps how many sentences are quoted.
	MaxSentences int
}

func NewExtractive() *Extractive { return &Extractive{MaxSentences: 2} }

func (e *Extractive) Name() string { return ProviderExtractive }

func (e *Extractive) Generate(ctx context.Context, req Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	q := tokens(strings.ToLower(req.Question))
	if len(q) == 0 {
		return NotAvailable, nil
	}

	type scored struct {
		text  string
		score float64
		order int
	}
	var best []scored
	order := 0
	for _, chunk := range req.Context {
		for _, s := range sentences(chunk) {
			sc := overlap(q, tokens(strings.ToLower(s)))
			order++
			if sc == 0 {
				continue
			}
			best = append(best, scored{text: s, score: sc, order: order})
		}
	}
	if len(best) == 0 {
		return NotAvailable, nil
	}

	// stable selection of the top sentences, then restore reading order
	limit := e.MaxSentences
	if limit <= 0 {
		limit = 1
	}
	picked := make([]scored, 0, limit)
	for len(picked) < limit && len(best) > 0 {
		top := 0
		for i := range best {
			if best[i].score > best[top].score {
				top = i
			}
		}
		picked = append(picked, best[top])
		best = append(best[:top], best[top+1:]...)
	}
	for i := 1; i < len(picked); i++ {
		for j := i; j > 0 && picked[j].order < picked[j-1].order; j-- {
			picked[j], picked[j-1] = picked[j-1], picked[j]
		}
	}
	parts := make([]string, len(picked))
	for i, p := range picked {
		parts[i] = p.text
	}
	return strings.Join(parts, " "), nil
}

// overlap is the share of question tokens found in the sentence.
func overlap(question, sentence map[string]struct{}) float64 {
	if len(question) == 0 || len(sentence) == 0 {
		return 0
	}
	hits := 0
	for t := range question {
		if _, ok := sentence[t]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(question))
}

var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {}, "by": {}, "do": {}, "does": {},
	"for": {}, "from": {}, "how": {}, "i": {}, "in": {}, "is": {}, "it": {}, "my": {}, "of": {}, "on": {},
	"or": {}, "the": {}, "to": {}, "what": {}, "when": {}, "where": {}, "which": {}, "who": {}, "why": {},
	"with": {}, "can": {}, "you": {}, "your": {}, "we": {}, "our": {}, "this": {}, "that": {},
}

// Tokens splits lowercase text into distinct non-stopword terms.
func Tokens(s string) []string {
	set := tokens(strings.ToLower(s))
	out := make([]string, 0, len(set))
	for _, f := range strings.FieldsFunc(strings.ToLower(s), splitter) {
		if _, ok := set[f]; ok {
			out = append(out, f)
			delete(set, f)
		}
	}
	return out
}

func splitter(r rune) bool { return !unicode.IsLetter(r) && !unicode.IsDigit(r) }

func tokens(s string) map[string]struct{} {
	parts := strings.FieldsFunc(s, splitter)
	out := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		if _, stop := stopwords[p]; stop {
			continue
		}
		out[p] = struct{}{}
	}
	return out
}

func sentences(text string) []string {
	var out []string
	start := 0
	runes := []rune(text)
	for i, r := range runes {
		if r == '.' || r == '!' || r == '?' || r == '\n' {
			if s := strings.TrimSpace(string(runes[start : i+1])); s != "" && s != "." {
				out = append(out, s)
			}
			start = i + 1
		}
	}
	if s := strings.TrimSpace(string(runes[start:])); s != "" {
		out = append(out, s)
	}
	return out
}
