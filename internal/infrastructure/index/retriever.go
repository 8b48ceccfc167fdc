package index

import (
	"sort"

	"github.com/kirillkom/idea-coach/internal/core/domain"
)

// Mode selects the ranking function.
type Mode string

const (
	// ModeBM25 is the weighted ranking and the intended default.
	ModeBM25 Mode = "bm25"
	// ModeOverlap is the simpler shared-token-count ranking with
	// weaker discrimination.
	ModeOverlap Mode = "overlap"
)

// Retriever ranks and filters passages over a CorpusIndex. Stateless
// beyond the read-only index; safe for concurrent use.
type Retriever struct {
	index *CorpusIndex
	mode  Mode
}

func NewRetriever(index *CorpusIndex, mode Mode) *Retriever {
	if mode != ModeOverlap {
		mode = ModeBM25
	}
	return &Retriever{index: index, mode: mode}
}

// Query scores every passage against text, discards scores below
// minScore, sorts descending (ties broken by original passage order)
// and returns at most k results. Empty corpus or a query that
// tokenizes to nothing yields an empty result.
func (r *Retriever) Query(text string, k int, minScore float64) []domain.RankedResult {
	if r.index.Size() == 0 || k <= 0 {
		return nil
	}
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return nil
	}

	var tokenSet map[string]struct{}
	if r.mode == ModeOverlap {
		tokenSet = make(map[string]struct{}, len(tokens))
		for _, token := range tokens {
			tokenSet[token] = struct{}{}
		}
	}

	scored := make([]domain.RankedResult, 0, r.index.Size())
	for i := 0; i < r.index.Size(); i++ {
		var score float64
		if r.mode == ModeOverlap {
			score = r.index.OverlapScore(i, tokenSet)
		} else {
			score = r.index.Score(i, tokens)
		}
		if score < minScore || score <= 0 {
			continue
		}
		scored = append(scored, domain.RankedResult{
			Passage: r.index.Passage(i),
			Score:   score,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > k {
		scored = scored[:k]
	}
	return scored
}
