package index

import (
	"math"

	"github.com/kirillkom/idea-coach/internal/core/domain"
)

// Params holds the BM25 ranking constants. Zero values fall back to the
// defaults, so Params{} is usable as-is.
type Params struct {
	// K1 controls term-frequency saturation.
	K1 float64
	// B controls document-length normalization.
	B float64
}

const (
	defaultK1 = 1.5
	defaultB  = 0.75
)

func (p Params) normalize() Params {
	if p.K1 <= 0 {
		p.K1 = defaultK1
	}
	if p.B <= 0 || p.B > 1 {
		p.B = defaultB
	}
	return p
}

// CorpusIndex is the read-only ranking statistics over a fixed passage
// set. Built once at startup; rebuilding requires reloading the corpus.
// Safe for concurrent readers, never mutated after New.
type CorpusIndex struct {
	passages []domain.Passage
	termFreq []map[string]int
	docFreq  map[string]int
	docLen   []int
	avgLen   float64
	params   Params
}

// New builds the index from passages in load order.
func New(passages []domain.Passage, params Params) *CorpusIndex {
	idx := &CorpusIndex{
		passages: passages,
		termFreq: make([]map[string]int, len(passages)),
		docFreq:  make(map[string]int, 256),
		docLen:   make([]int, len(passages)),
		params:   params.normalize(),
	}

	total := 0
	for i, passage := range passages {
		tokens := Tokenize(passage.Content)
		tf := make(map[string]int, len(tokens))
		for _, token := range tokens {
			tf[token]++
		}
		for token := range tf {
			idx.docFreq[token]++
		}
		idx.termFreq[i] = tf
		idx.docLen[i] = len(tokens)
		total += len(tokens)
	}
	if len(passages) > 0 {
		idx.avgLen = float64(total) / float64(len(passages))
	}
	return idx
}

// Size returns the number of indexed passages.
func (idx *CorpusIndex) Size() int {
	return len(idx.passages)
}

// Passage returns the indexed passage at position i.
func (idx *CorpusIndex) Passage(i int) *domain.Passage {
	return &idx.passages[i]
}

// Score computes the BM25 relevance of passage i against the query
// tokens: sum over query terms present in the passage of
// tf*(k1+1)/(tf+k1*(1-b+b*|d|/avgdl)) * idf, with
// idf = ln((N-df+0.5)/(df+0.5) + 1).
func (idx *CorpusIndex) Score(i int, queryTokens []string) float64 {
	if idx.avgLen == 0 || idx.docLen[i] == 0 {
		return 0
	}

	k1 := idx.params.K1
	b := idx.params.B
	n := float64(len(idx.passages))
	lenNorm := 1 - b + b*float64(idx.docLen[i])/idx.avgLen

	score := 0.0
	for _, term := range queryTokens {
		tf := float64(idx.termFreq[i][term])
		if tf == 0 {
			continue
		}
		df := float64(idx.docFreq[term])
		idf := math.Log((n-df+0.5)/(df+0.5) + 1)
		score += tf * (k1 + 1) / (tf + k1*lenNorm) * idf
	}
	return score
}

// OverlapScore counts distinct query terms present in passage i. It is
// the degraded ranking used when BM25 weighting is disabled.
func (idx *CorpusIndex) OverlapScore(i int, queryTokens map[string]struct{}) float64 {
	matches := 0
	for term := range queryTokens {
		if idx.termFreq[i][term] > 0 {
			matches++
		}
	}
	return float64(matches)
}
