package domain

// Passage is one reference text unit from the advisory corpus.
// Passages are immutable after load; ID is the position in load order.
type Passage struct {
	ID      int    `json:"id"`
	Content string `json:"content"`
}

// RankedResult pairs a passage with its relevance score for one query.
// Produced per query, ordered descending by score, never persisted.
type RankedResult struct {
	Passage *Passage `json:"passage"`
	Score   float64  `json:"score"`
}
