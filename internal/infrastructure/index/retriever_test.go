package index

import (
	"testing"

	"github.com/kirillkom/idea-coach/internal/core/domain"
)

func passages(contents ...string) []domain.Passage {
	out := make([]domain.Passage, len(contents))
	for i, content := range contents {
		out[i] = domain.Passage{ID: i, Content: content}
	}
	return out
}

func TestQueryEmptyCorpusReturnsNothing(t *testing.T) {
	r := NewRetriever(New(nil, Params{}), ModeBM25)
	if got := r.Query("who are my customers", 3, 0.5); len(got) != 0 {
		t.Fatalf("expected empty result for empty corpus, got %d", len(got))
	}
}

func TestQueryEmptyQueryReturnsNothing(t *testing.T) {
	r := NewRetriever(New(passages("pricing strategy"), Params{}), ModeBM25)
	for _, q := range []string{"", "   ", "?!,."} {
		if got := r.Query(q, 3, 0); len(got) != 0 {
			t.Fatalf("expected empty result for query %q, got %d", q, len(got))
		}
	}
}

func TestQueryRanksCustomerPassageAboveUnrelated(t *testing.T) {
	corpus := passages(
		"customer segmentation and target market basics",
		"pricing strategy for small shops",
	)
	r := NewRetriever(New(corpus, Params{}), ModeBM25)

	results := r.Query("who are my target customers", 3, 0)
	if len(results) == 0 {
		t.Fatalf("expected at least one result")
	}
	if results[0].Passage.ID != 0 {
		t.Fatalf("expected customer passage ranked first, got passage %d", results[0].Passage.ID)
	}
	if len(results) > 1 && results[1].Score >= results[0].Score {
		t.Fatalf("expected strict ranking, got %v >= %v", results[1].Score, results[0].Score)
	}
}

func TestQueryRespectsLimitThresholdAndOrdering(t *testing.T) {
	corpus := passages(
		"marketing marketing marketing",
		"marketing basics for a new shop",
		"keeping business records and bookkeeping",
		"marketing and selling to customers",
	)
	r := NewRetriever(New(corpus, Params{}), ModeBM25)

	results := r.Query("marketing for my shop", 2, 0.01)
	if len(results) > 2 {
		t.Fatalf("expected at most 2 results, got %d", len(results))
	}
	for i, result := range results {
		if result.Score < 0.01 {
			t.Fatalf("result %d below minScore: %v", i, result.Score)
		}
		if i > 0 && results[i-1].Score < result.Score {
			t.Fatalf("results not sorted descending at %d", i)
		}
	}
}

func TestQueryMinScoreFiltersAll(t *testing.T) {
	r := NewRetriever(New(passages("marketing basics"), Params{}), ModeBM25)
	if got := r.Query("marketing", 3, 1e9); len(got) != 0 {
		t.Fatalf("expected threshold to filter everything, got %d", len(got))
	}
}

func TestQueryIsDeterministic(t *testing.T) {
	corpus := passages(
		"customer segmentation and target market basics",
		"pricing strategy for small shops",
		"choosing a good business location",
	)
	r := NewRetriever(New(corpus, Params{}), ModeBM25)

	first := r.Query("pricing for my shop location", 3, 0)
	for run := 0; run < 5; run++ {
		again := r.Query("pricing for my shop location", 3, 0)
		if len(again) != len(first) {
			t.Fatalf("run %d: result count changed", run)
		}
		for i := range again {
			if again[i].Passage.ID != first[i].Passage.ID || again[i].Score != first[i].Score {
				t.Fatalf("run %d: ranking changed at %d", run, i)
			}
		}
	}
}

func TestQueryTieBreaksByPassageOrder(t *testing.T) {
	// Identical passages score identically; original order must hold.
	corpus := passages(
		"simple bookkeeping for shops",
		"simple bookkeeping for shops",
	)
	r := NewRetriever(New(corpus, Params{}), ModeBM25)

	results := r.Query("bookkeeping", 2, 0)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Passage.ID != 0 || results[1].Passage.ID != 1 {
		t.Fatalf("tie not broken by passage order: %d, %d", results[0].Passage.ID, results[1].Passage.ID)
	}
}

func TestOverlapModeCountsSharedTokens(t *testing.T) {
	corpus := passages(
		"customer segmentation and target market basics",
		"pricing strategy for small shops",
	)
	r := NewRetriever(New(corpus, Params{}), ModeOverlap)

	results := r.Query("who are my target customers", 3, 0)
	if len(results) != 1 {
		t.Fatalf("expected 1 overlapping passage, got %d", len(results))
	}
	if results[0].Passage.ID != 0 || results[0].Score != 1 {
		t.Fatalf("unexpected overlap result: passage %d score %v", results[0].Passage.ID, results[0].Score)
	}
}
