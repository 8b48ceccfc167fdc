package config

import "testing"

func TestLoadRetrievalDefaults(t *testing.T) {
	t.Setenv("RETRIEVAL_MODE", "")
	t.Setenv("RETRIEVE_TOP_K", "")
	t.Setenv("RETRIEVE_MIN_SCORE", "")
	t.Setenv("SNIPPET_MAX_CHARS", "")
	t.Setenv("BM25_K1", "")
	t.Setenv("BM25_B", "")

	cfg := Load()
	if cfg.RetrievalMode != "bm25" {
		t.Fatalf("expected default retrieval mode bm25, got %q", cfg.RetrievalMode)
	}
	if cfg.RetrieveTopK != 3 {
		t.Fatalf("expected default top-k 3, got %d", cfg.RetrieveTopK)
	}
	if cfg.RetrieveMinScore != 0.5 {
		t.Fatalf("expected default min score 0.5, got %v", cfg.RetrieveMinScore)
	}
	if cfg.SnippetMaxChars != 300 {
		t.Fatalf("expected default snippet budget 300, got %d", cfg.SnippetMaxChars)
	}
	if cfg.BM25K1 != 1.5 || cfg.BM25B != 0.75 {
		t.Fatalf("unexpected bm25 defaults: k1=%v b=%v", cfg.BM25K1, cfg.BM25B)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Setenv("RETRIEVAL_MODE", "overlap")
	t.Setenv("RETRIEVE_TOP_K", "5")
	t.Setenv("RETRIEVE_MIN_SCORE", "0.25")
	t.Setenv("ORACLE_TEMPERATURE", "0.2")

	cfg := Load()
	if cfg.RetrievalMode != "overlap" {
		t.Fatalf("expected retrieval mode override, got %q", cfg.RetrievalMode)
	}
	if cfg.RetrieveTopK != 5 {
		t.Fatalf("expected top-k 5, got %d", cfg.RetrieveTopK)
	}
	if cfg.RetrieveMinScore != 0.25 {
		t.Fatalf("expected min score 0.25, got %v", cfg.RetrieveMinScore)
	}
	if cfg.OracleTemperature != 0.2 {
		t.Fatalf("expected temperature 0.2, got %v", cfg.OracleTemperature)
	}
}

func TestLoadIgnoresUnparsableNumbers(t *testing.T) {
	t.Setenv("RETRIEVE_TOP_K", "many")
	t.Setenv("BM25_K1", "high")

	cfg := Load()
	if cfg.RetrieveTopK != 3 || cfg.BM25K1 != 1.5 {
		t.Fatalf("expected fallbacks for unparsable values, got k=%d k1=%v", cfg.RetrieveTopK, cfg.BM25K1)
	}
}
