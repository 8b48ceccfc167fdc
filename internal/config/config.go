package config

import (
	"os"
	"strconv"
)

type Config struct {
	APIPort  string
	LogLevel string

	PostgresDSN string

	NATSURL     string
	NATSSubject string

	GroqAPIURL        string
	GroqAPIKey        string
	GroqModel         string
	OracleTemperature float64

	CorpusPath       string
	InstructionsPath string

	RetrievalMode    string
	RetrieveTopK     int
	RetrieveMinScore float64
	SnippetMaxChars  int
	BM25K1           float64
	BM25B            float64
}

func Load() Config {
	return Config{
		APIPort:  mustEnv("API_PORT", "8080"),
		LogLevel: mustEnv("LOG_LEVEL", "info"),

		// Empty DSN selects the in-memory session store.
		PostgresDSN: mustEnv("POSTGRES_DSN", ""),

		NATSURL:     mustEnv("NATS_URL", ""),
		NATSSubject: mustEnv("NATS_SUBJECT", "coach.sessions.finished"),

		GroqAPIURL:        mustEnv("GROQ_API_URL", "https://api.groq.com/openai/v1"),
		GroqAPIKey:        mustEnv("GROQ_API_KEY", ""),
		GroqModel:         mustEnv("GROQ_MODEL", "llama-3.1-8b-instant"),
		OracleTemperature: mustEnvFloat("ORACLE_TEMPERATURE", 0.7),

		CorpusPath:       mustEnv("CORPUS_PATH", "./data/gyb_chunks.json"),
		InstructionsPath: mustEnv("INSTRUCTIONS_PATH", ""),

		RetrievalMode:    mustEnv("RETRIEVAL_MODE", "bm25"),
		RetrieveTopK:     mustEnvInt("RETRIEVE_TOP_K", 3),
		RetrieveMinScore: mustEnvFloat("RETRIEVE_MIN_SCORE", 0.5),
		SnippetMaxChars:  mustEnvInt("SNIPPET_MAX_CHARS", 300),
		BM25K1:           mustEnvFloat("BM25_K1", 1.5),
		BM25B:            mustEnvFloat("BM25_B", 0.75),
	}
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
