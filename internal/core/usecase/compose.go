package usecase

import (
	"strings"

	"github.com/kirillkom/idea-coach/internal/core/domain"
	"github.com/kirillkom/idea-coach/internal/core/ports"
)

const noContextFallback = "No relevant passages found. Give general business advice; do not fabricate specifics."

// ComposerConfig carries the retrieval and formatting constants. Zero
// values fall back to the product defaults.
type ComposerConfig struct {
	TopK            int
	MinScore        float64
	SnippetMaxChars int
}

func (c ComposerConfig) normalize() ComposerConfig {
	if c.TopK <= 0 {
		c.TopK = 3
	}
	if c.MinScore <= 0 {
		c.MinScore = 0.5
	}
	if c.SnippetMaxChars <= 0 {
		c.SnippetMaxChars = 300
	}
	return c
}

// ContextComposer builds the instruction and retrieval context for one
// turn. It never calls the oracle itself: retrieval plus formatting
// only.
type ContextComposer struct {
	retriever    ports.PassageRetriever
	instructions StageInstructions
	cfg          ComposerConfig
}

func NewContextComposer(retriever ports.PassageRetriever, instructions StageInstructions, cfg ComposerConfig) *ContextComposer {
	if instructions == nil {
		instructions = DefaultStageInstructions()
	}
	return &ContextComposer{
		retriever:    retriever,
		instructions: instructions,
		cfg:          cfg.normalize(),
	}
}

// Compose looks up the stage instruction and retrieves supporting
// passages for the turn. The retrieval query concatenates the stage
// identifier, the collected idea (when present) and the raw answer, so
// later-stage retrieval is idea-aware before the full profile exists.
// When nothing clears the score threshold the context block is the
// fixed generic-advice fallback, never empty. retrieved reports how
// many passages backed the block.
func (c *ContextComposer) Compose(stage domain.Stage, rawAnswer string, profile *domain.IdeaProfile) (instruction, contextBlock string, retrieved int) {
	instruction = c.instructions.Lookup(stage)

	query := c.buildQuery(stage, rawAnswer, profile)
	results := c.retriever.Query(query, c.cfg.TopK, c.cfg.MinScore)
	if len(results) == 0 {
		return instruction, noContextFallback, 0
	}

	var b strings.Builder
	for _, result := range results {
		b.WriteString("- ")
		b.WriteString(truncateSnippet(result.Passage.Content, c.cfg.SnippetMaxChars))
		b.WriteString("\n")
	}
	return instruction, strings.TrimRight(b.String(), "\n"), len(results)
}

func (c *ContextComposer) buildQuery(stage domain.Stage, rawAnswer string, profile *domain.IdeaProfile) string {
	parts := make([]string, 0, 3)
	parts = append(parts, string(stage))
	if profile != nil && profile.Idea != "" {
		parts = append(parts, profile.Idea)
	}
	if strings.TrimSpace(rawAnswer) != "" {
		parts = append(parts, rawAnswer)
	}
	return strings.Join(parts, " ")
}

func truncateSnippet(content string, maxChars int) string {
	runes := []rune(content)
	if len(runes) <= maxChars {
		return content
	}
	return string(runes[:maxChars]) + "…"
}
