package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kirillkom/idea-coach/internal/core/domain"
)

func TestLoadStageInstructionsDefaultsWithoutFile(t *testing.T) {
	instructions, err := LoadStageInstructions("")
	if err != nil {
		t.Fatalf("LoadStageInstructions() error = %v", err)
	}
	if len(instructions) != 6 {
		t.Fatalf("expected 6 entries, got %d", len(instructions))
	}
	if instructions.Lookup(domain.StageGeneral) == "" {
		t.Fatalf("missing general fallback instruction")
	}
}

func TestLoadStageInstructionsMergesOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "instructions.yaml")
	data := "ask_idea: \"Summarize the idea and name one risk.\"\ngeneral: \"Answer briefly.\"\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	instructions, err := LoadStageInstructions(path)
	if err != nil {
		t.Fatalf("LoadStageInstructions() error = %v", err)
	}
	if got := instructions.Lookup(domain.StageIdea); got != "Summarize the idea and name one risk." {
		t.Fatalf("override not applied: %q", got)
	}
	if got := instructions.Lookup(domain.StageGeneral); got != "Answer briefly." {
		t.Fatalf("general override not applied: %q", got)
	}
	// Untouched stages keep their defaults.
	if got := instructions.Lookup(domain.StageLocation); got == "" || got == "Answer briefly." {
		t.Fatalf("default lost for ask_location: %q", got)
	}
}

func TestLoadStageInstructionsRejectsUnknownStage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "instructions.yaml")
	if err := os.WriteFile(path, []byte("ask_bogus: nope\n"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if _, err := LoadStageInstructions(path); err == nil {
		t.Fatalf("expected error for unknown stage key")
	}
}
