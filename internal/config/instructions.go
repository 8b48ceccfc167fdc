package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kirillkom/idea-coach/internal/core/domain"
	"github.com/kirillkom/idea-coach/internal/core/usecase"
)

// LoadStageInstructions returns the built-in instruction table, with
// entries overridden by the yaml file at path when one is configured.
// The file maps stage identifiers to instruction strings:
//
//	ask_idea: "Summarize the idea and name one risk."
//	general: "Answer briefly."
//
// Unknown keys are rejected so a typoed stage name fails loudly at
// startup instead of silently keeping the default.
func LoadStageInstructions(path string) (usecase.StageInstructions, error) {
	instructions := usecase.DefaultStageInstructions()
	if path == "" {
		return instructions, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read instructions file: %w", err)
	}

	var overrides map[string]string
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("decode instructions yaml: %w", err)
	}

	for key, value := range overrides {
		stage := domain.Stage(key)
		if _, known := instructions[stage]; !known {
			return nil, fmt.Errorf("unknown stage %q in instructions file", key)
		}
		if value == "" {
			continue
		}
		instructions[stage] = value
	}
	return instructions, nil
}
