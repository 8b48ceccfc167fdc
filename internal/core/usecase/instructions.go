package usecase

import "github.com/kirillkom/idea-coach/internal/core/domain"

// StageInstructions maps each stage to the natural-language instruction
// steering the oracle for that stage. The table is configuration, not
// code: config.LoadStageInstructions merges an external yaml file over
// these defaults without the state machine knowing.
type StageInstructions map[domain.Stage]string

// DefaultStageInstructions returns the built-in instruction table: the
// five guided stages plus the "general" fallback.
func DefaultStageInstructions() StageInstructions {
	return StageInstructions{
		domain.StageBackground:  "Appreciate the learner's background and say why skills/experience help in choosing a business idea.",
		domain.StageIdea:        "Summarize the idea in 3-4 bullet points, give one strength and one improvement point.",
		domain.StageCustomers:   "Check if the customer group is specific. Suggest 2-3 improvements.",
		domain.StageCompetitors: "Give 2 simple suggestions on how to stand out vs competitors.",
		domain.StageLocation:    "Explain (briefly) why location matters and what to observe.",
		domain.StageGeneral:     "Give simple, friendly entrepreneurship advice in 4-6 sentences.",
	}
}

// Lookup returns the instruction for stage, falling back to a generic
// coaching instruction for unknown keys.
func (si StageInstructions) Lookup(stage domain.Stage) string {
	if instruction, ok := si[stage]; ok && instruction != "" {
		return instruction
	}
	return "Give friendly advice."
}

const greeting = "Assalam o alaikum! 👋"

// Fixed question texts for each guided stage. StageBackground's entry
// seeds a new session's opening question.
var stageQuestions = map[domain.Stage]string{
	domain.StageBackground:  "First, tell me about yourself — skills, experience, situation?",
	domain.StageIdea:        "Great — now describe one business idea you have?",
	domain.StageCustomers:   "Nice. Who are your main customers?",
	domain.StageCompetitors: "Now tell me about your competitors.",
	domain.StageLocation:    "Where will you run this business (home, shop, online)?",
}

const summaryReadyNotice = "Here is your business idea summary below:"
