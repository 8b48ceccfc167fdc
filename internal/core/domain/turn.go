package domain

// TurnOutcome labels how a turn was handled.
type TurnOutcome string

const (
	// TurnGuided stored a profile answer and advanced the stage.
	TurnGuided TurnOutcome = "guided"
	// TurnSideQuestion answered an interruption without advancing.
	TurnSideQuestion TurnOutcome = "side_question"
	// TurnSummary was the final guided turn; the summary was produced.
	TurnSummary TurnOutcome = "summary"
	// TurnFreeform is post-finish Q&A.
	TurnFreeform TurnOutcome = "freeform"
	// TurnFailed aborted on an oracle failure without mutating state.
	TurnFailed TurnOutcome = "failed"
)

// TurnResult is what one processed turn emitted.
type TurnResult struct {
	Outcome TurnOutcome `json:"outcome"`
	// Messages are the assistant messages produced by the turn, in
	// emission order. They are already appended to the transcript.
	Messages []Message `json:"messages"`
	// RetrievedPassages is how many corpus passages backed the
	// oracle context for this turn.
	RetrievedPassages int `json:"retrieved_passages"`
}
