package domain

import "time"

// Stage identifies one state of the guided conversation. The sequence is a
// total order with a single terminal absorbing state: a session only ever
// moves forward through guidedStages and ends in StageFinished.
type Stage string

const (
	StageBackground  Stage = "ask_background"
	StageIdea        Stage = "ask_idea"
	StageCustomers   Stage = "ask_customers"
	StageCompetitors Stage = "ask_competitors"
	StageLocation    Stage = "ask_location"
	StageFinished    Stage = "finished"

	// StageGeneral is not a session state; it keys the fallback
	// instruction used for side questions and post-finish Q&A.
	StageGeneral Stage = "general"
)

var guidedStages = []Stage{
	StageBackground,
	StageIdea,
	StageCustomers,
	StageCompetitors,
	StageLocation,
}

// GuidedStages returns the fixed guided stage order.
func GuidedStages() []Stage {
	out := make([]Stage, len(guidedStages))
	copy(out, guidedStages)
	return out
}

// Next returns the stage that follows s in the guided sequence.
// The last guided stage transitions to StageFinished; StageFinished
// is absorbing.
func (s Stage) Next() Stage {
	for i, stage := range guidedStages {
		if stage != s {
			continue
		}
		if i == len(guidedStages)-1 {
			return StageFinished
		}
		return guidedStages[i+1]
	}
	return StageFinished
}

// IsGuided reports whether s is one of the five profile-building stages.
func (s Stage) IsGuided() bool {
	for _, stage := range guidedStages {
		if stage == s {
			return true
		}
	}
	return false
}

// IdeaProfile holds the answers collected across the guided stages.
// Fields are empty until the matching stage has been answered and are
// never cleared afterwards.
type IdeaProfile struct {
	Background  string `json:"background,omitempty"`
	Idea        string `json:"idea,omitempty"`
	Customers   string `json:"customers,omitempty"`
	Competitors string `json:"competitors,omitempty"`
	Location    string `json:"location,omitempty"`
}

// Set stores answer under the field owned by stage. Non-guided stages
// are ignored.
func (p *IdeaProfile) Set(stage Stage, answer string) {
	switch stage {
	case StageBackground:
		p.Background = answer
	case StageIdea:
		p.Idea = answer
	case StageCustomers:
		p.Customers = answer
	case StageCompetitors:
		p.Competitors = answer
	case StageLocation:
		p.Location = answer
	}
}

// Value returns the collected answer for stage, empty if not yet set.
func (p *IdeaProfile) Value(stage Stage) string {
	switch stage {
	case StageBackground:
		return p.Background
	case StageIdea:
		return p.Idea
	case StageCustomers:
		return p.Customers
	case StageCompetitors:
		return p.Competitors
	case StageLocation:
		return p.Location
	default:
		return ""
	}
}

// CollectedCount returns how many guided answers have been stored.
func (p *IdeaProfile) CollectedCount() int {
	n := 0
	for _, stage := range guidedStages {
		if p.Value(stage) != "" {
			n++
		}
	}
	return n
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one role-tagged transcript entry. Entries are append-only
// and immutable once written.
type Message struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is the mutable per-learner conversation state. It is owned by
// its caller, threaded explicitly through every turn, and never shared
// across sessions.
type Session struct {
	ID              string      `json:"id"`
	Stage           Stage       `json:"stage"`
	Profile         IdeaProfile `json:"profile"`
	PendingQuestion string      `json:"pending_question"`
	Transcript      []Message   `json:"transcript"`
	Summary         string      `json:"summary,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}
