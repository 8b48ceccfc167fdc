package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kirillkom/idea-coach/internal/core/domain"
	"github.com/kirillkom/idea-coach/internal/core/ports"
)

const turnFailureNotice = "Sorry — I could not reach the coaching service just now. Nothing was saved; please send that again."

// CoachUseCase drives the guided conversation: it owns the stage
// sequence, interleaves side-question handling, and produces the final
// summary. One turn is fully processed before the next is accepted;
// the session is owned by the caller and threaded through every call.
type CoachUseCase struct {
	oracle      ports.Oracle
	composer    *ContextComposer
	events      ports.EventPublisher
	temperature float64
}

// NewCoachUseCase wires the state machine. events may be nil when no
// event transport is configured.
func NewCoachUseCase(oracle ports.Oracle, composer *ContextComposer, events ports.EventPublisher, temperature float64) *CoachUseCase {
	if temperature <= 0 || temperature > 1 {
		temperature = 0.7
	}
	return &CoachUseCase{
		oracle:      oracle,
		composer:    composer,
		events:      events,
		temperature: temperature,
	}
}

// StartSession seeds a fresh session at the first guided stage with the
// greeting and the opening question already in the transcript.
func (uc *CoachUseCase) StartSession(sessionID string) *domain.Session {
	now := time.Now().UTC()
	opening := stageQuestions[domain.StageBackground]
	session := &domain.Session{
		ID:              sessionID,
		Stage:           domain.StageBackground,
		PendingQuestion: opening,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	uc.appendMessage(session, domain.RoleAssistant, greeting+"\n\n"+opening)
	return session
}

// Converse processes one turn. Profile fields, the stage and the
// pending question mutate only after every oracle call for the turn
// has succeeded; a failed turn appends a retry notice and leaves them
// untouched, so the learner's next input re-attempts the same stage.
func (uc *CoachUseCase) Converse(ctx context.Context, session *domain.Session, input string) (*domain.TurnResult, error) {
	if session == nil {
		return nil, domain.WrapError(domain.ErrInvalidInput, "converse", errors.New("session is required"))
	}
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "converse", errors.New("input is required"))
	}

	uc.appendMessage(session, domain.RoleUser, input)

	switch {
	case session.Stage != domain.StageFinished && looksLikeQuestion(input):
		return uc.handleSideQuestion(ctx, session, trimmed)
	case session.Stage == domain.StageFinished:
		return uc.handleFreeform(ctx, session, trimmed)
	default:
		return uc.handleGuided(ctx, session, trimmed)
	}
}

// handleSideQuestion answers an interruption with the general
// instruction, then re-asks the pending guided question verbatim.
// The only transition that does not progress the sequence.
func (uc *CoachUseCase) handleSideQuestion(ctx context.Context, session *domain.Session, input string) (*domain.TurnResult, error) {
	instruction, contextBlock, retrieved := uc.composer.Compose(domain.StageGeneral, input, &session.Profile)
	reply, err := uc.generate(ctx, instruction, contextBlock, input)
	if err != nil {
		return uc.failTurn(session, retrieved, err), nil
	}

	messages := []domain.Message{
		uc.appendMessage(session, domain.RoleAssistant, reply),
		uc.appendMessage(session, domain.RoleAssistant, session.PendingQuestion),
	}
	return &domain.TurnResult{
		Outcome:           domain.TurnSideQuestion,
		Messages:          messages,
		RetrievedPassages: retrieved,
	}, nil
}

// handleFreeform is post-finish Q&A: every input is answered with the
// general instruction; no field writes, no stage change.
func (uc *CoachUseCase) handleFreeform(ctx context.Context, session *domain.Session, input string) (*domain.TurnResult, error) {
	instruction, contextBlock, retrieved := uc.composer.Compose(domain.StageGeneral, input, &session.Profile)
	reply, err := uc.generate(ctx, instruction, contextBlock, input)
	if err != nil {
		return uc.failTurn(session, retrieved, err), nil
	}

	return &domain.TurnResult{
		Outcome:           domain.TurnFreeform,
		Messages:          []domain.Message{uc.appendMessage(session, domain.RoleAssistant, reply)},
		RetrievedPassages: retrieved,
	}, nil
}

func (uc *CoachUseCase) handleGuided(ctx context.Context, session *domain.Session, input string) (*domain.TurnResult, error) {
	stage := session.Stage
	if !stage.IsGuided() {
		return nil, domain.WrapError(domain.ErrInvalidInput, "guided turn", fmt.Errorf("stage %q is not guided", stage))
	}

	instruction, contextBlock, retrieved := uc.composer.Compose(stage, input, &session.Profile)
	feedback, err := uc.generate(ctx, instruction, contextBlock, input)
	if err != nil {
		return uc.failTurn(session, retrieved, err), nil
	}

	if stage == domain.StageLocation {
		return uc.finishSession(ctx, session, input, feedback, retrieved)
	}

	session.Profile.Set(stage, input)
	next := stage.Next()
	question := stageQuestions[next]

	messages := []domain.Message{
		uc.appendMessage(session, domain.RoleAssistant, feedback),
		uc.appendMessage(session, domain.RoleAssistant, question),
	}
	session.PendingQuestion = question
	session.Stage = next

	return &domain.TurnResult{
		Outcome:           domain.TurnGuided,
		Messages:          messages,
		RetrievedPassages: retrieved,
	}, nil
}

// finishSession handles the last guided stage: feedback has already
// been generated, the summary is requested over the completed profile,
// and only once both calls succeeded does any state commit. The two
// oracle calls are sequential since the summary depends on the
// just-given location answer.
func (uc *CoachUseCase) finishSession(ctx context.Context, session *domain.Session, input, feedback string, retrieved int) (*domain.TurnResult, error) {
	completed := session.Profile
	completed.Set(domain.StageLocation, input)

	summaryText, err := uc.generate(ctx, summaryInstruction, "", buildSummaryContext(&completed))
	if err != nil {
		return uc.failTurn(session, retrieved, err), nil
	}

	session.Profile = completed
	messages := []domain.Message{
		uc.appendMessage(session, domain.RoleAssistant, feedback),
		uc.appendMessage(session, domain.RoleAssistant, summaryReadyNotice),
	}
	session.Summary = summaryText
	session.Stage = domain.StageFinished

	uc.publishFinished(ctx, session)

	return &domain.TurnResult{
		Outcome:           domain.TurnSummary,
		Messages:          messages,
		RetrievedPassages: retrieved,
	}, nil
}

func (uc *CoachUseCase) generate(ctx context.Context, instruction, contextBlock, userText string) (string, error) {
	reply, err := uc.oracle.Generate(ctx, domain.OracleRequest{
		Instruction: instruction,
		Context:     contextBlock,
		UserText:    userText,
		Temperature: uc.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("oracle generate: %w", err)
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", domain.WrapError(domain.ErrOracle, "oracle generate", errors.New("empty response"))
	}
	return reply, nil
}

// failTurn records a recoverable turn failure: the notice is appended
// to the transcript inviting retry; stage, profile and pending question
// stay as they were.
func (uc *CoachUseCase) failTurn(session *domain.Session, retrieved int, err error) *domain.TurnResult {
	slog.Warn("turn_failed",
		"session_id", session.ID,
		"stage", session.Stage,
		"error", err,
	)
	notice := uc.appendMessage(session, domain.RoleAssistant, turnFailureNotice)
	return &domain.TurnResult{
		Outcome:           domain.TurnFailed,
		Messages:          []domain.Message{notice},
		RetrievedPassages: retrieved,
	}
}

func (uc *CoachUseCase) publishFinished(ctx context.Context, session *domain.Session) {
	if uc.events == nil {
		return
	}
	if err := uc.events.PublishSessionFinished(ctx, session.ID, session.Summary); err != nil {
		slog.Warn("publish_session_finished_failed", "session_id", session.ID, "error", err)
	}
}

func (uc *CoachUseCase) appendMessage(session *domain.Session, role, content string) domain.Message {
	msg := domain.Message{
		ID:        uuid.NewString(),
		SessionID: session.ID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	session.Transcript = append(session.Transcript, msg)
	session.UpdatedAt = msg.CreatedAt
	return msg
}
