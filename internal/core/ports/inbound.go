package ports

import (
	"context"

	"github.com/kirillkom/idea-coach/internal/core/domain"
)

// CoachService is the inbound contract for the guided conversation.
// StartSession seeds a fresh session with the greeting and the opening
// question; Converse processes one turn, mutating the passed session in
// place. An oracle outage is not an error here: the turn comes back
// with TurnFailed and a retry notice, state untouched.
type CoachService interface {
	StartSession(sessionID string) *domain.Session
	Converse(ctx context.Context, session *domain.Session, input string) (*domain.TurnResult, error)
}
