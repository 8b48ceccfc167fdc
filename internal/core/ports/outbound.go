package ports

import (
	"context"

	"github.com/kirillkom/idea-coach/internal/core/domain"
)

// Oracle is the external text-generation service: one request, one text
// response or a failure. Implementations may add timeouts, retries or
// circuit breaking at this boundary; the caller sees a single atomic
// success or failure per call.
type Oracle interface {
	Generate(ctx context.Context, req domain.OracleRequest) (string, error)
}

// PassageRetriever ranks corpus passages against a query. Pure and
// deterministic: no I/O, identical corpus and query always yield the
// identical ranking.
type PassageRetriever interface {
	Query(text string, k int, minScore float64) []domain.RankedResult
}

// SessionStore persists conversation state between turns.
type SessionStore interface {
	Create(ctx context.Context, session *domain.Session) error
	Get(ctx context.Context, sessionID string) (*domain.Session, error)
	Save(ctx context.Context, session *domain.Session) error
}

// EventPublisher announces session lifecycle events to interested
// consumers. Publishing is best-effort from the caller's perspective.
type EventPublisher interface {
	PublishSessionFinished(ctx context.Context, sessionID, summary string) error
}
