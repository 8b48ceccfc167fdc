package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/kirillkom/idea-coach/internal/core/domain"
)

type SessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (r *SessionRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across concurrent startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026082801)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS coach_sessions (
	session_id       TEXT PRIMARY KEY,
	stage            TEXT NOT NULL,
	background       TEXT NOT NULL DEFAULT '',
	idea             TEXT NOT NULL DEFAULT '',
	customers        TEXT NOT NULL DEFAULT '',
	competitors      TEXT NOT NULL DEFAULT '',
	location         TEXT NOT NULL DEFAULT '',
	pending_question TEXT NOT NULL DEFAULT '',
	summary          TEXT NOT NULL DEFAULT '',
	created_at       TIMESTAMPTZ NOT NULL,
	updated_at       TIMESTAMPTZ NOT NULL
)`); err != nil {
		return fmt.Errorf("create coach_sessions: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS coach_messages (
	id         TEXT PRIMARY KEY,
	session_id TEXT NOT NULL REFERENCES coach_sessions(session_id),
	seq        INTEGER NOT NULL,
	role       TEXT NOT NULL,
	content    TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	UNIQUE (session_id, seq)
)`); err != nil {
		return fmt.Errorf("create coach_messages: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

func (r *SessionRepository) Create(ctx context.Context, session *domain.Session) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `
INSERT INTO coach_sessions (session_id, stage, background, idea, customers, competitors, location, pending_question, summary, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
`,
		session.ID,
		string(session.Stage),
		session.Profile.Background,
		session.Profile.Idea,
		session.Profile.Customers,
		session.Profile.Competitors,
		session.Profile.Location,
		session.PendingQuestion,
		session.Summary,
		session.CreatedAt,
		session.UpdatedAt,
	); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}

	if err := appendMessagesTx(ctx, tx, session, 0); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create tx: %w", err)
	}
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, sessionID string) (*domain.Session, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT session_id, stage, background, idea, customers, competitors, location, pending_question, summary, created_at, updated_at
FROM coach_sessions
WHERE session_id = $1
`, sessionID)

	var session domain.Session
	var stage string
	if err := row.Scan(
		&session.ID,
		&stage,
		&session.Profile.Background,
		&session.Profile.Idea,
		&session.Profile.Customers,
		&session.Profile.Competitors,
		&session.Profile.Location,
		&session.PendingQuestion,
		&session.Summary,
		&session.CreatedAt,
		&session.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrSessionNotFound, "get session", err)
		}
		return nil, fmt.Errorf("select session: %w", err)
	}
	session.Stage = domain.Stage(stage)

	transcript, err := r.listMessages(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	session.Transcript = transcript
	return &session, nil
}

// Save persists the session row and any transcript entries appended
// since the last save. Existing messages are never rewritten: the
// transcript is append-only.
func (r *SessionRepository) Save(ctx context.Context, session *domain.Session) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	result, err := tx.ExecContext(ctx, `
UPDATE coach_sessions
SET stage = $2, background = $3, idea = $4, customers = $5, competitors = $6, location = $7, pending_question = $8, summary = $9, updated_at = $10
WHERE session_id = $1
`,
		session.ID,
		string(session.Stage),
		session.Profile.Background,
		session.Profile.Idea,
		session.Profile.Customers,
		session.Profile.Competitors,
		session.Profile.Location,
		session.PendingQuestion,
		session.Summary,
		session.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return domain.WrapError(domain.ErrSessionNotFound, "save session", sql.ErrNoRows)
	}

	var persisted int
	if err := tx.QueryRowContext(ctx, `
SELECT COUNT(*) FROM coach_messages WHERE session_id = $1
`, session.ID).Scan(&persisted); err != nil {
		return fmt.Errorf("count messages: %w", err)
	}

	if err := appendMessagesTx(ctx, tx, session, persisted); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save tx: %w", err)
	}
	return nil
}

func appendMessagesTx(ctx context.Context, tx *sql.Tx, session *domain.Session, from int) error {
	for seq := from; seq < len(session.Transcript); seq++ {
		msg := session.Transcript[seq]
		if _, err := tx.ExecContext(ctx, `
INSERT INTO coach_messages (id, session_id, seq, role, content, created_at)
VALUES ($1,$2,$3,$4,$5,$6)
`, msg.ID, session.ID, seq, msg.Role, msg.Content, msg.CreatedAt); err != nil {
			return fmt.Errorf("append message seq=%d: %w", seq, err)
		}
	}
	return nil
}

func (r *SessionRepository) listMessages(ctx context.Context, sessionID string) ([]domain.Message, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, role, content, created_at
FROM coach_messages
WHERE session_id = $1
ORDER BY seq ASC
`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Message, 0, 16)
	for rows.Next() {
		msg := domain.Message{SessionID: sessionID}
		if err := rows.Scan(&msg.ID, &msg.Role, &msg.Content, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		out = append(out, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}
	return out, nil
}
