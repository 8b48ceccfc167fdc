package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/kirillkom/idea-coach/internal/core/domain"
)

func newRepoWithMock(t *testing.T) (*SessionRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	return &SessionRepository{db: db}, mock, func() { _ = db.Close() }
}

func TestGetReturnsDomainNotFound(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	mock.ExpectQuery("SELECT session_id, stage, background").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "missing")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestGetAssemblesTranscriptInOrder(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT session_id, stage, background").
		WithArgs("s-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"session_id", "stage", "background", "idea", "customers", "competitors", "location", "pending_question", "summary", "created_at", "updated_at",
		}).AddRow("s-1", "ask_idea", "a tailor", "", "", "", "", "Great — now describe one business idea you have?", "", now, now))

	mock.ExpectQuery("SELECT id, role, content, created_at").
		WithArgs("s-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "role", "content", "created_at"}).
			AddRow("m-1", "assistant", "hello", now).
			AddRow("m-2", "user", "a tailor", now))

	session, err := repo.Get(context.Background(), "s-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if session.Stage != domain.StageIdea {
		t.Fatalf("unexpected stage: %s", session.Stage)
	}
	if session.Profile.Background != "a tailor" {
		t.Fatalf("unexpected background: %q", session.Profile.Background)
	}
	if len(session.Transcript) != 2 || session.Transcript[0].ID != "m-1" || session.Transcript[1].Role != "user" {
		t.Fatalf("unexpected transcript: %+v", session.Transcript)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestSaveAppendsOnlyNewMessages(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	now := time.Now().UTC()
	session := &domain.Session{
		ID:              "s-1",
		Stage:           domain.StageCustomers,
		Profile:         domain.IdeaProfile{Background: "a tailor", Idea: "a shop"},
		PendingQuestion: "Nice. Who are your main customers?",
		Transcript: []domain.Message{
			{ID: "m-1", SessionID: "s-1", Role: "assistant", Content: "hello", CreatedAt: now},
			{ID: "m-2", SessionID: "s-1", Role: "user", Content: "a shop", CreatedAt: now},
			{ID: "m-3", SessionID: "s-1", Role: "assistant", Content: "feedback", CreatedAt: now},
		},
		UpdatedAt: now,
	}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE coach_sessions").
		WithArgs("s-1", "ask_customers", "a tailor", "a shop", "", "", "", session.PendingQuestion, "", now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM coach_messages").
		WithArgs("s-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectExec("INSERT INTO coach_messages").
		WithArgs("m-2", "s-1", 1, "user", "a shop", now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO coach_messages").
		WithArgs("m-3", "s-1", 2, "assistant", "feedback", now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.Save(context.Background(), session); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestSaveUnknownSessionReturnsNotFound(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	now := time.Now().UTC()
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE coach_sessions").
		WithArgs("ghost", "ask_background", "", "", "", "", "", "", "", now).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Save(context.Background(), &domain.Session{
		ID:        "ghost",
		Stage:     domain.StageBackground,
		UpdatedAt: now,
	})
	if !domain.IsKind(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
