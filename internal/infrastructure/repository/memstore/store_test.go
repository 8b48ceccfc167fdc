package memstore

import (
	"context"
	"testing"

	"github.com/kirillkom/idea-coach/internal/core/domain"
)

func TestCreateGetSaveRoundtrip(t *testing.T) {
	store := New()
	ctx := context.Background()

	session := &domain.Session{
		ID:    "s-1",
		Stage: domain.StageBackground,
		Transcript: []domain.Message{
			{ID: "m-1", SessionID: "s-1", Role: domain.RoleAssistant, Content: "hello"},
		},
	}
	if err := store.Create(ctx, session); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	loaded, err := store.Get(ctx, "s-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	loaded.Stage = domain.StageIdea
	loaded.Transcript = append(loaded.Transcript, domain.Message{ID: "m-2", Role: domain.RoleUser, Content: "a tailor"})
	if err := store.Save(ctx, loaded); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	again, err := store.Get(ctx, "s-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if again.Stage != domain.StageIdea || len(again.Transcript) != 2 {
		t.Fatalf("saved state not visible: stage=%s messages=%d", again.Stage, len(again.Transcript))
	}
}

func TestGetUnknownSessionIsNotFound(t *testing.T) {
	if _, err := New().Get(context.Background(), "ghost"); !domain.IsKind(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestCreateDuplicateRejected(t *testing.T) {
	store := New()
	ctx := context.Background()
	session := &domain.Session{ID: "s-1", Stage: domain.StageBackground}

	if err := store.Create(ctx, session); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := store.Create(ctx, session); !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected duplicate rejection, got %v", err)
	}
}

func TestGetReturnsIsolatedCopy(t *testing.T) {
	store := New()
	ctx := context.Background()
	if err := store.Create(ctx, &domain.Session{ID: "s-1", Stage: domain.StageBackground}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	first, _ := store.Get(ctx, "s-1")
	first.Stage = domain.StageFinished

	second, _ := store.Get(ctx, "s-1")
	if second.Stage != domain.StageBackground {
		t.Fatalf("caller mutation leaked into store: %s", second.Stage)
	}
}
