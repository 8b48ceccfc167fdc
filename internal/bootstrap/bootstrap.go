package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kirillkom/idea-coach/internal/config"
	"github.com/kirillkom/idea-coach/internal/core/ports"
	"github.com/kirillkom/idea-coach/internal/core/usecase"
	"github.com/kirillkom/idea-coach/internal/infrastructure/corpus"
	"github.com/kirillkom/idea-coach/internal/infrastructure/index"
	"github.com/kirillkom/idea-coach/internal/infrastructure/llm/groq"
	"github.com/kirillkom/idea-coach/internal/infrastructure/queue/nats"
	"github.com/kirillkom/idea-coach/internal/infrastructure/repository/memstore"
	"github.com/kirillkom/idea-coach/internal/infrastructure/repository/postgres"
	"github.com/kirillkom/idea-coach/internal/infrastructure/resilience"
	"github.com/kirillkom/idea-coach/internal/observability/metrics"
)

type App struct {
	Config  config.Config
	Metrics *metrics.CoachMetrics

	Store   ports.SessionStore
	CoachUC ports.CoachService

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	passages, err := corpus.LoadFile(cfg.CorpusPath)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}
	if len(passages) == 0 {
		slog.Warn("corpus_empty", "path", cfg.CorpusPath)
	}

	corpusIndex := index.New(passages, index.Params{K1: cfg.BM25K1, B: cfg.BM25B})
	retriever := index.NewRetriever(corpusIndex, index.Mode(cfg.RetrievalMode))

	instructions, err := config.LoadStageInstructions(cfg.InstructionsPath)
	if err != nil {
		return nil, fmt.Errorf("load stage instructions: %w", err)
	}
	composer := usecase.NewContextComposer(retriever, instructions, usecase.ComposerConfig{
		TopK:            cfg.RetrieveTopK,
		MinScore:        cfg.RetrieveMinScore,
		SnippetMaxChars: cfg.SnippetMaxChars,
	})

	executor := resilience.NewExecutor(resilience.DefaultConfig())
	oracle := groq.NewWithOptions(cfg.GroqAPIURL, cfg.GroqAPIKey, cfg.GroqModel, groq.Options{
		ResilienceExecutor: executor,
	})

	closers := make([]func(), 0, 2)

	var events ports.EventPublisher
	if cfg.NATSURL != "" {
		queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
			ResilienceExecutor: executor,
		})
		if err != nil {
			return nil, fmt.Errorf("init message queue: %w", err)
		}
		events = queue
		closers = append(closers, queue.Close)
	}

	var store ports.SessionStore
	if cfg.PostgresDSN != "" {
		db, err := postgres.OpenDB(cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		repo := postgres.NewSessionRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		store = repo
		closers = append(closers, func() { _ = db.Close() })
	} else {
		slog.Info("session_store_in_memory")
		store = memstore.New()
	}

	coachUC := usecase.NewCoachUseCase(oracle, composer, events, cfg.OracleTemperature)

	return &App{
		Config:  cfg,
		Metrics: metrics.NewCoachMetrics("idea-coach"),
		Store:   store,
		CoachUC: coachUC,

		closeFn: func() {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
