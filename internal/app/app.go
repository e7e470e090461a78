package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"ReviewScanner/internal/config"
	"ReviewScanner/internal/domain"
	"ReviewScanner/internal/infrastructure/ml"
	"ReviewScanner/internal/infrastructure/playstore"
	"ReviewScanner/internal/infrastructure/scheduler"
	"ReviewScanner/internal/infrastructure/storage"
	"ReviewScanner/internal/infrastructure/telegram"
	"ReviewScanner/internal/logging"
	"ReviewScanner/internal/ports"
	"ReviewScanner/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg       config.Config
	logger    *slog.Logger
	analyzer  *usecase.Analyzer
	retention *usecase.Retention
	db        *sql.DB
}

// New builds a runnable application instance from the resolved config.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	store, db, err := buildStore(ctx, cfg, baseLogger)
	if err != nil {
		return nil, err
	}

	source := playstore.NewCollector(nil,
		cfg.Provider.StoreURL, cfg.Provider.ReviewFeedURL, cfg.Provider.PageSize,
		baseLogger.With("component", "playstore"))

	var model ports.SentimentModel
	if cfg.ML.InferenceURL != "" {
		model = ml.NewClient(cfg.ML.InferenceURL, cfg.ML.APIKey)
	}

	var notifier ports.Notifier
	if tg := cfg.Notifications.Telegram; tg.BotToken != "" && tg.ChatID != "" {
		notifier = telegram.NewNotifier(tg.BotToken, tg.ChatID)
	}

	analyzer := usecase.NewAnalyzer(usecase.AnalyzerDeps{
		Source:   source,
		Store:    store,
		Model:    model,
		Notifier: notifier,
		Logger:   baseLogger.With("component", "analyzer"),
	})

	var retention *usecase.Retention
	if cfg.Retention.Enabled {
		driver := scheduler.NewTickerScheduler(cfg.Retention.Interval)
		retention = usecase.NewRetention(driver, store, cfg.Retention.MaxAge,
			baseLogger.With("component", "retention"))
	}

	return &Application{
		cfg:       cfg,
		logger:    baseLogger,
		analyzer:  analyzer,
		retention: retention,
		db:        db,
	}, nil
}

func buildStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (ports.JobStore, *sql.DB, error) {
	if cfg.Database.DSN != "" {
		db, err := sql.Open("postgres", cfg.Database.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open database: %w", err)
		}
		store := storage.NewPostgresStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("ensure schema: %w", err)
		}
		return store, db, nil
	}

	store, err := storage.NewFileStore(cfg.Storage.Dir, logger.With("component", "storage.file"))
	if err != nil {
		return nil, nil, fmt.Errorf("init file store: %w", err)
	}
	return store, nil, nil
}

// Run submits the configured target analysis, waits for it to finish, and
// reports the outcome.
func (a *Application) Run(ctx context.Context) error {
	if a.retention != nil {
		if err := a.retention.Start(ctx); err != nil {
			return fmt.Errorf("start retention: %w", err)
		}
		defer a.retention.Stop(ctx)
	}

	req := domain.AnalysisRequest{
		AppID:    a.cfg.Target.AppID,
		Country:  a.cfg.Target.Country,
		Language: a.cfg.Target.Language,
		Count:    a.cfg.Target.Count,
		Sort:     a.cfg.Target.Sort,
	}

	jobID, err := a.analyzer.Submit(ctx, req)
	if err != nil {
		return fmt.Errorf("submit analysis: %w", err)
	}

	a.analyzer.Wait()

	result, err := a.analyzer.Result(ctx, jobID)
	if err != nil {
		return fmt.Errorf("load job result: %w", err)
	}

	if result.Status == domain.JobFailed {
		return fmt.Errorf("analysis %s failed (%s): %s", jobID, result.ErrorType, result.Error)
	}

	a.logger.Info("run finished",
		"job_id", jobID,
		"status", result.Status,
		"processed", result.ProcessedReviews,
		"fake", result.FakeReviewsCount,
		"interesting", result.InterestingCount)
	return nil
}

// Close releases held resources.
func (a *Application) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}
