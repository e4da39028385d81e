package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vocabquiz/internal/config"
	"vocabquiz/internal/handler"
	"vocabquiz/internal/middleware"
	"vocabquiz/internal/repository"
	"vocabquiz/internal/repository/embedded"
	"vocabquiz/internal/repository/postgres"
	"vocabquiz/internal/service"
	"vocabquiz/internal/web"

	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting vocabulary quiz",
		zap.String("env", cfg.Env),
		zap.String("wordset_source", cfg.WordSetSource),
	)

	// Initialize word sets
	bundled, err := embedded.NewWordSetRepo()
	if err != nil {
		logger.Fatal("Failed to load bundled word sets", zap.Error(err))
	}

	var wordSets repository.WordSetRepository = bundled
	if cfg.WordSetSource == config.SourcePostgres {
		db, err := connectDatabase(cfg.DSN(), logger)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		logger.Info("Database connection established")

		if err := runMigrations(db, cfg.MigrationsPath, logger); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}

		repo := postgres.NewWordSetRepo(db)
		if err := seedWordSets(repo, bundled, logger); err != nil {
			logger.Fatal("Failed to seed word sets", zap.Error(err))
		}
		wordSets = repo
	}

	// Initialize services
	quizService := service.NewQuizService(wordSets, service.RandomPicker, logger)
	if _, err := quizService.Start(cfg.WordSet, cfg.Direction); err != nil {
		logger.Fatal("Invalid default quiz settings",
			zap.String("wordset", cfg.WordSet),
			zap.String("direction", cfg.Direction),
			zap.Error(err),
		)
	}

	store := service.NewSessionStore()
	sessions := service.NewSessionManager(quizService, store, service.Defaults{
		WordSet:   cfg.WordSet,
		Direction: cfg.Direction,
	}, logger)
	janitor := service.NewJanitorService(store, cfg.SessionIdleTTL, logger)

	// Initialize web handler
	webHandler, err := web.NewHandler(sessions, logger)
	if err != nil {
		logger.Fatal("Failed to parse templates", zap.Error(err))
	}

	mux := http.NewServeMux()
	webHandler.Register(mux)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           middleware.HTTP(logger, mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Initialize Telegram bot when a token is configured
	var bot *tele.Bot
	if cfg.TelegramEnabled() {
		bot, err = tele.NewBot(tele.Settings{
			Token:  cfg.BotToken,
			Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		})
		if err != nil {
			logger.Fatal("Failed to create bot", zap.Error(err))
		}

		handler.NewHandler(bot, sessions, logger).RegisterHandlers()

		logger.Info("Telegram bot initialized")
	}

	// Start cleanup job in background
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go runCleanupJob(ctx, janitor, cfg.SessionIdleTTL, logger)

	// Start server and bot in background
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	if bot != nil {
		go func() {
			logger.Info("Bot started successfully")
			bot.Start()
		}()
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping...")

	// Graceful shutdown
	if bot != nil {
		bot.Stop()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shut down HTTP server", zap.Error(err))
	}
	cancel()

	logger.Info("Stopped gracefully")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(dsn string, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB, path string, logger *zap.Logger) error {
	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(path, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("No new migrations to apply")
	case err != nil:
		return fmt.Errorf("failed to run migrations: %w", err)
	default:
		logger.Info("Migrations applied successfully")
	}

	return nil
}

// seedWordSets copies the bundled word sets into the database,
// leaving sets that are already stored untouched
func seedWordSets(repo *postgres.WordSetRepo, bundled *embedded.WordSetRepo, logger *zap.Logger) error {
	names, err := bundled.Names()
	if err != nil {
		return err
	}

	for _, name := range names {
		language, err := bundled.Language(name)
		if err != nil {
			return err
		}
		entries, err := bundled.Entries(name)
		if err != nil {
			return err
		}

		inserted, err := repo.Seed(name, language, entries)
		if err != nil {
			return fmt.Errorf("seed %s: %w", name, err)
		}
		if inserted {
			logger.Info("Seeded word set", zap.String("wordset", name), zap.Int("entries", len(entries)))
		}
	}

	return nil
}

// runCleanupJob periodically evicts idle quiz sessions
func runCleanupJob(ctx context.Context, janitor *service.JanitorService, ttl time.Duration, logger *zap.Logger) {
	interval := ttl / 2
	if interval < time.Minute {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Cleanup job stopped")
			return
		case <-ticker.C:
			janitor.CleanupIdleSessions()
		}
	}
}
