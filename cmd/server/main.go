// Package main initializes and starts the notekeeper HTTP server, setting
// up configuration, logging, storage, services, handlers and graceful
// shutdown.
package main

import (
	"cmp"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	"github.com/atinyakov/notekeeper/internal/auth"
	"github.com/atinyakov/notekeeper/internal/config"
	"github.com/atinyakov/notekeeper/internal/db"
	"github.com/atinyakov/notekeeper/internal/logger"
	"github.com/atinyakov/notekeeper/internal/models"
	"github.com/atinyakov/notekeeper/internal/repository"
	"github.com/atinyakov/notekeeper/internal/repository/memory"
	"github.com/atinyakov/notekeeper/internal/server/handler/http"
	"github.com/atinyakov/notekeeper/internal/service"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

// stores bundles the repositories selected at startup.
type stores struct {
	users     service.AuthRepository
	notes     service.ResourceRepository[*models.Note]
	todos     service.ResourceRepository[*models.Todo]
	webSearch service.ResourceRepository[*models.WebSearch]
}

func postgresStores(conn *sql.DB) stores {
	return stores{
		users:     repository.NewPostgresAuthRepository(conn),
		notes:     repository.NewPostgresNoteRepository(conn),
		todos:     repository.NewPostgresTodoRepository(conn),
		webSearch: repository.NewPostgresWebSearchRepository(conn),
	}
}

func memoryStores() stores {
	return stores{
		users:     memory.NewUserRepository(),
		notes:     memory.NewNoteRepository(),
		todos:     memory.NewTodoRepository(),
		webSearch: memory.NewWebSearchRepository(),
	}
}

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	zapLogger := log.Log

	if options.TokenSecret == "" {
		zapLogger.Fatal("token secret is required (TOKEN_SECRET or -s)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var st stores
	if options.DatabaseDSN == "" {
		zapLogger.Warn("DATABASE_DSN is empty, using in-memory storage; data is lost on restart")
		st = memoryStores()
	} else {
		// Initialize PostgreSQL connection and schema.
		conn, err := db.InitPostgres(ctx, options.DatabaseDSN)
		if err != nil {
			zapLogger.Fatal("cannot init database", zap.Error(err))
		}
		defer conn.Close()

		db.StartSoftDeleteCleaner(ctx, conn, options.PurgeInterval, options.PurgeRetention, zapLogger)
		st = postgresStores(conn)
	}

	// Initialize business-logic services.
	tokens := auth.NewTokenService([]byte(options.TokenSecret), options.TokenTTL)
	authService := service.NewAuthService(st.users, tokens)

	// Create HTTP handlers.
	authHandler := http.NewAuthHandler(authService, zapLogger)
	notes := http.NewResourceHandler[*models.Note, models.NoteInput, models.NotePatch](
		models.KindNote, service.NewResourceService(st.notes), zapLogger)
	todos := http.NewResourceHandler[*models.Todo, models.TodoInput, models.TodoPatch](
		models.KindTodo, service.NewResourceService(st.todos), zapLogger)
	searchService := service.NewResourceService(st.webSearch)
	searches := http.NewResourceHandler[*models.WebSearch, models.WebSearchInput, models.WebSearchPatch](
		models.KindWebSearch, searchService, zapLogger)
	extractor := service.NewWebSearchExtractor(&nethttp.Client{Timeout: 10 * time.Second}, searchService, zapLogger)

	// Build the router with middleware and routes.
	router := http.NewRouter(
		authHandler,
		http.Resources{
			Notes:            notes.Routes,
			Todos:            todos.Routes,
			WebSearch:        searches.Routes,
			WebSearchExtract: http.NewExtractHandler(extractor, zapLogger).Extract,
		},
		tokens,
		zapLogger,
	)

	server := &nethttp.Server{
		Addr:              options.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		useTLS := options.TLSCert != "" && options.TLSKey != ""
		zapLogger.Info("starting server", zap.String("addr", options.Port), zap.Bool("tls", useTLS))
		if useTLS {
			errCh <- server.ListenAndServeTLS(options.TLSCert, options.TLSKey)
			return
		}
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, nethttp.ErrServerClosed) {
			zapLogger.Fatal("server failed", zap.Error(err))
		}
	case <-ctx.Done():
		zapLogger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			zapLogger.Error("graceful shutdown failed", zap.Error(err))
		}
	}
}
