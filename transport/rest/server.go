package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const shutdownTimeout = 5 * time.Second

// NewRouter wires the liveness probe, the stateless analysis endpoints and
// the session commands.
func NewRouter(logger *slog.Logger, sessions sessionUseCase, analysis analysisUseCase) http.Handler {
	handlers := NewHandlers(logger, sessions, analysis)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/ping", NewPingHandler().PingHandler)

	r.Post("/evaluate", handlers.Evaluate)
	r.Post("/best-move", handlers.BestMove)

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", handlers.CreateSession)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", handlers.GetSession)
			r.Delete("/", handlers.DeleteSession)

			r.Post("/moves", handlers.MakeTurn)
			r.Post("/reset", handlers.ResetBoard)
			r.Post("/ai", handlers.ToggleAI)
			r.Post("/score", handlers.ToggleScore)
		})
	})

	return r
}

// Start serves handler on port until ctx is canceled.
func Start(ctx context.Context, port string, handler http.Handler) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
