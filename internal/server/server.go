// Package server wires the dependency graph and owns the HTTP lifecycle.
//
// This is the composition root: config comes in, the database, services,
// and handlers are constructed here, and routes are bound. main.go stays
// minimal — load config, call New, call Start.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/tahsin/student-expense-tracker/internal/auth"
	"github.com/tahsin/student-expense-tracker/internal/config"
	"github.com/tahsin/student-expense-tracker/internal/handler"
	"github.com/tahsin/student-expense-tracker/internal/middleware"
	sqliteRepo "github.com/tahsin/student-expense-tracker/internal/repository/sqlite"
	"github.com/tahsin/student-expense-tracker/internal/service"
)

// Server holds the router and the resources it owns. The database
// connection is closed during graceful shutdown.
type Server struct {
	router *chi.Mux
	cfg    *config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New assembles the full dependency chain:
// sqlite.DB → services → handlers → routes.
//
// Services receive repository interfaces, handlers receive services;
// neither layer knows what sits below it.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		cfg:    cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	tokens, err := auth.NewTokenService(s.cfg.JWTSecret, s.cfg.TokenTTL)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService(s.cfg.BcryptCost)

	authService := service.NewAuthService(s.db, tokens, passwords, s.logger)
	budgetService := service.NewBudgetService(s.db, s.db, s.cfg.DefaultBudgetCents(), s.logger)
	expenseService := service.NewExpenseService(s.db, s.logger)

	authHandler := handler.NewAuthHandler(authService, s.logger)
	budgetHandler := handler.NewBudgetHandler(budgetService, s.logger)
	expenseHandler := handler.NewExpenseHandler(expenseService, s.logger)

	s.router.Get("/healthz", handler.HandleHealth)

	s.router.Route("/auth", func(r chi.Router) {
		r.Post("/signup", authHandler.HandleSignup)
		r.Post("/login", authHandler.HandleLogin)
	})

	// Everything below requires a valid bearer token.
	s.router.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(tokens))

		r.Get("/budget/current", budgetHandler.HandleCurrent)
		r.Post("/budget", budgetHandler.HandleSet)

		r.Get("/expenses", expenseHandler.HandleList)
		r.Get("/expenses/summary", expenseHandler.HandleSummary)
		r.Post("/expenses", expenseHandler.HandleAdd)
		r.Put("/expenses/{id}", expenseHandler.HandleUpdate)
		r.Delete("/expenses/{id}", expenseHandler.HandleDelete)
	})

	return nil
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, give in-flight requests 30s,
// close the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.cfg.Port),
			slog.String("database", s.cfg.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
