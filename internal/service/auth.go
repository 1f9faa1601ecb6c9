// Package service contains the business logic layer: validation, identity
// rules, and budget arithmetic. Handlers parse HTTP and delegate here;
// repositories do the SQL. Nothing in this package imports net/http or
// database/sql.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tahsin/student-expense-tracker/internal/apperror"
	"github.com/tahsin/student-expense-tracker/internal/auth"
	"github.com/tahsin/student-expense-tracker/internal/model"
	"github.com/tahsin/student-expense-tracker/internal/repository"
)

// NormalizeEmail trims whitespace and lowercases. Register and
// Authenticate apply it identically, so " A@B.com " and "a@b.com" are the
// same account.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// AuthService owns registration, login, and token validation.
type AuthService struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewAuthService creates an AuthService with all dependencies injected.
func NewAuthService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// Register creates a new account for the given credentials.
//
// The email is normalized before storage. A duplicate email yields
// apperror.ErrConflict — surfaced by the UNIQUE constraint rather than a
// racy existence pre-check. Nothing sensitive is echoed back: the caller
// gets the error or nil.
func (s *AuthService) Register(ctx context.Context, email, password string) error {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return apperror.ValidationFailed("email", "email and password are required")
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return fmt.Errorf("service/auth: hashing password: %w", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return err
		}
		return fmt.Errorf("service/auth: creating user: %w", err)
	}

	s.logger.Info("user registered",
		slog.Int64("userID", user.ID),
		slog.String("email", user.Email),
	)
	return nil
}

// Authenticate verifies credentials and issues a bearer token.
//
// Unknown email and wrong password both come back as the same generic
// apperror.ErrUnauthorized — callers can't tell which, so accounts can't
// be enumerated through the login form.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (string, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return "", apperror.ValidationFailed("email", "email and password are required")
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return "", apperror.Unauthorized("invalid credentials")
		}
		return "", fmt.Errorf("service/auth: looking up user: %w", err)
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		return "", apperror.Unauthorized("invalid credentials")
	}

	token, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return "", fmt.Errorf("service/auth: generating token for user %d: %w", user.ID, err)
	}

	s.logger.Info("user authenticated", slog.Int64("userID", user.ID))
	return token, nil
}
