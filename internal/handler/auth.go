// Package handler contains the HTTP layer: decode the request, call the
// service, encode the response. No business rules and no SQL live here.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/tahsin/student-expense-tracker/internal/apperror"
	"github.com/tahsin/student-expense-tracker/internal/service"
)

// AuthHandler serves the signup and login endpoints.
type AuthHandler struct {
	auth   *service.AuthService
	logger *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(auth *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

type signupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// HandleSignup registers a new account.
//
// HTTP: POST /auth/signup
// 201 on success; 400 missing fields; 409 email already in use.
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("", "invalid request body"))
		return
	}
	if err := validateStruct(req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.auth.Register(r.Context(), req.Email, req.Password); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, messageResponse{Message: "User created successfully"})
}

// HandleLogin verifies credentials and returns a bearer token.
//
// HTTP: POST /auth/login
// 200 {token}; 400 missing fields; 401 invalid credentials. Unknown email
// and wrong password are indistinguishable on purpose.
//
// Note the login request doesn't carry the `email` format tag: a
// malformed email here gets the same generic 401 as a wrong password,
// instead of a 400 that would confirm the address was never registered.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("", "invalid request body"))
		return
	}
	if err := validateStruct(req); err != nil {
		writeError(w, err)
		return
	}

	token, err := h.auth.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}
