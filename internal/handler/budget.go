package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/tahsin/student-expense-tracker/internal/apperror"
	"github.com/tahsin/student-expense-tracker/internal/auth"
	"github.com/tahsin/student-expense-tracker/internal/money"
	"github.com/tahsin/student-expense-tracker/internal/service"
)

// BudgetHandler serves the monthly-budget endpoints. All routes sit
// behind auth.RequireAuth, so the identity is always present in context.
type BudgetHandler struct {
	budgets *service.BudgetService
	logger  *slog.Logger
}

// NewBudgetHandler creates a BudgetHandler.
func NewBudgetHandler(budgets *service.BudgetService, logger *slog.Logger) *BudgetHandler {
	return &BudgetHandler{budgets: budgets, logger: logger}
}

type setBudgetRequest struct {
	// Pointer so an absent limit is distinguishable from an explicit 0.
	Limit *money.Cents `json:"limit" validate:"required"`
}

type setBudgetResponse struct {
	Limit   money.Cents `json:"limit"`
	Message string      `json:"message"`
}

// HandleCurrent returns the caller's budget snapshot for the current
// month, materializing a default budget row on first read.
//
// HTTP: GET /budget/current → 200 {limit, spent, remaining, monthYear}
func (h *BudgetHandler) HandleCurrent(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("authentication required"))
		return
	}

	snapshot, err := h.budgets.Current(r.Context(), identity)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, snapshot)
}

// HandleSet upserts the caller's limit for the current month.
//
// HTTP: POST /budget → 200 {limit}; 400 invalid limit.
func (h *BudgetHandler) HandleSet(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("authentication required"))
		return
	}

	var req setBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("limit", "invalid budget limit: provide a non-negative number"))
		return
	}
	if err := validateStruct(req); err != nil {
		writeError(w, err)
		return
	}

	limit, err := h.budgets.SetLimit(r.Context(), identity, *req.Limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, setBudgetResponse{
		Limit:   limit,
		Message: "Budget updated successfully",
	})
}
