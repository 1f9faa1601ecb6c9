package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tahsin/student-expense-tracker/internal/apperror"
	"github.com/tahsin/student-expense-tracker/internal/auth"
	"github.com/tahsin/student-expense-tracker/internal/money"
	"github.com/tahsin/student-expense-tracker/internal/service"
)

// ExpenseHandler serves the expense CRUD and summary endpoints.
type ExpenseHandler struct {
	expenses *service.ExpenseService
	logger   *slog.Logger
}

// NewExpenseHandler creates an ExpenseHandler.
func NewExpenseHandler(expenses *service.ExpenseService, logger *slog.Logger) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses, logger: logger}
}

// expenseRequest is the body of both add and update. The amount is a
// pointer: only its presence is validated, not its sign — zero and
// negative amounts (refunds) pass through.
type expenseRequest struct {
	Description string       `json:"description" validate:"required"`
	Amount      *money.Cents `json:"amount" validate:"required"`
	Category    string       `json:"category" validate:"required"`
	Date        string       `json:"date" validate:"required,datetime=2006-01-02"`
}

func (req *expenseRequest) input() service.ExpenseInput {
	return service.ExpenseInput{
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		Date:        req.Date,
	}
}

type addExpenseResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

// HandleList returns the caller's current-month expenses, newest first.
//
// HTTP: GET /expenses → 200 [expense…]
func (h *ExpenseHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("authentication required"))
		return
	}

	expenses, err := h.expenses.List(r.Context(), identity)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, expenses)
}

// HandleSummary returns per-category totals for the current month —
// the data behind the dashboard's spending-distribution chart.
//
// HTTP: GET /expenses/summary → 200 [{category, total, count}…]
func (h *ExpenseHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("authentication required"))
		return
	}

	totals, err := h.expenses.CategorySummary(r.Context(), identity)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, totals)
}

// HandleAdd records a new expense.
//
// HTTP: POST /expenses → 201 {id}; 400 invalid fields.
func (h *ExpenseHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("authentication required"))
		return
	}

	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("", "invalid request body"))
		return
	}
	if err := validateStruct(req); err != nil {
		writeError(w, err)
		return
	}

	id, err := h.expenses.Add(r.Context(), identity, req.input())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, addExpenseResponse{ID: id, Message: "Expense added"})
}

// HandleUpdate fully replaces an expense's fields.
//
// HTTP: PUT /expenses/{id} → 200; 400 invalid fields; 404 not found or
// owned by someone else (indistinguishable).
func (h *ExpenseHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("authentication required"))
		return
	}

	id, err := expenseID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("", "invalid request body"))
		return
	}
	if err := validateStruct(req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.expenses.Update(r.Context(), identity, id, req.input()); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Expense updated successfully"})
}

// HandleDelete removes an expense, under the same 404 rule as update.
//
// HTTP: DELETE /expenses/{id} → 200; 404.
func (h *ExpenseHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("authentication required"))
		return
	}

	id, err := expenseID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.expenses.Delete(r.Context(), identity, id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Expense deleted successfully"})
}

// expenseID parses the {id} route parameter. A non-numeric id maps to the
// same not-found error a missing row would produce.
func expenseID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, &apperror.AppError{
			Err:     apperror.ErrNotFound,
			Message: "expense not found",
		}
	}
	return id, nil
}
