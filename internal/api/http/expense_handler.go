package http

import (
	"net/http"

	"fleetdesk-backend/internal/domain"
	"fleetdesk-backend/internal/service"
)

type ExpenseHandler struct {
	expenses service.ExpenseService
}

func NewExpenseHandler(expenses service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses}
}

type expenseRequest struct {
	CarID       int32  `json:"car_id"`
	Date        string `json:"date"`
	Category    string `json:"category"`
	Description string `json:"description"`
	CostCents   int64  `json:"cost_cents"`
	Recurring   bool   `json:"recurring"`
	NextDueDate string `json:"next_due_date"`
}

func (req *expenseRequest) toDomain() (*domain.Expense, error) {
	date, err := optionalDate("date", req.Date)
	if err != nil {
		return nil, err
	}
	nextDue, err := optionalDate("next_due_date", req.NextDueDate)
	if err != nil {
		return nil, err
	}
	expense := &domain.Expense{
		CarID:       req.CarID,
		Category:    req.Category,
		Description: req.Description,
		CostCents:   req.CostCents,
		Recurring:   req.Recurring,
		NextDueDate: nextDue,
	}
	if date != nil {
		expense.Date = *date
	}
	return expense, nil
}

func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	expense, err := req.toDomain()
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.expenses.AddExpense(r.Context(), expense); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, expense)
}

func (h *ExpenseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	expense, err := h.expenses.GetExpense(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, expense)
}

func (h *ExpenseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req expenseRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	expense, err := req.toDomain()
	if err != nil {
		respondError(w, r, err)
		return
	}
	expense.ID = id
	if err := h.expenses.UpdateExpense(r.Context(), expense); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, expense)
}

func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.expenses.DeleteExpense(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListByCar lists a car's expenses; the {id} path segment is the car id.
func (h *ExpenseHandler) ListByCar(w http.ResponseWriter, r *http.Request) {
	carID, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	expenses, err := h.expenses.ListExpenses(r.Context(), carID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, expenses)
}
