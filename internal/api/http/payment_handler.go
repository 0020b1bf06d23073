package http

import (
	"net/http"

	"fleetdesk-backend/internal/domain"
	"fleetdesk-backend/internal/service"
)

type PaymentHandler struct {
	payments service.PaymentService
}

func NewPaymentHandler(payments service.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

type paymentRequest struct {
	RentalID    int32  `json:"rental_id"`
	AmountCents int64  `json:"amount_cents"`
	Date        string `json:"date"`
	Location    string `json:"location"`
	// SettledChargeIDs are outstanding charges this payment covers; they are
	// marked paid via rent in the same transaction.
	SettledChargeIDs []int32 `json:"settled_charge_ids"`
}

func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	date, err := optionalDate("date", req.Date)
	if err != nil {
		respondError(w, r, err)
		return
	}
	payment := &domain.Payment{
		RentalID:    req.RentalID,
		AmountCents: req.AmountCents,
		Location:    req.Location,
	}
	if date != nil {
		payment.Date = *date
	}
	if err := h.payments.RecordPayment(r.Context(), payment, req.SettledChargeIDs); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, payment)
}

func (h *PaymentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	payment, err := h.payments.GetPayment(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, payment)
}

func (h *PaymentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req paymentRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	date, err := optionalDate("date", req.Date)
	if err != nil {
		respondError(w, r, err)
		return
	}
	payment := &domain.Payment{
		ID:          id,
		AmountCents: req.AmountCents,
		Location:    req.Location,
	}
	if date != nil {
		payment.Date = *date
	}
	if err := h.payments.UpdatePayment(r.Context(), payment); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, payment)
}

func (h *PaymentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.payments.DeletePayment(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListByRental lists the payments on a rental; the {id} path segment is the
// rental id.
func (h *PaymentHandler) ListByRental(w http.ResponseWriter, r *http.Request) {
	rentalID, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	payments, err := h.payments.ListPayments(r.Context(), rentalID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, payments)
}
