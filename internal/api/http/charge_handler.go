package http

import (
	"context"
	"net/http"

	"fleetdesk-backend/internal/domain"
	"fleetdesk-backend/internal/service"
)

type ChargeHandler struct {
	charges service.ChargeService
}

func NewChargeHandler(charges service.ChargeService) *ChargeHandler {
	return &ChargeHandler{charges: charges}
}

type chargeRequest struct {
	CarID       int32  `json:"car_id"`
	CustomerID  *int32 `json:"customer_id"`
	RentalID    *int32 `json:"rental_id"`
	Date        string `json:"date"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description"`
	AmountCents int64  `json:"amount_cents"`
	Paid        bool   `json:"paid"`
}

func (req *chargeRequest) toDomain() (*domain.Charge, error) {
	date, err := optionalDate("date", req.Date)
	if err != nil {
		return nil, err
	}
	start, err := optionalDate("start_date", req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := optionalDate("end_date", req.EndDate)
	if err != nil {
		return nil, err
	}
	return &domain.Charge{
		CarID:       req.CarID,
		CustomerID:  req.CustomerID,
		RentalID:    req.RentalID,
		Date:        date,
		StartDate:   start,
		EndDate:     end,
		Description: req.Description,
		AmountCents: req.AmountCents,
		Paid:        req.Paid,
	}, nil
}

func (h *ChargeHandler) CreateFine(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, h.charges.AddFine)
}

func (h *ChargeHandler) CreateDamage(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, h.charges.AddDamage)
}

func (h *ChargeHandler) CreateToll(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, h.charges.AddToll)
}

func (h *ChargeHandler) create(w http.ResponseWriter, r *http.Request, add func(ctx context.Context, c *domain.Charge) error) {
	var req chargeRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	charge, err := req.toDomain()
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := add(r.Context(), charge); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, charge)
}

func (h *ChargeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	charge, err := h.charges.GetCharge(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, charge)
}

func (h *ChargeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req chargeRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	charge, err := req.toDomain()
	if err != nil {
		respondError(w, r, err)
		return
	}
	charge.ID = id
	if err := h.charges.UpdateCharge(r.Context(), charge); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, charge)
}

func (h *ChargeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.charges.DeleteCharge(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListByRental returns the charges visible to a rental; ?unpaid=true narrows
// to the outstanding set. The {id} path segment is the rental id.
func (h *ChargeHandler) ListByRental(w http.ResponseWriter, r *http.Request) {
	rentalID, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	unpaidOnly := r.URL.Query().Get("unpaid") == "true"
	charges, err := h.charges.ListForRental(r.Context(), rentalID, unpaidOnly)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, charges)
}
