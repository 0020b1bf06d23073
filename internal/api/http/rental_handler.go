package http

import (
	"net/http"

	"fleetdesk-backend/internal/domain"
	"fleetdesk-backend/internal/service"
)

type RentalHandler struct {
	rentals service.RentalService
}

func NewRentalHandler(rentals service.RentalService) *RentalHandler {
	return &RentalHandler{rentals: rentals}
}

type rentalRequest struct {
	CarID               int32  `json:"car_id"`
	CustomerID          int32  `json:"customer_id"`
	StartDate           string `json:"start_date"`
	EndDate             string `json:"end_date"`
	PlannedRentCents    int64  `json:"planned_rent_cents"`
	ActualRentCents     *int64 `json:"actual_rent_cents"`
	DepositCents        int64  `json:"deposit_cents"`
	BillingIntervalDays int32  `json:"billing_interval_days"`
}

func (req *rentalRequest) toDomain() (*domain.Rental, error) {
	start, err := requiredDate("start_date", req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := optionalDate("end_date", req.EndDate)
	if err != nil {
		return nil, err
	}
	return &domain.Rental{
		CarID:               req.CarID,
		CustomerID:          req.CustomerID,
		StartDate:           start,
		EndDate:             end,
		PlannedRentCents:    req.PlannedRentCents,
		ActualRentCents:     req.ActualRentCents,
		DepositCents:        req.DepositCents,
		BillingIntervalDays: req.BillingIntervalDays,
	}, nil
}

func (h *RentalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req rentalRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	rental, err := req.toDomain()
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.rentals.CreateRental(r.Context(), rental); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, rental)
}

func (h *RentalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	rental, err := h.rentals.GetRental(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req rentalRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	rental, err := req.toDomain()
	if err != nil {
		respondError(w, r, err)
		return
	}
	rental.ID = id
	if err := h.rentals.UpdateRental(r.Context(), rental); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.rentals.DeleteRental(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// List returns open rentals by default; ?state=settled switches to the
// settled archive.
func (h *RentalHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		rentals []domain.Rental
		err     error
	)
	if r.URL.Query().Get("state") == "settled" {
		rentals, err = h.rentals.ListSettledRentals(r.Context())
	} else {
		rentals, err = h.rentals.ListOpenRentals(r.Context())
	}
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, rentals)
}

// Due reports the rent position of a rental, optionally at ?as_of=yyyy-mm-dd.
func (h *RentalHandler) Due(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	asOf, err := queryDate(r, "as_of")
	if err != nil {
		respondError(w, r, err)
		return
	}
	due, err := h.rentals.RentDue(r.Context(), id, asOf)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, due)
}
