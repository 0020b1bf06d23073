package http

import (
	"context"
	"net/http"

	"fleetdesk-backend/internal/domain"
	"fleetdesk-backend/internal/service"
)

type CarHandler struct {
	fleet service.FleetService
}

func NewCarHandler(fleet service.FleetService) *CarHandler {
	return &CarHandler{fleet: fleet}
}

type carRequest struct {
	Model                  string `json:"model"`
	ModelYear              int32  `json:"model_year"`
	LicencePlate           string `json:"licence_plate"`
	Colour                 string `json:"colour"`
	MileageAtPurchase      int32  `json:"mileage_at_purchase"`
	PurchasePriceCents     int64  `json:"purchase_price_cents"`
	InitialInvestmentCents int64  `json:"initial_investment_cents"`
	SalikTag               string `json:"salik_tag"`
	RegistrationDate       string `json:"registration_date"`
	TrackerInstalled       bool   `json:"tracker_installed"`
	PassingCostCents       int64  `json:"passing_cost_cents"`
	RegistrationCostCents  int64  `json:"registration_cost_cents"`
	InsuranceCostCents     int64  `json:"insurance_cost_cents"`
	PlannedRentCents       int64  `json:"planned_rent_cents"`
}

func (req *carRequest) toDomain() (*domain.Car, error) {
	registration, err := optionalDate("registration_date", req.RegistrationDate)
	if err != nil {
		return nil, err
	}
	return &domain.Car{
		Model:                  req.Model,
		ModelYear:              req.ModelYear,
		LicencePlate:           req.LicencePlate,
		Colour:                 req.Colour,
		MileageAtPurchase:      req.MileageAtPurchase,
		PurchasePriceCents:     req.PurchasePriceCents,
		InitialInvestmentCents: req.InitialInvestmentCents,
		SalikTag:               req.SalikTag,
		RegistrationDate:       registration,
		TrackerInstalled:       req.TrackerInstalled,
		PassingCostCents:       req.PassingCostCents,
		RegistrationCostCents:  req.RegistrationCostCents,
		InsuranceCostCents:     req.InsuranceCostCents,
		PlannedRentCents:       req.PlannedRentCents,
	}, nil
}

func (h *CarHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req carRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	car, err := req.toDomain()
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.fleet.AddCar(r.Context(), car); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, car)
}

func (h *CarHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	car, err := h.fleet.GetCar(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, car)
}

func (h *CarHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req carRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	car, err := req.toDomain()
	if err != nil {
		respondError(w, r, err)
		return
	}
	car.ID = id
	if err := h.fleet.UpdateCar(r.Context(), car); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, car)
}

func (h *CarHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.fleet.DeleteCar(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type fleetListResponse struct {
	Cars    []domain.CarListing  `json:"cars"`
	Summary *domain.FleetSummary `json:"summary"`
}

func (h *CarHandler) List(w http.ResponseWriter, r *http.Request) {
	listings, summary, err := h.fleet.ListFleet(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, fleetListResponse{Cars: listings, Summary: summary})
}

func (h *CarHandler) ListDefleeted(w http.ResponseWriter, r *http.Request) {
	cars, err := h.fleet.ListDefleeted(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, cars)
}

func (h *CarHandler) Defleet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.fleet.DefleetCar(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CarHandler) MoveUp(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, h.fleet.MoveCarUp)
}

func (h *CarHandler) MoveDown(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, h.fleet.MoveCarDown)
}

func (h *CarHandler) move(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id int32) error) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := fn(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
