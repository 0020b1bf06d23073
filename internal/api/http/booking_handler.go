package http

import (
	"net/http"

	"fleetdesk-backend/internal/domain"
	"fleetdesk-backend/internal/service"
)

type BookingHandler struct {
	bookings service.BookingService
}

func NewBookingHandler(bookings service.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

type bookingRequest struct {
	CarID      int32  `json:"car_id"`
	CustomerID *int32 `json:"customer_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Note       string `json:"note"`
}

func (req *bookingRequest) toDomain() (*domain.Booking, error) {
	start, err := requiredDate("start_date", req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := requiredDate("end_date", req.EndDate)
	if err != nil {
		return nil, err
	}
	return &domain.Booking{
		CarID:      req.CarID,
		CustomerID: req.CustomerID,
		StartDate:  start,
		EndDate:    end,
		Note:       req.Note,
	}, nil
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req bookingRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	booking, err := req.toDomain()
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.bookings.CreateBooking(r.Context(), booking); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, booking)
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	booking, err := h.bookings.GetBooking(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req bookingRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	booking, err := req.toDomain()
	if err != nil {
		respondError(w, r, err)
		return
	}
	booking.ID = id
	if err := h.bookings.UpdateBooking(r.Context(), booking); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.bookings.DeleteBooking(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.bookings.ListBookings(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, bookings)
}
