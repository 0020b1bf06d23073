package http

import (
	"net/http"

	"fleetdesk-backend/internal/service"
)

type ReportHandler struct {
	reports   service.ReportService
	occupancy service.OccupancyService
}

func NewReportHandler(reports service.ReportService, occupancy service.OccupancyService) *ReportHandler {
	return &ReportHandler{reports: reports, occupancy: occupancy}
}

func (h *ReportHandler) FleetReport(w http.ResponseWriter, r *http.Request) {
	asOf, err := queryDate(r, "as_of")
	if err != nil {
		respondError(w, r, err)
		return
	}
	reports, err := h.reports.FleetReport(r.Context(), asOf)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, reports)
}

func (h *ReportHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	asOf, err := queryDate(r, "as_of")
	if err != nil {
		respondError(w, r, err)
		return
	}
	dashboard, err := h.reports.Dashboard(r.Context(), asOf)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, dashboard)
}

// Availability lists the occupancy state of every active car, optionally at
// ?date=yyyy-mm-dd.
func (h *ReportHandler) Availability(w http.ResponseWriter, r *http.Request) {
	date, err := queryDate(r, "date")
	if err != nil {
		respondError(w, r, err)
		return
	}
	statuses, err := h.occupancy.Availability(r.Context(), date)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, statuses)
}

// CarStatus resolves one car's occupancy; the {id} path segment is the car id.
func (h *ReportHandler) CarStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	date, err := queryDate(r, "date")
	if err != nil {
		respondError(w, r, err)
		return
	}
	status, err := h.occupancy.Status(r.Context(), id, date)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, status)
}
