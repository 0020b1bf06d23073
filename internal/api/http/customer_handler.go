package http

import (
	"io"
	"net/http"

	"fleetdesk-backend/internal/domain"
	"fleetdesk-backend/internal/service"

	"github.com/gorilla/mux"
)

type CustomerHandler struct {
	customers   service.CustomerService
	maxUploadMB int64
}

func NewCustomerHandler(customers service.CustomerService, maxUploadMB int64) *CustomerHandler {
	if maxUploadMB <= 0 {
		maxUploadMB = 10
	}
	return &CustomerHandler{customers: customers, maxUploadMB: maxUploadMB}
}

type customerRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req customerRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	customer := &domain.Customer{Name: req.Name, Phone: req.Phone, Address: req.Address}
	if err := h.customers.AddCustomer(r.Context(), customer); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, customer)
}

func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	customer, err := h.customers.GetCustomer(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, customer)
}

func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req customerRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	customer := &domain.Customer{ID: id, Name: req.Name, Phone: req.Phone, Address: req.Address}
	if err := h.customers.UpdateCustomer(r.Context(), customer); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, customer)
}

func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.customers.DeleteCustomer(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	customers, err := h.customers.ListCustomers(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, customers)
}

// UploadDocument accepts a multipart form with a single "file" part and
// stores it as the customer's passport or licence scan, depending on the
// {kind} path segment.
func (h *CustomerHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	kind := mux.Vars(r)["kind"]

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadMB<<20)
	if err := r.ParseMultipartForm(h.maxUploadMB << 20); err != nil {
		respondError(w, r, domain.NewValidationError("file", "upload too large or malformed"))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, r, domain.NewValidationError("file", "file part is required"))
		return
	}
	defer file.Close()

	customer, err := h.customers.AttachDocument(r.Context(), id, kind, header.Filename, file)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, customer)
}

func (h *CustomerHandler) DownloadDocument(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	kind := mux.Vars(r)["kind"]

	rc, filename, err := h.customers.OpenDocument(r.Context(), id, kind)
	if err != nil {
		respondError(w, r, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	io.Copy(w, rc)
}
