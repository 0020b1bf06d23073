package http

import (
	"net/http"

	"fleetdesk-backend/internal/security"
	"fleetdesk-backend/internal/service"

	"github.com/gorilla/mux"
)

// Services bundles everything the API surface needs.
type Services struct {
	Auth       service.AuthService
	Fleet      service.FleetService
	Customer   service.CustomerService
	Rental     service.RentalService
	Payment    service.PaymentService
	Charge     service.ChargeService
	Booking    service.BookingService
	Expense    service.ExpenseService
	Occupancy  service.OccupancyService
	Settlement service.SettlementService
	Report     service.ReportService
}

// NewRouter builds the full API. Everything under /api/v1 except login
// requires a valid operator token.
func NewRouter(svc Services, tokens security.TokenManager, maxUploadMB int64) http.Handler {
	root := mux.NewRouter()
	root.Use(loggingMiddleware)

	authHandler := NewAuthHandler(svc.Auth)
	root.HandleFunc("/api/v1/login", authHandler.Login).Methods("POST")

	api := root.PathPrefix("/api/v1").Subrouter()
	api.Use(authMiddleware(tokens))

	cars := NewCarHandler(svc.Fleet)
	api.HandleFunc("/cars", cars.List).Methods("GET")
	api.HandleFunc("/cars", cars.Create).Methods("POST")
	api.HandleFunc("/cars/defleeted", cars.ListDefleeted).Methods("GET")
	api.HandleFunc("/cars/{id:[0-9]+}", cars.Get).Methods("GET")
	api.HandleFunc("/cars/{id:[0-9]+}", cars.Update).Methods("PUT")
	api.HandleFunc("/cars/{id:[0-9]+}", cars.Delete).Methods("DELETE")
	api.HandleFunc("/cars/{id:[0-9]+}/defleet", cars.Defleet).Methods("POST")
	api.HandleFunc("/cars/{id:[0-9]+}/move-up", cars.MoveUp).Methods("POST")
	api.HandleFunc("/cars/{id:[0-9]+}/move-down", cars.MoveDown).Methods("POST")

	customers := NewCustomerHandler(svc.Customer, maxUploadMB)
	api.HandleFunc("/customers", customers.List).Methods("GET")
	api.HandleFunc("/customers", customers.Create).Methods("POST")
	api.HandleFunc("/customers/{id:[0-9]+}", customers.Get).Methods("GET")
	api.HandleFunc("/customers/{id:[0-9]+}", customers.Update).Methods("PUT")
	api.HandleFunc("/customers/{id:[0-9]+}", customers.Delete).Methods("DELETE")
	api.HandleFunc("/customers/{id:[0-9]+}/documents/{kind}", customers.UploadDocument).Methods("POST")
	api.HandleFunc("/customers/{id:[0-9]+}/documents/{kind}", customers.DownloadDocument).Methods("GET")

	rentals := NewRentalHandler(svc.Rental)
	api.HandleFunc("/rentals", rentals.List).Methods("GET")
	api.HandleFunc("/rentals", rentals.Create).Methods("POST")
	api.HandleFunc("/rentals/{id:[0-9]+}", rentals.Get).Methods("GET")
	api.HandleFunc("/rentals/{id:[0-9]+}", rentals.Update).Methods("PUT")
	api.HandleFunc("/rentals/{id:[0-9]+}", rentals.Delete).Methods("DELETE")
	api.HandleFunc("/rentals/{id:[0-9]+}/due", rentals.Due).Methods("GET")

	payments := NewPaymentHandler(svc.Payment)
	api.HandleFunc("/payments", payments.Create).Methods("POST")
	api.HandleFunc("/payments/{id:[0-9]+}", payments.Get).Methods("GET")
	api.HandleFunc("/payments/{id:[0-9]+}", payments.Update).Methods("PUT")
	api.HandleFunc("/payments/{id:[0-9]+}", payments.Delete).Methods("DELETE")
	api.HandleFunc("/rentals/{id:[0-9]+}/payments", payments.ListByRental).Methods("GET")

	charges := NewChargeHandler(svc.Charge)
	api.HandleFunc("/fines", charges.CreateFine).Methods("POST")
	api.HandleFunc("/damages", charges.CreateDamage).Methods("POST")
	api.HandleFunc("/tolls", charges.CreateToll).Methods("POST")
	api.HandleFunc("/charges/{id:[0-9]+}", charges.Get).Methods("GET")
	api.HandleFunc("/charges/{id:[0-9]+}", charges.Update).Methods("PUT")
	api.HandleFunc("/charges/{id:[0-9]+}", charges.Delete).Methods("DELETE")
	api.HandleFunc("/rentals/{id:[0-9]+}/charges", charges.ListByRental).Methods("GET")

	settlements := NewSettlementHandler(svc.Settlement)
	api.HandleFunc("/rentals/{id:[0-9]+}/settlement", settlements.Preview).Methods("GET")
	api.HandleFunc("/rentals/{id:[0-9]+}/settlement", settlements.Commit).Methods("POST")

	bookings := NewBookingHandler(svc.Booking)
	api.HandleFunc("/bookings", bookings.List).Methods("GET")
	api.HandleFunc("/bookings", bookings.Create).Methods("POST")
	api.HandleFunc("/bookings/{id:[0-9]+}", bookings.Get).Methods("GET")
	api.HandleFunc("/bookings/{id:[0-9]+}", bookings.Update).Methods("PUT")
	api.HandleFunc("/bookings/{id:[0-9]+}", bookings.Delete).Methods("DELETE")

	expenses := NewExpenseHandler(svc.Expense)
	api.HandleFunc("/expenses", expenses.Create).Methods("POST")
	api.HandleFunc("/expenses/{id:[0-9]+}", expenses.Get).Methods("GET")
	api.HandleFunc("/expenses/{id:[0-9]+}", expenses.Update).Methods("PUT")
	api.HandleFunc("/expenses/{id:[0-9]+}", expenses.Delete).Methods("DELETE")
	api.HandleFunc("/cars/{id:[0-9]+}/expenses", expenses.ListByCar).Methods("GET")

	reports := NewReportHandler(svc.Report, svc.Occupancy)
	api.HandleFunc("/reports/fleet", reports.FleetReport).Methods("GET")
	api.HandleFunc("/dashboard", reports.Dashboard).Methods("GET")
	api.HandleFunc("/availability", reports.Availability).Methods("GET")
	api.HandleFunc("/cars/{id:[0-9]+}/status", reports.CarStatus).Methods("GET")

	root.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	return root
}
