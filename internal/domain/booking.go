package domain

import "time"

// Booking reserves a car for a date range, optionally for a customer. It is
// advisory: it shows up in occupancy views but does not block a rental.
type Booking struct {
	ID         int32     `json:"id"`
	CarID      int32     `json:"car_id"`
	CustomerID *int32    `json:"customer_id,omitempty"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	Note       string    `json:"note,omitempty"`
	CreatedOn  time.Time `json:"created_on"`
}
