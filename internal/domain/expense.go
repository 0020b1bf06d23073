package domain

import "time"

// Expense is a maintenance or running cost carried by the company for a car,
// independent of any rental.
type Expense struct {
	ID          int32      `json:"id"`
	CarID       int32      `json:"car_id"`
	Date        time.Time  `json:"date"`
	Category    string     `json:"category"`
	Description string     `json:"description,omitempty"`
	CostCents   int64      `json:"cost_cents"`
	Recurring   bool       `json:"recurring"`
	NextDueDate *time.Time `json:"next_due_date,omitempty"`
	CreatedOn   time.Time  `json:"created_on"`
}
