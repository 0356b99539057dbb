package models

import "time"

// Appointment is a scheduling record owned by a user at a hospital.
// StatusID is nil when no initial status was assigned.
type Appointment struct {
	ID            int64     `json:"appointment_id"`
	EstimatedDate time.Time `json:"estimated_date"`
	UserID        int64     `json:"fk_user"`
	HospitalID    int64     `json:"fk_hospital"`
	Description   string    `json:"description"`
	StatusID      *int64    `json:"fk_status"`
}
