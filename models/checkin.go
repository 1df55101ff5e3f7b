package models

import (
	"time"
)

// Checkin is one attendee's admitted attendance record for an Event.
// Check-ins are created once and never mutated; they disappear only when
// the owning event is deleted.
type Checkin struct {
	ID         string    `json:"id"`
	EventID    string    `json:"eventId"`
	EmployeeID string    `json:"employeeId"`
	Timestamp  time.Time `json:"timestamp"`
}

// CheckinWithEvent is a Checkin joined with its parent event, built at the
// store boundary for dashboard and export views.
type CheckinWithEvent struct {
	Checkin
	Event Event `json:"event"`
}

type CreateCheckinRequest struct {
	EventID    string `json:"eventId" binding:"required"`
	EmployeeID string `json:"employeeId" binding:"required,employeeid"`
}
