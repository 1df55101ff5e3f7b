package models

import (
	"time"
)

// Event is an organizer-created check-in session. Date is a calendar date
// (YYYY-MM-DD) with no time-of-day component.
type Event struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Date              string    `json:"date"`
	PasswordProtected bool      `json:"passwordProtected"`
	AdminPassword     *string   `json:"adminPassword"`
	Archived          bool      `json:"archived"`
	CreatedAt         time.Time `json:"createdAt"`
}

type CreateEventRequest struct {
	Name              string `json:"name" binding:"required,notblank"`
	Date              string `json:"date" binding:"required,eventdate"`
	PasswordProtected bool   `json:"passwordProtected"`
	AdminPassword     string `json:"adminPassword"`
}

// UpdateEventRequest carries a partial update; absent fields stay untouched.
type UpdateEventRequest struct {
	Name *string `json:"name" binding:"omitempty,notblank"`
	Date *string `json:"date" binding:"omitempty,eventdate"`
}

type UpdateArchiveRequest struct {
	Archived *bool `json:"archived" binding:"required"`
}

type VerifyAdminRequest struct {
	Password string `json:"password"`
}

type VerifyAdminResponse struct {
	Valid bool `json:"valid"`
}
