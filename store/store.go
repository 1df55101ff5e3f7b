package store

import (
	"context"
	"errors"

	"checkin-backend/models"
)

// ErrNotFound is returned when a lookup matches no record.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateCheckin is returned when a check-in insert collides with the
// (event, employee) uniqueness rule.
var ErrDuplicateCheckin = errors.New("duplicate check-in")

// Store persists events and their check-ins. Every operation is atomic on
// its own; the store defines no multi-operation transactions.
type Store interface {
	CreateEvent(ctx context.Context, event *models.Event) error
	GetEvent(ctx context.Context, id string) (*models.Event, error)
	GetEventByName(ctx context.Context, name string) (*models.Event, error)
	GetAllEvents(ctx context.Context) ([]*models.Event, error)
	UpdateEvent(ctx context.Context, id string, name, date *string) (*models.Event, error)
	UpdateEventArchiveStatus(ctx context.Context, id string, archived bool) (*models.Event, error)
	DeleteEvent(ctx context.Context, id string) (bool, error)

	CreateCheckin(ctx context.Context, checkin *models.Checkin) error
	GetCheckinsByEvent(ctx context.Context, eventID string) ([]*models.Checkin, error)
	GetCheckinsWithEvent(ctx context.Context, eventID string) ([]*models.CheckinWithEvent, error)
	GetCheckinByEventAndEmployee(ctx context.Context, eventID, employeeID string) (*models.Checkin, error)
}
