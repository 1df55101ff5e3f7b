package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"checkin-backend/models"
)

// MemoryStore keeps all records in process memory. It backs local
// development and the test suite; data is gone when the process exits.
type MemoryStore struct {
	mu       sync.RWMutex
	events   map[string]models.Event
	checkins map[string]models.Checkin
}

func NewMemory() *MemoryStore {
	return &MemoryStore{
		events:   make(map[string]models.Event),
		checkins: make(map[string]models.Checkin),
	}
}

func (s *MemoryStore) CreateEvent(_ context.Context, event *models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	event.ID = uuid.NewString()
	event.CreatedAt = time.Now().UTC()
	s.events[event.ID] = *event
	return nil
}

func (s *MemoryStore) GetEvent(_ context.Context, id string) (*models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	event, ok := s.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &event, nil
}

func (s *MemoryStore) GetEventByName(_ context.Context, name string) (*models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, event := range s.events {
		if event.Name == name {
			event := event
			return &event, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) GetAllEvents(_ context.Context) ([]*models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := make([]*models.Event, 0, len(s.events))
	for _, event := range s.events {
		event := event
		events = append(events, &event)
	}
	return events, nil
}

func (s *MemoryStore) UpdateEvent(_ context.Context, id string, name, date *string) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event, ok := s.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	if name != nil {
		event.Name = *name
	}
	if date != nil {
		event.Date = *date
	}
	s.events[id] = event
	return &event, nil
}

func (s *MemoryStore) UpdateEventArchiveStatus(_ context.Context, id string, archived bool) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event, ok := s.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	event.Archived = archived
	s.events[id] = event
	return &event, nil
}

func (s *MemoryStore) DeleteEvent(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[id]; !ok {
		return false, nil
	}
	delete(s.events, id)
	for cid, checkin := range s.checkins {
		if checkin.EventID == id {
			delete(s.checkins, cid)
		}
	}
	return true, nil
}

func (s *MemoryStore) CreateCheckin(_ context.Context, checkin *models.Checkin) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.checkins {
		if existing.EventID == checkin.EventID && existing.EmployeeID == checkin.EmployeeID {
			return ErrDuplicateCheckin
		}
	}

	checkin.ID = uuid.NewString()
	checkin.Timestamp = time.Now().UTC()
	s.checkins[checkin.ID] = *checkin
	return nil
}

func (s *MemoryStore) GetCheckinsByEvent(_ context.Context, eventID string) ([]*models.Checkin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	checkins := []*models.Checkin{}
	for _, checkin := range s.checkins {
		if checkin.EventID == eventID {
			checkin := checkin
			checkins = append(checkins, &checkin)
		}
	}
	return checkins, nil
}

func (s *MemoryStore) GetCheckinsWithEvent(_ context.Context, eventID string) ([]*models.CheckinWithEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	event, ok := s.events[eventID]
	if !ok {
		return []*models.CheckinWithEvent{}, nil
	}

	joined := []*models.CheckinWithEvent{}
	for _, checkin := range s.checkins {
		if checkin.EventID == eventID {
			joined = append(joined, &models.CheckinWithEvent{Checkin: checkin, Event: event})
		}
	}
	return joined, nil
}

func (s *MemoryStore) GetCheckinByEventAndEmployee(_ context.Context, eventID, employeeID string) (*models.Checkin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, checkin := range s.checkins {
		if checkin.EventID == eventID && checkin.EmployeeID == employeeID {
			checkin := checkin
			return &checkin, nil
		}
	}
	return nil, ErrNotFound
}
