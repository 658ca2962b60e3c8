// Package eventtest provides an in-memory event store for handler and
// service tests.
package eventtest

import (
	"context"
	"sort"
	"sync"
	"time"

	"travel-ticket-api/core/constants"
	"travel-ticket-api/core/errors"
	"travel-ticket-api/modules/event/entity"
)

type MemoryStore struct {
	mu     sync.Mutex
	nextID int64
	events map[int64]entity.Event
	Today  func() time.Time

	// Calls counts write operations, keyed by method name.
	Calls map[string]int
	// FailWith makes every operation return this error when set.
	FailWith error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		events: make(map[int64]entity.Event),
		Today:  time.Now,
		Calls:  make(map[string]int),
	}
}

func (s *MemoryStore) today() entity.Date {
	return entity.Date(s.Today().Format("2006-01-02"))
}

func (s *MemoryStore) List(_ context.Context, filter string) ([]entity.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return nil, s.FailWith
	}

	today := s.today()
	out := []entity.Event{}
	for _, e := range s.events {
		switch filter {
		case constants.FilterUpcoming:
			if e.Date >= today {
				out = append(out, e)
			}
		case constants.FilterPrevious:
			if e.Date < today {
				out = append(out, e)
			}
		default:
			return nil, errors.Validation("Invalid filter parameter")
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Date == out[j].Date {
			if filter == constants.FilterPrevious {
				return out[i].ID > out[j].ID
			}
			return out[i].ID < out[j].ID
		}
		if filter == constants.FilterPrevious {
			return out[i].Date > out[j].Date
		}
		return out[i].Date < out[j].Date
	})
	return out, nil
}

func (s *MemoryStore) GetByID(_ context.Context, id int64) (*entity.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return nil, s.FailWith
	}

	e, ok := s.events[id]
	if !ok {
		return nil, errors.NotFound("Event not found")
	}
	return &e, nil
}

func (s *MemoryStore) Create(_ context.Context, event *entity.Event) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls["Create"]++
	if s.FailWith != nil {
		return 0, s.FailWith
	}

	s.nextID++
	event.ID = s.nextID
	event.Status = entity.EventStatusPending
	s.events[event.ID] = *event
	return event.ID, nil
}

func (s *MemoryStore) UpdateStatus(_ context.Context, id int64, status entity.EventStatus) error {
	return s.update("UpdateStatus", id, func(e *entity.Event) { e.Status = status })
}

func (s *MemoryStore) UpdatePhotoPath(_ context.Context, id int64, path string) error {
	return s.update("UpdatePhotoPath", id, func(e *entity.Event) { e.PhotoPath = &path })
}

func (s *MemoryStore) UpdateQRCodePath(_ context.Context, id int64, path string) error {
	return s.update("UpdateQRCodePath", id, func(e *entity.Event) { e.QRCodePath = &path })
}

// update mirrors an UPDATE ... WHERE id = ?: unknown ids are a silent no-op.
func (s *MemoryStore) update(op string, id int64, apply func(e *entity.Event)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls[op]++
	if s.FailWith != nil {
		return s.FailWith
	}

	if e, ok := s.events[id]; ok {
		apply(&e)
		s.events[id] = e
	}
	return nil
}

func (s *MemoryStore) ListPhotos(_ context.Context) ([]entity.Photo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return nil, s.FailWith
	}

	photos := []entity.Photo{}
	for _, e := range s.events {
		if e.PhotoPath != nil {
			photos = append(photos, entity.Photo{ID: e.ID, PhotoPath: *e.PhotoPath, Title: e.Title, Date: e.Date})
		}
	}
	sort.Slice(photos, func(i, j int) bool {
		if photos[i].Date == photos[j].Date {
			return photos[i].ID > photos[j].ID
		}
		return photos[i].Date > photos[j].Date
	})
	return photos, nil
}

// Put seeds an event directly and returns its id.
func (s *MemoryStore) Put(e entity.Event) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	e.ID = s.nextID
	if e.Status == "" {
		e.Status = entity.EventStatusPending
	}
	s.events[e.ID] = e
	return e.ID
}
