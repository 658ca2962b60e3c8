package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"travel-ticket-api/core/constants"
	"travel-ticket-api/core/errors"
	"travel-ticket-api/core/logger"
	"travel-ticket-api/core/storage"
	"travel-ticket-api/modules/event/dto"
	"travel-ticket-api/modules/event/entity"
)

// EventStore is where events live: the local SQL table or the remote bridge.
type EventStore interface {
	List(ctx context.Context, filter string) ([]entity.Event, error)
	GetByID(ctx context.Context, id int64) (*entity.Event, error)
	Create(ctx context.Context, event *entity.Event) (int64, error)
	UpdateStatus(ctx context.Context, id int64, status entity.EventStatus) error
	UpdatePhotoPath(ctx context.Context, id int64, path string) error
	UpdateQRCodePath(ctx context.Context, id int64, path string) error
	ListPhotos(ctx context.Context) ([]entity.Photo, error)
}

type EventService struct {
	store EventStore
	media storage.Store
	now   func() time.Time
}

func NewEventService(store EventStore, media storage.Store) *EventService {
	return &EventService{
		store: store,
		media: media,
		now:   time.Now,
	}
}

// ParseEventID accepts only positive base-10 integers.
func ParseEventID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.Validation("Invalid event ID")
	}
	return id, nil
}

func (s *EventService) ListEvents(ctx context.Context, filter string) ([]entity.Event, error) {
	if filter != constants.FilterUpcoming && filter != constants.FilterPrevious {
		return nil, errors.Validation("Invalid filter parameter")
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	events, err := s.store.List(ctx, filter)
	if err != nil {
		logger.Error("EventService:ListEvents:Error", "filter", filter, "error", err)
		return nil, err
	}
	return events, nil
}

func (s *EventService) GetEvent(ctx context.Context, rawID string) (*entity.Event, error) {
	id, err := ParseEventID(rawID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	return s.store.GetByID(ctx, id)
}

// CreateEvent validates the six required fields, stores the optional QR image
// and inserts the row. A QR image that cannot be stored is logged and the
// event is created without it.
func (s *EventService) CreateEvent(ctx context.Context, req dto.CreateEventRequest, qr *dto.Upload) (int64, error) {
	if missing := req.MissingFields(); len(missing) > 0 {
		return 0, errors.Validation("Missing required fields: " + strings.Join(missing, ", "))
	}

	date, err := entity.ParseDate(req.Date)
	if err != nil {
		return 0, errors.NewAppError(errors.ErrInvalidInput, "Invalid date format, expected YYYY-MM-DD", err)
	}
	clock, err := entity.ParseClockTime(req.Time)
	if err != nil {
		return 0, errors.NewAppError(errors.ErrInvalidInput, "Invalid time format, expected HH:MM", err)
	}

	event := &entity.Event{
		Title:    strings.TrimSpace(req.Title),
		Place:    strings.TrimSpace(req.Place),
		Gradient: strings.TrimSpace(req.Gradient),
		Icon:     strings.TrimSpace(req.Icon),
		Date:     date,
		Time:     clock,
		Status:   entity.EventStatusPending,
	}

	if qr != nil && len(qr.Data) > 0 {
		ref, err := s.storeQRCode(ctx, qr)
		if err != nil {
			logger.Warn("EventService:CreateEvent:QRCodeSkipped", "filename", qr.Filename, "error", err)
		} else {
			event.QRCodePath = &ref.Path
		}
	} else if req.QRCodePath != nil && strings.TrimSpace(*req.QRCodePath) != "" {
		event.QRCodePath = req.QRCodePath
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	id, err := s.store.Create(ctx, event)
	if err != nil {
		logger.Error("EventService:CreateEvent:Error", "error", err)
		return 0, err
	}

	logger.Info("EventService:CreateEvent:Created", "id", id, "has_qr", event.QRCodePath != nil)
	return id, nil
}

// UpdateStatus accepts only accepted or declined. Re-setting a status and
// updating an unknown id both succeed.
func (s *EventService) UpdateStatus(ctx context.Context, rawID, status string) error {
	id, err := ParseEventID(rawID)
	if err != nil {
		return err
	}

	next := entity.EventStatus(status)
	if next != entity.EventStatusAccepted && next != entity.EventStatusDeclined {
		return errors.Validation("Invalid status")
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if err := s.store.UpdateStatus(ctx, id, next); err != nil {
		logger.Error("EventService:UpdateStatus:Error", "id", id, "error", err)
		return err
	}
	return nil
}

func (s *EventService) UpdatePhotoPath(ctx context.Context, id int64, path string) error {
	if id <= 0 {
		return errors.Validation("Invalid event ID")
	}
	if strings.TrimSpace(path) == "" {
		return errors.Validation("photo path is required")
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	return s.store.UpdatePhotoPath(ctx, id, path)
}

func (s *EventService) UpdateQRCodePath(ctx context.Context, id int64, path string) error {
	if id <= 0 {
		return errors.Validation("Invalid event ID")
	}
	if strings.TrimSpace(path) == "" {
		return errors.Validation("QR code path is required")
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	return s.store.UpdateQRCodePath(ctx, id, path)
}

func (s *EventService) ListPhotos(ctx context.Context) ([]entity.Photo, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	return s.store.ListPhotos(ctx)
}

// UploadQRCode stores a QR image and points the event at it.
func (s *EventService) UploadQRCode(ctx context.Context, rawID string, file *dto.Upload) (string, error) {
	if file == nil || len(file.Data) == 0 {
		return "", errors.Validation("No file uploaded")
	}
	id, err := ParseEventID(rawID)
	if err != nil {
		return "", err
	}

	ref, err := s.storeQRCode(ctx, file)
	if err != nil {
		return "", err
	}

	if err := s.UpdateQRCodePath(ctx, id, ref.Path); err != nil {
		logger.Error("EventService:UploadQRCode:UpdatePath", "id", id, "error", err)
		return "", err
	}
	return ref.Path, nil
}

func (s *EventService) storeQRCode(ctx context.Context, file *dto.Upload) (storage.Reference, error) {
	if s.media == nil {
		return storage.Reference{}, fmt.Errorf("no media store configured")
	}

	ref, err := s.media.Put(ctx, storage.Object{
		Kind:        constants.MediaKindQR,
		Name:        storage.QRFileName(file.Filename, s.now()),
		ContentType: file.ContentType,
		Data:        file.Data,
	})
	storage.ObserveUpload(s.media.Backend(), constants.MediaKindQR, err)
	return ref, err
}
