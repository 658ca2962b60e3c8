package service

import (
	"context"
	"strings"
	"time"

	"travel-ticket-api/core/constants"
	"travel-ticket-api/core/errors"
	"travel-ticket-api/core/logger"
	"travel-ticket-api/core/storage"
	eventdto "travel-ticket-api/modules/event/dto"
	eventservice "travel-ticket-api/modules/event/service"
	"travel-ticket-api/modules/media/dto"
)

// PhotoRecorder saves a photo reference against an event. Depending on the
// deployment this is the SQL table or the bridge service.
type PhotoRecorder interface {
	UpdatePhotoPath(ctx context.Context, id int64, path string) error
}

type MediaService struct {
	media  storage.Store
	events PhotoRecorder
	now    func() time.Time
}

func NewMediaService(media storage.Store, events PhotoRecorder) *MediaService {
	return &MediaService{
		media:  media,
		events: events,
		now:    time.Now,
	}
}

// UploadPhotoDataURL validates a data URL before anything is stored.
func (s *MediaService) UploadPhotoDataURL(ctx context.Context, photo string, rawEventID string) (*dto.UploadPhotoResponse, error) {
	if strings.TrimSpace(photo) == "" || strings.TrimSpace(rawEventID) == "" {
		return nil, errors.Validation("Invalid data")
	}

	mimeType, data, err := storage.DecodeDataURL(photo)
	if err != nil {
		logger.Warn("MediaService:UploadPhotoDataURL:Invalid", "error", err)
		return nil, err
	}

	id, err := eventservice.ParseEventID(rawEventID)
	if err != nil {
		return nil, err
	}
	return s.UploadPhoto(ctx, id, mimeType, data)
}

func (s *MediaService) UploadPhotoFile(ctx context.Context, file *eventdto.Upload, rawEventID string) (*dto.UploadPhotoResponse, error) {
	if file == nil || strings.TrimSpace(rawEventID) == "" {
		return nil, errors.Validation("Invalid data")
	}
	if len(file.Data) == 0 {
		return nil, errors.Validation(storage.MsgEmptyImage)
	}

	id, err := eventservice.ParseEventID(rawEventID)
	if err != nil {
		return nil, err
	}
	return s.UploadPhoto(ctx, id, file.ContentType, file.Data)
}

// UploadPhoto stores the image with the configured backend and records the
// reference on the event. Failures are returned as UploadError and never retried.
func (s *MediaService) UploadPhoto(ctx context.Context, eventID int64, mimeType string, data []byte) (*dto.UploadPhotoResponse, error) {
	if len(data) > constants.MaxUploadBytes {
		logger.Warn("MediaService:UploadPhoto:TooLarge", "event_id", eventID, "size", len(data))
		return nil, errors.Validation("File too large")
	}

	ref, err := s.media.Put(ctx, storage.Object{
		Kind:        constants.MediaKindPhoto,
		Name:        storage.PhotoFileName(eventID, s.now()),
		ContentType: mimeType,
		Data:        data,
	})
	storage.ObserveUpload(s.media.Backend(), constants.MediaKindPhoto, err)
	if err != nil {
		logger.Error("MediaService:UploadPhoto:Put", "event_id", eventID, "backend", s.media.Backend(), "error", err)
		return nil, errors.Upload("Failed to upload photo", err)
	}

	if err := s.events.UpdatePhotoPath(ctx, eventID, ref.Path); err != nil {
		logger.Error("MediaService:UploadPhoto:UpdatePhotoPath", "event_id", eventID, "error", err)
		return nil, errors.Upload("Failed to update photo path", err)
	}

	logger.Info("MediaService:UploadPhoto:Done", "event_id", eventID, "path", ref.Path, "size", len(data))
	return &dto.UploadPhotoResponse{
		PhotoPath: ref.Path,
		FileID:    ref.FileID,
		MimeType:  mimeType,
		Size:      len(data),
	}, nil
}
