package storage

import (
	"context"
	"fmt"

	"travel-ticket-api/core/config"
	"travel-ticket-api/core/constants"
)

// Object is one media payload handed to a Store.
type Object struct {
	Kind        string // constants.MediaKindPhoto or constants.MediaKindQR
	Name        string
	ContentType string
	Data        []byte
}

// Reference points at a stored object. Path is what gets saved on the event row:
// a local "/uploads/..." path or a full URL.
type Reference struct {
	Path   string
	FileID string
}

type Store interface {
	Put(ctx context.Context, obj Object) (Reference, error)
	Backend() string
}

// New builds the Store selected by MEDIA_BACKEND.
func New(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Media.Backend {
	case constants.MediaBackendLocal:
		return NewLocalStore(cfg.Media.PublicDir), nil
	case constants.MediaBackendDrive:
		return NewDriveStore(cfg.GoogleDrive), nil
	case constants.MediaBackendS3:
		return NewS3Store(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unknown media backend %q", cfg.Media.Backend)
	}
}

func dirForKind(kind string) string {
	if kind == constants.MediaKindQR {
		return constants.QRCodesDirName
	}
	return constants.UploadsDirName
}
