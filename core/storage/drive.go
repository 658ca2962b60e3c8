package storage

import (
	"bytes"
	"context"
	"encoding/json"

	"travel-ticket-api/core/config"
	"travel-ticket-api/core/constants"
	"travel-ticket-api/core/errors"
	"travel-ticket-api/core/logger"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const msgMissingDriveCredentials = "Missing required credentials for Google Auth"

// DriveStore uploads media into a Google Drive folder as a service account.
// Credentials are checked on every Put so a misconfigured deployment fails
// the request instead of the boot.
type DriveStore struct {
	cfg  config.GoogleDriveConfig
	opts []option.ClientOption
}

func NewDriveStore(cfg config.GoogleDriveConfig, opts ...option.ClientOption) *DriveStore {
	if cfg.FolderID == "" {
		cfg.FolderID = constants.GoogleDriveFolderID
	}
	return &DriveStore{cfg: cfg, opts: opts}
}

func (s *DriveStore) Backend() string {
	return constants.MediaBackendDrive
}

type serviceAccountJSON struct {
	Type         string `json:"type"`
	ProjectID    string `json:"project_id"`
	PrivateKeyID string `json:"private_key_id"`
	PrivateKey   string `json:"private_key"`
	ClientEmail  string `json:"client_email"`
	ClientID     string `json:"client_id"`
	TokenURI     string `json:"token_uri"`
}

func (s *DriveStore) validateCredentials() error {
	if s.cfg.ProjectID == "" || s.cfg.PrivateKey == "" || s.cfg.ClientEmail == "" {
		return errors.Configuration(msgMissingDriveCredentials)
	}
	return nil
}

func (s *DriveStore) service(ctx context.Context) (*drive.Service, error) {
	if err := s.validateCredentials(); err != nil {
		return nil, err
	}

	tokenURI := s.cfg.TokenURI
	if tokenURI == "" {
		tokenURI = constants.GoogleDefaultTokenURI
	}

	raw, err := json.Marshal(serviceAccountJSON{
		Type:         "service_account",
		ProjectID:    s.cfg.ProjectID,
		PrivateKeyID: s.cfg.PrivateKeyID,
		PrivateKey:   s.cfg.PrivateKey,
		ClientEmail:  s.cfg.ClientEmail,
		ClientID:     s.cfg.ClientID,
		TokenURI:     tokenURI,
	})
	if err != nil {
		return nil, errors.NewAppError(errors.ErrConfiguration, "failed to encode Google credentials", err)
	}

	jwtCfg, err := google.JWTConfigFromJSON(raw, drive.DriveScope)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrConfiguration, "invalid Google credentials", err)
	}

	opts := append([]option.ClientOption{option.WithHTTPClient(jwtCfg.Client(ctx))}, s.opts...)
	return drive.NewService(ctx, opts...)
}

// Put uploads obj into the configured folder and returns its web view link.
func (s *DriveStore) Put(ctx context.Context, obj Object) (Reference, error) {
	svc, err := s.service(ctx)
	if err != nil {
		if errors.HasCode(err, errors.ErrConfiguration) {
			return Reference{}, err
		}
		return Reference{}, errors.Upload("failed to create Drive client", err)
	}

	file := &drive.File{
		Name:    obj.Name,
		Parents: []string{s.cfg.FolderID},
	}

	created, err := svc.Files.Create(file).
		Media(bytes.NewReader(obj.Data), googleapi.ContentType(obj.ContentType)).
		Fields("id", "webViewLink", "webContentLink").
		Context(ctx).
		Do()
	if err != nil {
		logger.Error("DriveStore:Put:Create", "name", obj.Name, "error", err)
		return Reference{}, errors.Upload("Failed to upload to Google Drive", err)
	}
	if created.Id == "" {
		return Reference{}, errors.Upload("Failed to upload to Google Drive", errors.New("no file id returned"))
	}

	logger.Info("DriveStore:Put:Uploaded", "name", obj.Name, "file_id", created.Id)
	return Reference{Path: created.WebViewLink, FileID: created.Id}, nil
}
