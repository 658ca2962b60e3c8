package dto

import eventdto "travel-ticket-api/modules/event/dto"

// UploadPhotoRequest is the JSON variant of POST /upload-photo.
type UploadPhotoRequest struct {
	Photo   string           `json:"photo"`
	EventID eventdto.EventID `json:"eventId"`
}

type UploadPhotoResponse struct {
	PhotoPath string `json:"photoPath"`
	FileID    string `json:"fileId,omitempty"`
	MimeType  string `json:"mimeType"`
	Size      int    `json:"size"`
}
