package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// CreateEventRequest carries the form fields of POST /events.
type CreateEventRequest struct {
	Title      string  `json:"title" form:"title"`
	Place      string  `json:"place" form:"place"`
	Gradient   string  `json:"gradient" form:"gradient"`
	Icon       string  `json:"icon" form:"icon"`
	Date       string  `json:"date" form:"date"`
	Time       string  `json:"time" form:"time"`
	QRCodePath *string `json:"qr_code_path,omitempty" form:"-"`
}

// MissingFields lists the required fields that are absent or blank.
func (r CreateEventRequest) MissingFields() []string {
	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"title", r.Title},
		{"place", r.Place},
		{"gradient", r.Gradient},
		{"icon", r.Icon},
		{"date", r.Date},
		{"time", r.Time},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

type CreateEventResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type UploadQRResponse struct {
	Message string `json:"message"`
	Path    string `json:"path"`
}

// Upload is a file received from a client.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// EventID accepts an event id sent either as a JSON number or a string.
type EventID string

func (id *EventID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = EventID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("eventId must be a number or string")
	}
	*id = EventID(n.String())
	return nil
}

func (id EventID) String() string {
	return string(id)
}

func FormatEventID(id int64) EventID {
	return EventID(strconv.FormatInt(id, 10))
}

// UpdatePhotoRequest is the bridge body for POST /update-photo.
type UpdatePhotoRequest struct {
	FileURL string  `json:"fileUrl"`
	EventID EventID `json:"eventId"`
}

// UpdateQRRequest is the bridge body for POST /update-qr.
type UpdateQRRequest struct {
	Path    string  `json:"path"`
	EventID EventID `json:"eventId"`
}
