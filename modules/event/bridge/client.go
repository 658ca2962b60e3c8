package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"travel-ticket-api/core/constants"
	"travel-ticket-api/core/errors"
	"travel-ticket-api/core/logger"
	"travel-ticket-api/modules/event/dto"
	"travel-ticket-api/modules/event/entity"
)

// Client mirrors the event store over the bridge service. Every request
// carries the x-api-key header; nothing is retried or cached.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

func (c *Client) List(ctx context.Context, filter string) ([]entity.Event, error) {
	events := []entity.Event{}
	err := c.do(ctx, http.MethodGet, "/events?filter="+url.QueryEscape(filter), nil, &events)
	return events, err
}

func (c *Client) GetByID(ctx context.Context, id int64) (*entity.Event, error) {
	var event entity.Event
	err := c.do(ctx, http.MethodGet, "/events/"+strconv.FormatInt(id, 10), nil, &event)
	if err != nil {
		var remote *RemoteStatusError
		if errors.As(err, &remote) && remote.StatusCode == http.StatusNotFound {
			return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", err)
		}
		return nil, err
	}
	return &event, nil
}

func (c *Client) Create(ctx context.Context, event *entity.Event) (int64, error) {
	body := dto.CreateEventRequest{
		Title:      event.Title,
		Place:      event.Place,
		Gradient:   event.Gradient,
		Icon:       event.Icon,
		Date:       string(event.Date),
		Time:       string(event.Time),
		QRCodePath: event.QRCodePath,
	}

	var resp dto.CreateEventResponse
	if err := c.do(ctx, http.MethodPost, "/events", body, &resp); err != nil {
		return 0, err
	}
	if resp.ID <= 0 {
		return 0, errors.Remote("bridge returned no event id", nil)
	}
	event.ID = resp.ID
	event.Status = entity.EventStatusPending
	return resp.ID, nil
}

func (c *Client) UpdateStatus(ctx context.Context, id int64, status entity.EventStatus) error {
	path := "/events/" + strconv.FormatInt(id, 10) + "/status"
	return c.do(ctx, http.MethodPut, path, dto.UpdateStatusRequest{Status: string(status)}, nil)
}

func (c *Client) UpdatePhotoPath(ctx context.Context, id int64, path string) error {
	return c.do(ctx, http.MethodPost, "/update-photo", dto.UpdatePhotoRequest{
		FileURL: path,
		EventID: dto.FormatEventID(id),
	}, nil)
}

func (c *Client) UpdateQRCodePath(ctx context.Context, id int64, path string) error {
	return c.do(ctx, http.MethodPost, "/update-qr", dto.UpdateQRRequest{
		Path:    path,
		EventID: dto.FormatEventID(id),
	}, nil)
}

func (c *Client) ListPhotos(ctx context.Context) ([]entity.Photo, error) {
	photos := []entity.Photo{}
	err := c.do(ctx, http.MethodGet, "/photos", nil, &photos)
	return photos, err
}

// RemoteStatusError is the cause attached to a RemoteError for non-2xx replies.
type RemoteStatusError struct {
	StatusCode int
	Message    string
}

func (e *RemoteStatusError) Error() string {
	return fmt.Sprintf("bridge responded %d: %s", e.StatusCode, e.Message)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader = http.NoBody
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode bridge request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build bridge request: %w", err)
	}
	req.Header.Set(constants.HeaderAPIKey, c.apiKey)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("BridgeClient:Do:Request", "method", method, "path", path, "error", err)
		return errors.Remote("bridge request failed", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Remote("failed to read bridge response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := remoteMessage(raw)
		logger.Warn("BridgeClient:Do:Status", "method", method, "path", path, "status", resp.StatusCode, "message", msg)
		return errors.Remote(msg, &RemoteStatusError{StatusCode: resp.StatusCode, Message: msg})
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return errors.Remote("invalid bridge response", err)
	}
	return nil
}

// remoteMessage pulls error or message from a JSON error body.
func remoteMessage(raw []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return "bridge request failed"
}
