package controller

import (
	"io"
	"mime/multipart"
	"net/http"

	"travel-ticket-api/core/constants"
	"travel-ticket-api/core/controller"
	"travel-ticket-api/core/errors"
	"travel-ticket-api/core/logger"
	"travel-ticket-api/modules/event/dto"
	"travel-ticket-api/modules/event/service"

	"github.com/labstack/echo/v4"
)

type EventController struct {
	controller.BaseController
	service *service.EventService
}

func NewEventController(service *service.EventService) *EventController {
	return &EventController{
		BaseController: controller.NewBaseController(),
		service:        service,
	}
}

// GetEvents handles GET /events?filter=upcoming|previous
func (c *EventController) GetEvents(ctx echo.Context) error {
	events, err := c.service.ListEvents(ctx.Request().Context(), ctx.QueryParam("filter"))
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.OK(ctx, events)
}

// GetEvent handles GET /events/:id
func (c *EventController) GetEvent(ctx echo.Context) error {
	event, err := c.service.GetEvent(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.OK(ctx, event)
}

// CreateEvent handles the multipart POST /events form with an optional qrCode file.
func (c *EventController) CreateEvent(ctx echo.Context) error {
	req := dto.CreateEventRequest{
		Title:    ctx.FormValue("title"),
		Place:    ctx.FormValue("place"),
		Gradient: ctx.FormValue("gradient"),
		Icon:     ctx.FormValue("icon"),
		Date:     ctx.FormValue("date"),
		Time:     ctx.FormValue("time"),
	}

	qr, err := readFormFile(ctx, "qrCode")
	if err != nil {
		logger.Warn("EventController:CreateEvent:QRCodeUnreadable", "error", err)
		qr = nil
	}

	id, err := c.service.CreateEvent(ctx.Request().Context(), req, qr)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.Created(ctx, dto.CreateEventResponse{Message: "Event created successfully", ID: id})
}

// UpdateStatus handles PUT /events/:id/status
func (c *EventController) UpdateStatus(ctx echo.Context) error {
	var req dto.UpdateStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return c.ErrorResponse(ctx, errors.NewAppError(errors.ErrInvalidRequestData, "Invalid request body", err))
	}

	if err := c.service.UpdateStatus(ctx.Request().Context(), ctx.Param("id"), req.Status); err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.OK(ctx, dto.MessageResponse{Message: "Event status updated successfully"})
}

// GetPhotos handles GET /photos
func (c *EventController) GetPhotos(ctx echo.Context) error {
	photos, err := c.service.ListPhotos(ctx.Request().Context())
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.OK(ctx, photos)
}

// UploadQRCode handles the multipart POST /upload-qr with file and eventId.
func (c *EventController) UploadQRCode(ctx echo.Context) error {
	file, err := readFormFile(ctx, "file")
	if err != nil {
		return c.ErrorResponse(ctx, errors.NewAppError(errors.ErrInvalidRequestData, "Invalid upload", err))
	}
	if file == nil {
		return c.ErrorResponse(ctx, errors.Validation("No file uploaded"))
	}

	path, err := c.service.UploadQRCode(ctx.Request().Context(), ctx.FormValue("eventId"), file)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.OK(ctx, dto.UploadQRResponse{Message: "File uploaded successfully", Path: path})
}

// readFormFile returns nil without error when the field is absent.
func readFormFile(ctx echo.Context, field string) (*dto.Upload, error) {
	header, err := ctx.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}
	return ReadUpload(header)
}

// ReadUpload loads a multipart file into memory, bounded by MaxUploadBytes.
func ReadUpload(header *multipart.FileHeader) (*dto.Upload, error) {
	if header.Size > constants.MaxUploadBytes {
		return nil, errors.Validation("File too large")
	}

	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, constants.MaxUploadBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > constants.MaxUploadBytes {
		return nil, errors.Validation("File too large")
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}

	return &dto.Upload{
		Filename:    header.Filename,
		ContentType: contentType,
		Data:        data,
	}, nil
}
