package controller

import (
	"net/http"
	"strings"

	"travel-ticket-api/core/controller"
	"travel-ticket-api/core/errors"
	eventcontroller "travel-ticket-api/modules/event/controller"
	"travel-ticket-api/modules/media/dto"
	"travel-ticket-api/modules/media/service"

	"github.com/labstack/echo/v4"
)

type MediaController struct {
	controller.BaseController
	service *service.MediaService
}

func NewMediaController(service *service.MediaService) *MediaController {
	return &MediaController{
		BaseController: controller.NewBaseController(),
		service:        service,
	}
}

// UploadPhoto handles POST /upload-photo. It accepts either a JSON body
// with a data URL or a multipart form with a photo file.
func (c *MediaController) UploadPhoto(ctx echo.Context) error {
	contentType := ctx.Request().Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(contentType, echo.MIMEMultipartForm) {
		return c.uploadPhotoFile(ctx)
	}

	var req dto.UploadPhotoRequest
	if err := ctx.Bind(&req); err != nil {
		return c.ErrorResponse(ctx, errors.NewAppError(errors.ErrInvalidRequestData, "Invalid data", err))
	}

	resp, err := c.service.UploadPhotoDataURL(ctx.Request().Context(), req.Photo, string(req.EventID))
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.OK(ctx, resp)
}

func (c *MediaController) uploadPhotoFile(ctx echo.Context) error {
	header, err := ctx.FormFile("photo")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return c.ErrorResponse(ctx, errors.Validation("Invalid data"))
		}
		return c.ErrorResponse(ctx, errors.NewAppError(errors.ErrInvalidRequestData, "Invalid upload", err))
	}

	file, err := eventcontroller.ReadUpload(header)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}

	resp, err := c.service.UploadPhotoFile(ctx.Request().Context(), file, ctx.FormValue("eventId"))
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.OK(ctx, resp)
}
