package controller

import (
	"strings"

	"travel-ticket-api/core/controller"
	"travel-ticket-api/core/errors"
	"travel-ticket-api/modules/event/dto"
	"travel-ticket-api/modules/event/service"

	"github.com/labstack/echo/v4"
)

// BridgeController serves the JSON protocol spoken by the bridge client,
// backed by the local event store.
type BridgeController struct {
	controller.BaseController
	service *service.EventService
}

func NewBridgeController(service *service.EventService) *BridgeController {
	return &BridgeController{
		BaseController: controller.NewBaseController(),
		service:        service,
	}
}

func (c *BridgeController) ListEvents(ctx echo.Context) error {
	events, err := c.service.ListEvents(ctx.Request().Context(), ctx.QueryParam("filter"))
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.OK(ctx, events)
}

func (c *BridgeController) GetEvent(ctx echo.Context) error {
	event, err := c.service.GetEvent(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.OK(ctx, event)
}

func (c *BridgeController) CreateEvent(ctx echo.Context) error {
	var req dto.CreateEventRequest
	if err := ctx.Bind(&req); err != nil {
		return c.ErrorResponse(ctx, errors.NewAppError(errors.ErrInvalidRequestData, "Invalid request body", err))
	}

	id, err := c.service.CreateEvent(ctx.Request().Context(), req, nil)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.Created(ctx, dto.CreateEventResponse{Message: "Event created successfully", ID: id})
}

func (c *BridgeController) UpdateStatus(ctx echo.Context) error {
	var req dto.UpdateStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return c.ErrorResponse(ctx, errors.NewAppError(errors.ErrInvalidRequestData, "Invalid request body", err))
	}

	if err := c.service.UpdateStatus(ctx.Request().Context(), ctx.Param("id"), req.Status); err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.OK(ctx, dto.MessageResponse{Message: "Event status updated successfully"})
}

func (c *BridgeController) UpdatePhoto(ctx echo.Context) error {
	var req dto.UpdatePhotoRequest
	if err := ctx.Bind(&req); err != nil {
		return c.ErrorResponse(ctx, errors.NewAppError(errors.ErrInvalidRequestData, "Invalid request body", err))
	}
	if strings.TrimSpace(req.FileURL) == "" {
		return c.ErrorResponse(ctx, errors.Validation("Missing required fields: fileUrl"))
	}

	id, err := service.ParseEventID(req.EventID.String())
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	if err := c.service.UpdatePhotoPath(ctx.Request().Context(), id, req.FileURL); err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.OK(ctx, dto.MessageResponse{Message: "Photo path updated successfully"})
}

func (c *BridgeController) UpdateQR(ctx echo.Context) error {
	var req dto.UpdateQRRequest
	if err := ctx.Bind(&req); err != nil {
		return c.ErrorResponse(ctx, errors.NewAppError(errors.ErrInvalidRequestData, "Invalid request body", err))
	}
	if strings.TrimSpace(req.Path) == "" {
		return c.ErrorResponse(ctx, errors.Validation("Missing required fields: path"))
	}

	id, err := service.ParseEventID(req.EventID.String())
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	if err := c.service.UpdateQRCodePath(ctx.Request().Context(), id, req.Path); err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.OK(ctx, dto.MessageResponse{Message: "QR code path updated successfully"})
}

func (c *BridgeController) ListPhotos(ctx echo.Context) error {
	photos, err := c.service.ListPhotos(ctx.Request().Context())
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.OK(ctx, photos)
}
