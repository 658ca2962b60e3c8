package router

import (
	"travel-ticket-api/modules/event/controller"

	"github.com/labstack/echo/v4"
)

type EventRouter struct {
	controller *controller.EventController
}

func NewEventRouter(controller *controller.EventController) *EventRouter {
	return &EventRouter{
		controller: controller,
	}
}

func (r *EventRouter) Register(g *echo.Group) {
	events := g.Group("/events")
	events.GET("", r.controller.GetEvents)
	events.POST("", r.controller.CreateEvent)
	events.GET("/:id", r.controller.GetEvent)
	events.PUT("/:id/status", r.controller.UpdateStatus)

	g.GET("/photos", r.controller.GetPhotos)
	g.POST("/upload-qr", r.controller.UploadQRCode)
}
