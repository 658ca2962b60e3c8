package event

import (
	"travel-ticket-api/core/storage"
	"travel-ticket-api/modules/event/controller"
	"travel-ticket-api/modules/event/router"
	"travel-ticket-api/modules/event/service"

	"github.com/labstack/echo/v4"
)

// Init registers the event routes on g and returns the service for other modules.
func Init(g *echo.Group, store service.EventStore, media storage.Store) *service.EventService {
	svc := service.NewEventService(store, media)
	ctrl := controller.NewEventController(svc)
	router.NewEventRouter(ctrl).Register(g)
	return svc
}
