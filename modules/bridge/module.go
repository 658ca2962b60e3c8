package bridge

import (
	"travel-ticket-api/core/middleware"
	"travel-ticket-api/modules/bridge/controller"
	"travel-ticket-api/modules/bridge/router"
	"travel-ticket-api/modules/event/service"

	"github.com/labstack/echo/v4"
)

// Init mounts the bridge endpoints on g behind the x-api-key check.
func Init(g *echo.Group, apiKey string, events *service.EventService) {
	g.Use(middleware.APIKey(apiKey))
	ctrl := controller.NewBridgeController(events)
	router.NewBridgeRouter(ctrl).Register(g)
}
