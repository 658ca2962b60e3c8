package router

import (
	"travel-ticket-api/modules/bridge/controller"

	"github.com/labstack/echo/v4"
)

type BridgeRouter struct {
	controller *controller.BridgeController
}

func NewBridgeRouter(controller *controller.BridgeController) *BridgeRouter {
	return &BridgeRouter{
		controller: controller,
	}
}

func (r *BridgeRouter) Register(g *echo.Group) {
	g.GET("/events", r.controller.ListEvents)
	g.POST("/events", r.controller.CreateEvent)
	g.GET("/events/:id", r.controller.GetEvent)
	g.PUT("/events/:id/status", r.controller.UpdateStatus)
	g.POST("/update-photo", r.controller.UpdatePhoto)
	g.POST("/update-qr", r.controller.UpdateQR)
	g.GET("/photos", r.controller.ListPhotos)
}
