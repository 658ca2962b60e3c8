package router

import (
	"travel-ticket-api/core/constants"
	"travel-ticket-api/modules/media/controller"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

type MediaRouter struct {
	controller *controller.MediaController
}

func NewMediaRouter(controller *controller.MediaController) *MediaRouter {
	return &MediaRouter{
		controller: controller,
	}
}

func (r *MediaRouter) Register(g *echo.Group) {
	g.POST("/upload-photo", r.controller.UploadPhoto, echomw.BodyLimit(constants.MaxUploadBody))
}
