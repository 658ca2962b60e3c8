package media

import (
	"travel-ticket-api/core/storage"
	"travel-ticket-api/modules/media/controller"
	"travel-ticket-api/modules/media/router"
	"travel-ticket-api/modules/media/service"

	"github.com/labstack/echo/v4"
)

func Init(g *echo.Group, media storage.Store, events service.PhotoRecorder) {
	svc := service.NewMediaService(media, events)
	ctrl := controller.NewMediaController(svc)
	router.NewMediaRouter(ctrl).Register(g)
}
