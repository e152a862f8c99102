package availability

import (
	"eventsync-backend/core/database"
	"eventsync-backend/core/middleware"
	"eventsync-backend/modules/availability/controller"
	"eventsync-backend/modules/availability/repository"
	"eventsync-backend/modules/availability/router"
	"eventsync-backend/modules/availability/service"
	eventrepo "eventsync-backend/modules/event/repository"

	"github.com/labstack/echo/v4"
)

// Init wires the availability module.
func Init(public *echo.Group, private *echo.Group, db database.IDatabase, events eventrepo.EventRepositoryInterface, mw *middleware.Middleware) {
	repo := repository.NewSlotRepository(db)
	svc := service.NewAvailabilityService(repo, events)
	ctrl := controller.NewAvailabilityController(svc)

	router.NewAvailabilityRouter(ctrl).Setup(public, private, mw)
}
