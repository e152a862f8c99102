package event

import (
	"eventsync-backend/core/database"
	"eventsync-backend/core/middleware"
	authrepo "eventsync-backend/modules/auth/repository"
	"eventsync-backend/modules/event/controller"
	"eventsync-backend/modules/event/repository"
	"eventsync-backend/modules/event/router"
	"eventsync-backend/modules/event/service"
	"eventsync-backend/modules/mailer"

	"github.com/labstack/echo/v4"
)

// Init wires the event module and returns its repository for the
// availability module, which resolves participants through it.
func Init(public *echo.Group, private *echo.Group, db database.IDatabase, users authrepo.UserRepositoryInterface, dispatcher mailer.Dispatcher, mw *middleware.Middleware) *repository.EventRepository {
	repo := repository.NewEventRepository(db)
	svc := service.NewEventService(repo, users, dispatcher)
	ctrl := controller.NewEventController(svc)

	router.NewEventRouter(ctrl).Setup(public, private, mw)

	return repo
}
