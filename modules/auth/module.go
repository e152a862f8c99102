package auth

import (
	"eventsync-backend/core/cache"
	"eventsync-backend/core/database"
	"eventsync-backend/core/middleware"
	"eventsync-backend/modules/auth/controller"
	"eventsync-backend/modules/auth/repository"
	"eventsync-backend/modules/auth/router"
	"eventsync-backend/modules/auth/service"
	"eventsync-backend/modules/mailer"

	"github.com/labstack/echo/v4"
)

// Init wires the auth module and returns the user repository, which
// the event module shares for find-or-create-by-email.
func Init(public *echo.Group, private *echo.Group, db database.IDatabase, c cache.ICache, dispatcher mailer.Dispatcher, mw *middleware.Middleware) *repository.UserRepository {
	users := repository.NewUserRepository(db)
	tokens := repository.NewAuthTokenRepository(db)
	svc := service.NewAuthService(users, tokens, c, dispatcher)
	ctrl := controller.NewAuthController(svc)

	router.NewAuthRouter(ctrl).Setup(public, private, mw)

	return users
}
