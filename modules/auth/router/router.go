package router

import (
	"eventsync-backend/core/middleware"
	"eventsync-backend/modules/auth/controller"

	"github.com/labstack/echo/v4"
)

type AuthRouter struct {
	AuthController *controller.AuthController
}

func NewAuthRouter(authController *controller.AuthController) *AuthRouter {
	return &AuthRouter{AuthController: authController}
}

func (r *AuthRouter) Setup(public *echo.Group, private *echo.Group, mw *middleware.Middleware) {
	publicAuth := public.Group("/auth")
	publicAuth.POST("/send-code", r.AuthController.SendCode)
	publicAuth.POST("/verify-code", r.AuthController.VerifyCode)

	privateAuth := private.Group("/auth", mw.AuthMiddleware())
	privateAuth.GET("/me", r.AuthController.Me)
	privateAuth.POST("/logout", r.AuthController.Logout)
}
