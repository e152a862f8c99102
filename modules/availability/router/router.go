package router

import (
	"eventsync-backend/core/middleware"
	"eventsync-backend/modules/availability/controller"

	"github.com/labstack/echo/v4"
)

// AvailabilityRouter registers availability routes.
type AvailabilityRouter struct {
	AvailabilityController *controller.AvailabilityController
}

func NewAvailabilityRouter(availabilityController *controller.AvailabilityController) *AvailabilityRouter {
	return &AvailabilityRouter{AvailabilityController: availabilityController}
}

func (r *AvailabilityRouter) Setup(public *echo.Group, private *echo.Group, mw *middleware.Middleware) {
	// Submission is keyed by invite token, no session required.
	public.POST("/availability", r.AvailabilityController.SubmitAvailability)

	events := private.Group("/events", mw.AuthMiddleware())
	events.GET("/:id/results", r.AvailabilityController.GetResults)
}
