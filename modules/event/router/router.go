package router

import (
	"eventsync-backend/core/middleware"
	"eventsync-backend/modules/event/controller"

	"github.com/labstack/echo/v4"
)

// EventRouter registers event routes.
type EventRouter struct {
	EventController *controller.EventController
}

func NewEventRouter(eventController *controller.EventController) *EventRouter {
	return &EventRouter{EventController: eventController}
}

func (r *EventRouter) Setup(public *echo.Group, private *echo.Group, mw *middleware.Middleware) {
	// Invite-token endpoints need no session.
	public.GET("/invite/:token", r.EventController.GetInvite)
	public.POST("/events/:id/rsvp", r.EventController.SaveRsvp)

	events := private.Group("/events", mw.AuthMiddleware())
	events.POST("", r.EventController.CreateEvent)
	events.GET("", r.EventController.GetDashboard)
	events.GET("/:id", r.EventController.GetEvent)
	events.GET("/:id/participation", r.EventController.GetParticipation)
	events.POST("/:id/finalize", r.EventController.FinalizeEvent)
}
