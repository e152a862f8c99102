package middleware

import (
	"strings"

	"eventsync-backend/core/cache"
	"eventsync-backend/core/constants"
	"eventsync-backend/core/controller"
	"eventsync-backend/core/errors"
	"eventsync-backend/core/utils"

	"github.com/labstack/echo/v4"
)

// Middleware bundles the cross-cutting request middlewares.
type Middleware struct {
	cache cache.ICache
}

func New(c cache.ICache) *Middleware {
	return &Middleware{cache: c}
}

// AuthMiddleware resolves the bearer session token into typed claims
// stored on the request context. Blacklisted (logged-out) tokens are
// rejected even when their signature is still valid.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			header := ctx.Request().Header.Get("Authorization")
			if header == "" {
				return controller.NewErrorResponse(401, errors.ErrMissingAuthorizationHeader, "missing authorization header")
			}

			token := strings.TrimPrefix(header, "Bearer ")
			if token == header || token == "" {
				return controller.NewErrorResponse(401, errors.ErrInvalidTokenFormat, "invalid authorization header")
			}

			blacklisted, err := m.cache.IsTokenBlacklisted(ctx.Request().Context(), token)
			if err != nil {
				return controller.NewErrorResponse(500, errors.ErrInternalServer, "internal server error")
			}
			if blacklisted {
				return controller.NewErrorResponse(401, errors.ErrUnauthorized, "session revoked")
			}

			claims, err := utils.ValidateAndParseToken(token)
			if err != nil {
				if ae, ok := err.(*errors.AppError); ok {
					return controller.NewErrorResponse(401, ae.Code, ae.Message)
				}
				return controller.NewErrorResponse(401, errors.ErrUnauthorized, "invalid session token")
			}

			ctx.Set(constants.ContextTokenData, claims)
			ctx.Set(constants.ContextSessionToken, token)
			return next(ctx)
		}
	}
}
