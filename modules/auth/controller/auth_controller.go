package controller

import (
	"eventsync-backend/core/constants"
	"eventsync-backend/core/controller"
	"eventsync-backend/core/errors"
	"eventsync-backend/core/utils"
	"eventsync-backend/modules/auth/dto"
	"eventsync-backend/modules/auth/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AuthController handles the login and session endpoints.
type AuthController struct {
	controller.BaseController
	AuthService service.AuthServiceInterface
}

func NewAuthController(svc service.AuthServiceInterface) *AuthController {
	return &AuthController{
		BaseController: controller.NewBaseController(),
		AuthService:    svc,
	}
}

// SendCode handles POST /public/auth/send-code
func (c *AuthController) SendCode(ctx echo.Context) error {
	var req dto.SendCodeRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	if appErr := c.AuthService.SendCode(ctx.Request().Context(), &req); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Verification code sent")
}

// VerifyCode handles POST /public/auth/verify-code
func (c *AuthController) VerifyCode(ctx echo.Context) error {
	var req dto.VerifyCodeRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	result, appErr := c.AuthService.VerifyCode(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Signed in successfully")
}

// Me handles GET /private/auth/me
func (c *AuthController) Me(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	result, appErr := c.AuthService.GetCurrentUser(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// Logout handles POST /private/auth/logout
func (c *AuthController) Logout(ctx echo.Context) error {
	claims, ok := ctx.Get(constants.ContextTokenData).(*utils.TokenClaims)
	if !ok || claims == nil || claims.ExpiresAt == nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	token, _ := ctx.Get(constants.ContextSessionToken).(string)
	if token == "" {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	if appErr := c.AuthService.Logout(ctx.Request().Context(), token, claims.ExpiresAt.Time); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Signed out successfully")
}

func getUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
	tokenData := ctx.Get(constants.ContextTokenData)
	if tokenData == nil {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "User not authenticated", nil)
	}

	claims, ok := tokenData.(*utils.TokenClaims)
	if !ok {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "Invalid token data", nil)
	}

	return claims.UserID, nil
}
