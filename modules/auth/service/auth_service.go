package service

import (
	"context"
	"strings"
	"time"

	"eventsync-backend/core/cache"
	"eventsync-backend/core/constants"
	"eventsync-backend/core/errors"
	"eventsync-backend/core/logger"
	"eventsync-backend/core/utils"
	"eventsync-backend/modules/auth/dto"
	"eventsync-backend/modules/auth/entity"
	"eventsync-backend/modules/auth/repository"
	"eventsync-backend/modules/mailer"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService implements the one-time-code login flow: a short numeric
// code is mailed to the address, verifying it exchanges the code for a
// bearer session token.
type AuthService struct {
	users      repository.UserRepositoryInterface
	tokens     repository.AuthTokenRepositoryInterface
	cache      cache.ICache
	dispatcher mailer.Dispatcher
	now        func() time.Time
}

type AuthServiceInterface interface {
	SendCode(ctx context.Context, req *dto.SendCodeRequest) *errors.AppError
	VerifyCode(ctx context.Context, req *dto.VerifyCodeRequest) (*dto.VerifyCodeResponse, *errors.AppError)
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, *errors.AppError)
	Logout(ctx context.Context, token string, expiresAt time.Time) *errors.AppError
}

func NewAuthService(
	users repository.UserRepositoryInterface,
	tokens repository.AuthTokenRepositoryInterface,
	c cache.ICache,
	dispatcher mailer.Dispatcher,
) AuthServiceInterface {
	return &AuthService{
		users:      users,
		tokens:     tokens,
		cache:      c,
		dispatcher: dispatcher,
		now:        time.Now,
	}
}

// SendCode stores a hashed verification code and queues the email. The
// response does not reveal whether the address was already known.
func (s *AuthService) SendCode(ctx context.Context, req *dto.SendCodeRequest) *errors.AppError {
	email := normalizeEmail(req.Email)
	if email == "" {
		return errors.NewAppError(errors.ErrInvalidInput, "email is required", nil)
	}

	code := utils.GenerateVerificationCode(constants.VerificationCodeLength)

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("AuthService:SendCode:Hash:Error:", err)
		return errors.NewAppError(errors.ErrInternalServer, "failed to generate verification code", err)
	}

	token := &entity.AuthToken{
		Email:     email,
		CodeHash:  string(hash),
		ExpiresAt: s.now().Add(constants.VerificationCodeTTLMin * time.Minute),
	}
	if err := s.tokens.Create(ctx, token); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to store verification code", err)
	}

	if err := s.dispatcher.DispatchVerificationEmail(ctx, email, code); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to send verification code", err)
	}

	return nil
}

// VerifyCode checks the submitted code against the active hashes, marks
// it used and issues the session token.
func (s *AuthService) VerifyCode(ctx context.Context, req *dto.VerifyCodeRequest) (*dto.VerifyCodeResponse, *errors.AppError) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Code == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "email and code are required", nil)
	}

	active, err := s.tokens.GetActiveByEmail(ctx, email)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to verify code", err)
	}

	matched := false
	for _, t := range active {
		if t.Expired(s.now()) {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(t.CodeHash), []byte(req.Code)) == nil {
			if err := s.tokens.MarkUsed(ctx, t.ID); err != nil {
				return nil, errors.NewAppError(errors.ErrInternalServer, "failed to verify code", err)
			}
			matched = true
			break
		}
	}
	if !matched {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "invalid or expired verification code", nil)
	}

	user, err := s.users.FindOrCreate(ctx, email, nameFromEmail(email))
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to resolve user", err)
	}

	session, err := utils.GenerateToken(user.ID, user.Email)
	if err != nil {
		logger.Error("AuthService:VerifyCode:GenerateToken:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to issue session token", err)
	}

	return &dto.VerifyCodeResponse{
		Token: session,
		User:  dto.ToUserResponse(user),
	}, nil
}

func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, *errors.AppError) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get user", err)
	}
	if user == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "user not found", nil)
	}
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

// Logout blacklists the presented token for the remainder of its life.
func (s *AuthService) Logout(ctx context.Context, token string, expiresAt time.Time) *errors.AppError {
	ttl := time.Until(expiresAt)
	if err := s.cache.BlacklistToken(ctx, token, ttl); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to revoke session", err)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// nameFromEmail derives a display name from the local part, matching
// how invitees are named at event creation.
func nameFromEmail(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}
