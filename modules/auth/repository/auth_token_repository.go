package repository

import (
	"context"

	"eventsync-backend/core/database"
	"eventsync-backend/core/logger"
	"eventsync-backend/modules/auth/entity"

	"github.com/google/uuid"
)

// AuthTokenRepository handles one-time verification codes.
type AuthTokenRepository struct {
	DB database.IDatabase
}

func NewAuthTokenRepository(db database.IDatabase) *AuthTokenRepository {
	return &AuthTokenRepository{DB: db}
}

type AuthTokenRepositoryInterface interface {
	Create(ctx context.Context, token *entity.AuthToken) error
	GetActiveByEmail(ctx context.Context, email string) ([]entity.AuthToken, error)
	MarkUsed(ctx context.Context, id uuid.UUID) error
}

func (r *AuthTokenRepository) Create(ctx context.Context, token *entity.AuthToken) error {
	query := `
		INSERT INTO auth_tokens (email, code_hash, expires_at, used)
		VALUES ($1, $2, $3, false)
		RETURNING id, created_at
	`

	err := r.DB.GetContext(ctx, token, query, token.Email, token.CodeHash, token.ExpiresAt)
	if err != nil {
		logger.Error("AuthTokenRepository:Create:Error:", err)
		return err
	}
	return nil
}

// GetActiveByEmail returns unused, unexpired codes, newest first. More
// than one can be live when the user requests a resend.
func (r *AuthTokenRepository) GetActiveByEmail(ctx context.Context, email string) ([]entity.AuthToken, error) {
	query := `
		SELECT id, email, code_hash, expires_at, used, created_at
		FROM auth_tokens
		WHERE email = $1 AND used = false AND expires_at > NOW()
		ORDER BY created_at DESC
	`

	var tokens []entity.AuthToken
	err := r.DB.SelectContext(ctx, &tokens, query, email)
	if err != nil {
		logger.Error("AuthTokenRepository:GetActiveByEmail:Error:", err)
		return nil, err
	}
	return tokens, nil
}

func (r *AuthTokenRepository) MarkUsed(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE auth_tokens SET used = true WHERE id = $1`
	if err := r.DB.ExecContext(ctx, query, id); err != nil {
		logger.Error("AuthTokenRepository:MarkUsed:Error:", err)
		return err
	}
	return nil
}
