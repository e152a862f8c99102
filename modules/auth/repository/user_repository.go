package repository

import (
	"context"
	"database/sql"

	"eventsync-backend/core/database"
	"eventsync-backend/core/logger"
	"eventsync-backend/modules/auth/entity"

	"github.com/google/uuid"
)

// UserRepository handles user rows.
type UserRepository struct {
	DB database.IDatabase
}

func NewUserRepository(db database.IDatabase) *UserRepository {
	return &UserRepository{DB: db}
}

type UserRepositoryInterface interface {
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindOrCreate(ctx context.Context, email, name string) (*entity.User, error)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT id, email, name, created_at FROM users WHERE email = $1`

	var user entity.User
	err := r.DB.GetContext(ctx, &user, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("UserRepository:GetByEmail:Error:", err)
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	query := `SELECT id, email, name, created_at FROM users WHERE id = $1`

	var user entity.User
	err := r.DB.GetContext(ctx, &user, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("UserRepository:GetByID:Error:", err)
		return nil, err
	}
	return &user, nil
}

// FindOrCreate returns the user for an email, creating the row when it
// does not exist yet. The upsert keeps concurrent invites for the same
// address from racing.
func (r *UserRepository) FindOrCreate(ctx context.Context, email, name string) (*entity.User, error) {
	query := `
		INSERT INTO users (email, name)
		VALUES ($1, $2)
		ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
		RETURNING id, email, name, created_at
	`

	var user entity.User
	err := r.DB.GetContext(ctx, &user, query, email, name)
	if err != nil {
		logger.Error("UserRepository:FindOrCreate:Error:", err)
		return nil, err
	}
	return &user, nil
}
