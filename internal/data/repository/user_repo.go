package repository

import (
	"context"
	"fmt"

	"event-ticketing/internal/data/entity"
	"event-ticketing/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	// FindByEmail matches case-insensitively.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByPhone(ctx context.Context, phone string) (*entity.User, error)
	// DeleteGuestIfUnreferenced removes a guest user only if it still owns
	// zero bookings at delete time. The condition lives in the statement so
	// a concurrent assignment cannot slip between check and delete.
	DeleteGuestIfUnreferenced(ctx context.Context, id uuid.UUID) (bool, error)
	// DeleteUnreferencedGuests garbage-collects guests left behind by
	// earlier assignment failures. Returns how many were removed.
	DeleteUnreferencedGuests(ctx context.Context) (int64, error)
}

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

const userColumns = `id, name, email, phone, password, is_guest_user, created_at, updated_at, deleted_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	var user entity.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Phone,
		&user.PasswordHash,
		&user.IsGuestUser,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, name, email, phone, password, is_guest_user, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.Phone,
		user.PasswordHash,
		user.IsGuestUser,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("user_id", user.ID.String()),
			zap.Bool("is_guest", user.IsGuestUser),
		)
		return fmt.Errorf("create user %s: %w", user.ID.String(), err)
	}

	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND deleted_at IS NULL`

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find user by ID",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return nil, fmt.Errorf("find user by ID %s: %w", id.String(), err)
	}

	return user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1) AND deleted_at IS NULL`

	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find user by email", zap.Error(err))
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	return user, nil
}

func (r *userRepository) FindByPhone(ctx context.Context, phone string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE phone = $1 AND deleted_at IS NULL`

	user, err := scanUser(r.db.QueryRow(ctx, query, phone))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find user by phone", zap.Error(err))
		return nil, fmt.Errorf("find user by phone: %w", err)
	}

	return user, nil
}

func (r *userRepository) DeleteGuestIfUnreferenced(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		DELETE FROM users
		WHERE id = $1
		  AND is_guest_user
		  AND NOT EXISTS (SELECT 1 FROM bookings WHERE user_id = $1 AND deleted_at IS NULL)
	`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete guest user",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return false, fmt.Errorf("delete guest user %s: %w", id.String(), err)
	}

	deleted := result.RowsAffected() > 0
	if deleted {
		r.log.Info("Guest user deleted", zap.String("user_id", id.String()))
	}

	return deleted, nil
}

func (r *userRepository) DeleteUnreferencedGuests(ctx context.Context) (int64, error) {
	query := `
		DELETE FROM users u
		WHERE u.is_guest_user
		  AND NOT EXISTS (SELECT 1 FROM bookings b WHERE b.user_id = u.id AND b.deleted_at IS NULL)
	`

	result, err := r.db.Exec(ctx, query)
	if err != nil {
		r.log.Error("Failed to delete unreferenced guests", zap.Error(err))
		return 0, fmt.Errorf("delete unreferenced guests: %w", err)
	}

	return result.RowsAffected(), nil
}
