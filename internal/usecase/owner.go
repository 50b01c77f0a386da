package usecase

import (
	"context"
	"fmt"
	"time"

	"event-ticketing/internal/data/entity"
	"event-ticketing/internal/data/repository"
	"event-ticketing/pkg/apperrors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// resolveOwner finds the account a booking should belong to: by email
// (case-insensitive) first, then by phone, creating a fresh account when
// neither matches. Email or phone is required so repeat buyers fold onto
// the same account instead of multiplying users.
func resolveOwner(ctx context.Context, users repository.UserRepository, log *zap.Logger, name string, email, phone *string) (*entity.User, error) {
	if email == nil && phone == nil {
		return nil, fmt.Errorf("%w: owner email or phone is required", apperrors.ErrBadRequest)
	}

	if email != nil {
		user, err := users.FindByEmail(ctx, *email)
		if err != nil {
			return nil, fmt.Errorf("resolve owner by email: %w", err)
		}
		if user != nil {
			return user, nil
		}
	}

	if phone != nil {
		user, err := users.FindByPhone(ctx, *phone)
		if err != nil {
			return nil, fmt.Errorf("resolve owner by phone: %w", err)
		}
		if user != nil {
			return user, nil
		}
	}

	user, err := newUser(name, email, phone, false)
	if err != nil {
		return nil, err
	}

	if err := users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create owner account: %w", err)
	}

	log.Info("Owner account created",
		zap.String("user_id", user.ID.String()),
		zap.Bool("has_email", email != nil),
		zap.Bool("has_phone", phone != nil),
	)

	return user, nil
}

// newUser builds an account with a random throwaway secret. Accounts created
// here cannot log in until the credential is reset through the auth gateway.
func newUser(name string, email, phone *string, isGuest bool) (*entity.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash initial credential: %w", err)
	}

	now := time.Now()
	return &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: string(hash),
		IsGuestUser:  isGuest,
	}, nil
}
