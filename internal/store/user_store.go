package store

import (
	"context"
	"errors"

	"github.com/ivannizarr/chill-app-adv-be/internal/domain"
)

var (
	// ErrUserNotFound is returned when no user row matches the lookup.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserAlreadyExists is returned when an insert or update violates
	// the email or username uniqueness constraint.
	ErrUserAlreadyExists = errors.New("user with this email or username already exists")
)

// UserStore persists user accounts.
type UserStore interface {
	// Create inserts the user and fills in the store-assigned ID and
	// timestamps.
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// UpdateProfile applies the provided fields to the user row and
	// returns the refreshed record. Passing an update with no fields set
	// is a caller error (ErrNoFieldsToUpdate).
	UpdateProfile(ctx context.Context, id int64, update *domain.UserUpdate) (*domain.User, error)
}
