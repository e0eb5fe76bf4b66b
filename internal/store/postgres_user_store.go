package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ivannizarr/chill-app-adv-be/internal/domain"
)

// uniqueViolation is the PostgreSQL error code for a unique constraint
// violation.
const uniqueViolation = "23505"

// PostgresUserStore implements UserStore on PostgreSQL.
type PostgresUserStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewPostgresUserStore(db *sqlx.DB, logger *slog.Logger) (*PostgresUserStore, error) {
	if db == nil {
		return nil, errors.New("database connection cannot be nil")
	}
	return &PostgresUserStore{db: db, logger: logger}, nil
}

func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (fullname, username, email, password, role, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7)
              RETURNING id`

	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt

	s.logger.DebugContext(ctx, "Executing Create user query", slog.String("email", user.Email))
	err := s.db.QueryRowContext(ctx, query,
		user.Fullname, user.Username, user.Email, user.PasswordHash, user.Role,
		user.CreatedAt, user.UpdatedAt,
	).Scan(&user.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			s.logger.WarnContext(ctx, "User already exists (unique constraint violation)",
				slog.String("email", user.Email),
				slog.String("constraint", pqErr.Constraint))
			return ErrUserAlreadyExists
		}
		s.logger.ErrorContext(ctx, "Failed to create user", slog.String("error", err.Error()))
		return fmt.Errorf("failed to create user: %w", err)
	}
	s.logger.InfoContext(ctx, "User created", slog.Int64("userID", user.ID))
	return nil
}

func (s *PostgresUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT id, fullname, username, email, password, role, created_at, updated_at
              FROM users WHERE id = $1`
	var user domain.User
	err := s.db.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		s.logger.ErrorContext(ctx, "Failed to get user by ID", slog.Int64("userID", id), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return &user, nil
}

func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT id, fullname, username, email, password, role, created_at, updated_at
              FROM users WHERE email = $1`
	var user domain.User
	err := s.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		s.logger.ErrorContext(ctx, "Failed to get user by email", slog.String("email", email), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

func (s *PostgresUserStore) UpdateProfile(ctx context.Context, id int64, update *domain.UserUpdate) (*domain.User, error) {
	setClause, args, err := buildUserUpdateSet(update)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d", setClause, len(args)+1)
	args = append(args, id)

	s.logger.DebugContext(ctx, "Executing UpdateProfile query", slog.Int64("userID", id))
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			s.logger.WarnContext(ctx, "Profile update hit unique constraint",
				slog.Int64("userID", id),
				slog.String("constraint", pqErr.Constraint))
			return nil, ErrUserAlreadyExists
		}
		s.logger.ErrorContext(ctx, "Failed to update user", slog.Int64("userID", id), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check update result: %w", err)
	}
	if rowsAffected == 0 {
		return nil, ErrUserNotFound
	}

	s.logger.InfoContext(ctx, "User profile updated", slog.Int64("userID", id))
	return s.GetByID(ctx, id)
}
