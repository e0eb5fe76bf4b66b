package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ivannizarr/chill-app-adv-be/internal/domain"
)

// PostgresMovieStore implements MovieStore on PostgreSQL.
type PostgresMovieStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewPostgresMovieStore(db *sqlx.DB, logger *slog.Logger) (*PostgresMovieStore, error) {
	if db == nil {
		return nil, errors.New("database connection cannot be nil")
	}
	return &PostgresMovieStore{db: db, logger: logger}, nil
}

func (s *PostgresMovieStore) Create(ctx context.Context, movie *domain.Movie) error {
	query := `INSERT INTO movies (title, description, release_year, duration_min, rating, language, image_url, trailer_url, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
              RETURNING id`

	movie.CreatedAt = time.Now().UTC()
	movie.UpdatedAt = movie.CreatedAt

	s.logger.DebugContext(ctx, "Executing Create movie query", slog.String("title", movie.Title))
	err := s.db.QueryRowContext(ctx, query,
		movie.Title, movie.Description, movie.ReleaseYear, movie.DurationMin,
		movie.Rating, movie.Language, movie.ImageURL, movie.TrailerURL,
		movie.CreatedAt, movie.UpdatedAt,
	).Scan(&movie.ID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to create movie", slog.String("error", err.Error()))
		return fmt.Errorf("failed to create movie: %w", err)
	}
	s.logger.InfoContext(ctx, "Movie created", slog.Int64("movieID", movie.ID))
	return nil
}

func (s *PostgresMovieStore) GetByID(ctx context.Context, id int64) (*domain.Movie, error) {
	query := `SELECT id, title, description, release_year, duration_min, rating, language, image_url, trailer_url, created_at, updated_at
              FROM movies WHERE id = $1`
	var movie domain.Movie
	err := s.db.GetContext(ctx, &movie, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		s.logger.ErrorContext(ctx, "Failed to get movie by ID", slog.Int64("movieID", id), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get movie by id: %w", err)
	}
	return &movie, nil
}

func (s *PostgresMovieStore) List(ctx context.Context, params MovieListParams) ([]*domain.Movie, int, error) {
	params.Normalize()
	q := buildMovieListQuery(params)

	var totalCount int
	s.logger.DebugContext(ctx, "Executing List movies count query", slog.String("query", q.countSQL), slog.Any("args", q.countArgs))
	if err := s.db.GetContext(ctx, &totalCount, q.countSQL, q.countArgs...); err != nil {
		s.logger.ErrorContext(ctx, "Failed to count movies", slog.String("error", err.Error()))
		return nil, 0, fmt.Errorf("failed to count movies: %w", err)
	}
	if totalCount == 0 {
		return []*domain.Movie{}, 0, nil
	}

	movies := []*domain.Movie{}
	s.logger.DebugContext(ctx, "Executing List movies select query", slog.String("query", q.selectSQL), slog.Any("args", q.selectArgs))
	if err := s.db.SelectContext(ctx, &movies, q.selectSQL, q.selectArgs...); err != nil {
		s.logger.ErrorContext(ctx, "Failed to list movies", slog.String("error", err.Error()))
		return nil, 0, fmt.Errorf("failed to list movies: %w", err)
	}
	return movies, totalCount, nil
}

func (s *PostgresMovieStore) Update(ctx context.Context, id int64, update *domain.UpdateMovieRequest) (*domain.Movie, error) {
	setClause, args, err := buildMovieUpdateSet(update)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf("UPDATE movies SET %s WHERE id = $%d", setClause, len(args)+1)
	args = append(args, id)

	s.logger.DebugContext(ctx, "Executing Update movie query", slog.Int64("movieID", id))
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to update movie", slog.Int64("movieID", id), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update movie: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check update result: %w", err)
	}
	if rowsAffected == 0 {
		return nil, ErrMovieNotFound
	}

	s.logger.InfoContext(ctx, "Movie updated", slog.Int64("movieID", id))
	return s.GetByID(ctx, id)
}

func (s *PostgresMovieStore) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM movies WHERE id = $1`
	s.logger.DebugContext(ctx, "Executing Delete movie query", slog.Int64("movieID", id))
	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to delete movie", slog.Int64("movieID", id), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete movie: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rowsAffected == 0 {
		return ErrMovieNotFound
	}
	s.logger.InfoContext(ctx, "Movie deleted", slog.Int64("movieID", id))
	return nil
}
