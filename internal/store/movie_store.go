package store

import (
	"context"
	"errors"
	"strings"

	"github.com/ivannizarr/chill-app-adv-be/internal/domain"
)

var (
	// ErrMovieNotFound is returned when no movie row matches the lookup.
	ErrMovieNotFound = errors.New("movie not found")
	// ErrNoFieldsToUpdate is returned when a partial update carries no
	// effective field changes.
	ErrNoFieldsToUpdate = errors.New("no fields to update")
)

// Listing defaults and caps.
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// sortColumns is the allow-list for ORDER BY. Anything else falls back to
// the id column.
var sortColumns = map[string]struct{}{
	"title":        {},
	"rating":       {},
	"release_year": {},
	"created_at":   {},
	"id":           {},
}

// MovieListParams is the typed filter set for listing movies. Zero values
// mean "not filtered": a literal zero year or rating bound is
// indistinguishable from an absent filter, which mirrors the behavior the
// API has always had.
type MovieListParams struct {
	Search    string
	Year      int
	Genre     string
	RatingMin float64
	RatingMax float64
	Language  string
	Sort      string
	Order     string
	Limit     int
	Page      int
}

// Normalize clamps pagination to sane values and resolves the sort column
// and direction against the allow-list. Every store implementation calls it
// so that the same raw params always describe the same window.
func (p *MovieListParams) Normalize() {
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	if p.Page <= 0 {
		p.Page = 1
	}
	if _, ok := sortColumns[p.Sort]; !ok {
		p.Sort = "id"
	}
	if strings.EqualFold(p.Order, "ASC") {
		p.Order = "ASC"
	} else {
		p.Order = "DESC"
	}
}

// Offset is the row offset of the current page.
func (p *MovieListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// MovieStore persists catalog entries.
type MovieStore interface {
	// Create inserts the movie and fills in the store-assigned ID and
	// timestamps.
	Create(ctx context.Context, movie *domain.Movie) error
	GetByID(ctx context.Context, id int64) (*domain.Movie, error)
	// List returns one page of movies plus the total count of rows
	// matching the same filters.
	List(ctx context.Context, params MovieListParams) ([]*domain.Movie, int, error)
	// Update applies the provided fields and returns the refreshed row.
	Update(ctx context.Context, id int64, update *domain.UpdateMovieRequest) (*domain.Movie, error)
	// Delete reports ErrMovieNotFound when no row was removed.
	Delete(ctx context.Context, id int64) error
}
