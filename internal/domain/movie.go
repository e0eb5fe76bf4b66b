package domain

import (
	"time"
)

// Movie represents a catalog entry. Optional columns are pointers so a
// missing value round-trips as NULL rather than a zero value.
type Movie struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description,omitempty" db:"description"`
	ReleaseYear *int      `json:"release_year,omitempty" db:"release_year"`
	DurationMin *int      `json:"duration_min,omitempty" db:"duration_min"`
	Rating      *float64  `json:"rating,omitempty" db:"rating"`
	Language    *string   `json:"language,omitempty" db:"language"`
	ImageURL    *string   `json:"image_url,omitempty" db:"image_url"`
	TrailerURL  *string   `json:"trailer_url,omitempty" db:"trailer_url"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// CreateMovieRequest is the body of POST /api/movie.
type CreateMovieRequest struct {
	Title       string   `json:"title" validate:"required,min=1,max=255"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=1000"`
	ReleaseYear *int     `json:"release_year,omitempty" validate:"omitempty,gte=1900,release_year_max"`
	DurationMin *int     `json:"duration_min,omitempty" validate:"omitempty,gt=0"`
	Rating      *float64 `json:"rating,omitempty" validate:"omitempty,gte=0,lte=10"`
	Language    *string  `json:"language,omitempty" validate:"omitempty,max=50"`
	ImageURL    *string  `json:"image_url,omitempty" validate:"omitempty,url"`
	TrailerURL  *string  `json:"trailer_url,omitempty" validate:"omitempty,url"`
}

// UpdateMovieRequest is the body of PATCH /api/movie/{id}. Only provided
// fields end up in the UPDATE statement.
type UpdateMovieRequest struct {
	Title       *string  `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=1000"`
	ReleaseYear *int     `json:"release_year,omitempty" validate:"omitempty,gte=1900,release_year_max"`
	DurationMin *int     `json:"duration_min,omitempty" validate:"omitempty,gt=0"`
	Rating      *float64 `json:"rating,omitempty" validate:"omitempty,gte=0,lte=10"`
	Language    *string  `json:"language,omitempty" validate:"omitempty,max=50"`
	ImageURL    *string  `json:"image_url,omitempty" validate:"omitempty,url"`
	TrailerURL  *string  `json:"trailer_url,omitempty" validate:"omitempty,url"`
}

// Pagination describes the window of a paged listing.
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"total_pages"`
}

// NewPagination computes the page summary for a total row count.
func NewPagination(total, page, limit int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Pagination{Total: total, Page: page, Limit: limit, TotalPages: totalPages}
}
