package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ivannizarr/chill-app-adv-be/internal/domain"
)

// MockMovieStore is an in-memory MovieStore used by tests. Its List applies
// the same filter, sort and pagination semantics as the Postgres store.
type MockMovieStore struct {
	mu     sync.RWMutex
	movies map[int64]*domain.Movie
	genres map[int64][]string
	nextID int64
}

func NewMockMovieStore() *MockMovieStore {
	return &MockMovieStore{
		movies: make(map[int64]*domain.Movie),
		genres: make(map[int64][]string),
		nextID: 1,
	}
}

// SetGenres associates genre names with a movie for genre-filtered listing.
func (m *MockMovieStore) SetGenres(movieID int64, names ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.genres[movieID] = names
}

func (m *MockMovieStore) Create(ctx context.Context, movie *domain.Movie) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	movie.ID = m.nextID
	m.nextID++
	movie.CreatedAt = time.Now().UTC()
	movie.UpdatedAt = movie.CreatedAt
	movieCopy := *movie
	m.movies[movie.ID] = &movieCopy
	return nil
}

func (m *MockMovieStore) GetByID(ctx context.Context, id int64) (*domain.Movie, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	movie, ok := m.movies[id]
	if !ok {
		return nil, ErrMovieNotFound
	}
	movieCopy := *movie
	return &movieCopy, nil
}

func slugify(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}

func (m *MockMovieStore) matchesGenre(movieID int64, genre string) bool {
	for _, name := range m.genres[movieID] {
		if strings.EqualFold(name, genre) || slugify(name) == genre {
			return true
		}
	}
	return false
}

func (m *MockMovieStore) List(ctx context.Context, params MovieListParams) ([]*domain.Movie, int, error) {
	params.Normalize()

	m.mu.RLock()
	defer m.mu.RUnlock()

	var filtered []domain.Movie
	for _, movie := range m.movies {
		if params.Genre != "" && !m.matchesGenre(movie.ID, params.Genre) {
			continue
		}
		if params.Search != "" {
			needle := strings.ToLower(params.Search)
			title := strings.ToLower(movie.Title)
			description := ""
			if movie.Description != nil {
				description = strings.ToLower(*movie.Description)
			}
			if !strings.Contains(title, needle) && !strings.Contains(description, needle) {
				continue
			}
		}
		if params.Year != 0 && (movie.ReleaseYear == nil || *movie.ReleaseYear != params.Year) {
			continue
		}
		if params.RatingMin != 0 && (movie.Rating == nil || *movie.Rating < params.RatingMin) {
			continue
		}
		if params.RatingMax != 0 && (movie.Rating == nil || *movie.Rating > params.RatingMax) {
			continue
		}
		if params.Language != "" && (movie.Language == nil || *movie.Language != params.Language) {
			continue
		}
		filtered = append(filtered, *movie)
	}

	sortMovies(filtered, params.Sort, params.Order)

	totalCount := len(filtered)
	start := params.Offset()
	if start >= totalCount {
		return []*domain.Movie{}, totalCount, nil
	}
	end := start + params.Limit
	if end > totalCount {
		end = totalCount
	}

	page := make([]*domain.Movie, 0, end-start)
	for i := start; i < end; i++ {
		movieCopy := filtered[i]
		page = append(page, &movieCopy)
	}
	return page, totalCount, nil
}

// sortMovies orders movies by the resolved sort column with an id tie-break,
// matching the ORDER BY emitted by buildMovieListQuery.
func sortMovies(movies []domain.Movie, column, order string) {
	asc := order == "ASC"
	sort.SliceStable(movies, func(i, j int) bool {
		a, b := movies[i], movies[j]
		var less, equal bool
		switch column {
		case "title":
			ta, tb := strings.ToLower(a.Title), strings.ToLower(b.Title)
			less, equal = ta < tb, ta == tb
		case "rating":
			ra, rb := 0.0, 0.0
			if a.Rating != nil {
				ra = *a.Rating
			}
			if b.Rating != nil {
				rb = *b.Rating
			}
			less, equal = ra < rb, ra == rb
		case "release_year":
			ya, yb := 0, 0
			if a.ReleaseYear != nil {
				ya = *a.ReleaseYear
			}
			if b.ReleaseYear != nil {
				yb = *b.ReleaseYear
			}
			less, equal = ya < yb, ya == yb
		case "created_at":
			less, equal = a.CreatedAt.Before(b.CreatedAt), a.CreatedAt.Equal(b.CreatedAt)
		default: // id
			less, equal = a.ID < b.ID, a.ID == b.ID
		}
		if equal {
			return a.ID > b.ID
		}
		if asc {
			return less
		}
		return !less
	})
}

func (m *MockMovieStore) Update(ctx context.Context, id int64, update *domain.UpdateMovieRequest) (*domain.Movie, error) {
	if _, _, err := buildMovieUpdateSet(update); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	movie, ok := m.movies[id]
	if !ok {
		return nil, ErrMovieNotFound
	}
	if update.Title != nil {
		movie.Title = *update.Title
	}
	if update.Description != nil {
		movie.Description = update.Description
	}
	if update.ReleaseYear != nil {
		movie.ReleaseYear = update.ReleaseYear
	}
	if update.DurationMin != nil {
		movie.DurationMin = update.DurationMin
	}
	if update.Rating != nil {
		movie.Rating = update.Rating
	}
	if update.Language != nil {
		movie.Language = update.Language
	}
	if update.ImageURL != nil {
		movie.ImageURL = update.ImageURL
	}
	if update.TrailerURL != nil {
		movie.TrailerURL = update.TrailerURL
	}
	movie.UpdatedAt = time.Now().UTC()
	movieCopy := *movie
	return &movieCopy, nil
}

func (m *MockMovieStore) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.movies[id]; !ok {
		return ErrMovieNotFound
	}
	delete(m.movies, id)
	delete(m.genres, id)
	return nil
}
