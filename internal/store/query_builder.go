package store

import (
	"fmt"
	"strings"

	"github.com/ivannizarr/chill-app-adv-be/internal/domain"
)

const movieColumns = `m.id, m.title, m.description, m.release_year, m.duration_min, m.rating, m.language, m.image_url, m.trailer_url, m.created_at, m.updated_at`

// movieListQuery holds the paged data query and the matching count query.
// Both are produced by one construction step so they always share the same
// joins, predicates and bound arguments; countArgs is selectArgs without the
// trailing LIMIT/OFFSET pair.
type movieListQuery struct {
	selectSQL  string
	countSQL   string
	selectArgs []interface{}
	countArgs  []interface{}
}

// buildMovieListQuery translates normalized list params into parameterized
// SQL. Filter values never reach the query text: every predicate binds a $n
// placeholder.
func buildMovieListQuery(p MovieListParams) movieListQuery {
	var (
		joins      string
		conditions []string
		args       []interface{}
	)
	argID := 1

	if p.Genre != "" {
		joins = " INNER JOIN movie_genres mg ON mg.movie_id = m.id" +
			" INNER JOIN genres g ON g.id = mg.genre_id"
		conditions = append(conditions, fmt.Sprintf("(g.name = $%d OR g.slug = $%d)", argID, argID+1))
		args = append(args, p.Genre, p.Genre)
		argID += 2
	}
	if p.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(m.title ILIKE $%d OR m.description ILIKE $%d)", argID, argID+1))
		pattern := "%" + p.Search + "%"
		args = append(args, pattern, pattern)
		argID += 2
	}
	if p.Year != 0 {
		conditions = append(conditions, fmt.Sprintf("m.release_year = $%d", argID))
		args = append(args, p.Year)
		argID++
	}
	if p.RatingMin != 0 {
		conditions = append(conditions, fmt.Sprintf("m.rating >= $%d", argID))
		args = append(args, p.RatingMin)
		argID++
	}
	if p.RatingMax != 0 {
		conditions = append(conditions, fmt.Sprintf("m.rating <= $%d", argID))
		args = append(args, p.RatingMax)
		argID++
	}
	if p.Language != "" {
		conditions = append(conditions, fmt.Sprintf("m.language = $%d", argID))
		args = append(args, p.Language)
		argID++
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	// Sort and Order were resolved against the allow-list in Normalize, so
	// interpolating them here cannot carry user input. The id tie-break
	// keeps page boundaries stable when the sort column has duplicates.
	orderBy := fmt.Sprintf(" ORDER BY m.%s %s", p.Sort, p.Order)
	if p.Sort != "id" {
		orderBy += ", m.id DESC"
	}

	countSQL := "SELECT COUNT(DISTINCT m.id) FROM movies m" + joins + where
	countArgs := args

	selectSQL := "SELECT DISTINCT " + movieColumns + " FROM movies m" + joins + where + orderBy +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1)
	selectArgs := append(append([]interface{}{}, args...), p.Limit, p.Offset())

	return movieListQuery{
		selectSQL:  selectSQL,
		countSQL:   countSQL,
		selectArgs: selectArgs,
		countArgs:  countArgs,
	}
}

// buildMovieUpdateSet produces the SET clause for a partial movie update.
// Only provided fields are included; updated_at is always refreshed when at
// least one field is present.
func buildMovieUpdateSet(u *domain.UpdateMovieRequest) (string, []interface{}, error) {
	var (
		assignments []string
		args        []interface{}
	)
	argID := 1

	add := func(column string, value interface{}) {
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, argID))
		args = append(args, value)
		argID++
	}

	if u.Title != nil {
		add("title", *u.Title)
	}
	if u.Description != nil {
		add("description", *u.Description)
	}
	if u.ReleaseYear != nil {
		add("release_year", *u.ReleaseYear)
	}
	if u.DurationMin != nil {
		add("duration_min", *u.DurationMin)
	}
	if u.Rating != nil {
		add("rating", *u.Rating)
	}
	if u.Language != nil {
		add("language", *u.Language)
	}
	if u.ImageURL != nil {
		add("image_url", *u.ImageURL)
	}
	if u.TrailerURL != nil {
		add("trailer_url", *u.TrailerURL)
	}

	if len(assignments) == 0 {
		return "", nil, ErrNoFieldsToUpdate
	}
	assignments = append(assignments, "updated_at = NOW()")
	return strings.Join(assignments, ", "), args, nil
}

// buildUserUpdateSet produces the SET clause for a partial profile update.
func buildUserUpdateSet(u *domain.UserUpdate) (string, []interface{}, error) {
	var (
		assignments []string
		args        []interface{}
	)
	argID := 1

	add := func(column string, value interface{}) {
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, argID))
		args = append(args, value)
		argID++
	}

	if u.Fullname != nil {
		add("fullname", *u.Fullname)
	}
	if u.Username != nil {
		add("username", *u.Username)
	}
	if u.Email != nil {
		add("email", *u.Email)
	}
	if u.PasswordHash != nil {
		add("password", *u.PasswordHash)
	}

	if len(assignments) == 0 {
		return "", nil, ErrNoFieldsToUpdate
	}
	assignments = append(assignments, "updated_at = NOW()")
	return strings.Join(assignments, ", "), args, nil
}
