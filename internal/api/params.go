package api

import (
	"net/url"
	"strconv"

	"github.com/ivannizarr/chill-app-adv-be/internal/store"
)

// parseMovieListParams coerces the raw query string into typed list params.
// Non-numeric values silently fall back to their defaults rather than
// failing the request.
func parseMovieListParams(query url.Values) store.MovieListParams {
	params := store.MovieListParams{
		Search:   query.Get("search"),
		Genre:    query.Get("genre"),
		Language: query.Get("language"),
		Sort:     query.Get("sort"),
		Order:    query.Get("order"),
	}
	if year, err := strconv.Atoi(query.Get("year")); err == nil {
		params.Year = year
	}
	if ratingMin, err := strconv.ParseFloat(query.Get("rating_min"), 64); err == nil {
		params.RatingMin = ratingMin
	}
	if ratingMax, err := strconv.ParseFloat(query.Get("rating_max"), 64); err == nil {
		params.RatingMax = ratingMax
	}
	if limit, err := strconv.Atoi(query.Get("limit")); err == nil {
		params.Limit = limit
	}
	if page, err := strconv.Atoi(query.Get("page")); err == nil {
		params.Page = page
	}
	return params
}
