package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ivannizarr/chill-app-adv-be/internal/domain"
	"github.com/ivannizarr/chill-app-adv-be/internal/store"
)

func movieIDFromRequest(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

// ListMovies handles GET /api/movies.
func (h *Handler) ListMovies(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	params := parseMovieListParams(r.URL.Query())
	params.Normalize()

	movies, total, err := h.movies.List(ctx, params)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list movies", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Failed to retrieve movies")
		return
	}

	pagination := domain.NewPagination(total, params.Page, params.Limit)
	h.respondJSON(w, r, http.StatusOK, Response{
		Success:    true,
		Message:    "Movies retrieved",
		Data:       movies,
		Pagination: &pagination,
	})
}

// GetMovie handles GET /api/movie/{id}.
func (h *Handler) GetMovie(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := movieIDFromRequest(r)
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Invalid movie ID")
		return
	}

	movie, err := h.movies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrMovieNotFound) {
			h.respondError(w, r, http.StatusNotFound, "Movie not found")
			return
		}
		h.logger.ErrorContext(ctx, "Failed to get movie", slog.Int64("movieID", id), slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Failed to retrieve movie")
		return
	}

	h.respondJSON(w, r, http.StatusOK, Response{Success: true, Data: movie})
}

// CreateMovie handles POST /api/movie.
func (h *Handler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.CreateMovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := h.validator.StructCtx(ctx, req); err != nil {
		h.respondValidationError(w, r, err)
		return
	}

	movie := &domain.Movie{
		Title:       req.Title,
		Description: req.Description,
		ReleaseYear: req.ReleaseYear,
		DurationMin: req.DurationMin,
		Rating:      req.Rating,
		Language:    req.Language,
		ImageURL:    req.ImageURL,
		TrailerURL:  req.TrailerURL,
	}

	if err := h.movies.Create(ctx, movie); err != nil {
		h.logger.ErrorContext(ctx, "Failed to create movie", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Failed to create movie")
		return
	}

	h.logger.InfoContext(ctx, "Movie created", slog.Int64("movieID", movie.ID), slog.String("title", movie.Title))
	h.respondJSON(w, r, http.StatusCreated, Response{
		Success: true,
		Message: "Movie created",
		Data:    movie,
	})
}

// UpdateMovie handles PATCH /api/movie/{id}.
func (h *Handler) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := movieIDFromRequest(r)
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Invalid movie ID")
		return
	}

	var req domain.UpdateMovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := h.validator.StructCtx(ctx, req); err != nil {
		h.respondValidationError(w, r, err)
		return
	}

	movie, err := h.movies.Update(ctx, id, &req)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNoFieldsToUpdate):
			h.respondError(w, r, http.StatusBadRequest, "No fields to update")
		case errors.Is(err, store.ErrMovieNotFound):
			h.respondError(w, r, http.StatusNotFound, "Movie not found")
		default:
			h.logger.ErrorContext(ctx, "Failed to update movie", slog.Int64("movieID", id), slog.String("error", err.Error()))
			h.respondError(w, r, http.StatusInternalServerError, "Failed to update movie")
		}
		return
	}

	h.respondJSON(w, r, http.StatusOK, Response{
		Success: true,
		Message: "Movie updated",
		Data:    movie,
	})
}

// DeleteMovie handles DELETE /api/movie/{id}.
func (h *Handler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := movieIDFromRequest(r)
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Invalid movie ID")
		return
	}

	if err := h.movies.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrMovieNotFound) {
			h.respondError(w, r, http.StatusNotFound, "Movie not found")
			return
		}
		h.logger.ErrorContext(ctx, "Failed to delete movie", slog.Int64("movieID", id), slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Failed to delete movie")
		return
	}

	h.logger.InfoContext(ctx, "Movie deleted", slog.Int64("movieID", id))
	h.respondJSON(w, r, http.StatusOK, Response{Success: true, Message: "Movie deleted"})
}
