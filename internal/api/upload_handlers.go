package api

import (
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// Upload size limits.
const (
	maxProfileUploadSize = 5 << 20  // 5MB
	maxMovieUploadSize   = 50 << 20 // 50MB
)

var allowedImageExts = map[string]struct{}{
	".jpeg": {}, ".jpg": {}, ".png": {}, ".gif": {}, ".webp": {},
}

var allowedVideoExts = map[string]struct{}{
	".mp4": {}, ".avi": {}, ".mov": {}, ".wmv": {}, ".mkv": {},
}

// allowedUpload applies the upload type filter. A "trailer" form field is
// matched against video patterns; everything else must be an image. No
// route currently submits a trailer field, so in practice only the image
// branch runs.
func allowedUpload(fieldName, filename, contentType string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	if fieldName == "trailer" {
		_, ok := allowedVideoExts[ext]
		return ok && strings.HasPrefix(contentType, "video/")
	}
	_, ok := allowedImageExts[ext]
	return ok && strings.HasPrefix(contentType, "image/")
}

// EnsureUploadDirs creates the upload directory tree.
func EnsureUploadDirs(baseDir string) error {
	for _, sub := range []string{"profiles", "movies"} {
		if err := os.MkdirAll(filepath.Join(baseDir, sub), 0o755); err != nil {
			return err
		}
	}
	return nil
}

// saveUpload writes the uploaded file into the named subdirectory and
// returns the stored filename.
func (h *Handler) saveUpload(file multipart.File, header *multipart.FileHeader, subDir, prefix string) (string, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	filename := prefix + uuid.NewString() + ext
	destination := filepath.Join(h.uploadDir, subDir, filename)

	out, err := os.Create(destination)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		os.Remove(destination)
		return "", err
	}
	return filename, nil
}

func (h *Handler) readUpload(w http.ResponseWriter, r *http.Request, fieldName string, maxSize int64) (multipart.File, *multipart.FileHeader, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)
	if err := r.ParseMultipartForm(maxSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, r, http.StatusBadRequest, "File too large")
			return nil, nil, false
		}
		h.respondError(w, r, http.StatusBadRequest, "Invalid multipart request")
		return nil, nil, false
	}

	file, header, err := r.FormFile(fieldName)
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, "File not found in request")
		return nil, nil, false
	}

	if !allowedUpload(fieldName, header.Filename, header.Header.Get("Content-Type")) {
		file.Close()
		h.respondError(w, r, http.StatusBadRequest, "Only image files are allowed")
		return nil, nil, false
	}
	return file, header, true
}

// UploadProfileImage handles POST /api/upload.
func (h *Handler) UploadProfileImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := userIDFromContext(ctx)
	if !ok {
		h.respondError(w, r, http.StatusInternalServerError, "Failed to resolve user identity")
		return
	}

	file, header, ok := h.readUpload(w, r, "file", maxProfileUploadSize)
	if !ok {
		return
	}
	defer file.Close()

	filename, err := h.saveUpload(file, header, "profiles", "profile-"+strconv.FormatInt(userID, 10)+"-")
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to store uploaded file", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Failed to upload file")
		return
	}

	h.logger.InfoContext(ctx, "Profile image uploaded", slog.Int64("userID", userID), slog.String("filename", filename))
	h.respondJSON(w, r, http.StatusOK, Response{
		Success: true,
		Message: "File uploaded",
		Data: map[string]interface{}{
			"file_url":      "/uploads/profiles/" + filename,
			"filename":      filename,
			"original_name": header.Filename,
			"size":          header.Size,
		},
	})
}

// UploadMovieImage handles POST /api/upload/movie-image.
func (h *Handler) UploadMovieImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	file, header, ok := h.readUpload(w, r, "image", maxMovieUploadSize)
	if !ok {
		return
	}
	defer file.Close()

	filename, err := h.saveUpload(file, header, "movies", "movie-")
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to store uploaded file", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Failed to upload movie image")
		return
	}

	h.logger.InfoContext(ctx, "Movie image uploaded", slog.String("filename", filename))
	h.respondJSON(w, r, http.StatusOK, Response{
		Success: true,
		Message: "Movie image uploaded",
		Data: map[string]interface{}{
			"image_url": "/uploads/movies/" + filename,
			"filename":  filename,
		},
	})
}

// DeleteUploadedFile handles DELETE /api/upload/file/{filename}. The file is
// looked for in the profiles directory first, then the movies directory.
func (h *Handler) DeleteUploadedFile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filename := mux.Vars(r)["filename"]
	if filename == "" || filename != filepath.Base(filename) {
		h.respondError(w, r, http.StatusBadRequest, "Invalid filename")
		return
	}

	profilePath := filepath.Join(h.uploadDir, "profiles", filename)
	moviePath := filepath.Join(h.uploadDir, "movies", filename)

	if err := os.Remove(profilePath); err != nil {
		if err := os.Remove(moviePath); err != nil {
			h.respondError(w, r, http.StatusNotFound, "File not found")
			return
		}
	}

	h.logger.InfoContext(ctx, "Uploaded file deleted", slog.String("filename", filename))
	h.respondJSON(w, r, http.StatusOK, Response{Success: true, Message: "File deleted"})
}
