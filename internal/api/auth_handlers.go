package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ivannizarr/chill-app-adv-be/internal/domain"
	"github.com/ivannizarr/chill-app-adv-be/internal/store"
	"github.com/ivannizarr/chill-app-adv-be/pkg/auth"
)

// Register handles POST /api/auth/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := h.validator.StructCtx(ctx, req); err != nil {
		h.respondValidationError(w, r, err)
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to hash password", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Failed to register user")
		return
	}

	// Role is always assigned server-side; a role field in the request
	// body is ignored.
	newUser := &domain.User{
		Fullname:     req.Fullname,
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Role:         domain.RoleUser,
	}

	if err := h.users.Create(ctx, newUser); err != nil {
		if errors.Is(err, store.ErrUserAlreadyExists) {
			h.respondError(w, r, http.StatusConflict, "Email is already registered")
			return
		}
		h.logger.ErrorContext(ctx, "Failed to create user", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Failed to register user")
		return
	}

	// Mail is best-effort: the account is created and the session issued
	// whether or not these ever get delivered.
	h.notifier.SendWelcome(newUser)
	h.notifier.SendVerification(newUser)

	token, err := h.tokenManager.Generate(newUser.ID, newUser.Email, newUser.Role, auth.PurposeSession)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to generate session token", slog.Int64("userID", newUser.ID), slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Failed to register user")
		return
	}

	h.logger.InfoContext(ctx, "User registered", slog.Int64("userID", newUser.ID), slog.String("email", newUser.Email))
	h.respondJSON(w, r, http.StatusCreated, Response{
		Success: true,
		Message: "Registration successful, check your email for verification",
		Data:    domain.AuthResponse{User: newUser, Token: token},
	})
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := h.validator.StructCtx(ctx, req); err != nil {
		h.respondValidationError(w, r, err)
		return
	}

	user, err := h.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			h.logger.WarnContext(ctx, "Login attempt for unknown email", slog.String("email", req.Email))
			h.respondError(w, r, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		h.logger.ErrorContext(ctx, "Failed to look up user", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Login failed")
		return
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		h.logger.WarnContext(ctx, "Invalid password attempt", slog.Int64("userID", user.ID))
		h.respondError(w, r, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := h.tokenManager.Generate(user.ID, user.Email, user.Role, auth.PurposeSession)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to generate session token", slog.Int64("userID", user.ID), slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Login failed")
		return
	}

	h.logger.InfoContext(ctx, "User logged in", slog.Int64("userID", user.ID))
	h.respondJSON(w, r, http.StatusOK, Response{
		Success: true,
		Message: "Login successful",
		Data:    domain.AuthResponse{User: user, Token: token},
	})
}

// GetProfile handles GET /api/auth/profile.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := userIDFromContext(ctx)
	if !ok {
		h.logger.ErrorContext(ctx, "User ID missing from context after authentication")
		h.respondError(w, r, http.StatusInternalServerError, "Failed to resolve user identity")
		return
	}

	user, err := h.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			h.respondError(w, r, http.StatusNotFound, "User not found")
			return
		}
		h.logger.ErrorContext(ctx, "Failed to load profile", slog.Int64("userID", userID), slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Failed to retrieve profile")
		return
	}

	h.respondJSON(w, r, http.StatusOK, Response{Success: true, Data: user})
}

// UpdateProfile handles PATCH /api/auth/profile.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := userIDFromContext(ctx)
	if !ok {
		h.logger.ErrorContext(ctx, "User ID missing from context after authentication")
		h.respondError(w, r, http.StatusInternalServerError, "Failed to resolve user identity")
		return
	}

	var req domain.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := h.validator.StructCtx(ctx, req); err != nil {
		h.respondValidationError(w, r, err)
		return
	}

	update := &domain.UserUpdate{
		Fullname: req.Fullname,
		Username: req.Username,
		Email:    req.Email,
	}
	if req.Password != nil {
		hashedPassword, err := auth.HashPassword(*req.Password)
		if err != nil {
			h.logger.ErrorContext(ctx, "Failed to hash password", slog.String("error", err.Error()))
			h.respondError(w, r, http.StatusInternalServerError, "Failed to update profile")
			return
		}
		update.PasswordHash = &hashedPassword
	}

	user, err := h.users.UpdateProfile(ctx, userID, update)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNoFieldsToUpdate):
			h.respondError(w, r, http.StatusBadRequest, "No fields to update")
		case errors.Is(err, store.ErrUserNotFound):
			h.respondError(w, r, http.StatusNotFound, "User not found")
		case errors.Is(err, store.ErrUserAlreadyExists):
			h.respondError(w, r, http.StatusConflict, "Email or username already in use")
		default:
			h.logger.ErrorContext(ctx, "Failed to update profile", slog.Int64("userID", userID), slog.String("error", err.Error()))
			h.respondError(w, r, http.StatusInternalServerError, "Failed to update profile")
		}
		return
	}

	h.respondJSON(w, r, http.StatusOK, Response{
		Success: true,
		Message: "Profile updated",
		Data:    user,
	})
}

// VerifyEmail handles GET /api/auth/verify-email.
func (h *Handler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	token := r.URL.Query().Get("token")
	if token == "" {
		h.respondError(w, r, http.StatusBadRequest, "Verification token required")
		return
	}

	claims, err := h.tokenManager.Validate(token, auth.PurposeEmailVerification)
	if err != nil {
		h.logger.WarnContext(ctx, "Email verification failed", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusBadRequest, "Invalid verification token")
		return
	}

	if _, err := h.users.GetByID(ctx, claims.UserID); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			h.respondError(w, r, http.StatusNotFound, "Invalid verification token")
			return
		}
		h.logger.ErrorContext(ctx, "Failed to load user for verification", slog.Int64("userID", claims.UserID), slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Failed to verify email")
		return
	}

	h.logger.InfoContext(ctx, "Email verified", slog.Int64("userID", claims.UserID))
	h.respondJSON(w, r, http.StatusOK, Response{Success: true, Message: "Email verified successfully"})
}
