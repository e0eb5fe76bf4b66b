package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires all routes and middleware.
func NewRouter(h *Handler) *mux.Router {
	router := mux.NewRouter()
	router.Use(h.Recover)
	router.NotFoundHandler = http.HandlerFunc(h.NotFound)

	router.HandleFunc("/", h.APIIndex).Methods(http.MethodGet)

	// Uploaded files are served statically.
	router.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(h.uploadDir))))

	apiRouter := router.PathPrefix("/api").Subrouter()

	// Auth endpoints.
	authRouter := apiRouter.PathPrefix("/auth").Subrouter()
	authRouter.HandleFunc("/register", h.Register).Methods(http.MethodPost)
	authRouter.HandleFunc("/login", h.Login).Methods(http.MethodPost)
	authRouter.HandleFunc("/verify-email", h.VerifyEmail).Methods(http.MethodGet)

	profileRouter := authRouter.PathPrefix("/profile").Subrouter()
	profileRouter.Use(h.Authenticate)
	profileRouter.HandleFunc("", h.GetProfile).Methods(http.MethodGet)
	profileRouter.HandleFunc("", h.UpdateProfile).Methods(http.MethodPatch)

	// Movie endpoints. Listing requires a session; fetching a single movie
	// is public; mutations require the admin role.
	apiRouter.Handle("/movies", h.Authenticate(http.HandlerFunc(h.ListMovies))).Methods(http.MethodGet)
	apiRouter.HandleFunc("/movie/{id}", h.GetMovie).Methods(http.MethodGet)

	adminMovieRouter := apiRouter.PathPrefix("/movie").Subrouter()
	adminMovieRouter.Use(h.Authenticate, h.RequireRole("admin"))
	adminMovieRouter.HandleFunc("", h.CreateMovie).Methods(http.MethodPost)
	adminMovieRouter.HandleFunc("/{id}", h.UpdateMovie).Methods(http.MethodPatch)
	adminMovieRouter.HandleFunc("/{id}", h.DeleteMovie).Methods(http.MethodDelete)

	// Upload endpoints.
	uploadRouter := apiRouter.PathPrefix("/upload").Subrouter()
	uploadRouter.Use(h.Authenticate)
	uploadRouter.HandleFunc("", h.UploadProfileImage).Methods(http.MethodPost)
	uploadRouter.Handle("/movie-image",
		h.RequireRole("admin")(http.HandlerFunc(h.UploadMovieImage))).Methods(http.MethodPost)
	uploadRouter.Handle("/file/{filename}",
		h.RequireRole("admin")(http.HandlerFunc(h.DeleteUploadedFile))).Methods(http.MethodDelete)

	return router
}
