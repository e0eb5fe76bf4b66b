package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"github.com/ivannizarr/chill-app-adv-be/internal/domain"
	"github.com/ivannizarr/chill-app-adv-be/internal/store"
	"github.com/ivannizarr/chill-app-adv-be/pkg/auth"
)

// fakeNotifier records notification calls without sending anything.
type fakeNotifier struct {
	mu            sync.Mutex
	welcomes      []string
	verifications []string
}

func (f *fakeNotifier) SendWelcome(user *domain.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.welcomes = append(f.welcomes, user.Email)
}

func (f *fakeNotifier) SendVerification(user *domain.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.verifications = append(f.verifications, user.Email)
}

type testEnv struct {
	router   *mux.Router
	users    *store.MockUserStore
	movies   *store.MockMovieStore
	tokens   auth.TokenManager
	notifier *fakeNotifier
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	tokens, err := auth.NewTokenManager("test-secret-at-least-long-enough", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}

	uploadDir := t.TempDir()
	if err := EnsureUploadDirs(uploadDir); err != nil {
		t.Fatalf("EnsureUploadDirs: %v", err)
	}

	users := store.NewMockUserStore()
	movies := store.NewMockMovieStore()
	notifier := &fakeNotifier{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	h := NewHandler(users, movies, logger, domain.NewValidator(), tokens, notifier, uploadDir)
	return &testEnv{
		router:   NewRouter(h),
		users:    users,
		movies:   movies,
		tokens:   tokens,
		notifier: notifier,
	}
}

// seedUser creates a user directly in the store and returns it with a
// session token.
func (e *testEnv) seedUser(t *testing.T, email, password, role string) (*domain.User, string) {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	user := &domain.User{
		Fullname:     "Test User",
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := e.users.Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	token, err := e.tokens.Generate(user.ID, user.Email, user.Role, auth.PurposeSession)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return user, token
}

func (e *testEnv) seedMovie(t *testing.T, movie *domain.Movie) *domain.Movie {
	t.Helper()
	if err := e.movies.Create(context.Background(), movie); err != nil {
		t.Fatalf("seed movie: %v", err)
	}
	return movie
}

// doJSON performs a request with an optional JSON body and bearer token.
func (e *testEnv) doJSON(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v (body: %s)", err, rec.Body.String())
	}
	return resp
}

func dataMap(t *testing.T, resp Response) map[string]interface{} {
	t.Helper()
	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("response data is %T, want object", resp.Data)
	}
	return data
}

func dataList(t *testing.T, resp Response) []interface{} {
	t.Helper()
	data, ok := resp.Data.([]interface{})
	if !ok {
		t.Fatalf("response data is %T, want array", resp.Data)
	}
	return data
}

// multipartBody builds a multipart body with one file part carrying an
// explicit Content-Type.
func multipartBody(t *testing.T, fieldName, filename, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="`+fieldName+`"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, writer.FormDataContentType()
}

func (e *testEnv) doUpload(t *testing.T, path, token, fieldName, filename, contentType string, content []byte) *httptest.ResponseRecorder {
	t.Helper()

	body, bodyType := multipartBody(t, fieldName, filename, contentType, content)
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", bodyType)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func ptrString(s string) *string  { return &s }
func ptrInt(i int) *int           { return &i }
func ptrFloat(f float64) *float64 { return &f }
