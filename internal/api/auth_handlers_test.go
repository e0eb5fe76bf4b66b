package api

import (
	"net/http"
	"strings"
	"testing"

	"github.com/ivannizarr/chill-app-adv-be/pkg/auth"
)

func TestRegister(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"fullname": "Ada Lovelace",
		"email":    "ada@example.com",
		"password": "Passw0rd",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body: %s)", rec.Code, rec.Body.String())
	}

	resp := decodeResponse(t, rec)
	if !resp.Success {
		t.Error("success = false")
	}
	data := dataMap(t, resp)
	if data["token"] == "" || data["token"] == nil {
		t.Error("no session token in response")
	}

	user, ok := data["user"].(map[string]interface{})
	if !ok {
		t.Fatalf("user is %T, want object", data["user"])
	}
	if user["email"] != "ada@example.com" {
		t.Errorf("email = %v", user["email"])
	}
	if user["role"] != "user" {
		t.Errorf("role = %v, want user", user["role"])
	}
	if _, leaked := user["password"]; leaked {
		t.Error("password hash leaked in response")
	}
	if strings.Contains(rec.Body.String(), "Passw0rd") {
		t.Error("plaintext password leaked in response")
	}

	if len(env.notifier.welcomes) != 1 || env.notifier.welcomes[0] != "ada@example.com" {
		t.Errorf("welcome mail calls = %v", env.notifier.welcomes)
	}
	if len(env.notifier.verifications) != 1 {
		t.Errorf("verification mail calls = %v", env.notifier.verifications)
	}
}

func TestRegisterIgnoresRoleInBody(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"fullname": "Eve Escalator",
		"email":    "eve@example.com",
		"password": "Passw0rd",
		"role":     "admin",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body: %s)", rec.Code, rec.Body.String())
	}
	user := dataMap(t, decodeResponse(t, rec))["user"].(map[string]interface{})
	if user["role"] != "user" {
		t.Errorf("role = %v, want user despite role in body", user["role"])
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	first, _ := env.seedUser(t, "taken@example.com", "Passw0rd", "user")

	rec := env.doJSON(t, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"fullname": "Second User",
		"email":    "taken@example.com",
		"password": "Passw0rd",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409 (body: %s)", rec.Code, rec.Body.String())
	}
	if resp := decodeResponse(t, rec); resp.Success {
		t.Error("success = true on conflict")
	}

	// The existing account is untouched.
	loginRec := env.doJSON(t, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email":    first.Email,
		"password": "Passw0rd",
	})
	if loginRec.Code != http.StatusOK {
		t.Errorf("existing user can no longer log in: status = %d", loginRec.Code)
	}
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing fullname", map[string]interface{}{"email": "a@example.com", "password": "Passw0rd"}},
		{"bad email", map[string]interface{}{"fullname": "Ada Lovelace", "email": "nope", "password": "Passw0rd"}},
		{"short password", map[string]interface{}{"fullname": "Ada Lovelace", "email": "a@example.com", "password": "Pw1"}},
		{"weak password", map[string]interface{}{"fullname": "Ada Lovelace", "email": "a@example.com", "password": "alllowercase"}},
		{"bad username", map[string]interface{}{"fullname": "Ada Lovelace", "username": "no spaces!", "email": "a@example.com", "password": "Passw0rd"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.doJSON(t, http.MethodPost, "/api/auth/register", "", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (body: %s)", rec.Code, rec.Body.String())
			}
			resp := decodeResponse(t, rec)
			if resp.Success {
				t.Error("success = true on validation failure")
			}
			if len(resp.Errors) == 0 {
				t.Error("no field errors in response")
			}
		})
	}
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "user@example.com", "Passw0rd", "user")

	rec := env.doJSON(t, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email":    "user@example.com",
		"password": "Passw0rd",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}

	data := dataMap(t, decodeResponse(t, rec))
	token, _ := data["token"].(string)
	if token == "" {
		t.Fatal("no session token in response")
	}

	// The issued token opens protected routes.
	listRec := env.doJSON(t, http.MethodGet, "/api/movies", token, nil)
	if listRec.Code != http.StatusOK {
		t.Errorf("token from login rejected: status = %d", listRec.Code)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "user@example.com", "Passw0rd", "user")

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "user@example.com", "WrongPass1"},
		{"unknown email", "ghost@example.com", "Passw0rd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.doJSON(t, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
				"email":    tt.email,
				"password": tt.password,
			})
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", rec.Code)
			}
			// Same message either way, no account probing.
			if resp := decodeResponse(t, rec); resp.Message != "Invalid email or password" {
				t.Errorf("message = %q", resp.Message)
			}
		})
	}
}

func TestGetProfile(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.seedUser(t, "user@example.com", "Passw0rd", "user")

	rec := env.doJSON(t, http.MethodGet, "/api/auth/profile", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}
	data := dataMap(t, decodeResponse(t, rec))
	if data["email"] != user.Email {
		t.Errorf("email = %v, want %s", data["email"], user.Email)
	}
	if _, leaked := data["password"]; leaked {
		t.Error("password hash leaked in profile")
	}
}

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.seedUser(t, "user@example.com", "Passw0rd", "user")

	rec := env.doJSON(t, http.MethodPatch, "/api/auth/profile", token, map[string]interface{}{
		"fullname": "New Name",
		"password": "N3wPassword",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}
	data := dataMap(t, decodeResponse(t, rec))
	if data["fullname"] != "New Name" {
		t.Errorf("fullname = %v", data["fullname"])
	}

	// The new password works, the old one does not.
	if rec := env.doJSON(t, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email": "user@example.com", "password": "N3wPassword",
	}); rec.Code != http.StatusOK {
		t.Errorf("new password rejected: status = %d", rec.Code)
	}
	if rec := env.doJSON(t, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email": "user@example.com", "password": "Passw0rd",
	}); rec.Code != http.StatusUnauthorized {
		t.Errorf("old password still accepted: status = %d", rec.Code)
	}
}

func TestUpdateProfileEmptyBody(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.seedUser(t, "user@example.com", "Passw0rd", "user")

	rec := env.doJSON(t, http.MethodPatch, "/api/auth/profile", token, map[string]interface{}{})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 (body: %s)", rec.Code, rec.Body.String())
	}
}

func TestUpdateProfileEmailConflict(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "first@example.com", "Passw0rd", "user")
	_, token := env.seedUser(t, "second@example.com", "Passw0rd", "user")

	rec := env.doJSON(t, http.MethodPatch, "/api/auth/profile", token, map[string]interface{}{
		"email": "first@example.com",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409 (body: %s)", rec.Code, rec.Body.String())
	}
}

func TestVerifyEmail(t *testing.T) {
	env := newTestEnv(t)
	user, sessionToken := env.seedUser(t, "user@example.com", "Passw0rd", "user")

	verifyToken, err := env.tokens.Generate(user.ID, user.Email, user.Role, auth.PurposeEmailVerification)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	rec := env.doJSON(t, http.MethodGet, "/api/auth/verify-email?token="+verifyToken, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}
	if resp := decodeResponse(t, rec); !resp.Success {
		t.Error("success = false")
	}

	// A session token is not a verification token.
	rec = env.doJSON(t, http.MethodGet, "/api/auth/verify-email?token="+sessionToken, "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("session token accepted for verification: status = %d", rec.Code)
	}

	// Missing token.
	rec = env.doJSON(t, http.MethodGet, "/api/auth/verify-email", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing token: status = %d, want 400", rec.Code)
	}
}
