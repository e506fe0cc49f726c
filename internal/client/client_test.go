// ABOUTME: Tests for the PropTrack API client
// ABOUTME: Uses httptest to mock backend responses

package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testUser() User {
	return User{
		ID:        7,
		Username:  "ada",
		Email:     "ada@example.com",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Role:      RoleLandlord,
		Phone:     "+234 8012345678",
		Timezone:  "Africa/Lagos",
	}
}

func TestLogin_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login/" {
			t.Errorf("expected path /api/auth/login/, got %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}

		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("invalid request body: %v", err)
		}
		if req.Username != "ada" {
			t.Errorf("expected username ada, got %s", req.Username)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(AuthResponse{
			Access:  "access-token",
			Refresh: "refresh-token",
			User:    testUser(),
		})
	}))
	defer server.Close()

	c := New(server.URL)
	auth, err := c.Login(context.Background(), LoginRequest{Username: "ada", Password: "secret"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if auth.Access != "access-token" {
		t.Errorf("expected access token, got %s", auth.Access)
	}
	if auth.User.Role != RoleLandlord {
		t.Errorf("expected LANDLORD role, got %s", auth.User.Role)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid credentials"})
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.Login(context.Background(), LoginRequest{Username: "ada", Password: "wrong"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	apiErr, ok := IsAPIError(err)
	if !ok {
		t.Fatalf("expected APIError, got %T", err)
	}
	if apiErr.Status != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", apiErr.Status)
	}
	if apiErr.Message != "Invalid credentials" {
		t.Errorf("expected detail message, got %q", apiErr.Message)
	}
}

func TestRegister_FieldValidationErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/register/" {
			t.Errorf("expected path /api/auth/register/, got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string][]string{
			"username": {"A user with that username already exists."},
		})
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.Register(context.Background(), RegisterRequest{Username: "ada", Password: "secret"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	apiErr, ok := IsAPIError(err)
	if !ok {
		t.Fatalf("expected APIError, got %T", err)
	}
	want := "username: A user with that username already exists."
	if apiErr.Message != want {
		t.Errorf("expected %q, got %q", want, apiErr.Message)
	}
}

func TestMe_SendsBearerToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/me/" {
			t.Errorf("expected path /api/auth/me/, got %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok123" {
			t.Errorf("expected Bearer tok123, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(testUser())
	}))
	defer server.Close()

	c := New(server.URL)
	user, err := c.Me(context.Background(), "tok123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Username != "ada" {
		t.Errorf("expected username ada, got %s", user.Username)
	}
}

func TestMe_ExpiredToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Token is expired"})
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.Me(context.Background(), "stale")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if _, ok := IsAPIError(err); !ok {
		t.Fatalf("expected APIError, got %T", err)
	}
}

func TestUpdateMe_PatchesEditableFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("expected PATCH, got %s", r.Method)
		}

		var update map[string]any
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			t.Fatalf("invalid request body: %v", err)
		}
		for _, forbidden := range []string{"username", "email", "role"} {
			if _, ok := update[forbidden]; ok {
				t.Errorf("update must not include %s", forbidden)
			}
		}
		if update["first_name"] != "Ada Mary" {
			t.Errorf("expected first_name Ada Mary, got %v", update["first_name"])
		}

		user := testUser()
		user.FirstName = "Ada Mary"
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(user)
	}))
	defer server.Close()

	c := New(server.URL)
	user, err := c.UpdateMe(context.Background(), "tok", ProfileUpdate{
		FirstName: "Ada Mary",
		LastName:  "Lovelace",
		Phone:     "+234 8012345678",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.FirstName != "Ada Mary" {
		t.Errorf("expected updated first name, got %s", user.FirstName)
	}
}

func TestChangePassword_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/change-password/" {
			t.Errorf("expected path /api/auth/change-password/, got %s", r.URL.Path)
		}

		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("invalid request body: %v", err)
		}
		if req["current_password"] != "old" || req["new_password"] != "newpass" {
			t.Errorf("unexpected payload: %v", req)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"detail": "Password updated"})
	}))
	defer server.Close()

	c := New(server.URL)
	if err := c.ChangePassword(context.Background(), "tok", "old", "newpass"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Current password is incorrect"})
	}))
	defer server.Close()

	c := New(server.URL)
	err := c.ChangePassword(context.Background(), "tok", "wrong", "newpass")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	apiErr, ok := IsAPIError(err)
	if !ok {
		t.Fatalf("expected APIError, got %T", err)
	}
	if apiErr.Message != "Current password is incorrect" {
		t.Errorf("unexpected message: %q", apiErr.Message)
	}
}

func TestConnectionError(t *testing.T) {
	c := New("http://127.0.0.1:1")
	_, err := c.Login(context.Background(), LoginRequest{Username: "ada", Password: "x"})
	if err == nil {
		t.Fatal("expected connection error, got nil")
	}
	if !IsNetworkError(err) {
		t.Errorf("expected NetworkError, got %T", err)
	}
}

func TestContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		json.NewEncoder(w).Encode(testUser())
	}))
	defer server.Close()

	c := New(server.URL)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Me(ctx, "tok")
	if err == nil {
		t.Fatal("expected error for canceled context, got nil")
	}
	if !IsNetworkError(err) {
		t.Errorf("expected NetworkError, got %T", err)
	}
}

func TestErrorMessage_NonJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream unavailable"))
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.Me(context.Background(), "tok")
	apiErr, ok := IsAPIError(err)
	if !ok {
		t.Fatalf("expected APIError, got %T", err)
	}
	if apiErr.Message != "upstream unavailable" {
		t.Errorf("expected raw body message, got %q", apiErr.Message)
	}
}

func TestErrorMessage_EmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.Me(context.Background(), "tok")
	apiErr, ok := IsAPIError(err)
	if !ok {
		t.Fatalf("expected APIError, got %T", err)
	}
	if apiErr.Message != "request failed: 503" {
		t.Errorf("expected fallback message, got %q", apiErr.Message)
	}
}
