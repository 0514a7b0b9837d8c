package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jrsteele09/go-admin-portal/api"
	"github.com/jrsteele09/go-admin-portal/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeUser(t *testing.T, w http.ResponseWriter, user map[string]any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"user": user}})
	require.NoError(t, err)
}

func writeError(t *testing.T, w http.ResponseWriter, status int, message string) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(map[string]string{"message": message})
	require.NoError(t, err)
}

func TestNew(t *testing.T) {
	t.Run("creates client with base URL", func(t *testing.T) {
		client, err := api.New("http://localhost:8080/api/v1")
		require.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("rejects unparseable URL", func(t *testing.T) {
		_, err := api.New("http://\x7f")
		require.Error(t, err)
	})

	t.Run("rejects non-absolute URLs", func(t *testing.T) {
		for _, baseURL := range []string{"", "api.portal.example.com", "/api/v1", "ftp://example.com"} {
			_, err := api.New(baseURL)
			require.Error(t, err, "baseURL %q", baseURL)
		}
	})
}

func TestClientMe(t *testing.T) {
	t.Run("resolves the session user", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, api.PathMe, r.URL.Path)
			assert.Equal(t, http.MethodGet, r.Method)
			assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

			writeUser(t, w, map[string]any{
				"id":        "user-456",
				"name":      "John Doe",
				"email":     "john.doe@example.com",
				"role":      "admin",
				"tenant_id": "tenant-1",
				"tenant":    map[string]any{"id": "tenant-1", "name": "Acme", "plan": "pro"},
			})
		}))
		defer server.Close()

		client, err := api.New(server.URL)
		require.NoError(t, err)

		user, err := client.Me(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "user-456", user.ID)
		assert.Equal(t, users.RoleAdmin, user.Role)
		require.NotNil(t, user.Tenant)
		assert.Equal(t, "Acme", user.Tenant.Name)
	})

	t.Run("non-2xx becomes a structured error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeError(t, w, http.StatusUnauthorized, "you are not logged in")
		}))
		defer server.Close()

		client, err := api.New(server.URL)
		require.NoError(t, err)

		_, err = client.Me(context.Background())
		require.Error(t, err)

		var apiErr *api.Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
		assert.Equal(t, "you are not logged in", apiErr.Message)
		assert.False(t, api.IsNetworkError(err))
	})

	t.Run("unreachable backend is a network error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close() // closed before use

		client, err := api.New(server.URL, api.WithTimeout(time.Second))
		require.NoError(t, err)

		_, err = client.Me(context.Background())
		require.Error(t, err)
		assert.True(t, api.IsNetworkError(err))
	})
}

func TestClientLoginCarriesCookieToLaterRequests(t *testing.T) {
	const sessionCookie = "portal_session"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case api.PathLogin:
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "john.doe@example.com", body["email"])
			assert.Equal(t, "password123", body["password"])

			http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "opaque-session-id", HttpOnly: true, Path: "/"})
			writeUser(t, w, map[string]any{"id": "user-1", "email": body["email"], "role": "user"})
		case api.PathMe:
			cookie, err := r.Cookie(sessionCookie)
			require.NoError(t, err, "session cookie must be replayed on the probe")
			assert.Equal(t, "opaque-session-id", cookie.Value)
			writeUser(t, w, map[string]any{"id": "user-1", "role": "user"})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client, err := api.New(server.URL)
	require.NoError(t, err)

	user, err := client.Login(context.Background(), "john.doe@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)

	_, err = client.Me(context.Background())
	require.NoError(t, err)
}

func TestClientRegister(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, api.PathRegister, r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req users.RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Jane Doe", req.Name)
		assert.Equal(t, req.Password, req.PasswordConfirm)

		writeUser(t, w, map[string]any{"id": "user-2", "name": req.Name, "email": req.Email, "role": "user"})
	}))
	defer server.Close()

	client, err := api.New(server.URL)
	require.NoError(t, err)

	user, err := client.Register(context.Background(), users.RegisterRequest{
		Name:            "Jane Doe",
		Email:           "jane@example.com",
		Password:        "Password1",
		PasswordConfirm: "Password1",
	})
	require.NoError(t, err)
	assert.Equal(t, "user-2", user.ID)
}

func TestClientLogout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, api.PathLogout, r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := api.New(server.URL)
	require.NoError(t, err)
	require.NoError(t, client.Logout(context.Background()))
}

func TestClientUpdateProfile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, api.PathProfile, r.URL.Path)
		assert.Equal(t, http.MethodPatch, r.Method)

		var update users.ProfileUpdate
		require.NoError(t, json.NewDecoder(r.Body).Decode(&update))
		assert.Equal(t, "New Name", update.Name)

		writeUser(t, w, map[string]any{"id": "user-1", "name": update.Name, "role": "user"})
	}))
	defer server.Close()

	client, err := api.New(server.URL)
	require.NoError(t, err)

	user, err := client.UpdateProfile(context.Background(), users.ProfileUpdate{Name: "New Name"})
	require.NoError(t, err)
	assert.Equal(t, "New Name", user.Name)
}

func TestClientUpdatePassword(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, api.PathUpdatePassword, r.URL.Path)
		assert.Equal(t, http.MethodPatch, r.Method)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "OldPassword1", body["passwordCurrent"])
		assert.Equal(t, "NewPassword1", body["password"])
		assert.Equal(t, "NewPassword1", body["passwordConfirm"])
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := api.New(server.URL)
	require.NoError(t, err)
	require.NoError(t, client.UpdatePassword(context.Background(), "OldPassword1", "NewPassword1", "NewPassword1"))
}

func TestClientDeleteMe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, api.PathDeleteMe, r.URL.Path)
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client, err := api.New(server.URL)
	require.NoError(t, err)
	require.NoError(t, client.DeleteMe(context.Background()))
}

func TestClientAppConfig(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, api.PathAppConfig, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		err := json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"config": map[string]any{
			"app_name":          "Acme Portal",
			"registration_open": true,
			"billing_enabled":   true,
		}}})
		require.NoError(t, err)
	}))
	defer server.Close()

	client, err := api.New(server.URL)
	require.NoError(t, err)

	cfg, err := client.AppConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Acme Portal", cfg.AppName)
	assert.True(t, cfg.RegistrationOpen)
}

func TestMessageNormalization(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		fallback string
		want     string
	}{
		{"nil error", nil, "fallback", ""},
		{"backend message wins", &api.Error{Status: 400, Message: "bad input"}, "fallback", "bad input"},
		{"missing message uses fallback", &api.Error{Status: 500}, "something went wrong", "something went wrong"},
		{"network error is normalized", api.ErrNetwork, "fallback", "no response / network error"},
		{"unknown error uses fallback", assert.AnError, "generic failure", "generic failure"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, api.Message(tt.err, tt.fallback))
		})
	}
}
