package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo_DecodesJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/clients/7", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{"id": 7, "name": "Ana"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)

	var out struct {
		ID   uint   `json:"id"`
		Name string `json:"name"`
	}
	err := c.Do(context.Background(), http.MethodGet, "/api/clients/7", nil, &out)
	require.NoError(t, err)
	assert.Equal(t, uint(7), out.ID)
	assert.Equal(t, "Ana", out.Name)
}

func TestDo_SendsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte("{}"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	c.SetToken("tok-123")

	require.NoError(t, c.Do(context.Background(), http.MethodGet, "/api/me", nil, nil))
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestDo_ErrorBodyBecomesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{
			"error_code": "client_not_found",
			"message":    "Client not found.",
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)

	err := c.Do(context.Background(), http.MethodGet, "/api/clients/99", nil, nil)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "client_not_found", apiErr.Code)
	assert.Equal(t, "Client not found.", apiErr.Message)
}

func TestDo_UnauthorizedPublishesExpiry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	events, cancel := c.Subscribe()
	defer cancel()

	err := c.Do(context.Background(), http.MethodGet, "/api/me", nil, nil)
	require.Error(t, err)

	ev := <-events
	assert.Equal(t, AuthExpired, ev.Kind)
}

func TestLogin_InstallsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "owner@salon.com", body["email"])

		json.NewEncoder(w).Encode(map[string]string{"token": "jwt-abc"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	events, cancel := c.Subscribe()
	defer cancel()

	require.NoError(t, c.Login(context.Background(), "owner@salon.com", "secret"))

	ev := <-events
	assert.Equal(t, AuthSignedIn, ev.Kind)

	// Subsequent requests carry the token.
	var gotAuth string
	srv2 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte("{}"))
	}))
	defer srv2.Close()
	c.baseURL = srv2.URL

	require.NoError(t, c.Do(context.Background(), http.MethodGet, "/api/me", nil, nil))
	assert.Equal(t, "Bearer jwt-abc", gotAuth)
}

func TestSubscribe_CancelIsIdempotent(t *testing.T) {
	c := NewClient("http://localhost")

	_, cancel := c.Subscribe()
	cancel()
	cancel()

	// Publishing after cancel must not panic.
	c.SetToken("tok")
}
