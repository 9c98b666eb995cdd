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

type fakeClientRecord struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func TestResource_CRUDPathsAndMethods(t *testing.T) {
	type call struct {
		method string
		path   string
	}
	var calls []call

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, call{r.Method, r.URL.Path})

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/clients":
			json.NewEncoder(w).Encode([]fakeClientRecord{{ID: 1, Name: "Ana"}})
		case r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			json.NewEncoder(w).Encode(fakeClientRecord{ID: 2, Name: "Bia"})
		}
	}))
	defer srv.Close()

	res := NewResource[fakeClientRecord](NewClient(srv.URL), "/api/clients")
	ctx := context.Background()

	list, err := res.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Ana", list[0].Name)

	got, err := res.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, uint(2), got.ID)

	_, err = res.Create(ctx, fakeClientRecord{Name: "Bia"})
	require.NoError(t, err)

	_, err = res.Update(ctx, 2, fakeClientRecord{Name: "Bia"})
	require.NoError(t, err)

	require.NoError(t, res.Remove(ctx, 2))

	assert.Equal(t, []call{
		{http.MethodGet, "/api/clients"},
		{http.MethodGet, "/api/clients/2"},
		{http.MethodPost, "/api/clients"},
		{http.MethodPut, "/api/clients/2"},
		{http.MethodDelete, "/api/clients/2"},
	}, calls)
}
