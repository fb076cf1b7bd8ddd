package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tarrgon/autocompleted/internal/cache"
	"github.com/Tarrgon/autocompleted/internal/resolver"
	"github.com/Tarrgon/autocompleted/internal/storage"
)

type stubStore struct {
	lookupFunc func(ctx context.Context, key string) ([]storage.Tag, error)
}

func (s *stubStore) Lookup(ctx context.Context, key string) ([]storage.Tag, error) {
	if s.lookupFunc != nil {
		return s.lookupFunc(ctx, key)
	}
	return []storage.Tag{}, nil
}

func (s *stubStore) Close() error { return nil }

func newTestServer(t *testing.T, store storage.TagStore) *Server {
	t.Helper()
	c, err := cache.New(100, time.Minute)
	require.NoError(t, err)
	return New("127.0.0.1:0", resolver.New(store, c, nil), nil)
}

func autocompleteURL(prefix string) string {
	return "/?" + url.Values{"search[name_matches]": {prefix}}.Encode()
}

func TestAutocompleteSuccess(t *testing.T) {
	store := &stubStore{
		lookupFunc: func(_ context.Context, key string) ([]storage.Tag, error) {
			assert.Equal(t, "cat", key)
			return []storage.Tag{{ID: 1, Name: "cat", PostCount: 5000}}, nil
		},
	}
	srv := newTestServer(t, store)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, autocompleteURL("cat"), nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "public, max-age=604800", rec.Header().Get("Cache-Control"))
	assert.JSONEq(t, `[{"id":1,"name":"cat","post_count":5000,"category":0,"antecedent_name":null}]`, rec.Body.String())
}

func TestAutocompleteEmptyResult(t *testing.T) {
	srv := newTestServer(t, &stubStore{})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, autocompleteURL("zzz"), nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "public, max-age=604800", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "[]", rec.Body.String())
}

func TestAutocompleteBadInput(t *testing.T) {
	srv := newTestServer(t, &stubStore{})

	for _, prefix := range []string{"ab", ""} {
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, autocompleteURL(prefix), nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "private, max-age=0", rec.Header().Get("Cache-Control"))
		assert.JSONEq(t, `{"error":"bad request"}`, rec.Body.String())
	}
}

func TestAutocompleteMissingParam(t *testing.T) {
	srv := newTestServer(t, &stubStore{})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAutocompleteStoreFailure(t *testing.T) {
	store := &stubStore{
		lookupFunc: func(_ context.Context, _ string) ([]storage.Tag, error) {
			return nil, errors.New("pg: too many connections")
		},
	}
	srv := newTestServer(t, store)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, autocompleteURL("cat"), nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "private, max-age=0", rec.Header().Get("Cache-Control"))
	assert.JSONEq(t, `{"error":"internal error"}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "connections", "backend detail must not leak")
}

func TestDefaultHeadersOnAllResponses(t *testing.T) {
	srv := newTestServer(t, &stubStore{})

	for _, target := range []string{autocompleteURL("cat"), autocompleteURL("a")} {
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "Authorization", rec.Header().Get("Access-Control-Allow-Headers"))
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, &stubStore{})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, autocompleteURL("cat"), nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
