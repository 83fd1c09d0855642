package knownwords

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClient_Register(t *testing.T) {
	t.Parallel()

	var got wordsRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, AddPath, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"addedCount":2,"skippedCount":1}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", time.Second, newTestLogger())
	res, err := c.Register(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)

	assert.Equal(t, Result{Added: 2, Skipped: 1}, res)
	assert.Equal(t, "added 2, skipped 1", res.String())
	assert.Equal(t, []string{"a", "b", "c"}, got.Words)
}

func TestClient_RegisterSnakeCaseCounts(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"added_count":4,"skipped_count":0}`))
	}))
	defer srv.Close()

	res, err := NewClient(srv.URL, time.Second, newTestLogger()).Register(context.Background(), []string{"x"})
	require.NoError(t, err)
	assert.Equal(t, Result{Added: 4}, res)
}

func TestClient_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"rejected with message", http.StatusOK, `{"success":false,"error":"word list is empty"}`, "word list is empty"},
		{"bad request", http.StatusBadRequest, `{"success":false,"error":"invalid JSON"}`, "invalid JSON"},
		{"server error without body", http.StatusInternalServerError, ``, "Internal Server Error"},
		{"non-JSON error page", http.StatusBadGateway, `<html>bad gateway</html>`, "Bad Gateway"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL, time.Second, newTestLogger()).Register(context.Background(), []string{"x"})

			var remote *RemoteError
			require.True(t, errors.As(err, &remote), "got %v", err)
			assert.Equal(t, tt.status, remote.Status)
			assert.Equal(t, tt.message, remote.Message)
		})
	}
}

func TestClient_TransportError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, time.Second, newTestLogger()).Register(context.Background(), []string{"x"})

	var transport *TransportError
	require.True(t, errors.As(err, &transport))
	assert.Equal(t, "network error: could not reach the known-words store", err.Error())
	assert.NotNil(t, errors.Unwrap(err))
}

func TestClient_ListProbeRemove(t *testing.T) {
	t.Parallel()

	var removed string
	mux := http.NewServeMux()
	mux.HandleFunc(ListPath, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Write([]byte(`{"success":true,"words":["apple","cat"],"count":2}`))
	})
	mux.HandleFunc(RemovePath, func(w http.ResponseWriter, r *http.Request) {
		var req wordRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		removed = req.Word
		w.Write([]byte(`{"success":true,"message":"removed"}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := NewClient(srv.URL, 0, newTestLogger())
	ctx := context.Background()

	words, err := c.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"apple", "cat"}, words)

	require.NoError(t, c.Probe(ctx))

	require.NoError(t, c.Remove(ctx, "cat"))
	assert.Equal(t, "cat", removed)
}
