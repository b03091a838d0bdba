package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		assert.Equal(t, "/api/status", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, time.Second)
	assert.Equal(t, srv.URL, client.BaseURL)
	assert.Equal(t, time.Second, client.GetClient().Timeout)

	resp, err := client.R().Get("/api/status")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, "application/json", got.Get("Accept"))
	assert.Equal(t, userAgent, got.Get("User-Agent"))
}

func TestNewHTTPClient_NoTimeout(t *testing.T) {
	client := NewHTTPClient("http://127.0.0.1:59999", 0)
	assert.Zero(t, client.GetClient().Timeout)

	a := NewHTTPClient("http://a.example", 0)
	assert.NotSame(t, a.Client, client.Client)
}
