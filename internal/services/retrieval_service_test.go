// internal/services/retrieval_service_test.go
package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPRetrieverRetrieve(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "cs standards", r.URL.Query().Get("q"))
		assert.Equal(t, "CA", r.URL.Query().Get("region"))
		w.Write([]byte(`{"text":"CSTA excerpt"}`))
	}))
	defer srv.Close()

	retriever := NewHTTPRetriever(srv.URL)

	text, err := retriever.Retrieve(context.Background(), "cs standards", "CA")
	require.NoError(t, err)
	assert.Equal(t, "CSTA excerpt", text)
}

func TestHTTPRetrieverEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	retriever := NewHTTPRetriever(srv.URL)

	text, err := retriever.Retrieve(context.Background(), "q", "CA")
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestHTTPRetrieverServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	retriever := NewHTTPRetriever(srv.URL)

	_, err := retriever.Retrieve(context.Background(), "q", "CA")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
