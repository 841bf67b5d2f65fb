package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supplysight/assistant-core/internal/assist/model"
	errx "github.com/supplysight/assistant-core/internal/core/error"
)

func newTestClient(baseURL string) *Client {
	return NewClient(model.SearchConfig{BaseURL: baseURL, Timeout: 5, MinQueryLen: 2})
}

func TestSearchDecodesMatches(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/search", r.URL.Path)
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"suppliers": [{"id": "s1", "name": "Acme Corp"}],
			"purchase_orders": [{"id": "o9", "number": "PO-1042"}]
		}`))
	}))
	defer srv.Close()

	result, err := newTestClient(srv.URL).Search(context.Background(), "Acme")
	require.NoError(t, err)
	assert.Equal(t, "Acme", gotQuery)
	require.Len(t, result.Suppliers, 1)
	assert.Equal(t, "s1", result.Suppliers[0].ID)
	require.Len(t, result.PurchaseOrders, 1)
	assert.Equal(t, "PO-1042", result.PurchaseOrders[0].Number)
}

func TestSearchShortQueryShortCircuits(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)

	for _, q := range []string{"", "a", "  x  "} {
		result, err := c.Search(context.Background(), q)
		require.NoError(t, err)
		assert.Empty(t, result.Suppliers)
		assert.Empty(t, result.PurchaseOrders)
	}
	assert.Zero(t, hits, "short queries must not reach the network")

	// Whitespace around an otherwise valid query is normalised first.
	_, err := c.Search(context.Background(), "  ab  ")
	require.NoError(t, err)
	assert.Equal(t, 1, hits)
}

func TestSearchNon2xxIsWrapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Search(context.Background(), "Acme")
	require.Error(t, err)

	var appErr *errx.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadGateway, appErr.Status)
	assert.Equal(t, errx.SearchErrorMessage, appErr.Message)
}

func TestSearchTransportErrorIsWrapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on

	_, err := newTestClient(srv.URL).Search(context.Background(), "Acme")
	require.Error(t, err)

	var appErr *errx.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadGateway, appErr.Status)
}

func TestSearchBadJSONIsWrapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Search(context.Background(), "Acme")
	require.Error(t, err)
}
