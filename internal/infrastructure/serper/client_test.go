package serper

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"marketing-crew/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := DefaultConfig("secret")
	cfg.SearchURL = srv.URL + "/search"
	cfg.ScrapeURL = srv.URL + "/scrape"
	return NewClient(cfg)
}

func TestClient_SearchSendsQueryAndKey(t *testing.T) {
	var got map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("X-API-KEY"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Write([]byte(`{"organic":[{"title":"Bottle","link":"https://b.example","snippet":"Reusable"},{"link":"https://x.example"}]}`))
	})

	results, err := client.Search(context.Background(), "water bottle", 5)

	require.NoError(t, err)
	assert.Equal(t, "water bottle", got["q"])
	assert.Equal(t, float64(5), got["num"])
	require.Len(t, results, 2)
	assert.Equal(t, entity.SearchResult{Title: "Bottle", Link: "https://b.example", Snippet: "Reusable"}, results[0])
	assert.Empty(t, results[1].Title)
}

func TestClient_ScrapeReturnsText(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "https://example.com", body["url"])
		w.Write([]byte(`{"text":"Hello from the page"}`))
	})

	text, err := client.Scrape(context.Background(), "https://example.com")

	require.NoError(t, err)
	assert.Equal(t, "Hello from the page", text)
}

func TestClient_NonSuccessStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message":"Unauthorized"}`))
	})

	_, err := client.Search(context.Background(), "q", 5)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
	assert.Contains(t, err.Error(), "Unauthorized")
}

func TestClient_MissingKeyMakesNoRequest(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	cfg := DefaultConfig("")
	cfg.SearchURL = srv.URL
	cfg.ScrapeURL = srv.URL
	client := NewClient(cfg)

	_, err := client.Search(context.Background(), "q", 5)
	assert.ErrorIs(t, err, entity.ErrSearchNotConfigured)

	_, err = client.Scrape(context.Background(), "https://example.com")
	assert.ErrorIs(t, err, entity.ErrSearchNotConfigured)

	assert.Zero(t, calls)
}

func TestClient_Timeout(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})
	client.cfg.SearchTimeout = 50 * time.Millisecond

	start := time.Now()
	_, err := client.Search(context.Background(), "slow", 5)

	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}
