package github

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	appConfig "github.com/festy23/contribution_points/internal/config"
)

const commentsPath = "/repos/acme/widgets/issues/42/comments"

func newTestClient(t *testing.T, serverURL string) *Client {
	t.Helper()
	c, err := New(appConfig.GitHubConfig{
		Token:       "test-token",
		APIURL:      serverURL,
		Timeout:     5 * time.Second,
		PerPage:     2,
		MaxAttempts: 3,
	}, zaptest.NewLogger(t).Sugar())
	require.NoError(t, err)
	c.retry.InitialDelay = time.Millisecond
	c.retry.MaxDelay = 5 * time.Millisecond
	return c
}

func TestClient_FetchReviewComments(t *testing.T) {
	t.Run("follows pagination", func(t *testing.T) {
		var server *httptest.Server
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, commentsPath, r.URL.Path)
			assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
			assert.Equal(t, "2", r.URL.Query().Get("per_page"))

			w.Header().Set("Content-Type", "application/json")
			if r.URL.Query().Get("page") == "2" {
				fmt.Fprint(w, `[{"body":"nit: rename","user":{"login":"carol"},"created_at":"2024-03-14T11:00:00Z"}]`)
				return
			}
			w.Header().Set("Link", fmt.Sprintf(`<%s%s?page=2&per_page=2>; rel="next"`, server.URL, commentsPath))
			fmt.Fprint(w, `[
				{"body":"LGTM","user":{"login":"bob"},"created_at":"2024-03-14T10:00:00Z"},
				{"body":"Ship it","user":{"login":"dependabot[bot]"},"created_at":"2024-03-14T10:30:00Z"}
			]`)
		}))
		defer server.Close()

		comments, err := newTestClient(t, server.URL).FetchReviewComments(context.Background(), "acme/widgets", 42)

		require.NoError(t, err)
		require.Len(t, comments, 3)
		assert.Equal(t, "bob", comments[0].Author)
		assert.Equal(t, "LGTM", comments[0].Body)
		assert.Equal(t, "dependabot[bot]", comments[1].Author)
		assert.Equal(t, "carol", comments[2].Author)
		assert.Equal(t, time.Date(2024, 3, 14, 11, 0, 0, 0, time.UTC), comments[2].CreatedAt.UTC())
	})

	t.Run("no comments", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `[]`)
		}))
		defer server.Close()

		comments, err := newTestClient(t, server.URL).FetchReviewComments(context.Background(), "acme/widgets", 42)

		require.NoError(t, err)
		assert.NotNil(t, comments)
		assert.Empty(t, comments)
	})

	t.Run("retries bad gateway", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 1 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `[{"body":"LGTM","user":{"login":"bob"}}]`)
		}))
		defer server.Close()

		comments, err := newTestClient(t, server.URL).FetchReviewComments(context.Background(), "acme/widgets", 42)

		require.NoError(t, err)
		assert.Len(t, comments, 1)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		_, err := newTestClient(t, server.URL).FetchReviewComments(context.Background(), "acme/widgets", 42)

		require.Error(t, err)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("does not retry not found", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"message":"Not Found"}`)
		}))
		defer server.Close()

		_, err := newTestClient(t, server.URL).FetchReviewComments(context.Background(), "acme/widgets", 42)

		require.Error(t, err)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("invalid repository name", func(t *testing.T) {
		c := newTestClient(t, "http://127.0.0.1:1")
		for _, name := range []string{"widgets", "/widgets", "acme/"} {
			_, err := c.FetchReviewComments(context.Background(), name, 1)
			assert.ErrorContains(t, err, "invalid repository name")
		}
	})
}

func TestNew_DefaultBaseURL(t *testing.T) {
	c, err := New(appConfig.GitHubConfig{Timeout: time.Second, PerPage: 100, MaxAttempts: 1}, zaptest.NewLogger(t).Sugar())
	require.NoError(t, err)
	assert.Equal(t, "https://api.github.com/", c.gh.BaseURL.String())
	assert.Equal(t, 1, c.retry.MaxAttempts)
}
