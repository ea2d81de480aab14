package hn

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/hnews/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := config.TestConfig()
	cfg.API.BaseURL = server.URL + "/api/v1/search"
	return NewClient(cfg), server
}

func TestBuildSearchURL(t *testing.T) {
	base := "https://hn.algolia.com/api/v1/search"

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"plain word", "React", base + "?query=React"},
		{"empty query", "", base + "?query="},
		{"space", "rust lang", base + "?query=rust+lang"},
		{"ampersand and hash", "a&b #c", base + "?query=a%26b+%23c"},
		{"equals and plus", "x=1+2", base + "?query=x%3D1%2B2"},
		{"unicode", "café", base + "?query=caf%C3%A9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildSearchURL(base, tt.query))
		})
	}
}

func TestBuildSearchURL_KeepsExistingParams(t *testing.T) {
	got := BuildSearchURL("https://hn.algolia.com/api/v1/search?tags=story", "go")
	assert.Equal(t, "https://hn.algolia.com/api/v1/search?query=go&tags=story", got)
}

func TestBuildSearchURL_RoundTrip(t *testing.T) {
	for _, q := range []string{"C++ & Go", "100% #1?", "  padded  ", "a/b\\c"} {
		got := BuildSearchURL("https://hn.algolia.com/api/v1/search", q)
		req, err := http.NewRequest(http.MethodGet, got, nil)
		require.NoError(t, err)
		assert.Equal(t, q, req.URL.Query().Get("query"))
	}
}

func TestNewClient_Defaults(t *testing.T) {
	cfg := config.TestConfig()
	cfg.API.BaseURL = ""
	c := NewClient(cfg)

	assert.Equal(t, config.DefaultBaseURL, c.baseURL)
	assert.Equal(t, 5*time.Second, c.client.Timeout)
	assert.Equal(t, config.DefaultBaseURL+"?query=React", c.SearchURL("React"))
}

func TestClient_Fetch(t *testing.T) {
	tests := []struct {
		name           string
		serverResponse func(w http.ResponseWriter, r *http.Request)
		expectTitles   []string
		expectErr      error
	}{
		{
			name: "successful fetch",
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"hits":[{"title":"A","objectID":"1"},{"title":"B","objectID":"2"}],"nbHits":2,"query":"React"}`))
			},
			expectTitles: []string{"A", "B"},
		},
		{
			name: "empty hits",
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"hits":[]}`))
			},
			expectTitles: []string{},
		},
		{
			name: "null title",
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"hits":[{"title":null,"story_title":"Parent","objectID":"9"}]}`))
			},
			expectTitles: []string{"Parent"},
		},
		{
			name: "server error",
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			expectErr: ErrUnexpectedStatus,
		},
		{
			name: "not found",
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				http.NotFound(w, r)
			},
			expectErr: ErrUnexpectedStatus,
		},
		{
			name: "redirect status without location",
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotModified)
			},
			expectErr: ErrUnexpectedStatus,
		},
		{
			name: "invalid json",
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`<html>oops</html>`))
			},
			expectErr: ErrMalformedResponse,
		},
		{
			name: "missing hits",
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"nbHits":0}`))
			},
			expectErr: ErrMalformedResponse,
		},
		{
			name: "null hits",
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"hits":null}`))
			},
			expectErr: ErrMalformedResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, tt.serverResponse)

			resp, err := c.Search(context.Background(), "React")
			if tt.expectErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.expectErr), "got %v", err)
				assert.Nil(t, resp)
				return
			}

			require.NoError(t, err)
			titles := make([]string, 0, len(resp.Hits))
			for _, h := range resp.Hits {
				titles = append(titles, h.DisplayTitle())
			}
			assert.Equal(t, tt.expectTitles, titles)
		})
	}
}

func TestClient_DecodesServerTotal(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"hits":[{"objectID":"1","title":"a"},{"objectID":"2","title":"b"}],"nbHits":1234}`))
	})

	resp, err := c.Search(context.Background(), "go")
	require.NoError(t, err)
	assert.Len(t, resp.Hits, 2)
	assert.Equal(t, 1234, resp.NbHits)
}

func TestClient_FetchSendsHeadersAndQuery(t *testing.T) {
	var gotQuery, gotUA, gotAccept, gotPath string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		gotPath = r.URL.Path
		w.Write([]byte(`{"hits":[]}`))
	})

	_, err := c.Search(context.Background(), "a&b #c")
	require.NoError(t, err)

	assert.Equal(t, "a&b #c", gotQuery)
	assert.Equal(t, "hnews-test/1.0", gotUA)
	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, "/api/v1/search", gotPath)
}

func TestClient_StatusErrorDetails(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.Search(context.Background(), "go")
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusTooManyRequests, statusErr.Code)
	assert.Contains(t, statusErr.URL, "query=go")
	assert.Equal(t, "HTTP error: 429", statusErr.Error())
}

func TestClient_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	cfg := config.TestConfig()
	cfg.API.BaseURL = url
	c := NewClient(cfg)

	_, err := c.Search(context.Background(), "go")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnexpectedStatus))
	assert.True(t, strings.HasPrefix(err.Error(), "fetching results:"))
}

func TestClient_ContextCanceled(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"hits":[]}`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Search(ctx, "go")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestClient_InvalidURL(t *testing.T) {
	c := NewClient(config.TestConfig())
	_, err := c.Fetch(context.Background(), "://bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating request")
}
