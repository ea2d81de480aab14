package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	for name, value := range map[string]string{"limit": "0", "links": "false", "json": "false"} {
		require.NoError(t, queryCmd.Flags().Set(name, value))
	}
	require.NoError(t, rootCmd.PersistentFlags().Set("config", ""))
	require.NoError(t, rootCmd.PersistentFlags().Set("debug", ""))

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func hnServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("query") == "broken" {
			http.Error(w, "nope", http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"hits":[
			{"objectID":"1","title":"Go 1.24 is released","url":"https://go.dev/blog/go1.24"},
			{"objectID":"2","title":null,"story_title":"Ask HN: Favourite Go libraries?"},
			{"objectID":"3","title":null}
		]}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)

	assert.Contains(t, out, "hnews dev")
	assert.Contains(t, out, "Hacker News search")
	assert.Contains(t, out, "github.com/pders01/hnews")
}

func TestGenerateConfigCommand(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "config.toml")

	out, err := execute(t, "config", "generate", target)
	require.NoError(t, err)
	assert.Contains(t, out, "Generated default configuration at: "+target)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "default_query")
	assert.Contains(t, string(data), "hn.algolia.com")
}

func TestGenerateConfigCommand_DefaultPath(t *testing.T) {
	out, err := execute(t, "config", "generate")
	require.NoError(t, err)

	home := os.Getenv("HOME")
	assert.Contains(t, out, filepath.Join(home, ".config", "hnews", "config.toml"))
	_, err = os.Stat(filepath.Join(home, ".config", "hnews", "config.toml"))
	assert.NoError(t, err)
}

func TestQueryCommand(t *testing.T) {
	srv := hnServer(t)
	t.Setenv("HNEWS_API_BASE_URL", srv.URL)

	out, err := execute(t, "query", "golang")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Go 1.24 is released",
		"Ask HN: Favourite Go libraries?",
		"(untitled)",
	}, strings.Split(strings.TrimSpace(out), "\n"))
}

func TestQueryCommand_LimitAndLinks(t *testing.T) {
	srv := hnServer(t)
	t.Setenv("HNEWS_API_BASE_URL", srv.URL)

	out, err := execute(t, "query", "--limit", "2", "--links", "go", "libraries")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Go 1.24 is released\thttps://go.dev/blog/go1.24", lines[0])
	assert.Equal(t, "Ask HN: Favourite Go libraries?\thttps://news.ycombinator.com/item?id=2", lines[1])
}

func TestQueryCommand_JSON(t *testing.T) {
	srv := hnServer(t)
	t.Setenv("HNEWS_API_BASE_URL", srv.URL)

	out, err := execute(t, "query", "--json", "go")
	require.NoError(t, err)

	var hits []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &hits))
	require.Len(t, hits, 3)
	assert.Equal(t, "1", hits[0]["objectID"])
}

func TestQueryCommand_HTTPError(t *testing.T) {
	srv := hnServer(t)
	t.Setenv("HNEWS_API_BASE_URL", srv.URL)

	_, err := execute(t, "query", "broken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP error: 502")
}

func TestQueryCommand_RejectsBadEndpoint(t *testing.T) {
	t.Setenv("HNEWS_API_BASE_URL", "ftp://example.org/search")

	_, err := execute(t, "query", "go")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api.base_url")
}

func TestQueryCommand_ConfigFile(t *testing.T) {
	srv := hnServer(t)
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[api]\nbase_url = \""+srv.URL+"\"\n"), 0o644))

	out, err := execute(t, "--config", cfgPath, "query", "go")
	require.NoError(t, err)
	assert.Contains(t, out, "Go 1.24 is released")
}

func TestQueryCommand_RequiresWords(t *testing.T) {
	_, err := execute(t, "query")
	assert.Error(t, err)
}
