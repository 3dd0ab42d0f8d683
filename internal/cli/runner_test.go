package cli

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/pizza/internal/config"
	"github.com/Makepad-fr/pizza/internal/model"
	"github.com/Makepad-fr/pizza/internal/session"
	"github.com/Makepad-fr/pizza/internal/store/jsonstore"
	"github.com/Makepad-fr/pizza/internal/store/sqlitestore"
	"github.com/Makepad-fr/pizza/internal/ui"
)

func testConfig(t *testing.T, store string) *config.Config {
	t.Helper()
	return &config.Config{
		Bucket:     "default",
		Collection: "pizzas",
		StateDir:   t.TempDir(),
		Store:      store,
		Timeout:    5 * time.Second,
		Theme:      "mono",
		LogLevel:   "error",
	}
}

func capture(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	ui.SetOutput(&out, &errOut)
	t.Cleanup(func() { ui.SetOutput(os.Stdout, os.Stderr) })
	return &out, &errOut
}

func saveCredential(t *testing.T, kv session.KV, c model.Credential) {
	t.Helper()
	b := session.New(kv, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, b.SaveCredential(c))
}

func kintoServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if u, p, ok := r.BasicAuth(); !ok || u != "alice" || p != "pw" {
			w.WriteHeader(http.StatusUnauthorized)
			io.WriteString(w, `{"errno":104,"message":"Please authenticate yourself to use this endpoint."}`)
			return
		}
		io.WriteString(w, `{"data":[
			{"id":"a","last_modified":1,"price":10,"date":"2024-01-01",
			 "participants":[{"name":"Bob/2","half":true,"paid":true},{"name":"Alice","half":false,"paid":false}]},
			{"id":"b","last_modified":2,"price":8,"date":"2024-02-01","participants":[]}
		]}`)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestListPrintsShares(t *testing.T) {
	srv := kintoServer(t)
	cfg := testConfig(t, config.StoreJSON)
	saveCredential(t, jsonstore.New(cfg.StateDir), model.Credential{Server: srv.URL, Username: "alice", Password: "pw"})
	out, _ := capture(t)

	require.Equal(t, 0, Run([]string{"ls"}, cfg))
	s := out.String()
	assert.Contains(t, s, "[x] Bob/2")
	assert.Contains(t, s, "3.33")
	assert.Contains(t, s, "6.66")
	assert.Contains(t, s, "1/2 paid")
	assert.Contains(t, s, "nobody")
	assert.Less(t, bytes.Index(out.Bytes(), []byte("2024-02-01")), bytes.Index(out.Bytes(), []byte("2024-01-01")),
		"newest first")
}

func TestListWithSQLiteState(t *testing.T) {
	srv := kintoServer(t)
	cfg := testConfig(t, config.StoreSQLite)
	kv, err := sqlitestore.New(cfg.StateDir)
	require.NoError(t, err)
	saveCredential(t, kv, model.Credential{Server: srv.URL, Username: "alice", Password: "pw"})
	require.NoError(t, kv.Close())
	out, _ := capture(t)

	require.Equal(t, 0, Run([]string{"ls"}, cfg))
	assert.Contains(t, out.String(), "2024-01-01")
}

func TestListRemoteError(t *testing.T) {
	srv := kintoServer(t)
	cfg := testConfig(t, config.StoreJSON)
	saveCredential(t, jsonstore.New(cfg.StateDir), model.Credential{Server: srv.URL, Username: "alice", Password: "wrong"})
	_, errOut := capture(t)

	assert.Equal(t, 1, Run([]string{"ls"}, cfg))
	assert.Contains(t, errOut.String(), "bad status 401")
}

func TestNotLoggedIn(t *testing.T) {
	cfg := testConfig(t, config.StoreJSON)
	_, errOut := capture(t)

	assert.Equal(t, 1, Run([]string{"ls"}, cfg))
	assert.Equal(t, 1, Run([]string{"export"}, cfg))
	assert.Contains(t, errOut.String(), "not logged in")
}

func TestExportAndLogout(t *testing.T) {
	cfg := testConfig(t, config.StoreJSON)
	kv := jsonstore.New(cfg.StateDir)
	saveCredential(t, kv, model.Credential{Server: "https://kinto.example.com/v1", Username: "alice", Password: "pw"})
	out, _ := capture(t)

	require.Equal(t, 0, Run([]string{"export"}, cfg))
	assert.Equal(t, "https://alice:pw@kinto.example.com/v1/buckets/default/collections/pizzas/records?_sort=-date\n", out.String())

	require.Equal(t, 0, Run([]string{"logout"}, cfg))
	assert.Contains(t, out.String(), "logged out")
	_, ok, err := kv.Get("session")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUsage(t *testing.T) {
	cfg := testConfig(t, config.StoreJSON)
	out, errOut := capture(t)

	assert.Equal(t, 0, Run([]string{"help"}, cfg))
	assert.Contains(t, out.String(), "Subcommands:")
	assert.Equal(t, 2, Run([]string{"bake"}, cfg))
	assert.Contains(t, errOut.String(), "unknown subcommand: bake")
	assert.Equal(t, 2, Run([]string{"ls", "extra"}, cfg))
}
