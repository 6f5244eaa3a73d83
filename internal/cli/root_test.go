package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artpar/reqpane/internal/config"
	"github.com/artpar/reqpane/internal/core"
	"github.com/artpar/reqpane/internal/session"
)

func TestNewRootCommand(t *testing.T) {
	t.Run("creates root command", func(t *testing.T) {
		cmd := NewRootCommand("1.0.0")
		assert.Equal(t, "reqpane", cmd.Name())
		assert.Equal(t, "1.0.0", cmd.Version)
	})

	t.Run("has method flag", func(t *testing.T) {
		cmd := NewRootCommand("1.0.0")
		flag := cmd.Flags().Lookup("method")
		require.NotNil(t, flag)
		assert.Equal(t, "X", flag.Shorthand)
		assert.Equal(t, "GET", flag.DefValue)
	})

	t.Run("rejects unknown method before starting", func(t *testing.T) {
		isolate(t)
		cmd := NewRootCommand("1.0.0")
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"-X", "FETCH", "http://example.com"})

		err := cmd.Execute()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported method")
	})

	t.Run("accepts at most one url", func(t *testing.T) {
		cmd := NewRootCommand("1.0.0")
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"http://a", "http://b"})
		assert.Error(t, cmd.Execute())
	})

	t.Run("has global flags", func(t *testing.T) {
		cmd := NewRootCommand("1.0.0")
		for _, name := range []string{"config", "timeout", "no-redirects", "insecure", "no-cookies", "log-file", "trace", "no-highlight"} {
			assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
		}
		assert.Equal(t, "k", cmd.PersistentFlags().Lookup("insecure").Shorthand)
	})

	t.Run("has send subcommand", func(t *testing.T) {
		cmd := NewRootCommand("1.0.0")
		sendCmd, _, err := cmd.Find([]string{"send"})
		require.NoError(t, err)
		assert.Contains(t, sendCmd.Use, "send")
	})

	t.Run("shows version", func(t *testing.T) {
		out := &bytes.Buffer{}
		cmd := NewRootCommand("1.0.0")
		cmd.SetOut(out)
		cmd.SetArgs([]string{"--version"})

		require.NoError(t, cmd.Execute())
		assert.Contains(t, out.String(), "1.0.0")
	})

	t.Run("shows help", func(t *testing.T) {
		out := &bytes.Buffer{}
		cmd := NewRootCommand("1.0.0")
		cmd.SetOut(out)
		cmd.SetArgs([]string{"--help"})

		require.NoError(t, cmd.Execute())
		assert.Contains(t, out.String(), "reqpane")
		assert.Contains(t, out.String(), "send")
	})
}

func parsedGlobals(t *testing.T, args ...string) (*GlobalOptions, *cobra.Command) {
	t.Helper()
	globals := &GlobalOptions{}
	cmd := &cobra.Command{Use: "test"}
	globals.register(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return globals, cmd
}

func TestGlobalOptions_Resolve(t *testing.T) {
	t.Run("defaults without file, env or flags", func(t *testing.T) {
		isolate(t)
		globals, cmd := parsedGlobals(t)

		cfg, err := globals.resolve(cmd)
		require.NoError(t, err)
		assert.Equal(t, config.Default(), cfg)
	})

	t.Run("flags beat environment beats file", func(t *testing.T) {
		isolate(t)
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("timeout: 5s\ninsecure: false\n"), 0o644))
		t.Setenv(config.EnvTimeout, "7s")
		t.Setenv(config.EnvInsecure, "true")

		globals, cmd := parsedGlobals(t, "--config", path)
		cfg, err := globals.resolve(cmd)
		require.NoError(t, err)
		assert.Equal(t, 7*time.Second, cfg.Timeout.Std())
		assert.True(t, cfg.Insecure)

		globals, cmd = parsedGlobals(t, "--config", path, "--timeout", "9s", "--insecure=false")
		cfg, err = globals.resolve(cmd)
		require.NoError(t, err)
		assert.Equal(t, 9*time.Second, cfg.Timeout.Std())
		assert.False(t, cfg.Insecure)
	})

	t.Run("negated flags", func(t *testing.T) {
		isolate(t)
		globals, cmd := parsedGlobals(t, "--no-redirects", "--no-cookies", "--no-highlight", "--trace", "--log-file", "/tmp/x.log")

		cfg, err := globals.resolve(cmd)
		require.NoError(t, err)
		assert.False(t, cfg.FollowRedirects)
		assert.False(t, cfg.Cookies)
		assert.False(t, cfg.Highlight)
		assert.True(t, cfg.Trace)
		assert.Equal(t, "/tmp/x.log", cfg.LogFile)
	})

	t.Run("reports bad environment", func(t *testing.T) {
		isolate(t)
		t.Setenv(config.EnvTrace, "sometimes")
		globals, cmd := parsedGlobals(t)

		_, err := globals.resolve(cmd)
		require.Error(t, err)
		assert.Contains(t, err.Error(), config.EnvTrace)
	})
}

func TestUserAgent(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, "reqpane/1.2.3", userAgent(cfg, "1.2.3"))
	assert.Equal(t, "reqpane", userAgent(cfg, ""))

	cfg.UserAgent = "acme/2"
	assert.Equal(t, "acme/2", userAgent(cfg, "1.2.3"))
}

func TestNewApp(t *testing.T) {
	var gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		http.Redirect(w, r, "/elsewhere", http.StatusFound)
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.FollowRedirects = false

	t.Run("sets a default user agent and honours redirect config", func(t *testing.T) {
		application := newApp(cfg, "1.2.3", nil)
		assert.Equal(t, []string{"http"}, application.ListProtocols())

		resp, err := application.Send(context.Background(), core.NewRequest(core.MethodGet, server.URL))
		require.NoError(t, err)
		assert.Equal(t, http.StatusFound, resp.Status().Code())
		assert.Equal(t, "reqpane/1.2.3", gotAgent)
	})

	t.Run("user agent from the header pane wins", func(t *testing.T) {
		req := core.BuildRequest(core.MethodGet, server.URL, "", "User-Agent: mine/1", "")
		_, err := newApp(cfg, "1.2.3", nil).Send(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "mine/1", gotAgent)
	})
}

func TestNewComposer(t *testing.T) {
	t.Run("dispatches through the http client", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}))
		defer server.Close()

		logs := &bytes.Buffer{}
		view, closeLog, err := newComposer(context.Background(), config.Default(), "test", logs)
		require.NoError(t, err)
		defer closeLog()
		view.SetSize(120, 40)

		view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'i'}})
		for _, r := range server.URL {
			view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		}
		view.Update(tea.KeyMsg{Type: tea.KeyEnter})

		assert.Contains(t, view.View(), "418 I'm a teapot")
		assert.Contains(t, logs.String(), `"msg":"dispatch"`)
	})

	t.Run("preloads the request", func(t *testing.T) {
		var method, agent string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			method = r.Method
			agent = r.Header.Get("User-Agent")
		}))
		defer server.Close()

		view, closeLog, err := newComposer(context.Background(), config.Default(), "test", &bytes.Buffer{},
			session.WithRequest(core.MethodPost, server.URL))
		require.NoError(t, err)
		defer closeLog()

		view.Update(tea.KeyMsg{Type: tea.KeyEnter})

		assert.Equal(t, http.MethodPost, method)
		assert.Equal(t, "reqpane/test", agent)
		assert.Equal(t, "200 OK", view.Session().Snapshot().Status)
	})

	t.Run("applies key overrides", func(t *testing.T) {
		cfg := config.Default()
		cfg.Keys = map[string][]string{"quit": {"ctrl+q"}}

		view, closeLog, err := newComposer(context.Background(), cfg, "test", &bytes.Buffer{})
		require.NoError(t, err)
		defer closeLog()

		_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
		assert.Nil(t, cmd)
		_, cmd = view.Update(tea.KeyMsg{Type: tea.KeyCtrlQ})
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	})

	t.Run("rejects bad key overrides", func(t *testing.T) {
		cfg := config.Default()
		cfg.Keys = map[string][]string{"quit": {"nope+q"}}

		_, _, err := newComposer(context.Background(), cfg, "test", &bytes.Buffer{})
		assert.Error(t, err)
	})
}
