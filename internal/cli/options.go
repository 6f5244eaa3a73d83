package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/artpar/reqpane/internal/app"
	"github.com/artpar/reqpane/internal/config"
	"github.com/artpar/reqpane/internal/logging"
	httpclient "github.com/artpar/reqpane/internal/protocol/http"
)

// GlobalOptions holds the flags shared by every command. Flags override the
// environment, which overrides the config file.
type GlobalOptions struct {
	ConfigPath  string
	Timeout     time.Duration
	NoRedirects bool
	Insecure    bool
	NoCookies   bool
	LogFile     string
	Trace       bool
	NoHighlight bool

	version string
}

func (o *GlobalOptions) register(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&o.ConfigPath, "config", "", "Config file (default $XDG_CONFIG_HOME/reqpane/config.yaml)")
	flags.DurationVar(&o.Timeout, "timeout", 30*time.Second, "Request timeout")
	flags.BoolVar(&o.NoRedirects, "no-redirects", false, "Do not follow redirects")
	flags.BoolVarP(&o.Insecure, "insecure", "k", false, "Skip TLS certificate verification")
	flags.BoolVar(&o.NoCookies, "no-cookies", false, "Do not keep cookies between requests")
	flags.StringVar(&o.LogFile, "log-file", "", "Write JSON logs to this file")
	flags.BoolVar(&o.Trace, "trace", false, "Log at debug level")
	flags.BoolVar(&o.NoHighlight, "no-highlight", false, "Disable response syntax highlighting")
}

// resolve layers config file, environment and the flags set on cmd.
func (o *GlobalOptions) resolve(cmd *cobra.Command) (config.Config, error) {
	cfg, _, err := config.Load(o.ConfigPath)
	if err != nil {
		return config.Config{}, err
	}
	cfg, err = config.ApplyEnv(cfg, os.Getenv)
	if err != nil {
		return config.Config{}, fmt.Errorf("environment: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("timeout") {
		cfg.Timeout = config.Duration(o.Timeout)
	}
	if flags.Changed("no-redirects") {
		cfg.FollowRedirects = !o.NoRedirects
	}
	if flags.Changed("insecure") {
		cfg.Insecure = o.Insecure
	}
	if flags.Changed("no-cookies") {
		cfg.Cookies = !o.NoCookies
	}
	if flags.Changed("log-file") {
		cfg.LogFile = o.LogFile
	}
	if flags.Changed("trace") {
		cfg.Trace = o.Trace
	}
	if flags.Changed("no-highlight") {
		cfg.Highlight = !o.NoHighlight
	}
	return cfg, nil
}

// openLogger returns the configured logger, or one writing to w when no log
// file is set and w is not nil.
func openLogger(cfg config.Config, w io.Writer) (*slog.Logger, func() error, error) {
	if cfg.LogFile == "" && w != nil {
		return logging.New(w, cfg.Trace), func() error { return nil }, nil
	}
	return logging.Configure(cfg.LogFile, cfg.Trace)
}

// userAgent is sent when the header pane does not set one.
func userAgent(cfg config.Config, version string) string {
	if cfg.UserAgent != "" {
		return cfg.UserAgent
	}
	if version == "" {
		return "reqpane"
	}
	return "reqpane/" + version
}

// newApp wires the HTTP client described by cfg into an app container.
func newApp(cfg config.Config, version string, logger *slog.Logger) *app.App {
	clientOpts := []httpclient.Option{httpclient.WithTimeout(cfg.Timeout.Std())}
	if !cfg.FollowRedirects {
		clientOpts = append(clientOpts, httpclient.WithNoRedirects())
	}
	if cfg.Insecure {
		clientOpts = append(clientOpts, httpclient.WithInsecureSkipVerify())
	}
	if !cfg.Cookies {
		clientOpts = append(clientOpts, httpclient.WithoutCookies())
	}

	a := app.New(
		app.WithLogger(logger),
		app.WithProtocol("http", httpclient.NewClient(clientOpts...)),
	)
	a.RegisterHook(app.HookPreRequest, app.DefaultHeader("User-Agent", userAgent(cfg, version)))
	return a
}
